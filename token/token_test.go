/*
 * Copyright (c) 2025 66f94eae
 *
 * Permission is hereby granted, free of charge, to any person obtaining a copy of
 * this software and associated documentation files (the "Software"), to deal in
 * the Software without restriction, including without limitation the rights to
 * use, copy, modify, merge, publish, distribute, sublicense, and/or sell copies of
 * the Software, and to permit persons to whom the Software is furnished to do so,
 * subject to the following conditions:
 *
 * The above copyright notice and this permission notice shall be included in all
 * copies or substantial portions of the Software.
 *
 * THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
 * IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY, FITNESS
 * FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE AUTHORS OR
 * COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER LIABILITY, WHETHER
 * IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM, OUT OF OR IN
 * CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN THE SOFTWARE.
 */

package token

import (
	"encoding/base64"
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	testKeyID  = "ABC123DEFG"
	testTeamID = "DEF123GHIJ"
)

func testAuthKey(t *testing.T) []byte {
	t.Helper()
	key, err := os.ReadFile("../tls/authkey.p8")
	require.NoError(t, err)
	return key
}

func testLogger() *logrus.Logger {
	logger, _ := test.NewNullLogger()
	return logger
}

func testManager(t *testing.T) *Manager {
	t.Helper()
	m, err := NewManager(testAuthKey(t), testKeyID, testTeamID, testLogger())
	require.NoError(t, err)
	return m
}

func decodeSegment(t *testing.T, segment string, out interface{}) {
	t.Helper()
	raw, err := base64.RawURLEncoding.DecodeString(segment)
	require.NoError(t, err)
	require.NoError(t, json.Unmarshal(raw, out))
}

func TestBearerShape(t *testing.T) {
	m := testManager(t)
	start := time.Now().Unix()

	bearer, err := m.Bearer()
	require.NoError(t, err)

	segments := strings.Split(bearer, ".")
	require.Len(t, segments, 3)

	var header struct {
		Alg string `json:"alg"`
		Kid string `json:"kid"`
	}
	decodeSegment(t, segments[0], &header)
	assert.Equal(t, "ES256", header.Alg)
	assert.Equal(t, testKeyID, header.Kid)

	var claims struct {
		Iss string `json:"iss"`
		Iat int64  `json:"iat"`
	}
	decodeSegment(t, segments[1], &claims)
	assert.Equal(t, testTeamID, claims.Iss)
	assert.GreaterOrEqual(t, claims.Iat, start)
}

func TestBearerIsCachedWithinValidity(t *testing.T) {
	m := testManager(t)
	t0 := time.Now()
	m.now = func() time.Time { return t0 }

	first, err := m.Bearer()
	require.NoError(t, err)
	second, err := m.Bearer()
	require.NoError(t, err)
	assert.Equal(t, first, second)

	m.now = func() time.Time { return t0.Add((Validity - 1) * time.Second) }
	third, err := m.Bearer()
	require.NoError(t, err)
	assert.Equal(t, first, third)
}

func TestBearerExpiresAfterValidity(t *testing.T) {
	m := testManager(t)
	t0 := time.Now()
	m.now = func() time.Time { return t0 }

	first, err := m.Bearer()
	require.NoError(t, err)
	firstIssued, _ := m.Cached()

	m.now = func() time.Time { return t0.Add(Validity * time.Second) }
	second, err := m.Bearer()
	require.NoError(t, err)
	assert.NotEqual(t, first, second)

	secondIssued, cached := m.Cached()
	assert.Equal(t, second, cached)
	assert.Greater(t, secondIssued, firstIssued)
}

func TestForceRefresh(t *testing.T) {
	m := testManager(t)
	t0 := time.Now()
	m.now = func() time.Time { return t0 }

	first, err := m.Bearer()
	require.NoError(t, err)

	m.now = func() time.Time { return t0.Add(10 * time.Second) }
	second, err := m.ForceRefresh()
	require.NoError(t, err)
	assert.NotEqual(t, first, second)

	issuedAt, cached := m.Cached()
	assert.Equal(t, second, cached)
	assert.Equal(t, t0.Unix()+10, issuedAt)

	// the regular path now serves the refreshed bearer
	third, err := m.Bearer()
	require.NoError(t, err)
	assert.Equal(t, second, third)
}

func TestRestoreLivePair(t *testing.T) {
	issuedAt := time.Now().Unix() - 100
	m, err := Restore(testAuthKey(t), testKeyID, testTeamID, issuedAt, "restored-bearer", testLogger())
	require.NoError(t, err)

	cachedIssued, cachedBearer := m.Cached()
	assert.Equal(t, issuedAt, cachedIssued)
	assert.Equal(t, "restored-bearer", cachedBearer)

	bearer, err := m.Bearer()
	require.NoError(t, err)
	assert.Equal(t, "restored-bearer", bearer)
}

func TestRestoreExpiredPairIsDiscarded(t *testing.T) {
	issuedAt := time.Now().Unix() - Validity
	m, err := Restore(testAuthKey(t), testKeyID, testTeamID, issuedAt, "stale-bearer", testLogger())
	require.NoError(t, err)

	cachedIssued, cachedBearer := m.Cached()
	assert.Zero(t, cachedIssued)
	assert.Empty(t, cachedBearer)

	bearer, err := m.Bearer()
	require.NoError(t, err)
	assert.NotEqual(t, "stale-bearer", bearer)
	assert.Len(t, strings.Split(bearer, "."), 3)
}

func TestExport(t *testing.T) {
	m := testManager(t)
	bearer, err := m.Bearer()
	require.NoError(t, err)

	issuedAt, _ := m.Cached()
	assert.Equal(t, fmt.Sprintf("%d.%s", issuedAt, bearer), m.Export())
}

func TestMalformedAuthKey(t *testing.T) {
	_, err := NewManager([]byte("not a pem key"), testKeyID, testTeamID, testLogger())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "error parsing auth key")
}

func TestAuthKeyFromMissingFile(t *testing.T) {
	_, err := AuthKeyFromFile("./does-not-exist.p8")
	require.Error(t, err)
}
