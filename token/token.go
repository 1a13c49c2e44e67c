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
	"crypto/ecdsa"
	"fmt"
	"os"
	"sync"
	"time"

	jwt "github.com/golang-jwt/jwt/v4"
	"github.com/sirupsen/logrus"
)

// Validity is the window in seconds during which a minted bearer is reused.
// APNs rejects provider tokens older than an hour; re-signing at 45 minutes
// keeps a comfortable margin.
const Validity = 2700

// Manager caches an ES256 provider token and re-signs it only when the
// cached one has expired. Minting is serialized, so a Manager is safe for
// concurrent use.
type Manager struct {
	sync.Mutex
	authKey  *ecdsa.PrivateKey
	keyID    string
	teamID   string
	issuedAt int64
	bearer   string
	logger   *logrus.Logger
	now      func() time.Time
}

// AuthKeyFromFile loads an EC private key from a PEM file.
func AuthKeyFromFile(fileName string) (*ecdsa.PrivateKey, error) {
	bytes, err := os.ReadFile(fileName)
	if err != nil {
		return nil, err
	}
	return AuthKeyFromBytes(bytes)
}

// AuthKeyFromBytes parses an EC private key from PEM bytes.
func AuthKeyFromBytes(bytes []byte) (*ecdsa.PrivateKey, error) {
	key, err := jwt.ParseECPrivateKeyFromPEM(bytes)
	if err != nil {
		return nil, fmt.Errorf("error parsing auth key: %w", err)
	}
	return key, nil
}

// NewManager returns a manager for the given PEM auth key, key id and team
// id. A key that can not be parsed is an unrecoverable error: no bearer can
// ever be minted from it.
func NewManager(authKey []byte, keyID, teamID string, logger *logrus.Logger) (*Manager, error) {
	key, err := AuthKeyFromBytes(authKey)
	if err != nil {
		return nil, err
	}
	return &Manager{
		authKey: key,
		keyID:   keyID,
		teamID:  teamID,
		logger:  logger,
		now:     time.Now,
	}, nil
}

// Restore builds a manager around a previously exported (issuedAt, bearer)
// pair. A pair that is already expired is discarded and a fresh bearer is
// minted on first use.
func Restore(authKey []byte, keyID, teamID string, issuedAt int64, bearer string, logger *logrus.Logger) (*Manager, error) {
	m, err := NewManager(authKey, keyID, teamID, logger)
	if err != nil {
		return nil, err
	}
	if issuedAt+Validity <= m.now().Unix() {
		m.logger.WithFields(logrus.Fields{
			"source":   "token",
			"issuedAt": issuedAt,
		}).Warn("restored token already expired, a fresh one will be minted")
		return m, nil
	}
	m.issuedAt = issuedAt
	m.bearer = bearer
	return m, nil
}

// Bearer returns a usable bearer, minting a new one when the cache is stale.
func (m *Manager) Bearer() (string, error) {
	m.Lock()
	defer m.Unlock()
	if m.bearer != "" && !m.expired() {
		return m.bearer, nil
	}
	return m.generate()
}

// ForceRefresh unconditionally mints a new bearer and replaces the cache.
// Used when the gateway rejected the cached one.
func (m *Manager) ForceRefresh() (string, error) {
	m.Lock()
	defer m.Unlock()
	return m.generate()
}

// Cached returns the cached (issuedAt, bearer) pair without minting.
func (m *Manager) Cached() (int64, string) {
	m.Lock()
	defer m.Unlock()
	return m.issuedAt, m.bearer
}

// Export returns the cached pair in its persistable "issuedAt.bearer" form.
// Callers may feed the result back through Restore in a later run.
func (m *Manager) Export() string {
	m.Lock()
	defer m.Unlock()
	return fmt.Sprintf("%d.%s", m.issuedAt, m.bearer)
}

func (m *Manager) expired() bool {
	return m.issuedAt+Validity <= m.now().Unix()
}

func (m *Manager) generate() (string, error) {
	issuedAt := m.now().Unix()
	t := &jwt.Token{
		Header: map[string]interface{}{
			"alg": "ES256",
			"kid": m.keyID,
		},
		Claims: jwt.MapClaims{
			"iss": m.teamID,
			"iat": issuedAt,
		},
		Method: jwt.SigningMethodES256,
	}
	bearer, err := t.SignedString(m.authKey)
	if err != nil {
		return "", fmt.Errorf("error signing token: %w", err)
	}
	m.issuedAt = issuedAt
	m.bearer = bearer
	m.logger.WithFields(logrus.Fields{
		"source":   "token",
		"issuedAt": issuedAt,
	}).Debug("minted new provider token")
	return bearer, nil
}
