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

package apns

import (
	"net/http"

	"github.com/spf13/viper"
	"golang.org/x/net/http2"

	"github.com/66f94eae/bark-go/interfaces"
)

// NewHTTPTransport builds the HTTP/2 client used to talk to the gateway.
// APNs only speaks HTTP/2, so the http2 transport is used directly instead
// of letting net/http negotiate.
func NewHTTPTransport(config *viper.Viper) (interfaces.Transport, error) {
	return &http.Client{
		Transport: &http2.Transport{},
		Timeout:   config.GetDuration("apns.requestTimeout"),
	}, nil
}
