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
	"context"
	goerrors "errors"
	"io"
	"net/http"
	"strings"
	"sync"
	"testing"

	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"

	"github.com/66f94eae/bark-go/interfaces"
	mock_interfaces "github.com/66f94eae/bark-go/mocks/interfaces"
	"github.com/66f94eae/bark-go/msg"
	"github.com/66f94eae/bark-go/util"
)

const testTopic = "me.fin.bark"

type DispatcherTestSuite struct {
	suite.Suite
	ctrl       *gomock.Controller
	transport  *mock_interfaces.MockTransport
	dispatcher *Dispatcher
	message    *msg.Msg
}

func TestDispatcherSuite(t *testing.T) {
	suite.Run(t, new(DispatcherTestSuite))
}

func (s *DispatcherTestSuite) SetupTest() {
	config, err := util.NewViperWithConfigFile("../config/test.yaml")
	s.Require().NoError(err)
	logger, _ := test.NewNullLogger()

	s.ctrl = gomock.NewController(s.T())
	s.transport = mock_interfaces.NewMockTransport(s.ctrl)
	s.dispatcher = NewDispatcher(false, config, logger, nil, s.transport)

	s.message, err = msg.New("Test Title", "Test Body").Build()
	s.Require().NoError(err)
}

func response(statusCode int, body string) *http.Response {
	return &http.Response{
		StatusCode: statusCode,
		Body:       io.NopCloser(strings.NewReader(body)),
	}
}

func (s *DispatcherTestSuite) TestSendSuccess() {
	s.transport.EXPECT().Do(gomock.Any()).Times(2).Return(response(200, ""), nil)

	outcome, err := s.dispatcher.Send(context.Background(), s.message, testTopic, "tok", []string{"device-a", "device-b"})
	s.Require().NoError(err)
	s.Empty(outcome)
	s.False(outcome.Failed())
}

func (s *DispatcherTestSuite) TestSendDeduplicatesDevices() {
	var mu sync.Mutex
	urls := map[string]int{}
	s.transport.EXPECT().Do(gomock.Any()).Times(2).DoAndReturn(
		func(req *http.Request) (*http.Response, error) {
			mu.Lock()
			urls[req.URL.String()]++
			mu.Unlock()
			return response(200, ""), nil
		})

	outcome, err := s.dispatcher.Send(context.Background(), s.message, testTopic, "tok", []string{"device-a", "device-a", "device-b"})
	s.Require().NoError(err)
	s.Empty(outcome)
	s.Equal(map[string]int{
		HostDevelopment + "/3/device/device-a": 1,
		HostDevelopment + "/3/device/device-b": 1,
	}, urls)
}

func (s *DispatcherTestSuite) TestSendRequestShape() {
	payload, err := s.message.Serialize()
	s.Require().NoError(err)

	s.transport.EXPECT().Do(gomock.Any()).DoAndReturn(
		func(req *http.Request) (*http.Response, error) {
			s.Equal(http.MethodPost, req.Method)
			s.Equal("bearer tok", req.Header.Get("authorization"))
			s.Equal("alert", req.Header.Get("apns-push-type"))
			s.Equal(testTopic, req.Header.Get("apns-topic"))
			s.NotEmpty(req.Header.Get("apns-id"))
			s.Equal("application/json; charset=utf-8", req.Header.Get("Content-Type"))

			body, err := io.ReadAll(req.Body)
			s.Require().NoError(err)
			s.Equal(payload, body)
			return response(200, ""), nil
		})

	outcome, err := s.dispatcher.Send(context.Background(), s.message, testTopic, "tok", []string{"device-a"})
	s.Require().NoError(err)
	s.Empty(outcome)
}

func (s *DispatcherTestSuite) TestSendGatewayFailureWithBody() {
	s.transport.EXPECT().Do(gomock.Any()).Times(2).DoAndReturn(
		func(req *http.Request) (*http.Response, error) {
			if strings.HasSuffix(req.URL.Path, "device-a") {
				return response(410, "GONE!"), nil
			}
			return response(200, ""), nil
		})

	outcome, err := s.dispatcher.Send(context.Background(), s.message, testTopic, "tok", []string{"device-a", "device-b"})
	s.Require().NoError(err)
	s.True(outcome.Failed())
	s.Equal(Outcome{"device-a": "410GONE!"}, outcome)
}

func (s *DispatcherTestSuite) TestSendGatewayFailureEmptyBody() {
	s.transport.EXPECT().Do(gomock.Any()).Return(response(410, ""), nil)

	outcome, err := s.dispatcher.Send(context.Background(), s.message, testTopic, "tok", []string{"device-a"})
	s.Require().NoError(err)
	s.Equal(Outcome{"device-a": "410"}, outcome)
}

func (s *DispatcherTestSuite) TestSendGatewayFailureTinyBody() {
	// bodies of two bytes or fewer are noise and are dropped from the reason
	s.transport.EXPECT().Do(gomock.Any()).Return(response(500, "ok"), nil)

	outcome, err := s.dispatcher.Send(context.Background(), s.message, testTopic, "tok", []string{"device-a"})
	s.Require().NoError(err)
	s.Equal(Outcome{"device-a": "500"}, outcome)
}

func (s *DispatcherTestSuite) TestSendTransportError() {
	s.transport.EXPECT().Do(gomock.Any()).Return(nil, goerrors.New("connection refused"))

	outcome, err := s.dispatcher.Send(context.Background(), s.message, testTopic, "tok", []string{"device-a"})
	s.Require().NoError(err)
	s.Equal(Outcome{"device-a": "connection refused"}, outcome)
}

func (s *DispatcherTestSuite) TestSendTransportFactoryFailure() {
	s.dispatcher.transport = nil
	s.dispatcher.NewTransport = func() (interfaces.Transport, error) {
		return nil, goerrors.New("no client available")
	}

	outcome, err := s.dispatcher.Send(context.Background(), s.message, testTopic, "tok", []string{"device-a", "device-b"})
	s.Require().NoError(err)
	s.Equal(Outcome{
		"device-a": "no client available",
		"device-b": "no client available",
	}, outcome)
}

func (s *DispatcherTestSuite) TestSendSerializationFailure() {
	message, err := msg.New("t", "b").
		EncType("aes128").
		EncMode("gcm").
		Key("0123456789abcdef01234567").
		Build()
	s.Require().NoError(err)

	outcome, err := s.dispatcher.Send(context.Background(), message, testTopic, "tok", []string{"device-a"})
	s.Require().Error(err)
	s.Nil(outcome)
}

func (s *DispatcherTestSuite) TestSendWithZeroConfiguredWorkers() {
	s.dispatcher.workers = 0
	s.transport.EXPECT().Do(gomock.Any()).Times(2).Return(response(200, ""), nil)

	outcome, err := s.dispatcher.Send(context.Background(), s.message, testTopic, "tok", []string{"device-a", "device-b"})
	s.Require().NoError(err)
	s.Empty(outcome)
}

func (s *DispatcherTestSuite) TestSendNoDevices() {
	outcome, err := s.dispatcher.Send(context.Background(), s.message, testTopic, "tok", nil)
	s.Require().NoError(err)
	s.Empty(outcome)
}

func (s *DispatcherTestSuite) TestHosts() {
	config, err := util.NewViperWithConfigFile("../config/test.yaml")
	s.Require().NoError(err)
	logger, _ := test.NewNullLogger()

	s.Equal(HostProduction, NewDispatcher(true, config, logger, nil).host)
	s.Equal(HostDevelopment, NewDispatcher(false, config, logger, nil).host)
}
