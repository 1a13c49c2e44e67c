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
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"sync"

	uuid "github.com/satori/go.uuid"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/viper"

	"github.com/66f94eae/bark-go/errors"
	"github.com/66f94eae/bark-go/extensions"
	"github.com/66f94eae/bark-go/interfaces"
	"github.com/66f94eae/bark-go/msg"
)

const (
	// HostProduction is the APNs production endpoint.
	HostProduction = "https://api.push.apple.com"
	// HostDevelopment is the APNs sandbox endpoint.
	HostDevelopment = "https://api.sandbox.push.apple.com"
)

// Outcome maps a device identifier to the reason its delivery failed. A
// device present in the request and absent here was delivered.
type Outcome map[string]string

// Failed reports whether any device failed.
func (o Outcome) Failed() bool {
	return len(o) > 0
}

// Dispatcher fans a notification out to a set of devices over HTTP/2.
type Dispatcher struct {
	Config         *viper.Viper
	Logger         *log.Logger
	StatsReporters []interfaces.StatsReporter
	// NewTransport builds the transport for a send call when none was
	// injected. A factory error marks every device as failed.
	NewTransport interfaces.TransportFactory
	host         string
	workers      int
	transport    interfaces.Transport
}

// NewDispatcher returns a dispatcher pointed at the production or sandbox
// gateway. A transport can be injected for tests; otherwise an HTTP/2 client
// is built on first use.
func NewDispatcher(
	isProduction bool,
	config *viper.Viper,
	logger *log.Logger,
	statsReporters []interfaces.StatsReporter,
	transportOrNil ...interfaces.Transport,
) *Dispatcher {
	d := &Dispatcher{
		Config:         config,
		Logger:         logger,
		StatsReporters: statsReporters,
	}
	d.loadConfigurationDefaults()
	d.workers = config.GetInt("apns.concurrentWorkers")
	if isProduction {
		d.host = HostProduction
	} else {
		d.host = HostDevelopment
	}
	if len(transportOrNil) == 1 {
		d.transport = transportOrNil[0]
	}
	d.NewTransport = func() (interfaces.Transport, error) {
		return NewHTTPTransport(config)
	}
	return d
}

func (d *Dispatcher) loadConfigurationDefaults() {
	d.Config.SetDefault("apns.concurrentWorkers", 10)
	d.Config.SetDefault("apns.requestTimeout", "30s")
}

// Send serializes the message once and posts it to every unique device in
// devices, returning the per-device failures. The returned error is reserved
// for serialization and encryption failures; delivery problems, including a
// transport that can not be constructed, are reported through the Outcome.
// A non-success status with an empty body counts as a failure carrying the
// bare status code.
func (d *Dispatcher) Send(ctx context.Context, message *msg.Msg, topic, bearer string, devices []string) (Outcome, error) {
	l := d.Logger.WithFields(log.Fields{
		"source": "Dispatcher",
		"method": "Send",
		"topic":  topic,
	})

	payload, err := message.Serialize()
	if err != nil {
		l.WithError(err).Error("error serializing message")
		return nil, err
	}

	unique := make([]string, 0, len(devices))
	seen := make(map[string]bool, len(devices))
	for _, device := range devices {
		if !seen[device] {
			seen[device] = true
			unique = append(unique, device)
		}
	}

	transport := d.transport
	if transport == nil {
		transport, err = d.NewTransport()
		if err != nil {
			l.WithError(err).Error("error building transport, marking all devices as failed")
			outcome := Outcome{}
			for _, device := range unique {
				outcome[device] = err.Error()
				extensions.StatsReporterHandleNotificationFailure(d.StatsReporters, topic,
					errors.NewPushError("transport-error", err.Error()))
			}
			return outcome, nil
		}
	}

	outcome := Outcome{}
	var outcomeMutex sync.Mutex
	queue := make(chan string)
	var wg sync.WaitGroup

	workers := d.workers
	if workers > len(unique) {
		workers = len(unique)
	}
	// a misconfigured worker count must not leave the queue without readers
	if workers < 1 && len(unique) > 0 {
		workers = 1
	}
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for device := range queue {
				reason, failed := d.push(ctx, transport, device, topic, bearer, payload)
				if failed {
					outcomeMutex.Lock()
					outcome[device] = reason
					outcomeMutex.Unlock()
				}
			}
		}()
	}
	for _, device := range unique {
		queue <- device
	}
	close(queue)
	wg.Wait()

	l.WithFields(log.Fields{
		"devices": len(unique),
		"failed":  len(outcome),
	}).Debug("send finished")
	return outcome, nil
}

func (d *Dispatcher) push(ctx context.Context, transport interfaces.Transport, device, topic, bearer string, payload []byte) (string, bool) {
	l := d.Logger.WithFields(log.Fields{
		"source": "Dispatcher",
		"method": "push",
		"device": device,
	})
	extensions.StatsReporterHandleNotificationSent(d.StatsReporters, topic)

	url := fmt.Sprintf("%s/3/device/%s", d.host, device)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(payload))
	if err != nil {
		l.WithError(err).Error("error building request")
		return d.fail(topic, "transport-error", err.Error())
	}
	req.Header.Set("authorization", "bearer "+bearer)
	req.Header.Set("apns-push-type", "alert")
	req.Header.Set("apns-topic", topic)
	req.Header.Set("apns-id", uuid.NewV4().String())
	req.Header.Set("Content-Type", "application/json; charset=utf-8")

	res, err := transport.Do(req)
	if err != nil {
		l.WithError(err).Error("error posting to gateway")
		return d.fail(topic, "transport-error", err.Error())
	}
	defer res.Body.Close()

	if res.StatusCode >= http.StatusOK && res.StatusCode < http.StatusMultipleChoices {
		extensions.StatsReporterHandleNotificationSuccess(d.StatsReporters, topic)
		return "", false
	}

	sc := strconv.Itoa(res.StatusCode)
	body, err := io.ReadAll(res.Body)
	if err != nil {
		l.WithError(err).Error("error reading gateway response")
		return d.fail(topic, "gateway-error", sc+err.Error())
	}
	if len(body) > 2 {
		return d.fail(topic, "gateway-error", sc+string(body))
	}
	return d.fail(topic, "gateway-error", sc)
}

func (d *Dispatcher) fail(topic, key, reason string) (string, bool) {
	extensions.StatsReporterHandleNotificationFailure(d.StatsReporters, topic,
		errors.NewPushError(key, reason))
	return reason, true
}
