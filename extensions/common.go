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

package extensions

import (
	"github.com/66f94eae/bark-go/errors"
	"github.com/66f94eae/bark-go/interfaces"
)

// StatsReporterHandleNotificationSent reports an attempted delivery to all reporters.
func StatsReporterHandleNotificationSent(statsReporters []interfaces.StatsReporter, topic string) {
	for _, statsReporter := range statsReporters {
		statsReporter.HandleNotificationSent(topic)
	}
}

// StatsReporterHandleNotificationSuccess reports a delivered notification to all reporters.
func StatsReporterHandleNotificationSuccess(statsReporters []interfaces.StatsReporter, topic string) {
	for _, statsReporter := range statsReporters {
		statsReporter.HandleNotificationSuccess(topic)
	}
}

// StatsReporterHandleNotificationFailure reports a failed delivery to all reporters.
func StatsReporterHandleNotificationFailure(statsReporters []interfaces.StatsReporter, topic string, err *errors.PushError) {
	for _, statsReporter := range statsReporters {
		statsReporter.HandleNotificationFailure(topic, err)
	}
}
