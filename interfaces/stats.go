package interfaces

import "github.com/66f94eae/bark-go/errors"

// StatsReporter interface for reporting delivery stats.
type StatsReporter interface {
	HandleNotificationSent(topic string)
	HandleNotificationSuccess(topic string)
	HandleNotificationFailure(topic string, err *errors.PushError)
	Cleanup() error
}

// StatsDClient is the subset of the statsd client used by the reporter.
type StatsDClient interface {
	Incr(name string, tags []string, rate float64) error
	Close() error
}
