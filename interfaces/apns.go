package interfaces

import "net/http"

// Transport posts serialized notifications to the APNs gateway. It is the
// only thing the dispatcher knows about HTTP; production uses an HTTP/2
// client, tests use a mock.
type Transport interface {
	Do(req *http.Request) (*http.Response, error)
}

// TransportFactory builds the Transport used for one send call. A factory
// error means no delivery can be attempted at all.
type TransportFactory func() (Transport, error)
