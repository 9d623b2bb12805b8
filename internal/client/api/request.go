package api

import (
	"net/http"
	"net/url"
	"time"
)

// request is the per-call envelope. retried flips to true at most once,
// before the single refresh-and-retry.
type request struct {
	method  string
	path    string
	body    any
	header  http.Header
	query   url.Values
	timeout time.Duration
	retried bool
}

// RequestOption customises a single call.
type RequestOption func(*request)

// WithHeader sets an extra request header.
func WithHeader(key, value string) RequestOption {
	return func(r *request) {
		if r.header == nil {
			r.header = make(http.Header)
		}
		r.header.Set(key, value)
	}
}

// WithQuery adds a query parameter.
func WithQuery(key, value string) RequestOption {
	return func(r *request) {
		if r.query == nil {
			r.query = make(url.Values)
		}
		r.query.Add(key, value)
	}
}

// WithParams merges query parameters.
func WithParams(params url.Values) RequestOption {
	return func(r *request) {
		if r.query == nil {
			r.query = make(url.Values)
		}
		for k, vs := range params {
			for _, v := range vs {
				r.query.Add(k, v)
			}
		}
	}
}

// WithRequestTimeout overrides the client timeout for this call.
// The timeout applies to each attempt separately.
func WithRequestTimeout(d time.Duration) RequestOption {
	return func(r *request) { r.timeout = d }
}

// WithBody attaches a JSON body; used with Delete.
func WithBody(body any) RequestOption {
	return func(r *request) { r.body = body }
}

func newRequest(method, path string, body any, opts []RequestOption) *request {
	r := &request{method: method, path: path, body: body}
	for _, opt := range opts {
		opt(r)
	}
	return r
}
