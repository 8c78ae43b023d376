package loganalytics

import "fmt"

// ConfigError reports missing or malformed credentials or client settings.
// No request is attempted when a ConfigError is returned.
type ConfigError struct {
	Reason string
	Err    error
}

func (e *ConfigError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("loganalytics: %s: %v", e.Reason, e.Err)
	}
	return "loganalytics: " + e.Reason
}

func (e *ConfigError) Unwrap() error { return e.Err }

// SerializationError reports a record that could not be marshalled to JSON.
type SerializationError struct {
	Err error
}

func (e *SerializationError) Error() string {
	return fmt.Sprintf("loganalytics: serialize record: %v", e.Err)
}

func (e *SerializationError) Unwrap() error { return e.Err }

// NetworkError reports a transport-level failure: the request never
// completed, so no status code exists.
type NetworkError struct {
	Err error
}

func (e *NetworkError) Error() string {
	return fmt.Sprintf("loganalytics: request failed: %v", e.Err)
}

func (e *NetworkError) Unwrap() error { return e.Err }

// RejectionError reports a non-200 status from the ingestion service. The
// response body is carried for diagnosis; the usual cause is a signing
// defect or clock skew, so the call is not retried.
type RejectionError struct {
	StatusCode int
	Body       string
}

func (e *RejectionError) Error() string {
	return fmt.Sprintf("loganalytics: ingestion rejected with HTTP %d: %s", e.StatusCode, e.Body)
}
