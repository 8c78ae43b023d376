package loganalytics

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"strconv"
)

// Credentials identify a workspace to the ingestion service. SharedKey is
// the base64-encoded HMAC key. Both are immutable configuration; the key is
// never logged or echoed.
type Credentials struct {
	WorkspaceID string
	SharedKey   string
}

// Validate checks that the credentials are usable before any request is
// attempted.
func (c Credentials) Validate() error {
	if c.WorkspaceID == "" {
		return &ConfigError{Reason: "workspace id is empty"}
	}
	if c.SharedKey == "" {
		return &ConfigError{Reason: "shared key is empty"}
	}
	if _, err := base64.StdEncoding.DecodeString(c.SharedKey); err != nil {
		return &ConfigError{Reason: "shared key is not valid base64", Err: err}
	}
	return nil
}

// CanonicalString joins the signed request fields in the exact order the
// ingestion service verifies them: method, content length, content type,
// the x-ms-date header line, and the resource path. No trailing newline.
// The content length must equal the byte length of the transmitted body;
// any mismatch invalidates the signature.
func CanonicalString(method string, contentLength int, contentType, rfc1123Date, resource string) string {
	return method + "\n" +
		strconv.Itoa(contentLength) + "\n" +
		contentType + "\n" +
		"x-ms-date:" + rfc1123Date + "\n" +
		resource
}

// Signature computes the Authorization header value for one request:
// HMAC-SHA256 over the canonical string keyed with the decoded shared key,
// base64-encoded and prefixed with the SharedKey scheme. Deterministic for
// fixed inputs.
func Signature(creds Credentials, canonical string) (string, error) {
	key, err := base64.StdEncoding.DecodeString(creds.SharedKey)
	if err != nil {
		return "", &ConfigError{Reason: "shared key is not valid base64", Err: err}
	}
	mac := hmac.New(sha256.New, key)
	mac.Write([]byte(canonical))
	digest := base64.StdEncoding.EncodeToString(mac.Sum(nil))
	return "SharedKey " + creds.WorkspaceID + ":" + digest, nil
}
