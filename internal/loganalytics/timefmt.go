package loganalytics

import (
	"net/http"
	"time"
)

// NormalizeUTC coerces t to UTC. A timestamp already in UTC is returned
// unchanged, so the operation is idempotent.
func NormalizeUTC(t time.Time) time.Time {
	if t.Location() == time.UTC {
		return t
	}
	return t.UTC()
}

// WireDate renders t in the RFC-1123 GMT form used on the wire
// ("Mon, 02 Jan 2006 15:04:05 GMT"). The same rendered string must be used
// both in the canonical string and the x-ms-date header; computing it twice
// risks a clock tick between signing and transmission.
func WireDate(t time.Time) string {
	return NormalizeUTC(t).Format(http.TimeFormat)
}
