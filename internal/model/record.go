package model

import (
	"bytes"
	"encoding/json"
	"fmt"
	"time"
)

// Record is one telemetry event: an ordered mapping from string keys to
// scalar values (string, number, or time.Time). Keys keep their insertion
// order when marshalled, so serialized output is stable across runs.
type Record struct {
	keys   []string
	values map[string]any
}

// NewRecord returns an empty Record.
func NewRecord() *Record {
	return &Record{values: make(map[string]any)}
}

// Set stores value under key. A new key is appended after existing keys;
// setting an existing key replaces its value but keeps its position.
func (r *Record) Set(key string, value any) {
	if r.values == nil {
		r.values = make(map[string]any)
	}
	if _, ok := r.values[key]; !ok {
		r.keys = append(r.keys, key)
	}
	r.values[key] = value
}

// Get returns the value stored under key.
func (r *Record) Get(key string) (any, bool) {
	v, ok := r.values[key]
	return v, ok
}

// Keys returns the record's keys in insertion order.
func (r *Record) Keys() []string {
	out := make([]string, len(r.keys))
	copy(out, r.keys)
	return out
}

// Len returns the number of keys in the record.
func (r *Record) Len() int {
	return len(r.keys)
}

// UnsupportedValueError reports a record value outside the scalar set.
type UnsupportedValueError struct {
	Key   string
	Value any
}

func (e *UnsupportedValueError) Error() string {
	return fmt.Sprintf("record key %q holds unsupported type %T", e.Key, e.Value)
}

// MarshalJSON writes the record as a JSON object with keys in insertion
// order. Numbers become JSON numbers and time.Time values become ISO-8601
// strings. Any value outside the scalar set fails with UnsupportedValueError.
func (r *Record) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, key := range r.keys {
		if i > 0 {
			buf.WriteByte(',')
		}
		k, err := json.Marshal(key)
		if err != nil {
			return nil, err
		}
		buf.Write(k)
		buf.WriteByte(':')

		switch v := r.values[key].(type) {
		case string, int, int32, int64, float32, float64, time.Time:
			b, err := json.Marshal(v)
			if err != nil {
				return nil, err
			}
			buf.Write(b)
		default:
			return nil, &UnsupportedValueError{Key: key, Value: v}
		}
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}
