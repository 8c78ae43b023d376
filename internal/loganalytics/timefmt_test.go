package loganalytics

import (
	"testing"
	"time"
)

func TestNormalizeUTC_PassesThroughUTC(t *testing.T) {
	in := time.Date(2024, 5, 1, 12, 30, 0, 0, time.UTC)
	out := NormalizeUTC(in)
	if out != in {
		t.Fatalf("expected UTC timestamp unchanged, got %v", out)
	}
}

func TestNormalizeUTC_Idempotent(t *testing.T) {
	loc := time.FixedZone("CEST", 2*60*60)
	in := time.Date(2024, 5, 1, 14, 0, 0, 0, loc)

	once := NormalizeUTC(in)
	twice := NormalizeUTC(once)

	if once.Location() != time.UTC {
		t.Fatalf("expected UTC location, got %v", once.Location())
	}
	if !once.Equal(in) {
		t.Fatal("normalization must not change the instant")
	}
	if twice != once {
		t.Fatalf("normalizing twice differs from once: %v vs %v", twice, once)
	}
}

func TestWireDate(t *testing.T) {
	tests := []struct {
		name string
		in   time.Time
		want string
	}{
		{
			name: "utc",
			in:   time.Date(2006, 1, 2, 15, 4, 5, 0, time.UTC),
			want: "Mon, 02 Jan 2006 15:04:05 GMT",
		},
		{
			name: "non-utc converted",
			in:   time.Date(2006, 1, 2, 17, 4, 5, 0, time.FixedZone("CEST", 2*60*60)),
			want: "Mon, 02 Jan 2006 15:04:05 GMT",
		},
		{
			name: "midnight",
			in:   time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC),
			want: "Wed, 01 May 2024 00:00:00 GMT",
		},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := WireDate(tc.in); got != tc.want {
				t.Fatalf("expected %q, got %q", tc.want, got)
			}
		})
	}
}
