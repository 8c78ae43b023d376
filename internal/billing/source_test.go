package billing

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func TestStaticSource_FillsPeriodAndDay(t *testing.T) {
	src := StaticSource{Report: UsageReport{BudgetAmount: 500, Spend: 42}}

	report, err := src.Fetch(context.Background())
	if err != nil {
		t.Fatalf("fetch: %v", err)
	}
	if report.BillingPeriod != Period(time.Now()) {
		t.Fatalf("expected current period, got %q", report.BillingPeriod)
	}
	if report.Day == "" {
		t.Fatal("expected day to be filled")
	}
	if report.BudgetAmount != 500 || report.Spend != 42 {
		t.Fatalf("figures changed: %+v", report)
	}
}

func TestHTTPSource_Fetch(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			t.Errorf("expected GET, got %s", r.Method)
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"budgetAmount":500,"billingPeriod":"202405","day":"05-01-2024","spend":123}`))
	}))
	defer srv.Close()

	src := NewHTTPSource(srv.URL, 5*time.Second)
	report, err := src.Fetch(context.Background())
	if err != nil {
		t.Fatalf("fetch: %v", err)
	}
	want := UsageReport{BudgetAmount: 500, BillingPeriod: "202405", Day: "05-01-2024", Spend: 123}
	if report != want {
		t.Fatalf("expected %+v, got %+v", want, report)
	}
}

func TestHTTPSource_NonOKStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	src := NewHTTPSource(srv.URL, 5*time.Second)
	if _, err := src.Fetch(context.Background()); err == nil {
		t.Fatal("expected error for non-200 response")
	}
}

func TestNewSource(t *testing.T) {
	if _, err := NewSource("static", "", UsageReport{}, time.Second); err != nil {
		t.Fatalf("static source: %v", err)
	}
	if _, err := NewSource("http", "http://localhost:1/report", UsageReport{}, time.Second); err != nil {
		t.Fatalf("http source: %v", err)
	}
	if _, err := NewSource("http", "", UsageReport{}, time.Second); err == nil {
		t.Fatal("expected error for http source without endpoint")
	}
	if _, err := NewSource("carrier-pigeon", "", UsageReport{}, time.Second); err == nil {
		t.Fatal("expected error for unknown source kind")
	}
}
