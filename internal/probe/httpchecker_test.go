package probe

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"
)

func TestHTTPChecker_Status200(t *testing.T) {
	s := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(200)
		w.Write([]byte("ok"))
	}))
	defer s.Close()

	chk := NewHTTPChecker(s.URL, 2*time.Second, nil)
	out := chk.Check(context.Background())
	if out.Status != StatusOK {
		t.Fatalf("want OK, got %+v", out)
	}
	if out.LatencyMS < 0 {
		t.Fatalf("latency should be >= 0, got %f", out.LatencyMS)
	}
}

func TestHTTPChecker_Status500(t *testing.T) {
	s := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", 500)
	}))
	defer s.Close()

	chk := NewHTTPChecker(s.URL, 2*time.Second, nil)
	out := chk.Check(context.Background())
	if out.Status != StatusFail {
		t.Fatalf("want FAIL, got %+v", out)
	}
	if !strings.Contains(out.Message, s.URL) || !strings.Contains(out.Message, "500") {
		t.Fatalf("message should carry URL and status, got %q", out.Message)
	}
}

func TestHTTPChecker_AcceptedSetOverride(t *testing.T) {
	s := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(204)
	}))
	defer s.Close()

	// 204 fails under the default accepted set...
	if out := NewHTTPChecker(s.URL, 2*time.Second, nil).Check(context.Background()); out.Status != StatusFail {
		t.Fatalf("default set should reject 204, got %+v", out)
	}
	// ...and passes once configured.
	chk := NewHTTPChecker(s.URL, 2*time.Second, []int{200, 204})
	if out := chk.Check(context.Background()); out.Status != StatusOK {
		t.Fatalf("want OK with 204 accepted, got %+v", out)
	}
}

func TestHTTPChecker_TransportError(t *testing.T) {
	s := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(200 * time.Millisecond)
		w.WriteHeader(200)
	}))
	defer s.Close()

	chk := NewHTTPChecker(s.URL, 50*time.Millisecond, nil)
	out := chk.Check(context.Background())
	if out.Status != StatusFail {
		t.Fatalf("want FAIL on timeout, got %+v", out)
	}
	if out.Message == "" {
		t.Fatal("want non-empty error message")
	}
}

func TestHTTPChecker_ConnectionRefused(t *testing.T) {
	chk := NewHTTPChecker("http://127.0.0.1:1", 500*time.Millisecond, nil)
	out := chk.Check(context.Background())
	if out.Status != StatusFail {
		t.Fatalf("want FAIL, got %+v", out)
	}
	if !strings.Contains(out.Message, "http://127.0.0.1:1") {
		t.Fatalf("message should carry the attempted URL: %q", out.Message)
	}
}
