package probe

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/rs/zerolog"
)

func newTestProber(client *http.Client) *Prober {
	p := NewProber(zerolog.Nop())
	p.Client = client
	return p
}

func TestOrigin(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
		wantErr  bool
	}{
		{name: "strips path", input: "http://192.168.99.1:7088/udp/239.76.253.151:9000", expected: "http://192.168.99.1:7088"},
		{name: "strips query", input: "https://cdn.example.com/live.m3u8?token=1", expected: "https://cdn.example.com"},
		{name: "no host", input: "/relative/path", wantErr: true},
		{name: "unparsable", input: "http://[::1", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := Origin(tt.input)
			if tt.wantErr {
				if err == nil {
					t.Errorf("expected error, got origin %s", result)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if result != tt.expected {
				t.Errorf("Origin(%s) = %s, expected %s", tt.input, result, tt.expected)
			}
		})
	}
}

func TestIsReachable_HeadOK(t *testing.T) {
	var mu sync.Mutex
	var methods []string
	var paths []string
	var agents []string

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		mu.Lock()
		methods = append(methods, r.Method)
		paths = append(paths, r.URL.Path)
		agents = append(agents, r.Header.Get("User-Agent"))
		mu.Unlock()
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	p := newTestProber(srv.Client())
	if !p.IsReachable(context.Background(), srv.URL+"/udp/239.76.253.151:9000?x=1") {
		t.Fatal("expected server to be reachable")
	}

	mu.Lock()
	defer mu.Unlock()
	if len(methods) != 1 || methods[0] != http.MethodHead {
		t.Errorf("expected a single HEAD request, got %v", methods)
	}
	if paths[0] != "" && paths[0] != "/" {
		t.Errorf("expected origin request without path, got %q", paths[0])
	}
	if agents[0] != UserAgent {
		t.Errorf("expected user agent %q, got %q", UserAgent, agents[0])
	}
}

func TestIsReachable_FallsBackToGet(t *testing.T) {
	var mu sync.Mutex
	var methods []string

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		mu.Lock()
		methods = append(methods, r.Method)
		mu.Unlock()
		if r.Method == http.MethodHead {
			w.WriteHeader(http.StatusMethodNotAllowed)
			return
		}
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("stream bytes"))
	}))
	defer srv.Close()

	p := newTestProber(srv.Client())
	if !p.IsReachable(context.Background(), srv.URL+"/live") {
		t.Fatal("expected GET fallback to succeed")
	}

	mu.Lock()
	defer mu.Unlock()
	if len(methods) != 2 || methods[0] != http.MethodHead || methods[1] != http.MethodGet {
		t.Errorf("expected HEAD then GET, got %v", methods)
	}
}

func TestIsReachable_Non200(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer srv.Close()

	p := newTestProber(srv.Client())
	if p.IsReachable(context.Background(), srv.URL) {
		t.Error("expected 404 to be unreachable")
	}
}

func TestIsReachable_ConnectionRefused(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	addr := srv.URL
	srv.Close()

	p := newTestProber(nil)
	if p.IsReachable(context.Background(), addr+"/x") {
		t.Error("expected closed server to be unreachable")
	}
}

func TestIsReachable_InvalidURL(t *testing.T) {
	p := newTestProber(nil)
	if p.IsReachable(context.Background(), "http://{server}/udp/239.76.253.151:9000") {
		t.Error("expected unresolved template to be unreachable")
	}
}

func TestIsReachable_TimeoutBounded(t *testing.T) {
	release := make(chan struct{})
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-release:
		case <-r.Context().Done():
		}
	}))
	defer srv.Close()
	defer close(release)

	p := newTestProber(srv.Client())
	p.Timeout = 50 * time.Millisecond

	start := time.Now()
	if p.IsReachable(context.Background(), srv.URL) {
		t.Error("expected hanging server to be unreachable")
	}
	if elapsed := time.Since(start); elapsed > 2*time.Second {
		t.Errorf("probe took %v, expected about two timeouts", elapsed)
	}
}
