package httpserver

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/mselser95/hearthstone-cards/pkg/healthprobe"
	"go.uber.org/zap"
)

func TestNew(t *testing.T) {
	logger := zap.NewNop()
	healthChecker := healthprobe.New(zap.NewNop())

	tests := []struct {
		name string
		cfg  *Config
	}{
		{
			name: "valid_config_minimal",
			cfg: &Config{
				Port:          "5000",
				Logger:        logger,
				HealthChecker: healthChecker,
			},
		},
		{
			name: "valid_config_with_cards",
			cfg: &Config{
				Port:          "5000",
				Logger:        logger,
				HealthChecker: healthChecker,
				Cards:         &fakeSource{},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := New(tt.cfg)
			if server == nil {
				t.Fatal("New() returned nil server")
			}
			if server.server == nil {
				t.Error("New() server.server is nil")
			}
			if server.logger != tt.cfg.Logger {
				t.Error("New() logger not set correctly")
			}
			if server.healthChecker != tt.cfg.HealthChecker {
				t.Error("New() healthChecker not set correctly")
			}
		})
	}
}

func TestHealthEndpoint(t *testing.T) {
	server := New(&Config{
		Port:          "0",
		Logger:        zap.NewNop(),
		HealthChecker: healthprobe.New(zap.NewNop()),
	})

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	w := httptest.NewRecorder()

	server.Handler().ServeHTTP(w, req)

	resp := w.Result()
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		t.Errorf("Health endpoint status = %d, want %d", resp.StatusCode, http.StatusOK)
	}
}

func TestReadyEndpoint(t *testing.T) {
	tests := []struct {
		name           string
		setReady       bool
		expectedStatus int
	}{
		{
			name:           "ready_when_set",
			setReady:       true,
			expectedStatus: http.StatusOK,
		},
		{
			name:           "not_ready_initially",
			setReady:       false,
			expectedStatus: http.StatusServiceUnavailable,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			hc := healthprobe.New(zap.NewNop())
			if tt.setReady {
				hc.SetReady(true)
			}

			server := New(&Config{
				Port:          "0",
				Logger:        zap.NewNop(),
				HealthChecker: hc,
			})

			req := httptest.NewRequest(http.MethodGet, "/ready", nil)
			w := httptest.NewRecorder()

			server.Handler().ServeHTTP(w, req)

			resp := w.Result()
			defer resp.Body.Close()

			if resp.StatusCode != tt.expectedStatus {
				t.Errorf("Ready endpoint status = %d, want %d", resp.StatusCode, tt.expectedStatus)
			}
		})
	}
}

func TestMetricsEndpoint(t *testing.T) {
	server := New(&Config{
		Port:          "0",
		Logger:        zap.NewNop(),
		HealthChecker: healthprobe.New(zap.NewNop()),
		Cards:         &fakeSource{},
	})

	req := httptest.NewRequest(http.MethodGet, "/metrics", nil)
	w := httptest.NewRecorder()

	server.Handler().ServeHTTP(w, req)

	resp := w.Result()
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		t.Errorf("Metrics endpoint status = %d, want %d", resp.StatusCode, http.StatusOK)
	}

	if resp.Header.Get("Content-Type") == "" {
		t.Error("Metrics endpoint missing Content-Type header")
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatalf("Failed to read metrics response body: %v", err)
	}

	if len(body) == 0 {
		t.Error("Metrics endpoint returned empty body")
	}
}

func TestServer_StartAndShutdown(t *testing.T) {
	server := New(&Config{
		Port:          "0", // Random available port
		Logger:        zap.NewNop(),
		HealthChecker: healthprobe.New(zap.NewNop()),
	})

	serverDone := make(chan error, 1)
	go func() {
		serverDone <- server.Start()
	}()

	// Give server time to start
	time.Sleep(100 * time.Millisecond)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	err := server.Shutdown(ctx)
	if err != nil {
		t.Errorf("Shutdown() error = %v", err)
	}

	select {
	case err := <-serverDone:
		if err != nil {
			t.Errorf("Start() returned error after shutdown: %v", err)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("Start() did not return after shutdown")
	}
}

func TestServer_Timeouts(t *testing.T) {
	tests := []struct {
		name             string
		requestTimeout   time.Duration
		wantWriteTimeout time.Duration
	}{
		{name: "default", requestTimeout: 0, wantWriteTimeout: 35 * time.Second},
		{name: "custom", requestTimeout: 10 * time.Second, wantWriteTimeout: 15 * time.Second},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := New(&Config{
				Port:           "5000",
				Logger:         zap.NewNop(),
				HealthChecker:  healthprobe.New(zap.NewNop()),
				RequestTimeout: tt.requestTimeout,
			})

			if server.server.ReadTimeout != 15*time.Second {
				t.Errorf("ReadTimeout = %v, want %v", server.server.ReadTimeout, 15*time.Second)
			}

			if server.server.ReadHeaderTimeout != 10*time.Second {
				t.Errorf("ReadHeaderTimeout = %v, want %v", server.server.ReadHeaderTimeout, 10*time.Second)
			}

			if server.server.WriteTimeout != tt.wantWriteTimeout {
				t.Errorf("WriteTimeout = %v, want %v", server.server.WriteTimeout, tt.wantWriteTimeout)
			}

			if server.server.IdleTimeout != 60*time.Second {
				t.Errorf("IdleTimeout = %v, want %v", server.server.IdleTimeout, 60*time.Second)
			}
		})
	}
}

func TestServer_RouteNotFound(t *testing.T) {
	server := New(&Config{
		Port:          "0",
		Logger:        zap.NewNop(),
		HealthChecker: healthprobe.New(zap.NewNop()),
	})

	// Without a card source, only the operational routes exist.
	for _, path := range []string{"/", "/Warlock", "/api/cards/Warlock"} {
		req := httptest.NewRequest(http.MethodGet, path, nil)
		w := httptest.NewRecorder()

		server.Handler().ServeHTTP(w, req)

		if w.Code != http.StatusNotFound {
			t.Errorf("%s status = %d, want %d", path, w.Code, http.StatusNotFound)
		}
	}
}
