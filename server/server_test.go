package server

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/kbukum/faber/container"
	"github.com/kbukum/faber/errors"
	"github.com/kbukum/faber/logger"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func newTestServer(t *testing.T) (*Server, *container.Registry) {
	t.Helper()
	registry := container.NewRegistry(container.WithLogger(logger.NewNop()))
	c, err := registry.GetOrCreate("app")
	if err != nil {
		t.Fatalf("GetOrCreate failed: %v", err)
	}
	err = c.Load(map[string]any{
		"greeting": "hello",
		"greeter": container.Factory(func(_ *container.Container, args container.Args) (any, error) {
			name, _ := args["name"].(string)
			if name == "" {
				name = "world"
			}
			return "hello " + name, nil
		}),
	})
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	cfg := Config{Host: "127.0.0.1"}
	cfg.ApplyDefaults()
	return New("faber-test", cfg, registry, logger.NewNop()), registry
}

func do(t *testing.T, s *Server, path string) (*httptest.ResponseRecorder, map[string]any) {
	t.Helper()
	rr := httptest.NewRecorder()
	s.Handler().ServeHTTP(rr, httptest.NewRequest(http.MethodGet, path, http.NoBody))
	var body map[string]any
	if err := json.Unmarshal(rr.Body.Bytes(), &body); err != nil {
		t.Fatalf("%s: response is not valid JSON: %v (%s)", path, err, rr.Body.String())
	}
	return rr, body
}

func TestConfigApplyDefaults(t *testing.T) {
	var cfg Config
	cfg.ApplyDefaults()
	if cfg.Port != 8080 {
		t.Errorf("expected port 8080, got %d", cfg.Port)
	}
	if cfg.ReadTimeout != 15*time.Second || cfg.IdleTimeout != 60*time.Second || cfg.ShutdownTimeout != 5*time.Second {
		t.Errorf("unexpected timeouts: %+v", cfg)
	}
}

func TestHealth(t *testing.T) {
	s, registry := newTestServer(t)
	if _, err := registry.GetOrCreate("empty"); err != nil {
		t.Fatalf("GetOrCreate failed: %v", err)
	}

	rr, body := do(t, s, "/health")
	if rr.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rr.Code)
	}
	if body["service"] != "faber-test" {
		t.Errorf("unexpected service %v", body["service"])
	}
	if body["status"] != "degraded" {
		t.Errorf("expected degraded status with an empty container, got %v", body["status"])
	}
	components, _ := body["components"].([]any)
	if len(components) != 2 {
		t.Errorf("expected one component per container, got %v", body["components"])
	}
}

func TestVersion(t *testing.T) {
	s, _ := newTestServer(t)
	rr, body := do(t, s, "/version")
	if rr.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rr.Code)
	}
	if _, ok := body["version"].(string); !ok {
		t.Errorf("expected a version string, got %v", body)
	}
}

func TestContainers(t *testing.T) {
	s, _ := newTestServer(t)
	_, body := do(t, s, "/containers")
	ids, _ := body["containers"].([]any)
	if len(ids) != 1 || ids[0] != "app" {
		t.Errorf("expected [app], got %v", body["containers"])
	}
}

func TestContainerSnapshot(t *testing.T) {
	s, _ := newTestServer(t)
	rr, body := do(t, s, "/containers/app")
	if rr.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rr.Code)
	}
	if body["id"] != "app" {
		t.Errorf("expected id app, got %v", body["id"])
	}
	props, _ := body["properties"].(map[string]any)
	if props["greeting"] != "hello" {
		t.Errorf("expected greeting property, got %v", body["properties"])
	}
	factories, _ := body["factories"].([]any)
	if len(factories) != 1 || factories[0] != "greeter" {
		t.Errorf("expected [greeter], got %v", body["factories"])
	}
}

func TestEntry(t *testing.T) {
	s, registry := newTestServer(t)

	t.Run("property", func(t *testing.T) {
		rr, body := do(t, s, "/containers/app/entries/greeting")
		if rr.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", rr.Code)
		}
		if body["kind"] != "property" || body["value"] != "hello" {
			t.Errorf("unexpected body %v", body)
		}
	})

	t.Run("factory with args", func(t *testing.T) {
		rr, body := do(t, s, "/containers/app/entries/greeter?name=bob")
		if rr.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", rr.Code)
		}
		if body["kind"] != "factory" || body["value"] != "hello bob" || body["type"] != "string" {
			t.Errorf("unexpected body %v", body)
		}
		c, _ := registry.Lookup("app")
		key, _ := c.ObjectKey("greeter", container.Args{"name": "bob"})
		if body["key"] != key || !c.IsCachedObject(key) {
			t.Errorf("expected object cached under %s, got %v", key, body["key"])
		}
	})
}

func TestErrorsAreProblems(t *testing.T) {
	s, _ := newTestServer(t)
	tests := []struct {
		name   string
		path   string
		status int
		code   string
	}{
		{"unknown container", "/containers/missing", http.StatusNotFound, string(errors.ErrCodeUnknownID)},
		{"unknown entry", "/containers/app/entries/nope", http.StatusNotFound, string(errors.ErrCodeUnknownID)},
		{"unknown route", "/nope", http.StatusNotFound, ""},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			rr, body := do(t, s, tc.path)
			if rr.Code != tc.status {
				t.Errorf("expected %d, got %d", tc.status, rr.Code)
			}
			if ct := rr.Header().Get("Content-Type"); !strings.HasPrefix(ct, "application/problem+json") {
				t.Errorf("expected problem content type, got %q", ct)
			}
			if body["instance"] != tc.path {
				t.Errorf("unexpected instance %v", body["instance"])
			}
			if tc.code != "" && body["code"] != tc.code {
				t.Errorf("expected code %s, got %v", tc.code, body["code"])
			}
		})
	}
}

func TestStartStop(t *testing.T) {
	registry := container.NewRegistry(container.WithLogger(logger.NewNop()))
	s := New("faber-test", Config{Host: "127.0.0.1", ShutdownTimeout: time.Second}, registry, logger.NewNop())

	if err := s.Start(context.Background()); err != nil {
		t.Fatalf("Start failed: %v", err)
	}
	resp, err := http.Get("http://" + s.Addr() + "/containers")
	if err != nil {
		t.Fatalf("GET failed: %v", err)
	}
	body, _ := io.ReadAll(resp.Body)
	resp.Body.Close()
	if resp.StatusCode != http.StatusOK || !strings.Contains(string(body), "containers") {
		t.Errorf("unexpected response %d %s", resp.StatusCode, body)
	}

	if err := s.Stop(context.Background()); err != nil {
		t.Fatalf("Stop failed: %v", err)
	}
}
