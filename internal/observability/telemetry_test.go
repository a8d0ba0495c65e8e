package observability

import (
	"context"
	"io"
	"net"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	otellog "go.opentelemetry.io/otel/log"

	"github.com/riskibarqy/footmate/internal/config"
	"github.com/riskibarqy/footmate/internal/platform/logging"
)

type captureServer struct {
	*httptest.Server
	mu     sync.Mutex
	bodies []string
	auth   string
}

func newCaptureServer(t *testing.T) *captureServer {
	t.Helper()
	c := &captureServer{}
	c.Server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		raw, _ := io.ReadAll(r.Body)
		c.mu.Lock()
		c.bodies = append(c.bodies, string(raw))
		c.auth = r.Header.Get("Authorization")
		c.mu.Unlock()
		w.WriteHeader(http.StatusAccepted)
	}))
	t.Cleanup(c.Close)
	return c
}

func shippingConfig(endpoint string) config.Config {
	return config.Config{
		ServiceName:         "footmate-api",
		AppEnv:              config.EnvDev,
		LogLevel:            logging.LevelInfo,
		BetterStackEnabled:  true,
		BetterStackEndpoint: endpoint,
		BetterStackToken:    "secret-token",
		BetterStackTimeout:  2 * time.Second,
		BetterStackMinLevel: logging.LevelWarn,
	}
}

func TestSetup_AllDisabled(t *testing.T) {
	tel, err := Setup(config.Config{ServiceName: "footmate-api", AppEnv: config.EnvDev})
	if err != nil {
		t.Fatalf("setup: %v", err)
	}
	if tel.Logger == nil || len(tel.closers) != 0 {
		t.Fatalf("expected logger and no exporters, got %+v", tel)
	}
	if err := tel.Shutdown(context.Background()); err != nil {
		t.Fatalf("shutdown: %v", err)
	}
}

func TestSetup_ShipsLogsInOneBatch(t *testing.T) {
	srv := newCaptureServer(t)
	tel, err := Setup(shippingConfig(srv.URL))
	if err != nil {
		t.Fatalf("setup: %v", err)
	}

	tel.Logger.Info("below min level")
	tel.Logger.Warn("smtp delivery failed", "circuit_state", "open")
	tel.Logger.Error("create report card failed", "player_id", "player-1")

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if err := tel.Shutdown(ctx); err != nil {
		t.Fatalf("shutdown: %v", err)
	}

	srv.mu.Lock()
	defer srv.mu.Unlock()
	if len(srv.bodies) != 1 {
		t.Fatalf("expected one batch, got %d", len(srv.bodies))
	}
	body := srv.bodies[0]
	if !strings.HasPrefix(body, "[") || strings.Count(body, `"service":"footmate-api"`) != 2 {
		t.Fatalf("unexpected batch: %s", body)
	}
	if strings.Contains(body, "below min level") {
		t.Fatalf("info log should not be shipped: %s", body)
	}
	if srv.auth != "Bearer secret-token" {
		t.Fatalf("unexpected authorization header: %q", srv.auth)
	}
}

func TestSetup_RejectsEmptyEndpoint(t *testing.T) {
	cfg := shippingConfig("")
	if _, err := Setup(cfg); err == nil {
		t.Fatalf("expected error for empty endpoint")
	}
}

func TestBetterStackURL(t *testing.T) {
	if got := betterStackURL(" in.logs.betterstack.com "); got != "https://in.logs.betterstack.com" {
		t.Fatalf("unexpected url: %q", got)
	}
	if got := betterStackURL("http://localhost:9000"); got != "http://localhost:9000" {
		t.Fatalf("unexpected url: %q", got)
	}
}

func TestIsQuietAccessLog(t *testing.T) {
	if !isQuietAccessLog("http request", []any{"method", "GET", "path", "/healthz"}) {
		t.Fatalf("expected health check log to be quiet")
	}
	if isQuietAccessLog("http request", []any{"path", "/report-card/rc-1"}) {
		t.Fatalf("did not expect api request log to be quiet")
	}
	if isQuietAccessLog("email sent", []any{"path", "/healthz"}) {
		t.Fatalf("did not expect other messages to be quiet")
	}
}

func TestOtelAttributes(t *testing.T) {
	attrs := otelAttributes([]any{"contract_id", "ec-1", "status_code", 409, "ids", []string{"a", "b"}, "dangling"})
	if len(attrs) != 4 {
		t.Fatalf("expected 4 attributes, got %d", len(attrs))
	}
	if attrs[0].Key != "contract_id" || attrs[0].Value.AsString() != "ec-1" {
		t.Fatalf("unexpected contract_id attribute")
	}
	if attrs[1].Value.AsInt64() != 409 {
		t.Fatalf("unexpected status_code attribute")
	}
	if attrs[2].Value.Kind() != otellog.KindSlice || len(attrs[2].Value.AsSlice()) != 2 {
		t.Fatalf("unexpected ids attribute")
	}
	if attrs[3].Key != "dangling" || attrs[3].Value.Kind() != otellog.KindEmpty {
		t.Fatalf("unexpected dangling attribute")
	}
}

func TestSetup_PprofPortInUse(t *testing.T) {
	taken, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatalf("listen: %v", err)
	}
	defer taken.Close()

	_, err = Setup(config.Config{
		ServiceName:  "footmate-api",
		AppEnv:       config.EnvDev,
		PprofEnabled: true,
		PprofAddr:    taken.Addr().String(),
	})
	if err == nil {
		t.Fatal("expected setup to fail on a bound pprof port")
	}
}
