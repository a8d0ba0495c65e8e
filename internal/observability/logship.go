package observability

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/valyala/bytebufferpool"
	"github.com/valyala/fasthttp"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/riskibarqy/footmate/internal/config"
	"github.com/riskibarqy/footmate/internal/platform/logging"
)

const (
	shipQueueSize     = 2048
	shipBatchSize     = 50
	shipFlushInterval = time.Second
)

func (t *Telemetry) startLogShipping(cfg config.Config) error {
	if !cfg.BetterStackEnabled {
		t.Logger.Info("betterstack disabled", "reason", "BETTERSTACK_ENABLED=false")
		return nil
	}
	endpoint := betterStackURL(cfg.BetterStackEndpoint)
	if endpoint == "" {
		return errors.New("betterstack endpoint cannot be empty")
	}

	shipper := newLogShipper(endpoint, strings.TrimSpace(cfg.BetterStackToken), cfg.BetterStackTimeout)
	encoder := zap.NewProductionEncoderConfig()
	encoder.TimeKey = "dt"
	encoder.EncodeTime = zapcore.RFC3339NanoTimeEncoder
	shipCore := zapcore.NewCore(
		zapcore.NewJSONEncoder(encoder),
		zapcore.AddSync(shipper),
		cfg.BetterStackMinLevel,
	).With([]zapcore.Field{
		zap.String("service", cfg.ServiceName),
		zap.String("environment", cfg.AppEnv),
	})

	stdout := t.Logger.Zap()
	t.Logger = logging.FromZap(stdout.WithOptions(zap.WrapCore(func(core zapcore.Core) zapcore.Core {
		return zapcore.NewTee(core, shipCore)
	})))
	t.onShutdown("betterstack", shipper.Close)

	t.Logger.Info("betterstack enabled",
		"endpoint", endpoint,
		"min_level", cfg.BetterStackMinLevel.String(),
	)
	return nil
}

func betterStackURL(raw string) string {
	value := strings.TrimSpace(raw)
	if value == "" || strings.HasPrefix(value, "http://") || strings.HasPrefix(value, "https://") {
		return value
	}
	return "https://" + value
}

// logShipper is a zapcore.WriteSyncer that posts JSON log lines to Better
// Stack in batches. Lines are dropped, and counted, when the queue is full.
type logShipper struct {
	endpoint string
	token    string
	timeout  time.Duration
	client   *fasthttp.Client

	lines   chan []byte
	done    chan struct{}
	mu      sync.RWMutex
	closed  bool
	once    sync.Once
	dropped atomic.Uint64
}

func newLogShipper(endpoint, token string, timeout time.Duration) *logShipper {
	if timeout <= 0 {
		timeout = 3 * time.Second
	}
	s := &logShipper{
		endpoint: endpoint,
		token:    token,
		timeout:  timeout,
		client:   &fasthttp.Client{Name: "footmate-logship"},
		lines:    make(chan []byte, shipQueueSize),
		done:     make(chan struct{}),
	}
	go s.run()
	return s
}

func (s *logShipper) Write(p []byte) (int, error) {
	line := bytes.TrimSpace(p)
	if len(line) == 0 {
		return len(p), nil
	}

	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.closed {
		return len(p), nil
	}
	// zap reuses p once Write returns.
	select {
	case s.lines <- bytes.Clone(line):
	default:
		if n := s.dropped.Add(1); n == 1 || n%100 == 0 {
			fmt.Fprintf(os.Stderr, "betterstack queue full, dropped=%d\n", n)
		}
	}
	return len(p), nil
}

func (s *logShipper) Sync() error {
	return nil
}

func (s *logShipper) run() {
	defer close(s.done)
	ticker := time.NewTicker(shipFlushInterval)
	defer ticker.Stop()

	batch := make([][]byte, 0, shipBatchSize)
	flush := func() {
		if len(batch) == 0 {
			return
		}
		if err := s.post(batch); err != nil {
			fmt.Fprintf(os.Stderr, "betterstack ship failed, lines=%d: %v\n", len(batch), err)
		}
		batch = batch[:0]
	}
	for {
		select {
		case line, ok := <-s.lines:
			if !ok {
				flush()
				return
			}
			batch = append(batch, line)
			if len(batch) >= shipBatchSize {
				flush()
			}
		case <-ticker.C:
			flush()
		}
	}
}

// post sends the batch as one JSON array.
func (s *logShipper) post(batch [][]byte) error {
	body := bytebufferpool.Get()
	defer bytebufferpool.Put(body)
	_ = body.WriteByte('[')
	for i, line := range batch {
		if i > 0 {
			_ = body.WriteByte(',')
		}
		_, _ = body.Write(line)
	}
	_ = body.WriteByte(']')

	req := fasthttp.AcquireRequest()
	resp := fasthttp.AcquireResponse()
	defer fasthttp.ReleaseRequest(req)
	defer fasthttp.ReleaseResponse(resp)

	req.SetRequestURI(s.endpoint)
	req.Header.SetMethod(fasthttp.MethodPost)
	req.Header.SetContentType("application/json")
	if s.token != "" {
		req.Header.Set(fasthttp.HeaderAuthorization, "Bearer "+s.token)
	}
	req.SetBodyRaw(body.B)

	if err := s.client.DoTimeout(req, resp, s.timeout); err != nil {
		return err
	}
	if code := resp.StatusCode(); code >= fasthttp.StatusMultipleChoices {
		return fmt.Errorf("unexpected status %d", code)
	}
	return nil
}

// Close stops accepting lines and waits for the queue to drain.
func (s *logShipper) Close(ctx context.Context) error {
	s.once.Do(func() {
		s.mu.Lock()
		s.closed = true
		close(s.lines)
		s.mu.Unlock()
	})
	select {
	case <-s.done:
		return nil
	case <-ctx.Done():
		return fmt.Errorf("drain betterstack queue: %w", ctx.Err())
	}
}
