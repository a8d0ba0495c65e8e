package mailer

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/wneessen/go-mail"

	"github.com/riskibarqy/footmate/internal/domain/notification"
	"github.com/riskibarqy/footmate/internal/platform/logging"
	"github.com/riskibarqy/footmate/internal/platform/resilience"
)

type SMTPConfig struct {
	Host     string
	Port     int
	Username string
	Password string
	From     string
	Timeout  time.Duration
	Breaker  resilience.BreakerConfig
}

// SMTPSender delivers mail through go-mail behind a circuit breaker.
type SMTPSender struct {
	cfg     SMTPConfig
	breaker *resilience.Breaker
	logger  *logging.Logger
}

func NewSMTPSender(cfg SMTPConfig, logger *logging.Logger) (*SMTPSender, error) {
	if strings.TrimSpace(cfg.Host) == "" {
		return nil, errors.New("smtp host is required")
	}
	if strings.TrimSpace(cfg.From) == "" {
		return nil, errors.New("smtp from address is required")
	}
	if cfg.Port <= 0 {
		cfg.Port = 587
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 10 * time.Second
	}
	if logger == nil {
		logger = logging.Default()
	}

	breaker := resilience.NewBreaker("smtp", cfg.Breaker,
		resilience.OnStateChange(func(name string, from, to resilience.State) {
			logger.Warn("circuit state changed", "dependency", name, "from", string(from), "to", string(to))
		}),
	)
	return &SMTPSender{cfg: cfg, breaker: breaker, logger: logger}, nil
}

func (s *SMTPSender) Send(ctx context.Context, msg notification.Message) error {
	err := s.breaker.Execute(ctx, func(ctx context.Context) error {
		return s.deliver(ctx, msg)
	})
	if err != nil {
		s.logger.WarnContext(ctx, "smtp delivery failed",
			"circuit_state", string(s.breaker.State()),
			"error", err,
		)
		return fmt.Errorf("smtp delivery: %w", err)
	}
	return nil
}

func (s *SMTPSender) deliver(ctx context.Context, msg notification.Message) error {
	m := mail.NewMsg()
	if err := m.From(s.cfg.From); err != nil {
		return fmt.Errorf("set mail from: %w", err)
	}
	if err := m.To(msg.To); err != nil {
		return fmt.Errorf("set mail to: %w", err)
	}
	m.Subject(msg.Subject)
	m.SetBodyString(mail.TypeTextPlain, msg.Text)
	m.AddAlternativeString(mail.TypeTextHTML, msg.HTML)

	opts := []mail.Option{
		mail.WithPort(s.cfg.Port),
		mail.WithTLSPolicy(mail.TLSOpportunistic),
		mail.WithTimeout(s.cfg.Timeout),
	}
	if s.cfg.Username != "" {
		opts = append(opts,
			mail.WithSMTPAuth(mail.SMTPAuthPlain),
			mail.WithUsername(s.cfg.Username),
			mail.WithPassword(s.cfg.Password),
		)
	}
	client, err := mail.NewClient(s.cfg.Host, opts...)
	if err != nil {
		return fmt.Errorf("create smtp client: %w", err)
	}
	if err := client.DialAndSendWithContext(ctx, m); err != nil {
		return fmt.Errorf("send mail: %w", err)
	}
	return nil
}

// LogSender writes emails to the log instead of delivering them. It backs
// local runs without an SMTP relay.
type LogSender struct {
	logger *logging.Logger
}

func NewLogSender(logger *logging.Logger) *LogSender {
	if logger == nil {
		logger = logging.Default()
	}
	return &LogSender{logger: logger}
}

func (s *LogSender) Send(ctx context.Context, msg notification.Message) error {
	s.logger.InfoContext(ctx, "email not delivered, smtp disabled",
		"to", msg.To,
		"subject", msg.Subject,
	)
	return nil
}
