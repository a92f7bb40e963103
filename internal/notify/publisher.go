package notify

import (
	"context"
	"os"

	"go.uber.org/zap"
)

// Publisher delivers account events once the provisioning transaction has committed.
type Publisher interface {
	PublishVerificationRequested(ctx context.Context, msg *VerificationRequested) error
	Close() error
}

type Config struct {
	URL      string
	Exchange string
	Queue    string
}

// ConfigFromEnv reads AMQP_URL, AMQP_EXCHANGE and AMQP_QUEUE.
func ConfigFromEnv() Config {
	return Config{
		URL:      os.Getenv("AMQP_URL"),
		Exchange: getEnv("AMQP_EXCHANGE", "couple-finance"),
		Queue:    getEnv("AMQP_QUEUE", "account_verification"),
	}
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// New returns an AMQP publisher when a broker URL is configured, otherwise a
// publisher that only logs.
func New(cfg Config, logger *zap.SugaredLogger) (Publisher, error) {
	if cfg.URL == "" {
		logger.Info("AMQP_URL not set; verification events will only be logged")
		return NewLogPublisher(logger), nil
	}
	return NewAMQPPublisher(cfg, logger)
}

// LogPublisher records events in the log instead of a broker.
type LogPublisher struct {
	logger *zap.SugaredLogger
}

func NewLogPublisher(logger *zap.SugaredLogger) *LogPublisher {
	return &LogPublisher{logger: logger}
}

func (p *LogPublisher) PublishVerificationRequested(ctx context.Context, msg *VerificationRequested) error {
	p.logger.Infow("verification requested", "account_id", msg.AccountID, "email", msg.Email)
	return nil
}

func (p *LogPublisher) Close() error { return nil }
