package nats

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/bazarly/ads-service/internal/platform/logger"
	"github.com/nats-io/nats.go"
	"go.uber.org/zap"
)

// Publisher emits service events to NATS.
type Publisher struct {
	conn   *nats.Conn
	prefix string
	logger *logger.Logger
}

// NewPublisher connects to NATS. Subjects are prefixed with the service
// name, e.g. "ads-service.ad.featured".
func NewPublisher(url string, log *logger.Logger, serviceName string) (*Publisher, error) {
	conn, err := nats.Connect(url, nats.Name(serviceName))
	if err != nil {
		log.Error("Failed to connect to NATS", zap.String("url", url), zap.Error(err))
		return nil, fmt.Errorf("failed to connect to nats at %s: %w", url, err)
	}
	log.Info("Successfully connected to NATS", zap.String("url", url))
	return &Publisher{conn: conn, prefix: serviceName, logger: log.Named("NATSPublisher")}, nil
}

func (p *Publisher) Publish(ctx context.Context, subject string, data interface{}) error {
	payload, err := json.Marshal(data)
	if err != nil {
		return fmt.Errorf("failed to marshal event payload for %s: %w", subject, err)
	}

	full := p.prefix + "." + subject
	if err := p.conn.Publish(full, payload); err != nil {
		p.logger.Error("Failed to publish event", zap.String("subject", full), zap.Error(err))
		return err
	}
	p.logger.Debug("Event published", zap.String("subject", full))
	return nil
}

func (p *Publisher) Close() {
	p.conn.Close()
}
