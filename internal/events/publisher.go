package events

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/BruksfildServices01/barbershop-appointments/internal/audit"
	"github.com/BruksfildServices01/barbershop-appointments/internal/config"
)

const (
	DriverNone  = "none"
	DriverRedis = "redis"
	DriverAMQP  = "amqp"
)

var ErrUnsupportedDriver = errors.New("unsupported events driver")

// Publisher is an audit sink backed by a broker connection.
type Publisher interface {
	audit.Sink
	Close() error
}

// New connects the broker selected by cfg.Driver. It returns a nil
// Publisher when events are disabled.
func New(ctx context.Context, cfg config.EventsConfig) (Publisher, error) {
	switch cfg.Driver {
	case "", DriverNone:
		return nil, nil
	case DriverRedis:
		p, err := NewRedisPublisher(ctx, cfg.RedisURL, cfg.RedisChannel)
		if err != nil {
			return nil, err
		}
		return p, nil
	case DriverAMQP:
		p, err := NewAMQPPublisher(cfg.AMQPURL, cfg.AMQPQueue)
		if err != nil {
			return nil, err
		}
		return p, nil
	default:
		return nil, fmt.Errorf("%w %q", ErrUnsupportedDriver, cfg.Driver)
	}
}

// Connect is New for process startup. A broker that cannot be reached is
// logged and skipped, so appointments keep flowing to the remaining sinks.
// Only a misconfigured driver is returned as an error.
func Connect(ctx context.Context, cfg config.EventsConfig, log *slog.Logger) (Publisher, error) {
	p, err := New(ctx, cfg)
	if err == nil {
		return p, nil
	}
	if errors.Is(err, ErrUnsupportedDriver) {
		return nil, err
	}
	log.Warn("event publisher unavailable, keeping audit log only",
		slog.String("driver", cfg.Driver),
		slog.Any("error", err),
	)
	return nil, nil
}
