// Package nats consumes the realtime document feed from a NATS subject, for
// deployments that bridge the backend's change events through a broker
// instead of exposing the websocket directly.
package nats

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/nats-io/nats.go"

	"github.com/DocuuAI/docsyncd/internal/core/ports"
)

type Feed struct {
	conn    *nats.Conn
	subject string
	logger  *slog.Logger
}

type Options struct {
	ConnectTimeout time.Duration
	ReconnectWait  time.Duration
	MaxReconnects  int
	Logger         *slog.Logger
}

func New(url, subject string, options Options) (*Feed, error) {
	connectTimeout := options.ConnectTimeout
	if connectTimeout <= 0 {
		connectTimeout = 2 * time.Second
	}
	reconnectWait := options.ReconnectWait
	if reconnectWait <= 0 {
		reconnectWait = 2 * time.Second
	}
	maxReconnects := options.MaxReconnects
	if maxReconnects <= 0 {
		maxReconnects = 60
	}
	logger := options.Logger
	if logger == nil {
		logger = slog.Default()
	}

	conn, err := nats.Connect(
		url,
		nats.Name("docsyncd"),
		nats.Timeout(connectTimeout),
		nats.ReconnectWait(reconnectWait),
		nats.MaxReconnects(maxReconnects),
		nats.RetryOnFailedConnect(true),
		nats.DisconnectErrHandler(func(_ *nats.Conn, err error) {
			logger.Warn("nats disconnected", "error", err)
		}),
		nats.ReconnectHandler(func(nc *nats.Conn) {
			logger.Info("nats reconnected", "url", nc.ConnectedUrl())
		}),
	)
	if err != nil {
		return nil, fmt.Errorf("connect nats: %w", err)
	}
	return &Feed{conn: conn, subject: subject, logger: logger}, nil
}

func (f *Feed) Close() {
	if f.conn != nil {
		f.conn.Close()
	}
}

// Consume subscribes to the feed subject and delivers events until ctx is
// cancelled, then drains the subscription.
func (f *Feed) Consume(ctx context.Context, handler func(context.Context, ports.RealtimeEvent) error) error {
	sub, err := f.conn.Subscribe(f.subject, func(msg *nats.Msg) {
		if ctx.Err() != nil {
			return
		}

		var event ports.RealtimeEvent
		if err := json.Unmarshal(msg.Data, &event); err != nil {
			f.logger.Warn("realtime event undecodable", "error", err)
			return
		}
		if err := handler(ctx, event); err != nil {
			f.logger.Warn("realtime event rejected", "type", event.Type, "error", err)
		}
	})
	if err != nil {
		return fmt.Errorf("nats subscribe: %w", err)
	}

	if err := f.conn.Flush(); err != nil {
		return fmt.Errorf("nats flush: %w", err)
	}

	<-ctx.Done()
	if err := sub.Drain(); err != nil {
		return fmt.Errorf("nats drain subscription: %w", err)
	}
	if err := f.conn.FlushTimeout(5 * time.Second); err != nil {
		return fmt.Errorf("nats flush after drain: %w", err)
	}
	return ctx.Err()
}
