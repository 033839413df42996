// Package websocket consumes the backend's realtime document feed: a
// websocket pushing INSERT/DELETE envelopes as documents appear and vanish
// server-side.
package websocket

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/coder/websocket"

	"github.com/DocuuAI/docsyncd/internal/core/ports"
)

type Feed struct {
	url           string
	tokens        ports.TokenSource
	reconnectWait time.Duration
	logger        *slog.Logger
}

type Options struct {
	// ReconnectWait is the pause before redialing a dropped feed.
	ReconnectWait time.Duration
	Logger        *slog.Logger
}

func New(url string, tokens ports.TokenSource, options Options) *Feed {
	wait := options.ReconnectWait
	if wait <= 0 {
		wait = 2 * time.Second
	}
	logger := options.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &Feed{url: url, tokens: tokens, reconnectWait: wait, logger: logger}
}

// Consume dials the feed and delivers events to the handler until ctx is
// cancelled. A dropped connection is redialed after ReconnectWait; handler
// errors are logged, not fatal, so one malformed event cannot kill the feed.
func (f *Feed) Consume(ctx context.Context, handler func(context.Context, ports.RealtimeEvent) error) error {
	for {
		if err := f.consumeOnce(ctx, handler); err != nil {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			f.logger.Warn("realtime feed dropped", "error", err)
		}

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(f.reconnectWait):
		}
	}
}

func (f *Feed) consumeOnce(ctx context.Context, handler func(context.Context, ports.RealtimeEvent) error) error {
	token, err := f.tokens.Token(ctx)
	if err != nil {
		return fmt.Errorf("feed token: %w", err)
	}

	conn, _, err := websocket.Dial(ctx, f.url, &websocket.DialOptions{
		HTTPHeader: http.Header{"Authorization": []string{"Bearer " + token}},
	})
	if err != nil {
		return fmt.Errorf("dial feed: %w", err)
	}
	defer conn.Close(websocket.StatusNormalClosure, "")

	f.logger.Info("realtime feed connected", "url", f.url)

	for {
		_, data, err := conn.Read(ctx)
		if err != nil {
			return fmt.Errorf("read feed: %w", err)
		}

		var event ports.RealtimeEvent
		if err := json.Unmarshal(data, &event); err != nil {
			f.logger.Warn("realtime event undecodable", "error", err)
			continue
		}
		if err := handler(ctx, event); err != nil {
			f.logger.Warn("realtime event rejected", "type", event.Type, "error", err)
		}
	}
}
