package postgres

import (
	"context"
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/gatherhub/event-catalog-service/internal/config"
	"github.com/gatherhub/event-catalog-service/internal/domain"
	"github.com/gatherhub/event-catalog-service/internal/remote"
)

// Listener implements remote.ChangeFeed over Postgres LISTEN/NOTIFY. Each
// subscription holds a dedicated connection from the pool; notifications
// arrive in commit order and are forwarded in that order.
type Listener struct {
	client *Client
	config config.Feed
	log    *zap.Logger
}

// NewListener creates a change feed bound to the configured notify channel.
func NewListener(client *Client, cfg config.Feed, log *zap.Logger) *Listener {
	return &Listener{
		client: client,
		config: cfg,
		log:    log,
	}
}

// Subscribe opens a subscription. Delivery stops when the subscription is
// closed or ctx is cancelled; either way the event channel is closed.
func (l *Listener) Subscribe(ctx context.Context) (remote.Subscription, error) {
	subCtx, cancel := context.WithCancel(ctx)

	s := &subscription{
		events: make(chan domain.ChangeEvent, l.config.BufferSize),
		cancel: cancel,
		done:   make(chan struct{}),
	}

	go l.run(subCtx, s)

	return s, nil
}

// run owns the listening connection. On transient errors it releases the
// connection, backs off, and re-listens; reconnection is invisible to the
// consumer apart from a gap in delivery.
func (l *Listener) run(ctx context.Context, s *subscription) {
	defer close(s.done)
	defer close(s.events)

	retryDelay := time.Duration(l.config.RetryDelaySec) * time.Second

	for {
		if ctx.Err() != nil {
			l.log.Info("Change feed listener shutting down")
			return
		}

		if err := l.listen(ctx, s); err != nil {
			if ctx.Err() != nil {
				l.log.Info("Change feed listener shutting down")
				return
			}
			l.log.Error("Change feed connection lost, reconnecting", zap.Error(err))
			select {
			case <-ctx.Done():
				return
			case <-time.After(retryDelay):
			}
		}
	}
}

// listen acquires a connection, subscribes to the notify channel, and
// forwards decoded events until the connection or context fails.
func (l *Listener) listen(ctx context.Context, s *subscription) error {
	conn, err := l.client.Pool().Acquire(ctx)
	if err != nil {
		return fmt.Errorf("failed to acquire listen connection: %w", err)
	}
	defer conn.Release()

	if _, err := conn.Exec(ctx, "LISTEN "+l.config.Channel); err != nil {
		return fmt.Errorf("failed to listen on %s: %w", l.config.Channel, err)
	}

	l.log.Info("Listening for catalog changes", zap.String("channel", l.config.Channel))

	for {
		notification, err := conn.Conn().WaitForNotification(ctx)
		if err != nil {
			return fmt.Errorf("failed to wait for notification: %w", err)
		}

		event, err := DecodeChange([]byte(notification.Payload))
		if err != nil {
			l.log.Warn("Ignoring malformed change payload",
				zap.String("channel", notification.Channel),
				zap.Error(err))
			continue
		}

		select {
		case <-ctx.Done():
			return ctx.Err()
		case s.events <- *event:
		}
	}
}

type subscription struct {
	events    chan domain.ChangeEvent
	cancel    context.CancelFunc
	done      chan struct{}
	closeOnce sync.Once
}

// Events returns the delivery channel. It is closed when the subscription ends.
func (s *subscription) Events() <-chan domain.ChangeEvent {
	return s.events
}

// Close cancels delivery and waits for the listener goroutine to finish, so
// no event is forwarded after Close returns. Idempotent.
func (s *subscription) Close() error {
	s.closeOnce.Do(func() {
		s.cancel()
		<-s.done
	})
	return nil
}
