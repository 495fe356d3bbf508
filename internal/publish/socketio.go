package publish

import (
	"context"
	"crypto/tls"
	"errors"
	"fmt"
	"net/url"
	"time"

	"github.com/vk/mppimport/internal/ctxlog"
	"github.com/vk/mppimport/internal/model"
	"github.com/zishang520/engine.io-client-go/transports"
	"github.com/zishang520/engine.io/v2/types"
	"github.com/zishang520/socket.io-client-go/socket"
)

const defaultConnectTimeout = 15 * time.Second

// SocketIOConfig configures the socket.io consumer.
type SocketIOConfig struct {
	URL                string
	Namespace          string
	Event              string
	Timeout            time.Duration
	ConnectTimeout     time.Duration
	InsecureSkipVerify bool
}

// ackEmitter is the part of the socket.io client Publish needs.
type ackEmitter interface {
	Id() string
	Connected() bool
	EmitWithAck(ev string, args ...any) func(func([]any, error))
}

// SocketIO emits each model to a socket.io consumer and waits for the
// consumer to acknowledge that emit.
type SocketIO struct {
	cfg  SocketIOConfig
	io   *socket.Socket
	conn ackEmitter
}

// DialSocketIO connects to the consumer.
func DialSocketIO(ctx context.Context, cfg SocketIOConfig) (*SocketIO, error) {
	logger := ctxlog.FromContext(ctx).With("publisher", "socketio", "url", cfg.URL)

	if cfg.Event == "" {
		return nil, errors.New("socket.io publisher needs an event")
	}
	parsedURL, err := url.Parse(cfg.URL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse URL: %w", err)
	}
	if parsedURL.Scheme == "" || parsedURL.Host == "" {
		return nil, fmt.Errorf("socket.io URL %q needs a scheme and a host", cfg.URL)
	}

	opts := socket.DefaultOptions()
	opts.SetPath(parsedURL.Path)
	if cfg.InsecureSkipVerify {
		logger.Warn("Skipping TLS certificate verification")
		opts.SetTLSClientConfig(&tls.Config{InsecureSkipVerify: true})
	}
	opts.SetTransports(types.NewSet(transports.WebSocket))

	connectChan := make(chan error, 1)

	baseURL := fmt.Sprintf("%s://%s", parsedURL.Scheme, parsedURL.Host)
	manager := socket.NewManager(baseURL, opts)
	io := manager.Socket(cfg.Namespace, opts)

	io.Once(types.EventName("connect"), func(...any) {
		logger.Info("Connected to model consumer", "sid", io.Id())
		connectChan <- nil
	})
	io.Once(types.EventName("connect_error"), func(errs ...any) {
		err := errors.New("connect_error")
		if len(errs) > 0 {
			if e, ok := errs[0].(error); ok {
				err = e
			}
		}
		connectChan <- err
	})

	logger.Debug("Initiating connection...")
	io.Connect()

	timeout := cfg.ConnectTimeout
	if timeout <= 0 {
		timeout = defaultConnectTimeout
	}
	select {
	case err := <-connectChan:
		if err != nil {
			io.Disconnect()
			return nil, fmt.Errorf("socket.io connection failed: %w", err)
		}
		return &SocketIO{cfg: cfg, io: io, conn: io}, nil
	case <-ctx.Done():
		io.Disconnect()
		return nil, fmt.Errorf("context cancelled while waiting for socket.io connection: %w", ctx.Err())
	case <-time.After(timeout):
		io.Disconnect()
		return nil, fmt.Errorf("timed out after %v waiting for socket.io connection", timeout)
	}
}

// Publish emits the model envelope and waits for the consumer to call the
// ack of that emit. Acks of earlier emits never complete a later Publish.
func (s *SocketIO) Publish(ctx context.Context, project string, m *model.Model) error {
	logger := ctxlog.FromContext(ctx).With("publisher", "socketio", "sid", s.conn.Id(), "project", project)

	if !s.conn.Connected() {
		return errors.New("socket.io client is not connected")
	}

	opCtx := ctx
	if s.cfg.Timeout > 0 {
		var cancel context.CancelFunc
		opCtx, cancel = context.WithTimeout(ctx, s.cfg.Timeout)
		defer cancel()
	}

	acked := make(chan error, 1)
	logger.Debug("Emitting model", "event", s.cfg.Event)
	s.conn.EmitWithAck(s.cfg.Event, envelope(project, m))(func(_ []any, err error) {
		acked <- err
	})

	select {
	case <-opCtx.Done():
		return fmt.Errorf("waiting for ack of event '%s': %w", s.cfg.Event, opCtx.Err())
	case err := <-acked:
		if err != nil {
			return fmt.Errorf("ack of event '%s': %w", s.cfg.Event, err)
		}
		logger.Info("Model acknowledged", "event", s.cfg.Event)
		return nil
	}
}

// Close disconnects from the consumer.
func (s *SocketIO) Close() error {
	s.io.Disconnect()
	return nil
}
