// Package wsconn provides a WebSocket client with reconnection.
package wsconn

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/coder/websocket"
	"github.com/coder/websocket/wsjson"

	"github.com/fd1az/usdt-bridge/internal/logger"
)

// State represents the connection state.
type State string

const (
	StateDisconnected State = "disconnected"
	StateConnecting   State = "connecting"
	StateConnected    State = "connected"
	StateReconnecting State = "reconnecting"
	StateClosed       State = "closed"
)

// ErrClosed is returned by Send after Close.
var ErrClosed = errors.New("wsconn: client closed")

// Config holds WebSocket client configuration.
type Config struct {
	URL            string
	Name           string
	InitialBackoff time.Duration
	MaxBackoff     time.Duration
	MaxReconnects  int // 0 = infinite
	PingInterval   time.Duration
	PongTimeout    time.Duration
	MaxMessageSize int64
	Logger         logger.LoggerInterface
}

// DefaultConfig returns sensible defaults.
func DefaultConfig(url, name string) Config {
	return Config{
		URL:            url,
		Name:           name,
		InitialBackoff: 1 * time.Second,
		MaxBackoff:     30 * time.Second,
		PingInterval:   30 * time.Second,
		PongTimeout:    10 * time.Second,
		MaxMessageSize: 1 << 20,
	}
}

// MessageHandler receives every inbound message.
type MessageHandler func(ctx context.Context, msg []byte)

// StateHandler observes state transitions. err is set when a transition was
// caused by a failure.
type StateHandler func(state State, err error)

// Client is a WebSocket client that redials with exponential backoff after
// the connection drops.
type Client struct {
	config Config
	log    logger.LoggerInterface

	mu        sync.RWMutex
	conn      *websocket.Conn
	state     State
	onMessage MessageHandler
	onState   StateHandler

	cancel context.CancelFunc
	wg     sync.WaitGroup
}

// New creates a new WebSocket client.
func New(config Config) (*Client, error) {
	if config.URL == "" {
		return nil, errors.New("wsconn: url is required")
	}
	if config.InitialBackoff <= 0 {
		config.InitialBackoff = time.Second
	}
	if config.MaxBackoff < config.InitialBackoff {
		config.MaxBackoff = config.InitialBackoff
	}

	log := config.Logger
	if log == nil {
		log = logger.NewDiscard()
	}

	return &Client{
		config: config,
		log:    log,
		state:  StateDisconnected,
	}, nil
}

// OnMessage sets the inbound message handler. Set it before Connect.
func (c *Client) OnMessage(h MessageHandler) {
	c.mu.Lock()
	c.onMessage = h
	c.mu.Unlock()
}

// OnStateChange sets the state observer.
func (c *Client) OnStateChange(h StateHandler) {
	c.mu.Lock()
	c.onState = h
	c.mu.Unlock()
}

// Connect dials once. On success the read loop runs in the background
// until Close, redialling as needed.
func (c *Client) Connect(ctx context.Context) error {
	if c.State() == StateClosed {
		return ErrClosed
	}
	c.setState(StateConnecting, nil)

	conn, err := c.dial(ctx)
	if err != nil {
		c.setState(StateDisconnected, err)
		return fmt.Errorf("connect %s: %w", c.config.Name, err)
	}

	runCtx, cancel := context.WithCancel(context.Background())
	c.mu.Lock()
	c.conn = conn
	c.cancel = cancel
	c.mu.Unlock()
	c.setState(StateConnected, nil)

	c.wg.Add(1)
	go c.run(runCtx, conn)
	return nil
}

// Send writes a text message.
func (c *Client) Send(ctx context.Context, msg []byte) error {
	conn, err := c.current()
	if err != nil {
		return err
	}
	return conn.Write(ctx, websocket.MessageText, msg)
}

// SendJSON writes v as a JSON text message.
func (c *Client) SendJSON(ctx context.Context, v any) error {
	conn, err := c.current()
	if err != nil {
		return err
	}
	return wsjson.Write(ctx, conn, v)
}

// State returns the current connection state.
func (c *Client) State() State {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.state
}

// IsConnected reports whether a connection is established.
func (c *Client) IsConnected() bool {
	return c.State() == StateConnected
}

// Close stops the read loop and closes the connection. It is idempotent.
func (c *Client) Close() error {
	c.mu.Lock()
	if c.state == StateClosed {
		c.mu.Unlock()
		return nil
	}
	cancel, conn := c.cancel, c.conn
	c.mu.Unlock()

	if cancel != nil {
		cancel()
	}
	if conn != nil {
		_ = conn.Close(websocket.StatusNormalClosure, "")
	}
	c.wg.Wait()

	c.setState(StateClosed, nil)
	return nil
}

func (c *Client) dial(ctx context.Context) (*websocket.Conn, error) {
	conn, _, err := websocket.Dial(ctx, c.config.URL, nil)
	if err != nil {
		return nil, err
	}
	if c.config.MaxMessageSize > 0 {
		conn.SetReadLimit(c.config.MaxMessageSize)
	}
	return conn, nil
}

func (c *Client) current() (*websocket.Conn, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if c.state == StateClosed {
		return nil, ErrClosed
	}
	if c.conn == nil || c.state != StateConnected {
		return nil, fmt.Errorf("wsconn: %s not connected (%s)", c.config.Name, c.state)
	}
	return c.conn, nil
}

// run reads until the connection fails, then redials. It exits when ctx is
// cancelled or the reconnect budget is spent.
func (c *Client) run(ctx context.Context, conn *websocket.Conn) {
	defer c.wg.Done()

	for {
		err := c.readLoop(ctx, conn)
		if ctx.Err() != nil {
			return
		}

		c.log.Warn(ctx, "websocket connection lost", "name", c.config.Name, "error", err)
		c.setState(StateReconnecting, err)

		conn = c.reconnect(ctx)
		if conn == nil {
			return
		}
	}
}

func (c *Client) readLoop(ctx context.Context, conn *websocket.Conn) error {
	if c.config.PingInterval > 0 {
		pingCtx, stop := context.WithCancel(ctx)
		defer stop()
		go c.pingLoop(pingCtx, conn)
	}

	for {
		_, data, err := conn.Read(ctx)
		if err != nil {
			conn.CloseNow()
			return err
		}

		c.mu.RLock()
		handler := c.onMessage
		c.mu.RUnlock()
		if handler != nil {
			handler(ctx, data)
		}
	}
}

func (c *Client) pingLoop(ctx context.Context, conn *websocket.Conn) {
	ticker := time.NewTicker(c.config.PingInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			pctx, cancel := context.WithTimeout(ctx, c.config.PongTimeout)
			err := conn.Ping(pctx)
			cancel()
			if err != nil && ctx.Err() == nil {
				c.log.Warn(ctx, "websocket ping failed", "name", c.config.Name, "error", err)
				conn.CloseNow()
				return
			}
		}
	}
}

func (c *Client) reconnect(ctx context.Context) *websocket.Conn {
	backoff := c.config.InitialBackoff

	for attempt := 1; c.config.MaxReconnects == 0 || attempt <= c.config.MaxReconnects; attempt++ {
		select {
		case <-ctx.Done():
			return nil
		case <-time.After(backoff):
		}

		conn, err := c.dial(ctx)
		if err == nil {
			c.mu.Lock()
			c.conn = conn
			c.mu.Unlock()
			c.setState(StateConnected, nil)
			c.log.Info(ctx, "websocket reconnected", "name", c.config.Name, "attempt", attempt)
			return conn
		}

		c.log.Debug(ctx, "websocket redial failed", "name", c.config.Name, "attempt", attempt, "error", err)
		backoff = min(backoff*2, c.config.MaxBackoff)
	}

	c.setState(StateDisconnected, fmt.Errorf("wsconn: %s gave up after %d reconnects", c.config.Name, c.config.MaxReconnects))
	return nil
}

func (c *Client) setState(state State, err error) {
	c.mu.Lock()
	if c.state == StateClosed || c.state == state {
		c.mu.Unlock()
		return
	}
	c.state = state
	handler := c.onState
	c.mu.Unlock()

	if handler != nil {
		handler(state, err)
	}
}
