package server

import (
	"context"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/coder/quartz"
	"github.com/gorilla/websocket"
	"golang.org/x/sync/errgroup"

	"github.com/lox/flip7/internal/session"
)

// Connection serves one client over a websocket. Every connection owns its
// own session: nothing is shared between clients.
type Connection struct {
	conn        *websocket.Conn
	sess        *session.Session
	logger      *log.Logger
	clock       quartz.Clock
	idleTimeout time.Duration
	send        chan Response
	ctx         context.Context
	cancel      context.CancelFunc
	closeOnce   sync.Once
}

// NewConnection wraps an upgraded websocket with a fresh session
func NewConnection(conn *websocket.Conn, sess *session.Session, logger *log.Logger, clock quartz.Clock, idleTimeout time.Duration) *Connection {
	ctx, cancel := context.WithCancel(context.Background())

	return &Connection{
		conn:        conn,
		sess:        sess,
		logger:      logger.WithPrefix("conn"),
		clock:       clock,
		idleTimeout: idleTimeout,
		send:        make(chan Response, 16),
		ctx:         ctx,
		cancel:      cancel,
	}
}

// Run pumps commands and responses until the client disconnects or goes
// idle past the timeout
func (c *Connection) Run() error {
	idle := c.clock.AfterFunc(c.idleTimeout, func() {
		c.logger.Info("Closing idle connection", "timeout", c.idleTimeout)
		_ = c.Close()
	})
	defer idle.Stop()

	g, _ := errgroup.WithContext(c.ctx)
	g.Go(func() error { return c.readPump(idle) })
	g.Go(c.writePump)

	err := g.Wait()
	_ = c.Close()
	if websocket.IsCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
		return nil
	}
	return err
}

// Close shuts the connection down; safe to call more than once
func (c *Connection) Close() error {
	var err error
	c.closeOnce.Do(func() {
		c.cancel()
		err = c.conn.Close()
	})
	return err
}

// readPump reads commands, applies them to the session and queues the
// responses. Commands are handled strictly one at a time.
func (c *Connection) readPump(idle *quartz.Timer) error {
	for {
		var cmd Command
		if err := c.conn.ReadJSON(&cmd); err != nil {
			return err
		}
		idle.Reset(c.idleTimeout)

		resp := Handle(c.sess, cmd)
		c.logger.Debug("Handled command", "type", cmd.Type, "card", cmd.Card, "ok", resp.OK)

		select {
		case c.send <- resp:
		case <-c.ctx.Done():
			return c.ctx.Err()
		}
	}
}

// writePump writes queued responses to the client
func (c *Connection) writePump() error {
	for {
		select {
		case resp := <-c.send:
			if err := c.conn.WriteJSON(resp); err != nil {
				return err
			}
		case <-c.ctx.Done():
			return nil
		}
	}
}
