package websocket

import (
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/wahinekai/memberdb-backend/internal/domain"
)

// ErrSlowClient is returned by Send when a subscriber's queue is full.
// The subscriber is disconnected and has to reconnect to resume the feed.
var ErrSlowClient = errors.New("client send queue full")

const (
	sendQueueSize = 256

	writeTimeout = 10 * time.Second
	idleTimeout  = 60 * time.Second
	// pings go out before idleTimeout lapses on the peer's side
	pingInterval = idleTimeout * 9 / 10

	// the feed is one-way; inbound frames are only control traffic
	inboundLimit = 512
)

// Conn is the part of *websocket.Conn a subscriber uses
type Conn interface {
	SetReadLimit(limit int64)
	SetReadDeadline(t time.Time) error
	SetWriteDeadline(t time.Time) error
	SetPongHandler(h func(appData string) error)
	ReadMessage() (messageType int, p []byte, err error)
	WriteMessage(messageType int, data []byte) error
	Close() error
}

// Client is one subscriber to a chapter feed
type Client struct {
	id      string
	chapter domain.Chapter
	conn    Conn
	hub     *Hub

	queue chan []byte
	done  chan struct{}

	closeOnce sync.Once
	closeErr  error
}

// NewClient wraps conn as a subscriber to chapter's feed on hub
func NewClient(conn Conn, chapter domain.Chapter, hub *Hub) *Client {
	return &Client{
		id:      uuid.New().String(),
		chapter: chapter,
		conn:    conn,
		hub:     hub,
		queue:   make(chan []byte, sendQueueSize),
		done:    make(chan struct{}),
	}
}

func (c *Client) ID() string {
	return c.id
}

func (c *Client) Chapter() domain.Chapter {
	return c.chapter
}

// Send queues data without blocking the hub
func (c *Client) Send(data []byte) error {
	select {
	case <-c.done:
		return ErrClientClosed
	default:
	}

	select {
	case c.queue <- data:
		return nil
	case <-c.done:
		return ErrClientClosed
	default:
		c.logger().Warn().Msg("WebSocket subscriber too slow, disconnecting")
		c.Close()
		return ErrSlowClient
	}
}

// Close ends the subscription. It may be called any number of times.
func (c *Client) Close() error {
	c.closeOnce.Do(func() {
		close(c.done)
		c.closeErr = c.conn.Close()
	})
	return c.closeErr
}

func (c *Client) closed() bool {
	select {
	case <-c.done:
		return true
	default:
		return false
	}
}

// Run serves the subscription until the peer goes away or the client is
// closed, then removes it from the hub
func (c *Client) Run() {
	go c.deliver()
	c.watch()
}

// watch reads control frames so pongs extend the idle deadline
func (c *Client) watch() {
	defer func() {
		c.hub.Unregister(c)
		c.Close()
	}()

	c.conn.SetReadLimit(inboundLimit)
	c.conn.SetReadDeadline(time.Now().Add(idleTimeout))
	c.conn.SetPongHandler(func(string) error {
		return c.conn.SetReadDeadline(time.Now().Add(idleTimeout))
	})

	for {
		if _, _, err := c.conn.ReadMessage(); err != nil {
			if !c.closed() && websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				c.logger().Warn().Err(err).Msg("WebSocket subscriber dropped")
			}
			return
		}
	}
}

// deliver drains the queue to the peer and keeps the connection alive with pings
func (c *Client) deliver() {
	ticker := time.NewTicker(pingInterval)
	defer ticker.Stop()

	for {
		select {
		case <-c.done:
			return
		case data := <-c.queue:
			if err := c.write(websocket.TextMessage, data); err != nil {
				c.logger().Warn().Err(err).Msg("WebSocket write failed")
				c.Close()
				return
			}
		case <-ticker.C:
			if err := c.write(websocket.PingMessage, nil); err != nil {
				c.Close()
				return
			}
		}
	}
}

func (c *Client) write(messageType int, data []byte) error {
	c.conn.SetWriteDeadline(time.Now().Add(writeTimeout))
	return c.conn.WriteMessage(messageType, data)
}

func (c *Client) logger() *zerolog.Logger {
	l := log.With().Str("client_id", c.id).Str("chapter", string(c.chapter)).Logger()
	return &l
}
