package web

import (
	"errors"
	"sync"
	"sync/atomic"
	"time"

	"github.com/charmbracelet/log"
	"github.com/gorilla/websocket"
	"github.com/vmihailenco/msgpack/v5"
	"golang.org/x/time/rate"

	"github.com/tomz197/vectoroids/internal/draw"
	"github.com/tomz197/vectoroids/internal/loop"
	"github.com/tomz197/vectoroids/internal/sound"
)

const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = (pongWait * 9) / 10
	maxMessageSize = 512
	sendBufSize    = 8
)

var errSlowClient = errors.New("client send buffer full")

// client is one browser. It is the controller's renderer: every frame is
// encoded and queued for the write pump, and dropped when the queue is full.
type client struct {
	conn    *websocket.Conn
	ctl     *loop.Controller
	send    chan []byte
	done    chan struct{}
	once    sync.Once
	limiter *rate.Limiter
	sounds  []string
	seq     atomic.Uint64
	logger  *log.Logger

	// exclusive sounds are not sent again until the previous copy has
	// finished playing in the browser.
	exclusive map[sound.ID]time.Duration
	playing   *sound.Locker[sound.ID]
}

func newClient(conn *websocket.Conn, limiter *rate.Limiter, sounds []string, exclusive map[sound.ID]time.Duration, logger *log.Logger) *client {
	return &client{
		conn:      conn,
		send:      make(chan []byte, sendBufSize),
		done:      make(chan struct{}),
		limiter:   limiter,
		sounds:    sounds,
		logger:    logger,
		exclusive: exclusive,
		playing:   sound.NewLocker[sound.ID](),
	}
}

// Initialize implements draw.Renderer.
func (c *client) Initialize(palette draw.Palette) error {
	if err := palette.Validate(); err != nil {
		return err
	}
	return c.queue(MsgInit, newInitMsg(palette, c.sounds))
}

// Draw implements draw.Renderer.
func (c *client) Draw(lines []draw.Line, polygons []draw.Polygon) error {
	return c.queue(MsgFrame, newFrameMsg(c.seq.Add(1), lines, polygons))
}

func (c *client) playSound(id sound.ID) {
	if length, ok := c.exclusive[id]; ok {
		lock, ok := c.playing.TryLock(id)
		if !ok {
			return
		}
		time.AfterFunc(length, lock.Release)
	}
	if err := c.queue(MsgSound, SoundMsg{ID: id.String()}); err != nil {
		c.logger.Debug("sound dropped", "sound", id, "err", err)
	}
}

func (c *client) queue(t string, d any) error {
	data, err := encode(t, d)
	if err != nil {
		return err
	}
	select {
	case <-c.done:
		return websocket.ErrCloseSent
	case c.send <- data:
		wsMessagesTotal.WithLabelValues("out", t).Inc()
		return nil
	default:
		wsRejectedTotal.WithLabelValues("slow_client").Inc()
		return errSlowClient
	}
}

func (c *client) close() {
	c.once.Do(func() {
		close(c.done)
		c.conn.Close()
	})
}

// readPump feeds key messages into the controller until the connection
// drops.
func (c *client) readPump() {
	defer c.close()

	c.conn.SetReadLimit(maxMessageSize)
	c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		c.conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	for {
		_, raw, err := c.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				c.logger.Debug("websocket read failed", "err", err)
			}
			return
		}

		if !c.limiter.Allow() {
			wsRejectedTotal.WithLabelValues("rate_limit").Inc()
			continue
		}

		var env Envelope
		if err := msgpack.Unmarshal(raw, &env); err != nil {
			wsRejectedTotal.WithLabelValues("invalid").Inc()
			continue
		}
		if err := applyInput(c.ctl, env); err != nil {
			wsRejectedTotal.WithLabelValues("invalid").Inc()
			continue
		}
		wsMessagesTotal.WithLabelValues("in", inputLabel(env.T)).Inc()
	}
}

// writePump drains the send queue and keeps the connection alive. When the
// game exits it sends the final score and closes.
func (c *client) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.close()
	}()

	for {
		select {
		case <-c.done:
			return

		case data := <-c.send:
			if err := c.write(websocket.BinaryMessage, data); err != nil {
				return
			}

		case <-c.ctl.Exited():
			score, high := c.ctl.Score()
			if data, err := encode(MsgExit, ExitMsg{Score: score, High: high}); err == nil {
				_ = c.write(websocket.BinaryMessage, data)
			}
			_ = c.write(websocket.CloseMessage, websocket.FormatCloseMessage(websocket.CloseNormalClosure, "game over"))
			return

		case <-ticker.C:
			if err := c.write(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

// inputLabel keeps client supplied types out of metric labels.
func inputLabel(t string) string {
	switch t {
	case MsgDown, MsgUp, MsgResize:
		return t
	}
	return "other"
}

func (c *client) write(messageType int, data []byte) error {
	c.conn.SetWriteDeadline(time.Now().Add(writeWait))
	return c.conn.WriteMessage(messageType, data)
}
