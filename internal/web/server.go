// Package web serves the game to browsers: a static page, a websocket per
// player carrying msgpack frames and key events, the sound clips, and
// Prometheus metrics.
package web

import (
	_ "embed"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/gorilla/websocket"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"golang.org/x/time/rate"

	"github.com/tomz197/vectoroids/internal/config"
	"github.com/tomz197/vectoroids/internal/geom"
	"github.com/tomz197/vectoroids/internal/loop"
	"github.com/tomz197/vectoroids/internal/sound"
)

//go:embed static/index.html
var indexPage []byte

// Default device size when the browser does not send one.
const (
	defaultWidth  = 800
	defaultHeight = 600
)

// Config configures a Server.
type Config struct {
	Settings *config.Settings
	Sounds   *sound.Library
	Logger   *log.Logger

	// AllowedOrigins lists origins allowed to open a websocket and make
	// cross-origin requests. Empty allows same-host requests only.
	AllowedOrigins []string

	// InputRate and InputBurst bound incoming messages per connection.
	InputRate  rate.Limit
	InputBurst int
}

// Server hosts browser games. Each websocket gets its own controller.
type Server struct {
	settings config.Settings
	sounds   *sound.Library
	names    []string
	// exclusive maps sounds that must not overlap to their play time.
	exclusive map[sound.ID]time.Duration
	logger    *log.Logger
	origins   []string
	rate      rate.Limit
	burst     int
	upgrader  websocket.Upgrader
	router    *chi.Mux
}

// New creates a server. Sound clips are loaded here when cfg.Sounds is nil.
func New(cfg Config) (*Server, error) {
	settings := config.Default()
	if cfg.Settings != nil {
		settings = *cfg.Settings
	}
	if err := settings.Validate(); err != nil {
		return nil, err
	}

	lib := cfg.Sounds
	if lib == nil {
		var err error
		if lib, err = sound.LoadDefault(); err != nil {
			return nil, err
		}
	}

	logger := cfg.Logger
	if logger == nil {
		logger = log.Default()
	}

	s := &Server{
		settings: settings,
		sounds:   lib,
		logger:   logger,
		origins:  cfg.AllowedOrigins,
		rate:     cfg.InputRate,
		burst:    cfg.InputBurst,
	}
	if s.rate <= 0 {
		s.rate = 60
	}
	if s.burst <= 0 {
		s.burst = 120
	}
	for _, id := range sound.IDs {
		s.names = append(s.names, id.String())
	}
	s.exclusive = map[sound.ID]time.Duration{sound.Thrust: lib.Duration(sound.Thrust)}
	s.upgrader = websocket.Upgrader{
		ReadBufferSize:  1024,
		WriteBufferSize: 16 * 1024,
		CheckOrigin:     s.checkOrigin,
	}
	s.router = s.routes()
	return s, nil
}

// Handler returns the HTTP handler.
func (s *Server) Handler() http.Handler {
	return s.router
}

func (s *Server) routes() *chi.Mux {
	r := chi.NewRouter()

	r.Use(middleware.RealIP)
	r.Use(s.requestLogger)
	r.Use(middleware.Recoverer)
	if len(s.origins) > 0 {
		r.Use(cors.Handler(cors.Options{
			AllowedOrigins: s.origins,
			AllowedMethods: []string{"GET", "OPTIONS"},
			AllowedHeaders: []string{"*"},
		}))
	}

	r.Get("/", s.handleIndex)
	r.Get("/ws", s.handleWS)
	r.Get("/sounds/{name}", s.handleSound)
	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		_, _ = w.Write([]byte("ok"))
	})
	r.Handle("/metrics", promhttp.Handler())
	return r
}

func (s *Server) requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()
		next.ServeHTTP(ww, r)
		s.logger.Debug("request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", ww.Status(),
			"remote", r.RemoteAddr,
			"took", time.Since(start),
		)
	})
}

// checkOrigin accepts requests without an Origin header, same-host
// requests and the configured origins.
func (s *Server) checkOrigin(r *http.Request) bool {
	origin := r.Header.Get("Origin")
	if origin == "" {
		return true
	}
	if strings.TrimPrefix(strings.TrimPrefix(origin, "http://"), "https://") == r.Host {
		return true
	}
	for _, allowed := range s.origins {
		if allowed == "*" || allowed == origin {
			return true
		}
	}
	return false
}

func (s *Server) handleIndex(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_, _ = w.Write(indexPage)
}

func (s *Server) handleSound(w http.ResponseWriter, r *http.Request) {
	name := strings.TrimSuffix(chi.URLParam(r, "name"), ".wav")
	id, ok := sound.Parse(name)
	if !ok {
		http.NotFound(w, r)
		return
	}
	data, ok := s.sounds.Bytes(id)
	if !ok {
		http.NotFound(w, r)
		return
	}
	w.Header().Set("Content-Type", "audio/wav")
	w.Header().Set("Cache-Control", "public, max-age=86400")
	_, _ = w.Write(data)
}

func (s *Server) handleWS(w http.ResponseWriter, r *http.Request) {
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		wsRejectedTotal.WithLabelValues("upgrade").Inc()
		s.logger.Debug("websocket upgrade failed", "remote", r.RemoteAddr, "err", err)
		return
	}

	logger := s.logger.With("remote", r.RemoteAddr)
	c := newClient(conn, rate.NewLimiter(s.rate, s.burst), s.names, s.exclusive, logger)

	ctl, err := loop.New(loop.Options{
		Settings: &s.settings,
		Sounds:   s.sounds,
		Logger:   logger,
	})
	if err != nil {
		logger.Error("create controller", "err", err)
		c.close()
		return
	}
	c.ctl = ctl
	defer ctl.Dispose()
	defer ctl.OnSound(c.playSound)()

	if err := ctl.Initialize(c, requestRect(r)); err != nil {
		logger.Error("initialize controller", "err", err)
		c.close()
		return
	}

	wsConnectionsActive.Inc()
	defer wsConnectionsActive.Dec()
	logger.Info("player connected")

	go c.writePump()
	c.readPump()

	logger.Info("player disconnected")
}

// requestRect reads the device size from the w and h query parameters.
func requestRect(r *http.Request) geom.Rect {
	rect := geom.Rect{Width: defaultWidth, Height: defaultHeight}
	if w, err := strconv.Atoi(r.URL.Query().Get("w")); err == nil && w > 0 {
		rect.Width = w
	}
	if h, err := strconv.Atoi(r.URL.Query().Get("h")); err == nil && h > 0 {
		rect.Height = h
	}
	return rect
}
