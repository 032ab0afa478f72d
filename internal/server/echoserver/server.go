// Package echoserver provides the WireMesh echo server.
package echoserver

import (
	"context"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/wiremesh/wiremesh-go/internal/core/domain"
	"github.com/wiremesh/wiremesh-go/internal/telemetry/logger"
	"github.com/wiremesh/wiremesh-go/internal/telemetry/metric"
)

// Connection limits.
const (
	maxMessageSize = 1024 * 1024
	writeTimeout   = 10 * time.Second
)

// Config holds the echo server configuration.
type Config struct {
	// Listen is the HTTP listen address.
	Listen string `koanf:"listen"`

	// Path is the WebSocket endpoint path.
	Path string `koanf:"path"`
}

// DefaultConfig returns the default echo server configuration.
func DefaultConfig() Config {
	return Config{
		Listen: "localhost:9443",
		Path:   "/stream",
	}
}

// Server is the echo server.
type Server struct {
	cfg        Config
	log        logger.Logger
	httpServer *http.Server
	upgrader   websocket.Upgrader

	mu    sync.Mutex
	conns map[*websocket.Conn]struct{}

	connsTotal  prometheus.Counter
	connsActive prometheus.Gauge
	echoed      prometheus.Counter
}

// Option configures a Server.
type Option func(*Server)

// WithLogger sets the server logger.
func WithLogger(log logger.Logger) Option {
	return func(s *Server) {
		s.log = log
	}
}

// New creates an echo server. Metrics are registered with reg; pass
// prometheus.DefaultRegisterer to expose them on the default /metrics
// handler.
func New(cfg Config, reg prometheus.Registerer, opts ...Option) *Server {
	s := &Server{
		cfg:   cfg,
		log:   logger.Default(),
		conns: make(map[*websocket.Conn]struct{}),
		upgrader: websocket.Upgrader{
			ReadBufferSize:  4096,
			WriteBufferSize: 4096,
		},
	}
	for _, opt := range opts {
		opt(s)
	}

	s.connsTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "wiremesh",
		Subsystem: "echo",
		Name:      "connections_total",
		Help:      "Accepted WebSocket connections.",
	})
	s.connsActive = prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace: "wiremesh",
		Subsystem: "echo",
		Name:      "connections_active",
		Help:      "Currently open WebSocket connections.",
	})
	s.echoed = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "wiremesh",
		Subsystem: "echo",
		Name:      "messages_echoed_total",
		Help:      "Data messages echoed back to clients.",
	})
	reg.MustRegister(s.connsTotal, s.connsActive, s.echoed)

	mux := http.NewServeMux()
	mux.HandleFunc(s.cfg.Path, s.handleStream)
	mux.HandleFunc("/healthz", s.handleHealth)
	mux.Handle("/metrics", metric.Handler())

	s.httpServer = &http.Server{
		Addr:    cfg.Listen,
		Handler: mux,
	}
	return s
}

// ListenAndServe starts the server. It blocks until Shutdown.
func (s *Server) ListenAndServe() error {
	s.log.Info("echo server listening", "addr", s.cfg.Listen, "path", s.cfg.Path)
	return s.httpServer.ListenAndServe()
}

// Handler returns the server's HTTP handler, for tests.
func (s *Server) Handler() http.Handler {
	return s.httpServer.Handler
}

// Shutdown gracefully stops the server and closes open connections.
func (s *Server) Shutdown(ctx context.Context) error {
	s.mu.Lock()
	for conn := range s.conns {
		_ = conn.WriteControl(
			websocket.CloseMessage,
			websocket.FormatCloseMessage(websocket.CloseGoingAway, "server shutting down"),
			time.Now().Add(writeTimeout),
		)
		_ = conn.Close()
	}
	s.mu.Unlock()

	return s.httpServer.Shutdown(ctx)
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok"))
}

// handleStream upgrades the connection and serves the echo loop.
func (s *Server) handleStream(w http.ResponseWriter, r *http.Request) {
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.log.Warn("upgrade failed", "remote", r.RemoteAddr, "error", err)
		return
	}

	s.connsTotal.Inc()
	s.connsActive.Inc()
	s.track(conn, true)
	s.log.Info("client connected", "remote", conn.RemoteAddr().String())

	defer func() {
		s.track(conn, false)
		s.connsActive.Dec()
		_ = conn.Close()
		s.log.Info("client disconnected", "remote", conn.RemoteAddr().String())
	}()

	conn.SetReadLimit(maxMessageSize)
	s.echoLoop(conn)
}

// echoLoop reads messages until the client goes away. Data messages are
// echoed verbatim; heartbeat probes get a heartbeat reply.
func (s *Server) echoLoop(conn *websocket.Conn) {
	for {
		_, data, err := conn.ReadMessage()
		if err != nil {
			if !websocket.IsCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				s.log.Debug("read ended", "error", err)
			}
			return
		}

		msg, err := domain.DecodeMessage(data)
		if err != nil {
			s.log.Warn("undecodable frame dropped", "error", err)
			continue
		}

		reply := data
		if msg.Kind == domain.KindHeartbeat {
			hb, err := domain.NewHeartbeat()
			if err != nil {
				s.log.Error("heartbeat reply creation failed", "error", err)
				continue
			}
			if reply, err = hb.Encode(); err != nil {
				s.log.Error("heartbeat reply encoding failed", "error", err)
				continue
			}
		} else {
			s.echoed.Inc()
		}

		_ = conn.SetWriteDeadline(time.Now().Add(writeTimeout))
		if err := conn.WriteMessage(websocket.TextMessage, reply); err != nil {
			s.log.Warn("echo write failed", "error", err)
			return
		}
	}
}

func (s *Server) track(conn *websocket.Conn, add bool) {
	s.mu.Lock()
	if add {
		s.conns[conn] = struct{}{}
	} else {
		delete(s.conns, conn)
	}
	s.mu.Unlock()
}
