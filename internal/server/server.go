package server

import (
	"bufio"
	"context"
	"encoding/json"
	"errors"
	"net"
	"net/http"
	"net/url"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/impactgrid/impactgrid/internal/config"
	"github.com/impactgrid/impactgrid/internal/game"
	"github.com/impactgrid/impactgrid/internal/world"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
)

const (
	requestTimeout = 5 * time.Second
	writeWait      = 5 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = pongWait * 9 / 10
)

// Server serves the donation API, the websocket push stream and metrics.
type Server struct {
	loop     *Loop
	hub      *Hub
	gatherer prometheus.Gatherer
	logger   *zap.Logger
	origins  []string
	upgrader websocket.Upgrader
}

// New wires the HTTP surface around a running loop.
func New(cfg config.ServerConfig, loop *Loop, hub *Hub, gatherer prometheus.Gatherer, logger *zap.Logger) *Server {
	if logger == nil {
		logger = zap.NewNop()
	}
	s := &Server{
		loop:     loop,
		hub:      hub,
		gatherer: gatherer,
		logger:   logger,
		origins:  cfg.AllowedOrigins,
	}
	s.upgrader = websocket.Upgrader{
		ReadBufferSize:  1024,
		WriteBufferSize: 16 * 1024,
		CheckOrigin:     s.checkOrigin,
	}
	return s
}

// Handler returns the routed handler.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /healthz", func(rw http.ResponseWriter, r *http.Request) {
		rw.Header().Set("Content-Type", "text/plain; charset=utf-8")
		_, _ = rw.Write([]byte("ok\n"))
	})
	if s.gatherer != nil {
		mux.Handle("GET /metrics", promhttp.HandlerFor(s.gatherer, promhttp.HandlerOpts{}))
	}
	mux.HandleFunc("GET /api/state", s.handleState)
	mux.HandleFunc("POST /api/donate", s.handleDonate)
	mux.HandleFunc("POST /api/select", s.handleSelect)
	mux.HandleFunc("POST /api/reset", s.handleReset)
	mux.HandleFunc("GET /ws", s.handleWS)
	return s.logRequests(mux)
}

type donateRequest struct {
	Category string `json:"category"`
	Amount   *int   `json:"amount,omitempty"` // omitted uses the current selection
}

type selectRequest struct {
	Amount *int    `json:"amount,omitempty"`
	Custom *string `json:"custom,omitempty"`
}

type selectResponse struct {
	Amount int `json:"amount"`
}

type errorResponse struct {
	Error string `json:"error"`
}

func (s *Server) handleState(rw http.ResponseWriter, r *http.Request) {
	var st game.State
	if !s.do(rw, r, func(sim *game.Sim) { st = sim.Snapshot() }) {
		return
	}
	writeJSON(rw, http.StatusOK, st)
}

func (s *Server) handleDonate(rw http.ResponseWriter, r *http.Request) {
	var req donateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(rw, http.StatusBadRequest, errorResponse{Error: "invalid JSON body"})
		return
	}
	cat, ok := world.ParseCategory(req.Category)
	if !ok {
		writeJSON(rw, http.StatusBadRequest, errorResponse{Error: game.ErrUnknownCategory.Error()})
		return
	}

	var (
		err  error
		acct game.AccountState
	)
	ok = s.do(rw, r, func(sim *game.Sim) {
		if req.Amount != nil {
			err = sim.Donate(cat, *req.Amount)
		} else {
			err = sim.DonateSelected(cat)
		}
		acct = sim.AccountState(cat)
	})
	if !ok {
		return
	}
	switch {
	case errors.Is(err, game.ErrNoAmount):
		writeJSON(rw, http.StatusBadRequest, errorResponse{Error: game.PromptNoAmount})
	case err != nil:
		writeJSON(rw, http.StatusBadRequest, errorResponse{Error: err.Error()})
	default:
		writeJSON(rw, http.StatusAccepted, acct)
	}
}

func (s *Server) handleSelect(rw http.ResponseWriter, r *http.Request) {
	var req selectRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(rw, http.StatusBadRequest, errorResponse{Error: "invalid JSON body"})
		return
	}
	if (req.Amount == nil) == (req.Custom == nil) {
		writeJSON(rw, http.StatusBadRequest, errorResponse{Error: "exactly one of amount or custom is required"})
		return
	}

	var resp selectResponse
	ok := s.do(rw, r, func(sim *game.Sim) {
		if req.Amount != nil {
			sim.Selection.ChoosePreset(*req.Amount)
		} else {
			sim.Selection.SetCustom(*req.Custom)
		}
		resp.Amount = sim.Selection.Amount()
	})
	if ok {
		writeJSON(rw, http.StatusOK, resp)
	}
}

func (s *Server) handleReset(rw http.ResponseWriter, r *http.Request) {
	var st game.State
	if !s.do(rw, r, func(sim *game.Sim) {
		sim.Reset()
		st = sim.Snapshot()
	}) {
		return
	}
	writeJSON(rw, http.StatusOK, st)
}

func (s *Server) handleWS(rw http.ResponseWriter, r *http.Request) {
	conn, err := s.upgrader.Upgrade(rw, r, nil)
	if err != nil {
		return
	}
	defer conn.Close()

	// Join on the loop goroutine so no event can slip in ahead of the snapshot.
	id := uuid.NewString()
	ctx, cancel := context.WithTimeout(r.Context(), requestTimeout)
	c, err := s.joinClient(ctx, id)
	cancel()
	if err != nil {
		s.logger.Warn("websocket join failed", zap.Error(err))
		_ = conn.WriteControl(websocket.CloseMessage,
			websocket.FormatCloseMessage(websocket.CloseTryAgainLater, "server busy"),
			time.Now().Add(time.Second))
		return
	}
	defer s.hub.leave(c)

	log := s.logger.With(zap.String("client", id))
	log.Info("websocket connected", zap.String("remote", r.RemoteAddr))

	readDone := make(chan struct{})
	go func() {
		defer close(readDone)
		conn.SetReadLimit(512)
		_ = conn.SetReadDeadline(time.Now().Add(pongWait))
		conn.SetPongHandler(func(string) error {
			return conn.SetReadDeadline(time.Now().Add(pongWait))
		})
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()

	ping := time.NewTicker(pingPeriod)
	defer ping.Stop()
	for {
		select {
		case <-readDone:
			log.Info("websocket disconnected")
			return
		case b, ok := <-c.send:
			_ = conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				_ = conn.WriteMessage(websocket.CloseMessage,
					websocket.FormatCloseMessage(websocket.CloseGoingAway, "bye"))
				log.Info("websocket closed by server")
				return
			}
			if err := conn.WriteMessage(websocket.TextMessage, b); err != nil {
				log.Info("websocket write failed", zap.Error(err))
				return
			}
		case <-ping.C:
			_ = conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

// do runs fn on the loop and writes a 503 if the loop is unavailable.
func (s *Server) do(rw http.ResponseWriter, r *http.Request, fn func(*game.Sim)) bool {
	ctx, cancel := context.WithTimeout(r.Context(), requestTimeout)
	defer cancel()
	if err := s.loop.Do(ctx, fn); err != nil {
		s.logger.Warn("sim loop unavailable", zap.String("path", r.URL.Path), zap.Error(err))
		writeJSON(rw, http.StatusServiceUnavailable, errorResponse{Error: "simulation unavailable"})
		return false
	}
	return true
}

func (s *Server) checkOrigin(r *http.Request) bool {
	origin := r.Header.Get("Origin")
	if origin == "" {
		return true
	}
	if len(s.origins) > 0 {
		return slices.Contains(s.origins, origin)
	}
	u, err := url.Parse(origin)
	if err != nil {
		return false
	}
	return strings.EqualFold(u.Host, r.Host)
}

func writeJSON(rw http.ResponseWriter, status int, v any) {
	rw.Header().Set("Content-Type", "application/json")
	rw.WriteHeader(status)
	_ = json.NewEncoder(rw).Encode(v)
}

// statusRecorder captures the response code for request logging.
type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (w *statusRecorder) WriteHeader(code int) {
	w.status = code
	w.ResponseWriter.WriteHeader(code)
}

func (w *statusRecorder) Hijack() (net.Conn, *bufio.ReadWriter, error) {
	h, ok := w.ResponseWriter.(http.Hijacker)
	if !ok {
		return nil, nil, errors.New("response does not support hijacking")
	}
	w.status = http.StatusSwitchingProtocols
	return h.Hijack()
}

func (w *statusRecorder) Unwrap() http.ResponseWriter { return w.ResponseWriter }

func (s *Server) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(rw http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: rw, status: http.StatusOK}
		next.ServeHTTP(rec, r)
		if r.URL.Path == "/healthz" || r.URL.Path == "/metrics" {
			return
		}
		s.logger.Info("request",
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
			zap.Int("status", rec.status),
			zap.Duration("took", time.Since(start)))
	})
}

// joinClient registers a websocket client on the loop goroutine with the
// current snapshot as its first message. A join that lands after ctx is done
// is skipped or undone so no undrained client stays in the hub.
func (s *Server) joinClient(ctx context.Context, id string) (*client, error) {
	var (
		mu        sync.Mutex
		abandoned bool
		c         *client
		joinErr   error
	)
	err := s.loop.Do(ctx, func(sim *game.Sim) {
		mu.Lock()
		defer mu.Unlock()
		if abandoned {
			return
		}
		if joinErr = ctx.Err(); joinErr != nil {
			return
		}
		st := sim.Snapshot()
		c, joinErr = s.hub.join(id, Event{Type: EventState, State: &st})
	})

	mu.Lock()
	defer mu.Unlock()
	if err == nil {
		err = joinErr
	}
	if err != nil {
		abandoned = true
		if c != nil {
			s.hub.leave(c)
		}
		return nil, err
	}
	return c, nil
}
