package server

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/gorilla/websocket"

	"cheesechase/sim"
)

// Options tunes a Server. The zero value is usable.
type Options struct {
	// MaxBatchSize rejects oversized requests; <= 0 means 4096.
	MaxBatchSize int

	// Batch is passed through to the evaluator (workers, library, rewards).
	// The per-request seed overrides Batch.Seed when non-zero.
	Batch sim.BatchOptions

	Logger *slog.Logger
}

// Server evaluates program batches for websocket clients. Each connection
// is served by one goroutine; requests on a connection are handled in
// order, with the evaluator providing the parallelism.
type Server struct {
	opts     Options
	upgrader websocket.Upgrader
}

// New builds a Server.
func New(opts Options) *Server {
	if opts.MaxBatchSize <= 0 {
		opts.MaxBatchSize = 4096
	}
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}
	return &Server{
		opts: opts,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1 << 16,
			WriteBufferSize: 1 << 16,
		},
	}
}

// Handler returns the http handler for the evaluation endpoint.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/evaluate", s.handleWS)
	mux.HandleFunc("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
	return mux
}

func (s *Server) handleWS(w http.ResponseWriter, r *http.Request) {
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.opts.Logger.Warn("websocket upgrade failed", "err", err)
		return
	}
	defer conn.Close()

	log := s.opts.Logger.With("remote", r.RemoteAddr)
	log.Info("client connected")

	for {
		_, message, err := conn.ReadMessage()
		if err != nil {
			if websocket.IsCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				log.Info("client disconnected")
			} else {
				log.Warn("read error", "err", err)
			}
			return
		}

		resp := s.handleMessage(r.Context(), message)
		if err := conn.WriteJSON(resp); err != nil {
			log.Warn("write error", "err", err)
			return
		}
	}
}

// handleMessage evaluates one request and always produces a reply, echoing
// whatever ID could be recovered from the payload.
func (s *Server) handleMessage(ctx context.Context, message []byte) EvaluateResponse {
	var req EvaluateRequest
	if err := json.Unmarshal(message, &req); err != nil {
		return EvaluateResponse{Type: TypeError, Error: fmt.Sprintf("malformed request: %v", err)}
	}
	if req.Type != TypeEvaluate {
		return EvaluateResponse{Type: TypeError, ID: req.ID, Error: fmt.Sprintf("unknown message type %q", req.Type)}
	}
	if len(req.Programs) > s.opts.MaxBatchSize {
		return EvaluateResponse{Type: TypeError, ID: req.ID,
			Error: fmt.Sprintf("batch of %d exceeds limit %d", len(req.Programs), s.opts.MaxBatchSize)}
	}

	opts := s.opts.Batch
	if req.Seed != 0 {
		opts.Seed = req.Seed
	}
	if req.Workers > 0 {
		opts.Workers = req.Workers
	}

	start := time.Now()
	scores, err := sim.EvaluateBatch(ctx, req.State, req.Programs, opts)
	if err != nil {
		return EvaluateResponse{Type: TypeError, ID: req.ID, Error: err.Error()}
	}

	s.opts.Logger.Debug("batch evaluated",
		"id", req.ID,
		"programs", len(req.Programs),
		"elapsed", time.Since(start),
	)
	return EvaluateResponse{Type: TypeResult, ID: req.ID, Scores: scores}
}
