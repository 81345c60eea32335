package panel

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"github.com/nbenliogludev/go-market-sniper/internal/sniper"
)

// Controller is the part of sniper.Controller the panel drives.
type Controller interface {
	Start(ctx context.Context, cmd sniper.StartCommand) error
	Stop()
	UpdateParameter(name, value string) error
	QueryNames(ctx context.Context, fragment string) ([]sniper.NameEntry, error)
	SelectName(ctx context.Context, name string) error
	SetBuyNowBound(ctx context.Context, b sniper.Bound, value string) error
	Status() sniper.Status
}

// Dumper renders the interactive elements of the page for logElements.
type Dumper interface {
	Dump(ctx context.Context) (string, error)
}

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		origin := r.Header.Get("Origin")
		if origin == "" {
			return true
		}
		u, err := url.Parse(origin)
		if err != nil {
			return false
		}
		// browser extensions connect from their own scheme
		return u.Host == r.Host || u.Scheme == "chrome-extension"
	},
}

type Server struct {
	ctrl   Controller
	hub    *Hub
	dumper Dumper
	log    *zap.Logger

	// base is the context commands run under.
	base context.Context
}

type ServerOption func(*Server)

func WithDumper(d Dumper) ServerOption {
	return func(s *Server) { s.dumper = d }
}

func WithLogger(log *zap.Logger) ServerOption {
	return func(s *Server) { s.log = log }
}

func NewServer(ctrl Controller, hub *Hub, opts ...ServerOption) *Server {
	s := &Server{ctrl: ctrl, hub: hub, log: zap.NewNop(), base: context.Background()}
	for _, opt := range opts {
		opt(s)
	}
	s.log = s.log.Named("panel")
	return s
}

// Handler serves the websocket endpoint and the status endpoint.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/ws", s.serveWS)
	mux.HandleFunc("GET /status", s.serveStatus)
	mux.HandleFunc("GET /healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
	return mux
}

// ListenAndServe runs the hub and the HTTP server until ctx is done.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	s.base = ctx
	go s.hub.Run(ctx)

	srv := &http.Server{
		Addr:              addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.log.Info("panel listening", zap.String("addr", addr))
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("panel server: %w", err)
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("panel shutdown: %w", err)
		}
		return nil
	}
}

func (s *Server) serveWS(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.log.Warn("upgrade failed", zap.Error(err))
		return
	}

	id := uuid.NewString()
	c := &client{
		id:     id,
		hub:    s.hub,
		server: s,
		conn:   conn,
		send:   make(chan []byte, 64),
		log:    s.log.With(zap.String("client", id)),
	}
	if !s.hub.add(c) {
		conn.Close()
		return
	}

	go c.writePump()
	go c.readPump()
}

func (s *Server) serveStatus(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(s.ctrl.Status()); err != nil {
		s.log.Warn("write status", zap.Error(err))
	}
}

// dispatch routes one command to the controller. Page interactions that
// wait on the page run in their own goroutine so stop stays responsive.
func (s *Server) dispatch(c *client, cmd Command) {
	log := c.log.With(zap.String("action", cmd.Action))
	ctx := s.base

	fail := func(err error) {
		log.Warn("command failed", zap.Error(err))
		c.reply(Reply{Action: ReplyError, Request: cmd.Action, Error: err.Error()})
	}

	if p, ok := tunableActions[cmd.Action]; ok {
		if err := s.ctrl.UpdateParameter(string(p), cmd.ValueString()); err != nil {
			fail(err)
		}
		return
	}

	switch cmd.Action {
	case ActionStartSearch:
		if err := s.ctrl.Start(ctx, cmd.StartCommand); err != nil {
			fail(err)
		}
	case ActionStopSearch:
		s.ctrl.Stop()
	case ActionStatus:
		st := s.ctrl.Status()
		c.reply(Reply{Action: ReplyStatus, Status: &st})
	case ActionInputChange:
		go func() {
			// names are broadcast as updateNames by the controller
			if _, err := s.ctrl.QueryNames(ctx, cmd.ValueString()); err != nil {
				fail(err)
			}
		}()
	case ActionPlayerSelected:
		go func() {
			if err := s.ctrl.SelectName(ctx, cmd.ValueString()); err != nil {
				fail(err)
			}
		}()
	case ActionMinBuyNowChange, ActionMaxBuyNowChange:
		bound := sniper.MinBuyNow
		if cmd.Action == ActionMaxBuyNowChange {
			bound = sniper.MaxBuyNow
		}
		go func() {
			if err := s.ctrl.SetBuyNowBound(ctx, bound, cmd.ValueString()); err != nil {
				fail(err)
			}
		}()
	case ActionLogElements:
		if s.dumper == nil {
			fail(errors.New("page dump is not available"))
			return
		}
		go func() {
			dump, err := s.dumper.Dump(ctx)
			if err != nil {
				fail(err)
				return
			}
			log.Info("page elements", zap.String("dump", dump))
			c.reply(Reply{Action: ReplyElements, Dump: dump})
		}()
	default:
		fail(fmt.Errorf("unknown action %q", cmd.Action))
	}
}
