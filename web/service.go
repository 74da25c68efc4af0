package web

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net"
	"net/http"
	"time"

	"github.com/zeptools/gw-invoice/svc"
)

type Service struct {
	Ctx             context.Context    // Service Context
	Cancel          context.CancelFunc // Service Context CancelFunc
	state           int                // internal service state
	done            chan error         // Shutdown Error Channel
	Server          *http.Server
	ShutdownTimeout time.Duration
	listener        net.Listener
}

// Ensure web.Service implements svc.Service
var _ svc.Service = (*Service)(nil)

func NewService(parentCtx context.Context, addr string, router http.Handler) *Service {
	svcCtx, svcCancel := context.WithCancel(parentCtx)
	return &Service{
		Ctx:    svcCtx,
		Cancel: svcCancel,
		state:  svc.StateREADY,
		done:   make(chan error, 1),
		Server: &http.Server{
			Addr:              addr,
			Handler:           router,
			ReadHeaderTimeout: 10 * time.Second,
		},
		ShutdownTimeout: 15 * time.Second,
	}
}

func (s *Service) Name() string {
	return "WebService"
}

// Addr is the bound address once started
func (s *Service) Addr() string {
	if s.listener == nil {
		return s.Server.Addr
	}
	return s.listener.Addr().String()
}

// Start binds the listener and serves in the background.
// Bind errors are returned; serve errors go to Done()
func (s *Service) Start() error {
	if s.state != svc.StateREADY {
		return fmt.Errorf("cannot start. not ready")
	}
	listener, err := net.Listen("tcp", s.Server.Addr)
	if err != nil {
		return fmt.Errorf("listen(%q) failed: %w", s.Server.Addr, err)
	}
	s.listener = listener
	s.state = svc.StateRUNNING

	serveErr := make(chan error, 1)
	go func() {
		log.Printf("[INFO][Web] listening on %s ...", listener.Addr())
		if err := s.Server.Serve(listener); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErr <- err
			return
		}
		serveErr <- nil
	}()

	go func() {
		select {
		case err := <-serveErr:
			// server died on its own
			s.done <- err
			return
		case <-s.Ctx.Done():
		}
		// requests already being processed get ShutdownTimeout to finish
		ctx, cancel := context.WithTimeout(context.Background(), s.ShutdownTimeout)
		defer cancel()
		if err := s.Server.Shutdown(ctx); err != nil {
			log.Printf("[ERROR][Web] server shutdown failed: %v", err)
		}
		s.done <- <-serveErr
		log.Println("[INFO][Web] shutdown complete")
	}()
	return nil
}

func (s *Service) Stop() {
	s.Cancel()
	s.state = svc.StateSTOPPED
}

func (s *Service) Done() <-chan error {
	return s.done
}
