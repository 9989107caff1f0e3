package httpserver

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/Abdurahmanit/GroupProject/shop-service/internal/app/config"
	"github.com/Abdurahmanit/GroupProject/shop-service/internal/platform/logger"
)

type Server struct {
	srv *http.Server
	log logger.Logger
}

func NewServer(cfg config.HTTPServerConfig, handler http.Handler, log logger.Logger) *Server {
	return &Server{
		srv: &http.Server{
			Addr:         ":" + cfg.Port,
			Handler:      handler,
			ReadTimeout:  cfg.ReadTimeout,
			WriteTimeout: cfg.WriteTimeout,
			IdleTimeout:  cfg.IdleTimeout,
		},
		log: log.Named("HTTPServer"),
	}
}

// Start blocks until the server stops. A graceful Stop is not reported as an error.
func (s *Server) Start() error {
	s.log.Infof("HTTP server listening on %s", s.srv.Addr)
	if err := s.srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("http server on %s: %w", s.srv.Addr, err)
	}
	return nil
}

func (s *Server) Stop(ctx context.Context) error {
	s.log.Info("stopping HTTP server")
	return s.srv.Shutdown(ctx)
}
