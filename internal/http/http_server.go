package http

// this is entry point of the http request handlers

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"time"

	"github.com/gorilla/mux"

	"gitlab.com/codearena-2025.net/internal/core/ports/primary"
	"gitlab.com/codearena-2025.net/internal/core/ports/secondary"
	judgesvc "gitlab.com/codearena-2025.net/internal/core/services/judge"
	"gitlab.com/codearena-2025.net/internal/handlers"
	"gitlab.com/codearena-2025.net/internal/handlers/compiler"
	judgehdl "gitlab.com/codearena-2025.net/internal/handlers/judge"
	"gitlab.com/codearena-2025.net/internal/handlers/testcases"
)

type ServiceProvider struct {
	judgeService judgesvc.IJudgeService
	testCases    secondary.TestCaseRepository
	runner       secondary.CodeRunner
}

func NewServiceProvider(
	judgeService judgesvc.IJudgeService,
	testCases secondary.TestCaseRepository,
	runner secondary.CodeRunner,
) *ServiceProvider {
	return &ServiceProvider{
		judgeService: judgeService,
		testCases:    testCases,
		runner:       runner,
	}
}

type Server struct {
	router          *mux.Router
	srv             *http.Server
	Port            int
	ServiceName     string
	ServiceProvider ServiceProvider
	logger          primary.Logger
}

func NewServer(port int, serviceName string, serviceProvider ServiceProvider, logger primary.Logger) *Server {
	return &Server{
		Port:            port,
		ServiceName:     serviceName,
		ServiceProvider: serviceProvider,
		logger:          logger,
	}
}

func (s *Server) Init() error {
	r := mux.NewRouter()

	mw := handlers.NewMiddlewareProvider(s.logger)
	r.Use(mw.RequestID, mw.AccessLog)

	judgehdl.NewHandler(s.ServiceProvider.judgeService, s.logger).RegisterRoutes(r)
	testcases.NewHandler(s.ServiceProvider.testCases, s.logger).RegisterRoutes(r)
	compiler.NewHandler(s.ServiceProvider.runner, s.logger).RegisterRoutes(r)

	r.HandleFunc("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	}).Methods("GET")

	s.router = r
	return nil
}

func (s *Server) Start(ctx context.Context) {
	s.srv = &http.Server{
		Addr:         fmt.Sprintf(":%d", s.Port),
		Handler:      s.router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 120 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start the server in a goroutine
	go func() {
		s.logger.Info("Server listening", "addr", s.srv.Addr, "service", s.ServiceName)
		if err := s.srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			s.logger.Error("Server error", "error", err)
			os.Exit(1)
		}
	}()
}

func (s *Server) Stop(ctx context.Context) {
	s.logger.Info("Shutting down http server...")
	if s.srv == nil {
		return
	}
	if err := s.srv.Shutdown(ctx); err != nil {
		s.logger.Error("Server forced to shutdown", "error", err)
	}
}
