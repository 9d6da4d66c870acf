// Package server wires the application together: it owns the router,
// the database connection and the full dependency chain from
// repositories through services to handlers, and runs the HTTP server
// with graceful shutdown.
//
// Keeping the wiring out of main keeps main trivial and lets tests
// assemble a server against an in-memory database.
package server

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/psouza/gerador-provas/internal/auth"
	"github.com/psouza/gerador-provas/internal/config"
	"github.com/psouza/gerador-provas/internal/handler"
	"github.com/psouza/gerador-provas/internal/middleware"
	"github.com/psouza/gerador-provas/internal/model"
	sqliteRepo "github.com/psouza/gerador-provas/internal/repository/sqlite"
	"github.com/psouza/gerador-provas/internal/service"
	"github.com/psouza/gerador-provas/internal/storage"
)

// Server holds the router and the resources it owns. The database
// connection is closed during shutdown.
type Server struct {
	router *chi.Mux
	cfg    *config.Config
	logger *slog.Logger
	db     *sqliteRepo.DB
}

// New assembles the full dependency chain. Each layer receives only
// the interfaces it needs: services get repositories, handlers get
// services, the router gets handlers.
func New(cfg *config.Config, logger *slog.Logger) (*Server, error) {
	db, err := sqliteRepo.New(cfg.DBPath)
	if err != nil {
		return nil, fmt.Errorf("abrindo banco de dados: %w", err)
	}

	s := &Server{
		router: chi.NewRouter(),
		cfg:    cfg,
		logger: logger,
		db:     db,
	}

	if err := s.setupRoutes(); err != nil {
		db.Close()
		return nil, fmt.Errorf("configurando rotas: %w", err)
	}

	return s, nil
}

// Router exposes the configured router, mainly for httptest.
func (s *Server) Router() http.Handler {
	return s.router
}

func (s *Server) setupRoutes() error {
	s.router.Use(chimiddleware.RequestID)
	s.router.Use(chimiddleware.RealIP)
	s.router.Use(chimiddleware.Recoverer)
	s.router.Use(middleware.Logger(s.logger))
	s.router.Use(cors.Handler(cors.Options{
		AllowedOrigins:   s.cfg.CORSOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: false,
		MaxAge:           300,
	}))

	tokens, err := auth.NewTokenService(s.cfg.JWTSecret, s.cfg.JWTTTL)
	if err != nil {
		return fmt.Errorf("criando serviço de tokens: %w", err)
	}
	passwords := auth.NewPasswordService()

	// Photo upload stays disabled unless IMGBB_API_KEY is configured;
	// the handler reports that per-request instead of failing startup.
	var uploads storage.Uploader
	if s.cfg.ImgBBKey != "" {
		uploads = storage.NewImgBB(s.cfg.ImgBBKey)
	}

	users := s.db.Users()
	subjects := s.db.Subjects()
	questions := s.db.Questions()

	userSvc := service.NewUserService(users, passwords, s.logger)
	authSvc := service.NewAuthService(users, userSvc, tokens, passwords, s.logger)
	subjectSvc := service.NewSubjectService(subjects, users, s.logger)
	questionSvc := service.NewQuestionService(questions, subjects, users, s.logger)

	healthHandler := handler.NewHealthHandler(s.db)
	authHandler := handler.NewAuthHandler(authSvc, s.logger)
	userHandler := handler.NewUserHandler(userSvc, uploads, s.logger)
	subjectHandler := handler.NewSubjectHandler(subjectSvc, s.logger)
	questionHandler := handler.NewQuestionHandler(questionSvc, s.logger)

	requireAuth := auth.RequireAuth(tokens, s.logger)

	s.router.Get("/health", healthHandler.HandleHealth)

	// Legacy surface: no authentication, flat user shape.
	s.router.Route("/v1", func(r chi.Router) {
		r.Route("/usuarios", func(r chi.Router) {
			r.Get("/", userHandler.HandleListV1)
			r.Get("/{id}", userHandler.HandleGetV1)
			r.Post("/", userHandler.HandleCreateV1)
			r.Put("/{id}", userHandler.HandleUpdateV1)
			r.Delete("/{id}", userHandler.HandleDeleteV1)
		})
		registerSubjectRoutes(r, subjectHandler, "v1")
		registerQuestionRoutes(r, questionHandler, "v1")
	})

	s.router.Route("/v2", func(r chi.Router) {
		r.Route("/auth", func(r chi.Router) {
			r.Post("/registrar", authHandler.HandleRegister)
			r.Post("/login", authHandler.HandleLogin)
			r.With(requireAuth).Get("/me", authHandler.HandleMe)
		})

		r.Route("/usuarios", func(r chi.Router) {
			r.Get("/", userHandler.HandleListV2)
			r.Get("/{id}", userHandler.HandleGetV2)
			r.With(requireAuth, auth.RequireRoles(model.RoleAdmin)).
				Post("/", userHandler.HandleCreateV2)
			r.With(requireAuth, auth.RequireOwnerOrRole("id", model.RoleAdmin)).
				Put("/{id}", userHandler.HandleUpdateV2)
			r.With(requireAuth, auth.RequireRoles(model.RoleAdmin)).
				Delete("/{id}", userHandler.HandleDeleteV2)
		})

		registerSubjectRoutes(r, subjectHandler, "v2")
		registerQuestionRoutes(r, questionHandler, "v2")
	})

	return nil
}

// registerSubjectRoutes mounts the disciplina CRUD under the given
// tree; only the envelope version differs between v1 and v2.
func registerSubjectRoutes(r chi.Router, h *handler.SubjectHandler, apiVersion string) {
	r.Route("/disciplinas", func(r chi.Router) {
		r.Get("/", h.HandleList(apiVersion))
		r.Get("/{id}", h.HandleGet(apiVersion))
		r.Post("/", h.HandleCreate(apiVersion))
		r.Put("/{id}", h.HandleUpdate(apiVersion))
		r.Delete("/{id}", h.HandleDelete(apiVersion))
	})
}

func registerQuestionRoutes(r chi.Router, h *handler.QuestionHandler, apiVersion string) {
	r.Route("/questoes", func(r chi.Router) {
		r.Get("/", h.HandleList(apiVersion))
		r.Get("/{id}", h.HandleGet(apiVersion))
		r.Post("/", h.HandleCreate(apiVersion))
		r.Put("/{id}", h.HandleUpdate(apiVersion))
		r.Delete("/{id}", h.HandleDelete(apiVersion))
	})
}

// Start runs the server until SIGINT/SIGTERM, then drains in-flight
// requests for up to 30 seconds and closes the database.
func (s *Server) Start() error {
	defer s.db.Close()

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", s.cfg.Port),
		Handler:      s.router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	serverErrors := make(chan error, 1)

	go func() {
		s.logger.Info("servidor iniciando",
			slog.Int("port", s.cfg.Port),
			slog.String("env", s.cfg.Env),
			slog.String("database", s.cfg.DBPath),
		)
		serverErrors <- srv.ListenAndServe()
	}()

	select {
	case err := <-serverErrors:
		if err != http.ErrServerClosed {
			return fmt.Errorf("erro no servidor: %w", err)
		}

	case sig := <-quit:
		s.logger.Info("sinal de desligamento recebido", slog.String("signal", sig.String()))

		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		if err := srv.Shutdown(ctx); err != nil {
			return fmt.Errorf("desligamento gracioso falhou: %w", err)
		}
		s.logger.Info("servidor encerrado")
	}

	return nil
}
