package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"

	"go-school-records/internal/config"
	"go-school-records/internal/database"
	"go-school-records/internal/handler"
	"go-school-records/internal/middleware"
	"go-school-records/internal/model"
	"go-school-records/internal/repository"
	"go-school-records/internal/router"
	"go-school-records/internal/service"
	"go-school-records/internal/validation"
)

type App struct {
	server *http.Server
	db     *database.DB
}

func New() (*App, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	slog.Info("connecting to PostgreSQL")
	db, err := database.New(context.Background(), cfg.DatabaseURL, cfg.DBMaxConns, cfg.DBMinConns)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	if err := db.EnsureSchema(context.Background()); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ensure database schema: %w", err)
	}

	pool := db.Pool
	userRepo := repository.NewUserRepository(pool)
	roleRepo := repository.NewRoleRepository(pool)
	studentRepo := repository.NewStudentRepository(pool)
	subjectRepo := repository.NewSubjectRepository(pool)
	gradeRepo := repository.NewGradeRepository(pool)
	slog.Info("database ready")

	authService, err := service.NewAuthService(cfg.JWTSecret, cfg.TokenTTL, credentialStore{
		users:    userRepo,
		students: studentRepo,
	})
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to initialize auth service: %w", err)
	}

	userService := service.NewUserService(userRepo, roleRepo)
	roleService := service.NewRoleService(roleRepo)
	studentService := service.NewStudentService(studentRepo)
	subjectService := service.NewSubjectService(subjectRepo)
	gradeService := service.NewGradeService(gradeRepo)

	validate := validation.New()
	authMiddleware := middleware.NewAuthMiddleware(authService)

	registry := prometheus.NewRegistry()
	registry.MustRegister(collectors.NewGoCollector())
	registry.MustRegister(collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))

	appRouter := router.New(cfg, authMiddleware, router.Handlers{
		Auth:    handler.NewAuthHandler(authService, validate),
		User:    handler.NewUserHandler(userService, validate),
		Role:    handler.NewRoleHandler(roleService, validate),
		Student: handler.NewStudentHandler(studentService, validate),
		Subject: handler.NewSubjectHandler(subjectService, validate),
		Grade:   handler.NewGradeHandler(gradeService, validate),
	}, registry)

	server := &http.Server{
		Addr:         ":" + cfg.ServerPort,
		Handler:      appRouter,
		ReadTimeout:  cfg.ServerReadTimeout,
		WriteTimeout: cfg.ServerWriteTimeout,
		IdleTimeout:  cfg.ServerIdleTimeout,
	}

	return &App{server: server, db: db}, nil
}

func (a *App) Run() error {
	go func() {
		slog.Info("server starting", "addr", a.server.Addr)
		if serveErr := a.server.ListenAndServe(); serveErr != nil && !errors.Is(serveErr, http.ErrServerClosed) {
			slog.Error("server failed", "error", serveErr)
			os.Exit(1)
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	a.db.Close()

	if err := a.server.Shutdown(ctx); err != nil {
		return fmt.Errorf("graceful shutdown failed: %w", err)
	}

	slog.Info("server stopped")
	return nil
}

// credentialStore stitches the user and student repositories into the
// read-only lookup surface the auth service expects.
type credentialStore struct {
	users    *repository.UserRepository
	students *repository.StudentRepository
}

func (c credentialStore) FindUserByUsername(ctx context.Context, username string) (model.User, error) {
	return c.users.FindUserByUsername(ctx, username)
}

func (c credentialStore) FindRoleNamesByUserID(ctx context.Context, userID int64) ([]string, error) {
	return c.users.FindRoleNamesByUserID(ctx, userID)
}

func (c credentialStore) FindStudentIDByUserID(ctx context.Context, userID int64) (*int64, error) {
	return c.students.FindStudentIDByUserID(ctx, userID)
}
