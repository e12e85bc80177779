package cli

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"aptitude-quiz-service/internal/app"
	"aptitude-quiz-service/internal/auth"
	"aptitude-quiz-service/internal/config"
	"aptitude-quiz-service/internal/domain"
	"aptitude-quiz-service/internal/infra/memory"
	"aptitude-quiz-service/internal/infra/postgres"
	rediscache "aptitude-quiz-service/internal/infra/redis"
	"aptitude-quiz-service/internal/logger"
	transport "aptitude-quiz-service/internal/transport/http"
	"github.com/jackc/pgx/v4/pgxpool"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

// NewStartCmd builds the CLI subcommand to start the server.
func NewStartCmd(configPath, port *string) *cobra.Command {
	return &cobra.Command{
		Use:   "start",
		Short: "Start the quiz server",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(*configPath)
			if err != nil {
				return err
			}
			return runServer(cmd.Context(), cfg, *port)
		},
	}
}

func initLogger(cfg config.Config) {
	logger.Init(cfg.Log.Level, cfg.Log.Pretty)
}

// store is what the services need from a backing store.
type store interface {
	memory.QuestionLoader
	app.AnswerRepository
	app.ProfileRepository
}

func newSessionProvider(cfg config.Config, redisClient *redis.Client) (*auth.Provider, error) {
	var revocations auth.RevocationStore = memory.NewRevocationStore()
	if redisClient != nil {
		revocations = rediscache.NewRevocationStore(redisClient)
	}
	return auth.NewProvider(auth.Options{
		Secret:   cfg.Auth.Secret,
		Issuer:   cfg.Auth.Issuer,
		TokenTTL: config.TTLDuration(cfg.Auth.TokenTTL, time.Hour),
	}, revocations)
}

func runServer(ctx context.Context, cfg config.Config, portFlag string) error {
	if cfg.Postgres.URL != "" {
		if err := runMigrations(ctx, cfg); err != nil {
			return err
		}
	}

	finalPort := portFlag
	if finalPort == "" {
		finalPort = cfg.Server.Port
	}
	if finalPort == "" {
		finalPort = "8080"
	}

	var redisClient *redis.Client
	if cfg.Redis.Addr != "" {
		redisClient = redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		defer redisClient.Close()
	}

	var backing store
	if cfg.Postgres.URL != "" {
		pool, err := pgxpool.Connect(ctx, cfg.Postgres.URL)
		if err != nil {
			return err
		}
		defer pool.Close()
		backing = postgres.NewStore(pool)
	} else {
		log.Warn().Msg("no postgres url configured; using in-memory store with sample questions")
		backing = memory.NewStore(sampleQuestions())
	}

	cacheTTL := config.TTLDuration(cfg.Questions.CacheTTL, 10*time.Minute)
	var questions app.QuestionRepository
	if redisClient != nil {
		questions = rediscache.NewQuestionCache(redisClient, backing, cacheTTL)
	} else {
		questions = memory.NewQuestionCache(backing, cacheTTL)
	}

	sessions, err := newSessionProvider(cfg, redisClient)
	if err != nil {
		return err
	}
	unsubscribe := sessions.OnSessionChange(func(ev auth.SessionEvent) {
		log.Info().Str("event", string(ev.Kind)).Str("user", ev.Session.UserID).Msg("session change")
	})
	defer unsubscribe()

	quiz := app.NewQuizService(questions, backing)
	reports := app.NewReportService(backing)
	profiles := app.NewProfileService(backing)

	router := transport.NewRouter(
		transport.NewAPI(quiz, reports, profiles, sessions),
		transport.NewQuizSocket(quiz, reports, sessions),
	)

	server := &http.Server{
		Addr:         ":" + finalPort,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
	}

	go func() {
		log.Info().Str("port", finalPort).Msg("starting quiz service")
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error().Err(err).Msg("server stopped")
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)

	select {
	case <-stop:
		log.Info().Msg("shutting down server")
	case <-ctx.Done():
		log.Info().Msg("context canceled, shutting down server")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return server.Shutdown(shutdownCtx)
}

// sampleQuestions backs the in-memory store when no database is configured.
func sampleQuestions() []domain.Question {
	return []domain.Question{
		{ID: 1, Question: "What is 2 + 2?", Type: "numerical", Options: []string{"3", "4", "5"}, CorrectAnswer: "4"},
		{ID: 2, Question: "Which word is a synonym of 'rapid'?", Type: "verbal", Options: []string{"slow", "quick", "late"}, CorrectAnswer: "quick"},
		{ID: 3, Question: "Which HTTP method is idempotent?", Type: "technical", Options: []string{"POST", "PUT", "PATCH"}, CorrectAnswer: "PUT"},
	}
}
