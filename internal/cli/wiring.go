package cli

import (
	"time"

	"github.com/redis/go-redis/v9"
	"quiz-presenter/internal/app"
	"quiz-presenter/internal/catalog"
	"quiz-presenter/internal/clock"
	"quiz-presenter/internal/config"
	"quiz-presenter/internal/infra/memory"
	redissession "quiz-presenter/internal/infra/redis"
	transport "quiz-presenter/internal/transport/http"
)

func settingsFromConfig(cfg config.Config) app.Settings {
	defaults := app.DefaultSettings()
	settings := app.Settings{
		TotalTimeSeconds: cfg.Quiz.TotalTimeSeconds,
		TickInterval:     config.Duration(cfg.Quiz.TickInterval, defaults.TickInterval),
		FeedbackDwell:    config.Duration(cfg.Quiz.FeedbackDwell, defaults.FeedbackDwell),
		TimeoutDwell:     config.Duration(cfg.Quiz.TimeoutDwell, defaults.TimeoutDwell),
	}
	if settings.TotalTimeSeconds <= 0 {
		settings.TotalTimeSeconds = defaults.TotalTimeSeconds
	}
	return settings
}

func quizIDFromConfig(cfg config.Config) string {
	if cfg.Quiz.ID == "" {
		return catalog.DefaultQuizID
	}
	return cfg.Quiz.ID
}

func newQuizRepository(cfg config.Config, clk clock.Clock) *memory.QuizRepository {
	loader := memory.NewStaticQuizLoader(catalog.Quizzes())
	return memory.NewQuizRepositoryWithClock(loader, config.Duration(cfg.Quiz.TTL, 10*time.Minute), clk)
}

// newSessionStore picks the Redis-backed store when an address is configured.
func newSessionStore(cfg config.Config) (app.SessionRepository, *redissession.SessionStore, *redis.Client) {
	if cfg.Redis.Addr == "" {
		return memory.NewSessionStore(), nil, nil
	}
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	store := redissession.NewSessionStore(client, redisTTL(cfg))
	return store, store, client
}

func redisTTL(cfg config.Config) time.Duration {
	return config.Duration(cfg.Redis.TTL, 10*time.Minute)
}

// wsOptions refreshes liveness twice per marker TTL so idle connections stay counted.
func wsOptions(cfg config.Config, liveness bool) transport.WSOptions {
	opts := transport.WSOptions{
		DefaultQuizID:  quizIDFromConfig(cfg),
		AllowedOrigins: cfg.Server.AllowedOrigins,
	}
	if liveness {
		opts.Keepalive = redisTTL(cfg) / 2
	}
	return opts
}

func newService(cfg config.Config, store app.SessionRepository) *app.QuizService {
	clk := clock.Real()
	return app.NewQuizService(store, newQuizRepository(cfg, clk), clk, settingsFromConfig(cfg))
}
