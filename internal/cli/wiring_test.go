package cli

import (
	"testing"
	"time"

	"quiz-presenter/internal/catalog"
	"quiz-presenter/internal/config"
	"quiz-presenter/internal/infra/memory"
	redissession "quiz-presenter/internal/infra/redis"
)

func TestSettingsFromConfigDefaults(t *testing.T) {
	settings := settingsFromConfig(config.Config{})
	if settings.TotalTimeSeconds != 5 || settings.TickInterval != time.Second {
		t.Fatalf("unexpected countdown defaults %+v", settings)
	}
	if settings.FeedbackDwell != 700*time.Millisecond || settings.TimeoutDwell != 800*time.Millisecond {
		t.Fatalf("unexpected dwell defaults %+v", settings)
	}
	if quizIDFromConfig(config.Config{}) != catalog.DefaultQuizID {
		t.Fatalf("expected default quiz id")
	}
}

func TestSettingsFromConfigOverrides(t *testing.T) {
	var cfg config.Config
	cfg.Quiz.TotalTimeSeconds = 10
	cfg.Quiz.TimeoutDwell = "0s"
	cfg.Quiz.FeedbackDwell = "1s"

	settings := settingsFromConfig(cfg)
	if settings.TotalTimeSeconds != 10 || settings.TimeoutDwell != 0 || settings.FeedbackDwell != time.Second {
		t.Fatalf("overrides not applied: %+v", settings)
	}
}

func TestNewSessionStoreChoosesBackend(t *testing.T) {
	store, redisStore, client := newSessionStore(config.Config{})
	if _, ok := store.(*memory.SessionStore); !ok || redisStore != nil || client != nil {
		t.Fatalf("expected in-memory store without redis addr")
	}

	var cfg config.Config
	cfg.Redis.Addr = "localhost:6379"
	store, redisStore, client = newSessionStore(cfg)
	defer client.Close()
	if _, ok := store.(*redissession.SessionStore); !ok || redisStore == nil {
		t.Fatalf("expected redis store when addr configured")
	}
}

func TestWSOptionsKeepaliveFollowsRedisTTL(t *testing.T) {
	var cfg config.Config
	cfg.Redis.TTL = "4m"
	cfg.Server.AllowedOrigins = []string{"http://localhost:3000"}

	opts := wsOptions(cfg, true)
	if opts.Keepalive != 2*time.Minute {
		t.Fatalf("expected keepalive at half the ttl, got %s", opts.Keepalive)
	}
	if opts.DefaultQuizID != catalog.DefaultQuizID || len(opts.AllowedOrigins) != 1 {
		t.Fatalf("unexpected options %+v", opts)
	}
	if wsOptions(cfg, false).Keepalive != 0 {
		t.Fatalf("keepalive must be off without a liveness store")
	}
}
