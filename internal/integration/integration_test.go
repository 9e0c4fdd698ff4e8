package integration

import (
	"context"
	"fmt"
	"strings"
	"testing"
	"time"

	goredis "github.com/redis/go-redis/v9"
	tc "github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
	"quiz-presenter/internal/app"
	"quiz-presenter/internal/catalog"
	"quiz-presenter/internal/clock"
	"quiz-presenter/internal/domain"
	"quiz-presenter/internal/infra/memory"
	infraredis "quiz-presenter/internal/infra/redis"
)

func TestPresenterRunAgainstRedis(t *testing.T) {
	ctx := context.Background()
	requireDocker(t)

	redisURL, redisCleanup := startRedis(t, ctx)
	defer redisCleanup()

	redisClient, err := redisClientFromURL(redisURL)
	if err != nil {
		t.Fatalf("redis client: %v", err)
	}
	defer redisClient.Close()

	sessionStore := infraredis.NewSessionStore(redisClient, 5*time.Minute)
	quizRepo := memory.NewQuizRepository(memory.NewStaticQuizLoader(catalog.Quizzes()), 5*time.Minute)
	clk := clock.NewFake(time.Unix(0, 0))
	settings := app.DefaultSettings()
	service := app.NewQuizService(sessionStore, quizRepo, clk, settings)

	ctrl, err := service.Open(ctx, "s1", catalog.DefaultQuizID, nil)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	if count, err := sessionStore.Count(ctx); err != nil || count != 1 {
		t.Fatalf("expected one live session, got %d (%v)", count, err)
	}

	quiz := catalog.Default()
	if err := ctrl.StartQuiz(); err != nil {
		t.Fatalf("start: %v", err)
	}
	for i := range quiz.Questions {
		if i%2 == 0 {
			if err := ctrl.SelectOption(quiz.Questions[i].CorrectOptionIndex); err != nil {
				t.Fatalf("select q%d: %v", i+1, err)
			}
			clk.Advance(settings.FeedbackDwell)
			continue
		}
		clk.Advance(time.Duration(settings.TotalTimeSeconds)*settings.TickInterval + settings.TimeoutDwell)
	}

	snap := ctrl.Snapshot()
	if snap.Page != domain.PageResult || snap.Summary == nil || snap.Summary.Score != 4 {
		t.Fatalf("expected 4/8 result, got %+v", snap)
	}

	service.Close(ctx, "s1")
	if count, err := sessionStore.Count(ctx); err != nil || count != 0 {
		t.Fatalf("expected no live sessions, got %d (%v)", count, err)
	}
}

func startRedis(t *testing.T, ctx context.Context) (string, func()) {
	t.Helper()
	req := tc.ContainerRequest{
		Image:        "redis:7-alpine",
		ExposedPorts: []string{"6379/tcp"},
		WaitingFor:   wait.ForListeningPort("6379/tcp").WithStartupTimeout(30 * time.Second),
	}
	container, err := tc.GenericContainer(ctx, tc.GenericContainerRequest{
		ContainerRequest: req,
		Started:          true,
	})
	if err != nil {
		if strings.Contains(err.Error(), "Cannot connect to the Docker daemon") {
			t.Skipf("docker not available: %v", err)
		}
		t.Fatalf("start redis: %v", err)
	}
	host, err := container.Host(ctx)
	if err != nil {
		t.Fatalf("redis host: %v", err)
	}
	port, err := container.MappedPort(ctx, "6379/tcp")
	if err != nil {
		t.Fatalf("redis port: %v", err)
	}
	url := fmt.Sprintf("redis://%s:%s", host, port.Port())
	return url, func() {
		_ = container.Terminate(ctx)
	}
}

func redisClientFromURL(url string) (*goredis.Client, error) {
	opts, err := goredis.ParseURL(url)
	if err != nil {
		return nil, err
	}
	return goredis.NewClient(opts), nil
}

func requireDocker(t *testing.T) {
	t.Helper()
	if _, err := tc.NewDockerProvider(); err != nil {
		t.Skipf("docker not available: %v", err)
	}
}
