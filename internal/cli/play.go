package cli

import (
	"context"
	"errors"
	"os"
	"os/signal"

	"github.com/spf13/cobra"
	"quiz-presenter/internal/config"
	"quiz-presenter/internal/infra/memory"
	"quiz-presenter/internal/transport/terminal"
)

const terminalSessionID = "terminal"

// NewPlayCmd runs the quiz in the current terminal.
func NewPlayCmd(configPath *string) *cobra.Command {
	return &cobra.Command{
		Use:   "play",
		Short: "Play the quiz in this terminal",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runPlay(cmd.Context(), *configPath)
		},
	}
}

func runPlay(ctx context.Context, configPath string) error {
	cfg, err := config.LoadOrDefault(configPath)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt)
	defer stop()

	service := newService(cfg, memory.NewSessionStore())
	display := terminal.NewDisplay(os.Stdout)
	controller, err := service.Open(ctx, terminalSessionID, quizIDFromConfig(cfg), display.Render)
	if err != nil {
		return err
	}
	defer service.Close(context.Background(), terminalSessionID)

	display.Render(controller.Snapshot())
	err = terminal.Run(ctx, os.Stdin, controller, display)
	if errors.Is(err, context.Canceled) {
		return nil
	}
	return err
}
