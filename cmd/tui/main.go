package main

import (
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/google/uuid"

	app "github.com/rocketscienceinc/fading-tictactoe/internal"
	"github.com/rocketscienceinc/fading-tictactoe/internal/config"
	"github.com/rocketscienceinc/fading-tictactoe/internal/session"
	"github.com/rocketscienceinc/fading-tictactoe/internal/tui"
)

func main() {
	configPath := flag.String("config", "config.yml", "path to the config file")
	logPath := flag.String("log", "", "write logs to this file")
	flag.Parse()

	if err := run(*configPath, *logPath); err != nil {
		fmt.Fprintf(os.Stderr, "Error running program: %v\n", err)
		os.Exit(1)
	}
}

func run(configPath, logPath string) error {
	conf, err := config.Load(configPath)
	if err != nil {
		// the terminal client also runs without a config file
		if conf, err = config.LoadEnv(); err != nil {
			return err
		}
	}

	logOutput := io.Discard
	if logPath != "" {
		logFile, fileErr := tea.LogToFile(logPath, "")
		if fileErr != nil {
			return fmt.Errorf("failed to open log file: %w", fileErr)
		}
		defer logFile.Close()

		logOutput = logFile
	}

	logger := slog.New(slog.NewJSONHandler(logOutput, &slog.HandlerOptions{Level: app.LogLevel(conf.LogLevel)}))

	settings, err := app.SessionSettings(conf)
	if err != nil {
		return err
	}

	notifier := tui.NewNotifier()
	defer notifier.Close()

	gameSession := session.New(logger, uuid.NewString(), settings, session.WithNotifier(notifier))
	defer gameSession.Close()

	program := tea.NewProgram(tui.NewModel(gameSession, notifier), tea.WithAltScreen())

	if _, err = program.Run(); err != nil {
		return fmt.Errorf("failed to run program: %w", err)
	}

	return nil
}
