// Command calcdesk-mcp serves the calculator tools over MCP stdio.
package main

import (
	"log/slog"
	"os"
	"time"

	"github.com/mark3labs/mcp-go/server"
	"golang.org/x/text/language"

	"github.com/dmitrymomot/calcdesk/modules/calctools"
	"github.com/dmitrymomot/calcdesk/pkg/config"
	"github.com/dmitrymomot/calcdesk/pkg/logger"
	"github.com/dmitrymomot/calcdesk/pkg/requestid"
)

var version = "dev"

type appConfig struct {
	Env           string        `env:"APP_ENV" envDefault:"development"`
	Name          string        `env:"APP_NAME" envDefault:"calcdesk"`
	Language      string        `env:"CALC_LANGUAGE" envDefault:"en"`
	ErrorDuration time.Duration `env:"CALC_ERROR_DURATION" envDefault:"1500ms"`
}

func main() {
	var cfg appConfig
	if err := config.Load(&cfg); err != nil {
		slog.Error("failed to load configuration", logger.Error(err))
		os.Exit(1)
	}

	// stdout carries the protocol; logs go to stderr.
	log := logger.New(
		logger.WithEnvironment(cfg.Env, cfg.Name+"-mcp"),
		logger.WithOutput(os.Stderr),
		logger.WithContextExtractors(requestid.LoggerExtractor()),
	)

	tag, err := language.Parse(cfg.Language)
	if err != nil {
		log.Error("invalid CALC_LANGUAGE", logger.Error(err))
		os.Exit(1)
	}

	desk := calctools.NewDesk(
		calctools.WithLogger(log),
		calctools.WithLanguage(tag),
		calctools.WithErrorDuration(cfg.ErrorDuration),
	)
	defer desk.Close()

	s := calctools.NewServer(cfg.Name, version, desk)
	log.Info("mcp server started", slog.String("version", version))
	if err := server.ServeStdio(s); err != nil {
		log.Error("mcp server stopped", logger.Error(err))
		desk.Close()
		os.Exit(1)
	}
}
