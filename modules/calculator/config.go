package calculator

import (
	"errors"
	"time"

	"golang.org/x/text/language"

	calc "github.com/dmitrymomot/calcdesk/pkg/calculator"
)

// DefaultDatastarURL is the datastar client bundle the page loads.
const DefaultDatastarURL = "https://cdn.jsdelivr.net/gh/starfederation/datastar@1.0.0-RC.6/bundles/datastar.js"

// Config is loaded from CALC_* variables.
type Config struct {
	Title           string        `env:"CALC_TITLE" envDefault:"Calculator"`
	BasePath        string        `env:"CALC_BASE_PATH"`
	Language        string        `env:"CALC_LANGUAGE" envDefault:"en"`
	ErrorDuration   time.Duration `env:"CALC_ERROR_DURATION" envDefault:"1500ms"`
	StreamBuffer    int           `env:"CALC_STREAM_BUFFER" envDefault:"8"`
	DeskIdleTimeout time.Duration `env:"CALC_DESK_IDLE_TIMEOUT" envDefault:"30m"`
	DeskSweep       time.Duration `env:"CALC_DESK_SWEEP_INTERVAL" envDefault:"1m"`
	DatastarURL     string        `env:"CALC_DATASTAR_URL" envDefault:"https://cdn.jsdelivr.net/gh/starfederation/datastar@1.0.0-RC.6/bundles/datastar.js"`
}

// DefaultConfig mirrors the envDefault tags.
func DefaultConfig() Config {
	return Config{
		Title:           "Calculator",
		Language:        "en",
		ErrorDuration:   calc.DefaultErrorDuration,
		StreamBuffer:    8,
		DeskIdleTimeout: 30 * time.Minute,
		DeskSweep:       time.Minute,
		DatastarURL:     DefaultDatastarURL,
	}
}

// languageTag parses and checks the configured grouping locale.
func (c Config) languageTag() (language.Tag, error) {
	tag, err := language.Parse(c.Language)
	if err != nil {
		return language.Und, errors.Join(ErrInvalidConfig, err)
	}
	if err := calc.CheckLanguage(tag); err != nil {
		return language.Und, errors.Join(ErrInvalidConfig, err)
	}
	return tag, nil
}

func (c Config) validate() error {
	if _, err := c.languageTag(); err != nil {
		return err
	}
	if c.ErrorDuration <= 0 || c.DeskIdleTimeout <= 0 || c.DeskSweep <= 0 {
		return errors.Join(ErrInvalidConfig, errors.New("durations must be > 0"))
	}
	return nil
}
