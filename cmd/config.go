package cmd

import (
	"errors"
	"fmt"
	"os"
	"sort"
	"strconv"
	"strings"

	"purchasing/internal/core/domain/model/order"
	"purchasing/internal/core/domain/services"
	"purchasing/internal/pkg/errs"
	"purchasing/internal/pkg/logging"

	"github.com/joho/godotenv"
	"github.com/robfig/cron/v3"
)

// Environment variable names read by the CLI flags.
const (
	EnvHTTPPort                  = "HTTP_PORT"
	EnvLogLevel                  = "LOG_LEVEL"
	EnvLogFormat                 = "LOG_FORMAT"
	EnvDefaultEngine             = "DEFAULT_ENGINE"
	EnvConfirmationRetrySchedule = "CONFIRMATION_RETRY_SCHEDULE"
	EnvDiscountCodes             = "DISCOUNT_CODES"
)

type Config struct {
	HTTPPort                  string
	LogLevel                  string
	LogFormat                 string
	DefaultEngine             string
	ConfirmationRetrySchedule string
	DiscountCodes             string
}

// DefaultConfig returns the values used when neither flags nor environment set them.
func DefaultConfig() Config {
	return Config{
		HTTPPort:      "8080",
		LogLevel:      "info",
		LogFormat:     logging.FormatText,
		DefaultEngine: order.EngineTable.String(),
		DiscountCodes: FormatDiscountCodes(services.DefaultDiscountCodes()),
	}
}

// LoadDotEnv loads path into the process environment when it exists.
// Variables already set in the environment win.
func LoadDotEnv(path string) error {
	if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
		return nil
	}
	if err := godotenv.Load(path); err != nil {
		return fmt.Errorf("failed to load %s: %w", path, err)
	}
	return nil
}

// Validate reports every invalid setting at once.
func (c Config) Validate() error {
	var portErr error
	if port, err := strconv.Atoi(c.HTTPPort); err != nil {
		portErr = errs.NewValueIsInvalidErrorWithCause("http port", err)
	} else if port < 1 || port > 65535 {
		portErr = errs.NewValueIsOutOfRangeError("http port", port, 1, 65535)
	}

	var formatErr error
	if !strings.EqualFold(c.LogFormat, logging.FormatText) && !strings.EqualFold(c.LogFormat, logging.FormatJSON) {
		formatErr = errs.NewValueIsInvalidErrorWithCause("log format", fmt.Errorf("%q is neither text nor json", c.LogFormat))
	}

	_, engineErr := c.Engine()

	var scheduleErr error
	if c.ConfirmationRetrySchedule != "" {
		parser := cron.NewParser(cron.Second | cron.Minute | cron.Hour | cron.Dom | cron.Month | cron.Dow | cron.Descriptor)
		if _, err := parser.Parse(c.ConfirmationRetrySchedule); err != nil {
			scheduleErr = errs.NewValueIsInvalidErrorWithCause("confirmation retry schedule", err)
		}
	}

	_, codesErr := c.DiscountCalculator()

	return errors.Join(portErr, formatErr, engineErr, scheduleErr, codesErr)
}

// Engine returns the engine used for orders created without an explicit one.
func (c Config) Engine() (order.Engine, error) {
	return order.ParseEngine(c.DefaultEngine)
}

// DiscountCalculator builds the discount collaborator from DiscountCodes.
func (c Config) DiscountCalculator() (services.DiscountCalculator, error) {
	codes, err := ParseDiscountCodes(c.DiscountCodes)
	if err != nil {
		return services.DiscountCalculator{}, err
	}
	return services.NewDiscountCalculator(codes)
}

// ParseDiscountCodes parses "CODE=PCT,CODE=PCT". Blank input yields no codes.
func ParseDiscountCodes(raw string) (map[string]int, error) {
	codes := make(map[string]int)
	for _, entry := range strings.Split(raw, ",") {
		entry = strings.TrimSpace(entry)
		if entry == "" {
			continue
		}

		code, rawPercent, ok := strings.Cut(entry, "=")
		if !ok {
			return nil, errs.NewValueIsInvalidErrorWithCause("discount codes", fmt.Errorf("%q is not CODE=PERCENT", entry))
		}

		percent, err := strconv.Atoi(strings.TrimSpace(rawPercent))
		if err != nil {
			return nil, errs.NewValueIsInvalidErrorWithCause("discount codes", fmt.Errorf("percent of %s: %w", code, err))
		}
		codes[strings.TrimSpace(code)] = percent
	}
	return codes, nil
}

// FormatDiscountCodes renders codes in the ParseDiscountCodes format, sorted by code.
func FormatDiscountCodes(codes map[string]int) string {
	entries := make([]string, 0, len(codes))
	for code, percent := range codes {
		entries = append(entries, fmt.Sprintf("%s=%d", code, percent))
	}
	sort.Strings(entries)
	return strings.Join(entries, ",")
}
