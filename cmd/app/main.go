package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"purchasing/cmd"
	"purchasing/internal/pkg/logging"

	"github.com/urfave/cli/v3"
)

// Version is set during build using ldflags
var Version = "dev"

func main() {
	if err := cmd.LoadDotEnv(".env"); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	defaults := cmd.DefaultConfig()
	app := &cli.Command{
		Name:    "purchasing",
		Version: Version,
		Usage:   "Purchase order lifecycle service",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "log-level",
				Usage:   "trace, debug, info, warn or error",
				Value:   defaults.LogLevel,
				Sources: cli.EnvVars(cmd.EnvLogLevel),
			},
			&cli.StringFlag{
				Name:    "log-format",
				Usage:   "text or json",
				Value:   defaults.LogFormat,
				Sources: cli.EnvVars(cmd.EnvLogFormat),
			},
		},
		Before: func(ctx context.Context, c *cli.Command) (context.Context, error) {
			handler := logging.NewHandler(c.String("log-format"), c.String("log-level"), os.Stderr)
			slog.SetDefault(slog.New(handler))
			return ctx, nil
		},
		Commands: []*cli.Command{
			serveCmd,
			graphCmd,
			discountCmd,
			simulateCmd,
		},
	}

	if err := app.Run(context.Background(), os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// configFrom collects the settings shared by the subcommands.
func configFrom(c *cli.Command) cmd.Config {
	cfg := cmd.DefaultConfig()
	cfg.LogLevel = c.String("log-level")
	cfg.LogFormat = c.String("log-format")
	if c.IsSet("port") {
		cfg.HTTPPort = c.String("port")
	}
	if c.IsSet("engine") {
		cfg.DefaultEngine = c.String("engine")
	}
	if c.IsSet("retry-schedule") {
		cfg.ConfirmationRetrySchedule = c.String("retry-schedule")
	}
	if c.IsSet("discount-codes") {
		cfg.DiscountCodes = c.String("discount-codes")
	}
	return cfg
}

var discountCodesFlag = &cli.StringFlag{
	Name:    "discount-codes",
	Usage:   "Comma separated CODE=PERCENT pairs",
	Value:   cmd.DefaultConfig().DiscountCodes,
	Sources: cli.EnvVars(cmd.EnvDiscountCodes),
}
