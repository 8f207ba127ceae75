package main

import (
	"context"
	"fmt"
	"strings"

	"purchasing/cmd"
	"purchasing/internal/core/domain/model/order"

	"github.com/urfave/cli/v3"
)

var graphCmd = &cli.Command{
	Name:  "graph",
	Usage: "Print the table engine lifecycle as Graphviz DOT",
	Action: func(_ context.Context, c *cli.Command) error {
		graph, err := order.TableGraph()
		if err != nil {
			return err
		}
		_, err = fmt.Fprint(c.Root().Writer, graph)
		return err
	},
}

var discountCmd = &cli.Command{
	Name:  "discount",
	Usage: "Apply a discount code to a price",
	Flags: []cli.Flag{
		&cli.FloatFlag{
			Name:     "price",
			Usage:    "Price before discount",
			Required: true,
		},
		&cli.StringFlag{
			Name:  "code",
			Usage: "Discount code; empty keeps the price",
		},
		discountCodesFlag,
	},
	Action: func(_ context.Context, c *cli.Command) error {
		calculator, err := configFrom(c).DiscountCalculator()
		if err != nil {
			return cli.Exit(err, 1)
		}

		total, err := calculator.CalculateDiscount(c.Float("price"), strings.TrimSpace(c.String("code")))
		if err != nil {
			return cli.Exit(err, 1)
		}

		_, err = fmt.Fprintf(c.Root().Writer, "%.2f\n", total)
		return err
	},
}

var simulateCmd = &cli.Command{
	Name:  "simulate",
	Usage: "Run a step sequence against a fresh Pending order",
	Flags: []cli.Flag{
		&cli.StringFlag{
			Name:  "engine",
			Usage: "conditional, table or both",
			Value: "both",
		},
		&cli.StringFlag{
			Name:     "steps",
			Usage:    "Comma separated steps: pay, confirm, cancel",
			Required: true,
		},
	},
	Action: func(_ context.Context, c *cli.Command) error {
		steps, err := cmd.ParseSteps(c.String("steps"))
		if err != nil {
			return cli.Exit(err, 1)
		}

		var engines []order.Engine
		if strings.EqualFold(c.String("engine"), "both") {
			engines = []order.Engine{order.EngineConditional, order.EngineTable}
		} else {
			engine, parseErr := order.ParseEngine(c.String("engine"))
			if parseErr != nil {
				return cli.Exit(parseErr, 1)
			}
			engines = []order.Engine{engine}
		}

		w := c.Root().Writer
		for _, engine := range engines {
			results, simErr := cmd.Simulate(order.NewFactory(), engine, steps)
			if simErr != nil {
				return cli.Exit(simErr, 1)
			}

			fmt.Fprintf(w, "[%s]\n", engine)
			for _, r := range results {
				fmt.Fprintf(w, "  %s\n", r)
			}
		}
		return nil
	},
}
