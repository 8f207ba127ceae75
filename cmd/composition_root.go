package cmd

import (
	"fmt"
	"log/slog"

	httpadapter "purchasing/internal/adapters/in/http"
	"purchasing/internal/adapters/out/memory"
	"purchasing/internal/adapters/out/metrics"
	"purchasing/internal/core/application/usecases/commands"
	"purchasing/internal/core/application/usecases/queries"
	"purchasing/internal/core/domain/model/kernel"
	"purchasing/internal/core/domain/model/order"
	"purchasing/internal/core/domain/services"
	"purchasing/internal/jobs"

	"github.com/prometheus/client_golang/prometheus"
)

type CompositionRoot struct {
	config        Config
	logger        *slog.Logger
	uowFactory    *memory.UnitOfWorkFactory
	orderFactory  order.Factory
	calculator    services.DiscountCalculator
	defaultEngine order.Engine
}

// NewCompositionRoot wires the in-memory store, the transition metrics
// recorder and the discount collaborator. The config must already be valid.
func NewCompositionRoot(config Config, logger *slog.Logger, registerer prometheus.Registerer) (CompositionRoot, error) {
	recorder, err := metrics.NewTransitionRecorder(registerer)
	if err != nil {
		return CompositionRoot{}, fmt.Errorf("failed to register transition metrics: %w", err)
	}

	calculator, err := config.DiscountCalculator()
	if err != nil {
		return CompositionRoot{}, err
	}

	engine, err := config.Engine()
	if err != nil {
		return CompositionRoot{}, err
	}

	orderLogger := logger.With("component", "order")
	observeTransition := func(id kernel.UUID, t order.Transition) {
		orderLogger.Info("order transitioned",
			"order_id", id.String(),
			"source", t.Source.String(),
			"trigger", t.Trigger.String(),
			"destination", t.Destination.String(),
		)
	}

	return CompositionRoot{
		config:     config,
		logger:     logger,
		uowFactory: memory.NewUnitOfWorkFactory(memory.NewStore()),
		orderFactory: order.NewFactory(
			order.WithObserver(recorder.Observe),
			order.WithObserver(observeTransition),
			order.WithLogger(orderLogger),
		),
		calculator:    calculator,
		defaultEngine: engine,
	}, nil
}

func (c *CompositionRoot) orderUoWFactory() commands.OrderUoWFactory {
	return FuncOrderUoWFactory(func() commands.OrderUoW {
		return c.uowFactory.Create()
	})
}

func (c *CompositionRoot) CreateCreateOrderCommandHandler() commands.CreateOrderCommandHandler {
	return commands.NewCreateOrderCommandHandler(c.orderUoWFactory(), c.orderFactory)
}

func (c *CompositionRoot) CreatePayOrderCommandHandler() commands.PayOrderCommandHandler {
	return commands.NewPayOrderCommandHandler(c.orderUoWFactory())
}

func (c *CompositionRoot) CreateFireTriggerCommandHandler() commands.FireTriggerCommandHandler {
	return commands.NewFireTriggerCommandHandler(c.orderUoWFactory())
}

func (c *CompositionRoot) CreateRetryPendingConfirmationsCommandHandler() commands.RetryPendingConfirmationsCommandHandler {
	return commands.NewRetryPendingConfirmationsCommandHandler(c.orderUoWFactory())
}

func (c *CompositionRoot) CreateGetOrderQueryHandler() queries.GetOrderQueryHandler {
	return queries.NewGetOrderQueryHandler(c.uowFactory)
}

func (c *CompositionRoot) CreateGetOpenOrdersQueryHandler() queries.GetOpenOrdersQueryHandler {
	return queries.NewGetOpenOrdersQueryHandler(c.uowFactory)
}

func (c *CompositionRoot) CreateQuoteDiscountQueryHandler() queries.QuoteDiscountQueryHandler {
	return queries.NewQuoteDiscountQueryHandler(c.calculator)
}

func (c *CompositionRoot) CreateGetLifecycleGraphQueryHandler() queries.GetLifecycleGraphQueryHandler {
	return queries.NewGetLifecycleGraphQueryHandler()
}

func (c *CompositionRoot) CreateHTTPServer() *httpadapter.Server {
	return httpadapter.NewServer(
		c.CreateCreateOrderCommandHandler(),
		c.CreatePayOrderCommandHandler(),
		c.CreateFireTriggerCommandHandler(),
		c.CreateGetOrderQueryHandler(),
		c.CreateGetOpenOrdersQueryHandler(),
		c.CreateQuoteDiscountQueryHandler(),
		c.CreateGetLifecycleGraphQueryHandler(),
		c.defaultEngine,
		c.logger,
	)
}

func (c *CompositionRoot) CreateJobManager() *jobs.JobManager {
	return jobs.NewJobManager(
		c.CreateRetryPendingConfirmationsCommandHandler(),
		c.config.ConfirmationRetrySchedule,
		c.logger,
	)
}

type FuncOrderUoWFactory func() commands.OrderUoW

func (f FuncOrderUoWFactory) Create() commands.OrderUoW {
	return f()
}
