package http_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	httpadapter "purchasing/internal/adapters/in/http"
	"purchasing/internal/adapters/out/memory"
	"purchasing/internal/adapters/out/metrics"
	"purchasing/internal/core/application/usecases/commands"
	"purchasing/internal/core/application/usecases/queries"
	"purchasing/internal/core/domain/model/kernel"
	"purchasing/internal/core/domain/model/order"
	"purchasing/internal/core/domain/services"
	"purchasing/internal/pkg/logging"

	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type orderUoWFactory func() commands.OrderUoW

func (f orderUoWFactory) Create() commands.OrderUoW {
	return f()
}

func newTestEcho(t *testing.T) *echo.Echo {
	t.Helper()

	registry := prometheus.NewRegistry()
	recorder, err := metrics.NewTransitionRecorder(registry)
	require.NoError(t, err)

	uowFactory := memory.NewUnitOfWorkFactory(memory.NewStore())
	var orderUoWs commands.OrderUoWFactory = orderUoWFactory(func() commands.OrderUoW {
		return uowFactory.Create()
	})

	calculator, err := services.NewDiscountCalculator(services.DefaultDiscountCodes())
	require.NoError(t, err)

	logger := logging.Discard()
	server := httpadapter.NewServer(
		commands.NewCreateOrderCommandHandler(orderUoWs, order.NewFactory(order.WithObserver(recorder.Observe))),
		commands.NewPayOrderCommandHandler(orderUoWs),
		commands.NewFireTriggerCommandHandler(orderUoWs),
		queries.NewGetOrderQueryHandler(uowFactory),
		queries.NewGetOpenOrdersQueryHandler(uowFactory),
		queries.NewQuoteDiscountQueryHandler(calculator),
		queries.NewGetLifecycleGraphQueryHandler(),
		order.EngineTable,
		logger,
	)

	e := httpadapter.NewEcho(logger)
	server.RegisterRoutes(e, registry)
	return e
}

func do(e *echo.Echo, method, target, body string) *httptest.ResponseRecorder {
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, target, nil)
	} else {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &v))
	return v
}

func createOrder(t *testing.T, e *echo.Echo, body string) httpadapter.Order {
	t.Helper()
	rec := do(e, http.MethodPost, "/api/v1/orders", body)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	return decode[httpadapter.Order](t, rec)
}

func TestServer_OrderLifecycle(t *testing.T) {
	t.Run("should create a pending table order by default", func(t *testing.T) {
		e := newTestEcho(t)

		created := createOrder(t, e, "")
		assert.Equal(t, "table", created.Engine)
		assert.Equal(t, "Pending", created.Status)
		assert.False(t, created.IsPaid)
		_, err := kernel.UUIDFromString(created.ID)
		require.NoError(t, err)
	})

	t.Run("should pay confirm and complete an order", func(t *testing.T) {
		e := newTestEcho(t)
		created := createOrder(t, e, `{"engine":"conditional"}`)
		base := "/api/v1/orders/" + created.ID

		rec := do(e, http.MethodPost, base+"/pay", "")
		require.Equal(t, http.StatusOK, rec.Code)
		assert.True(t, decode[httpadapter.Order](t, rec).IsPaid)

		rec = do(e, http.MethodPost, base+"/confirm", "")
		require.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "Processing", decode[httpadapter.Order](t, rec).Status)

		rec = do(e, http.MethodPost, base+"/confirm", "")
		require.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "Completed", decode[httpadapter.Order](t, rec).Status)

		rec = do(e, http.MethodGet, base, "")
		require.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "Completed", decode[httpadapter.Order](t, rec).Status)
	})

	t.Run("should reject a trigger with conflict", func(t *testing.T) {
		e := newTestEcho(t)
		created := createOrder(t, e, `{"engine":"conditional","status":"Completed"}`)

		rec := do(e, http.MethodPost, "/api/v1/orders/"+created.ID+"/cancel", "")
		require.Equal(t, http.StatusConflict, rec.Code)
		body := decode[httpadapter.Error](t, rec)
		assert.Equal(t, http.StatusConflict, body.Code)
		assert.Contains(t, body.Message, "invalid transition")
	})

	t.Run("should auto cancel an unpaid table order", func(t *testing.T) {
		e := newTestEcho(t)
		created := createOrder(t, e, `{"engine":"table"}`)
		confirm := "/api/v1/orders/" + created.ID + "/confirm"

		for range order.MaxUnpaidConfirmations {
			rec := do(e, http.MethodPost, confirm, "")
			require.Equal(t, http.StatusOK, rec.Code)
			assert.Equal(t, "Pending", decode[httpadapter.Order](t, rec).Status)
		}

		rec := do(e, http.MethodPost, confirm, "")
		require.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "Canceled", decode[httpadapter.Order](t, rec).Status)
	})

	t.Run("should list only open orders", func(t *testing.T) {
		e := newTestEcho(t)
		open := createOrder(t, e, "")
		createOrder(t, e, `{"status":"Canceled"}`)

		rec := do(e, http.MethodGet, "/api/v1/orders", "")
		require.Equal(t, http.StatusOK, rec.Code)
		orders := decode[[]httpadapter.Order](t, rec)
		require.Len(t, orders, 1)
		assert.Equal(t, open.ID, orders[0].ID)
	})
}

func TestServer_Errors(t *testing.T) {
	e := newTestEcho(t)

	testCases := []struct {
		name   string
		method string
		target string
		body   string
		code   int
	}{
		{"unknown order", http.MethodGet, "/api/v1/orders/" + kernel.NewUUID().String(), "", http.StatusNotFound},
		{"malformed id", http.MethodPost, "/api/v1/orders/not-a-uuid/pay", "", http.StatusBadRequest},
		{"unknown engine", http.MethodPost, "/api/v1/orders", `{"engine":"quantum"}`, http.StatusBadRequest},
		{"unknown status", http.MethodPost, "/api/v1/orders", `{"status":"Shipped"}`, http.StatusBadRequest},
		{"malformed body", http.MethodPost, "/api/v1/orders", `{"engine":`, http.StatusBadRequest},
		{"missing price", http.MethodGet, "/api/v1/discounts/quote", "", http.StatusBadRequest},
		{"malformed price", http.MethodGet, "/api/v1/discounts/quote?price=abc", "", http.StatusBadRequest},
		{"negative price", http.MethodGet, "/api/v1/discounts/quote?price=-5", "", http.StatusBadRequest},
		{"NaN price", http.MethodGet, "/api/v1/discounts/quote?price=NaN", "", http.StatusBadRequest},
		{"infinite price", http.MethodGet, "/api/v1/discounts/quote?price=Inf", "", http.StatusBadRequest},
		{"unknown code", http.MethodGet, "/api/v1/discounts/quote?price=5&code=NOPE", "", http.StatusBadRequest},
	}

	for _, tc := range testCases {
		t.Run("should map "+tc.name, func(t *testing.T) {
			rec := do(e, tc.method, tc.target, tc.body)
			assert.Equal(t, tc.code, rec.Code, rec.Body.String())
			assert.Equal(t, tc.code, decode[httpadapter.Error](t, rec).Code)
		})
	}
}

func TestServer_Auxiliary(t *testing.T) {
	e := newTestEcho(t)

	t.Run("should quote a discount", func(t *testing.T) {
		rec := do(e, http.MethodGet, "/api/v1/discounts/quote?price=200&code=DISCOUNT20OFF", "")
		require.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, httpadapter.DiscountQuote{Price: 200, Code: "DISCOUNT20OFF", Total: 160}, decode[httpadapter.DiscountQuote](t, rec))
	})

	t.Run("should render the lifecycle graph", func(t *testing.T) {
		rec := do(e, http.MethodGet, "/api/v1/orders/graph", "")
		require.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Header().Get(echo.HeaderContentType), "text/vnd.graphviz")
		assert.Contains(t, rec.Body.String(), "digraph")
	})

	t.Run("should report health", func(t *testing.T) {
		rec := do(e, http.MethodGet, "/health", "")
		require.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "Healthy", rec.Body.String())
	})

	t.Run("should expose transition metrics", func(t *testing.T) {
		created := createOrder(t, e, "")
		require.Equal(t, http.StatusOK, do(e, http.MethodPost, "/api/v1/orders/"+created.ID+"/cancel", "").Code)

		rec := do(e, http.MethodGet, "/metrics", "")
		require.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Body.String(),
			`purchasing_order_transitions_total{destination="Canceled",source="Pending",trigger="Cancel"} 1`)
	})
}
