package http_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	server "butler/internal/adapters/in/http"
	"butler/internal/adapters/in/http/openapi"
	"butler/internal/core/application/delivery"
	"butler/internal/core/application/usecases/commands"
	"butler/internal/core/application/usecases/queries"
	"butler/internal/core/domain/model/robot"
	"butler/internal/core/domain/model/waypoint"

	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// sessionStarter begins a delivery on the session without running a cycle, so
// the robot stays in DELIVERY for the rest of the test.
type sessionStarter struct {
	session *robot.Session
}

func (s sessionStarter) StartCycle(_ context.Context) error {
	_, err := s.session.TryBeginDelivery(func() {})
	return err
}

type fixture struct {
	e       *echo.Echo
	session *robot.Session
	cancels *delivery.CancelChannel
}

func newFixture(t *testing.T) fixture {
	t.Helper()

	session := robot.NewSession()
	registry := waypoint.DefaultRegistry()
	cancels := delivery.NewCancelChannel(4)

	s := server.NewServer(
		commands.NewPlaceOrdersCommandHandler(session, registry, sessionStarter{session: session}),
		commands.NewModifyOrdersCommandHandler(session, registry, cancels),
		commands.NewCancelDeliveryCommandHandler(cancels),
		queries.NewGetRobotStatusQueryHandler(session),
	)

	doc, err := openapi.Load()
	require.NoError(t, err)

	reg := prometheus.NewRegistry()
	reg.MustRegister(prometheus.NewGauge(prometheus.GaugeOpts{Name: "butler_test_gauge", Help: "test"}))

	e, err := server.NewRouter(s, doc, reg)
	require.NoError(t, err)

	return fixture{e: e, session: session, cancels: cancels}
}

func (f fixture) do(method, path, body string) *httptest.ResponseRecorder {
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, path, nil)
	} else {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	rec := httptest.NewRecorder()
	f.e.ServeHTTP(rec, req)
	return rec
}

func decodeTables(t *testing.T, rec *httptest.ResponseRecorder) []string {
	t.Helper()
	var body server.Tables
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return body.Tables
}

func TestServer_Health(t *testing.T) {
	f := newFixture(t)

	rec := f.do(http.MethodGet, "/health", "")

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "Healthy", rec.Body.String())
}

func TestServer_GetRobotStatus(t *testing.T) {
	// Given
	f := newFixture(t)

	// When
	rec := f.do(http.MethodGet, "/api/v1/robot", "")

	// Then
	require.Equal(t, http.StatusOK, rec.Code)
	var status server.RobotStatus
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &status))
	assert.Equal(t, robot.Idle.String(), status.State)
	assert.Empty(t, status.Queue)
	assert.False(t, status.CancelPending)
}

func TestServer_PlaceOrders(t *testing.T) {
	t.Run("accepts known tables and starts a delivery", func(t *testing.T) {
		// Given
		f := newFixture(t)

		// When
		rec := f.do(http.MethodPost, "/api/v1/orders", `{"tables":["1","9","2"]}`)

		// Then
		require.Equal(t, http.StatusCreated, rec.Code)
		assert.Equal(t, []string{"table1", "table2"}, decodeTables(t, rec))
		snapshot := f.session.Snapshot()
		assert.Equal(t, robot.Delivery, snapshot.State)
		assert.Equal(t, []string{"table1", "table2"}, snapshot.Queue)
	})

	t.Run("rejects orders while busy", func(t *testing.T) {
		// Given
		f := newFixture(t)
		require.Equal(t, http.StatusCreated, f.do(http.MethodPost, "/api/v1/orders", `{"tables":["1"]}`).Code)

		// When
		rec := f.do(http.MethodPost, "/api/v1/orders", `{"tables":["2"]}`)

		// Then
		assert.Equal(t, http.StatusConflict, rec.Code)
		assert.Equal(t, []string{"table1"}, f.session.Snapshot().Queue)
	})

	t.Run("rejects a batch without known tables", func(t *testing.T) {
		f := newFixture(t)

		rec := f.do(http.MethodPost, "/api/v1/orders", `{"tables":["9"]}`)

		assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
		assert.True(t, f.session.IsIdle())
	})

	t.Run("rejects an empty batch before it reaches the handler", func(t *testing.T) {
		f := newFixture(t)

		rec := f.do(http.MethodPost, "/api/v1/orders", `{"tables":[]}`)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.True(t, f.session.IsIdle())
	})
}

func TestServer_AddToQueue(t *testing.T) {
	t.Run("conflicts without an active delivery", func(t *testing.T) {
		f := newFixture(t)

		rec := f.do(http.MethodPost, "/api/v1/queue", `{"tables":["2"]}`)

		assert.Equal(t, http.StatusConflict, rec.Code)
	})

	t.Run("appends new tables to the running delivery", func(t *testing.T) {
		// Given
		f := newFixture(t)
		require.Equal(t, http.StatusCreated, f.do(http.MethodPost, "/api/v1/orders", `{"tables":["1"]}`).Code)

		// When
		rec := f.do(http.MethodPost, "/api/v1/queue", `{"tables":["2","1"]}`)

		// Then
		require.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, []string{"table2"}, decodeTables(t, rec))
		assert.Equal(t, []string{"table1", "table2"}, f.session.Snapshot().Queue)
	})

	t.Run("reports when nothing was added", func(t *testing.T) {
		f := newFixture(t)
		require.Equal(t, http.StatusCreated, f.do(http.MethodPost, "/api/v1/orders", `{"tables":["1"]}`).Code)

		rec := f.do(http.MethodPost, "/api/v1/queue", `{"tables":["1","9"]}`)

		assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	})
}

func TestServer_RemoveFromQueue(t *testing.T) {
	t.Run("removes a queued table", func(t *testing.T) {
		// Given
		f := newFixture(t)
		require.Equal(t, http.StatusCreated, f.do(http.MethodPost, "/api/v1/orders", `{"tables":["1","2"]}`).Code)

		// When
		rec := f.do(http.MethodDelete, "/api/v1/queue/2", "")

		// Then
		assert.Equal(t, http.StatusNoContent, rec.Code)
		assert.Equal(t, []string{"table1"}, f.session.Snapshot().Queue)
		assert.Empty(t, f.cancels.Requests())
	})

	t.Run("removing the last table cancels the delivery", func(t *testing.T) {
		// Given
		f := newFixture(t)
		require.Equal(t, http.StatusCreated, f.do(http.MethodPost, "/api/v1/orders", `{"tables":["1"]}`).Code)

		// When
		rec := f.do(http.MethodDelete, "/api/v1/queue/1", "")

		// Then
		require.Equal(t, http.StatusNoContent, rec.Code)
		require.Len(t, f.cancels.Requests(), 1)
		req := <-f.cancels.Requests()
		assert.Equal(t, robot.CancelQueueEmptied, req.Reason)
	})

	t.Run("reports a table that is not queued", func(t *testing.T) {
		f := newFixture(t)
		require.Equal(t, http.StatusCreated, f.do(http.MethodPost, "/api/v1/orders", `{"tables":["1"]}`).Code)

		rec := f.do(http.MethodDelete, "/api/v1/queue/3", "")

		assert.Equal(t, http.StatusNotFound, rec.Code)
	})

	t.Run("rejects a malformed table number", func(t *testing.T) {
		f := newFixture(t)

		rec := f.do(http.MethodDelete, "/api/v1/queue/abc", "")

		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}

func TestServer_CancelDelivery(t *testing.T) {
	t.Run("queues an operator cancellation", func(t *testing.T) {
		// Given
		f := newFixture(t)

		// When
		rec := f.do(http.MethodDelete, "/api/v1/delivery", "")

		// Then
		require.Equal(t, http.StatusAccepted, rec.Code)
		require.Len(t, f.cancels.Requests(), 1)
		req := <-f.cancels.Requests()
		assert.Equal(t, robot.CancelOperator, req.Reason)
	})

	t.Run("reports a full backlog", func(t *testing.T) {
		// Given
		f := newFixture(t)
		for range 4 {
			require.Equal(t, http.StatusAccepted, f.do(http.MethodDelete, "/api/v1/delivery", "").Code)
		}

		// When
		rec := f.do(http.MethodDelete, "/api/v1/delivery", "")

		// Then
		assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
	})
}

func TestServer_Metrics(t *testing.T) {
	f := newFixture(t)

	rec := f.do(http.MethodGet, "/metrics", "")

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "butler_test_gauge")
}
