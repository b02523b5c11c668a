package http

import (
	"net/http"

	"butler/internal/adapters/in/http/docs"
	"butler/internal/adapters/in/http/openapi"

	"github.com/getkin/kin-openapi/openapi3"
	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	echoSwagger "github.com/swaggo/echo-swagger"
)

// NewRouter builds the echo instance serving the operator API.
//
// Routes:
//   - GET /health: liveness
//   - /api/v1/*: operator API, validated against doc
//   - GET /metrics: Prometheus metrics from gatherer
//   - GET /swagger/*: Swagger UI for doc
func NewRouter(s *Server, doc *openapi3.T, gatherer prometheus.Gatherer) (*echo.Echo, error) {
	validator, err := openapi.Validator(doc)
	if err != nil {
		return nil, err
	}

	e := echo.New()
	e.HideBanner = true

	e.GET("/health", func(c echo.Context) error {
		return c.String(http.StatusOK, "Healthy")
	})
	e.GET("/metrics", echo.WrapHandler(promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{})))
	e.GET("/swagger/*", echoSwagger.EchoWrapHandler(echoSwagger.InstanceName(docs.SwaggerInfo.InstanceName())))

	api := e.Group("/api/v1", validator)
	api.GET("/robot", s.GetRobotStatus)
	api.POST("/orders", s.PlaceOrders)
	api.POST("/queue", s.AddToQueue)
	api.DELETE("/queue/:table", s.RemoveFromQueue)
	api.DELETE("/delivery", s.CancelDelivery)

	return e, nil
}
