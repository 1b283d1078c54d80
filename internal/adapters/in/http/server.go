// Package http is the echo-based REST adapter. Every route under /api needs a
// bearer token; the resulting principal is handed to commands and queries
// unchanged, which do all authorisation.
package http

import (
	"log/slog"
	"net/http"

	"donations/internal/core/application/usecases/commands"
	"donations/internal/core/application/usecases/queries"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	echoSwagger "github.com/swaggo/echo-swagger"
)

// Handlers groups the use cases the server exposes.
type Handlers struct {
	CreateDonor           commands.CreateDonorCommandHandler
	DeleteDonor           commands.DeleteDonorCommandHandler
	CreateCenter          commands.CreateCollectionCenterCommandHandler
	UpdateCenter          commands.UpdateCollectionCenterCommandHandler
	ReconcileCenterLoads  commands.ReconcileCenterLoadsCommandHandler
	CreateDeliveryPartner commands.CreateDeliveryPartnerCommandHandler
	CreateRecipient       commands.CreateRecipientCommandHandler
	SetRecipientActive    commands.SetRecipientActiveCommandHandler

	CreateDonation         commands.CreateDonationCommandHandler
	AssignDonationToCenter commands.AssignDonationToCenterCommandHandler
	AcceptDonation         commands.AcceptDonationCommandHandler
	RejectDonation         commands.RejectDonationCommandHandler
	ProcessDonation        commands.ProcessDonationCommandHandler
	DeleteDonation         commands.DeleteDonationCommandHandler

	CreateDelivery        commands.CreateDeliveryCommandHandler
	PickupDelivery        commands.PickupDeliveryCommandHandler
	MarkDeliveryInTransit commands.MarkDeliveryInTransitCommandHandler
	CompleteDelivery      commands.CompleteDeliveryCommandHandler
	CancelDelivery        commands.CancelDeliveryCommandHandler
	DeleteDelivery        commands.DeleteDeliveryCommandHandler

	RecordWaste  commands.RecordWasteCommandHandler
	ProcessWaste commands.ProcessWasteCommandHandler
	DeleteWaste  commands.DeleteWasteCommandHandler

	GenerateContent commands.GenerateContentCommandHandler

	ListDonations    queries.ListDonationsQueryHandler
	GetDonation      queries.GetDonationQueryHandler
	ListDeliveries   queries.ListDeliveriesQueryHandler
	ListMyDeliveries queries.ListMyDeliveriesQueryHandler
	Registry         queries.RegistryQueryHandler
	Content          queries.ContentQueryHandler
}

// RequestObserver receives one call per served request.
type RequestObserver interface {
	ObserveRequest(method, route string, code int)
}

// Server exposes the use cases over HTTP. Every route except /health,
// /metrics and /swagger requires a bearer token.
type Server struct {
	h        Handlers
	auth     *Authenticator
	gatherer prometheus.Gatherer
	requests RequestObserver
	logger   *slog.Logger
}

// NewServer wires the routes. gatherer and requests may be nil, in which case
// /metrics is not served and requests are not counted.
func NewServer(
	h Handlers,
	auth *Authenticator,
	gatherer prometheus.Gatherer,
	requests RequestObserver,
	logger *slog.Logger,
) *Server {
	if logger == nil {
		logger = slog.Default()
	}
	return &Server{h: h, auth: auth, gatherer: gatherer, requests: requests, logger: logger}
}

// Echo builds a ready-to-start echo instance.
func (s *Server) Echo() (*echo.Echo, error) {
	doc, err := LoadContract()
	if err != nil {
		return nil, err
	}
	registerContract(doc)

	e := echo.New()
	e.HideBanner = true
	e.Validator = newRequestValidator()
	e.HTTPErrorHandler = NewErrorHandler(s.logger)
	e.Use(middleware.Recover())
	e.Use(middleware.RequestID())
	e.Use(middleware.RequestLoggerWithConfig(s.requestLoggerConfig()))

	e.GET("/health", func(c echo.Context) error {
		return c.String(http.StatusOK, "Healthy")
	})
	e.GET("/openapi.json", func(c echo.Context) error {
		return c.JSON(http.StatusOK, doc)
	})
	e.GET("/swagger/*", echoSwagger.WrapHandler)
	if s.gatherer != nil {
		e.GET("/metrics", echo.WrapHandler(promhttp.HandlerFor(s.gatherer, promhttp.HandlerOpts{})))
	}

	api := e.Group("/api", s.auth.Middleware())
	s.registerRegistryRoutes(api)
	s.registerDonationRoutes(api)
	s.registerDeliveryRoutes(api)
	s.registerWasteRoutes(api)
	s.registerContentRoutes(api)

	return e, nil
}

func (s *Server) requestLoggerConfig() middleware.RequestLoggerConfig {
	logger := s.logger.With("component", "http")
	return middleware.RequestLoggerConfig{
		LogMethod:    true,
		LogURI:       true,
		LogRoutePath: true,
		LogStatus:    true,
		LogLatency:   true,
		LogError:     true,
		HandleError:  true,
		LogValuesFunc: func(c echo.Context, v middleware.RequestLoggerValues) error {
			if s.requests != nil {
				s.requests.ObserveRequest(v.Method, v.RoutePath, v.Status)
			}
			attrs := []any{"method", v.Method, "uri", v.URI, "status", v.Status, "latency", v.Latency}
			if v.Error != nil {
				logger.WarnContext(c.Request().Context(), "request", append(attrs, "error", v.Error)...)
				return nil
			}
			logger.InfoContext(c.Request().Context(), "request", attrs...)
			return nil
		},
	}
}
