package http

import (
	"net/http"

	"donations/internal/core/application/usecases/commands"
	"donations/internal/core/application/usecases/queries"
	"donations/internal/core/domain/model/delivery"
	"donations/internal/core/domain/model/kernel"

	"github.com/labstack/echo/v4"
)

func (s *Server) registerDeliveryRoutes(g *echo.Group) {
	g.POST("/deliveries", s.createDelivery)
	g.GET("/deliveries", s.listDeliveries)
	g.GET("/deliveries/mine", s.listMyDeliveries)
	g.POST("/deliveries/:deliveryId/pickup", s.deliveryAction(func(c echo.Context, cmd commands.DeliveryActionCommand) error {
		return s.h.PickupDelivery.Handle(c.Request().Context(), cmd)
	}))
	g.POST("/deliveries/:deliveryId/in-transit", s.deliveryAction(func(c echo.Context, cmd commands.DeliveryActionCommand) error {
		return s.h.MarkDeliveryInTransit.Handle(c.Request().Context(), cmd)
	}))
	g.POST("/deliveries/:deliveryId/complete", s.deliveryAction(func(c echo.Context, cmd commands.DeliveryActionCommand) error {
		return s.h.CompleteDelivery.Handle(c.Request().Context(), cmd)
	}))
	g.POST("/deliveries/:deliveryId/cancel", s.deliveryAction(func(c echo.Context, cmd commands.DeliveryActionCommand) error {
		return s.h.CancelDelivery.Handle(c.Request().Context(), cmd)
	}))
	g.DELETE("/deliveries/:deliveryId", s.deliveryAction(func(c echo.Context, cmd commands.DeliveryActionCommand) error {
		return s.h.DeleteDelivery.Handle(c.Request().Context(), cmd)
	}))
}

func (s *Server) createDelivery(c echo.Context) error {
	principal, err := principalFrom(c)
	if err != nil {
		return err
	}
	var req CreateDeliveryRequest
	if err := bindBody(c, &req); err != nil {
		return err
	}
	donationID, err := kernel.UUIDFromBytes(req.DonationID[:])
	if err != nil {
		return err
	}
	driverID, err := kernel.UUIDFromBytes(req.DriverID[:])
	if err != nil {
		return err
	}
	recipientID, err := kernel.UUIDFromBytes(req.RecipientID[:])
	if err != nil {
		return err
	}

	id := kernel.NewUUID()
	cmd, err := commands.NewCreateDeliveryCommand(principal, id, donationID, driverID, recipientID,
		req.ScheduledPickupTime, req.Notes)
	if err != nil {
		return err
	}
	if err := s.h.CreateDelivery.Handle(c.Request().Context(), cmd); err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, CreatedResponse{ID: id.Bytes()})
}

func (s *Server) listDeliveries(c echo.Context) error {
	principal, err := principalFrom(c)
	if err != nil {
		return err
	}
	driverID, err := queryID(c, "driverId")
	if err != nil {
		return err
	}
	centerID, err := queryID(c, "centerId")
	if err != nil {
		return err
	}
	status, err := queryEnum(c, "status", delivery.ParseStatus)
	if err != nil {
		return err
	}

	q, err := queries.NewListDeliveriesQuery(principal, driverID, centerID, status)
	if err != nil {
		return err
	}
	views, err := s.h.ListDeliveries.Handle(c.Request().Context(), q)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, mapList(views, toDelivery))
}

func (s *Server) listMyDeliveries(c echo.Context) error {
	principal, err := principalFrom(c)
	if err != nil {
		return err
	}
	status, err := queryEnum(c, "status", delivery.ParseStatus)
	if err != nil {
		return err
	}

	q, err := queries.NewListMyDeliveriesQuery(principal, status)
	if err != nil {
		return err
	}
	views, err := s.h.ListMyDeliveries.Handle(c.Request().Context(), q)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, mapList(views, toDelivery))
}

func (s *Server) deliveryAction(handle func(echo.Context, commands.DeliveryActionCommand) error) echo.HandlerFunc {
	return func(c echo.Context) error {
		principal, err := principalFrom(c)
		if err != nil {
			return err
		}
		id, err := pathID(c, "deliveryId")
		if err != nil {
			return err
		}
		cmd, err := commands.NewDeliveryActionCommand(principal, id)
		if err != nil {
			return err
		}
		if err := handle(c, cmd); err != nil {
			return err
		}
		return c.NoContent(http.StatusNoContent)
	}
}
