package http

import (
	"net/http"
	"time"

	"donations/internal/core/application/usecases/commands"
	"donations/internal/core/domain/model/kernel"

	"github.com/labstack/echo/v4"
)

func (s *Server) registerWasteRoutes(g *echo.Group) {
	g.POST("/waste", s.recordWaste)
	g.GET("/waste", s.listWaste)
	g.POST("/waste/:wasteId/process", s.wasteAction(func(c echo.Context, cmd commands.WasteActionCommand) error {
		return s.h.ProcessWaste.Handle(c.Request().Context(), cmd)
	}))
	g.DELETE("/waste/:wasteId", s.wasteAction(func(c echo.Context, cmd commands.WasteActionCommand) error {
		return s.h.DeleteWaste.Handle(c.Request().Context(), cmd)
	}))
}

func (s *Server) recordWaste(c echo.Context) error {
	principal, err := principalFrom(c)
	if err != nil {
		return err
	}
	var req RecordWasteRequest
	if err := bindBody(c, &req); err != nil {
		return err
	}
	donationID, err := kernel.UUIDFromBytes(req.DonationID[:])
	if err != nil {
		return err
	}
	var recordedAt time.Time
	if req.RecordedAt != nil {
		recordedAt = *req.RecordedAt
	}

	id := kernel.NewUUID()
	cmd, err := commands.NewRecordWasteCommand(principal, id, donationID,
		req.ItemName, req.Quantity, kernel.ParseUnit(req.Unit), recordedAt)
	if err != nil {
		return err
	}
	if err := s.h.RecordWaste.Handle(c.Request().Context(), cmd); err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, CreatedResponse{ID: id.Bytes()})
}

func (s *Server) listWaste(c echo.Context) error {
	pendingOnly, err := queryBool(c, "pendingOnly")
	if err != nil {
		return err
	}
	centerID, err := queryID(c, "centerId")
	if err != nil {
		return err
	}
	donationID, err := queryID(c, "donationId")
	if err != nil {
		return err
	}
	q, err := s.registryQuery(c, pendingOnly)
	if err != nil {
		return err
	}

	views, err := s.h.Registry.ListWaste(c.Request().Context(), q, centerID, donationID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, mapList(views, toWaste))
}

func (s *Server) wasteAction(handle func(echo.Context, commands.WasteActionCommand) error) echo.HandlerFunc {
	return func(c echo.Context) error {
		principal, err := principalFrom(c)
		if err != nil {
			return err
		}
		id, err := pathID(c, "wasteId")
		if err != nil {
			return err
		}
		cmd, err := commands.NewWasteActionCommand(principal, id)
		if err != nil {
			return err
		}
		if err := handle(c, cmd); err != nil {
			return err
		}
		return c.NoContent(http.StatusNoContent)
	}
}
