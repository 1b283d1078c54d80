package http

import (
	"net/http"
	"time"

	"donations/internal/core/application/usecases/commands"
	"donations/internal/core/application/usecases/queries"
	"donations/internal/core/domain/model/donation"
	"donations/internal/core/domain/model/kernel"

	"github.com/labstack/echo/v4"
)

func (s *Server) registerDonationRoutes(g *echo.Group) {
	g.POST("/donations", s.createDonation)
	g.GET("/donations", s.listDonations)
	g.GET("/donations/:donationId", s.getDonation)
	g.PUT("/donations/:donationId/center", s.assignDonationToCenter)
	g.POST("/donations/:donationId/accept", s.donationAction(func(c echo.Context, cmd commands.DonationActionCommand) error {
		return s.h.AcceptDonation.Handle(c.Request().Context(), cmd)
	}))
	g.POST("/donations/:donationId/reject", s.donationAction(func(c echo.Context, cmd commands.DonationActionCommand) error {
		return s.h.RejectDonation.Handle(c.Request().Context(), cmd)
	}))
	g.POST("/donations/:donationId/process", s.donationAction(func(c echo.Context, cmd commands.DonationActionCommand) error {
		return s.h.ProcessDonation.Handle(c.Request().Context(), cmd)
	}))
	g.DELETE("/donations/:donationId", s.donationAction(func(c echo.Context, cmd commands.DonationActionCommand) error {
		return s.h.DeleteDonation.Handle(c.Request().Context(), cmd)
	}))
}

func (s *Server) createDonation(c echo.Context) error {
	principal, err := principalFrom(c)
	if err != nil {
		return err
	}
	var req CreateDonationRequest
	if err := bindBody(c, &req); err != nil {
		return err
	}
	donorID, err := kernel.UUIDFromBytes(req.DonorID[:])
	if err != nil {
		return err
	}
	centerID, err := optionalUUID(req.CenterID)
	if err != nil {
		return err
	}
	var donatedAt time.Time
	if req.DonatedAt != nil {
		donatedAt = *req.DonatedAt
	}

	id := kernel.NewUUID()
	cmd, err := commands.NewCreateDonationCommand(principal, id, donorID,
		req.ItemName, req.Quantity, kernel.ParseUnit(req.Unit), donatedAt, centerID)
	if err != nil {
		return err
	}
	if err := s.h.CreateDonation.Handle(c.Request().Context(), cmd); err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, CreatedResponse{ID: id.Bytes()})
}

func (s *Server) listDonations(c echo.Context) error {
	principal, err := principalFrom(c)
	if err != nil {
		return err
	}
	status, err := queryEnum(c, "status", donation.ParseStatus)
	if err != nil {
		return err
	}
	donorID, err := queryID(c, "donorId")
	if err != nil {
		return err
	}
	centerID, err := queryID(c, "centerId")
	if err != nil {
		return err
	}

	q, err := queries.NewListDonationsQuery(principal, status, donorID, centerID)
	if err != nil {
		return err
	}
	views, err := s.h.ListDonations.Handle(c.Request().Context(), q)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, mapList(views, toDonation))
}

func (s *Server) getDonation(c echo.Context) error {
	principal, err := principalFrom(c)
	if err != nil {
		return err
	}
	id, err := pathID(c, "donationId")
	if err != nil {
		return err
	}
	q, err := queries.NewGetDonationQuery(principal, id)
	if err != nil {
		return err
	}
	view, err := s.h.GetDonation.Handle(c.Request().Context(), q)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toDonation(view))
}

func (s *Server) assignDonationToCenter(c echo.Context) error {
	principal, err := principalFrom(c)
	if err != nil {
		return err
	}
	id, err := pathID(c, "donationId")
	if err != nil {
		return err
	}
	var req AssignCenterRequest
	if err := bindBody(c, &req); err != nil {
		return err
	}
	centerID, err := kernel.UUIDFromBytes(req.CenterID[:])
	if err != nil {
		return err
	}

	cmd, err := commands.NewAssignDonationToCenterCommand(principal, id, centerID)
	if err != nil {
		return err
	}
	if err := s.h.AssignDonationToCenter.Handle(c.Request().Context(), cmd); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

// donationAction adapts a status-change use case that only needs the
// donation id from the path.
func (s *Server) donationAction(handle func(echo.Context, commands.DonationActionCommand) error) echo.HandlerFunc {
	return func(c echo.Context) error {
		principal, err := principalFrom(c)
		if err != nil {
			return err
		}
		id, err := pathID(c, "donationId")
		if err != nil {
			return err
		}
		cmd, err := commands.NewDonationActionCommand(principal, id)
		if err != nil {
			return err
		}
		if err := handle(c, cmd); err != nil {
			return err
		}
		return c.NoContent(http.StatusNoContent)
	}
}
