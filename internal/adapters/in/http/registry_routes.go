package http

import (
	"net/http"

	"donations/internal/core/application/usecases/commands"
	"donations/internal/core/application/usecases/queries"
	"donations/internal/core/domain/model/donor"
	"donations/internal/core/domain/model/kernel"
	"donations/internal/core/domain/model/recipient"

	"github.com/labstack/echo/v4"
)

func (s *Server) registerRegistryRoutes(g *echo.Group) {
	g.POST("/donors", s.createDonor)
	g.GET("/donors", s.listDonors)
	g.DELETE("/donors/:donorId", s.deleteDonor)

	g.POST("/centers", s.createCenter)
	g.GET("/centers", s.listCenters)
	g.GET("/centers/mine", s.getMyCenter)
	g.PUT("/centers/:centerId", s.updateCenter)
	g.POST("/centers/reconcile", s.reconcileCenterLoads)

	g.POST("/delivery-partners", s.createDeliveryPartner)
	g.GET("/delivery-partners", s.listDeliveryPartners)

	g.POST("/recipients", s.createRecipient)
	g.GET("/recipients", s.listRecipients)
	g.PUT("/recipients/:recipientId/active", s.setRecipientActive)
}

func (s *Server) createDonor(c echo.Context) error {
	principal, err := principalFrom(c)
	if err != nil {
		return err
	}
	var req CreateDonorRequest
	if err := bindBody(c, &req); err != nil {
		return err
	}

	id := kernel.NewUUID()
	cmd, err := commands.NewCreateDonorCommand(principal, id,
		req.Name, req.Contact, req.Location, donor.ParseType(req.Type), req.Username)
	if err != nil {
		return err
	}
	if err := s.h.CreateDonor.Handle(c.Request().Context(), cmd); err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, CreatedResponse{ID: id.Bytes()})
}

func (s *Server) listDonors(c echo.Context) error {
	q, err := s.registryQuery(c, false)
	if err != nil {
		return err
	}
	views, err := s.h.Registry.ListDonors(c.Request().Context(), q)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, mapList(views, toDonor))
}

func (s *Server) deleteDonor(c echo.Context) error {
	principal, err := principalFrom(c)
	if err != nil {
		return err
	}
	id, err := pathID(c, "donorId")
	if err != nil {
		return err
	}
	cmd, err := commands.NewDeleteDonorCommand(principal, id)
	if err != nil {
		return err
	}
	if err := s.h.DeleteDonor.Handle(c.Request().Context(), cmd); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

func (s *Server) createCenter(c echo.Context) error {
	principal, err := principalFrom(c)
	if err != nil {
		return err
	}
	var req CenterRequest
	if err := bindBody(c, &req); err != nil {
		return err
	}

	id := kernel.NewUUID()
	cmd, err := commands.NewCreateCollectionCenterCommand(principal, id,
		req.Name, req.Location, req.MaxCapacity, req.StaffUsername)
	if err != nil {
		return err
	}
	if err := s.h.CreateCenter.Handle(c.Request().Context(), cmd); err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, CreatedResponse{ID: id.Bytes()})
}

func (s *Server) updateCenter(c echo.Context) error {
	principal, err := principalFrom(c)
	if err != nil {
		return err
	}
	id, err := pathID(c, "centerId")
	if err != nil {
		return err
	}
	var req CenterRequest
	if err := bindBody(c, &req); err != nil {
		return err
	}

	cmd, err := commands.NewUpdateCollectionCenterCommand(principal, id,
		req.Name, req.Location, req.MaxCapacity, req.StaffUsername)
	if err != nil {
		return err
	}
	if err := s.h.UpdateCenter.Handle(c.Request().Context(), cmd); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

func (s *Server) listCenters(c echo.Context) error {
	q, err := s.registryQuery(c, false)
	if err != nil {
		return err
	}
	views, err := s.h.Registry.ListCenters(c.Request().Context(), q)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, mapList(views, toCenter))
}

func (s *Server) getMyCenter(c echo.Context) error {
	q, err := s.registryQuery(c, false)
	if err != nil {
		return err
	}
	view, err := s.h.Registry.GetMyCenter(c.Request().Context(), q)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toCenter(view))
}

func (s *Server) reconcileCenterLoads(c echo.Context) error {
	principal, err := principalFrom(c)
	if err != nil {
		return err
	}
	cmd, err := commands.NewReconcileCenterLoadsCommand(principal)
	if err != nil {
		return err
	}
	corrected, err := s.h.ReconcileCenterLoads.Handle(c.Request().Context(), cmd)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, CountResponse{Count: corrected})
}

func (s *Server) createDeliveryPartner(c echo.Context) error {
	principal, err := principalFrom(c)
	if err != nil {
		return err
	}
	var req CreateDeliveryPartnerRequest
	if err := bindBody(c, &req); err != nil {
		return err
	}
	centerID, err := optionalUUID(req.CenterID)
	if err != nil {
		return err
	}

	id := kernel.NewUUID()
	cmd, err := commands.NewCreateDeliveryPartnerCommand(principal, id,
		req.Name, req.Phone, req.VehicleNumber, req.VehicleType, req.Username, centerID)
	if err != nil {
		return err
	}
	if err := s.h.CreateDeliveryPartner.Handle(c.Request().Context(), cmd); err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, CreatedResponse{ID: id.Bytes()})
}

func (s *Server) listDeliveryPartners(c echo.Context) error {
	availableOnly, err := queryBool(c, "available")
	if err != nil {
		return err
	}
	q, err := s.registryQuery(c, availableOnly)
	if err != nil {
		return err
	}
	views, err := s.h.Registry.ListDeliveryPartners(c.Request().Context(), q)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, mapList(views, toDeliveryPartner))
}

func (s *Server) createRecipient(c echo.Context) error {
	principal, err := principalFrom(c)
	if err != nil {
		return err
	}
	var req CreateRecipientRequest
	if err := bindBody(c, &req); err != nil {
		return err
	}

	id := kernel.NewUUID()
	cmd, err := commands.NewCreateRecipientCommand(principal, id,
		req.Name, recipient.ParseType(req.Type), req.Address,
		recipient.Contact{Person: req.Contact.Person, Phone: req.Contact.Phone, Email: req.Contact.Email})
	if err != nil {
		return err
	}
	if err := s.h.CreateRecipient.Handle(c.Request().Context(), cmd); err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, CreatedResponse{ID: id.Bytes()})
}

func (s *Server) listRecipients(c echo.Context) error {
	activeOnly, err := queryBool(c, "active")
	if err != nil {
		return err
	}
	q, err := s.registryQuery(c, activeOnly)
	if err != nil {
		return err
	}
	views, err := s.h.Registry.ListRecipients(c.Request().Context(), q)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, mapList(views, toRecipient))
}

func (s *Server) setRecipientActive(c echo.Context) error {
	principal, err := principalFrom(c)
	if err != nil {
		return err
	}
	id, err := pathID(c, "recipientId")
	if err != nil {
		return err
	}
	var req SetActiveRequest
	if err := bindBody(c, &req); err != nil {
		return err
	}

	cmd, err := commands.NewSetRecipientActiveCommand(principal, id, *req.Active)
	if err != nil {
		return err
	}
	if err := s.h.SetRecipientActive.Handle(c.Request().Context(), cmd); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

func (s *Server) registryQuery(c echo.Context, onlyUsable bool) (queries.RegistryQuery, error) {
	principal, err := principalFrom(c)
	if err != nil {
		return queries.RegistryQuery{}, err
	}
	return queries.NewRegistryQuery(principal, onlyUsable)
}
