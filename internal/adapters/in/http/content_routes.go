package http

import (
	"net/http"

	"donations/internal/core/application/usecases/commands"
	"donations/internal/core/application/usecases/queries"
	"donations/internal/core/domain/model/content"

	"github.com/labstack/echo/v4"
)

func (s *Server) registerContentRoutes(g *echo.Group) {
	g.POST("/donations/:donationId/content", s.generateContent)
	g.GET("/donations/:donationId/content/:type", s.getSavedContent)
	g.GET("/content/thank-you/mine", s.listMyThankYouMessages)
}

func (s *Server) generateContent(c echo.Context) error {
	principal, err := principalFrom(c)
	if err != nil {
		return err
	}
	donationID, err := pathID(c, "donationId")
	if err != nil {
		return err
	}
	var req GenerateContentRequest
	if err := bindBody(c, &req); err != nil {
		return err
	}
	contentType, err := content.ParseType(req.Type)
	if err != nil {
		return err
	}

	cmd, err := commands.NewGenerateContentCommand(principal, donationID, contentType, req.Items, req.DonorName)
	if err != nil {
		return err
	}
	generated, err := s.h.GenerateContent.Handle(c.Request().Context(), cmd)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toContent(queries.NewContentView(generated)))
}

func (s *Server) getSavedContent(c echo.Context) error {
	principal, err := principalFrom(c)
	if err != nil {
		return err
	}
	donationID, err := pathID(c, "donationId")
	if err != nil {
		return err
	}
	contentType, err := content.ParseType(c.Param("type"))
	if err != nil {
		return err
	}

	q, err := queries.NewGetSavedContentQuery(principal, donationID, contentType)
	if err != nil {
		return err
	}
	view, err := s.h.Content.GetSaved(c.Request().Context(), q)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toContent(view))
}

func (s *Server) listMyThankYouMessages(c echo.Context) error {
	q, err := s.registryQuery(c, false)
	if err != nil {
		return err
	}
	views, err := s.h.Content.ListMyThankYouMessages(c.Request().Context(), q)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, mapList(views, toContent))
}
