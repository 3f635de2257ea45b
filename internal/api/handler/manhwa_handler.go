package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/manhwalog/manhwa-api/internal/core/domain"
	"github.com/manhwalog/manhwa-api/internal/core/ports"
)

// ManhwaHandler handles the catalog endpoints.
type ManhwaHandler struct {
	service ports.ManhwaService
}

func NewManhwaHandler(service ports.ManhwaService) *ManhwaHandler {
	return &ManhwaHandler{service: service}
}

// List handles GET /api/manhwa.
//
// @Summary      List the catalog
// @Tags         manhwa
// @Produce      json
// @Success      200  {array}  domain.Manhwa
// @Router       /api/manhwa [get]
func (h *ManhwaHandler) List(c echo.Context) error {
	list, err := h.service.List(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, list)
}

// Find handles GET /api/manhwa/s?id=...|title=...
//
// @Summary      Find one manhwa by id or title
// @Tags         manhwa
// @Produce      json
// @Param        id     query     string  false  "Manhwa ID"
// @Param        title  query     string  false  "Exact title"
// @Success      200    {object}  domain.Manhwa
// @Failure      400    {object}  ErrorResponse
// @Failure      404    {object}  ErrorResponse
// @Router       /api/manhwa/s [get]
func (h *ManhwaHandler) Find(c echo.Context) error {
	m, err := h.service.Find(c.Request().Context(), ports.ManhwaLookup{
		ID:    c.QueryParam("id"),
		Title: c.QueryParam("title"),
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, m)
}

// Create handles POST /api/manhwa (admin).
//
// @Summary      Add a manhwa to the catalog
// @Tags         manhwa
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      createManhwaRequest  true  "Catalog entry"
// @Success      201   {object}  domain.Manhwa
// @Failure      400   {object}  ErrorResponse
// @Failure      401   {object}  ErrorResponse
// @Failure      403   {object}  ErrorResponse
// @Failure      409   {object}  ErrorResponse
// @Router       /api/manhwa [post]
func (h *ManhwaHandler) Create(c echo.Context) error {
	var req createManhwaRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	m, err := h.service.Create(c.Request().Context(), ports.CreateManhwaInput{
		Title:       req.Title,
		Description: req.Description,
		CoverImage:  req.cover(),
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, m)
}

// Update handles PUT /api/manhwa/:id (admin).
//
// @Summary      Edit a manhwa
// @Tags         manhwa
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string               true  "Manhwa ID"
// @Param        body  body      updateManhwaRequest  true  "Fields to change"
// @Success      200   {object}  domain.Manhwa
// @Failure      400   {object}  ErrorResponse
// @Failure      401   {object}  ErrorResponse
// @Failure      403   {object}  ErrorResponse
// @Failure      404   {object}  ErrorResponse
// @Failure      409   {object}  ErrorResponse
// @Router       /api/manhwa/{id} [put]
func (h *ManhwaHandler) Update(c echo.Context) error {
	var req updateManhwaRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	m, err := h.service.Update(c.Request().Context(), c.Param("id"), domain.ManhwaUpdate{
		Title:       req.Title,
		Description: req.Description,
		CoverImage:  req.CoverImage,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, m)
}

// Delete handles DELETE /api/manhwa/:id (admin).
//
// @Summary      Remove a manhwa and its bookmarks
// @Tags         manhwa
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Manhwa ID"
// @Success      200  {object}  messageResponse
// @Failure      401  {object}  ErrorResponse
// @Failure      403  {object}  ErrorResponse
// @Failure      404  {object}  ErrorResponse
// @Router       /api/manhwa/{id} [delete]
func (h *ManhwaHandler) Delete(c echo.Context) error {
	if err := h.service.Delete(c.Request().Context(), c.Param("id")); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, messageResponse{Message: "Manhwa deleted"})
}
