package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/manhwalog/manhwa-api/internal/core/ports"
)

// BookmarkHandler handles the caller's own bookmarks. All routes require
// authentication.
type BookmarkHandler struct {
	service ports.BookmarkService
}

func NewBookmarkHandler(service ports.BookmarkService) *BookmarkHandler {
	return &BookmarkHandler{service: service}
}

// Add handles POST /api/bookmarks.
//
// @Summary      Bookmark a manhwa
// @Tags         bookmarks
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      addBookmarkRequest  true  "Bookmark"
// @Success      201   {object}  dataResponse
// @Failure      400   {object}  ErrorResponse
// @Failure      401   {object}  ErrorResponse
// @Failure      404   {object}  ErrorResponse
// @Router       /api/bookmarks [post]
func (h *BookmarkHandler) Add(c echo.Context) error {
	who, err := caller(c)
	if err != nil {
		return err
	}

	var req addBookmarkRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	b, err := h.service.Add(c.Request().Context(), who.ID, ports.AddBookmarkInput{
		ManhwaID: req.ManhwaID,
		Chapter:  req.Chapter,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, dataResponse{Data: b})
}

// List handles GET /api/bookmarks?title=...
//
// @Summary      List my bookmarks
// @Tags         bookmarks
// @Produce      json
// @Security     BearerAuth
// @Param        title  query     string  false  "Case-insensitive title filter"
// @Success      200    {object}  dataResponse
// @Failure      401    {object}  ErrorResponse
// @Router       /api/bookmarks [get]
func (h *BookmarkHandler) List(c echo.Context) error {
	who, err := caller(c)
	if err != nil {
		return err
	}

	list, err := h.service.List(c.Request().Context(), who.ID, c.QueryParam("title"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, dataResponse{Data: list})
}

// UpdateChapter handles PUT /api/bookmarks/:id.
//
// @Summary      Update the chapter of a bookmark
// @Tags         bookmarks
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string                 true  "Bookmark ID"
// @Param        body  body      updateBookmarkRequest  true  "Chapter"
// @Success      200   {object}  dataResponse
// @Failure      400   {object}  ErrorResponse
// @Failure      401   {object}  ErrorResponse
// @Failure      404   {object}  ErrorResponse
// @Router       /api/bookmarks/{id} [put]
func (h *BookmarkHandler) UpdateChapter(c echo.Context) error {
	who, err := caller(c)
	if err != nil {
		return err
	}

	var req updateBookmarkRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	b, err := h.service.UpdateChapter(c.Request().Context(), who.ID, c.Param("id"), req.Chapter)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, dataResponse{Data: b})
}

// Delete handles DELETE /api/bookmarks/:id.
//
// @Summary      Delete a bookmark
// @Tags         bookmarks
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Bookmark ID"
// @Success      200  {object}  messageResponse
// @Failure      401  {object}  ErrorResponse
// @Failure      404  {object}  ErrorResponse
// @Router       /api/bookmarks/{id} [delete]
func (h *BookmarkHandler) Delete(c echo.Context) error {
	who, err := caller(c)
	if err != nil {
		return err
	}
	if err := h.service.Delete(c.Request().Context(), who.ID, c.Param("id")); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, messageResponse{Message: "Bookmark deleted"})
}
