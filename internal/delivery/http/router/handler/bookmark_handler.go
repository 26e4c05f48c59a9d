package handler

import (
	"log/slog"
	"net/http"
	"strconv"

	"shelfmark/internal/delivery/http/response"
	"shelfmark/internal/usecase"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
)

// createBookmarkRequest is the bookmark creation payload.
type createBookmarkRequest struct {
	Title       string `json:"title" validate:"required"`
	Description string `json:"description"`
	Link        string `json:"link" validate:"required,url"`
}

// editBookmarkRequest is the partial bookmark update payload.
type editBookmarkRequest struct {
	Title       *string `json:"title"`
	Description *string `json:"description"`
	Link        *string `json:"link" validate:"omitempty,url"`
}

// BookmarkHandler holds dependencies for bookmark handlers.
type BookmarkHandler struct {
	uc     usecase.BookmarkUsecase
	logger *slog.Logger
}

// NewBookmarkHandler is the constructor for BookmarkHandler, injected by Fx.
func NewBookmarkHandler(uc usecase.BookmarkUsecase, logger *slog.Logger) *BookmarkHandler {
	return &BookmarkHandler{
		uc:     uc,
		logger: logger,
	}
}

// bookmarkID parses the :id path parameter.
func bookmarkID(c echo.Context) (uuid.UUID, error) {
	return uuid.Parse(c.Param("id"))
}

// CreateBookmark handles bookmark creation.
func (h *BookmarkHandler) CreateBookmark(c echo.Context) error {
	userID, ok := currentUserID(c)
	if !ok {
		return response.Unauthorized(c, "UNAUTHENTICATED", "Invalid user ID in token")
	}

	var req createBookmarkRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid bookmark input")
	}
	if err := c.Validate(&req); err != nil {
		return errors.WithStack(err)
	}

	output, err := h.uc.CreateBookmark(c.Request().Context(), userID, usecase.CreateBookmarkInput{
		Title:       req.Title,
		Description: req.Description,
		Link:        req.Link,
	})
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusCreated, output, "Bookmark created successfully")
}

// GetBookmark handles fetching a single bookmark.
func (h *BookmarkHandler) GetBookmark(c echo.Context) error {
	userID, ok := currentUserID(c)
	if !ok {
		return response.Unauthorized(c, "UNAUTHENTICATED", "Invalid user ID in token")
	}

	id, err := bookmarkID(c)
	if err != nil {
		return response.BadRequest(c, "INVALID_INPUT", "Invalid bookmark ID")
	}

	output, err := h.uc.GetBookmark(c.Request().Context(), userID, id)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, output, "Bookmark retrieved successfully")
}

// ListBookmarks handles paging through the caller's bookmarks.
func (h *BookmarkHandler) ListBookmarks(c echo.Context) error {
	userID, ok := currentUserID(c)
	if !ok {
		return response.Unauthorized(c, "UNAUTHENTICATED", "Invalid user ID in token")
	}

	page, _ := strconv.Atoi(c.QueryParam("page"))
	limit, _ := strconv.Atoi(c.QueryParam("limit"))

	outputs, err := h.uc.ListBookmarks(c.Request().Context(), userID, usecase.ListBookmarksInput{
		Page:  page,
		Limit: limit,
		Order: c.QueryParam("order"),
	})
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, outputs, "Bookmarks retrieved successfully")
}

// EditBookmark handles a partial update of a bookmark.
func (h *BookmarkHandler) EditBookmark(c echo.Context) error {
	userID, ok := currentUserID(c)
	if !ok {
		return response.Unauthorized(c, "UNAUTHENTICATED", "Invalid user ID in token")
	}

	id, err := bookmarkID(c)
	if err != nil {
		return response.BadRequest(c, "INVALID_INPUT", "Invalid bookmark ID")
	}

	var req editBookmarkRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid bookmark input")
	}
	if err := c.Validate(&req); err != nil {
		return errors.WithStack(err)
	}

	output, err := h.uc.EditBookmark(c.Request().Context(), userID, id, usecase.EditBookmarkInput{
		Title:       req.Title,
		Description: req.Description,
		Link:        req.Link,
	})
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, output, "Bookmark updated successfully")
}

// DeleteBookmark handles removing a bookmark.
func (h *BookmarkHandler) DeleteBookmark(c echo.Context) error {
	userID, ok := currentUserID(c)
	if !ok {
		return response.Unauthorized(c, "UNAUTHENTICATED", "Invalid user ID in token")
	}

	id, err := bookmarkID(c)
	if err != nil {
		return response.BadRequest(c, "INVALID_INPUT", "Invalid bookmark ID")
	}

	if err := h.uc.DeleteBookmark(c.Request().Context(), userID, id); err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, true, "Bookmark deleted successfully")
}

// ShareBookmarkQR streams the bookmark's link as a PNG QR code.
func (h *BookmarkHandler) ShareBookmarkQR(c echo.Context) error {
	userID, ok := currentUserID(c)
	if !ok {
		return response.Unauthorized(c, "UNAUTHENTICATED", "Invalid user ID in token")
	}

	id, err := bookmarkID(c)
	if err != nil {
		return response.BadRequest(c, "INVALID_INPUT", "Invalid bookmark ID")
	}

	png, err := h.uc.ShareBookmarkQR(c.Request().Context(), userID, id)
	if err != nil {
		return errors.WithStack(err)
	}

	return c.Blob(http.StatusOK, "image/png", png)
}
