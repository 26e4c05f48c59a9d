package impl

import (
	"context"
	"log/slog"

	deliverycontext "shelfmark/internal/delivery/context"
	"shelfmark/internal/domain/entity"
	domainerrors "shelfmark/internal/domain/errors"
	"shelfmark/internal/domain/repository"
	"shelfmark/internal/domain/service"
	"shelfmark/internal/usecase"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"go.uber.org/fx"
)

const (
	defaultListLimit = 10
	maxListLimit     = 100
)

// bookmarkService implements the BookmarkUsecase interface.
type bookmarkService struct {
	bookmarkRepo  repository.BookmarkRepository
	qrcodeService service.QRCodeService
	logger        *slog.Logger
}

// BookmarkServiceParams holds dependencies for bookmarkService, injected by Fx.
type BookmarkServiceParams struct {
	fx.In

	BookmarkRepo  repository.BookmarkRepository
	QRCodeService service.QRCodeService
	Logger        *slog.Logger
}

// NewBookmarkService is the constructor for bookmarkService.
func NewBookmarkService(params BookmarkServiceParams) usecase.BookmarkUsecase {
	return &bookmarkService{
		bookmarkRepo:  params.BookmarkRepo,
		qrcodeService: params.QRCodeService,
		logger:        params.Logger,
	}
}

// log returns a request-scoped logger if available, otherwise falls back to the service's logger.
func (srv *bookmarkService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

// CreateBookmark stores a new bookmark owned by the acting user.
func (srv *bookmarkService) CreateBookmark(ctx context.Context, userID uuid.UUID, input usecase.CreateBookmarkInput) (*usecase.BookmarkOutput, error) {
	bookmark := &entity.Bookmark{
		UserID:      userID,
		Title:       input.Title,
		Description: input.Description,
		Link:        input.Link,
	}

	if err := srv.bookmarkRepo.Create(ctx, bookmark); err != nil {
		srv.log(ctx).Warn("Failed to create bookmark", slog.Any("userID", userID), slog.Any("error", err))

		return nil, err
	}

	srv.log(ctx).Debug("Bookmark created", slog.Any("bookmarkID", bookmark.ID), slog.Any("userID", userID))

	return usecase.NewBookmarkOutput(bookmark), nil
}

// GetBookmark returns one of the acting user's bookmarks. A bookmark owned
// by someone else reads as not found so that bookmark IDs cannot be probed.
func (srv *bookmarkService) GetBookmark(ctx context.Context, userID, bookmarkID uuid.UUID) (*usecase.BookmarkOutput, error) {
	bookmark, err := srv.findOwned(ctx, userID, bookmarkID, false)
	if err != nil {
		return nil, err
	}

	return usecase.NewBookmarkOutput(bookmark), nil
}

// ListBookmarks pages through the acting user's bookmarks ordered by
// creation time.
func (srv *bookmarkService) ListBookmarks(ctx context.Context, userID uuid.UUID, input usecase.ListBookmarksInput) ([]*usecase.BookmarkOutput, error) {
	params := repository.ListBookmarksParams{
		Page:  input.Page,
		Limit: input.Limit,
		Order: input.Order,
	}
	if params.Page < 1 {
		params.Page = 1
	}
	if params.Limit < 1 {
		params.Limit = defaultListLimit
	}
	if params.Limit > maxListLimit {
		params.Limit = maxListLimit
	}

	bookmarks, err := srv.bookmarkRepo.FindByUserID(ctx, userID, params)
	if err != nil {
		return nil, errors.Wrap(err, "failed to list bookmarks")
	}

	outputs := make([]*usecase.BookmarkOutput, 0, len(bookmarks))
	for _, bookmark := range bookmarks {
		outputs = append(outputs, usecase.NewBookmarkOutput(bookmark))
	}

	return outputs, nil
}

// EditBookmark applies a partial update to one of the acting user's
// bookmarks. Editing someone else's bookmark is forbidden, not hidden.
func (srv *bookmarkService) EditBookmark(ctx context.Context, userID, bookmarkID uuid.UUID, input usecase.EditBookmarkInput) (*usecase.BookmarkOutput, error) {
	bookmark, err := srv.findOwned(ctx, userID, bookmarkID, true)
	if err != nil {
		return nil, err
	}

	if input.Title != nil {
		bookmark.Title = *input.Title
	}
	if input.Description != nil {
		bookmark.Description = *input.Description
	}
	if input.Link != nil {
		bookmark.Link = *input.Link
	}

	if err := srv.bookmarkRepo.Update(ctx, bookmark); err != nil {
		srv.log(ctx).Warn("Failed to update bookmark", slog.Any("bookmarkID", bookmarkID), slog.Any("error", err))

		return nil, err
	}

	updated, err := srv.bookmarkRepo.FindByID(ctx, bookmarkID)
	if err != nil {
		return nil, errors.Wrap(err, "failed to reload bookmark after update")
	}

	srv.log(ctx).Debug("Bookmark updated", slog.Any("bookmarkID", bookmarkID))

	return usecase.NewBookmarkOutput(updated), nil
}

// DeleteBookmark removes one of the acting user's bookmarks.
func (srv *bookmarkService) DeleteBookmark(ctx context.Context, userID, bookmarkID uuid.UUID) error {
	if _, err := srv.findOwned(ctx, userID, bookmarkID, true); err != nil {
		return err
	}

	if err := srv.bookmarkRepo.Delete(ctx, bookmarkID); err != nil {
		srv.log(ctx).Warn("Failed to delete bookmark", slog.Any("bookmarkID", bookmarkID), slog.Any("error", err))

		return err
	}

	srv.log(ctx).Debug("Bookmark deleted", slog.Any("bookmarkID", bookmarkID))

	return nil
}

// ShareBookmarkQR renders the bookmark's link as a PNG QR code.
func (srv *bookmarkService) ShareBookmarkQR(ctx context.Context, userID, bookmarkID uuid.UUID) ([]byte, error) {
	bookmark, err := srv.findOwned(ctx, userID, bookmarkID, false)
	if err != nil {
		return nil, err
	}

	png, err := srv.qrcodeService.GenerateLinkQR(bookmark.Link)
	if err != nil {
		srv.log(ctx).Error("Failed to generate QR code", slog.Any("bookmarkID", bookmarkID), slog.Any("error", err))

		return nil, errors.Wrap(err, "failed to generate QR code")
	}

	return png, nil
}

// findOwned loads a bookmark and enforces ownership. Read paths hide the
// bookmark's existence from non-owners; write paths surface a forbidden
// error instead.
func (srv *bookmarkService) findOwned(ctx context.Context, userID, bookmarkID uuid.UUID, forbidOnMismatch bool) (*entity.Bookmark, error) {
	bookmark, err := srv.bookmarkRepo.FindByID(ctx, bookmarkID)
	if err != nil {
		if errors.Is(err, repository.ErrBookmarkNotFound) {
			return nil, domainerrors.ErrNotFound.WrapMessage("bookmark not found")
		}

		return nil, errors.Wrap(err, "failed to find bookmark by id")
	}

	if bookmark.UserID != userID {
		if forbidOnMismatch {
			return nil, domainerrors.ErrForbidden.WrapMessage("You do not own this bookmark")
		}

		return nil, domainerrors.ErrNotFound.WrapMessage("bookmark not found")
	}

	return bookmark, nil
}
