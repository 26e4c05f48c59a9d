package impl

import (
	"context"
	"testing"

	"shelfmark/internal/domain/entity"
	domainerrors "shelfmark/internal/domain/errors"
	"shelfmark/internal/domain/repository"
	mockRepo "shelfmark/internal/mocks/repository"
	mockService "shelfmark/internal/mocks/service"
	"shelfmark/internal/usecase"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// bookmarkServiceFixtures holds all test dependencies for bookmark service tests.
type bookmarkServiceFixtures struct {
	service       usecase.BookmarkUsecase
	bookmarkRepo  *mockRepo.MockBookmarkRepository
	qrcodeService *mockService.MockQRCodeService
}

func createTestBookmarkService(t *testing.T) bookmarkServiceFixtures {
	bookmarkRepo := mockRepo.NewMockBookmarkRepository(t)
	qrcodeService := mockService.NewMockQRCodeService(t)
	service := NewBookmarkService(BookmarkServiceParams{
		BookmarkRepo:  bookmarkRepo,
		QRCodeService: qrcodeService,
		Logger:        newDiscardLogger(),
	})

	return bookmarkServiceFixtures{
		service:       service,
		bookmarkRepo:  bookmarkRepo,
		qrcodeService: qrcodeService,
	}
}

func TestBookmarkService_CreateBookmark(t *testing.T) {
	fx := createTestBookmarkService(t)
	ctx := context.Background()
	userID := uuid.New()
	bookmarkID := uuid.New()

	fx.bookmarkRepo.EXPECT().
		Create(ctx, mock.AnythingOfType("*entity.Bookmark")).
		RunAndReturn(func(_ context.Context, bookmark *entity.Bookmark) error {
			assert.Equal(t, userID, bookmark.UserID)
			assert.Equal(t, "Go blog", bookmark.Title)
			bookmark.ID = bookmarkID

			return nil
		})

	output, err := fx.service.CreateBookmark(ctx, userID, usecase.CreateBookmarkInput{
		Title:       "Go blog",
		Description: "official blog",
		Link:        "https://go.dev/blog",
	})
	require.NoError(t, err)
	assert.Equal(t, bookmarkID, output.ID)
	assert.Equal(t, userID, output.UserID)
}

func TestBookmarkService_GetBookmark_Owned(t *testing.T) {
	fx := createTestBookmarkService(t)
	ctx := context.Background()
	userID := uuid.New()
	bookmarkID := uuid.New()

	fx.bookmarkRepo.EXPECT().FindByID(ctx, bookmarkID).Return(&entity.Bookmark{
		ID:     bookmarkID,
		UserID: userID,
		Title:  "Go blog",
		Link:   "https://go.dev/blog",
	}, nil)

	output, err := fx.service.GetBookmark(ctx, userID, bookmarkID)
	require.NoError(t, err)
	assert.Equal(t, bookmarkID, output.ID)
}

// Reads of someone else's bookmark look identical to a missing bookmark.
func TestBookmarkService_GetBookmark_NotOwnedReadsAsNotFound(t *testing.T) {
	fx := createTestBookmarkService(t)
	ctx := context.Background()
	bookmarkID := uuid.New()

	fx.bookmarkRepo.EXPECT().FindByID(ctx, bookmarkID).Return(&entity.Bookmark{
		ID:     bookmarkID,
		UserID: uuid.New(),
	}, nil)

	_, err := fx.service.GetBookmark(ctx, uuid.New(), bookmarkID)
	require.Error(t, err)
	assert.ErrorIs(t, err, domainerrors.ErrNotFound)
}

func TestBookmarkService_GetBookmark_Missing(t *testing.T) {
	fx := createTestBookmarkService(t)
	ctx := context.Background()
	bookmarkID := uuid.New()

	fx.bookmarkRepo.EXPECT().
		FindByID(ctx, bookmarkID).
		Return(nil, repository.ErrBookmarkNotFound)

	_, err := fx.service.GetBookmark(ctx, uuid.New(), bookmarkID)
	require.Error(t, err)
	assert.ErrorIs(t, err, domainerrors.ErrNotFound)
}

func TestBookmarkService_ListBookmarks_AppliesDefaults(t *testing.T) {
	fx := createTestBookmarkService(t)
	ctx := context.Background()
	userID := uuid.New()

	fx.bookmarkRepo.EXPECT().
		FindByUserID(ctx, userID, repository.ListBookmarksParams{
			Page:  1,
			Limit: 10,
			Order: "",
		}).
		Return([]*entity.Bookmark{
			{ID: uuid.New(), UserID: userID, Title: "first"},
			{ID: uuid.New(), UserID: userID, Title: "second"},
		}, nil)

	outputs, err := fx.service.ListBookmarks(ctx, userID, usecase.ListBookmarksInput{})
	require.NoError(t, err)
	require.Len(t, outputs, 2)
	assert.Equal(t, "first", outputs[0].Title)
}

func TestBookmarkService_ListBookmarks_CapsLimit(t *testing.T) {
	fx := createTestBookmarkService(t)
	ctx := context.Background()
	userID := uuid.New()

	fx.bookmarkRepo.EXPECT().
		FindByUserID(ctx, userID, repository.ListBookmarksParams{
			Page:  3,
			Limit: 100,
			Order: "desc",
		}).
		Return([]*entity.Bookmark{}, nil)

	outputs, err := fx.service.ListBookmarks(ctx, userID, usecase.ListBookmarksInput{
		Page:  3,
		Limit: 5000,
		Order: "desc",
	})
	require.NoError(t, err)
	assert.Empty(t, outputs)
}

func TestBookmarkService_EditBookmark_PartialUpdate(t *testing.T) {
	fx := createTestBookmarkService(t)
	ctx := context.Background()
	userID := uuid.New()
	bookmarkID := uuid.New()

	stored := &entity.Bookmark{
		ID:          bookmarkID,
		UserID:      userID,
		Title:       "old title",
		Description: "old description",
		Link:        "https://example.com/old",
	}

	fx.bookmarkRepo.EXPECT().FindByID(ctx, bookmarkID).Return(stored, nil).Once()
	fx.bookmarkRepo.EXPECT().
		Update(ctx, mock.AnythingOfType("*entity.Bookmark")).
		RunAndReturn(func(_ context.Context, bookmark *entity.Bookmark) error {
			assert.Equal(t, "new title", bookmark.Title)
			assert.Equal(t, "old description", bookmark.Description)
			assert.Equal(t, "https://example.com/old", bookmark.Link)

			return nil
		})
	fx.bookmarkRepo.EXPECT().FindByID(ctx, bookmarkID).Return(&entity.Bookmark{
		ID:          bookmarkID,
		UserID:      userID,
		Title:       "new title",
		Description: "old description",
		Link:        "https://example.com/old",
	}, nil).Once()

	output, err := fx.service.EditBookmark(ctx, userID, bookmarkID, usecase.EditBookmarkInput{
		Title: strPtr("new title"),
	})
	require.NoError(t, err)
	assert.Equal(t, "new title", output.Title)
}

func TestBookmarkService_EditBookmark_NotOwnedForbidden(t *testing.T) {
	fx := createTestBookmarkService(t)
	ctx := context.Background()
	bookmarkID := uuid.New()

	fx.bookmarkRepo.EXPECT().FindByID(ctx, bookmarkID).Return(&entity.Bookmark{
		ID:     bookmarkID,
		UserID: uuid.New(),
	}, nil)

	_, err := fx.service.EditBookmark(ctx, uuid.New(), bookmarkID, usecase.EditBookmarkInput{
		Title: strPtr("hijack"),
	})
	require.Error(t, err)
	assert.ErrorIs(t, err, domainerrors.ErrForbidden)
}

func TestBookmarkService_DeleteBookmark_Owned(t *testing.T) {
	fx := createTestBookmarkService(t)
	ctx := context.Background()
	userID := uuid.New()
	bookmarkID := uuid.New()

	fx.bookmarkRepo.EXPECT().FindByID(ctx, bookmarkID).Return(&entity.Bookmark{
		ID:     bookmarkID,
		UserID: userID,
	}, nil)
	fx.bookmarkRepo.EXPECT().Delete(ctx, bookmarkID).Return(nil)

	require.NoError(t, fx.service.DeleteBookmark(ctx, userID, bookmarkID))
}

func TestBookmarkService_DeleteBookmark_NotOwnedForbidden(t *testing.T) {
	fx := createTestBookmarkService(t)
	ctx := context.Background()
	bookmarkID := uuid.New()

	fx.bookmarkRepo.EXPECT().FindByID(ctx, bookmarkID).Return(&entity.Bookmark{
		ID:     bookmarkID,
		UserID: uuid.New(),
	}, nil)

	err := fx.service.DeleteBookmark(ctx, uuid.New(), bookmarkID)
	require.Error(t, err)
	assert.ErrorIs(t, err, domainerrors.ErrForbidden)
}

func TestBookmarkService_ShareBookmarkQR(t *testing.T) {
	fx := createTestBookmarkService(t)
	ctx := context.Background()
	userID := uuid.New()
	bookmarkID := uuid.New()

	fx.bookmarkRepo.EXPECT().FindByID(ctx, bookmarkID).Return(&entity.Bookmark{
		ID:     bookmarkID,
		UserID: userID,
		Link:   "https://go.dev/blog",
	}, nil)
	fx.qrcodeService.EXPECT().
		GenerateLinkQR("https://go.dev/blog").
		Return([]byte{0x89, 0x50, 0x4E, 0x47}, nil)

	png, err := fx.service.ShareBookmarkQR(ctx, userID, bookmarkID)
	require.NoError(t, err)
	assert.NotEmpty(t, png)
}
