package impl

import (
	"io"
	"log/slog"

	"shelfmark/internal/domain/service"

	"github.com/google/uuid"
)

func newDiscardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func strPtr(s string) *string {
	return &s
}

func newRefreshClaims(userID uuid.UUID) *service.Claims {
	return &service.Claims{
		UserID: userID,
		Type:   service.TokenTypeRefresh,
	}
}
