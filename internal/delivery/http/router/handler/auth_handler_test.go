package handler

import (
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"shelfmark/internal/delivery/http/middleware"
	"shelfmark/internal/delivery/http/response"
	echovalidator "shelfmark/internal/delivery/http/validator"
	domainerrors "shelfmark/internal/domain/errors"
	mockUsecase "shelfmark/internal/mocks/usecase"
	"shelfmark/internal/usecase"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// wireResponse mirrors the response envelope for decoding test bodies.
type wireResponse struct {
	Success bool                `json:"success"`
	Code    int                 `json:"code"`
	Message string              `json:"message"`
	Data    any                 `json:"data"`
	Error   *response.ErrorInfo `json:"error"`
}

// newAuthTestServer wires the auth handler into a full echo app with the
// real validator and error handler, so tests exercise the wire contract
// end-to-end. Routes behind the guard get a stub that attaches userID the
// way Authenticate does.
func newAuthTestServer(t *testing.T, userID uuid.UUID) (*echo.Echo, *mockUsecase.MockAuthUsecase) {
	uc := mockUsecase.NewMockAuthUsecase(t)
	h := NewAuthHandler(uc, slog.New(slog.NewTextHandler(io.Discard, nil)))

	e := echo.New()
	e.Validator = echovalidator.New()
	e.HTTPErrorHandler = middleware.NewErrorMiddleware(slog.New(slog.NewTextHandler(io.Discard, nil))).HandleHTTPError

	identity := func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			c.Set(middleware.KeyUserID, userID)

			return next(c)
		}
	}

	e.POST("/auth/signup", h.SignUp)
	e.POST("/auth/signin", h.SignIn)
	e.POST("/auth/refresh", h.Refresh, identity)
	e.POST("/auth/signout", h.SignOut, identity)

	return e, uc
}

func doJSON(t *testing.T, e *echo.Echo, method, path, body string) (*httptest.ResponseRecorder, wireResponse) {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	var envelope wireResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &envelope))

	return rec, envelope
}

func TestAuthHandler_SignUp_ReturnsOnlyAccessToken(t *testing.T) {
	e, uc := newAuthTestServer(t, uuid.New())

	uc.EXPECT().
		SignUp(mock.Anything, usecase.SignUpInput{
			Email:    "alice@example.com",
			Password: "correct-horse",
		}).
		Return(&usecase.TokenPairOutput{
			AccessToken:  "access-1",
			RefreshToken: "refresh-1",
		}, nil)

	rec, envelope := doJSON(t, e, http.MethodPost, "/auth/signup",
		`{"email":"alice@example.com","password":"correct-horse"}`)

	require.Equal(t, http.StatusCreated, rec.Code)
	assert.True(t, envelope.Success)
	assert.Equal(t, http.StatusCreated, envelope.Code)

	data, ok := envelope.Data.(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "access-1", data["access_token"])
	// The refresh token stays server-side at sign-up.
	assert.NotContains(t, data, "refresh_token")
}

func TestAuthHandler_SignUp_DuplicateEmailConflict(t *testing.T) {
	e, uc := newAuthTestServer(t, uuid.New())

	uc.EXPECT().
		SignUp(mock.Anything, mock.AnythingOfType("usecase.SignUpInput")).
		Return(nil, domainerrors.ErrEmailTaken)

	rec, envelope := doJSON(t, e, http.MethodPost, "/auth/signup",
		`{"email":"alice@example.com","password":"correct-horse"}`)

	require.Equal(t, http.StatusForbidden, rec.Code)
	assert.False(t, envelope.Success)
	require.NotNil(t, envelope.Error)
	assert.Equal(t, "EMAIL_TAKEN", envelope.Error.Code)
}

func TestAuthHandler_SignUp_RejectsShortPassword(t *testing.T) {
	e, _ := newAuthTestServer(t, uuid.New())

	rec, envelope := doJSON(t, e, http.MethodPost, "/auth/signup",
		`{"email":"alice@example.com","password":"short"}`)

	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.False(t, envelope.Success)
}

func TestAuthHandler_SignIn_InvalidCredentials(t *testing.T) {
	e, uc := newAuthTestServer(t, uuid.New())

	uc.EXPECT().
		SignIn(mock.Anything, mock.AnythingOfType("usecase.SignInInput")).
		Return(nil, domainerrors.ErrInvalidCredentials)

	rec, envelope := doJSON(t, e, http.MethodPost, "/auth/signin",
		`{"email":"alice@example.com","password":"wrong-password"}`)

	require.Equal(t, http.StatusForbidden, rec.Code)
	assert.False(t, envelope.Success)
	require.NotNil(t, envelope.Error)
	assert.Equal(t, "INVALID_CREDENTIALS", envelope.Error.Code)
}

// Sign-in hands out a pair, refreshing rotates it, and replaying the
// rotated-out token is rejected with the generic credentials error.
func TestAuthHandler_RefreshRotationRoundTrip(t *testing.T) {
	userID := uuid.New()
	e, uc := newAuthTestServer(t, userID)

	uc.EXPECT().
		SignIn(mock.Anything, usecase.SignInInput{
			Email:    "alice@example.com",
			Password: "correct-horse",
		}).
		Return(&usecase.TokenPairOutput{
			AccessToken:  "access-1",
			RefreshToken: "refresh-1",
		}, nil)
	uc.EXPECT().
		Refresh(mock.Anything, usecase.RefreshInput{
			UserID:       userID,
			RefreshToken: "refresh-1",
		}).
		Return(&usecase.TokenPairOutput{
			AccessToken:  "access-2",
			RefreshToken: "refresh-2",
		}, nil).
		Once()
	uc.EXPECT().
		Refresh(mock.Anything, usecase.RefreshInput{
			UserID:       userID,
			RefreshToken: "refresh-1",
		}).
		Return(nil, domainerrors.ErrInvalidCredentials).
		Once()

	rec, envelope := doJSON(t, e, http.MethodPost, "/auth/signin",
		`{"email":"alice@example.com","password":"correct-horse"}`)
	require.Equal(t, http.StatusOK, rec.Code)

	pair, ok := envelope.Data.(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "access-1", pair["access_token"])
	require.Equal(t, "refresh-1", pair["refresh_token"])

	rec, envelope = doJSON(t, e, http.MethodPost, "/auth/refresh",
		`{"refresh_token":"refresh-1"}`)
	require.Equal(t, http.StatusOK, rec.Code)

	rotated, ok := envelope.Data.(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "refresh-2", rotated["refresh_token"])
	assert.NotEqual(t, pair["refresh_token"], rotated["refresh_token"])

	rec, envelope = doJSON(t, e, http.MethodPost, "/auth/refresh",
		`{"refresh_token":"refresh-1"}`)
	require.Equal(t, http.StatusForbidden, rec.Code)
	assert.False(t, envelope.Success)
	require.NotNil(t, envelope.Error)
	assert.Equal(t, "INVALID_CREDENTIALS", envelope.Error.Code)
}

func TestAuthHandler_SignOut_ReturnsTrue(t *testing.T) {
	userID := uuid.New()
	e, uc := newAuthTestServer(t, userID)

	uc.EXPECT().SignOut(mock.Anything, userID).Return(nil)

	rec, envelope := doJSON(t, e, http.MethodPost, "/auth/signout", `{}`)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, envelope.Success)
	assert.Equal(t, true, envelope.Data)
}
