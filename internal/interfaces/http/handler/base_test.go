package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stemkits/backend/internal/domain/shared"
	"github.com/stemkits/backend/internal/interfaces/http/dto"
	"github.com/stemkits/backend/internal/interfaces/http/middleware"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func newTestContext(t *testing.T) (*gin.Context, *httptest.ResponseRecorder) {
	t.Helper()
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/", nil)
	return c, w
}

func decodeResponse(t *testing.T, w *httptest.ResponseRecorder) dto.Response {
	t.Helper()
	var resp dto.Response
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	return resp
}

func TestGetUserID(t *testing.T) {
	t.Run("returns parsed user ID from claims", func(t *testing.T) {
		c, _ := newTestContext(t)
		want := uuid.New()
		c.Set(middleware.JWTUserIDKey, want.String())

		got, err := getUserID(c)
		require.NoError(t, err)
		assert.Equal(t, want, got)
	})

	t.Run("errors without claims", func(t *testing.T) {
		c, _ := newTestContext(t)

		_, err := getUserID(c)
		assert.Error(t, err)
	})
}

func TestToFilter(t *testing.T) {
	t.Run("applies defaults for zero values", func(t *testing.T) {
		filter := toFilter(dto.ListRequest{})

		assert.Equal(t, 1, filter.Page)
		assert.Equal(t, 20, filter.PageSize)
		assert.Equal(t, "created_at", filter.OrderBy)
		assert.Equal(t, "desc", filter.OrderDir)
	})

	t.Run("keeps explicit values", func(t *testing.T) {
		filter := toFilter(dto.ListRequest{
			Page:     3,
			PageSize: 50,
			OrderBy:  "email",
			OrderDir: "asc",
			Search:   "ada",
		})

		assert.Equal(t, 3, filter.Page)
		assert.Equal(t, 50, filter.PageSize)
		assert.Equal(t, "email", filter.OrderBy)
		assert.Equal(t, "asc", filter.OrderDir)
		assert.Equal(t, "ada", filter.Search)
	})
}

func TestBaseHandlerSuccess(t *testing.T) {
	h := &BaseHandler{}
	c, w := newTestContext(t)

	h.Success(c, gin.H{"hello": "world"})

	assert.Equal(t, http.StatusOK, w.Code)
	resp := decodeResponse(t, w)
	assert.True(t, resp.Success)
	assert.Nil(t, resp.Error)
}

func TestBaseHandlerSuccessWithMeta(t *testing.T) {
	h := &BaseHandler{}
	c, w := newTestContext(t)

	h.SuccessWithMeta(c, []string{"a", "b"}, 41, 2, 20)

	assert.Equal(t, http.StatusOK, w.Code)
	resp := decodeResponse(t, w)
	require.NotNil(t, resp.Meta)
	assert.Equal(t, int64(41), resp.Meta.Total)
	assert.Equal(t, 2, resp.Meta.Page)
	assert.Equal(t, 3, resp.Meta.TotalPages)
}

func TestBaseHandlerHandleError(t *testing.T) {
	h := &BaseHandler{}

	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantCode   string
	}{
		{
			name:       "not found",
			err:        shared.ErrNotFound,
			wantStatus: http.StatusNotFound,
			wantCode:   "NOT_FOUND",
		},
		{
			name:       "already exists",
			err:        shared.ErrAlreadyExists,
			wantStatus: http.StatusConflict,
			wantCode:   "ALREADY_EXISTS",
		},
		{
			name:       "concurrency conflict",
			err:        shared.ErrConcurrencyConflict,
			wantStatus: http.StatusConflict,
			wantCode:   "CONCURRENCY_CONFLICT",
		},
		{
			name:       "business rule violation",
			err:        shared.NewDomainError("INSUFFICIENT_STOCK", "not enough stock"),
			wantStatus: http.StatusUnprocessableEntity,
			wantCode:   "INSUFFICIENT_STOCK",
		},
		{
			name:       "validation style code",
			err:        shared.NewDomainError("INVALID_QUANTITY", "quantity must be positive"),
			wantStatus: http.StatusBadRequest,
			wantCode:   "INVALID_QUANTITY",
		},
		{
			name:       "unknown error is internal",
			err:        errors.New("driver: bad connection"),
			wantStatus: http.StatusInternalServerError,
			wantCode:   dto.ErrCodeInternal,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, w := newTestContext(t)

			h.HandleError(c, tt.err)

			assert.Equal(t, tt.wantStatus, w.Code)
			resp := decodeResponse(t, w)
			assert.False(t, resp.Success)
			require.NotNil(t, resp.Error)
			assert.Equal(t, tt.wantCode, resp.Error.Code)
		})
	}
}

func TestBaseHandlerHandleErrorHidesInternalDetail(t *testing.T) {
	h := &BaseHandler{}
	c, w := newTestContext(t)

	h.HandleError(c, errors.New("pq: connection refused at 10.0.0.5"))

	resp := decodeResponse(t, w)
	require.NotNil(t, resp.Error)
	assert.NotContains(t, resp.Error.Message, "10.0.0.5")
}
