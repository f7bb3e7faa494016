package utils

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/songbook-dev/songbook/internal/auth"
	"github.com/songbook-dev/songbook/internal/middleware"
	"github.com/songbook-dev/songbook/internal/services"
	"github.com/songbook-dev/songbook/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRespondServiceError(t *testing.T) {
	gin.SetMode(gin.TestMode)

	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantMsg    string
		wantID     string
	}{
		{"validation", &services.ValidationError{Message: services.MsgTooManyVideos}, http.StatusBadRequest, "Maximum of 5 videos allowed", ""},
		{"song not found", fmt.Errorf("wrapped: %w", services.ErrSongNotFound), http.StatusNotFound, "Song not found", "not_found"},
		{"tab not found", services.ErrTabNotFound, http.StatusNotFound, "Tab not found", "not_found"},
		{"identity rejected", auth.ErrIdentityRejected, http.StatusUnauthorized, "Unauthorized", ""},
		{"tab missing", services.ErrTabMissing, http.StatusInternalServerError, "Internal Server Error", ""},
		{"storage", errors.New("connection refused"), http.StatusInternalServerError, "Internal Server Error", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			ctx, _ := gin.CreateTestContext(w)
			ctx.Request = httptest.NewRequest(http.MethodGet, "/api/songs", nil)

			RespondServiceError(ctx, tt.err)

			require.Equal(t, tt.wantStatus, w.Code)

			var body map[string]string
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
			assert.Equal(t, "error", body["status"])
			assert.Equal(t, tt.wantMsg, body["message"])
			assert.Equal(t, tt.wantID, body["id"])
			assert.NotEmpty(t, body["timestamp"])
		})
	}
}

func TestGetCurrentUserID(t *testing.T) {
	gin.SetMode(gin.TestMode)
	ctx, _ := gin.CreateTestContext(httptest.NewRecorder())

	_, err := GetCurrentUserID(ctx)
	assert.Error(t, err)

	ctx.Set(types.ContextUserKey, "not-a-user")
	_, err = GetCurrentUserID(ctx)
	assert.Error(t, err)

	ctx.Set(types.ContextUserKey, middleware.AuthenticatedUser{ID: "u1"})
	id, err := GetCurrentUserID(ctx)
	require.NoError(t, err)
	assert.Equal(t, "u1", id)
}
