package utils

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
	"github.com/songbook-dev/songbook/internal/auth"
	"github.com/songbook-dev/songbook/internal/services"
	"github.com/songbook-dev/songbook/internal/types"
)

func RespondError(ctx *gin.Context, status int, message string) {
	ctx.JSON(status, types.NewErrorResponse(message))
}

func RespondNotFound(ctx *gin.Context, message string) {
	ctx.JSON(http.StatusNotFound, types.NewNotFoundResponse(message))
}

func RespondUnauthorized(ctx *gin.Context) {
	RespondError(ctx, http.StatusUnauthorized, types.MessageUnauthorized)
}

// RespondServiceError maps service errors onto HTTP responses. Unexpected
// errors are logged with their cause and reported as a bare 500.
func RespondServiceError(ctx *gin.Context, err error) {
	var validationErr *services.ValidationError

	switch {
	case errors.As(err, &validationErr):
		RespondError(ctx, http.StatusBadRequest, validationErr.Message)
	case errors.Is(err, services.ErrSongNotFound):
		RespondNotFound(ctx, services.ErrSongNotFound.Error())
	case errors.Is(err, services.ErrTabNotFound):
		RespondNotFound(ctx, services.ErrTabNotFound.Error())
	case errors.Is(err, auth.ErrIdentityRejected):
		log.Warn().Err(err).Msg("Identity token rejected")
		RespondUnauthorized(ctx)
	default:
		log.Error().Err(err).
			Str("method", ctx.Request.Method).
			Str("path", ctx.Request.URL.Path).
			Msg("Request failed")
		_ = ctx.Error(err)
		RespondError(ctx, http.StatusInternalServerError, types.MessageInternalError)
	}
}
