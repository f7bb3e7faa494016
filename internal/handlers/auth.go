package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
	"github.com/songbook-dev/songbook/internal/services"
	"github.com/songbook-dev/songbook/internal/types"
	"github.com/songbook-dev/songbook/internal/utils"
)

type GoogleLoginRequest struct {
	Token string `json:"token"`
}

func (h *Handler) LoginWithGoogle(ctx *gin.Context) {
	var body GoogleLoginRequest

	if err := ctx.ShouldBindJSON(&body); err != nil {
		log.Debug().Err(err).Msg("Failed to bind login request")
		utils.RespondError(ctx, http.StatusBadRequest, services.MsgTokenRequired)
		return
	}

	result, err := h.auth.Login(ctx.Request.Context(), body.Token)

	if err != nil {
		utils.RespondServiceError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, types.LoginResponse{
		Name:         result.Name,
		Email:        result.Email,
		UserID:       result.UserID,
		SessionToken: result.SessionToken,
	})
}
