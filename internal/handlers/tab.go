package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/songbook-dev/songbook/internal/types"
	"github.com/songbook-dev/songbook/internal/utils"
)

func (h *Handler) GetTab(ctx *gin.Context) {
	userID, err := utils.GetCurrentUserID(ctx)

	if err != nil {
		utils.RespondUnauthorized(ctx)
		return
	}

	tab, err := h.songs.GetTab(ctx.Request.Context(), userID, ctx.Param("songId"))

	if err != nil {
		utils.RespondServiceError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, types.NewTabResponse(*tab))
}
