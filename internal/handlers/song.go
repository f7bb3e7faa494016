package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
	"github.com/songbook-dev/songbook/internal/repository"
	"github.com/songbook-dev/songbook/internal/services"
	"github.com/songbook-dev/songbook/internal/types"
	"github.com/songbook-dev/songbook/internal/utils"
)

// SongRequest is the body of both create and update. Videos stays raw so the
// service can tell a missing list from a value that is not a list.
type SongRequest struct {
	Title   string          `json:"title"`
	Artist  string          `json:"artist"`
	TabText string          `json:"tab_text"`
	Videos  json.RawMessage `json:"videos"`
}

func (r SongRequest) input() services.SongInput {
	return services.SongInput{
		Title:   r.Title,
		Artist:  r.Artist,
		TabText: r.TabText,
		Videos:  r.Videos,
	}
}

func (h *Handler) ListSongs(ctx *gin.Context) {
	userID, err := utils.GetCurrentUserID(ctx)

	if err != nil {
		utils.RespondUnauthorized(ctx)
		return
	}

	filter := repository.SongFilter{
		Query:  ctx.Query("query"),
		Limit:  queryInt(ctx, "limit", services.DefaultSongLimit),
		Offset: queryInt(ctx, "offset", 0),
	}

	songs, err := h.songs.List(ctx.Request.Context(), userID, filter)

	if err != nil {
		utils.RespondServiceError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, types.NewSongResponses(songs))
}

func (h *Handler) GetSong(ctx *gin.Context) {
	userID, err := utils.GetCurrentUserID(ctx)

	if err != nil {
		utils.RespondUnauthorized(ctx)
		return
	}

	song, err := h.songs.Get(ctx.Request.Context(), userID, ctx.Param("id"))

	if err != nil {
		utils.RespondServiceError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, types.NewSongResponse(*song))
}

func (h *Handler) CreateSong(ctx *gin.Context) {
	userID, err := utils.GetCurrentUserID(ctx)

	if err != nil {
		utils.RespondUnauthorized(ctx)
		return
	}

	var body SongRequest

	if err := ctx.ShouldBindJSON(&body); err != nil {
		log.Debug().Err(err).Msg("Failed to bind song request")
		utils.RespondError(ctx, http.StatusBadRequest, services.MsgFieldsRequired)
		return
	}

	result, err := h.songs.Create(ctx.Request.Context(), userID, body.input())

	if err != nil {
		utils.RespondServiceError(ctx, err)
		return
	}

	h.hub.BroadcastRefresh(userID, "created", result.Song.ID)

	ctx.JSON(http.StatusCreated, types.NewSongAggregateResponse(result.Song, result.Tab, result.Videos))
}

func (h *Handler) UpdateSong(ctx *gin.Context) {
	userID, err := utils.GetCurrentUserID(ctx)

	if err != nil {
		utils.RespondUnauthorized(ctx)
		return
	}

	var body SongRequest

	if err := ctx.ShouldBindJSON(&body); err != nil {
		log.Debug().Err(err).Msg("Failed to bind song request")
		utils.RespondError(ctx, http.StatusBadRequest, services.MsgFieldsRequired)
		return
	}

	result, err := h.songs.Update(ctx.Request.Context(), userID, ctx.Param("id"), body.input())

	if err != nil {
		utils.RespondServiceError(ctx, err)
		return
	}

	h.hub.BroadcastRefresh(userID, "updated", result.Song.ID)

	ctx.JSON(http.StatusOK, types.NewSongAggregateResponse(result.Song, result.Tab, result.Videos))
}

func (h *Handler) DeleteSong(ctx *gin.Context) {
	userID, err := utils.GetCurrentUserID(ctx)

	if err != nil {
		utils.RespondUnauthorized(ctx)
		return
	}

	songID := ctx.Param("id")

	if err := h.songs.Delete(ctx.Request.Context(), userID, songID); err != nil {
		utils.RespondServiceError(ctx, err)
		return
	}

	h.hub.BroadcastRefresh(userID, "deleted", songID)

	ctx.Status(http.StatusNoContent)
}

// queryInt falls back to def when the parameter is missing or not a number.
func queryInt(ctx *gin.Context, key string, def int) int {
	raw, ok := ctx.GetQuery(key)

	if !ok {
		return def
	}

	value, err := strconv.Atoi(raw)

	if err != nil {
		return def
	}

	return value
}
