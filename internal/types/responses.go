package types

import (
	"time"

	"github.com/songbook-dev/songbook/internal/models"
)

type ErrorResponse struct {
	Status    string `json:"status"`
	ID        string `json:"id,omitempty"`
	Message   string `json:"message"`
	Timestamp string `json:"timestamp"`
}

func NewErrorResponse(message string) ErrorResponse {
	return ErrorResponse{
		Status:    "error",
		Message:   message,
		Timestamp: time.Now().UTC().Format(time.RFC3339),
	}
}

func NewNotFoundResponse(message string) ErrorResponse {
	resp := NewErrorResponse(message)
	resp.ID = NotFoundID
	return resp
}

type LoginResponse struct {
	Name         string `json:"name"`
	Email        string `json:"email"`
	UserID       string `json:"user_id"`
	SessionToken string `json:"session_token"`
}

type SongResponse struct {
	ID     string `json:"id"`
	Title  string `json:"title"`
	Artist string `json:"artist"`
}

type TabResponse struct {
	ID   string `json:"id"`
	Text string `json:"text"`
}

type VideoResponse struct {
	ID        string `json:"id"`
	VideoType string `json:"video_type"`
	URL       string `json:"url"`
}

type SongAggregateResponse struct {
	Song   SongResponse    `json:"song"`
	Tab    TabResponse     `json:"tab"`
	Videos []VideoResponse `json:"videos"`
}

func NewSongResponse(song models.Song) SongResponse {
	return SongResponse{
		ID:     song.ID,
		Title:  song.Title,
		Artist: song.Artist,
	}
}

func NewSongResponses(songs []models.Song) []SongResponse {
	response := make([]SongResponse, 0, len(songs))

	for _, song := range songs {
		response = append(response, NewSongResponse(song))
	}

	return response
}

func NewTabResponse(tab models.Tab) TabResponse {
	return TabResponse{
		ID:   tab.ID,
		Text: tab.Text,
	}
}

func NewVideoResponses(videos []models.Video) []VideoResponse {
	response := make([]VideoResponse, 0, len(videos))

	for _, video := range videos {
		response = append(response, VideoResponse{
			ID:        video.ID,
			VideoType: video.VideoType,
			URL:       video.URL,
		})
	}

	return response
}

func NewSongAggregateResponse(song models.Song, tab models.Tab, videos []models.Video) SongAggregateResponse {
	return SongAggregateResponse{
		Song:   NewSongResponse(song),
		Tab:    NewTabResponse(tab),
		Videos: NewVideoResponses(videos),
	}
}
