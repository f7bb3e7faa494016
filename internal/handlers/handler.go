package handlers

import (
	"github.com/songbook-dev/songbook/internal/repository"
	"github.com/songbook-dev/songbook/internal/services"
)

// Handler holds the dependencies shared by every HTTP handler.
type Handler struct {
	songs *services.SongService
	auth  *services.AuthService
	repo  repository.Repository
	hub   *Hub
}

func New(songs *services.SongService, auth *services.AuthService, repo repository.Repository, hub *Hub) *Handler {
	return &Handler{
		songs: songs,
		auth:  auth,
		repo:  repo,
		hub:   hub,
	}
}
