// Package repository is the persistence gateway for users, songs, tabs and
// videos. Every song-scoped read filters by owner so that another user's rows
// are indistinguishable from missing ones.
package repository

import (
	"context"
	"errors"

	"github.com/songbook-dev/songbook/internal/models"
	"gorm.io/gorm"
)

var (
	ErrNotFound  = errors.New("record not found")
	ErrDuplicate = errors.New("duplicate record")
)

// SongFilter narrows ListSongs. Query matches title or artist, case-insensitively.
type SongFilter struct {
	Query  string
	Limit  int
	Offset int
}

type Repository interface {
	FindUserByExternalID(ctx context.Context, externalID string) (*models.User, error)
	CreateUser(ctx context.Context, user *models.User) error

	ListSongs(ctx context.Context, ownerID string, filter SongFilter) ([]models.Song, error)
	FindSong(ctx context.Context, ownerID, songID string) (*models.Song, error)
	CreateSong(ctx context.Context, song *models.Song) error
	UpdateSong(ctx context.Context, song *models.Song) error
	DeleteSong(ctx context.Context, songID string) error

	FindTabBySong(ctx context.Context, songID string) (*models.Tab, error)
	CreateTab(ctx context.Context, tab *models.Tab) error
	UpdateTab(ctx context.Context, tab *models.Tab) error
	DeleteTabBySong(ctx context.Context, songID string) error

	ListVideosBySong(ctx context.Context, songID string) ([]models.Video, error)
	CreateVideos(ctx context.Context, videos []models.Video) error
	UpdateVideo(ctx context.Context, video *models.Video) error
	DeleteVideos(ctx context.Context, songID string, ids []string) error
	DeleteVideosBySong(ctx context.Context, songID string) error

	// Transaction runs fn against a Repository bound to a single database
	// transaction. Returning an error from fn rolls everything back.
	Transaction(ctx context.Context, fn func(tx Repository) error) error

	Ping(ctx context.Context) error
}

func translate(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, gorm.ErrRecordNotFound):
		return ErrNotFound
	case errors.Is(err, gorm.ErrDuplicatedKey):
		return ErrDuplicate
	default:
		return err
	}
}
