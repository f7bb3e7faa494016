package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/songbook-dev/songbook/internal/models"
	"github.com/songbook-dev/songbook/internal/repository"
)

const (
	DefaultSongLimit = 10
	MaxSongLimit     = 100
)

// SongInput is the create/update payload. Videos is kept raw so that a
// non-array value can be reported as such.
type SongInput struct {
	Title   string
	Artist  string
	TabText string
	Videos  json.RawMessage
}

// SongAggregate is a song together with its tab and videos.
type SongAggregate struct {
	Song   models.Song
	Tab    models.Tab
	Videos []models.Video
}

type SongService struct {
	repo repository.Repository
}

func NewSongService(repo repository.Repository) *SongService {
	return &SongService{repo: repo}
}

func validateSongInput(in SongInput) (SongInput, []VideoInput, error) {
	in.Title = strings.TrimSpace(in.Title)
	in.Artist = strings.TrimSpace(in.Artist)

	if in.Title == "" || in.Artist == "" || strings.TrimSpace(in.TabText) == "" {
		return in, nil, newValidationError(MsgFieldsRequired)
	}

	videos, err := decodeVideos(in.Videos)

	if err != nil {
		return in, nil, err
	}

	return in, videos, nil
}

// Create stores a song, its tab and its videos in one transaction.
func (s *SongService) Create(ctx context.Context, userID string, in SongInput) (*SongAggregate, error) {
	in, videos, err := validateSongInput(in)

	if err != nil {
		return nil, err
	}

	var result SongAggregate

	err = s.repo.Transaction(ctx, func(tx repository.Repository) error {
		song := models.Song{
			Title:       in.Title,
			Artist:      in.Artist,
			OwnerUserID: userID,
		}

		if err := tx.CreateSong(ctx, &song); err != nil {
			return fmt.Errorf("create song: %w", err)
		}

		tab := models.Tab{
			Text:   in.TabText,
			SongID: song.ID,
		}

		if err := tx.CreateTab(ctx, &tab); err != nil {
			return fmt.Errorf("create tab: %w", err)
		}

		created := make([]models.Video, 0, len(videos))
		for _, video := range videos {
			created = append(created, models.Video{
				VideoType: video.VideoType,
				URL:       video.URL,
				SongID:    song.ID,
			})
		}

		if err := tx.CreateVideos(ctx, created); err != nil {
			return fmt.Errorf("create videos: %w", err)
		}

		result = SongAggregate{Song: song, Tab: tab, Videos: created}
		return nil
	})

	if err != nil {
		return nil, err
	}

	return &result, nil
}

// Update rewrites a song's fields and tab and reconciles its videos against
// the submitted list. Everything is checked before the first write.
func (s *SongService) Update(ctx context.Context, userID, songID string, in SongInput) (*SongAggregate, error) {
	in, videos, err := validateSongInput(in)

	if err != nil {
		return nil, err
	}

	var result SongAggregate

	err = s.repo.Transaction(ctx, func(tx repository.Repository) error {
		song, err := findOwnedSong(ctx, tx, userID, songID)

		if err != nil {
			return err
		}

		tab, err := tx.FindTabBySong(ctx, song.ID)

		if errors.Is(err, repository.ErrNotFound) {
			return fmt.Errorf("song %s: %w", song.ID, ErrTabMissing)
		}

		if err != nil {
			return fmt.Errorf("find tab: %w", err)
		}

		existing, err := tx.ListVideosBySong(ctx, song.ID)

		if err != nil {
			return fmt.Errorf("list videos: %w", err)
		}

		plan := planVideos(song.ID, existing, videos)

		if plan.finalCount() > models.MaxVideosPerSong {
			return newValidationError(MsgTooManyVideos)
		}

		song.Title = in.Title
		song.Artist = in.Artist

		if err := tx.UpdateSong(ctx, song); err != nil {
			return fmt.Errorf("update song: %w", err)
		}

		tab.Text = in.TabText

		if err := tx.UpdateTab(ctx, tab); err != nil {
			return fmt.Errorf("update tab: %w", err)
		}

		if err := tx.DeleteVideos(ctx, song.ID, plan.delete); err != nil {
			return fmt.Errorf("delete videos: %w", err)
		}

		for i := range plan.update {
			if err := tx.UpdateVideo(ctx, &plan.update[i]); err != nil {
				return fmt.Errorf("update video %s: %w", plan.update[i].ID, err)
			}
		}

		if err := tx.CreateVideos(ctx, plan.create); err != nil {
			return fmt.Errorf("create videos: %w", err)
		}

		final, err := tx.ListVideosBySong(ctx, song.ID)

		if err != nil {
			return fmt.Errorf("list videos: %w", err)
		}

		result = SongAggregate{Song: *song, Tab: *tab, Videos: final}
		return nil
	})

	if err != nil {
		return nil, err
	}

	return &result, nil
}

// Delete removes a song with its videos and tab.
func (s *SongService) Delete(ctx context.Context, userID, songID string) error {
	return s.repo.Transaction(ctx, func(tx repository.Repository) error {
		song, err := findOwnedSong(ctx, tx, userID, songID)

		if err != nil {
			return err
		}

		if err := tx.DeleteVideosBySong(ctx, song.ID); err != nil {
			return fmt.Errorf("delete videos: %w", err)
		}

		if err := tx.DeleteTabBySong(ctx, song.ID); err != nil {
			return fmt.Errorf("delete tab: %w", err)
		}

		if err := tx.DeleteSong(ctx, song.ID); err != nil {
			return fmt.Errorf("delete song: %w", err)
		}

		return nil
	})
}

func (s *SongService) List(ctx context.Context, userID string, filter repository.SongFilter) ([]models.Song, error) {
	if filter.Limit <= 0 {
		filter.Limit = DefaultSongLimit
	}

	if filter.Limit > MaxSongLimit {
		filter.Limit = MaxSongLimit
	}

	if filter.Offset < 0 {
		filter.Offset = 0
	}

	songs, err := s.repo.ListSongs(ctx, userID, filter)

	if err != nil {
		return nil, fmt.Errorf("list songs: %w", err)
	}

	return songs, nil
}

func (s *SongService) Get(ctx context.Context, userID, songID string) (*models.Song, error) {
	return findOwnedSong(ctx, s.repo, userID, songID)
}

func (s *SongService) GetTab(ctx context.Context, userID, songID string) (*models.Tab, error) {
	song, err := findOwnedSong(ctx, s.repo, userID, songID)

	if err != nil {
		return nil, err
	}

	tab, err := s.repo.FindTabBySong(ctx, song.ID)

	if errors.Is(err, repository.ErrNotFound) {
		return nil, ErrTabNotFound
	}

	if err != nil {
		return nil, fmt.Errorf("find tab: %w", err)
	}

	return tab, nil
}

func (s *SongService) GetVideos(ctx context.Context, userID, songID string) ([]models.Video, error) {
	song, err := findOwnedSong(ctx, s.repo, userID, songID)

	if err != nil {
		return nil, err
	}

	videos, err := s.repo.ListVideosBySong(ctx, song.ID)

	if err != nil {
		return nil, fmt.Errorf("list videos: %w", err)
	}

	return videos, nil
}

func findOwnedSong(ctx context.Context, repo repository.Repository, userID, songID string) (*models.Song, error) {
	song, err := repo.FindSong(ctx, userID, songID)

	if errors.Is(err, repository.ErrNotFound) {
		return nil, ErrSongNotFound
	}

	if err != nil {
		return nil, fmt.Errorf("find song: %w", err)
	}

	return song, nil
}
