package repository

import (
	"context"
	"strings"

	"github.com/songbook-dev/songbook/internal/models"
	"gorm.io/gorm"
)

// Store is the gorm-backed Repository.
type Store struct {
	db *gorm.DB
}

func NewStore(db *gorm.DB) *Store {
	return &Store{db: db}
}

func (s *Store) conn(ctx context.Context) *gorm.DB {
	return s.db.WithContext(ctx)
}

func (s *Store) Transaction(ctx context.Context, fn func(tx Repository) error) error {
	return s.conn(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&Store{db: tx})
	})
}

func (s *Store) Ping(ctx context.Context) error {
	sqlDB, err := s.db.DB()

	if err != nil {
		return err
	}

	return sqlDB.PingContext(ctx)
}

func (s *Store) FindUserByExternalID(ctx context.Context, externalID string) (*models.User, error) {
	var user models.User

	if err := s.conn(ctx).Where("external_login_id = ?", externalID).First(&user).Error; err != nil {
		return nil, translate(err)
	}

	return &user, nil
}

func (s *Store) CreateUser(ctx context.Context, user *models.User) error {
	return translate(s.conn(ctx).Create(user).Error)
}

func (s *Store) ListSongs(ctx context.Context, ownerID string, filter SongFilter) ([]models.Song, error) {
	query := s.conn(ctx).Where("owner_user_id = ?", ownerID)

	if search := strings.TrimSpace(filter.Query); search != "" {
		pattern := "%" + escapeLike(strings.ToLower(search)) + "%"
		query = query.Where("(LOWER(title) LIKE ? ESCAPE '\\' OR LOWER(artist) LIKE ? ESCAPE '\\')", pattern, pattern)
	}

	if filter.Limit > 0 {
		query = query.Limit(filter.Limit)
	}

	if filter.Offset > 0 {
		query = query.Offset(filter.Offset)
	}

	songs := []models.Song{}

	if err := query.Order("artist ASC").Order("title ASC").Find(&songs).Error; err != nil {
		return nil, translate(err)
	}

	return songs, nil
}

func (s *Store) FindSong(ctx context.Context, ownerID, songID string) (*models.Song, error) {
	var song models.Song

	if err := s.conn(ctx).Where("id = ? AND owner_user_id = ?", songID, ownerID).First(&song).Error; err != nil {
		return nil, translate(err)
	}

	return &song, nil
}

func (s *Store) CreateSong(ctx context.Context, song *models.Song) error {
	return translate(s.conn(ctx).Create(song).Error)
}

func (s *Store) UpdateSong(ctx context.Context, song *models.Song) error {
	return translate(s.conn(ctx).Model(song).Select("title", "artist").Updates(song).Error)
}

func (s *Store) DeleteSong(ctx context.Context, songID string) error {
	return translate(s.conn(ctx).Where("id = ?", songID).Delete(&models.Song{}).Error)
}

func (s *Store) FindTabBySong(ctx context.Context, songID string) (*models.Tab, error) {
	var tab models.Tab

	if err := s.conn(ctx).Where("song_id = ?", songID).First(&tab).Error; err != nil {
		return nil, translate(err)
	}

	return &tab, nil
}

func (s *Store) CreateTab(ctx context.Context, tab *models.Tab) error {
	return translate(s.conn(ctx).Create(tab).Error)
}

func (s *Store) UpdateTab(ctx context.Context, tab *models.Tab) error {
	return translate(s.conn(ctx).Model(tab).Select("text").Updates(tab).Error)
}

func (s *Store) DeleteTabBySong(ctx context.Context, songID string) error {
	return translate(s.conn(ctx).Where("song_id = ?", songID).Delete(&models.Tab{}).Error)
}

func (s *Store) ListVideosBySong(ctx context.Context, songID string) ([]models.Video, error) {
	videos := []models.Video{}

	err := s.conn(ctx).
		Where("song_id = ?", songID).
		Order("created_at ASC").
		Order("id ASC").
		Find(&videos).Error

	if err != nil {
		return nil, translate(err)
	}

	return videos, nil
}

func (s *Store) CreateVideos(ctx context.Context, videos []models.Video) error {
	if len(videos) == 0 {
		return nil
	}

	return translate(s.conn(ctx).Create(&videos).Error)
}

func (s *Store) UpdateVideo(ctx context.Context, video *models.Video) error {
	return translate(s.conn(ctx).Model(video).Select("video_type", "url").Updates(video).Error)
}

func (s *Store) DeleteVideos(ctx context.Context, songID string, ids []string) error {
	if len(ids) == 0 {
		return nil
	}

	return translate(s.conn(ctx).Where("song_id = ? AND id IN ?", songID, ids).Delete(&models.Video{}).Error)
}

func (s *Store) DeleteVideosBySong(ctx context.Context, songID string) error {
	return translate(s.conn(ctx).Where("song_id = ?", songID).Delete(&models.Video{}).Error)
}

func escapeLike(s string) string {
	return strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`).Replace(s)
}
