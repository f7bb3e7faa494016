package models

// MaxVideosPerSong caps the videos attached to a single song.
const MaxVideosPerSong = 5

type Video struct {
	BaseModel

	VideoType string `gorm:"not null"` // free-form label, e.g. "youtube"
	URL       string `gorm:"not null"`
	SongID    string `gorm:"type:varchar(36);not null;index"`
}
