package models

type Tab struct {
	BaseModel

	Text   string `gorm:"type:text;not null"`
	SongID string `gorm:"type:varchar(36);not null;uniqueIndex"` // one tab per song
}
