package models

type Song struct {
	BaseModel

	Title       string `gorm:"not null"`
	Artist      string `gorm:"not null"`
	OwnerUserID string `gorm:"type:varchar(36);not null;index"`

	// Relationships
	Tab    *Tab    `gorm:"foreignKey:SongID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE"`
	Videos []Video `gorm:"foreignKey:SongID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE"`
}
