package models

type User struct {
	BaseModel

	ExternalLoginID string `gorm:"uniqueIndex;not null"` // Google "sub" claim

	// Relationships
	Songs []Song `gorm:"foreignKey:OwnerUserID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE"`
}
