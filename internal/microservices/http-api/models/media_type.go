package models

import "time"

// MediaType is a category such as "book" or "music". Names are stored
// normalized and are unique per owner.
type MediaType struct {
	ID        int64     `gorm:"primaryKey;autoIncrement" json:"id"`
	OwnerID   int64     `gorm:"column:owner_id;not null;uniqueIndex:uq_media_types_owner_name,priority:1" json:"ownerId"`
	Name      string    `gorm:"size:100;not null;uniqueIndex:uq_media_types_owner_name,priority:2" json:"name"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"createdAt"`

	// Associations
	Media []Media `gorm:"foreignKey:MediaTypeID;constraint:OnDelete:CASCADE;" json:"media,omitempty"`
}

func (MediaType) TableName() string {
	return "media_types"
}

func (t *MediaType) IsGlobal() bool {
	return IsGlobal(t.OwnerID)
}
