package models

import (
	"encoding/json"
	"fmt"
	"time"

	"gorm.io/datatypes"
)

// Metadata is free-form structured data attached to a media item: a map of
// strings to strings, numbers, booleans, null, lists or nested maps.
type Metadata map[string]any

// JSON encodes m for the jsonb column. A nil map is stored as NULL.
func (m Metadata) JSON() (datatypes.JSON, error) {
	if m == nil {
		return nil, nil
	}
	b, err := json.Marshal(m)
	if err != nil {
		return nil, fmt.Errorf("encode metadata: %w", err)
	}
	return datatypes.JSON(b), nil
}

type Media struct {
	ID          int64          `gorm:"primaryKey;autoIncrement" json:"id"`
	OwnerID     int64          `gorm:"column:owner_id;not null;index" json:"ownerId"`
	MediaTypeID int64          `gorm:"not null;index" json:"mediaTypeId"`
	Title       string         `gorm:"size:100;not null" json:"title"`
	Creator     *string        `gorm:"size:100" json:"creator"`
	Year        *int           `json:"year"`
	Metadata    datatypes.JSON `gorm:"type:jsonb" json:"metadata"`
	CreatedAt   time.Time      `gorm:"autoCreateTime" json:"createdAt"`
	UpdatedAt   time.Time      `gorm:"autoUpdateTime" json:"updatedAt"`

	// Associations
	MediaType *MediaType `gorm:"foreignKey:MediaTypeID" json:"mediaType,omitempty"`
	Logs      []UserLog  `gorm:"foreignKey:MediaID;constraint:OnDelete:CASCADE;" json:"logs,omitempty"`
}

func (Media) TableName() string {
	return "media"
}

func (m *Media) IsGlobal() bool {
	return IsGlobal(m.OwnerID)
}

// MediaIdentity is the set of fields that make two media items duplicates.
// Nil Creator/Year match only rows where the column is NULL. Nil Metadata is
// not compared at all.
type MediaIdentity struct {
	Title    string
	TypeName string
	Creator  *string
	Year     *int
	Metadata datatypes.JSON
}

// DefaultMediaTitle is the global media every new user gets a welcome log on.
const DefaultMediaTitle = "Default Media"
