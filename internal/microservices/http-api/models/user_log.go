package models

import "time"

// UserLog is one user's record of a media item. A user logs a given media
// at most once.
type UserLog struct {
	ID        int64     `gorm:"primaryKey;autoIncrement" json:"id"`
	UserID    int64     `gorm:"not null;uniqueIndex:uq_user_logs_user_media,priority:1" json:"userId"`
	MediaID   int64     `gorm:"not null;uniqueIndex:uq_user_logs_user_media,priority:2" json:"mediaId"`
	Status    *string   `gorm:"size:20" json:"status"`
	Rating    *float64  `gorm:"check:rating >= 0 AND rating <= 100" json:"rating"`
	Notes     *string   `gorm:"size:5000" json:"notes"`
	LoggedAt  time.Time `gorm:"autoCreateTime" json:"loggedAt"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updatedAt"`

	// Associations
	Media *Media `gorm:"foreignKey:MediaID" json:"media,omitempty"`
}

func (UserLog) TableName() string {
	return "user_logs"
}
