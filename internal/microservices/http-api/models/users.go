package models

import "time"

// GlobalOwner is the owner id of rows shared with every user. It refers to
// the "system" user created by the first migration.
const GlobalOwner int64 = 0

type User struct {
	ID          int64     `gorm:"primaryKey;autoIncrement" json:"id"`
	Username    string    `gorm:"size:30;not null;uniqueIndex:uq_users_username" json:"username"`
	DisplayName string    `gorm:"size:50;not null" json:"displayName"`
	Password    string    `gorm:"column:password_hash;not null" json:"-"` // never serialized
	CreatedAt   time.Time `gorm:"autoCreateTime" json:"createdAt"`
}

func (User) TableName() string {
	return "users"
}

// IsGlobal reports whether ownerID is the shared owner.
func IsGlobal(ownerID int64) bool {
	return ownerID == GlobalOwner
}
