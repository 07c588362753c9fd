package models

import (
	"time"

	"redsys/internal/shared/constants"
)

// UserModel is the persistence model for users. Identity management lives
// elsewhere; this service only reads role and active flag.
type UserModel struct {
	ID        uint   `gorm:"primarykey"`
	Username  string `gorm:"uniqueIndex;not null;size:150"`
	FullName  string `gorm:"not null;size:200"`
	Role      string `gorm:"not null;size:20;index"`
	Active    bool   `gorm:"not null"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

func (UserModel) TableName() string {
	return constants.TableUsers
}
