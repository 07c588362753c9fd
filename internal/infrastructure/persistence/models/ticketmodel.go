package models

import (
	"gorm.io/gorm"

	"redsys/internal/shared/constants"
)

type TicketModel struct {
	ID          uint   `gorm:"primaryKey"`
	Title       string `gorm:"size:200;not null"`
	Description string `gorm:"type:text;not null"`
	State       string `gorm:"size:20;not null;index"`
	AssigneeID  *uint  `gorm:"index"`
	AuthorID    uint   `gorm:"not null;index"`
	ArticleID   uint   `gorm:"not null;index"`
	Version     int    `gorm:"not null;default:1"`
	CreatedAt   int64  `gorm:"autoCreateTime:milli;not null"`
	UpdatedAt   int64  `gorm:"autoUpdateTime:milli;not null"`

	// Note: No foreign key constraints or associations.
	// All relationships are managed by application business logic.
}

func (TicketModel) TableName() string {
	return constants.TableTickets
}

type CommentModel struct {
	ID        uint   `gorm:"primaryKey"`
	TicketID  uint   `gorm:"not null;uniqueIndex:idx_ticket_comment_number,priority:1"`
	Number    int    `gorm:"not null;uniqueIndex:idx_ticket_comment_number,priority:2"`
	AuthorID  uint   `gorm:"not null;index"`
	Content   string `gorm:"type:text;not null"`
	CreatedAt int64  `gorm:"autoCreateTime:milli;not null;index"`
	UpdatedAt int64  `gorm:"autoUpdateTime:milli;not null"`
	// DeletedAt hides a comment without freeing its number.
	DeletedAt gorm.DeletedAt `gorm:"index"`
}

func (CommentModel) TableName() string {
	return constants.TableTicketComments
}
