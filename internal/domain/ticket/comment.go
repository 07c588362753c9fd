package ticket

import (
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"redsys/internal/shared/biztime"
)

// MaxCommentLength is counted in characters, not bytes.
const MaxCommentLength = 5000

type Comment struct {
	id        uint
	ticketID  uint
	number    int
	authorID  uint
	content   string
	createdAt time.Time
	updatedAt time.Time
}

func NewComment(
	ticketID uint,
	number int,
	authorID uint,
	content string,
) (*Comment, error) {
	if ticketID == 0 {
		return nil, fmt.Errorf("ticket ID is required")
	}
	if number < 1 {
		return nil, fmt.Errorf("comment number must be at least 1, got %d", number)
	}
	if authorID == 0 {
		return nil, fmt.Errorf("author ID is required")
	}
	if err := ValidateCommentContent(content); err != nil {
		return nil, err
	}

	now := biztime.NowUTC()
	return &Comment{
		ticketID:  ticketID,
		number:    number,
		authorID:  authorID,
		content:   content,
		createdAt: now,
		updatedAt: now,
	}, nil
}

func ReconstructComment(
	id uint,
	ticketID uint,
	number int,
	authorID uint,
	content string,
	createdAt, updatedAt time.Time,
) (*Comment, error) {
	if id == 0 {
		return nil, fmt.Errorf("comment ID cannot be zero")
	}
	if ticketID == 0 {
		return nil, fmt.Errorf("ticket ID is required")
	}

	return &Comment{
		id:        id,
		ticketID:  ticketID,
		number:    number,
		authorID:  authorID,
		content:   content,
		createdAt: createdAt,
		updatedAt: updatedAt,
	}, nil
}

// ValidateCommentContent rejects blank and oversized comment text.
func ValidateCommentContent(content string) error {
	if IsBlankComment(content) {
		return fmt.Errorf("content cannot be empty")
	}
	if utf8.RuneCountInString(content) > MaxCommentLength {
		return fmt.Errorf("content exceeds maximum length of %d characters", MaxCommentLength)
	}
	return nil
}

// IsBlankComment reports whether content has nothing but whitespace.
func IsBlankComment(content string) bool {
	return strings.TrimSpace(content) == ""
}

func (c *Comment) ID() uint {
	return c.id
}

func (c *Comment) TicketID() uint {
	return c.ticketID
}

func (c *Comment) Number() int {
	return c.number
}

func (c *Comment) AuthorID() uint {
	return c.authorID
}

func (c *Comment) Content() string {
	return c.content
}

func (c *Comment) CreatedAt() time.Time {
	return c.createdAt
}

func (c *Comment) UpdatedAt() time.Time {
	return c.updatedAt
}

// Edit replaces the text. The number and author never change.
func (c *Comment) Edit(content string) error {
	if err := ValidateCommentContent(content); err != nil {
		return err
	}
	if content == c.content {
		return nil
	}
	c.content = content
	c.updatedAt = biztime.NowUTC()
	return nil
}

// IsWrittenBy reports whether userID authored the comment.
func (c *Comment) IsWrittenBy(userID uint) bool {
	return c.authorID == userID
}

func (c *Comment) SetID(id uint) error {
	if c.id != 0 {
		return fmt.Errorf("comment ID is already set")
	}
	if id == 0 {
		return fmt.Errorf("comment ID cannot be zero")
	}
	c.id = id
	return nil
}
