package repository

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"redsys/internal/domain/ticket"
	"redsys/internal/infrastructure/persistence/mappers"
	"redsys/internal/infrastructure/persistence/models"
	"redsys/internal/shared/db"
	apperrors "redsys/internal/shared/errors"
	"redsys/internal/shared/mapper"
	"redsys/internal/shared/utils"
)

type CommentRepository struct {
	db     *gorm.DB
	mapper mappers.TicketMapper
}

func NewCommentRepository(db *gorm.DB) *CommentRepository {
	return &CommentRepository{
		db:     db,
		mapper: mappers.NewTicketMapper(),
	}
}

var _ ticket.CommentRepository = (*CommentRepository)(nil)

// NextNumber locks the parent ticket row and returns max(number)+1 for its
// comments. The lock is held until the enclosing transaction ends, so it
// must be called inside one.
func (r *CommentRepository) NextNumber(ctx context.Context, ticketID uint) (int, error) {
	tx := db.GetTxFromContext(ctx, r.db)

	var parent models.TicketModel
	err := tx.
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Select("id").
		First(&parent, ticketID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return 0, ticket.ErrTicketNotFound
		}
		return 0, fmt.Errorf("failed to lock ticket: %w", err)
	}

	var highest int
	err = tx.
		Unscoped().
		Model(&models.CommentModel{}).
		Where("ticket_id = ?", ticketID).
		Select("COALESCE(MAX(number), 0)").
		Scan(&highest).Error
	if err != nil {
		return 0, fmt.Errorf("failed to read comment numbers: %w", err)
	}

	return highest + 1, nil
}

func (r *CommentRepository) Create(ctx context.Context, c *ticket.Comment) error {
	model := r.mapper.CommentToModel(c)
	tx := db.GetTxFromContext(ctx, r.db)

	if err := tx.Create(model).Error; err != nil {
		if apperrors.IsDuplicateError(err) {
			return ticket.ErrCommentNumberTaken
		}
		return fmt.Errorf("failed to create comment: %w", err)
	}

	return c.SetID(model.ID)
}

func (r *CommentRepository) GetByNumber(ctx context.Context, ticketID uint, number int) (*ticket.Comment, error) {
	var model models.CommentModel
	tx := db.GetTxFromContext(ctx, r.db)

	err := tx.
		Where("ticket_id = ? AND number = ?", ticketID, number).
		First(&model).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ticket.ErrCommentNotFound
		}
		return nil, fmt.Errorf("failed to get comment: %w", err)
	}

	return r.mapper.CommentToDomain(&model)
}

// Update writes the comment text only.
func (r *CommentRepository) Update(ctx context.Context, c *ticket.Comment) error {
	tx := db.GetTxFromContext(ctx, r.db)

	result := tx.
		Model(&models.CommentModel{}).
		Where("id = ?", c.ID()).
		Updates(map[string]any{
			"content":    c.Content(),
			"updated_at": c.UpdatedAt().UnixMilli(),
		})
	if result.Error != nil {
		return fmt.Errorf("failed to update comment: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return ticket.ErrCommentNotFound
	}
	return nil
}

func (r *CommentRepository) Delete(ctx context.Context, c *ticket.Comment) error {
	tx := db.GetTxFromContext(ctx, r.db)

	result := tx.Delete(&models.CommentModel{}, c.ID())
	if result.Error != nil {
		return fmt.Errorf("failed to delete comment: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return ticket.ErrCommentNotFound
	}
	return nil
}

// ListByTicket returns one page of comments, newest number first.
func (r *CommentRepository) ListByTicket(
	ctx context.Context,
	ticketID uint,
	filter ticket.CommentFilter,
) ([]*ticket.Comment, int64, error) {
	tx := db.GetTxFromContext(ctx, r.db)
	query := tx.Model(&models.CommentModel{}).Where("ticket_id = ?", ticketID)

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count comments: %w", err)
	}

	page := utils.NormalizePagination(filter.Page, filter.PageSize)
	var rows []*models.CommentModel
	err := query.
		Order("number DESC").
		Limit(page.PageSize).
		Offset(page.Offset()).
		Find(&rows).Error
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list comments: %w", err)
	}

	comments, err := mapper.MapSliceErr(rows, r.mapper.CommentToDomain)
	if err != nil {
		return nil, 0, err
	}
	return comments, total, nil
}
