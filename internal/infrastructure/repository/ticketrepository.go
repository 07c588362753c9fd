package repository

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"redsys/internal/domain/ticket"
	"redsys/internal/infrastructure/persistence/mappers"
	"redsys/internal/infrastructure/persistence/models"
	"redsys/internal/shared/biztime"
	"redsys/internal/shared/db"
	"redsys/internal/shared/mapper"
	"redsys/internal/shared/utils"
)

type TicketRepository struct {
	db     *gorm.DB
	mapper mappers.TicketMapper
}

func NewTicketRepository(db *gorm.DB) *TicketRepository {
	return &TicketRepository{
		db:     db,
		mapper: mappers.NewTicketMapper(),
	}
}

var _ ticket.Repository = (*TicketRepository)(nil)

func (r *TicketRepository) Create(ctx context.Context, t *ticket.Ticket) error {
	model := r.mapper.ToModel(t)
	tx := db.GetTxFromContext(ctx, r.db)

	if err := tx.Create(model).Error; err != nil {
		return fmt.Errorf("failed to save ticket: %w", err)
	}

	return t.SetID(model.ID)
}

// Update is a compare-and-swap on the version column.
func (r *TicketRepository) Update(ctx context.Context, t *ticket.Ticket) error {
	model := r.mapper.ToModel(t)
	tx := db.GetTxFromContext(ctx, r.db)

	result := tx.
		Model(&models.TicketModel{}).
		Where("id = ? AND version = ?", model.ID, model.Version).
		Updates(map[string]any{
			"title":       model.Title,
			"description": model.Description,
			"state":       model.State,
			"assignee_id": model.AssigneeID,
			"version":     gorm.Expr("version + 1"),
			"updated_at":  biztime.NowUTC().UnixMilli(),
		})
	if result.Error != nil {
		return fmt.Errorf("failed to update ticket: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return ticket.ErrVersionConflict
	}

	t.AdvanceVersion()
	return nil
}

func (r *TicketRepository) GetByID(ctx context.Context, id uint) (*ticket.Ticket, error) {
	var model models.TicketModel
	tx := db.GetTxFromContext(ctx, r.db)

	if err := tx.First(&model, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ticket.ErrTicketNotFound
		}
		return nil, fmt.Errorf("failed to find ticket: %w", err)
	}

	return r.mapper.ToDomain(&model)
}

func (r *TicketRepository) List(ctx context.Context, filter ticket.ListFilter) ([]*ticket.Ticket, int64, error) {
	tx := db.GetTxFromContext(ctx, r.db)
	query := tx.Model(&models.TicketModel{})

	if filter.State != "" {
		query = query.Where("state = ?", filter.State.String())
	}
	if filter.AssigneeID != nil {
		query = query.Where("assignee_id = ?", *filter.AssigneeID)
	}
	if filter.ArticleID != nil {
		query = query.Where("article_id = ?", *filter.ArticleID)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count tickets: %w", err)
	}

	page := utils.NormalizePagination(filter.Page, filter.PageSize)
	var rows []*models.TicketModel
	err := query.
		Order("id DESC").
		Limit(page.PageSize).
		Offset(page.Offset()).
		Find(&rows).Error
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list tickets: %w", err)
	}

	tickets, err := mapper.MapSliceErr(rows, r.mapper.ToDomain)
	if err != nil {
		return nil, 0, err
	}
	return tickets, total, nil
}
