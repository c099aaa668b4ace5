package repository

import (
	"context"
	"fmt"
	"time"

	"gorm.io/gorm"

	commentDomain "github.com/peershare/service-rental/internal/domain/comment"
)

// CommentModel is the GORM model for the comments table.
type CommentModel struct {
	ID        int64     `gorm:"primaryKey;autoIncrement"`
	Text      string    `gorm:"not null;type:text"`
	ItemID    int64     `gorm:"not null;index"`
	AuthorID  int64     `gorm:"not null;index"`
	CreatedAt time.Time `gorm:"not null"`
}

// TableName returns the table name for the GORM model.
func (CommentModel) TableName() string {
	return "comments"
}

// GormCommentRepository is the GORM-based implementation of comment.Repository.
type GormCommentRepository struct {
	db *gorm.DB
}

// NewGormCommentRepository creates a new GormCommentRepository.
func NewGormCommentRepository(db *gorm.DB) *GormCommentRepository {
	return &GormCommentRepository{db: db}
}

// FindByItem retrieves an item's comments, oldest first.
func (r *GormCommentRepository) FindByItem(ctx context.Context, itemID int64) ([]*commentDomain.Comment, error) {
	var models []CommentModel
	if err := r.db.WithContext(ctx).
		Where("item_id = ?", itemID).
		Order("created_at ASC, id ASC").
		Find(&models).Error; err != nil {
		return nil, fmt.Errorf("failed to list comments by item: %w", err)
	}
	return toDomainComments(models), nil
}

// FindByItemIDs retrieves comments for a set of items in one query, grouped by
// item id. Used when assembling owner item listings.
func (r *GormCommentRepository) FindByItemIDs(ctx context.Context, itemIDs []int64) (map[int64][]*commentDomain.Comment, error) {
	grouped := make(map[int64][]*commentDomain.Comment, len(itemIDs))
	if len(itemIDs) == 0 {
		return grouped, nil
	}

	var models []CommentModel
	if err := r.db.WithContext(ctx).
		Where("item_id IN ?", itemIDs).
		Order("created_at ASC, id ASC").
		Find(&models).Error; err != nil {
		return nil, fmt.Errorf("failed to list comments by item ids: %w", err)
	}

	for i := range models {
		c := toDomainComment(&models[i])
		grouped[c.ItemID()] = append(grouped[c.ItemID()], c)
	}
	return grouped, nil
}

// Save persists a new comment and returns it with its generated id.
func (r *GormCommentRepository) Save(ctx context.Context, c *commentDomain.Comment) (*commentDomain.Comment, error) {
	model := toCommentModel(c)
	if err := r.db.WithContext(ctx).Create(model).Error; err != nil {
		return nil, fmt.Errorf("failed to save comment: %w", err)
	}
	return toDomainComment(model), nil
}

// --- Conversion helpers ---

func toCommentModel(c *commentDomain.Comment) *CommentModel {
	return &CommentModel{
		ID:        c.ID(),
		Text:      c.Text(),
		ItemID:    c.ItemID(),
		AuthorID:  c.AuthorID(),
		CreatedAt: c.CreatedAt(),
	}
}

func toDomainComment(m *CommentModel) *commentDomain.Comment {
	return commentDomain.Reconstruct(m.ID, m.Text, m.ItemID, m.AuthorID, m.CreatedAt)
}

func toDomainComments(models []CommentModel) []*commentDomain.Comment {
	comments := make([]*commentDomain.Comment, len(models))
	for i := range models {
		comments[i] = toDomainComment(&models[i])
	}
	return comments
}
