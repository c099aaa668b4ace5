package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/peershare/service-rental/internal/apperrors"
	requestDomain "github.com/peershare/service-rental/internal/domain/request"
)

// ItemRequestModel is the GORM model for the requests table.
type ItemRequestModel struct {
	ID          int64     `gorm:"primaryKey;autoIncrement"`
	Description string    `gorm:"not null;type:text"`
	RequesterID int64     `gorm:"not null;index"`
	CreatedAt   time.Time `gorm:"not null"`
}

// TableName returns the table name for the GORM model.
func (ItemRequestModel) TableName() string {
	return "requests"
}

// GormRequestRepository is the GORM-based implementation of request.Repository.
type GormRequestRepository struct {
	db *gorm.DB
}

// NewGormRequestRepository creates a new GormRequestRepository.
func NewGormRequestRepository(db *gorm.DB) *GormRequestRepository {
	return &GormRequestRepository{db: db}
}

// FindByID retrieves a single item request.
func (r *GormRequestRepository) FindByID(ctx context.Context, id int64) (*requestDomain.ItemRequest, error) {
	var model ItemRequestModel
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NewNotFound("ItemRequest", id)
		}
		return nil, fmt.Errorf("failed to find request by id: %w", err)
	}
	return toDomainRequest(&model), nil
}

// FindByRequester retrieves the requester's own requests, newest first.
func (r *GormRequestRepository) FindByRequester(ctx context.Context, requesterID int64) ([]*requestDomain.ItemRequest, error) {
	var models []ItemRequestModel
	if err := r.db.WithContext(ctx).
		Where("requester_id = ?", requesterID).
		Order("created_at DESC, id DESC").
		Find(&models).Error; err != nil {
		return nil, fmt.Errorf("failed to list requests by requester: %w", err)
	}
	return toDomainRequests(models), nil
}

// FindOthers retrieves requests created by everyone except the viewer,
// newest first, with offset pagination.
func (r *GormRequestRepository) FindOthers(ctx context.Context, viewerID int64, from, size int) ([]*requestDomain.ItemRequest, int64, error) {
	scope := func() *gorm.DB {
		return r.db.WithContext(ctx).Model(&ItemRequestModel{}).Where("requester_id <> ?", viewerID)
	}

	var total int64
	if err := scope().Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count other users' requests: %w", err)
	}

	var models []ItemRequestModel
	if err := scope().
		Order("created_at DESC, id DESC").
		Offset(from).
		Limit(size).
		Find(&models).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to list other users' requests: %w", err)
	}
	return toDomainRequests(models), total, nil
}

// Save persists a new item request and returns it with its generated id.
func (r *GormRequestRepository) Save(ctx context.Context, req *requestDomain.ItemRequest) (*requestDomain.ItemRequest, error) {
	model := toRequestModel(req)
	if err := r.db.WithContext(ctx).Create(model).Error; err != nil {
		return nil, fmt.Errorf("failed to save request: %w", err)
	}
	return toDomainRequest(model), nil
}

// --- Conversion helpers ---

func toRequestModel(req *requestDomain.ItemRequest) *ItemRequestModel {
	return &ItemRequestModel{
		ID:          req.ID(),
		Description: req.Description(),
		RequesterID: req.RequesterID(),
		CreatedAt:   req.CreatedAt(),
	}
}

func toDomainRequest(m *ItemRequestModel) *requestDomain.ItemRequest {
	return requestDomain.Reconstruct(m.ID, m.Description, m.RequesterID, m.CreatedAt)
}

func toDomainRequests(models []ItemRequestModel) []*requestDomain.ItemRequest {
	requests := make([]*requestDomain.ItemRequest, len(models))
	for i, m := range models {
		requests[i] = toDomainRequest(&m)
	}
	return requests
}
