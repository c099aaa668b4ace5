package application

import (
	"context"

	"go.uber.org/zap"

	"github.com/peershare/service-rental/internal/apperrors"
	itemDomain "github.com/peershare/service-rental/internal/domain/item"
	requestDomain "github.com/peershare/service-rental/internal/domain/request"
	userDomain "github.com/peershare/service-rental/internal/domain/user"
	"github.com/peershare/service-rental/internal/localtime"
)

// CreateItemRequestRequest holds the data needed to post an item request.
type CreateItemRequestRequest struct {
	Description string `json:"description" binding:"required"`
}

// RequestService is the application service orchestrating item-request use
// cases. The items answering a request are computed, never stored on it.
type RequestService struct {
	requests requestDomain.Repository
	items    itemDomain.Repository
	users    userDomain.Repository
	logger   *zap.Logger
}

// NewRequestService creates a new RequestService.
func NewRequestService(
	requests requestDomain.Repository,
	items itemDomain.Repository,
	users userDomain.Repository,
	logger *zap.Logger,
) *RequestService {
	return &RequestService{
		requests: requests,
		items:    items,
		users:    users,
		logger:   logger,
	}
}

// Create posts a new item request for the given user.
func (s *RequestService) Create(ctx context.Context, requesterID int64, req CreateItemRequestRequest) (*RequestDTO, error) {
	exists, err := s.users.ExistsByID(ctx, requesterID)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, apperrors.NewNotFound("User", requesterID)
	}

	r, err := requestDomain.New(req.Description, requesterID)
	if err != nil {
		return nil, err
	}
	stored, err := s.requests.Save(ctx, r)
	if err != nil {
		return nil, err
	}

	result := toRequestDTO(stored, nil)
	return &result, nil
}

// ListOwn retrieves the caller's requests, newest first, with their items.
func (s *RequestService) ListOwn(ctx context.Context, requesterID int64) ([]RequestDTO, error) {
	exists, err := s.users.ExistsByID(ctx, requesterID)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, apperrors.NewNotFound("User", requesterID)
	}

	requests, err := s.requests.FindByRequester(ctx, requesterID)
	if err != nil {
		return nil, err
	}
	return s.assembleRequests(ctx, requests)
}

// ListOthers retrieves other users' requests, newest first, with pagination.
func (s *RequestService) ListOthers(ctx context.Context, viewerID int64, from, size int) ([]RequestDTO, error) {
	exists, err := s.users.ExistsByID(ctx, viewerID)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, apperrors.NewNotFound("User", viewerID)
	}
	if from < 0 {
		return nil, apperrors.NewBadRequest("from must not be negative")
	}
	if size <= 0 {
		return nil, apperrors.NewBadRequest("size must be positive")
	}

	requests, _, err := s.requests.FindOthers(ctx, viewerID, from, size)
	if err != nil {
		return nil, err
	}
	return s.assembleRequests(ctx, requests)
}

// Get retrieves a single request, for any registered user, with its items.
func (s *RequestService) Get(ctx context.Context, viewerID, requestID int64) (*RequestDTO, error) {
	exists, err := s.users.ExistsByID(ctx, viewerID)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, apperrors.NewNotFound("User", viewerID)
	}

	r, err := s.requests.FindByID(ctx, requestID)
	if err != nil {
		return nil, err
	}

	items, err := s.items.FindByRequestID(ctx, r.ID())
	if err != nil {
		return nil, err
	}
	result := toRequestDTO(r, items)
	return &result, nil
}

func (s *RequestService) assembleRequests(ctx context.Context, requests []*requestDomain.ItemRequest) ([]RequestDTO, error) {
	dtos := make([]RequestDTO, len(requests))
	for i, r := range requests {
		items, err := s.items.FindByRequestID(ctx, r.ID())
		if err != nil {
			return nil, err
		}
		dtos[i] = toRequestDTO(r, items)
	}
	return dtos, nil
}

func toRequestDTO(r *requestDomain.ItemRequest, items []*itemDomain.Item) RequestDTO {
	itemDTOs := make([]ItemDTO, len(items))
	for i, item := range items {
		itemDTOs[i] = toItemDTO(item)
	}
	return RequestDTO{
		ID:          r.ID(),
		Description: r.Description(),
		Created:     localtime.Of(r.CreatedAt()),
		Items:       itemDTOs,
	}
}
