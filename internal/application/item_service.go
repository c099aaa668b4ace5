package application

import (
	"context"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/peershare/service-rental/internal/apperrors"
	bookingDomain "github.com/peershare/service-rental/internal/domain/booking"
	commentDomain "github.com/peershare/service-rental/internal/domain/comment"
	itemDomain "github.com/peershare/service-rental/internal/domain/item"
	requestDomain "github.com/peershare/service-rental/internal/domain/request"
	userDomain "github.com/peershare/service-rental/internal/domain/user"
	"github.com/peershare/service-rental/internal/localtime"
)

// CreateItemRequest holds the data needed to list a new item.
type CreateItemRequest struct {
	Name        string `json:"name" binding:"required"`
	Description string `json:"description" binding:"required"`
	Available   *bool  `json:"available" binding:"required"`
	RequestID   *int64 `json:"requestId"`
}

// UpdateItemRequest holds a partial item patch. Empty fields keep their
// current value.
type UpdateItemRequest struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Available   *bool  `json:"available"`
}

// CreateCommentRequest holds the data needed to comment on an item.
type CreateCommentRequest struct {
	Text string `json:"text" binding:"required"`
}

// ItemService is the application service orchestrating item use cases.
type ItemService struct {
	items    itemDomain.Repository
	users    userDomain.Repository
	bookings bookingDomain.Repository
	comments commentDomain.Repository
	requests requestDomain.Repository
	cache    ItemSearchCache
	logger   *zap.Logger
	now      func() time.Time
}

// NewItemService creates a new ItemService.
func NewItemService(
	items itemDomain.Repository,
	users userDomain.Repository,
	bookings bookingDomain.Repository,
	comments commentDomain.Repository,
	requests requestDomain.Repository,
	cache ItemSearchCache,
	logger *zap.Logger,
) *ItemService {
	return &ItemService{
		items:    items,
		users:    users,
		bookings: bookings,
		comments: comments,
		requests: requests,
		cache:    cache,
		logger:   logger,
		now:      time.Now,
	}
}

// Create lists a new item under the given owner.
func (s *ItemService) Create(ctx context.Context, ownerID int64, req CreateItemRequest) (*ItemDTO, error) {
	exists, err := s.users.ExistsByID(ctx, ownerID)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, apperrors.NewNotFound("User", ownerID)
	}

	if req.RequestID != nil {
		if _, err := s.requests.FindByID(ctx, *req.RequestID); err != nil {
			return nil, err
		}
	}

	item, err := itemDomain.New(req.Name, req.Description, *req.Available, ownerID, req.RequestID)
	if err != nil {
		return nil, err
	}

	stored, err := s.items.Save(ctx, item)
	if err != nil {
		return nil, err
	}

	s.cache.Invalidate(ctx)

	result := toItemDTO(stored)
	return &result, nil
}

// Update applies a partial patch to an item owned by the caller.
func (s *ItemService) Update(ctx context.Context, callerID, itemID int64, req UpdateItemRequest) (*ItemDTO, error) {
	item, err := s.items.FindByID(ctx, itemID)
	if err != nil {
		return nil, err
	}
	if !item.IsOwnedBy(callerID) {
		return nil, apperrors.NewForbidden("only the owner may edit an item")
	}

	item.Update(req.Name, req.Description, req.Available)
	if err := s.items.Update(ctx, item); err != nil {
		return nil, err
	}

	s.cache.Invalidate(ctx)

	result := toItemDTO(item)
	return &result, nil
}

// Get retrieves an item with its comments. The owner additionally sees the
// adjacent approved bookings.
func (s *ItemService) Get(ctx context.Context, viewerID, itemID int64) (*ItemDetailDTO, error) {
	item, err := s.items.FindByID(ctx, itemID)
	if err != nil {
		return nil, err
	}

	comments, err := s.comments.FindByItem(ctx, itemID)
	if err != nil {
		return nil, err
	}
	commentDTOs, err := s.assembleComments(ctx, comments)
	if err != nil {
		return nil, err
	}

	detail := ItemDetailDTO{
		ItemDTO:  toItemDTO(item),
		Comments: commentDTOs,
	}

	if item.IsOwnedBy(viewerID) {
		last, next, err := s.bookings.FindLastAndNext(ctx, itemID, s.now())
		if err != nil {
			return nil, err
		}
		detail.LastBooking = toBookingBriefDTO(last)
		detail.NextBooking = toBookingBriefDTO(next)
	}
	return &detail, nil
}

// ListByOwner retrieves the caller's items, oldest first, each with comments
// and adjacent approved bookings.
func (s *ItemService) ListByOwner(ctx context.Context, ownerID int64, from, size int) ([]ItemDetailDTO, error) {
	exists, err := s.users.ExistsByID(ctx, ownerID)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, apperrors.NewNotFound("User", ownerID)
	}

	items, _, err := s.items.FindByOwner(ctx, ownerID, from, size)
	if err != nil {
		return nil, err
	}

	itemIDs := make([]int64, len(items))
	for i, item := range items {
		itemIDs[i] = item.ID()
	}
	commentsByItem, err := s.comments.FindByItemIDs(ctx, itemIDs)
	if err != nil {
		return nil, err
	}

	now := s.now()
	details := make([]ItemDetailDTO, len(items))
	for i, item := range items {
		commentDTOs, err := s.assembleComments(ctx, commentsByItem[item.ID()])
		if err != nil {
			return nil, err
		}

		last, next, err := s.bookings.FindLastAndNext(ctx, item.ID(), now)
		if err != nil {
			return nil, err
		}

		details[i] = ItemDetailDTO{
			ItemDTO:     toItemDTO(item),
			LastBooking: toBookingBriefDTO(last),
			NextBooking: toBookingBriefDTO(next),
			Comments:    commentDTOs,
		}
	}
	return details, nil
}

// Search finds available items matching the text. Blank text yields an empty
// result without touching the store.
func (s *ItemService) Search(ctx context.Context, text string, from, size int) ([]ItemDTO, error) {
	if strings.TrimSpace(text) == "" {
		return []ItemDTO{}, nil
	}
	if from < 0 {
		return nil, apperrors.NewBadRequest("from must not be negative")
	}
	if size <= 0 {
		return nil, apperrors.NewBadRequest("size must be positive")
	}

	if cached, ok := s.cache.Get(ctx, text, from, size); ok {
		return cached, nil
	}

	items, _, err := s.items.Search(ctx, text, from, size)
	if err != nil {
		return nil, err
	}

	dtos := make([]ItemDTO, len(items))
	for i, item := range items {
		dtos[i] = toItemDTO(item)
	}

	s.cache.Set(ctx, text, from, size, dtos)
	return dtos, nil
}

// AddComment attaches a comment to an item. Only a user with a completed
// booking of the item may comment.
func (s *ItemService) AddComment(ctx context.Context, authorID, itemID int64, req CreateCommentRequest) (*CommentDTO, error) {
	author, err := s.users.FindByID(ctx, authorID)
	if err != nil {
		return nil, err
	}
	if _, err := s.items.FindByID(ctx, itemID); err != nil {
		return nil, err
	}

	completed, err := s.bookings.HasCompletedBooking(ctx, itemID, authorID, s.now())
	if err != nil {
		return nil, err
	}
	if !completed {
		return nil, apperrors.NewBadRequest("user has no completed booking of this item")
	}

	comment, err := commentDomain.New(req.Text, itemID, authorID)
	if err != nil {
		return nil, err
	}
	stored, err := s.comments.Save(ctx, comment)
	if err != nil {
		return nil, err
	}

	result := toCommentDTO(stored, author.Name())
	return &result, nil
}

// assembleComments resolves author names once per distinct author.
func (s *ItemService) assembleComments(ctx context.Context, comments []*commentDomain.Comment) ([]CommentDTO, error) {
	authorsByID := make(map[int64]*userDomain.User)

	dtos := make([]CommentDTO, len(comments))
	for i, c := range comments {
		author, ok := authorsByID[c.AuthorID()]
		if !ok {
			loaded, err := s.users.FindByID(ctx, c.AuthorID())
			if err != nil {
				return nil, err
			}
			authorsByID[c.AuthorID()] = loaded
			author = loaded
		}
		dtos[i] = toCommentDTO(c, author.Name())
	}
	return dtos, nil
}

func toItemDTO(item *itemDomain.Item) ItemDTO {
	return ItemDTO{
		ID:          item.ID(),
		Name:        item.Name(),
		Description: item.Description(),
		Available:   item.Available(),
		RequestID:   item.RequestID(),
	}
}

func toCommentDTO(c *commentDomain.Comment, authorName string) CommentDTO {
	return CommentDTO{
		ID:         c.ID(),
		Text:       c.Text(),
		AuthorName: authorName,
		Created:    localtime.Of(c.CreatedAt()),
	}
}

func toBookingBriefDTO(bk *bookingDomain.Booking) *BookingBriefDTO {
	if bk == nil {
		return nil
	}
	return &BookingBriefDTO{
		ID:       bk.ID(),
		BookerID: bk.BookerID(),
	}
}
