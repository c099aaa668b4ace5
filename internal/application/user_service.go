package application

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/peershare/service-rental/internal/apperrors"
	bookingDomain "github.com/peershare/service-rental/internal/domain/booking"
	itemDomain "github.com/peershare/service-rental/internal/domain/item"
	userDomain "github.com/peershare/service-rental/internal/domain/user"
)

// CreateUserRequest holds the data needed to register a user.
type CreateUserRequest struct {
	Name  string `json:"name" binding:"required"`
	Email string `json:"email" binding:"required"`
}

// UpdateUserRequest holds a partial user patch. Empty fields keep their
// current value.
type UpdateUserRequest struct {
	Name  string `json:"name"`
	Email string `json:"email"`
}

// UserService is the application service orchestrating user use cases.
type UserService struct {
	users    userDomain.Repository
	items    itemDomain.Repository
	bookings bookingDomain.Repository
	logger   *zap.Logger
	now      func() time.Time
}

// NewUserService creates a new UserService.
func NewUserService(
	users userDomain.Repository,
	items itemDomain.Repository,
	bookings bookingDomain.Repository,
	logger *zap.Logger,
) *UserService {
	return &UserService{
		users:    users,
		items:    items,
		bookings: bookings,
		logger:   logger,
		now:      time.Now,
	}
}

// Create registers a new user. A duplicate email fails with ConflictError.
func (s *UserService) Create(ctx context.Context, req CreateUserRequest) (*UserDTO, error) {
	u, err := userDomain.New(req.Name, req.Email)
	if err != nil {
		return nil, err
	}

	stored, err := s.users.Save(ctx, u)
	if err != nil {
		return nil, err
	}
	result := toUserDTO(stored)
	return &result, nil
}

// Update applies a partial patch to a user.
func (s *UserService) Update(ctx context.Context, userID int64, req UpdateUserRequest) (*UserDTO, error) {
	u, err := s.users.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	if err := u.Update(req.Name, req.Email); err != nil {
		return nil, err
	}
	if err := s.users.Update(ctx, u); err != nil {
		return nil, err
	}

	result := toUserDTO(u)
	return &result, nil
}

// Get retrieves a single user.
func (s *UserService) Get(ctx context.Context, userID int64) (*UserDTO, error) {
	u, err := s.users.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	result := toUserDTO(u)
	return &result, nil
}

// List retrieves every registered user.
func (s *UserService) List(ctx context.Context) ([]UserDTO, error) {
	users, err := s.users.FindAll(ctx)
	if err != nil {
		return nil, err
	}

	dtos := make([]UserDTO, len(users))
	for i, u := range users {
		dtos[i] = toUserDTO(u)
	}
	return dtos, nil
}

// Delete removes a user. Users that still own items or have unfinished
// bookings cannot be removed; the caller must resolve those first.
func (s *UserService) Delete(ctx context.Context, userID int64) error {
	if _, err := s.users.FindByID(ctx, userID); err != nil {
		return err
	}

	owned, err := s.items.CountByOwner(ctx, userID)
	if err != nil {
		return err
	}
	if owned > 0 {
		return apperrors.NewConflict("user still owns items and cannot be deleted")
	}

	active, err := s.bookings.HasActiveByBooker(ctx, userID, s.now())
	if err != nil {
		return err
	}
	if active {
		return apperrors.NewConflict("user has unfinished bookings and cannot be deleted")
	}

	return s.users.Delete(ctx, userID)
}

func toUserDTO(u *userDomain.User) UserDTO {
	return UserDTO{
		ID:    u.ID(),
		Name:  u.Name(),
		Email: u.Email(),
	}
}
