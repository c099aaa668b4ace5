package user

import "context"

// Repository defines persistence operations for users. Save and Update
// surface a duplicate email as ConflictError.
type Repository interface {
	// FindByID retrieves a user by its identifier.
	FindByID(ctx context.Context, id int64) (*User, error)

	// FindAll retrieves every user, oldest first.
	FindAll(ctx context.Context) ([]*User, error)

	// ExistsByID reports whether the user exists.
	ExistsByID(ctx context.Context, id int64) (bool, error)

	// Save persists a new user and returns it with its assigned id.
	Save(ctx context.Context, user *User) (*User, error)

	// Update persists changes to an existing user.
	Update(ctx context.Context, user *User) error

	// Delete removes a user. Reference checks are the caller's business.
	Delete(ctx context.Context, id int64) error
}
