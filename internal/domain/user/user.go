// Package user holds the user aggregate.
package user

import (
	"regexp"
	"strings"
	"time"

	"github.com/peershare/service-rental/internal/apperrors"
)

// emailPattern is deliberately permissive: one @, a dot in the domain part.
var emailPattern = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)

// User is a participant on the platform: item owner, booker, or both.
type User struct {
	id    int64
	name  string
	email string

	createdAt time.Time
	updatedAt time.Time
}

// New creates a user with validated fields. Email uniqueness is enforced by
// the store, not here.
func New(name, email string) (*User, error) {
	if strings.TrimSpace(name) == "" {
		return nil, apperrors.NewBadRequest("user name must not be blank")
	}
	if !emailPattern.MatchString(email) {
		return nil, apperrors.NewBadRequest("user email is not a valid address")
	}

	now := time.Now().UTC()
	return &User{
		name:      name,
		email:     email,
		createdAt: now,
		updatedAt: now,
	}, nil
}

// Reconstruct rebuilds a User from persistence data (no validation).
func Reconstruct(id int64, name, email string, createdAt, updatedAt time.Time) *User {
	return &User{
		id:        id,
		name:      name,
		email:     email,
		createdAt: createdAt,
		updatedAt: updatedAt,
	}
}

// --- Getters ---

func (u *User) ID() int64            { return u.id }
func (u *User) Name() string         { return u.name }
func (u *User) Email() string        { return u.email }
func (u *User) CreatedAt() time.Time { return u.createdAt }
func (u *User) UpdatedAt() time.Time { return u.updatedAt }

// --- Behavior ---

// Update applies a partial patch. Empty strings leave fields untouched; a
// non-empty email must be valid.
func (u *User) Update(name, email string) error {
	if email != "" && !emailPattern.MatchString(email) {
		return apperrors.NewBadRequest("user email is not a valid address")
	}
	if name != "" {
		u.name = name
	}
	if email != "" {
		u.email = email
	}
	u.updatedAt = time.Now().UTC()
	return nil
}
