package user

import (
	"net/mail"
	"strings"
	"time"

	"servicemarket/internal/pkg/errs"

	"github.com/google/uuid"
)

var (
	ErrInvalidEmail = errs.New("invalid email address")
	ErrEmptyName    = errs.New("name cannot be empty")
)

type Email struct {
	value string
}

func NewEmail(s string) (Email, error) {
	trimmed := strings.TrimSpace(strings.ToLower(s))
	if _, err := mail.ParseAddress(trimmed); err != nil {
		return Email{}, ErrInvalidEmail
	}
	return Email{value: trimmed}, nil
}

func (e Email) Value() string {
	return e.value
}

// User entity, used by the auth collaborator. Profile management beyond
// registration is out of scope here.
type User struct {
	id           uuid.UUID
	email        Email
	passwordHash string
	firstName    string
	lastName     string
	phone        string
	role         Role
	createdAt    time.Time
	updatedAt    time.Time
}

func NewUser(email Email, passwordHash, firstName, lastName, phone string, role Role) (*User, error) {
	firstName = strings.TrimSpace(firstName)
	lastName = strings.TrimSpace(lastName)
	if firstName == "" || lastName == "" {
		return nil, ErrEmptyName
	}
	if !role.IsValid() {
		return nil, ErrInvalidRole
	}

	return &User{
		id:           uuid.New(),
		email:        email,
		passwordHash: passwordHash,
		firstName:    firstName,
		lastName:     lastName,
		phone:        strings.TrimSpace(phone),
		role:         role,
	}, nil
}

func (u *User) ID() uuid.UUID        { return u.id }
func (u *User) Email() Email         { return u.email }
func (u *User) PasswordHash() string { return u.passwordHash }
func (u *User) FirstName() string    { return u.firstName }
func (u *User) LastName() string     { return u.lastName }
func (u *User) Phone() string        { return u.phone }
func (u *User) Role() Role           { return u.role }
func (u *User) CreatedAt() time.Time { return u.createdAt }
func (u *User) UpdatedAt() time.Time { return u.updatedAt }
