package identity

import (
	"regexp"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/shopcart/backend/internal/domain/shared"
)

// passwordCost is the bcrypt cost used when hashing passwords
var passwordCost = 12

var (
	usernameRegex = regexp.MustCompile(`^[a-z0-9_.\-]{3,50}$`)
	emailRegex    = regexp.MustCompile(`^[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}$`)
)

// User is a shopper or operator of the platform
type User struct {
	shared.BaseEntity
	Username     string
	Name         string
	Email        string
	Phone        string
	PasswordHash string
	Roles        []Role
	AddressID    *uuid.UUID
	LastLoginAt  *time.Time
}

// NewUser creates a user with a hashed password and the default User role
func NewUser(username, name, email, password string) (*User, error) {
	username = strings.ToLower(strings.TrimSpace(username))
	if !usernameRegex.MatchString(username) {
		return nil, shared.ErrInvalidInput.WithMessage("username must be 3-50 characters of letters, digits, '_', '.', or '-'")
	}
	email = strings.TrimSpace(email)
	if email != "" && !emailRegex.MatchString(email) {
		return nil, shared.ErrInvalidInput.WithMessage("invalid email format")
	}
	if err := validatePassword(password); err != nil {
		return nil, err
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), passwordCost)
	if err != nil {
		return nil, shared.NewDomainError("PASSWORD_HASH_ERROR", "failed to hash password")
	}

	return &User{
		BaseEntity:   shared.NewBaseEntity(),
		Username:     username,
		Name:         strings.TrimSpace(name),
		Email:        email,
		PasswordHash: string(hash),
		Roles:        []Role{RoleUser},
	}, nil
}

// VerifyPassword verifies if the provided password matches
func (u *User) VerifyPassword(password string) bool {
	err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password))
	return err == nil
}

// GrantRoles adds roles the user does not hold yet
func (u *User) GrantRoles(roles ...Role) {
	for _, r := range roles {
		if r.IsValid() && !u.HasRole(r) {
			u.Roles = append(u.Roles, r)
		}
	}
}

// HasRole reports whether the user holds r
func (u *User) HasRole(r Role) bool {
	for _, have := range u.Roles {
		if have == r {
			return true
		}
	}
	return false
}

// HasAnyRole reports whether the user holds at least one of roles
func (u *User) HasAnyRole(roles ...Role) bool {
	for _, r := range roles {
		if u.HasRole(r) {
			return true
		}
	}
	return false
}

// RecordLogin stamps the last successful login
func (u *User) RecordLogin(now time.Time) {
	t := now.UTC()
	u.LastLoginAt = &t
	u.Touch(t)
}

func validatePassword(password string) error {
	if len(password) < 6 {
		return shared.ErrInvalidInput.WithMessage("password must be at least 6 characters")
	}
	if len(password) > 72 {
		return shared.ErrInvalidInput.WithMessage("password cannot exceed 72 characters")
	}
	return nil
}
