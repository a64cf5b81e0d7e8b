package identity

import (
	"time"

	"github.com/google/uuid"

	"github.com/shopcart/backend/internal/domain/identity"
)

// LoginRequest carries user credentials
type LoginRequest struct {
	Username string `json:"username" binding:"required,min=3,max=50"`
	Password string `json:"password" binding:"required,min=6,max=72"`
}

// RefreshTokenRequest carries a refresh token to exchange
type RefreshTokenRequest struct {
	RefreshToken string `json:"refresh_token" binding:"required"`
}

// TokenResult is an issued token pair
type TokenResult struct {
	AccessToken           string    `json:"access_token"`
	RefreshToken          string    `json:"refresh_token"`
	AccessTokenExpiresAt  time.Time `json:"access_token_expires_at"`
	RefreshTokenExpiresAt time.Time `json:"refresh_token_expires_at"`
	TokenType             string    `json:"token_type"`
}

// LoginResult is returned after a successful login
type LoginResult struct {
	TokenResult
	User UserInfo `json:"user"`
}

// UserInfo is the public view of a user
type UserInfo struct {
	ID          uuid.UUID  `json:"id"`
	Username    string     `json:"username"`
	Name        string     `json:"name"`
	Email       string     `json:"email,omitempty"`
	Phone       string     `json:"phone,omitempty"`
	Roles       []string   `json:"roles"`
	AddressID   *uuid.UUID `json:"address_id,omitempty"`
	LastLoginAt *time.Time `json:"last_login_at,omitempty"`
}

// LogoutInput identifies the session to end
type LogoutInput struct {
	UserID uuid.UUID
	// TokenJTI and TokenExpiresAt describe the access token being retired
	TokenJTI       string
	TokenExpiresAt time.Time
	// AllSessions revokes every token of the user issued so far
	AllSessions bool
}

// ToUserInfo converts a user to its public view
func ToUserInfo(u *identity.User) UserInfo {
	return UserInfo{
		ID:          u.ID,
		Username:    u.Username,
		Name:        u.Name,
		Email:       u.Email,
		Phone:       u.Phone,
		Roles:       identity.RoleNames(u.Roles),
		AddressID:   u.AddressID,
		LastLoginAt: u.LastLoginAt,
	}
}
