package models

import (
	"time"

	"github.com/google/uuid"

	"github.com/shopcart/backend/internal/domain/identity"
)

// UserModel is the persistence model for the User domain entity.
type UserModel struct {
	BaseModel
	Username     string          `gorm:"type:varchar(50);not null;uniqueIndex:idx_users_username"`
	Name         string          `gorm:"type:varchar(100)"`
	Email        string          `gorm:"type:varchar(200)"`
	Phone        string          `gorm:"type:varchar(20)"`
	PasswordHash string          `gorm:"type:varchar(255);not null"`
	AddressID    *uuid.UUID      `gorm:"size:36"`
	LastLoginAt  *time.Time      `gorm:"index"`
	Roles        []UserRoleModel `gorm:"foreignKey:UserID;references:ID;constraint:OnDelete:CASCADE"`
}

// TableName returns the table name for GORM
func (UserModel) TableName() string {
	return "users"
}

// ToDomain converts the persistence model to a domain User entity.
// Roles must have been preloaded.
func (m *UserModel) ToDomain() *identity.User {
	names := make([]string, 0, len(m.Roles))
	for _, r := range m.Roles {
		names = append(names, r.Role)
	}
	return &identity.User{
		BaseEntity:   m.BaseModel.ToDomain(),
		Username:     m.Username,
		Name:         m.Name,
		Email:        m.Email,
		Phone:        m.Phone,
		PasswordHash: m.PasswordHash,
		Roles:        identity.ParseRoles(names),
		AddressID:    m.AddressID,
		LastLoginAt:  m.LastLoginAt,
	}
}

// FromDomain populates the persistence model from a domain User entity.
func (m *UserModel) FromDomain(u *identity.User) {
	m.FromDomainBaseEntity(u.BaseEntity)
	m.Username = u.Username
	m.Name = u.Name
	m.Email = u.Email
	m.Phone = u.Phone
	m.PasswordHash = u.PasswordHash
	m.AddressID = u.AddressID
	m.LastLoginAt = u.LastLoginAt
	m.Roles = make([]UserRoleModel, 0, len(u.Roles))
	for _, r := range u.Roles {
		m.Roles = append(m.Roles, UserRoleModel{UserID: u.ID, Role: r.String()})
	}
}

// UserModelFromDomain creates a new persistence model from a domain User entity.
func UserModelFromDomain(u *identity.User) *UserModel {
	m := &UserModel{}
	m.FromDomain(u)
	return m
}

// UserRoleModel is the join row granting a role to a user.
type UserRoleModel struct {
	UserID uuid.UUID `gorm:"size:36;primaryKey"`
	Role   string    `gorm:"type:varchar(20);primaryKey"`
}

// TableName returns the table name for GORM
func (UserRoleModel) TableName() string {
	return "user_roles"
}
