package models

import (
	"github.com/noorfashion/backend/internal/domain/identity"
)

// UserModel is the persistence model for the User aggregate
type UserModel struct {
	AggregateModel
	Email        string `gorm:"type:varchar(200);not null;uniqueIndex"`
	Name         string `gorm:"type:varchar(200)"`
	Phone        string `gorm:"type:varchar(30)"`
	Address      string `gorm:"type:text"`
	Role         string `gorm:"type:varchar(20);not null;default:'user'"`
	PasswordHash string `gorm:"type:varchar(100);not null"`
	Disabled     bool   `gorm:"not null;default:false"`
}

// TableName returns the table name for GORM
func (UserModel) TableName() string {
	return "users"
}

// ToDomain converts the persistence model to a domain User aggregate
func (m *UserModel) ToDomain() *identity.User {
	u := &identity.User{
		Email:        m.Email,
		Name:         m.Name,
		Phone:        m.Phone,
		Address:      m.Address,
		Role:         identity.Role(m.Role),
		PasswordHash: m.PasswordHash,
		Disabled:     m.Disabled,
	}
	m.PopulateAggregateRoot(&u.BaseAggregateRoot)
	return u
}

// FromDomain populates the persistence model from a domain User
func (m *UserModel) FromDomain(u *identity.User) {
	m.FromDomainAggregateRoot(u.BaseAggregateRoot)
	m.Email = u.Email
	m.Name = u.Name
	m.Phone = u.Phone
	m.Address = u.Address
	m.Role = u.Role.String()
	m.PasswordHash = u.PasswordHash
	m.Disabled = u.Disabled
}

// UserModelFromDomain creates a new persistence model from a domain User
func UserModelFromDomain(u *identity.User) *UserModel {
	m := &UserModel{}
	m.FromDomain(u)
	return m
}
