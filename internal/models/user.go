package models

import (
	"time"

	"golang.org/x/crypto/bcrypt"
)

// User & auth related models
type User struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	Username     string    `gorm:"size:80;uniqueIndex;not null" json:"username"`
	Email        string    `gorm:"size:120;uniqueIndex;not null" json:"email"`
	PasswordHash string    `gorm:"size:255;not null" json:"-"`
	CompanyName  string    `gorm:"size:200" json:"company_name"`
	CreatedAt    time.Time `json:"created_at"`

	Invoices []Invoice `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"-"`
	Reports  []Report  `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"-"`
}

// SetPassword hashes the plaintext password into PasswordHash.
func (u *User) SetPassword(password string) error {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	u.PasswordHash = string(hash)
	return nil
}

func (u *User) CheckPassword(password string) bool {
	return bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)) == nil
}
