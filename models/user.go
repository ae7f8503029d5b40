package models

import (
	"time"
)

type User struct {
	ID           string    `json:"id" gorm:"primaryKey;size:36" bson:"_id"`
	Name         string    `json:"name" gorm:"not null" bson:"name"`
	Mobile       string    `json:"mobile" gorm:"not null" bson:"mobile"`
	Email        string    `json:"email" gorm:"uniqueIndex;size:255;not null" bson:"email"` // always lowercased
	PasswordHash string    `json:"-" gorm:"column:password;not null" bson:"password"`
	CreatedAt    time.Time `json:"createdAt" bson:"createdAt"`
}

// PublicUser is the view of a User handed to clients.
type PublicUser struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	Email  string `json:"email"`
	Mobile string `json:"mobile"`
}

func (u *User) Public() PublicUser {
	return PublicUser{
		ID:     u.ID,
		Name:   u.Name,
		Email:  u.Email,
		Mobile: u.Mobile,
	}
}
