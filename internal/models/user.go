package models

import (
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// User is a blog member. UserSubscribedTo and SubscribedToUser are only
// populated when the query projected them; nil means "not loaded".
type User struct {
	ID               string         `json:"id" gorm:"type:uuid;primaryKey"`
	Name             string         `json:"name" gorm:"not null"`
	Balance          float64        `json:"balance" gorm:"not null"`
	Profile          *Profile       `json:"-" gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE"`
	Posts            []Post         `json:"-" gorm:"foreignKey:AuthorID;constraint:OnDelete:CASCADE"`
	UserSubscribedTo []Subscription `json:"userSubscribedTo,omitempty" gorm:"foreignKey:SubscriberID;constraint:OnDelete:CASCADE"` // users this user follows
	SubscribedToUser []Subscription `json:"subscribedToUser,omitempty" gorm:"foreignKey:AuthorID;constraint:OnDelete:CASCADE"`     // users following this user
}

func (u *User) BeforeCreate(tx *gorm.DB) error {
	if u.ID == "" {
		u.ID = uuid.NewString()
	}
	return nil
}

type CreateUserRequest struct {
	Name    string  `json:"name" validate:"required,max=255"`
	Balance float64 `json:"balance"`
}

type ChangeUserRequest struct {
	Name    *string  `json:"name,omitempty" validate:"omitempty,min=1,max=255"`
	Balance *float64 `json:"balance,omitempty"`
}
