package models

import (
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Profile holds the one-to-one personal details of a User.
type Profile struct {
	ID           string       `json:"id" gorm:"type:uuid;primaryKey"`
	IsMale       bool         `json:"isMale"`
	YearOfBirth  int          `json:"yearOfBirth"`
	UserID       string       `json:"userId" gorm:"type:uuid;not null;uniqueIndex"`
	MemberTypeID MemberTypeID `json:"memberTypeId" gorm:"type:varchar(16);not null;index"`
	MemberType   *MemberType  `json:"-"`
}

func (p *Profile) BeforeCreate(tx *gorm.DB) error {
	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	return nil
}

type CreateProfileRequest struct {
	UserID       string       `json:"userId" validate:"required,uuid"`
	MemberTypeID MemberTypeID `json:"memberTypeId" validate:"required,oneof=BASIC BUSINESS"`
	IsMale       bool         `json:"isMale"`
	YearOfBirth  int          `json:"yearOfBirth" validate:"min=1900,max=2100"`
}

type ChangeProfileRequest struct {
	IsMale       *bool         `json:"isMale,omitempty"`
	YearOfBirth  *int          `json:"yearOfBirth,omitempty" validate:"omitempty,min=1900,max=2100"`
	MemberTypeID *MemberTypeID `json:"memberTypeId,omitempty" validate:"omitempty,oneof=BASIC BUSINESS"`
}
