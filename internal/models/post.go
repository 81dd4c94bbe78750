package models

import (
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Post represents a blog post written by a User
type Post struct {
	ID       string `json:"id" gorm:"type:uuid;primaryKey"`
	Title    string `json:"title" gorm:"not null"`
	Content  string `json:"content" gorm:"not null"`
	AuthorID string `json:"authorId" gorm:"type:uuid;not null;index"`
}

func (p *Post) BeforeCreate(tx *gorm.DB) error {
	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	return nil
}

// CreatePostRequest defines the input for creating a new post
type CreatePostRequest struct {
	AuthorID string `json:"authorId" validate:"required,uuid"`
	Title    string `json:"title" validate:"required,max=255"`
	Content  string `json:"content" validate:"required"`
}

// ChangePostRequest defines the input for updating an existing post
type ChangePostRequest struct {
	Title   *string `json:"title,omitempty" validate:"omitempty,min=1,max=255"`
	Content *string `json:"content,omitempty" validate:"omitempty,min=1"`
}
