package repositories

import (
	"context"

	"github.com/anonto42/nano-midea/gateway/internal/models"
	"gorm.io/gorm"
)

// PostRepository defines the interface for post data operations
type PostRepository interface {
	CreatePost(ctx context.Context, post *models.Post) error
	GetPostByID(ctx context.Context, id string) (*models.Post, error)
	GetPosts(ctx context.Context) ([]*models.Post, error)
	FindByAuthorIDs(ctx context.Context, authorIDs []string) ([]*models.Post, error)
	UpdatePost(ctx context.Context, id string, req models.ChangePostRequest) (*models.Post, error)
	DeletePost(ctx context.Context, id string) (*models.Post, error)
}

// PostgresPostRepository implements PostRepository with GORM
type PostgresPostRepository struct {
	db *gorm.DB
}

// NewPostgresPostRepository creates a new PostgresPostRepository
func NewPostgresPostRepository(db *gorm.DB) *PostgresPostRepository {
	return &PostgresPostRepository{db: db}
}

// CreatePost creates a new post
func (r *PostgresPostRepository) CreatePost(ctx context.Context, post *models.Post) error {
	return translate(r.db.WithContext(ctx).Create(post).Error, "create post")
}

// GetPostByID retrieves a post by ID
func (r *PostgresPostRepository) GetPostByID(ctx context.Context, id string) (*models.Post, error) {
	var post models.Post
	if err := r.db.WithContext(ctx).First(&post, "id = ?", id).Error; err != nil {
		return nil, translate(err, "post")
	}
	return &post, nil
}

// GetPosts retrieves all posts
func (r *PostgresPostRepository) GetPosts(ctx context.Context) ([]*models.Post, error) {
	var posts []*models.Post
	if err := r.db.WithContext(ctx).Find(&posts).Error; err != nil {
		return nil, translate(err, "list posts")
	}
	return posts, nil
}

// FindByAuthorIDs retrieves every post written by one of authorIDs
func (r *PostgresPostRepository) FindByAuthorIDs(ctx context.Context, authorIDs []string) ([]*models.Post, error) {
	var posts []*models.Post
	if err := r.db.WithContext(ctx).Where("author_id IN ?", authorIDs).Find(&posts).Error; err != nil {
		return nil, translate(err, "find posts")
	}
	return posts, nil
}

// UpdatePost updates an existing post
func (r *PostgresPostRepository) UpdatePost(ctx context.Context, id string, req models.ChangePostRequest) (*models.Post, error) {
	updates := map[string]interface{}{}
	if req.Title != nil {
		updates["title"] = *req.Title
	}
	if req.Content != nil {
		updates["content"] = *req.Content
	}
	return updateByID[models.Post](ctx, r.db, id, updates, "post")
}

// DeletePost deletes a post by ID and returns the deleted row
func (r *PostgresPostRepository) DeletePost(ctx context.Context, id string) (*models.Post, error) {
	var post models.Post
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&post, "id = ?", id).Error; err != nil {
			return translate(err, "post")
		}
		return translate(tx.Delete(&post).Error, "delete post")
	})
	if err != nil {
		return nil, err
	}
	return &post, nil
}
