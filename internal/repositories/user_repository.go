package repositories

import (
	"context"

	"github.com/anonto42/nano-midea/gateway/internal/models"
	"gorm.io/gorm"
)

// UserRelations selects which subscription edges are loaded with a user.
type UserRelations struct {
	SubscribedTo bool // User.UserSubscribedTo
	Subscribers  bool // User.SubscribedToUser
}

// Union returns the relations requested by either r or o.
func (r UserRelations) Union(o UserRelations) UserRelations {
	return UserRelations{
		SubscribedTo: r.SubscribedTo || o.SubscribedTo,
		Subscribers:  r.Subscribers || o.Subscribers,
	}
}

// UserRepository defines the interface for user data operations
type UserRepository interface {
	CreateUser(ctx context.Context, user *models.User) error
	GetUserByID(ctx context.Context, id string, rel UserRelations) (*models.User, error)
	FindByIDs(ctx context.Context, ids []string, rel UserRelations) ([]*models.User, error)
	GetUsers(ctx context.Context, rel UserRelations) ([]*models.User, error)
	UpdateUser(ctx context.Context, id string, req models.ChangeUserRequest) (*models.User, error)
	DeleteUser(ctx context.Context, id string) error
}

// PostgresUserRepository implements UserRepository with GORM
type PostgresUserRepository struct {
	db *gorm.DB
}

// NewPostgresUserRepository creates a new PostgresUserRepository
func NewPostgresUserRepository(db *gorm.DB) *PostgresUserRepository {
	return &PostgresUserRepository{db: db}
}

func (r *PostgresUserRepository) CreateUser(ctx context.Context, user *models.User) error {
	return translate(r.db.WithContext(ctx).Create(user).Error, "create user")
}

// GetUserByID retrieves a user with the requested relations
func (r *PostgresUserRepository) GetUserByID(ctx context.Context, id string, rel UserRelations) (*models.User, error) {
	var user models.User
	if err := withRelations(r.db.WithContext(ctx), rel).First(&user, "id = ?", id).Error; err != nil {
		return nil, translate(err, "user")
	}
	markLoaded([]*models.User{&user}, rel)
	return &user, nil
}

// FindByIDs retrieves all users whose id is in ids, in no particular order.
// Requested relations are preloaded with one extra query per relation.
func (r *PostgresUserRepository) FindByIDs(ctx context.Context, ids []string, rel UserRelations) ([]*models.User, error) {
	var users []*models.User
	if err := withRelations(r.db.WithContext(ctx), rel).Where("id IN ?", ids).Find(&users).Error; err != nil {
		return nil, translate(err, "find users")
	}
	markLoaded(users, rel)
	return users, nil
}

// GetUsers retrieves all users
func (r *PostgresUserRepository) GetUsers(ctx context.Context, rel UserRelations) ([]*models.User, error) {
	var users []*models.User
	if err := withRelations(r.db.WithContext(ctx), rel).Find(&users).Error; err != nil {
		return nil, translate(err, "list users")
	}
	markLoaded(users, rel)
	return users, nil
}

func (r *PostgresUserRepository) UpdateUser(ctx context.Context, id string, req models.ChangeUserRequest) (*models.User, error) {
	updates := map[string]interface{}{}
	if req.Name != nil {
		updates["name"] = *req.Name
	}
	if req.Balance != nil {
		updates["balance"] = *req.Balance
	}
	return updateByID[models.User](ctx, r.db, id, updates, "user")
}

// DeleteUser deletes a user together with its profile, posts and
// subscription edges in both directions.
func (r *PostgresUserRepository) DeleteUser(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("subscriber_id = ? OR author_id = ?", id, id).Delete(&models.Subscription{}).Error; err != nil {
			return translate(err, "delete subscriptions")
		}
		if err := tx.Where("user_id = ?", id).Delete(&models.Profile{}).Error; err != nil {
			return translate(err, "delete profile")
		}
		if err := tx.Where("author_id = ?", id).Delete(&models.Post{}).Error; err != nil {
			return translate(err, "delete posts")
		}
		res := tx.Delete(&models.User{}, "id = ?", id)
		if res.Error != nil {
			return translate(res.Error, "delete user")
		}
		if res.RowsAffected == 0 {
			return notFound("user")
		}
		return nil
	})
}

func withRelations(tx *gorm.DB, rel UserRelations) *gorm.DB {
	if rel.SubscribedTo {
		tx = tx.Preload("UserSubscribedTo")
	}
	if rel.Subscribers {
		tx = tx.Preload("SubscribedToUser")
	}
	return tx
}

// markLoaded makes projected relations non-nil so callers can tell an
// empty edge list from one that was never loaded.
func markLoaded(users []*models.User, rel UserRelations) {
	for _, u := range users {
		if rel.SubscribedTo && u.UserSubscribedTo == nil {
			u.UserSubscribedTo = []models.Subscription{}
		}
		if rel.Subscribers && u.SubscribedToUser == nil {
			u.SubscribedToUser = []models.Subscription{}
		}
	}
}

// updateByID applies updates to the row of T with the given id and
// returns the row as stored afterwards.
func updateByID[T any](ctx context.Context, db *gorm.DB, id string, updates map[string]interface{}, entity string) (*T, error) {
	db = db.WithContext(ctx)
	if len(updates) > 0 {
		res := db.Model(new(T)).Where("id = ?", id).Updates(updates)
		if res.Error != nil {
			return nil, translate(res.Error, "update "+entity)
		}
	}
	var out T
	if err := db.First(&out, "id = ?", id).Error; err != nil {
		return nil, translate(err, entity)
	}
	return &out, nil
}
