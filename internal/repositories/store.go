package repositories

import (
	"context"

	"github.com/anonto42/nano-midea/gateway/internal/models"
	"github.com/pkg/errors"
	"gorm.io/gorm"
)

// Store groups the repositories behind one database handle. It is shared
// by every request; the connection pool is the only shared state.
type Store struct {
	Users         UserRepository
	Posts         PostRepository
	Profiles      ProfileRepository
	MemberTypes   MemberTypeRepository
	Subscriptions SubscriptionRepository
}

// NewPostgresStore creates a Store whose repositories share db
func NewPostgresStore(db *gorm.DB) *Store {
	return &Store{
		Users:         NewPostgresUserRepository(db),
		Posts:         NewPostgresPostRepository(db),
		Profiles:      NewPostgresProfileRepository(db),
		MemberTypes:   NewPostgresMemberTypeRepository(db),
		Subscriptions: NewPostgresSubscriptionRepository(db),
	}
}

// Migrate creates the schema and seeds the member tiers.
func Migrate(ctx context.Context, db *gorm.DB) error {
	err := db.WithContext(ctx).AutoMigrate(
		&models.MemberType{},
		&models.User{},
		&models.Profile{},
		&models.Post{},
		&models.Subscription{},
	)
	if err != nil {
		return errors.Wrap(err, "auto migrate")
	}
	return seedMemberTypes(ctx, db)
}
