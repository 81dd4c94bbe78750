package repositories

import (
	"context"

	"github.com/anonto42/nano-midea/gateway/internal/models"
	"gorm.io/gorm"
)

// SubscriptionRepository defines the interface for subscription edges
type SubscriptionRepository interface {
	CreateSubscription(ctx context.Context, subscriberID, authorID string) error
	DeleteSubscription(ctx context.Context, subscriberID, authorID string) error
	FindBySubscriberIDs(ctx context.Context, subscriberIDs []string) ([]models.Subscription, error)
	FindByAuthorIDs(ctx context.Context, authorIDs []string) ([]models.Subscription, error)
}

// PostgresSubscriptionRepository implements SubscriptionRepository with GORM
type PostgresSubscriptionRepository struct {
	db *gorm.DB
}

// NewPostgresSubscriptionRepository creates a new PostgresSubscriptionRepository
func NewPostgresSubscriptionRepository(db *gorm.DB) *PostgresSubscriptionRepository {
	return &PostgresSubscriptionRepository{db: db}
}

func (r *PostgresSubscriptionRepository) CreateSubscription(ctx context.Context, subscriberID, authorID string) error {
	sub := &models.Subscription{SubscriberID: subscriberID, AuthorID: authorID}
	return translate(r.db.WithContext(ctx).Create(sub).Error, "subscribe")
}

func (r *PostgresSubscriptionRepository) DeleteSubscription(ctx context.Context, subscriberID, authorID string) error {
	res := r.db.WithContext(ctx).Where("subscriber_id = ? AND author_id = ?", subscriberID, authorID).Delete(&models.Subscription{})
	if res.Error != nil {
		return translate(res.Error, "unsubscribe")
	}
	if res.RowsAffected == 0 {
		return notFound("subscription")
	}
	return nil
}

func (r *PostgresSubscriptionRepository) FindBySubscriberIDs(ctx context.Context, subscriberIDs []string) ([]models.Subscription, error) {
	var subs []models.Subscription
	err := r.db.WithContext(ctx).Where("subscriber_id IN ?", subscriberIDs).Find(&subs).Error
	return subs, translate(err, "find subscriptions")
}

func (r *PostgresSubscriptionRepository) FindByAuthorIDs(ctx context.Context, authorIDs []string) ([]models.Subscription, error) {
	var subs []models.Subscription
	err := r.db.WithContext(ctx).Where("author_id IN ?", authorIDs).Find(&subs).Error
	return subs, translate(err, "find subscribers")
}
