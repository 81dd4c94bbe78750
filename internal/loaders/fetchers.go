package loaders

import (
	"context"

	"github.com/anonto42/nano-midea/gateway/internal/dataloader"
	"github.com/anonto42/nano-midea/gateway/internal/models"
	"github.com/anonto42/nano-midea/gateway/internal/repositories"
)

// alignOne maps rows onto keys by keyOf. Keys without a row get the zero
// value; when several rows share a key the last one wins.
func alignOne[K comparable, V any](keys []K, rows []V, keyOf func(V) K) []V {
	byKey := make(map[K]V, len(rows))
	for _, row := range rows {
		byKey[keyOf(row)] = row
	}
	out := make([]V, len(keys))
	for i, key := range keys {
		out[i] = byKey[key]
	}
	return out
}

// alignMany groups rows by keyOf and returns one group per key, in key
// order. Keys without rows get an empty, non-nil slice.
func alignMany[K comparable, V any](keys []K, rows []V, keyOf func(V) K) [][]V {
	byKey := make(map[K][]V, len(keys))
	for _, row := range rows {
		k := keyOf(row)
		byKey[k] = append(byKey[k], row)
	}
	out := make([][]V, len(keys))
	for i, key := range keys {
		if group, ok := byKey[key]; ok {
			out[i] = group
		} else {
			out[i] = []V{}
		}
	}
	return out
}

func memberTypesByID(repo repositories.MemberTypeRepository) dataloader.BatchFunc[models.MemberTypeID, *models.MemberType] {
	return func(ctx context.Context, ids []models.MemberTypeID) ([]*models.MemberType, error) {
		rows, err := repo.FindByIDs(ctx, ids)
		if err != nil {
			return nil, err
		}
		return alignOne(ids, rows, func(m *models.MemberType) models.MemberTypeID { return m.ID }), nil
	}
}

func postsByAuthor(repo repositories.PostRepository) dataloader.BatchFunc[string, []*models.Post] {
	return func(ctx context.Context, authorIDs []string) ([][]*models.Post, error) {
		rows, err := repo.FindByAuthorIDs(ctx, authorIDs)
		if err != nil {
			return nil, err
		}
		return alignMany(authorIDs, rows, func(p *models.Post) string { return p.AuthorID }), nil
	}
}

func profilesByUser(repo repositories.ProfileRepository) dataloader.BatchFunc[string, *models.Profile] {
	return func(ctx context.Context, userIDs []string) ([]*models.Profile, error) {
		rows, err := repo.FindByUserIDs(ctx, userIDs)
		if err != nil {
			return nil, err
		}
		return alignOne(userIDs, rows, func(p *models.Profile) string { return p.UserID }), nil
	}
}

func profilesByMemberType(repo repositories.ProfileRepository) dataloader.BatchFunc[models.MemberTypeID, []*models.Profile] {
	return func(ctx context.Context, ids []models.MemberTypeID) ([][]*models.Profile, error) {
		rows, err := repo.FindByMemberTypeIDs(ctx, ids)
		if err != nil {
			return nil, err
		}
		return alignMany(ids, rows, func(p *models.Profile) models.MemberTypeID { return p.MemberTypeID }), nil
	}
}

// usersByID loads users with whatever relations rel reports at dispatch time.
func usersByID(repo repositories.UserRepository, rel func() repositories.UserRelations) dataloader.BatchFunc[string, *models.User] {
	return func(ctx context.Context, ids []string) ([]*models.User, error) {
		rows, err := repo.FindByIDs(ctx, ids, rel())
		if err != nil {
			return nil, err
		}
		return alignOne(ids, rows, func(u *models.User) string { return u.ID }), nil
	}
}

func subscriptionsBySubscriber(repo repositories.SubscriptionRepository) dataloader.BatchFunc[string, []models.Subscription] {
	return func(ctx context.Context, subscriberIDs []string) ([][]models.Subscription, error) {
		rows, err := repo.FindBySubscriberIDs(ctx, subscriberIDs)
		if err != nil {
			return nil, err
		}
		return alignMany(subscriberIDs, rows, func(s models.Subscription) string { return s.SubscriberID }), nil
	}
}

func subscriptionsByAuthor(repo repositories.SubscriptionRepository) dataloader.BatchFunc[string, []models.Subscription] {
	return func(ctx context.Context, authorIDs []string) ([][]models.Subscription, error) {
		rows, err := repo.FindByAuthorIDs(ctx, authorIDs)
		if err != nil {
			return nil, err
		}
		return alignMany(authorIDs, rows, func(s models.Subscription) string { return s.AuthorID }), nil
	}
}
