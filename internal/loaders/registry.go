package loaders

import (
	"context"

	"github.com/anonto42/nano-midea/gateway/internal/dataloader"
	"github.com/anonto42/nano-midea/gateway/internal/models"
	"github.com/anonto42/nano-midea/gateway/internal/repositories"
	"github.com/sirupsen/logrus"
)

// Options configures a Registry. The zero value is usable.
type Options struct {
	Metrics  *Metrics
	Logger   logrus.FieldLogger
	MaxBatch int // keys per batch fetch, 0 for unlimited
}

// Registry holds one loader per entity relation for a single GraphQL
// execution. Build a new one for every request.
type Registry struct {
	MemberTypes          *dataloader.Loader[models.MemberTypeID, *models.MemberType]
	Posts                *dataloader.Loader[string, []*models.Post]          // by author id
	Profiles             *dataloader.Loader[string, *models.Profile]         // by user id
	ProfilesByMemberType *dataloader.Loader[models.MemberTypeID, []*models.Profile]
	Users                *dataloader.Loader[string, *models.User]
	SubscribedTo         *dataloader.Loader[string, []models.Subscription] // by subscriber id
	Subscribers          *dataloader.Loader[string, []models.Subscription] // by author id

	store     *repositories.Store
	relations repositories.UserRelations
	metrics   *Metrics
	log       logrus.FieldLogger
}

// NewRegistry wires a fresh set of loaders over store.
func NewRegistry(store *repositories.Store, opts Options) *Registry {
	r := &Registry{
		store:   store,
		metrics: opts.Metrics,
		log:     opts.Logger,
	}
	if r.log == nil {
		r.log = logrus.StandardLogger()
	}
	var loaderOpts []dataloader.Option
	if opts.MaxBatch > 0 {
		loaderOpts = append(loaderOpts, dataloader.WithMaxBatch(opts.MaxBatch))
	}

	r.MemberTypes = dataloader.New(instrument(r, "member_types", memberTypesByID(store.MemberTypes)), loaderOpts...)
	r.Posts = dataloader.New(instrument(r, "posts", postsByAuthor(store.Posts)), loaderOpts...)
	r.Profiles = dataloader.New(instrument(r, "profiles", profilesByUser(store.Profiles)), loaderOpts...)
	r.ProfilesByMemberType = dataloader.New(instrument(r, "profiles_by_member_type", profilesByMemberType(store.Profiles)), loaderOpts...)
	r.Users = dataloader.New(instrument(r, "users", usersByID(store.Users, r.UserRelations)), loaderOpts...)

	subscribedTo := subscriptionsBySubscriber(store.Subscriptions)
	r.SubscribedTo = dataloader.New(instrument(r, "subscribed_to", func(ctx context.Context, ids []string) ([][]models.Subscription, error) {
		groups, err := subscribedTo(ctx, ids)
		if err == nil {
			r.enqueueUsers(ctx, groups, func(s models.Subscription) string { return s.AuthorID })
		}
		return groups, err
	}), loaderOpts...)

	subscribers := subscriptionsByAuthor(store.Subscriptions)
	r.Subscribers = dataloader.New(instrument(r, "subscribers", func(ctx context.Context, ids []string) ([][]models.Subscription, error) {
		groups, err := subscribers(ctx, ids)
		if err == nil {
			r.enqueueUsers(ctx, groups, func(s models.Subscription) string { return s.SubscriberID })
		}
		return groups, err
	}), loaderOpts...)

	return r
}

// Store returns the storage handle the loaders read from.
func (r *Registry) Store() *repositories.Store {
	return r.store
}

// UserRelations reports the edges the Users loader preloads.
func (r *Registry) UserRelations() repositories.UserRelations {
	return r.relations
}

// WantUserRelations widens the edges preloaded by later Users batches.
// The projection never narrows within an execution.
func (r *Registry) WantUserRelations(rel repositories.UserRelations) {
	r.relations = r.relations.Union(rel)
}

// ForgetUser evicts everything cached about a user.
func (r *Registry) ForgetUser(id string) {
	r.Users.Clear(id)
	r.SubscribedTo.Clear(id)
	r.Subscribers.Clear(id)
	r.Profiles.Clear(id)
	r.Posts.Clear(id)
}

// ForgetSubscription evicts the cached state of both ends of an edge.
func (r *Registry) ForgetSubscription(subscriberID, authorID string) {
	r.Users.Clear(subscriberID)
	r.Users.Clear(authorID)
	r.SubscribedTo.Clear(subscriberID)
	r.Subscribers.Clear(authorID)
}

// ForgetProfile evicts a profile from both profile loaders.
func (r *Registry) ForgetProfile(p *models.Profile) {
	r.Profiles.Clear(p.UserID)
	r.ProfilesByMemberType.Clear(p.MemberTypeID)
}

// enqueueUsers queues the users at the far end of the fetched edges so the
// follow-up user lookups of every sibling land in one batch.
func (r *Registry) enqueueUsers(ctx context.Context, groups [][]models.Subscription, idOf func(models.Subscription) string) {
	for _, group := range groups {
		for _, s := range group {
			r.Users.Load(ctx, idOf(s))
		}
	}
}

func instrument[K comparable, V any](r *Registry, kind string, fetch dataloader.BatchFunc[K, V]) dataloader.BatchFunc[K, V] {
	return func(ctx context.Context, keys []K) ([]V, error) {
		r.metrics.observe(kind, len(keys))
		r.log.WithFields(logrus.Fields{"loader": kind, "keys": len(keys)}).Debug("dispatching batch")
		values, err := fetch(ctx, keys)
		if err != nil {
			r.log.WithError(err).WithField("loader", kind).Warn("batch fetch failed")
		}
		return values, err
	}
}
