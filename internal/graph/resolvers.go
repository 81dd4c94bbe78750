package graph

import (
	"github.com/anonto42/nano-midea/gateway/internal/dataloader"
	"github.com/anonto42/nano-midea/gateway/internal/loaders"
	"github.com/anonto42/nano-midea/gateway/internal/models"
	"github.com/graphql-go/graphql"
)

// Nested resolvers only enqueue keys and hand graphql-go a thunk. The
// executor resolves thunks after every sibling field of the level ran, so
// each loader sees all keys of the level before its first thunk flushes it.

func (r *resolver) userProfile(p graphql.ResolveParams) (interface{}, error) {
	user, ok := p.Source.(*models.User)
	if !ok {
		return nil, nil
	}
	reg, err := loaders.FromContext(p.Context)
	if err != nil {
		return nil, err
	}
	return deferredPtr(reg.Profiles.Load(p.Context, user.ID)), nil
}

func (r *resolver) userPosts(p graphql.ResolveParams) (interface{}, error) {
	user, ok := p.Source.(*models.User)
	if !ok {
		return nil, nil
	}
	reg, err := loaders.FromContext(p.Context)
	if err != nil {
		return nil, err
	}
	posts := reg.Posts.Load(p.Context, user.ID)
	return func() (interface{}, error) {
		return posts()
	}, nil
}

// userSubscribedTo lists the authors the source user subscribes to.
func (r *resolver) userSubscribedTo(p graphql.ResolveParams) (interface{}, error) {
	user, ok := p.Source.(*models.User)
	if !ok {
		return nil, nil
	}
	reg, err := loaders.FromContext(p.Context)
	if err != nil {
		return nil, err
	}
	reg.WantUserRelations(userRelations(p.Info))

	if user.UserSubscribedTo != nil {
		return deferredUsers(reg, p, authorIDs(user.UserSubscribedTo)), nil
	}
	edges := reg.SubscribedTo.Load(p.Context, user.ID)
	return func() (interface{}, error) {
		subs, err := edges()
		if err != nil {
			return nil, err
		}
		return deferredUsers(reg, p, authorIDs(subs))()
	}, nil
}

// subscribedToUser lists the users subscribed to the source user.
func (r *resolver) subscribedToUser(p graphql.ResolveParams) (interface{}, error) {
	user, ok := p.Source.(*models.User)
	if !ok {
		return nil, nil
	}
	reg, err := loaders.FromContext(p.Context)
	if err != nil {
		return nil, err
	}
	reg.WantUserRelations(userRelations(p.Info))

	if user.SubscribedToUser != nil {
		return deferredUsers(reg, p, subscriberIDs(user.SubscribedToUser)), nil
	}
	edges := reg.Subscribers.Load(p.Context, user.ID)
	return func() (interface{}, error) {
		subs, err := edges()
		if err != nil {
			return nil, err
		}
		return deferredUsers(reg, p, subscriberIDs(subs))()
	}, nil
}

func (r *resolver) profileMemberType(p graphql.ResolveParams) (interface{}, error) {
	profile, ok := p.Source.(*models.Profile)
	if !ok {
		return nil, nil
	}
	reg, err := loaders.FromContext(p.Context)
	if err != nil {
		return nil, err
	}
	return deferredPtr(reg.MemberTypes.Load(p.Context, profile.MemberTypeID)), nil
}

func (r *resolver) profileUser(p graphql.ResolveParams) (interface{}, error) {
	profile, ok := p.Source.(*models.Profile)
	if !ok {
		return nil, nil
	}
	return loadUser(p, profile.UserID)
}

func (r *resolver) postAuthor(p graphql.ResolveParams) (interface{}, error) {
	post, ok := p.Source.(*models.Post)
	if !ok {
		return nil, nil
	}
	return loadUser(p, post.AuthorID)
}

func (r *resolver) memberTypeProfiles(p graphql.ResolveParams) (interface{}, error) {
	mt, ok := p.Source.(*models.MemberType)
	if !ok {
		return nil, nil
	}
	reg, err := loaders.FromContext(p.Context)
	if err != nil {
		return nil, err
	}
	profiles := reg.ProfilesByMemberType.Load(p.Context, mt.ID)
	return func() (interface{}, error) {
		return profiles()
	}, nil
}

// loadUser widens the user projection by the field's own selection and
// returns a thunk for the user with id.
func loadUser(p graphql.ResolveParams, id string) (interface{}, error) {
	reg, err := loaders.FromContext(p.Context)
	if err != nil {
		return nil, err
	}
	reg.WantUserRelations(userRelations(p.Info))
	return deferredPtr(reg.Users.Load(p.Context, id)), nil
}

// deferredUsers loads ids as one list, dropping users that no longer exist.
func deferredUsers(reg *loaders.Registry, p graphql.ResolveParams, ids []string) func() (interface{}, error) {
	users := reg.Users.LoadMany(p.Context, ids)
	return func() (interface{}, error) {
		found, err := users()
		if err != nil {
			return nil, err
		}
		out := make([]*models.User, 0, len(found))
		for _, u := range found {
			if u != nil {
				out = append(out, u)
			}
		}
		return out, nil
	}
}

// deferredPtr adapts a loader thunk to graphql-go, turning a missing value
// into an untyped nil so the field resolves to null.
func deferredPtr[T any](thunk dataloader.Thunk[*T]) func() (interface{}, error) {
	return func() (interface{}, error) {
		v, err := thunk()
		if err != nil || v == nil {
			return nil, err
		}
		return v, nil
	}
}

func authorIDs(subs []models.Subscription) []string {
	ids := make([]string, len(subs))
	for i, s := range subs {
		ids[i] = s.AuthorID
	}
	return ids
}

func subscriberIDs(subs []models.Subscription) []string {
	ids := make([]string, len(subs))
	for i, s := range subs {
		ids[i] = s.SubscriberID
	}
	return ids
}
