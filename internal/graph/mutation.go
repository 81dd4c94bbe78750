package graph

import (
	"github.com/anonto42/nano-midea/gateway/internal/loaders"
	"github.com/anonto42/nano-midea/gateway/internal/models"
	"github.com/graphql-go/graphql"
	"github.com/pkg/errors"
)

func (r *resolver) mutation(o *objects) *graphql.Object {
	nonNull := func(t graphql.Input) *graphql.ArgumentConfig {
		return &graphql.ArgumentConfig{Type: graphql.NewNonNull(t)}
	}
	return graphql.NewObject(graphql.ObjectConfig{
		Name: "Mutations",
		Fields: graphql.Fields{
			"createUser": {
				Type:    o.user,
				Args:    graphql.FieldConfigArgument{"dto": nonNull(createUserInput)},
				Resolve: r.createUser,
			},
			"changeUser": {
				Type:    o.user,
				Args:    graphql.FieldConfigArgument{"id": nonNull(uuidScalar), "dto": nonNull(changeUserInput)},
				Resolve: r.changeUser,
			},
			"deleteUser": {
				Type:    graphql.String,
				Args:    idArg,
				Resolve: r.deleteUser,
			},
			"createPost": {
				Type:    o.post,
				Args:    graphql.FieldConfigArgument{"dto": nonNull(createPostInput)},
				Resolve: r.createPost,
			},
			"changePost": {
				Type:    o.post,
				Args:    graphql.FieldConfigArgument{"id": nonNull(uuidScalar), "dto": nonNull(changePostInput)},
				Resolve: r.changePost,
			},
			"deletePost": {
				Type:    graphql.String,
				Args:    idArg,
				Resolve: r.deletePost,
			},
			"createProfile": {
				Type:    o.profile,
				Args:    graphql.FieldConfigArgument{"dto": nonNull(createProfileInput)},
				Resolve: r.createProfile,
			},
			"changeProfile": {
				Type:    o.profile,
				Args:    graphql.FieldConfigArgument{"id": nonNull(uuidScalar), "dto": nonNull(changeProfileInput)},
				Resolve: r.changeProfile,
			},
			"deleteProfile": {
				Type:    graphql.String,
				Args:    idArg,
				Resolve: r.deleteProfile,
			},
			"subscribeTo": {
				Type:    o.user,
				Args:    graphql.FieldConfigArgument{"userId": nonNull(uuidScalar), "authorId": nonNull(uuidScalar)},
				Resolve: r.subscribeTo,
			},
			"unsubscribeFrom": {
				Type:    graphql.String,
				Args:    graphql.FieldConfigArgument{"userId": nonNull(uuidScalar), "authorId": nonNull(uuidScalar)},
				Resolve: r.unsubscribeFrom,
			},
		},
	})
}

// Mutations run one after another and their results are not batched
// with anything, so they return values rather than thunks.

func (r *resolver) createUser(p graphql.ResolveParams) (interface{}, error) {
	reg, err := loaders.FromContext(p.Context)
	if err != nil {
		return nil, err
	}
	req := decodeCreateUser(inputArg(p))
	if err := r.check(req); err != nil {
		return nil, err
	}
	user := &models.User{Name: req.Name, Balance: req.Balance}
	if err := reg.Store().Users.CreateUser(p.Context, user); err != nil {
		return nil, err
	}
	return user, nil
}

func (r *resolver) changeUser(p graphql.ResolveParams) (interface{}, error) {
	reg, err := loaders.FromContext(p.Context)
	if err != nil {
		return nil, err
	}
	id, _ := p.Args["id"].(string)
	req := decodeChangeUser(inputArg(p))
	if err := r.check(req); err != nil {
		return nil, err
	}
	user, err := reg.Store().Users.UpdateUser(p.Context, id, req)
	if err != nil {
		return nil, err
	}
	reg.Users.Clear(id)
	return user, nil
}

func (r *resolver) deleteUser(p graphql.ResolveParams) (interface{}, error) {
	reg, err := loaders.FromContext(p.Context)
	if err != nil {
		return nil, err
	}
	id, _ := p.Args["id"].(string)
	if err := reg.Store().Users.DeleteUser(p.Context, id); err != nil {
		return nil, err
	}
	reg.ForgetUser(id)
	return nil, nil
}

func (r *resolver) createPost(p graphql.ResolveParams) (interface{}, error) {
	reg, err := loaders.FromContext(p.Context)
	if err != nil {
		return nil, err
	}
	req := decodeCreatePost(inputArg(p))
	if err := r.check(req); err != nil {
		return nil, err
	}
	post := &models.Post{Title: req.Title, Content: req.Content, AuthorID: req.AuthorID}
	if err := reg.Store().Posts.CreatePost(p.Context, post); err != nil {
		return nil, err
	}
	reg.Posts.Clear(post.AuthorID)
	return post, nil
}

func (r *resolver) changePost(p graphql.ResolveParams) (interface{}, error) {
	reg, err := loaders.FromContext(p.Context)
	if err != nil {
		return nil, err
	}
	id, _ := p.Args["id"].(string)
	req := decodeChangePost(inputArg(p))
	if err := r.check(req); err != nil {
		return nil, err
	}
	post, err := reg.Store().Posts.UpdatePost(p.Context, id, req)
	if err != nil {
		return nil, err
	}
	reg.Posts.Clear(post.AuthorID)
	return post, nil
}

func (r *resolver) deletePost(p graphql.ResolveParams) (interface{}, error) {
	reg, err := loaders.FromContext(p.Context)
	if err != nil {
		return nil, err
	}
	id, _ := p.Args["id"].(string)
	post, err := reg.Store().Posts.DeletePost(p.Context, id)
	if err != nil {
		return nil, err
	}
	reg.Posts.Clear(post.AuthorID)
	return nil, nil
}

func (r *resolver) createProfile(p graphql.ResolveParams) (interface{}, error) {
	reg, err := loaders.FromContext(p.Context)
	if err != nil {
		return nil, err
	}
	req := decodeCreateProfile(inputArg(p))
	if err := r.check(req); err != nil {
		return nil, err
	}
	profile := &models.Profile{
		UserID:       req.UserID,
		MemberTypeID: req.MemberTypeID,
		IsMale:       req.IsMale,
		YearOfBirth:  req.YearOfBirth,
	}
	if err := reg.Store().Profiles.CreateProfile(p.Context, profile); err != nil {
		return nil, err
	}
	reg.ForgetProfile(profile)
	return profile, nil
}

func (r *resolver) changeProfile(p graphql.ResolveParams) (interface{}, error) {
	reg, err := loaders.FromContext(p.Context)
	if err != nil {
		return nil, err
	}
	id, _ := p.Args["id"].(string)
	req := decodeChangeProfile(inputArg(p))
	if err := r.check(req); err != nil {
		return nil, err
	}
	profile, err := reg.Store().Profiles.UpdateProfile(p.Context, id, req)
	if err != nil {
		return nil, err
	}
	// the previous tier's list may still hold the profile
	reg.Profiles.Clear(profile.UserID)
	reg.ProfilesByMemberType.ClearAll()
	return profile, nil
}

func (r *resolver) deleteProfile(p graphql.ResolveParams) (interface{}, error) {
	reg, err := loaders.FromContext(p.Context)
	if err != nil {
		return nil, err
	}
	id, _ := p.Args["id"].(string)
	profile, err := reg.Store().Profiles.DeleteProfile(p.Context, id)
	if err != nil {
		return nil, err
	}
	reg.ForgetProfile(profile)
	return nil, nil
}

// subscribeTo makes userId a subscriber of authorId and returns the
// subscriber.
func (r *resolver) subscribeTo(p graphql.ResolveParams) (interface{}, error) {
	reg, err := loaders.FromContext(p.Context)
	if err != nil {
		return nil, err
	}
	userID, _ := p.Args["userId"].(string)
	authorID, _ := p.Args["authorId"].(string)
	if userID == authorID {
		return nil, errors.New("cannot subscribe to yourself")
	}
	if err := reg.Store().Subscriptions.CreateSubscription(p.Context, userID, authorID); err != nil {
		return nil, err
	}
	reg.ForgetSubscription(userID, authorID)

	reg.WantUserRelations(userRelations(p.Info))
	user, err := reg.Users.Load(p.Context, userID)()
	if err != nil || user == nil {
		return nil, err
	}
	return user, nil
}

func (r *resolver) unsubscribeFrom(p graphql.ResolveParams) (interface{}, error) {
	reg, err := loaders.FromContext(p.Context)
	if err != nil {
		return nil, err
	}
	userID, _ := p.Args["userId"].(string)
	authorID, _ := p.Args["authorId"].(string)
	if err := reg.Store().Subscriptions.DeleteSubscription(p.Context, userID, authorID); err != nil {
		return nil, err
	}
	reg.ForgetSubscription(userID, authorID)
	return nil, nil
}
