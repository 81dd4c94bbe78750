package graph

import (
	"github.com/anonto42/nano-midea/gateway/internal/loaders"
	"github.com/anonto42/nano-midea/gateway/internal/models"
	"github.com/anonto42/nano-midea/gateway/internal/repositories"
	"github.com/graphql-go/graphql"
	"github.com/pkg/errors"
)

var idArg = graphql.FieldConfigArgument{
	"id": {Type: graphql.NewNonNull(uuidScalar)},
}

func (r *resolver) query(o *objects) *graphql.Object {
	return graphql.NewObject(graphql.ObjectConfig{
		Name: "RootQueryType",
		Fields: graphql.Fields{
			"memberTypes": {Type: graphql.NewList(o.memberType), Resolve: r.memberTypes},
			"memberType": {
				Type: o.memberType,
				Args: graphql.FieldConfigArgument{
					"id": {Type: graphql.NewNonNull(memberTypeIDEnum)},
				},
				Resolve: r.memberType,
			},
			"posts":    {Type: graphql.NewList(o.post), Resolve: r.posts},
			"post":     {Type: o.post, Args: idArg, Resolve: r.post},
			"users":    {Type: graphql.NewList(o.user), Resolve: r.users},
			"user":     {Type: o.user, Args: idArg, Resolve: r.user},
			"profiles": {Type: graphql.NewList(o.profile), Resolve: r.profiles},
			"profile":  {Type: o.profile, Args: idArg, Resolve: r.profile},
		},
	})
}

// memberTypes primes the member type loader, so Profile.memberType under
// this field never queries again.
func (r *resolver) memberTypes(p graphql.ResolveParams) (interface{}, error) {
	reg, err := loaders.FromContext(p.Context)
	if err != nil {
		return nil, err
	}
	types, err := reg.Store().MemberTypes.GetMemberTypes(p.Context)
	if err != nil {
		return nil, err
	}
	for _, mt := range types {
		reg.MemberTypes.Prime(mt.ID, mt)
	}
	return types, nil
}

func (r *resolver) memberType(p graphql.ResolveParams) (interface{}, error) {
	reg, err := loaders.FromContext(p.Context)
	if err != nil {
		return nil, err
	}
	id, _ := p.Args["id"].(models.MemberTypeID)
	return deferredPtr(reg.MemberTypes.Load(p.Context, id)), nil
}

func (r *resolver) posts(p graphql.ResolveParams) (interface{}, error) {
	reg, err := loaders.FromContext(p.Context)
	if err != nil {
		return nil, err
	}
	return reg.Store().Posts.GetPosts(p.Context)
}

func (r *resolver) post(p graphql.ResolveParams) (interface{}, error) {
	reg, err := loaders.FromContext(p.Context)
	if err != nil {
		return nil, err
	}
	id, _ := p.Args["id"].(string)
	post, err := reg.Store().Posts.GetPostByID(p.Context, id)
	if errors.Is(err, repositories.ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return post, nil
}

// users fetches every user in one query, joining only the subscription
// edges the selection asks for, and primes the user loader with the
// result. Nested subscription lists then resolve from memory.
func (r *resolver) users(p graphql.ResolveParams) (interface{}, error) {
	reg, err := loaders.FromContext(p.Context)
	if err != nil {
		return nil, err
	}
	rel := userRelations(p.Info)
	reg.WantUserRelations(rel)

	users, err := reg.Store().Users.GetUsers(p.Context, rel)
	if err != nil {
		return nil, err
	}
	for _, u := range users {
		reg.Users.Prime(u.ID, u)
	}
	return users, nil
}

func (r *resolver) user(p graphql.ResolveParams) (interface{}, error) {
	id, _ := p.Args["id"].(string)
	return loadUser(p, id)
}

// profiles primes the by-user profile loader, so User.profile under
// Profile.user resolves from memory.
func (r *resolver) profiles(p graphql.ResolveParams) (interface{}, error) {
	reg, err := loaders.FromContext(p.Context)
	if err != nil {
		return nil, err
	}
	profiles, err := reg.Store().Profiles.GetProfiles(p.Context)
	if err != nil {
		return nil, err
	}
	for _, profile := range profiles {
		reg.Profiles.Prime(profile.UserID, profile)
	}
	return profiles, nil
}

func (r *resolver) profile(p graphql.ResolveParams) (interface{}, error) {
	reg, err := loaders.FromContext(p.Context)
	if err != nil {
		return nil, err
	}
	id, _ := p.Args["id"].(string)
	profile, err := reg.Store().Profiles.GetProfileByID(p.Context, id)
	if errors.Is(err, repositories.ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return profile, nil
}
