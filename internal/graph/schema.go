package graph

import (
	"github.com/go-playground/validator/v10"
	"github.com/graphql-go/graphql"
	"github.com/pkg/errors"
)

// resolver carries the request-independent dependencies of the field
// resolvers. Everything request-scoped lives in the loaders.Registry
// attached to the execution context.
type resolver struct {
	validate *validator.Validate
}

type objects struct {
	memberType *graphql.Object
	post       *graphql.Object
	profile    *graphql.Object
	user       *graphql.Object
}

// NewSchema builds the gateway schema. validate checks mutation inputs;
// nil means a default validator.
func NewSchema(validate *validator.Validate) (graphql.Schema, error) {
	if validate == nil {
		validate = validator.New()
	}
	r := &resolver{validate: validate}
	o := r.objects()

	schema, err := graphql.NewSchema(graphql.SchemaConfig{
		Query:    r.query(o),
		Mutation: r.mutation(o),
	})
	if err != nil {
		return graphql.Schema{}, errors.Wrap(err, "build schema")
	}
	return schema, nil
}

// objects declares the output types. Fields are thunks because the types
// refer to each other.
func (r *resolver) objects() *objects {
	o := &objects{}

	o.memberType = graphql.NewObject(graphql.ObjectConfig{
		Name: "MemberType",
		Fields: graphql.FieldsThunk(func() graphql.Fields {
			return graphql.Fields{
				"id":                 {Type: graphql.NewNonNull(memberTypeIDEnum)},
				"discount":           {Type: graphql.Float},
				"postsLimitPerMonth": {Type: graphql.Int},
				"profiles":           {Type: graphql.NewList(o.profile), Resolve: r.memberTypeProfiles},
			}
		}),
	})

	o.post = graphql.NewObject(graphql.ObjectConfig{
		Name: "Post",
		Fields: graphql.FieldsThunk(func() graphql.Fields {
			return graphql.Fields{
				"id":       {Type: graphql.NewNonNull(uuidScalar)},
				"title":    {Type: graphql.String},
				"content":  {Type: graphql.String},
				"authorId": {Type: uuidScalar},
				"author":   {Type: o.user, Resolve: r.postAuthor},
			}
		}),
	})

	o.profile = graphql.NewObject(graphql.ObjectConfig{
		Name: "Profile",
		Fields: graphql.FieldsThunk(func() graphql.Fields {
			return graphql.Fields{
				"id":           {Type: graphql.NewNonNull(uuidScalar)},
				"isMale":       {Type: graphql.Boolean},
				"yearOfBirth":  {Type: graphql.Int},
				"userId":       {Type: uuidScalar},
				"memberTypeId": {Type: memberTypeIDEnum},
				"memberType":   {Type: o.memberType, Resolve: r.profileMemberType},
				"user":         {Type: o.user, Resolve: r.profileUser},
			}
		}),
	})

	o.user = graphql.NewObject(graphql.ObjectConfig{
		Name: "User",
		Fields: graphql.FieldsThunk(func() graphql.Fields {
			return graphql.Fields{
				"id":               {Type: graphql.NewNonNull(uuidScalar)},
				"name":             {Type: graphql.String},
				"balance":          {Type: graphql.Float},
				"profile":          {Type: o.profile, Resolve: r.userProfile},
				"posts":            {Type: graphql.NewList(o.post), Resolve: r.userPosts},
				"userSubscribedTo": {Type: graphql.NewList(o.user), Resolve: r.userSubscribedTo},
				"subscribedToUser": {Type: graphql.NewList(o.user), Resolve: r.subscribedToUser},
			}
		}),
	})

	return o
}

var (
	createUserInput = graphql.NewInputObject(graphql.InputObjectConfig{
		Name: "CreateUserInput",
		Fields: graphql.InputObjectConfigFieldMap{
			"name":    {Type: graphql.NewNonNull(graphql.String)},
			"balance": {Type: graphql.NewNonNull(graphql.Float)},
		},
	})
	changeUserInput = graphql.NewInputObject(graphql.InputObjectConfig{
		Name: "ChangeUserInput",
		Fields: graphql.InputObjectConfigFieldMap{
			"name":    {Type: graphql.String},
			"balance": {Type: graphql.Float},
		},
	})
	createPostInput = graphql.NewInputObject(graphql.InputObjectConfig{
		Name: "CreatePostInput",
		Fields: graphql.InputObjectConfigFieldMap{
			"authorId": {Type: graphql.NewNonNull(uuidScalar)},
			"title":    {Type: graphql.NewNonNull(graphql.String)},
			"content":  {Type: graphql.NewNonNull(graphql.String)},
		},
	})
	changePostInput = graphql.NewInputObject(graphql.InputObjectConfig{
		Name: "ChangePostInput",
		Fields: graphql.InputObjectConfigFieldMap{
			"title":   {Type: graphql.String},
			"content": {Type: graphql.String},
		},
	})
	createProfileInput = graphql.NewInputObject(graphql.InputObjectConfig{
		Name: "CreateProfileInput",
		Fields: graphql.InputObjectConfigFieldMap{
			"userId":       {Type: graphql.NewNonNull(uuidScalar)},
			"memberTypeId": {Type: graphql.NewNonNull(memberTypeIDEnum)},
			"isMale":       {Type: graphql.NewNonNull(graphql.Boolean)},
			"yearOfBirth":  {Type: graphql.NewNonNull(graphql.Int)},
		},
	})
	changeProfileInput = graphql.NewInputObject(graphql.InputObjectConfig{
		Name: "ChangeProfileInput",
		Fields: graphql.InputObjectConfigFieldMap{
			"isMale":       {Type: graphql.Boolean},
			"yearOfBirth":  {Type: graphql.Int},
			"memberTypeId": {Type: memberTypeIDEnum},
		},
	})
)
