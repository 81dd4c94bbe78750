package graph

import (
	"github.com/anonto42/nano-midea/gateway/internal/models"
	"github.com/graphql-go/graphql"
	"github.com/pkg/errors"
)

// Input objects arrive as maps of already coerced values: strings, float64
// for Float, int for Int, bool, and models.MemberTypeID for the enum.
// Absent optional fields are missing from the map.

func inputArg(p graphql.ResolveParams) map[string]interface{} {
	dto, _ := p.Args["dto"].(map[string]interface{})
	return dto
}

func field[T any](m map[string]interface{}, key string) (T, bool) {
	v, ok := m[key].(T)
	return v, ok
}

func optional[T any](m map[string]interface{}, key string) *T {
	v, ok := field[T](m, key)
	if !ok {
		return nil
	}
	return &v
}

func decodeCreateUser(m map[string]interface{}) models.CreateUserRequest {
	name, _ := field[string](m, "name")
	balance, _ := field[float64](m, "balance")
	return models.CreateUserRequest{Name: name, Balance: balance}
}

func decodeChangeUser(m map[string]interface{}) models.ChangeUserRequest {
	return models.ChangeUserRequest{
		Name:    optional[string](m, "name"),
		Balance: optional[float64](m, "balance"),
	}
}

func decodeCreatePost(m map[string]interface{}) models.CreatePostRequest {
	authorID, _ := field[string](m, "authorId")
	title, _ := field[string](m, "title")
	content, _ := field[string](m, "content")
	return models.CreatePostRequest{AuthorID: authorID, Title: title, Content: content}
}

func decodeChangePost(m map[string]interface{}) models.ChangePostRequest {
	return models.ChangePostRequest{
		Title:   optional[string](m, "title"),
		Content: optional[string](m, "content"),
	}
}

func decodeCreateProfile(m map[string]interface{}) models.CreateProfileRequest {
	userID, _ := field[string](m, "userId")
	memberTypeID, _ := field[models.MemberTypeID](m, "memberTypeId")
	isMale, _ := field[bool](m, "isMale")
	yearOfBirth, _ := field[int](m, "yearOfBirth")
	return models.CreateProfileRequest{
		UserID:       userID,
		MemberTypeID: memberTypeID,
		IsMale:       isMale,
		YearOfBirth:  yearOfBirth,
	}
}

func decodeChangeProfile(m map[string]interface{}) models.ChangeProfileRequest {
	return models.ChangeProfileRequest{
		IsMale:       optional[bool](m, "isMale"),
		YearOfBirth:  optional[int](m, "yearOfBirth"),
		MemberTypeID: optional[models.MemberTypeID](m, "memberTypeId"),
	}
}

// check runs the DTO validation rules and reports the first failure.
func (r *resolver) check(dto interface{}) error {
	if err := r.validate.Struct(dto); err != nil {
		return errors.Wrap(err, "invalid input")
	}
	return nil
}
