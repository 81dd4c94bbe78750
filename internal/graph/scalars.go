package graph

import (
	"github.com/anonto42/nano-midea/gateway/internal/models"
	"github.com/google/uuid"
	"github.com/graphql-go/graphql"
	"github.com/graphql-go/graphql/language/ast"
)

// uuidScalar accepts canonical and braced/urn UUID strings and hands
// resolvers the canonical lowercase form.
var uuidScalar = graphql.NewScalar(graphql.ScalarConfig{
	Name:        "UUID",
	Description: "An RFC 4122 UUID.",
	Serialize: func(value interface{}) interface{} {
		switch v := value.(type) {
		case string:
			return v
		case *string:
			if v == nil {
				return nil
			}
			return *v
		case uuid.UUID:
			return v.String()
		}
		return nil
	},
	ParseValue: func(value interface{}) interface{} {
		s, ok := value.(string)
		if !ok {
			return nil
		}
		return parseUUID(s)
	},
	ParseLiteral: func(valueAST ast.Value) interface{} {
		if v, ok := valueAST.(*ast.StringValue); ok {
			return parseUUID(v.Value)
		}
		return nil
	},
})

func parseUUID(s string) interface{} {
	id, err := uuid.Parse(s)
	if err != nil {
		return nil
	}
	return id.String()
}

var memberTypeIDEnum = newMemberTypeIDEnum()

func newMemberTypeIDEnum() *graphql.Enum {
	values := graphql.EnumValueConfigMap{}
	for _, id := range models.MemberTypeIDs {
		values[string(id)] = &graphql.EnumValueConfig{Value: id}
	}
	return graphql.NewEnum(graphql.EnumConfig{
		Name:   "MemberTypeId",
		Values: values,
	})
}
