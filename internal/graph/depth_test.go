package graph

import (
	"testing"

	"github.com/graphql-go/graphql/language/parser"
	"github.com/stretchr/testify/require"
)

func depthErrors(t *testing.T, query string, max int) []string {
	t.Helper()
	doc, err := parser.Parse(parser.ParseParams{Source: query})
	require.NoError(t, err)
	var msgs []string
	for _, e := range CheckDepth(doc, max) {
		msgs = append(msgs, e.Message)
	}
	return msgs
}

func TestCheckDepth(t *testing.T) {
	tests := []struct {
		name  string
		query string
		want  []string
	}{
		{
			name:  "root leaf",
			query: `{ memberTypes { id } }`,
		},
		{
			name:  "depth five",
			query: `{ users { posts { author { profile { memberType { id } } } } } }`,
		},
		{
			name:  "depth six",
			query: `query Deep { users { posts { author { profile { memberType { profiles { id } } } } } } }`,
			want:  []string{"'Deep' exceeds maximum operation depth of 5"},
		},
		{
			name:  "anonymous operation",
			query: `{ users { posts { author { profile { memberType { profiles { id } } } } } } }`,
			want:  []string{"query exceeds maximum operation depth of 5"},
		},
		{
			name: "named fragment expands",
			query: `query Deep { users { ...Chain } }
				fragment Chain on User { posts { author { profile { memberType { profiles { id } } } } } }`,
			want: []string{"'Deep' exceeds maximum operation depth of 5"},
		},
		{
			name:  "inline fragment adds no level",
			query: `{ users { ... on User { posts { author { profile { memberType { id } } } } } } }`,
		},
		{
			name:  "introspection ignored",
			query: `{ __schema { types { fields { type { ofType { ofType { ofType { name } } } } } } } }`,
		},
		{
			name: "fragment cycle terminates",
			query: `{ users { ...A } }
				fragment A on User { ...B }
				fragment B on User { id ...A }`,
		},
		{
			name: "one error per operation",
			query: `query Fine { users { id } }
				mutation Bad { subscribeTo(userId: "x", authorId: "y") { userSubscribedTo { userSubscribedTo { userSubscribedTo { userSubscribedTo { userSubscribedTo { id } } } } } } }`,
			want: []string{"'Bad' exceeds maximum operation depth of 5"},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.want, depthErrors(t, tt.query, DefaultMaxDepth))
		})
	}
}

func TestCheckDepthCustomLimit(t *testing.T) {
	require.Empty(t, depthErrors(t, `{ users { id } }`, 1))
	require.Len(t, depthErrors(t, `{ users { posts { id } } }`, 1), 1)
}
