package graph

import (
	"github.com/anonto42/nano-midea/gateway/internal/repositories"
	"github.com/graphql-go/graphql"
	"github.com/graphql-go/graphql/language/ast"
)

// selectedFields returns the names of the sub-fields requested under the
// field being resolved. Inline fragments and fragment spreads are
// expanded; directives are ignored, so @skip can only over-fetch.
func selectedFields(info graphql.ResolveInfo) map[string]bool {
	out := map[string]bool{}
	seen := map[string]bool{}
	for _, field := range info.FieldASTs {
		collectFields(field.SelectionSet, info.Fragments, out, seen)
	}
	return out
}

func collectFields(set *ast.SelectionSet, fragments map[string]ast.Definition, out, seen map[string]bool) {
	if set == nil {
		return
	}
	for _, selection := range set.Selections {
		switch sel := selection.(type) {
		case *ast.Field:
			out[sel.Name.Value] = true
		case *ast.InlineFragment:
			collectFields(sel.SelectionSet, fragments, out, seen)
		case *ast.FragmentSpread:
			name := sel.Name.Value
			if seen[name] {
				continue
			}
			seen[name] = true
			if def, ok := fragments[name].(*ast.FragmentDefinition); ok {
				collectFields(def.SelectionSet, fragments, out, seen)
			}
		}
	}
}

// userRelations reports which subscription edges the selection under a
// User-typed field needs.
func userRelations(info graphql.ResolveInfo) repositories.UserRelations {
	fields := selectedFields(info)
	return repositories.UserRelations{
		SubscribedTo: fields["userSubscribedTo"],
		Subscribers:  fields["subscribedToUser"],
	}
}
