package graph

import (
	"fmt"
	"strings"

	"github.com/graphql-go/graphql/gqlerrors"
	"github.com/graphql-go/graphql/language/ast"
)

// DefaultMaxDepth bounds the nesting of selection sets in one operation.
const DefaultMaxDepth = 5

// CheckDepth returns one error per operation in doc whose depth exceeds
// limit. Root fields are at depth 0, so "{ users { id } }" has depth 1.
// Introspection fields do not count.
func CheckDepth(doc *ast.Document, limit int) []gqlerrors.FormattedError {
	fragments := map[string]*ast.FragmentDefinition{}
	var operations []*ast.OperationDefinition
	for _, def := range doc.Definitions {
		switch def := def.(type) {
		case *ast.FragmentDefinition:
			fragments[def.Name.Value] = def
		case *ast.OperationDefinition:
			operations = append(operations, def)
		}
	}

	var errs []gqlerrors.FormattedError
	for _, op := range operations {
		if selectionDepth(op.SelectionSet, fragments, map[string]bool{}) <= limit {
			continue
		}
		name := op.Operation
		if op.Name != nil {
			name = fmt.Sprintf("'%s'", op.Name.Value)
		}
		errs = append(errs, gqlerrors.NewFormattedError(
			fmt.Sprintf("%s exceeds maximum operation depth of %d", name, limit)))
	}
	return errs
}

// selectionDepth follows fragment spreads; visiting guards against
// fragment cycles, which validation reports separately.
func selectionDepth(set *ast.SelectionSet, fragments map[string]*ast.FragmentDefinition, visiting map[string]bool) int {
	if set == nil {
		return 0
	}
	depth := 0
	for _, selection := range set.Selections {
		d := 0
		switch sel := selection.(type) {
		case *ast.Field:
			if strings.HasPrefix(sel.Name.Value, "__") {
				continue
			}
			if sel.SelectionSet != nil && len(sel.SelectionSet.Selections) > 0 {
				d = 1 + selectionDepth(sel.SelectionSet, fragments, visiting)
			}
		case *ast.InlineFragment:
			d = selectionDepth(sel.SelectionSet, fragments, visiting)
		case *ast.FragmentSpread:
			name := sel.Name.Value
			frag, ok := fragments[name]
			if !ok || visiting[name] {
				continue
			}
			visiting[name] = true
			d = selectionDepth(frag.SelectionSet, fragments, visiting)
			delete(visiting, name)
		}
		if d > depth {
			depth = d
		}
	}
	return depth
}
