package tag

import (
	"fmt"

	"github.com/expr-lang/expr/ast"
	exprparser "github.com/expr-lang/expr/parser"
)

// literalIdent maps the bare identifiers accepted as literals.
var literalIdent = map[string]any{
	"True":  true,
	"False": false,
	"None":  nil,
	"null":  nil,
}

// ParseLiteral reads s as a data literal.
//
// Accepted forms are integers and floats (with an optional sign), quoted
// strings, true/false/True/False, nil/None/null, and [...] or {...} literals
// built only from those. Map keys are converted to strings. Anything else,
// including identifiers and operator expressions, is rejected.
func ParseLiteral(s string) (any, bool) {
	tree, err := exprparser.Parse(s)
	if err != nil || tree == nil {
		return nil, false
	}

	return literalValue(tree.Node)
}

func literalValue(node ast.Node) (any, bool) {
	switch n := node.(type) {
	case *ast.NilNode:
		return nil, true
	case *ast.BoolNode:
		return n.Value, true
	case *ast.IntegerNode:
		return n.Value, true
	case *ast.FloatNode:
		return n.Value, true
	case *ast.StringNode:
		return n.Value, true
	case *ast.ConstantNode:
		return n.Value, true
	case *ast.IdentifierNode:
		v, ok := literalIdent[n.Value]

		return v, ok
	case *ast.UnaryNode:
		return signedLiteral(n)
	case *ast.ArrayNode:
		list := make([]any, 0, len(n.Nodes))

		for _, elem := range n.Nodes {
			v, ok := literalValue(elem)
			if !ok {
				return nil, false
			}

			list = append(list, v)
		}

		return list, true
	case *ast.MapNode:
		m := make(map[string]any, len(n.Pairs))

		for _, p := range n.Pairs {
			pair, ok := p.(*ast.PairNode)
			if !ok {
				return nil, false
			}

			k, ok := literalValue(pair.Key)
			if !ok {
				return nil, false
			}

			v, ok := literalValue(pair.Value)
			if !ok {
				return nil, false
			}

			m[fmt.Sprint(k)] = v
		}

		return m, true
	}

	return nil, false
}

func signedLiteral(n *ast.UnaryNode) (any, bool) {
	if n.Operator != "-" && n.Operator != "+" {
		return nil, false
	}

	neg := n.Operator == "-"

	switch v := n.Node.(type) {
	case *ast.IntegerNode:
		if neg {
			return -v.Value, true
		}

		return v.Value, true
	case *ast.FloatNode:
		if neg {
			return -v.Value, true
		}

		return v.Value, true
	}

	return nil, false
}
