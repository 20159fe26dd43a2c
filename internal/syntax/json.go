package syntax

import (
	"encoding/json"
	"io"
)

// FprintJSON writes a JSON representation of the AST to w.
func FprintJSON(w io.Writer, node Node) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(toJSON(node))
}

func toJSON(node Node) interface{} {
	if node == nil {
		return nil
	}

	switch n := node.(type) {
	case *Program:
		return map[string]interface{}{
			"type":  "Program",
			"pos":   n.pos.String(),
			"stmts": mapSlice(n.Stmts, stmtJSON),
		}

	case *DeclStmt:
		m := map[string]interface{}{
			"type":     "DeclStmt",
			"pos":      n.pos.String(),
			"name":     n.Name.Value,
			"declType": n.Type.String(),
		}
		if n.Value != nil {
			m["value"] = toJSON(n.Value)
		}
		return m

	case *RoutineDecl:
		return map[string]interface{}{
			"type": "RoutineDecl",
			"pos":  n.pos.String(),
			"name": n.Name.Value,
			"body": mapSlice(n.Body, stmtJSON),
		}

	case *CallStmt:
		return map[string]interface{}{
			"type":   "CallStmt",
			"pos":    n.pos.String(),
			"name":   n.Name.Value,
			"marked": n.Marked,
		}

	case *OutStmt:
		return map[string]interface{}{
			"type": "OutStmt",
			"pos":  n.pos.String(),
			"x":    toJSON(n.X),
		}

	case *Name:
		return map[string]interface{}{
			"type":  "Name",
			"pos":   n.pos.String(),
			"value": n.Value,
		}

	case *BasicLit:
		return map[string]interface{}{
			"type":  "BasicLit",
			"pos":   n.pos.String(),
			"kind":  n.Kind.String(),
			"value": n.Value,
		}

	case *ParenExpr:
		return map[string]interface{}{
			"type": "ParenExpr",
			"pos":  n.pos.String(),
			"x":    toJSON(n.X),
		}

	case *Interpolation:
		return map[string]interface{}{
			"type":      "Interpolation",
			"pos":       n.pos.String(),
			"fragments": mapSlice(n.Fragments, func(f Fragment) interface{} { return toJSON(f) }),
		}

	case *LitFragment:
		return map[string]interface{}{
			"type": "Text",
			"pos":  n.pos.String(),
			"text": n.Text,
		}

	case *RefFragment:
		return map[string]interface{}{
			"type": "Ref",
			"pos":  n.pos.String(),
			"name": n.Name.Value,
		}

	case *Operation:
		return map[string]interface{}{
			"type": "Operation",
			"pos":  n.pos.String(),
			"op":   n.Op.String(),
			"x":    toJSON(n.X),
			"y":    toJSON(n.Y),
		}

	case *RandomExpr:
		return map[string]interface{}{
			"type":    "RandomExpr",
			"pos":     n.pos.String(),
			"min":     toJSON(n.Min),
			"max":     toJSON(n.Max),
			"charset": toJSON(n.Charset),
		}

	case *UnaryExpr:
		return map[string]interface{}{
			"type": "UnaryExpr",
			"pos":  n.pos.String(),
			"op":   n.Op.String(),
			"x":    toJSON(n.X),
		}

	case *ReplaceExpr:
		return map[string]interface{}{
			"type":   "ReplaceExpr",
			"pos":    n.pos.String(),
			"x":      toJSON(n.X),
			"target": toJSON(n.Target),
			"with":   toJSON(n.With),
		}

	case *CipherExpr:
		return map[string]interface{}{
			"type": "CipherExpr",
			"pos":  n.pos.String(),
			"op":   n.Op.String(),
			"x":    toJSON(n.X),
			"key":  toJSON(n.Key),
		}

	default:
		return map[string]interface{}{
			"type": "Unknown",
		}
	}
}

func stmtJSON(s Stmt) interface{} { return toJSON(s) }

func mapSlice[T any](s []T, f func(T) interface{}) []interface{} {
	result := make([]interface{}, len(s))
	for i, v := range s {
		result[i] = f(v)
	}
	return result
}
