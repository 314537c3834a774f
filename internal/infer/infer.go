// Package infer implements the local value-propagation type inference
// the PY front-end performs at declaration time. It is
// deliberately narrow — it only looks at a value
// expression's own shape, never at later reassignment or control flow.
package infer

import "github.com/cwbudde/polytrans/internal/ir"

// KnownCallTypes maps the tiny set of builtin conversion callees the
// common subset allows to their result type.
var KnownCallTypes = map[string]ir.DataType{
	"int":   ir.Int,
	"float": ir.Float,
	"str":   ir.String,
}

// OfExpression infers the data type of an expression using only locally
// available information: literal types, the result type of a known
// builtin Call, or a BinaryOp whose operands are themselves inferable.
// Comparison BinaryOps have result type bool; mixed int/float
// arithmetic yields float.
func OfExpression(e ir.Expression) ir.DataType {
	switch v := e.(type) {
	case *ir.Literal:
		return v.Type
	case *ir.Call:
		if t, ok := KnownCallTypes[v.Callee]; ok {
			return t
		}
		return ir.Auto
	case *ir.Input:
		if v.TargetType != "" {
			return v.TargetType
		}
		return ir.Auto
	case *ir.BinaryOp:
		return OfBinaryOp(v.Operator, OfExpression(v.Left), OfExpression(v.Right))
	case *ir.Identifier:
		return ir.Auto
	default:
		return ir.Auto
	}
}

// OfBinaryOp applies the result-type rules for a binary operator
// given its operands' inferred types.
func OfBinaryOp(op string, left, right ir.DataType) ir.DataType {
	switch op {
	case "==", "!=", "<", ">", "<=", ">=", "&&", "||":
		return ir.Bool
	case "+":
		if left == ir.String || right == ir.String {
			return ir.String
		}
		return numericResult(left, right)
	case "-", "*", "/":
		return numericResult(left, right)
	default:
		return ir.Auto
	}
}

func numericResult(left, right ir.DataType) ir.DataType {
	if left == ir.Float || right == ir.Float || left == ir.Double || right == ir.Double {
		return ir.Float
	}
	if left == ir.Auto || right == ir.Auto {
		return ir.Auto
	}
	return ir.Int
}

// AutoDefault resolves an `auto` tag to a concrete type by fixed policy
// per emission position: function-parameter
// default is string, local-variable default is int, struct/class-member
// default is the language's natural zero value for that slot — callers
// pass the member's own declared type through unchanged, so this is only
// consulted when the declared type is itself `auto`.
type Position int

const (
	ParamPosition Position = iota
	LocalPosition
	MemberPosition
)

func AutoDefault(pos Position) ir.DataType {
	switch pos {
	case ParamPosition:
		return ir.String
	case MemberPosition:
		return ir.Int
	default:
		return ir.Int
	}
}

// ZeroValueLiteral returns the natural default value for t, used when an
// emitter must materialize a class member's implicit initializer: a
// constructor initializes each member to its data type's default value
// before running the constructor body.
func ZeroValueLiteral(t ir.DataType) *ir.Literal {
	switch t {
	case ir.Int:
		return &ir.Literal{Type: ir.Int, Value: float64(0)}
	case ir.Float, ir.Double:
		return &ir.Literal{Type: t, Value: float64(0)}
	case ir.Bool:
		return &ir.Literal{Type: ir.Bool, Value: false}
	case ir.String:
		return &ir.Literal{Type: ir.String, Value: ""}
	case ir.Char:
		return &ir.Literal{Type: ir.Char, Value: "\x00"}
	default:
		return &ir.Literal{Type: ir.Int, Value: float64(0)}
	}
}
