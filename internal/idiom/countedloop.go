package idiom

import "github.com/cwbudde/polytrans/internal/ir"

// RecognizeCountedLoop implements the classic-loop-to-range
// normalization:
//
//	for (int i = A; i <= B; i++)  ->  start=A, end=B+1, step=1
//	for (int i = A; i < B; i += S) -> start=A, end=B,   step=S
//
// It returns ok=false if init/cond/update don't match either shape,
// leaving the classic For fields as the only representation — callers
// must keep the classic fields regardless of this function's result,
// since emission of a non-range-like classic loop still needs them.
func RecognizeCountedLoop(init ir.Statement, cond ir.Expression, update ir.Statement) (iterator string, start, end, step ir.Expression, ok bool) {
	v, isVar := init.(*ir.Variable)
	if !isVar || v.Initializer == nil {
		return "", nil, nil, nil, false
	}
	iterator = v.Name
	start = v.Initializer

	bin, isBin := cond.(*ir.BinaryOp)
	if !isBin {
		return "", nil, nil, nil, false
	}
	condIdent, isIdent := bin.Left.(*ir.Identifier)
	if !isIdent || condIdent.Name != iterator {
		return "", nil, nil, nil, false
	}

	switch bin.Operator {
	case "<":
		end = bin.Right
	case "<=":
		end = &ir.BinaryOp{Operator: "+", Left: bin.Right, Right: &ir.Literal{Type: ir.Int, Value: float64(1)}}
	default:
		return "", nil, nil, nil, false
	}

	step = &ir.Literal{Type: ir.Int, Value: float64(1)}

	var updateExpr ir.Expression
	switch u := update.(type) {
	case *ir.ExprStatement:
		updateExpr = u.X
	case *ir.Assignment:
		if u.Target != iterator || u.Op != "+=" {
			return "", nil, nil, nil, false
		}
		step = u.Value
		return iterator, start, end, step, true
	default:
		return "", nil, nil, nil, false
	}

	unary, isUnary := updateExpr.(*ir.UnaryOp)
	if !isUnary {
		return "", nil, nil, nil, false
	}
	if unary.Operator != "++" && unary.Operator != "++_post" {
		return "", nil, nil, nil, false
	}
	operand, isIdent := unary.Operand.(*ir.Identifier)
	if !isIdent || operand.Name != iterator {
		return "", nil, nil, nil, false
	}

	return iterator, start, end, step, true
}

// CollapsedRangeArgCount decides how many
// arguments a scripting-language `range(...)` call needs: one when
// start==0 and step==1, two when only step==1, three otherwise.
func CollapsedRangeArgCount(start, step ir.Expression) int {
	if isZeroLiteral(start) && isOneLiteral(step) {
		return 1
	}
	if isOneLiteral(step) {
		return 2
	}
	return 3
}

func isZeroLiteral(e ir.Expression) bool {
	lit, ok := e.(*ir.Literal)
	if !ok {
		return false
	}
	f, ok := lit.Value.(float64)
	return ok && f == 0
}

func isOneLiteral(e ir.Expression) bool {
	lit, ok := e.(*ir.Literal)
	if !ok {
		return false
	}
	f, ok := lit.Value.(float64)
	return ok && f == 1
}
