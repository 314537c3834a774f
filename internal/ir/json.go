package ir

import "encoding/json"

// Dump renders a node tree as indented JSON, keyed by node variant tag,
// for the `polytrans parse --dump-ir` debug command. It is a one-way
// debugging view, not a serialization format the parsers read back in.
func Dump(n Node) ([]byte, error) {
	return json.MarshalIndent(wrap(n), "", "  ")
}

type wrapped struct {
	Kind string `json:"kind"`
	Node any    `json:"node"`
}

func wrap(n Node) any {
	if n == nil {
		return nil
	}
	switch v := n.(type) {
	case *Program:
		return wrapped{"Program", map[string]any{
			"imports": v.Imports,
			"body":    wrapStatements(v.Body),
		}}
	case *Comment:
		return wrapped{"Comment", v}
	case *Variable:
		return wrapped{"Variable", map[string]any{
			"name": v.Name, "type": v.Type, "const": v.Const,
			"initializer": wrap(v.Initializer),
		}}
	case *Assignment:
		return wrapped{"Assignment", map[string]any{
			"target": v.Target, "op": v.Op, "value": wrap(v.Value),
		}}
	case *Function:
		return wrapped{"Function", map[string]any{
			"name": v.Name, "returnType": v.ReturnType,
			"params": wrapExprs(paramsAsExprs(v.Params)),
			"body":   wrapStatements(v.Body),
		}}
	case *Class:
		return wrapped{"Class", map[string]any{
			"name":            v.Name,
			"members":         wrapExprs(paramsAsExprs(v.Members)),
			"methods":         wrapFuncs(v.Methods),
			"constructor":     wrapFunc(v.Constructor),
			"entryPoint":      wrapFunc(v.EntryPoint),
			"staticMethods":   wrapFuncs(v.StaticMethods),
			"nonTrivial":      v.IsNonTrivialClass(),
			"entryPointShell": v.IsEntryPointShell(),
		}}
	case *If:
		return wrapped{"If", map[string]any{
			"condition": wrap(v.Condition),
			"then":      wrapStatements(v.Then),
			"else":      wrapStatements(v.Else),
			"elseIf":    wrap(v.ElseIf),
		}}
	case *For:
		return wrapped{"For", map[string]any{
			"init": wrap(v.Init), "condition": wrap(v.Condition), "update": wrap(v.Update),
			"hasRange": v.HasRange, "iterator": v.Iterator,
			"rangeStart": wrap(v.RangeStart), "rangeEnd": wrap(v.RangeEnd), "rangeStep": wrap(v.RangeStep),
			"body": wrapStatements(v.Body),
		}}
	case *While:
		return wrapped{"While", map[string]any{"condition": wrap(v.Condition), "body": wrapStatements(v.Body)}}
	case *Switch:
		cases := make([]map[string]any, len(v.Cases))
		for i, c := range v.Cases {
			cases[i] = map[string]any{"value": wrap(c.Value), "body": wrapStatements(c.Body)}
		}
		return wrapped{"Switch", map[string]any{
			"discriminant": wrap(v.Discriminant), "cases": cases, "default": wrapStatements(v.Default),
		}}
	case *Break:
		return wrapped{"Break", struct{}{}}
	case *Return:
		return wrapped{"Return", map[string]any{"value": wrap(v.Value)}}
	case *Print:
		return wrapped{"Print", map[string]any{"args": wrapExprs(v.Args), "newline": v.Newline}}
	case *Input:
		return wrapped{"Input", v}
	case *Call:
		return wrapped{"Call", map[string]any{
			"callee": v.Callee, "args": wrapExprs(v.Args), "isMethod": v.IsMethod, "receiver": v.Receiver,
		}}
	case *BinaryOp:
		return wrapped{"BinaryOp", map[string]any{"op": v.Operator, "left": wrap(v.Left), "right": wrap(v.Right)}}
	case *UnaryOp:
		return wrapped{"UnaryOp", map[string]any{"op": v.Operator, "operand": wrap(v.Operand)}}
	case *Literal:
		return wrapped{"Literal", map[string]any{"type": v.Type, "value": v.Value}}
	case *Identifier:
		return wrapped{"Identifier", map[string]any{"name": v.Name}}
	case *ExprStatement:
		return wrapped{"ExprStatement", wrap(v.X)}
	default:
		return wrapped{"Unknown", nil}
	}
}

func wrapStatements(stmts []Statement) []any {
	out := make([]any, len(stmts))
	for i, s := range stmts {
		out[i] = wrap(s)
	}
	return out
}

func wrapExprs(exprs []Expression) []any {
	out := make([]any, len(exprs))
	for i, e := range exprs {
		out[i] = wrap(e)
	}
	return out
}

func wrapFuncs(fns []*Function) []any {
	out := make([]any, len(fns))
	for i, f := range fns {
		out[i] = wrapFunc(f)
	}
	return out
}

func wrapFunc(f *Function) any {
	if f == nil {
		return nil
	}
	return wrap(f)
}

func paramsAsExprs(vars []*Variable) []Expression {
	out := make([]Expression, len(vars))
	for i, v := range vars {
		out[i] = v
	}
	return out
}
