// File: encode.go
// Title: Syntax Tree Map Encoding
// Description: Converts nodes into nested maps of strings, float64, bool,
//              slices and maps. The result marshals directly to JSON or
//              YAML and converts to protobuf Struct values without custom
//              marshalers.
// Author: msto63
// Version: v0.1.0
// Created: 2025-06-02
// Modified: 2025-06-02
//
// Change History:
// - 2025-06-02 v0.1.0: Initial map encoding

package ast

// Node kind names used in encoded maps
const (
	KindNumber         = "number"
	KindString         = "string"
	KindBoolean        = "boolean"
	KindVariable       = "variable"
	KindBinary         = "binary"
	KindCall           = "call"
	KindArgument       = "argument"
	KindAssignment     = "assignment"
	KindInitialization = "initialization"
)

// ToMap encodes n and its children. A nil node encodes to nil.
func ToMap(n Node) map[string]interface{} {
	if n == nil {
		return nil
	}
	m, _ := n.Accept(mapVisitor{}).(map[string]interface{})
	return m
}

type mapVisitor struct{}

func positioned(kind string, pos Position) map[string]interface{} {
	return map[string]interface{}{
		"kind":   kind,
		"line":   float64(pos.Line),
		"column": float64(pos.Column),
	}
}

func exprValue(e Expr) interface{} {
	if e == nil {
		return nil
	}
	return ToMap(e)
}

func (mapVisitor) VisitNumber(expr *NumberExpr) interface{} {
	m := positioned(KindNumber, expr.Pos)
	m["value"] = expr.Value
	return m
}

func (mapVisitor) VisitString(expr *StringExpr) interface{} {
	m := positioned(KindString, expr.Pos)
	m["value"] = expr.Value
	return m
}

func (mapVisitor) VisitBoolean(expr *BooleanExpr) interface{} {
	m := positioned(KindBoolean, expr.Pos)
	m["value"] = expr.Value
	return m
}

func (mapVisitor) VisitVariable(expr *VariableExpr) interface{} {
	m := positioned(KindVariable, expr.Pos)
	m["name"] = expr.Name
	return m
}

func (mapVisitor) VisitBinary(expr *BinaryExpr) interface{} {
	m := positioned(KindBinary, expr.Pos)
	m["op"] = expr.Op
	m["left"] = exprValue(expr.Left)
	m["right"] = exprValue(expr.Right)
	return m
}

func (v mapVisitor) VisitCall(expr *CallExpr) interface{} {
	m := positioned(KindCall, expr.Pos)
	m["callee"] = expr.Callee
	args := make([]interface{}, len(expr.Args))
	for i, arg := range expr.Args {
		args[i] = v.VisitArgument(arg)
	}
	m["args"] = args
	return m
}

func (mapVisitor) VisitArgument(arg *ArgumentPassing) interface{} {
	m := positioned(KindArgument, arg.Pos)
	m["name"] = arg.Name
	m["value"] = exprValue(arg.Value)
	return m
}

func (mapVisitor) VisitAssignment(expr *AssignmentExpr) interface{} {
	m := positioned(KindAssignment, expr.Pos)
	m["variable"] = expr.Variable
	m["value"] = exprValue(expr.Value)
	return m
}

func (mapVisitor) VisitInitialization(expr *InitializationExpr) interface{} {
	m := positioned(KindInitialization, expr.Pos)
	m["name"] = expr.Name
	m["type"] = expr.DeclaredType
	m["value"] = exprValue(expr.Value)
	return m
}
