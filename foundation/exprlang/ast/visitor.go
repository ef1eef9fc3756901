// File: visitor.go
// Title: Syntax Tree Visitor Implementation
// Description: Visitor interface for syntax tree nodes, a generic Walk
//              function, an indented tree printer and a collector for
//              referenced variable names.
// Author: msto63
// Version: v0.1.0
// Created: 2025-06-02
// Modified: 2025-06-02
//
// Change History:
// - 2025-06-02 v0.1.0: Initial visitor implementation

package ast

import (
	"fmt"
	"strconv"
	"strings"
)

// Visitor interface for traversing syntax tree nodes
type Visitor interface {
	VisitNumber(expr *NumberExpr) interface{}
	VisitString(expr *StringExpr) interface{}
	VisitBoolean(expr *BooleanExpr) interface{}
	VisitVariable(expr *VariableExpr) interface{}
	VisitBinary(expr *BinaryExpr) interface{}
	VisitCall(expr *CallExpr) interface{}
	VisitArgument(arg *ArgumentPassing) interface{}
	VisitAssignment(expr *AssignmentExpr) interface{}
	VisitInitialization(expr *InitializationExpr) interface{}
}

// BaseVisitor returns nil for every node. Embed it in concrete visitors
// to only override needed methods.
type BaseVisitor struct{}

func (BaseVisitor) VisitNumber(*NumberExpr) interface{}                 { return nil }
func (BaseVisitor) VisitString(*StringExpr) interface{}                 { return nil }
func (BaseVisitor) VisitBoolean(*BooleanExpr) interface{}               { return nil }
func (BaseVisitor) VisitVariable(*VariableExpr) interface{}             { return nil }
func (BaseVisitor) VisitBinary(*BinaryExpr) interface{}                 { return nil }
func (BaseVisitor) VisitCall(*CallExpr) interface{}                     { return nil }
func (BaseVisitor) VisitArgument(*ArgumentPassing) interface{}          { return nil }
func (BaseVisitor) VisitAssignment(*AssignmentExpr) interface{}         { return nil }
func (BaseVisitor) VisitInitialization(*InitializationExpr) interface{} { return nil }

// Children returns the direct child nodes of n in source order
func Children(n Node) []Node {
	switch node := n.(type) {
	case *BinaryExpr:
		return compact(node.Left, node.Right)
	case *CallExpr:
		children := make([]Node, 0, len(node.Args))
		for _, arg := range node.Args {
			children = append(children, arg)
		}
		return children
	case *ArgumentPassing:
		return compact(node.Value)
	case *AssignmentExpr:
		return compact(node.Value)
	case *InitializationExpr:
		return compact(node.Value)
	default:
		return nil
	}
}

func compact(exprs ...Expr) []Node {
	nodes := make([]Node, 0, len(exprs))
	for _, e := range exprs {
		if e != nil {
			nodes = append(nodes, e)
		}
	}
	return nodes
}

// Walk traverses the tree depth-first in source order. fn is called for
// every node before its children; returning false skips the children.
func Walk(n Node, fn func(Node) bool) {
	if n == nil || !fn(n) {
		return
	}
	for _, child := range Children(n) {
		Walk(child, fn)
	}
}

// TreeVisitor renders a node as an indented tree, one node per line
type TreeVisitor struct {
	buffer strings.Builder
	indent int
}

// NewTreeVisitor creates a new tree printer
func NewTreeVisitor() *TreeVisitor {
	return &TreeVisitor{}
}

// String returns the rendered tree
func (tv *TreeVisitor) String() string {
	return tv.buffer.String()
}

// Reset clears the internal buffer
func (tv *TreeVisitor) Reset() {
	tv.buffer.Reset()
	tv.indent = 0
}

func (tv *TreeVisitor) line(format string, args ...interface{}) {
	tv.buffer.WriteString(strings.Repeat("  ", tv.indent))
	fmt.Fprintf(&tv.buffer, format, args...)
	tv.buffer.WriteByte('\n')
}

func (tv *TreeVisitor) nested(nodes ...Node) {
	tv.indent++
	for _, n := range nodes {
		n.Accept(tv)
	}
	tv.indent--
}

func (tv *TreeVisitor) VisitNumber(expr *NumberExpr) interface{} {
	tv.line("Number %s", FormatNumber(expr.Value))
	return nil
}

func (tv *TreeVisitor) VisitString(expr *StringExpr) interface{} {
	tv.line("String %s", strconv.Quote(expr.Value))
	return nil
}

func (tv *TreeVisitor) VisitBoolean(expr *BooleanExpr) interface{} {
	tv.line("Boolean %t", expr.Value)
	return nil
}

func (tv *TreeVisitor) VisitVariable(expr *VariableExpr) interface{} {
	tv.line("Variable %s", expr.Name)
	return nil
}

func (tv *TreeVisitor) VisitBinary(expr *BinaryExpr) interface{} {
	tv.line("Binary %s", expr.Op)
	tv.nested(Children(expr)...)
	return nil
}

func (tv *TreeVisitor) VisitCall(expr *CallExpr) interface{} {
	tv.line("Call %s", expr.Callee)
	tv.nested(Children(expr)...)
	return nil
}

func (tv *TreeVisitor) VisitArgument(arg *ArgumentPassing) interface{} {
	tv.line("Argument %s", arg.Name)
	tv.nested(Children(arg)...)
	return nil
}

func (tv *TreeVisitor) VisitAssignment(expr *AssignmentExpr) interface{} {
	tv.line("Assignment %s", expr.Variable)
	tv.nested(Children(expr)...)
	return nil
}

func (tv *TreeVisitor) VisitInitialization(expr *InitializationExpr) interface{} {
	if expr.Value == nil {
		tv.line("Initialization %s: %s (no value)", expr.Name, expr.DeclaredType)
		return nil
	}
	tv.line("Initialization %s: %s", expr.Name, expr.DeclaredType)
	tv.nested(expr.Value)
	return nil
}

// Dump renders n as an indented tree
func Dump(n Node) string {
	if n == nil {
		return ""
	}
	tv := NewTreeVisitor()
	n.Accept(tv)
	return tv.String()
}

// ReferencedVariables returns the distinct variable names read by n, in
// order of first appearance. Declared and assigned names are not included
// unless they are also read.
func ReferencedVariables(n Node) []string {
	var names []string
	seen := make(map[string]bool)
	Walk(n, func(node Node) bool {
		if v, ok := node.(*VariableExpr); ok && !seen[v.Name] {
			seen[v.Name] = true
			names = append(names, v.Name)
		}
		return true
	})
	return names
}

// CountNodes returns the number of nodes in the tree rooted at n
func CountNodes(n Node) int {
	count := 0
	Walk(n, func(Node) bool {
		count++
		return true
	})
	return count
}
