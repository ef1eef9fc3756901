// File: nodes.go
// Title: Syntax Tree Node Definitions
// Description: Node types for literals, variables, binary operations,
//              calls with named arguments, assignments and declarations.
//              Each node renders itself in a fully parenthesised form.
// Author: msto63
// Version: v0.1.0
// Created: 2025-06-02
// Modified: 2025-06-02
//
// Change History:
// - 2025-06-02 v0.1.0: Initial node definitions

package ast

import (
	"fmt"
	"strconv"
	"strings"
)

// DynamicType is the declared type of a declaration without a type annotation
const DynamicType = "dynamic"

// Node represents the base interface for all syntax tree nodes
type Node interface {
	// String returns the source-like rendering of the node
	String() string

	// Accept implements the visitor pattern
	Accept(visitor Visitor) interface{}

	// Position returns the source position of the node
	Position() Position

	// Validate checks structural invariants of the node and its children
	Validate() error
}

// Position represents a position in the source text
type Position struct {
	Line   int // 1-based
	Column int // 1-based
	Offset int // byte offset, 0-based
}

// String renders the position as line:column
func (p Position) String() string {
	return fmt.Sprintf("%d:%d", p.Line, p.Column)
}

// Expr is implemented by every node that can appear in expression or
// statement position
type Expr interface {
	Node
	exprNode()
}

// NumberExpr is a numeric literal
type NumberExpr struct {
	Value float64
	Pos   Position
}

// StringExpr is a string literal with escapes already decoded
type StringExpr struct {
	Value string
	Pos   Position
}

// BooleanExpr is a true or false literal
type BooleanExpr struct {
	Value bool
	Pos   Position
}

// VariableExpr is a reference to a named value
type VariableExpr struct {
	Name string
	Pos  Position
}

// BinaryExpr applies Op to Left and Right
type BinaryExpr struct {
	Left  Expr
	Op    string
	Right Expr
	Pos   Position
}

// CallExpr invokes Callee with named arguments
type CallExpr struct {
	Callee string
	Args   []*ArgumentPassing
	Pos    Position
}

// ArgumentPassing binds one named argument of a call
type ArgumentPassing struct {
	Name  string
	Value Expr
	Pos   Position
}

// AssignmentExpr stores Value into an existing variable
type AssignmentExpr struct {
	Variable string
	Value    Expr
	Pos      Position
}

// InitializationExpr declares a variable with a declared type and an
// optional initial value. Value is nil when no initializer was given.
type InitializationExpr struct {
	Name         string
	DeclaredType string
	Value        Expr
	Pos          Position
}

func (*NumberExpr) exprNode()         {}
func (*StringExpr) exprNode()         {}
func (*BooleanExpr) exprNode()        {}
func (*VariableExpr) exprNode()       {}
func (*BinaryExpr) exprNode()         {}
func (*CallExpr) exprNode()           {}
func (*AssignmentExpr) exprNode()     {}
func (*InitializationExpr) exprNode() {}

// FormatNumber renders a numeric literal the way it is printed in trees
func FormatNumber(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}

func (n *NumberExpr) String() string                     { return FormatNumber(n.Value) }
func (n *NumberExpr) Accept(visitor Visitor) interface{} { return visitor.VisitNumber(n) }
func (n *NumberExpr) Position() Position                 { return n.Pos }
func (n *NumberExpr) Validate() error                    { return nil }

func (s *StringExpr) String() string                     { return strconv.Quote(s.Value) }
func (s *StringExpr) Accept(visitor Visitor) interface{} { return visitor.VisitString(s) }
func (s *StringExpr) Position() Position                 { return s.Pos }
func (s *StringExpr) Validate() error                    { return nil }

func (b *BooleanExpr) String() string                     { return strconv.FormatBool(b.Value) }
func (b *BooleanExpr) Accept(visitor Visitor) interface{} { return visitor.VisitBoolean(b) }
func (b *BooleanExpr) Position() Position                 { return b.Pos }
func (b *BooleanExpr) Validate() error                    { return nil }

func (v *VariableExpr) String() string                     { return v.Name }
func (v *VariableExpr) Accept(visitor Visitor) interface{} { return visitor.VisitVariable(v) }
func (v *VariableExpr) Position() Position                 { return v.Pos }

// Validate requires a name
func (v *VariableExpr) Validate() error {
	if v.Name == "" {
		return fmt.Errorf("variable at %s has no name", v.Pos)
	}
	return nil
}

// String renders the operation fully parenthesised, e.g. (2 + (3 * 4))
func (b *BinaryExpr) String() string {
	return fmt.Sprintf("(%s %s %s)", nodeString(b.Left), b.Op, nodeString(b.Right))
}

func (b *BinaryExpr) Accept(visitor Visitor) interface{} { return visitor.VisitBinary(b) }
func (b *BinaryExpr) Position() Position                 { return b.Pos }

// Validate requires an operator and both operands
func (b *BinaryExpr) Validate() error {
	if b.Op == "" {
		return fmt.Errorf("binary expression at %s has no operator", b.Pos)
	}
	if b.Left == nil || b.Right == nil {
		return fmt.Errorf("binary expression %q at %s is missing an operand", b.Op, b.Pos)
	}
	if err := b.Left.Validate(); err != nil {
		return err
	}
	return b.Right.Validate()
}

// String renders the call as callee(name: value, ...)
func (c *CallExpr) String() string {
	args := make([]string, len(c.Args))
	for i, arg := range c.Args {
		args[i] = arg.String()
	}
	return c.Callee + "(" + strings.Join(args, ", ") + ")"
}

func (c *CallExpr) Accept(visitor Visitor) interface{} { return visitor.VisitCall(c) }
func (c *CallExpr) Position() Position                 { return c.Pos }

// Validate requires a callee and valid arguments with unique names
func (c *CallExpr) Validate() error {
	if c.Callee == "" {
		return fmt.Errorf("call at %s has no callee", c.Pos)
	}
	seen := make(map[string]bool, len(c.Args))
	for _, arg := range c.Args {
		if err := arg.Validate(); err != nil {
			return err
		}
		if seen[arg.Name] {
			return fmt.Errorf("call to %s at %s passes %q twice", c.Callee, c.Pos, arg.Name)
		}
		seen[arg.Name] = true
	}
	return nil
}

// ArgumentNames returns the names of all passed arguments in order
func (c *CallExpr) ArgumentNames() []string {
	names := make([]string, len(c.Args))
	for i, arg := range c.Args {
		names[i] = arg.Name
	}
	return names
}

func (a *ArgumentPassing) String() string {
	return a.Name + ": " + nodeString(a.Value)
}

func (a *ArgumentPassing) Accept(visitor Visitor) interface{} { return visitor.VisitArgument(a) }
func (a *ArgumentPassing) Position() Position                 { return a.Pos }

// Validate requires a name and a value
func (a *ArgumentPassing) Validate() error {
	if a.Name == "" {
		return fmt.Errorf("argument at %s has no name", a.Pos)
	}
	if a.Value == nil {
		return fmt.Errorf("argument %s at %s has no value", a.Name, a.Pos)
	}
	return a.Value.Validate()
}

func (a *AssignmentExpr) String() string {
	return a.Variable + " = " + nodeString(a.Value)
}

func (a *AssignmentExpr) Accept(visitor Visitor) interface{} { return visitor.VisitAssignment(a) }
func (a *AssignmentExpr) Position() Position                 { return a.Pos }

// Validate requires a target and a value
func (a *AssignmentExpr) Validate() error {
	if a.Variable == "" {
		return fmt.Errorf("assignment at %s has no target", a.Pos)
	}
	if a.Value == nil {
		return fmt.Errorf("assignment to %s at %s has no value", a.Variable, a.Pos)
	}
	return a.Value.Validate()
}

// String renders the declaration as let name: type [= value]
func (i *InitializationExpr) String() string {
	s := "let " + i.Name + ": " + i.DeclaredType
	if i.Value != nil {
		s += " = " + i.Value.String()
	}
	return s
}

func (i *InitializationExpr) Accept(visitor Visitor) interface{} {
	return visitor.VisitInitialization(i)
}

func (i *InitializationExpr) Position() Position { return i.Pos }

// Validate requires a name and a declared type
func (i *InitializationExpr) Validate() error {
	if i.Name == "" {
		return fmt.Errorf("declaration at %s has no name", i.Pos)
	}
	if i.DeclaredType == "" {
		return fmt.Errorf("declaration of %s at %s has no type", i.Name, i.Pos)
	}
	if i.Value != nil {
		return i.Value.Validate()
	}
	return nil
}

// HasInitializer reports whether the declaration assigns an initial value
func (i *InitializationExpr) HasInitializer() bool {
	return i.Value != nil
}

func nodeString(e Expr) string {
	if e == nil {
		return "<nil>"
	}
	return e.String()
}
