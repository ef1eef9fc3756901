// File: doc.go
// Title: Expression Language Syntax Tree Package Documentation
// Description: Node definitions for parsed statements and expressions, a
//              visitor for traversal and an encoder to plain maps.
// Author: msto63
// Version: v0.1.0
// Created: 2025-06-02
// Modified: 2025-06-02
//
// Change History:
// - 2025-06-02 v0.1.0: Initial syntax tree

/*
Package ast defines the syntax tree produced by the expression language
parser.

Trees are built bottom-up by the parser. Every node exclusively owns its
children and is not modified after construction. Top-level statements are
InitializationExpr, AssignmentExpr and CallExpr values; expressions are
built from NumberExpr, StringExpr, BooleanExpr, VariableExpr, BinaryExpr and
CallExpr.
*/
package ast
