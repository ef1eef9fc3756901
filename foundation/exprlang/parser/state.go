// File: state.go
// Title: Parser State Machines
// Description: A small table driven state machine used by the declaration
//              and argument list parsers. Transitions are keyed by the
//              current state and the type of the lookahead token; every
//              state carries the diagnostic used when no transition fits.
// Author: msto63
// Version: v0.1.0
// Created: 2025-06-02
// Modified: 2025-06-02
//
// Change History:
// - 2025-06-02 v0.1.0: Initial state machines

package parser

type transition[S comparable] struct {
	from S
	on   TokenType
}

// fsm is an immutable transition table
type fsm[S comparable] struct {
	table   map[transition[S]]S
	expects map[S]string
}

// next returns the state reached from s on a token of type tt
func (m fsm[S]) next(s S, tt TokenType) (S, bool) {
	to, ok := m.table[transition[S]{from: s, on: tt}]
	return to, ok
}

// expectation returns the diagnostic for an unexpected token in state s
func (m fsm[S]) expectation(s S) string {
	return m.expects[s]
}

type declState int

const (
	declExpectName declState = iota
	declExpectColonOrEqual
	declExpectType
	declExpectEqualOrEnd
	declValue
	declDone
)

var declStateNames = map[declState]string{
	declExpectName:         "ExpectName",
	declExpectColonOrEqual: "ExpectColonOrEqual",
	declExpectType:         "ExpectType",
	declExpectEqualOrEnd:   "ExpectEqualOrEnd",
	declValue:              "Value",
	declDone:               "Done",
}

func (s declState) String() string { return declStateNames[s] }

var declMachine = fsm[declState]{
	table: map[transition[declState]]declState{
		{declExpectName, TokenName}:            declExpectColonOrEqual,
		{declExpectColonOrEqual, TokenColon}:   declExpectType,
		{declExpectColonOrEqual, TokenEqual}:   declValue,
		{declExpectType, TokenName}:            declExpectEqualOrEnd,
		{declExpectEqualOrEnd, TokenEqual}:     declValue,
		{declExpectEqualOrEnd, TokenSemiColon}: declDone,
		{declExpectEqualOrEnd, TokenColon}:     declDone,
	},
	expects: map[declState]string{
		declExpectName:         "expected Name",
		declExpectColonOrEqual: "expected Colon or Equals",
		declExpectType:         "expected Datatype",
		declExpectEqualOrEnd:   "expected Equals or Semicolon",
	},
}

type argState int

const (
	argAwaitName argState = iota
	argHaveName
	argHaveValue
	argDone
)

var argStateNames = map[argState]string{
	argAwaitName: "AwaitName",
	argHaveName:  "HaveName",
	argHaveValue: "HaveValue",
	argDone:      "Done",
}

func (s argState) String() string { return argStateNames[s] }

var argMachine = fsm[argState]{
	table: map[transition[argState]]argState{
		{argAwaitName, TokenName}:           argHaveName,
		{argHaveName, TokenColon}:           argHaveValue,
		{argHaveName, TokenComma}:           argAwaitName,
		{argHaveValue, TokenComma}:          argAwaitName,
		{argAwaitName, TokenClosingBracket}: argDone,
		{argHaveName, TokenClosingBracket}:  argDone,
		{argHaveValue, TokenClosingBracket}: argDone,
	},
	expects: map[argState]string{
		argAwaitName: "expected argument name",
		argHaveName:  "expected ':', ',' or ')' after argument name",
		argHaveValue: "expected ',' or ')' after argument value",
	},
}
