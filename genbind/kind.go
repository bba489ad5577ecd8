// Package genbind defines the binding description AST and assembles the
// binding descriptor used by the code generators.
package genbind

import (
	"fmt"

	"github.com/netsurf-plan9/nsgenbind/ast"
)

// Kind is the kind of a binding AST node.
type Kind int

const (
	Root Kind = iota
	Ident
	String
	WebIDLFile
	HdrComment
	Preamble
	BindingBlock
	Type
	TypeExtra
	BindingInterface
	Private
	Internal
	Operation
	Getter
	Setter
	API
	CBlock
)

var kindNames = [...]string{
	Root:             "Root",
	Ident:            "Ident",
	String:           "String",
	WebIDLFile:       "webidlfile",
	HdrComment:       "HdrComment",
	Preamble:         "Preamble",
	BindingBlock:     "Binding",
	Type:             "Type",
	TypeExtra:        "Extra",
	BindingInterface: "Interface",
	Private:          "Private",
	Internal:         "Internal",
	Operation:        "Operation",
	Getter:           "Getter",
	Setter:           "Setter",
	API:              "API",
	CBlock:           "CBlock",
}

func (k Kind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

// Payload implements ast.Kind.
func (k Kind) Payload() ast.PayloadClass {
	switch k {
	case Ident, String, WebIDLFile, Preamble, BindingInterface, CBlock:
		return ast.TextPayload
	}
	return ast.ListPayload
}
