// Package webidl defines the WebIDL flavour of the shared AST and resolves
// interface inheritance and implements relationships.
package webidl

import (
	"fmt"

	"github.com/netsurf-plan9/nsgenbind/ast"
)

// Kind is the kind of a WebIDL AST node.
type Kind int

const (
	Ident Kind = iota
	Interface
	List
	Operation
	Attribute
	Const
	Argument
	Type
	TypeBase
	Modifier
	Literal
	Inheritance
	Implements
	ExtendedAttribute
	Dictionary
	Enum
	Callback
	Typedef
)

var kindNames = [...]string{
	Ident:             "Ident",
	Interface:         "Interface",
	List:              "List",
	Operation:         "Operation",
	Attribute:         "Attribute",
	Const:             "Const",
	Argument:          "Argument",
	Type:              "Type",
	TypeBase:          "Base",
	Modifier:          "Modifier",
	Literal:           "Literal",
	Inheritance:       "Inherit",
	Implements:        "Implements",
	ExtendedAttribute: "ExtendedAttribute",
	Dictionary:        "Dictionary",
	Enum:              "Enum",
	Callback:          "Callback",
	Typedef:           "Typedef",
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
	case Ident, Literal, Inheritance, Implements, ExtendedAttribute:
		return ast.TextPayload
	case TypeBase, Modifier:
		return ast.ScalarPayload
	}
	return ast.ListPayload
}

// Base is the primitive kind of a WebIDL type, stored in TypeBase nodes.
type Base int

const (
	BaseBool Base = iota
	BaseByte
	BaseOctet
	BaseShort
	BaseLong
	BaseLongLong
	BaseFloat
	BaseDouble
	BaseString
	BaseObject
	BaseUser
	BaseSequence
	BaseDate
	BaseVoid
	BaseAny
)

var baseNames = [...]string{
	BaseBool:     "BOOL",
	BaseByte:     "BYTE",
	BaseOctet:    "OCTET",
	BaseShort:    "SHORT",
	BaseLong:     "LONG",
	BaseLongLong: "LONGLONG",
	BaseFloat:    "FLOAT",
	BaseDouble:   "DOUBLE",
	BaseString:   "STRING",
	BaseObject:   "OBJECT",
	BaseUser:     "USER",
	BaseSequence: "SEQUENCE",
	BaseDate:     "DATE",
	BaseVoid:     "VOID",
	BaseAny:      "ANY",
}

func (b Base) String() string {
	if b >= 0 && int(b) < len(baseNames) {
		return "WEBIDL_TYPE_" + baseNames[b]
	}
	return fmt.Sprintf("Base(%d)", int(b))
}

// Mod is a keyword qualifying a type, member or argument, stored in
// Modifier nodes.
type Mod int

const (
	ModUnsigned Mod = iota
	ModUnrestricted
	ModNullable
	ModReadonly
	ModStatic
	ModInherit
	ModOptional
	ModVariadic
	ModGetter
	ModSetter
	ModCreator
	ModDeleter
	ModLegacyCaller
	ModStringifier
)

var modNames = [...]string{
	ModUnsigned:     "unsigned",
	ModUnrestricted: "unrestricted",
	ModNullable:     "nullable",
	ModReadonly:     "readonly",
	ModStatic:       "static",
	ModInherit:      "inherit",
	ModOptional:     "optional",
	ModVariadic:     "variadic",
	ModGetter:       "getter",
	ModSetter:       "setter",
	ModCreator:      "creator",
	ModDeleter:      "deleter",
	ModLegacyCaller: "legacycaller",
	ModStringifier:  "stringifier",
}

func (m Mod) String() string {
	if m >= 0 && int(m) < len(modNames) {
		return modNames[m]
	}
	return fmt.Sprintf("Mod(%d)", int(m))
}

// SpecialMods maps the special operation keywords to their modifier.
var SpecialMods = map[string]Mod{
	"getter":       ModGetter,
	"setter":       ModSetter,
	"creator":      ModCreator,
	"deleter":      ModDeleter,
	"legacycaller": ModLegacyCaller,
}
