package jsapi

import (
	"fmt"

	"github.com/netsurf-plan9/nsgenbind/webidl"
)

// TypeRule describes how a value of one WebIDL type is held in a C local
// and read from a jsval.
type TypeRule struct {
	Supported bool

	// Decl declares the local. %[1]s is the variable name.
	Decl string

	// Input converts a jsval into the local and returns JS_FALSE from the
	// native on failure. %[1]s is the variable name, %[2]s the source
	// expression such as argv[0] or *vp.
	Input string
}

const objectInput = "\tif (!JSVAL_IS_NULL(%[2]s) && JSVAL_IS_PRIMITIVE(%[2]s)) {\n" +
	"\t\treturn JS_FALSE;\n" +
	"\t}\n" +
	"\t%[1]s = JSVAL_IS_NULL(%[2]s) ? NULL : JSVAL_TO_OBJECT(%[2]s);\n"

const numberInput = "\tif (!JS_ValueToNumber(cx, %[2]s, &%[1]s)) {\n" +
	"\t\treturn JS_FALSE;\n" +
	"\t}\n"

// Rules maps every WebIDL type base to its representation. Types without a
// rule are recognized but unsupported.
var Rules = [...]TypeRule{
	webidl.BaseBool: {
		Supported: true,
		Decl:      "\tJSBool %[1]s = JS_FALSE;\n",
		Input: "\tif (!JS_ValueToBoolean(cx, %[2]s, &%[1]s)) {\n" +
			"\t\treturn JS_FALSE;\n" +
			"\t}\n",
	},
	webidl.BaseByte:  {},
	webidl.BaseOctet: {},
	webidl.BaseShort: {},
	webidl.BaseLong: {
		Supported: true,
		Decl:      "\tint32_t %[1]s = 0;\n",
		Input: "\tif (!JS_ValueToECMAInt32(cx, %[2]s, &%[1]s)) {\n" +
			"\t\treturn JS_FALSE;\n" +
			"\t}\n",
	},
	webidl.BaseLongLong: {},
	webidl.BaseFloat: {
		Supported: true,
		Decl:      "\tdouble %[1]s = 0;\n",
		Input:     numberInput,
	},
	webidl.BaseDouble: {
		Supported: true,
		Decl:      "\tdouble %[1]s = 0;\n",
		Input:     numberInput,
	},
	webidl.BaseString: {
		Supported: true,
		Decl: "\tJSString *%[1]s_jsstr = NULL;\n" +
			"\tint %[1]s_len = 0;\n" +
			"\tchar *%[1]s = NULL;\n",
		Input: "\t%[1]s_jsstr = JS_ValueToString(cx, %[2]s);\n" +
			"\tif (%[1]s_jsstr == NULL) {\n" +
			"\t\treturn JS_FALSE;\n" +
			"\t}\n\n" +
			"\tJSString_to_char(%[1]s_jsstr, %[1]s, %[1]s_len);\n",
	},
	webidl.BaseObject: {
		Supported: true,
		Decl:      "\tJSObject *%[1]s = NULL;\n",
		Input:     objectInput,
	},
	webidl.BaseUser: {
		Supported: true,
		Decl:      "\tJSObject *%[1]s = NULL;\n",
		Input:     objectInput,
	},
	webidl.BaseSequence: {},
	webidl.BaseDate:     {},
	webidl.BaseVoid:     {},
	webidl.BaseAny:      {},
}

// Rule returns the rule for a type base. ok is false for unsupported and
// unknown bases.
func Rule(b webidl.Base) (r TypeRule, ok bool) {
	if b < 0 || int(b) >= len(Rules) {
		return TypeRule{}, false
	}
	r = Rules[b]
	return r, r.Supported
}

// Declare renders the declaration of a local called name.
func (r TypeRule) Declare(name string) string {
	return fmt.Sprintf(r.Decl, name)
}

// Convert renders the conversion of src into the local called name.
func (r TypeRule) Convert(name, src string) string {
	return fmt.Sprintf(r.Input, name, src)
}
