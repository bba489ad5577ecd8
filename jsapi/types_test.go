package jsapi

import (
	"testing"

	"github.com/netsurf-plan9/nsgenbind/webidl"
	"github.com/stretchr/testify/require"
)

func TestRuleSupport(t *testing.T) {
	supported := map[webidl.Base]bool{
		webidl.BaseBool:   true,
		webidl.BaseLong:   true,
		webidl.BaseFloat:  true,
		webidl.BaseDouble: true,
		webidl.BaseString: true,
		webidl.BaseObject: true,
		webidl.BaseUser:   true,
	}
	for b := webidl.BaseBool; b <= webidl.BaseAny; b++ {
		_, ok := Rule(b)
		require.Equal(t, supported[b], ok, b.String())
	}

	_, ok := Rule(webidl.Base(-1))
	require.False(t, ok)
	_, ok = Rule(webidl.BaseAny + 1)
	require.False(t, ok)
}

func TestRuleRendering(t *testing.T) {
	tests := []struct {
		base  webidl.Base
		decl  string
		input string
	}{
		{
			webidl.BaseBool,
			"\tJSBool flag = JS_FALSE;\n",
			"\tif (!JS_ValueToBoolean(cx, argv[0], &flag)) {\n\t\treturn JS_FALSE;\n\t}\n",
		},
		{
			webidl.BaseDouble,
			"\tdouble flag = 0;\n",
			"\tif (!JS_ValueToNumber(cx, argv[0], &flag)) {\n\t\treturn JS_FALSE;\n\t}\n",
		},
		{
			webidl.BaseLong,
			"\tint32_t flag = 0;\n",
			"\tif (!JS_ValueToECMAInt32(cx, argv[0], &flag)) {\n\t\treturn JS_FALSE;\n\t}\n",
		},
		{
			webidl.BaseString,
			"\tJSString *flag_jsstr = NULL;\n\tint flag_len = 0;\n\tchar *flag = NULL;\n",
			"\tflag_jsstr = JS_ValueToString(cx, argv[0]);\n\tif (flag_jsstr == NULL) {\n\t\treturn JS_FALSE;\n\t}\n\n" +
				"\tJSString_to_char(flag_jsstr, flag, flag_len);\n",
		},
		{
			webidl.BaseUser,
			"\tJSObject *flag = NULL;\n",
			"\tif (!JSVAL_IS_NULL(argv[0]) && JSVAL_IS_PRIMITIVE(argv[0])) {\n\t\treturn JS_FALSE;\n\t}\n" +
				"\tflag = JSVAL_IS_NULL(argv[0]) ? NULL : JSVAL_TO_OBJECT(argv[0]);\n",
		},
	}
	for _, test := range tests {
		t.Run(test.base.String(), func(t *testing.T) {
			r, ok := Rule(test.base)
			require.True(t, ok)
			require.Equal(t, test.decl, r.Declare("flag"))
			require.Equal(t, test.input, r.Convert("flag", "argv[0]"))
		})
	}
}

func TestStageStatus(t *testing.T) {
	require.Equal(t, 4, StageWebIDL.Status())
	require.Equal(t, 6, StageResolve.Status())
	require.Equal(t, 17, StageClassNew.Status())
	require.Equal(t, "operation body", StageOperationBody.String())
	require.Equal(t, "Stage(99)", Stage(99).String())
}
