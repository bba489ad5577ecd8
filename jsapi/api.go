package jsapi

import (
	"strconv"

	"github.com/netsurf-plan9/nsgenbind/webidl"
)

func (g *generator) outputAPIOperations() error {
	b := g.binding

	if b.HasPrivate {
		// finalizer with private to free
		g.printf("static void jsclass_finalize(JSContext *cx, JSObject *obj)\n"+
			"{\n"+
			"\tstruct jsclass_private *private;\n"+
			"\n"+
			"\tprivate = JS_GetInstancePrivate(cx, obj, &JSClass_%s, NULL);\n",
			b.Interface)
		g.outputCodeBlock(b.Finalise)
		g.print("\tif (private != NULL) {\n" +
			"\t\tfree(private);\n" +
			"\t}\n" +
			"}\n\n")
	} else if !b.Finalise.IsNil() {
		g.print("static void jsclass_finalize(JSContext *cx, JSObject *obj)\n{\n")
		g.outputCodeBlock(b.Finalise)
		g.print("}\n\n")
	}

	if !b.Resolve.IsNil() {
		g.print("static JSBool jsclass_resolve(JSContext *cx, JSObject *obj, jsval id, uintN flags, JSObject **objp)\n{\n")
		g.outputCodeBlock(b.Resolve)
		g.print("\treturn JS_TRUE;\n}\n\n")
	}

	if !b.Mark.IsNil() {
		g.print("static JSAPI_MARKOP(jsclass_mark)\n{\n")
		if b.HasPrivate {
			g.printf("\tstruct jsclass_private *private;\n"+
				"\n"+
				"\tprivate = JS_GetInstancePrivate(JSAPI_MARKCX, obj, &JSClass_%s, NULL);\n",
				b.Interface)
		}
		g.outputCodeBlock(b.Mark)
		g.print("\treturn JS_TRUE;\n}\n\n")
	}
	return nil
}

// constValue renders a constant literal as a jsval expression.
func constValue(literal string) (string, bool) {
	switch literal {
	case "true":
		return "JSVAL_TRUE", true
	case "false":
		return "JSVAL_FALSE", true
	case "null":
		return "JSVAL_NULL", true
	}
	if _, err := strconv.ParseInt(literal, 0, 32); err == nil {
		return "INT_TO_JSVAL(" + literal + ")", true
	}
	return "", false
}

// outputConstDefines defines every constant of the linearized interface on
// the prototype.
func (g *generator) outputConstDefines() {
	t := g.idl.Tree
	for _, iface := range g.chain {
		for _, list := range iface.Lists {
			for _, c := range t.Collect(t.Children(list), webidl.Const) {
				name := g.idl.Identifier(c)
				value, ok := constValue(g.idl.ConstValue(c))
				if !ok {
					g.diag(UnsupportedType, name, "Unsupported: constant %s.%s = %s", iface.Name, name, g.idl.ConstValue(c))
					continue
				}
				g.printf("\tJS_DefineProperty(cx, prototype, \"%s\", %s, JS_PropertyStub, JS_StrictPropertyStub, JSPROP_READONLY | JSPROP_ENUMERATE | JSPROP_PERMANENT);\n",
					name, value)
			}
		}
	}
}

// outputClassInit emits the class initializer creating the prototype.
func (g *generator) outputClassInit() error {
	b := g.binding
	g.printf("JSObject *jsapi_InitClass_%s(JSContext *cx, JSObject *parent)\n"+
		"{\n"+
		"\tJSObject *prototype;\n",
		b.Interface)

	if !g.outputCodeBlock(b.Init) {
		g.printf("\n"+
			"\tprototype = JS_InitClass(cx,\n"+
			"\t\tparent,\n"+
			"\t\tNULL,\n"+
			"\t\t&JSClass_%s,\n"+
			"\t\tNULL,\n"+
			"\t\t0,\n"+
			"\t\tNULL,\n"+
			"\t\tNULL, \n"+
			"\t\tNULL, \n"+
			"\t\tNULL);\n",
			b.Interface)
	}

	g.outputConstDefines()

	g.print("\treturn prototype;\n}\n\n")
	return nil
}

// outputClassNew emits the constructor. Private fields are its extra
// parameters and are copied into freshly allocated private data.
func (g *generator) outputClassNew() error {
	b := g.binding
	private, err := b.PrivateFields()
	if err != nil {
		return err
	}

	g.printf("JSObject *jsapi_new_%s(JSContext *cx,\n"+
		"\t\tJSObject *prototype,\n"+
		"\t\tJSObject *parent",
		b.Interface)
	for _, f := range private {
		g.printf(",\n\t\t%s%s", f.Type, f.Name)
	}
	g.print(")\n{\n\tJSObject *newobject;\n")

	if b.HasPrivate {
		g.print("\tstruct jsclass_private *private;\n" +
			"\n" +
			"\tprivate = malloc(sizeof(struct jsclass_private));\n" +
			"\tif (private == NULL) {\n" +
			"\t\treturn NULL;\n" +
			"\t}\n")
		for _, f := range private {
			g.printf("\tprivate->%s = %s;\n", f.Name, f.Name)
		}
	}

	if !g.outputCodeBlock(b.New) {
		g.printf("\n\tnewobject = JS_NewObject(cx, &JSClass_%s, prototype, parent);\n", b.Interface)
	}

	if b.HasPrivate {
		g.print("\tif (newobject == NULL) {\n" +
			"\t\tfree(private);\n" +
			"\t\treturn NULL;\n" +
			"\t}\n\n")

		// root object to stop it being garbage collected
		g.print("\tif (JSAPI_ADD_OBJECT_ROOT(cx, &newobject) != JS_TRUE) {\n" +
			"\t\tfree(private);\n" +
			"\t\treturn NULL;\n" +
			"\t}\n\n")

		g.print("\n" +
			"\t/* attach private pointer */\n" +
			"\tif (JS_SetPrivate(cx, newobject, private) != JS_TRUE) {\n" +
			"\t\tfree(private);\n" +
			"\t\treturn NULL;\n" +
			"\t}\n\n")

		g.print("\tif (JS_DefineFunctions(cx, newobject, jsclass_functions) != JS_TRUE) {\n" +
			"\t\tfree(private);\n" +
			"\t\treturn NULL;\n" +
			"\t}\n\n")

		g.print("\tif (JS_DefineProperties(cx, newobject, jsclass_properties) != JS_TRUE) {\n" +
			"\t\tfree(private);\n" +
			"\t\treturn NULL;\n" +
			"\t}\n\n")
	} else {
		g.print("\tif (newobject == NULL) {\n" +
			"\t\treturn NULL;\n" +
			"\t}\n")

		g.print("\tif (JSAPI_ADD_OBJECT_ROOT(cx, &newobject) != JS_TRUE) {\n" +
			"\t\treturn NULL;\n" +
			"\t}\n\n")

		g.print("\tif (JS_DefineFunctions(cx, newobject, jsclass_functions) != JS_TRUE) {\n" +
			"\t\treturn NULL;\n" +
			"\t}\n\n")

		g.print("\tif (JS_DefineProperties(cx, newobject, jsclass_properties) != JS_TRUE) {\n" +
			"\t\treturn NULL;\n" +
			"\t}\n\n")
	}

	// unroot object and return it
	g.print("\tJSAPI_REMOVE_OBJECT_ROOT(cx, &newobject);\n" +
		"\n" +
		"\treturn newobject;\n" +
		"}\n")
	return nil
}
