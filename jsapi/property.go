package jsapi

import (
	"github.com/netsurf-plan9/nsgenbind/ast"
	"github.com/netsurf-plan9/nsgenbind/webidl"
)

// outputPropertyPrivate fetches the private data of obj inside an
// accessor.
func (g *generator) outputPropertyPrivate() {
	g.printf("\tstruct jsclass_private *private;\n"+
		"\n"+
		"\tprivate = JS_GetInstancePrivate(cx, obj, &JSClass_%s, NULL);\n"+
		"\tif (private == NULL)\n"+
		"\t\treturn JS_FALSE;\n\n",
		g.binding.Interface)
}

func (g *generator) outputGetter(name string) {
	g.printf("static JSBool JSAPI_PROPERTYGET(%s, JSContext *cx, JSObject *obj, jsval *vp)\n{\n", name)
	g.print("\tjsval jsretval = JSVAL_VOID;\n")
	if g.binding.HasPrivate {
		g.outputPropertyPrivate()
	}

	if !g.outputCodeBlock(g.doc.Getter(name)) {
		g.diag(MissingImplementation, name, "getter %s.%s has no implementation", g.binding.Interface, name)
	}

	g.print("\tJS_SET_RVAL(cx, vp, jsretval);\n" +
		"\treturn JS_TRUE;\n" +
		"}\n\n")
}

func (g *generator) outputSetter(attr ast.NodeID, name string) error {
	rule, ok, err := g.typeRule(attr, name, name)
	if err != nil {
		return err
	}

	g.printf("static JSBool JSAPI_PROPERTYSET(%s, JSContext *cx, JSObject *obj, jsval *vp)\n{\n", name)
	if ok {
		g.print(rule.Declare(name))
	}
	if g.binding.HasPrivate {
		g.outputPropertyPrivate()
	}
	if ok {
		g.print(rule.Convert(name, "*vp"))
	}

	if !g.outputCodeBlock(g.doc.Setter(name)) {
		g.diag(MissingImplementation, name, "setter %s.%s has no implementation", g.binding.Interface, name)
	}

	g.print("\treturn JS_TRUE;\n" +
		"}\n\n")
	return nil
}

// outputPropertyBody emits a getter for every named attribute of the
// linearized interface and a setter for every writable one.
func (g *generator) outputPropertyBody() error {
	for _, iface := range g.chain {
		for _, list := range iface.Lists {
			g.printf("/**** %s ****/\n", iface.Name)
			for _, attr := range g.members(list, webidl.Attribute) {
				name := g.idl.Identifier(attr)
				g.outputGetter(name)
				if g.idl.HasModifier(attr, webidl.ModReadonly) {
					continue
				}
				if err := g.outputSetter(attr, name); err != nil {
					return err
				}
			}
		}
	}
	return nil
}

func (g *generator) outputPropertySpec() error {
	g.print("static JSPropertySpec jsclass_properties[] = {\n")
	for _, iface := range g.chain {
		for _, list := range iface.Lists {
			g.printf("    /**** %s ****/\n", iface.Name)
			for _, attr := range g.members(list, webidl.Attribute) {
				if g.idl.HasModifier(attr, webidl.ModReadonly) {
					g.printf("    JSAPI_PS_RO(%s, 0, JSPROP_ENUMERATE | JSPROP_SHARED),\n", g.idl.Identifier(attr))
				} else {
					g.printf("    JSAPI_PS(%s, 0, JSPROP_ENUMERATE | JSPROP_SHARED),\n", g.idl.Identifier(attr))
				}
			}
		}
	}
	g.print("   JSAPI_PS_END\n};\n\n")
	return nil
}
