package jsapi

import (
	"fmt"

	"github.com/netsurf-plan9/nsgenbind/genbind"
)

const (
	hdrCommentSep      = "\n * \n * "
	hdrCommentPreamble = "Generated by nsgenbind "
)

func (g *generator) outputHeaderComments() error {
	g.print("/* " + hdrCommentPreamble)
	for _, line := range g.binding.HeaderComments() {
		g.print(hdrCommentSep + line)
	}
	g.print("\n */\n\n")
	return nil
}

func (g *generator) outputPreamble() error {
	for _, text := range g.binding.Preambles() {
		g.print(text)
	}
	g.print("\n\n")
	return nil
}

// outputPrivateDeclaration declares the per instance private data, private
// fields first. A binding with private data must declare its type.
func (g *generator) outputPrivateDeclaration() error {
	b := g.binding
	if !b.HasPrivate {
		return nil
	}
	if !b.HasType() {
		return fmt.Errorf("%w: binding %s has private data but no type", genbind.ErrStructure, b.Name)
	}

	private, err := b.PrivateFields()
	if err != nil {
		return err
	}
	internal, err := b.InternalFields()
	if err != nil {
		return err
	}

	g.print("struct jsclass_private {\n")
	for _, f := range append(private, internal...) {
		g.printf("        %s%s;\n", f.Type, f.Name)
	}
	g.print("};\n\n")
	return nil
}

// hasFinalizer reports whether the class needs its own finalizer.
func (g *generator) hasFinalizer() bool {
	return g.binding.HasPrivate || !g.binding.Finalise.IsNil()
}

func (g *generator) outputJSClass() error {
	b := g.binding

	if !b.Resolve.IsNil() {
		g.print("static JSBool jsclass_resolve(JSContext *cx, JSObject *obj, jsval id, uintN flags, JSObject **objp);\n\n")
	}
	if !b.Mark.IsNil() {
		g.print("static JSAPI_MARKOP(jsclass_mark);\n\n")
	}
	if g.hasFinalizer() {
		g.print("static void jsclass_finalize(JSContext *cx, JSObject *obj);\n\n")
	}

	g.printf("JSClass JSClass_%s = {\n\t\"%s\",\n", b.Interface, b.Interface)

	// class flags
	if b.HasGlobal {
		g.print("\tJSCLASS_GLOBAL_FLAGS")
	} else {
		g.print("\t0")
	}
	if !b.Resolve.IsNil() {
		g.print(" | JSCLASS_NEW_RESOLVE")
	}
	if !b.Mark.IsNil() {
		g.print(" | JSAPI_JSCLASS_MARK_IS_TRACE")
	}
	if b.HasPrivate {
		g.print(" | JSCLASS_HAS_PRIVATE")
	}
	g.print(",\n")

	g.print("\tJS_PropertyStub,\t/* addProperty */\n" +
		"\tJS_PropertyStub,\t/* delProperty */\n" +
		"\tJS_PropertyStub,\t/* getProperty */\n" +
		"\tJS_StrictPropertyStub,\t/* setProperty */\n" +
		"\tJS_EnumerateStub,\t/* enumerate */\n")

	if !b.Resolve.IsNil() {
		g.print("\t(JSResolveOp)jsclass_resolve,\n")
	} else {
		g.print("\tJS_ResolveStub,\n")
	}

	g.print("\tJS_ConvertStub,\t/* convert */\n")

	if g.hasFinalizer() {
		g.print("\tjsclass_finalize,\n")
	} else {
		g.print("\tJS_FinalizeStub,\n")
	}

	g.print("\t0,\t/* reserved */\n" +
		"\tNULL,\t/* checkAccess */\n" +
		"\tNULL,\t/* call */\n" +
		"\tNULL,\t/* construct */\n" +
		"\tNULL,\t/* xdr Object */\n" +
		"\tNULL,\t/* hasInstance */\n")

	if !b.Mark.IsNil() {
		g.print("\tJSAPI_JSCLASS_MARKOP(jsclass_mark),\n")
	} else {
		g.print("\tNULL, /* trace/mark */\n")
	}

	g.print("\tJSAPI_CLASS_NO_INTERNAL_MEMBERS\n};\n\n")
	return nil
}
