package jsapi

import (
	"fmt"

	"github.com/netsurf-plan9/nsgenbind/ast"
	"github.com/netsurf-plan9/nsgenbind/webidl"
)

// argument is one operation argument with its representation. rule is
// unset for unsupported types.
type argument struct {
	name      string
	rule      TypeRule
	supported bool
}

// members returns the nodes of the given kind in one member list, skipping
// those without an identifier (special operations such as a bare getter).
func (g *generator) members(list ast.NodeID, kind webidl.Kind) []ast.NodeID {
	t := g.idl.Tree
	var ids []ast.NodeID
	for _, id := range t.Collect(t.Children(list), kind) {
		if g.idl.Identifier(id) == "" {
			continue
		}
		ids = append(ids, id)
	}
	return ids
}

// typeRule looks up the representation of the type of a member or
// argument. Unsupported types are reported and give ok false.
func (g *generator) typeRule(node ast.NodeID, member, name string) (TypeRule, bool, error) {
	typ := g.idl.TypeOf(node)
	base, ok := g.idl.BaseOf(typ)
	if !ok {
		return TypeRule{}, false, fmt.Errorf("%w: %s of %s.%s has no type", webidl.ErrStructure, name, g.binding.Interface, member)
	}

	rule, ok := Rule(base)
	if !ok {
		g.diag(UnsupportedType, member, "Unsupported: %s", base)
		return TypeRule{}, false, nil
	}
	if base == webidl.BaseUser && g.opts.Verbose {
		g.diag(UserType, member, "User type: %s:%s %s", member, g.idl.Identifier(typ), name)
	}
	return rule, true, nil
}

// arguments resolves the argument list of an operation in declaration
// order.
func (g *generator) arguments(op ast.NodeID, member string) ([]argument, error) {
	var args []argument
	for _, node := range g.idl.Arguments(op) {
		name := g.idl.Identifier(node)
		if name == "" {
			return nil, fmt.Errorf("%w: argument of %s.%s has no name", webidl.ErrStructure, g.binding.Interface, member)
		}
		rule, ok, err := g.typeRule(node, member, name)
		if err != nil {
			return nil, err
		}
		args = append(args, argument{name: name, rule: rule, supported: ok})
	}
	return args, nil
}

// outputPrivateLookup fetches the private data of the this object inside a
// native.
func (g *generator) outputPrivateLookup() {
	g.printf("\tstruct jsclass_private *private;\n"+
		"\n"+
		"\tprivate = JS_GetInstancePrivate(cx,\n"+
		"\t\t\tJSAPI_THIS_OBJECT(cx,vp),\n"+
		"\t\t\t&JSClass_%s,\n"+
		"\t\t\targv);\n"+
		"\tif (private == NULL)\n"+
		"\t\treturn JS_FALSE;\n\n",
		g.binding.Interface)
}

func (g *generator) outputOperation(op ast.NodeID) error {
	name := g.idl.Identifier(op)
	args, err := g.arguments(op, name)
	if err != nil {
		return err
	}

	g.printf("static JSBool JSAPI_NATIVE(%s, JSContext *cx, uintN argc, jsval *vp)\n{\n", name)

	// variable definitions
	g.print("\tjsval jsretval = JSVAL_VOID;\n")
	if len(args) > 0 || g.binding.HasPrivate {
		g.print("\tjsval *argv = JSAPI_ARGV(cx, vp);\n")
	}
	for _, arg := range args {
		if arg.supported {
			g.print(arg.rule.Declare(arg.name))
		}
	}

	if g.binding.HasPrivate {
		g.outputPrivateLookup()
	}

	// input conversion, the argv index advances over unsupported arguments
	for i, arg := range args {
		if arg.supported {
			g.print(arg.rule.Convert(arg.name, fmt.Sprintf("argv[%d]", i)))
		}
	}

	if !g.outputCodeBlock(g.doc.Operation(name)) {
		g.diag(MissingImplementation, name, "function/operation %s.%s has no implementation", g.binding.Interface, name)
	}

	g.print("\tJSAPI_SET_RVAL(cx, vp, jsretval);\n" +
		"\treturn JS_TRUE;\n" +
		"}\n\n")
	return nil
}

// outputOperatorBody emits a native for every named operation of the
// interface, its ancestors and the interfaces it implements.
func (g *generator) outputOperatorBody() error {
	for _, iface := range g.chain {
		for _, list := range iface.Lists {
			g.printf("/**** %s ****/\n", iface.Name)
			for _, op := range g.members(list, webidl.Operation) {
				if err := g.outputOperation(op); err != nil {
					return err
				}
			}
		}
	}
	return nil
}

func (g *generator) outputFunctionSpec() error {
	g.print("static JSFunctionSpec jsclass_functions[] = {\n")
	for _, iface := range g.chain {
		for _, list := range iface.Lists {
			g.printf("    /**** %s ****/\n", iface.Name)
			for _, op := range g.members(list, webidl.Operation) {
				g.printf("    JSAPI_FS(%s, %d, 0),\n", g.idl.Identifier(op), len(g.idl.Arguments(op)))
			}
		}
	}
	g.print("   JSAPI_FS_END\n};\n\n")
	return nil
}
