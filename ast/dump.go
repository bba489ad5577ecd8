package ast

import (
	"bytes"
	"io"

	"github.com/kr/pretty"
)

// DumpNode is the plain value rendering of a node used by Dump.
type DumpNode struct {
	Kind     string
	Text     string
	Scalar   int
	Children []DumpNode
}

// Snapshot converts the chain at root into DumpNodes, in chain order.
func (t *Tree[K]) Snapshot(root NodeID) []DumpNode {
	var out []DumpNode
	for _, id := range t.chain(root, Nil) {
		n := t.at(id)
		d := DumpNode{Kind: n.kind.String()}
		switch p := n.payload.(type) {
		case Text:
			d.Text = string(p)
		case Scalar:
			d.Scalar = int(p)
		case List:
			d.Children = t.Snapshot(NodeID(p))
		}
		out = append(out, d)
	}
	return out
}

func Dump[K Kind](w io.Writer, t *Tree[K], root NodeID) error {
	_, err := pretty.Fprintf(w, "%# v\n", t.Snapshot(root))
	return err
}

func DumpString[K Kind](t *Tree[K], root NodeID) string {
	buf := bytes.NewBuffer(nil)
	if err := Dump(buf, t, root); err != nil {
		panic(err)
	}
	return buf.String()
}
