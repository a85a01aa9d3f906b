package main

import (
	"fmt"
	"strings"

	"git.fractalqb.de/fractalqb/hermes"
	"github.com/rivo/tview"
)

type lbFmtFunc func(string) string

// searchBuild maps member names to the tree nodes of the members
type searchBuild = map[string][]*tview.TreeNode

func browseTree(scm hermes.JsonType, lff lbFmtFunc, srb searchBuild) (res *tview.TreeNode) {
	switch scm := scm.(type) {
	case hermes.Atom:
		res = browseAtom(scm, lff)
	case hermes.Array:
		res = browseArray(scm, lff, srb)
	case hermes.Object:
		res = browseObject(scm, lff, srb)
	case hermes.Union:
		res = browseUnion(scm, lff, srb)
	default:
		res = tview.NewTreeNode(lff(fmt.Sprintf("Unsupported type: %T", scm)))
		res.SetSelectable(false)
	}
	return res
}

func browseAtom(scm hermes.Atom, lff lbFmtFunc) (res *tview.TreeNode) {
	res = tview.NewTreeNode(" " + lff(hermes.AtomLabel(scm)))
	initRef(res, nil, scm)
	return res
}

func browseArray(scm hermes.Array, lff lbFmtFunc, srb searchBuild) (res *tview.TreeNode) {
	res = tview.NewTreeNode("┬ " + lff(hermes.ArrayLabel(scm)) + ":")
	initRef(res, nil, scm)
	elem := scm.Elem
	if elem == nil {
		elem = hermes.Never
	}
	res.AddChild(browseTree(elem, noFmt, srb))
	return res
}

func browseObject(scm hermes.Object, lff lbFmtFunc, srb searchBuild) (res *tview.TreeNode) {
	fldNode := stdFolder(lff(hermes.ObjectLabel(scm)))
	res = tview.NewTreeNode(fldNode.label(true))
	initRef(res, &fldNode, scm)
	var sb strings.Builder
	for a, t := range scm.All() {
		fmt.Fprintf(&sb, "[::b]\"%s\"[::-] [blue::]%s[-::]:", tview.Escape(a), t.Kind())
		fldMember := folder{
			text:  sb.String(),
			open:  "┯ ",
			close: "━ ",
		}
		sb.Reset()
		nm := tview.NewTreeNode(fldMember.label(true))
		initRef(nm, &fldMember, a)
		nm.AddChild(browseTree(t, noFmt, srb))
		fldMember.fold(nm)
		res.AddChild(nm)
		srb[a] = append(srb[a], nm)
	}
	fldNode.fold(res)
	return res
}

func browseUnion(scm hermes.Union, lff lbFmtFunc, srb searchBuild) (res *tview.TreeNode) {
	fldNode := stdFolder(lff(hermes.UnionLabel(scm)) + ":")
	res = tview.NewTreeNode(fldNode.label(true))
	initRef(res, &fldNode, scm)
	for _, v := range scm.Variants() {
		res.AddChild(browseTree(v, noFmt, srb))
	}
	fldNode.fold(res)
	return res
}

type folder struct {
	open, close, text string
}

func stdFolder(text string) folder {
	return folder{
		open:  "▼ ",
		close: "▶ ",
		text:  text,
	}
}

func (f *folder) label(open bool) string {
	if open {
		return f.open + f.text
	}
	return f.close + f.text
}

func (f *folder) fold(n *tview.TreeNode) {
	n.SetSelectable(true)
	n.SetSelectedFunc(func() {
		n.SetExpanded(!n.IsExpanded())
		n.SetText(f.label(n.IsExpanded()))
	})
}

func noFmt(s string) string { return s }

type ref struct {
	fld  *folder
	info any
}

func initRef(n *tview.TreeNode, f *folder, info any) {
	n.SetReference(ref{f, info})
}

func getFolder(n *tview.TreeNode) *folder {
	tmp := n.GetReference()
	if tmp == nil {
		return nil
	}
	r, ok := tmp.(ref)
	if ok {
		return r.fld
	}
	return nil
}

func getInfo(n *tview.TreeNode) any {
	tmp := n.GetReference()
	if tmp == nil {
		return nil
	}
	r, ok := tmp.(ref)
	if ok {
		return r.info
	}
	return nil
}

func treeSetExpand(n *tview.TreeNode, exp bool) {
	if f := getFolder(n); f != nil {
		n.SetExpanded(exp)
		n.SetText(f.label(exp))
	}
	for _, c := range n.GetChildren() {
		treeSetExpand(c, exp)
	}
}

func siblSetExpand(b *tview.TreeView, exp bool) {
	path := b.GetPath(b.GetCurrentNode())
	if len(path) < 2 {
		return
	}
	parent := path[len(path)-2]
	for _, c := range parent.GetChildren() {
		if f := getFolder(c); f != nil {
			c.SetExpanded(exp)
			c.SetText(f.label(exp))
		}
	}
}
