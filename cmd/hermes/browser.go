package main

import (
	"encoding/json"
	"fmt"
	"log"
	"maps"
	"slices"

	"git.fractalqb.de/fractalqb/hermes"
	"git.fractalqb.de/fractalqb/hermes/jq"
	"github.com/gdamore/tcell/v2"
	"github.com/rivo/tview"
	"github.com/sahilm/fuzzy"
)

const (
	pgTree = "tree"
	pgHelp = "help"
)

// workbench is the interactive view of a schema and the transform pipeline
// that is applied to the first sample.
type workbench struct {
	samples []any
	pipe    jq.Pipeline
	fields  searchBuild

	app      *tview.Application
	data     *tview.TreeNode
	tree     *tview.TreeView
	helps    []*helpView
	help     int
	pags     *tview.Pages
	path     *tview.TextView
	pipeView *tview.TextView
	input    *tview.InputField
	search   *tview.InputField
	result   *tview.TextView
	stat     *tview.TextView
}

func newWorkbench(scm hermes.JsonType, samples []any, pipe jq.Pipeline) *workbench {
	b := &workbench{
		samples:  samples,
		pipe:     pipe,
		fields:   make(searchBuild),
		app:      tview.NewApplication(),
		helps:    helpViews(),
		pags:     tview.NewPages(),
		path:     tview.NewTextView(),
		pipeView: tview.NewTextView(),
		input:    tview.NewInputField(),
		search:   tview.NewInputField(),
		result:   tview.NewTextView(),
		stat:     tview.NewTextView().SetText("Press ? for help"),
	}
	b.data = browseTree(scm, func(s string) string {
		return fmt.Sprintf("%d × %s", len(samples), s)
	}, b.fields)
	b.tree = tview.NewTreeView().SetRoot(b.data).SetCurrentNode(b.data)

	b.tree.SetInputCapture(b.treeInput)
	b.tree.SetChangedFunc(b.showPath)

	b.input.SetLabel("Transform: ").
		SetPlaceholder(".field").
		SetDoneFunc(b.inputDone)
	b.search.SetLabel("Search: ").
		SetDoneFunc(b.searchDone)

	b.result.SetBorder(true).SetTitle(" Result ")
	b.path.SetTextStyle(tcell.StyleDefault.Reverse(true).Bold(true))
	b.stat.SetTextStyle(tcell.StyleDefault.Reverse(true))

	b.pags.AddPage(pgTree, b.tree, true, true)
	for i, h := range b.helps {
		h.SetInputCapture(b.helpInput)
		b.pags.AddPage(helpPage(i), modal(h, h.txtCols, h.txtRows), true, false)
	}
	b.showPath(b.data)
	b.recompute()
	return b
}

func (b *workbench) run() {
	right := tview.NewFlex().SetDirection(tview.FlexRow).
		AddItem(b.pipeView, 1, 0, false).
		AddItem(b.input, 1, 0, false).
		AddItem(b.result, 0, 1, false)
	body := tview.NewFlex().
		AddItem(b.pags, 0, 1, true).
		AddItem(right, 0, 1, false)
	flex := tview.NewFlex().SetDirection(tview.FlexRow).
		AddItem(b.path, 1, 0, false).
		AddItem(body, 0, 1, true).
		AddItem(b.search, 1, 0, false).
		AddItem(b.stat, 1, 0, false)
	err := b.app.
		SetRoot(flex, true).
		SetFocus(b.tree).
		Run()
	if err != nil {
		log.Fatal(err)
	}
}

func (b *workbench) treeInput(event *tcell.EventKey) *tcell.EventKey {
	if event.Key() == tcell.KeyTab {
		b.app.SetFocus(b.input)
		return nil
	}
	switch event.Rune() {
	case 'r':
		siblSetExpand(b.tree, true)
		return nil
	case 'm':
		siblSetExpand(b.tree, false)
		return nil
	case 'R':
		treeSetExpand(b.tree.GetCurrentNode(), true)
		return nil
	case 'M':
		treeSetExpand(b.tree.GetCurrentNode(), false)
		return nil
	case 'a':
		b.app.SetFocus(b.input)
		return nil
	case 'c':
		b.pipe.Reset()
		b.recompute()
		b.stat.SetText("Pipeline cleared")
		return nil
	case '/':
		b.app.SetFocus(b.search)
		return nil
	case '?':
		b.showHelp(0)
		return nil
	case 'q':
		b.app.Stop()
		return nil
	}
	return event
}

func (b *workbench) helpInput(event *tcell.EventKey) *tcell.EventKey {
	switch event.Key() {
	case tcell.KeyLeft:
		b.showHelp(b.help - 1)
	case tcell.KeyRight:
		b.showHelp(b.help + 1)
	default:
		b.pags.SwitchToPage(pgTree)
		b.app.SetFocus(b.tree)
	}
	return nil
}

func (b *workbench) showHelp(i int) {
	if len(b.helps) == 0 {
		return
	}
	b.help = (i + len(b.helps)) % len(b.helps)
	b.pags.SwitchToPage(pgTree)
	b.pags.ShowPage(helpPage(b.help))
	b.app.SetFocus(b.helps[b.help])
}

func helpPage(i int) string { return fmt.Sprintf("%s%d", pgHelp, i) }

// inputDone appends the entered transform. Text that does not parse is
// reported and leaves the pipeline as it is.
func (b *workbench) inputDone(key tcell.Key) {
	switch key {
	case tcell.KeyEnter:
		t, err := jq.Parse(b.input.GetText())
		if err != nil {
			b.stat.SetText(fmt.Sprintf("Transform syntax error: %s", err))
			return
		}
		b.pipe.Add(t)
		b.input.SetText("")
		b.stat.SetText(fmt.Sprintf("Added %s", t))
		b.recompute()
	case tcell.KeyEscape, tcell.KeyTab:
		b.app.SetFocus(b.tree)
	}
}

func (b *workbench) searchDone(key tcell.Key) {
	defer b.app.SetFocus(b.tree)
	if key != tcell.KeyEnter {
		return
	}
	nodes := findField(b.fields, b.search.GetText())
	if len(nodes) == 0 {
		b.stat.SetText(fmt.Sprintf("No member matches '%s'", b.search.GetText()))
		return
	}
	for _, n := range b.tree.GetPath(nodes[0]) {
		if f := getFolder(n); f != nil {
			n.SetExpanded(true)
			n.SetText(f.label(true))
		}
	}
	b.tree.SetCurrentNode(nodes[0])
	b.showPath(nodes[0])
	b.stat.SetText(fmt.Sprintf("%d nodes for best match", len(nodes)))
}

// findField returns the nodes of the member name that best matches pattern.
func findField(fields searchBuild, pattern string) []*tview.TreeNode {
	names := slices.Sorted(maps.Keys(fields))
	matches := fuzzy.Find(pattern, names)
	if len(matches) == 0 {
		return nil
	}
	return fields[matches[0].Str]
}

func (b *workbench) showPath(node *tview.TreeNode) {
	query, exact := nodePath(b.tree.GetPath(node))
	n, err := countMatches(query, b.samples)
	switch {
	case err != nil:
		b.path.SetText(query)
		b.stat.SetText(err.Error())
	case exact:
		b.path.SetText(fmt.Sprintf("%s  (%d values)", query, n))
	default:
		b.path.SetText(fmt.Sprintf("%s  (at most %d values)", query, n))
	}
}

// recompute renders the pipeline and re-applies it to the first sample.
// It runs whenever the pipeline changes.
func (b *workbench) recompute() {
	b.pipeView.SetText("Pipeline: " + b.pipe.String())
	if len(b.samples) == 0 {
		b.result.SetText("no samples")
		return
	}
	res, err := b.pipe.Apply(b.samples[0])
	if err != nil {
		b.result.SetText(fmt.Sprintf("Transform error: %s", err))
		return
	}
	out, err := json.MarshalIndent(res, "", "  ")
	if err != nil {
		b.result.SetText(err.Error())
		return
	}
	b.result.SetText(string(out))
}

func modal(p tview.Primitive, width, height int) tview.Primitive {
	return tview.NewFlex().
		AddItem(nil, 0, 1, false).
		AddItem(tview.NewFlex().SetDirection(tview.FlexRow).
			AddItem(nil, 0, 1, false).
			AddItem(p, height, 1, true).
			AddItem(nil, 0, 1, false), width, 1, true).
		AddItem(nil, 0, 1, false)
}
