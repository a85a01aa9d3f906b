package main

import (
	"fmt"
	"strings"

	"git.fractalqb.de/fractalqb/eloc"
	"git.fractalqb.de/fractalqb/hermes"
	"github.com/rivo/tview"
	"github.com/theory/jsonpath"
)

// nodePath returns the JSONPath query that selects the values described
// by the last node of p. JSONPath's [*] also selects the member values of
// objects. If an array is a member of a union that has an object member,
// the query selects more than the array elements and exact is false.
func nodePath(p []*tview.TreeNode) (query string, exact bool) {
	var sb strings.Builder
	sb.WriteByte('$')
	exact = true
	var up any
	for _, n := range p {
		info := getInfo(n)
		switch ref := info.(type) {
		case string:
			sb.WriteString("['")
			sb.WriteString(quoteName(ref))
			sb.WriteString("']")
		case hermes.Array:
			sb.WriteString("[*]")
			if u, ok := up.(hermes.Union); ok {
				if _, obj := u.Member(hermes.KindObject); obj {
					exact = false
				}
			}
		}
		up = info
	}
	return sb.String(), exact
}

func quoteName(name string) string {
	var sb strings.Builder
	for _, r := range name {
		switch {
		case r == '\'' || r == '\\':
			sb.WriteByte('\\')
			sb.WriteRune(r)
		case r < 0x20:
			fmt.Fprintf(&sb, `\u%04x`, r)
		default:
			sb.WriteRune(r)
		}
	}
	return sb.String()
}

// countMatches counts the values selected by the JSONPath query in all
// samples.
func countMatches(query string, samples []any) (n int, err error) {
	path, err := jsonpath.Parse(query)
	if err != nil {
		return 0, eloc.Errorf("invalid JSONPath %s: %w", query, err)
	}
	for _, s := range samples {
		n += len(path.Select(s))
	}
	return n, nil
}
