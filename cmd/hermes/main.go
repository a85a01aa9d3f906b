/*
A tool to infer the structure of JSON values and to transform them.
Copyright (C) 2025  Marcus Perlick

This program is free software: you can redistribute it and/or modify
it under the terms of the GNU Affero General Public License as published by
the Free Software Foundation, either version 3 of the License, or
(at your option) any later version.

This program is distributed in the hope that it will be useful,
but WITHOUT ANY WARRANTY; without even the implied warranty of
MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
GNU Affero General Public License for more details.

You should have received a copy of the GNU Affero General Public License
along with this program.  If not, see <https://www.gnu.org/licenses/>.
*/

package main

import (
	"bufio"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"git.fractalqb.de/fractalqb/eloc"
	"git.fractalqb.de/fractalqb/hermes"
	"git.fractalqb.de/fractalqb/hermes/jq"
	"git.fractalqb.de/fractalqb/tetrta"
	"gopkg.in/yaml.v3"
)

var (
	fTreeStyle                  = "draw"
	fDepth                      int
	fTypes, fJSON               bool
	fArgs, fOut, fSchema, fPipe string
	fSteps                      steps
)

const (
	envHermesTree  = "HERMES_TREE"
	envHermesDepth = "HERMES_DEPTH"
)

func init() {
	if v, ok := os.LookupEnv(envHermesTree); ok {
		fTreeStyle = v
	}
	if v, ok := os.LookupEnv(envHermesDepth); ok {
		if n, err := strconv.Atoi(v); err == nil {
			fDepth = n
		}
	}
}

// steps collects repeated -t flags
type steps []string

func (s *steps) String() string { return strings.Join(*s, " | ") }

func (s *steps) Set(v string) error {
	*s = append(*s, v)
	return nil
}

func usage() {
	w := flag.CommandLine.Output()
	fmt.Fprint(w, "Infer the type of example JSON or YAML values and transform them.\n\n")
	fmt.Fprintln(w, `Usage: hermes [flags] <JSON/YAML file>...
FLAGS:`)
	flag.PrintDefaults()
}

func main() {
	flag.Usage = usage
	flag.StringVar(&fTreeStyle, "tree", fTreeStyle,
		"Select style for tree printing from: ascii, draw, items; Env: "+envHermesTree+"\n")
	flag.IntVar(&fDepth, "depth", fDepth,
		"Truncate transform results below depth (0: no truncation); Env: "+envHermesDepth+"\n")
	flag.BoolVar(&fTypes, "types", fTypes,
		"Find reused types")
	flag.BoolVar(&fJSON, "json", fJSON,
		"Print the schema as JSON document instead of a tree")
	flag.StringVar(&fArgs, "a", fArgs,
		"Read args from file ('-' reads from stdin)")
	flag.StringVar(&fOut, "o", fOut,
		"Print summary to file ('-' writes to stdout)")
	flag.StringVar(&fSchema, "schema", fSchema,
		"Generate JSON Schema file")
	flag.StringVar(&fPipe, "p", fPipe,
		"Transform pipeline, e.g. '.items | .name'")
	flag.Var(&fSteps, "t",
		"Append one transform to the pipeline (repeatable)")
	flag.Parse()

	pipe, err := buildPipeline(fPipe, fSteps)
	if err != nil {
		log.Fatal(err)
	}

	var samples []any
	switch {
	case fArgs == "-":
		samples, err = readArgs(os.Stdin)
	case fArgs != "":
		samples, err = readArgsFile(fArgs)
	case len(flag.Args()) > 0:
		for _, arg := range flag.Args() {
			var s []any
			if s, err = readFile(arg); err != nil {
				break
			}
			samples = append(samples, s...)
		}
	default:
		samples, err = read(json.NewDecoder(os.Stdin))
	}
	if err != nil {
		log.Fatal(err)
	}
	scm := inferAll(samples)

	if fOut == "" && fSchema == "" {
		newWorkbench(scm, samples, pipe).run()
		return
	}
	if fSchema != "" {
		if err := writeSchema(fSchema, scm); err != nil {
			log.Fatal(err)
		}
	}
	if fOut == "" {
		return
	}
	var w io.Writer = os.Stdout
	if fOut != "-" {
		if tmp, err := os.Create(fOut); err != nil {
			log.Fatal(err)
		} else {
			defer tmp.Close()
			w = tmp
		}
	}
	if err := report(w, scm, samples, pipe); err != nil {
		log.Fatal(err)
	}
}

func treeStyle(name string) *tetrta.TreeStyle {
	switch name {
	case "a", "ascii":
		return tetrta.ASCIITree()
	case "d", "draw":
		return tetrta.BoxDrawTree()
	case "i", "items":
		return tetrta.ItemTree()
	}
	return nil
}

func buildPipeline(text string, steps []string) (pipe jq.Pipeline, err error) {
	if text != "" {
		if pipe, err = jq.ParsePipeline(text); err != nil {
			return pipe, err
		}
	}
	for _, s := range steps {
		t, err := jq.Parse(s)
		if err != nil {
			return pipe, err
		}
		pipe.Add(t)
	}
	return pipe, nil
}

func inferAll(samples []any) hermes.JsonType {
	ts := make([]hermes.JsonType, len(samples))
	for i, s := range samples {
		ts[i] = hermes.Infer(s)
	}
	return hermes.Unify(ts...)
}

func report(w io.Writer, scm hermes.JsonType, samples []any, pipe jq.Pipeline) error {
	head := fmt.Sprintf("Inferred from %d samples:", len(samples))
	fmt.Fprintln(w, head)
	fmt.Fprintln(w, strings.Repeat("=", len(head)))
	if fJSON {
		fmt.Fprintln(w, hermes.Render(scm))
	} else {
		sum := hermes.NewSummary(w, &hermes.SummaryConfig{
			TreeStyle: treeStyle(fTreeStyle),
		})
		if err := sum.Print(scm); err != nil {
			return err
		}
	}
	if fTypes {
		dedup := make(hermes.DedupHash)
		scm.Hash(dedup)
		tdefs := dedup.ReusedTypes()
		fmt.Fprintf(w, "\nFound %d reused types\n", len(tdefs))
		for _, def := range tdefs {
			head = fmt.Sprintf("\nOccurs %d times:", def.Count)
			fmt.Fprintln(w, head)
			fmt.Fprintln(w, strings.Repeat("-", len(head)-1))
			fmt.Fprintln(w, hermes.Render(def.Type))
		}
	}
	if pipe.Len() == 0 {
		return nil
	}
	fmt.Fprintf(w, "\nPipeline: %s\n", pipe)
	for i, s := range samples {
		res, err := applyPipeline(pipe, s, fDepth)
		if err != nil {
			fmt.Fprintf(w, "#%d: Transform error: %s\n", i+1, err)
			continue
		}
		fmt.Fprintf(w, "#%d: %s\n", i+1, res)
	}
	return nil
}

func applyPipeline(pipe jq.Pipeline, sample any, depth int) (string, error) {
	res, err := pipe.Apply(sample)
	if err != nil {
		return "", err
	}
	if depth > 0 {
		res = hermes.Truncate(res, depth)
	}
	out, err := json.MarshalIndent(res, "", "  ")
	return string(out), eloc.At(err)
}

func writeSchema(name string, scm hermes.JsonType) error {
	f, err := os.Create(name)
	if err != nil {
		return eloc.At(err)
	}
	defer f.Close()
	enc := json.NewEncoder(f)
	enc.SetIndent("", "   ")
	return eloc.At(enc.Encode(hermes.JSONSchemaDoc(scm)))
}

func readArgsFile(file string) ([]any, error) {
	r, err := os.Open(file)
	if err != nil {
		return nil, eloc.At(err)
	}
	defer r.Close()
	return readArgs(r)
}

func readArgs(r io.Reader) (samples []any, err error) {
	scn := bufio.NewScanner(r)
	for scn.Scan() {
		file := strings.TrimSpace(scn.Text())
		if file == "" {
			continue
		}
		s, err := readFile(file)
		if err != nil {
			return nil, err
		}
		samples = append(samples, s...)
	}
	return samples, eloc.At(scn.Err())
}

type decoder interface{ Decode(any) error }

// read decodes all values from dec, each value is one sample
func read(dec decoder) (samples []any, err error) {
	for {
		var jv any
		err := dec.Decode(&jv)
		switch {
		case err == io.EOF:
			return samples, nil
		case err != nil:
			return nil, eloc.Errorf("sample %d: %w", len(samples)+1, err)
		}
		if _, ok := hermes.KindOf(jv); !ok {
			return nil, eloc.Errorf("sample %d: unsupported value %T", len(samples)+1, jv)
		}
		samples = append(samples, hermes.Normalize(jv))
	}
}

func readFile(name string) ([]any, error) {
	rd, err := os.Open(name)
	if err != nil {
		return nil, eloc.At(err)
	}
	defer rd.Close()
	log.Println("read file", name)
	switch filepath.Ext(name) {
	case ".yml", ".yaml":
		return read(yaml.NewDecoder(rd))
	}
	return read(json.NewDecoder(rd))
}
