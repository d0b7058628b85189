// Command rjpath evaluates a JSONPath expression against JSON or YAML
// documents and prints the matches.
//
// Usage:
//
//	rjpath [flags] <path> [file ...]
//
// Documents are read from the listed files, or from stdin when none
// are given. Files ending in .yaml or .yml, or any input with -yaml,
// are decoded as YAML. Exit codes: 0 when at least one match was
// found, 1 on usage, compile or evaluation errors, 2 when the query
// matched nothing.
package main

import (
	"bytes"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/goccy/go-yaml"

	"github.com/jacoelho/rjpath"
)

const (
	exitMatched = 0
	exitError   = 1
	exitNoMatch = 2
)

type config struct {
	path      string
	files     []string
	printPath bool
	firstOnly bool
	forceYAML bool
	matchMode rjpath.MatchMode
}

var errUsage = errors.New("usage: rjpath [flags] <path> [file ...]")

func main() {
	os.Exit(run(os.Args[1:], os.Stdin, os.Stdout, os.Stderr))
}

func run(args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	cfg, err := parseArgs(args, stderr)
	if err != nil {
		fmt.Fprintln(stderr, err)
		return exitError
	}

	compiled, err := rjpath.Compile(cfg.path, rjpath.WithRegexMatchMode(cfg.matchMode))
	if err != nil {
		fmt.Fprintln(stderr, err)
		return exitError
	}

	matched := false
	for _, input := range inputs(cfg, stdin) {
		document, err := decode(input, cfg.forceYAML)
		if err != nil {
			fmt.Fprintln(stderr, err)
			return exitError
		}

		nodes, err := compiled.Evaluate(document)
		if err != nil {
			fmt.Fprintln(stderr, err)
			return exitError
		}

		for _, node := range nodes {
			if err := print(stdout, node, cfg.printPath); err != nil {
				fmt.Fprintln(stderr, err)
				return exitError
			}
			matched = true
			if cfg.firstOnly {
				break
			}
		}
	}

	if !matched {
		return exitNoMatch
	}
	return exitMatched
}

func parseArgs(args []string, stderr io.Writer) (*config, error) {
	flags := flag.NewFlagSet("rjpath", flag.ContinueOnError)
	flags.SetOutput(stderr)

	cfg := &config{}
	mode := flags.String("mode", "contains", "regex match mode for the match function: contains or entire")
	flags.BoolVar(&cfg.printPath, "paths", false, "print the canonical path before each value")
	flags.BoolVar(&cfg.firstOnly, "first", false, "print only the first match per document")
	flags.BoolVar(&cfg.forceYAML, "yaml", false, "decode all inputs as YAML")

	if err := flags.Parse(args); err != nil {
		return nil, errUsage
	}
	if flags.NArg() < 1 {
		return nil, errUsage
	}

	switch *mode {
	case "contains":
		cfg.matchMode = rjpath.MatchContains
	case "entire":
		cfg.matchMode = rjpath.MatchEntire
	default:
		return nil, fmt.Errorf("invalid -mode %q: want contains or entire", *mode)
	}

	cfg.path = flags.Arg(0)
	cfg.files = flags.Args()[1:]
	return cfg, nil
}

type input struct {
	name   string
	reader io.Reader
	isYAML bool
}

func inputs(cfg *config, stdin io.Reader) []input {
	if len(cfg.files) == 0 {
		return []input{{name: "stdin", reader: stdin, isYAML: cfg.forceYAML}}
	}

	list := make([]input, 0, len(cfg.files))
	for _, file := range cfg.files {
		list = append(list, input{
			name:   file,
			isYAML: cfg.forceYAML || strings.HasSuffix(file, ".yaml") || strings.HasSuffix(file, ".yml"),
		})
	}
	return list
}

func decode(in input, forceYAML bool) (any, error) {
	reader := in.reader
	if reader == nil {
		f, err := os.Open(in.name)
		if err != nil {
			return nil, err
		}
		defer f.Close()
		reader = f
	}

	data, err := io.ReadAll(reader)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", in.name, err)
	}

	var document any
	if in.isYAML || forceYAML {
		if err := yaml.Unmarshal(data, &document); err != nil {
			return nil, fmt.Errorf("decode %s: %w", in.name, err)
		}
		return document, nil
	}

	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	if err := dec.Decode(&document); err != nil {
		return nil, fmt.Errorf("decode %s: %w", in.name, err)
	}
	return document, nil
}

func print(w io.Writer, node rjpath.Node, withPath bool) error {
	encoded, err := json.Marshal(node.Value)
	if err != nil {
		return err
	}

	if withPath {
		_, err = fmt.Fprintf(w, "%s\t%s\n", node.Path(), encoded)
		return err
	}
	_, err = fmt.Fprintf(w, "%s\n", encoded)
	return err
}
