package rjpath

import "errors"

var (
	// ErrSyntax indicates the path expression could not be compiled.
	ErrSyntax = errors.New("rjpath: syntax error")

	// ErrEvaluation indicates a filter function failed at evaluation
	// time, for example a wrong argument count or a malformed regular
	// expression passed to match.
	ErrEvaluation = errors.New("rjpath: evaluation error")

	// ErrNoMatch is returned by First when a query evaluates cleanly
	// but selects nothing.
	ErrNoMatch = errors.New("rjpath: no match")
)
