// Package rjpath compiles JSONPath expressions (RFC 9535 syntax) into
// reusable selector programs and evaluates them against decoded JSON or
// YAML documents, producing matched values together with their
// canonical paths.
//
// Supported selectors:
//   - Child `.` and descendant `..` segments
//   - Name, array index, wildcard `*`, slices `start:end:step`,
//     unions `[a,b]` of indices and names
//   - Filters `[?(<expr>)]` where <expr> combines comparisons
//     (==, !=, <, <=, >, >=) with &&, || and !, property
//     existence/truthiness tests (`@.name`), and function calls
//   - Built-in filter functions length, count, match, search and value,
//     extensible per query via WithFunction
//
// A compiled Path is immutable and safe for concurrent evaluation.
// Documents are the shapes produced by encoding/json or goccy/go-yaml
// decoding into any: nil, bool, float64/json.Number, string, []any and
// map[string]any. Because Go maps do not preserve key order, object
// members are visited in lexically sorted key order, which keeps
// evaluation deterministic.
package rjpath
