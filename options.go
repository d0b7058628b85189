package rjpath

// MatchMode controls how the built-in match function applies its
// pattern to the subject string.
type MatchMode int

const (
	// MatchContains accepts a pattern match anywhere in the subject.
	MatchContains MatchMode = iota

	// MatchEntire requires the pattern to match the whole subject.
	MatchEntire
)

type options struct {
	matchMode MatchMode
	functions map[string]Function
}

// Option configures a single Compile call.
type Option func(*options)

// WithRegexMatchMode sets the match-function mode. The default is
// MatchContains.
func WithRegexMatchMode(mode MatchMode) Option {
	return func(o *options) {
		o.matchMode = mode
	}
}

// WithFunction registers a filter function under the given name for
// this compiled query. Registering the name of a built-in replaces it.
func WithFunction(name string, fn Function) Option {
	return func(o *options) {
		if o.functions == nil {
			o.functions = make(map[string]Function)
		}
		o.functions[name] = fn
	}
}
