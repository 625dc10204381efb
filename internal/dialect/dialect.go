// Package dialect describes per-language comment delimiter tables and the
// registry that maps canonical language names to them.
package dialect

// Dialect is the comment delimiter table for one language. An empty field
// means that comment kind is unsupported for the language; callers must treat
// absence as "not applicable" rather than substituting a default.
type Dialect struct {
	// Line is the single-line comment prefix, e.g. "//" or "#".
	Line string
	// BlockStart and BlockEnd delimit multi-line block comments, e.g. "/*", "*/".
	BlockStart string
	BlockEnd   string
	// DocStart, DocEnd and DocLine delimit documentation comments and their
	// interior line prefix, e.g. "/**", "*/", "*".
	DocStart string
	DocEnd   string
	DocLine  string
}

// SupportsLine reports whether the language has single-line comments.
func (d Dialect) SupportsLine() bool { return d.Line != "" }

// SupportsBlock reports whether the language has block comments.
func (d Dialect) SupportsBlock() bool { return d.BlockStart != "" && d.BlockEnd != "" }

// SupportsDoc reports whether the language has documentation comments with
// distinct delimiters. All three of DocStart, DocEnd and DocLine must be set;
// a partially configured doc dialect is treated as unsupported.
func (d Dialect) SupportsDoc() bool { return d.DocStart != "" && d.DocEnd != "" && d.DocLine != "" }

// builtin maps canonical language names to their comment dialects. The
// language set mirrors the grammars the lexer can parse. Go and Python have
// no separate doc-comment syntax: Go doc comments are ordinary line comments
// and Python docstrings are string literals, not comments.
var builtin = map[string]Dialect{
	"go": {
		Line: "//", BlockStart: "/*", BlockEnd: "*/",
	},
	"typescript": {
		Line: "//", BlockStart: "/*", BlockEnd: "*/",
		DocStart: "/**", DocEnd: "*/", DocLine: "*",
	},
	"javascript": {
		Line: "//", BlockStart: "/*", BlockEnd: "*/",
		DocStart: "/**", DocEnd: "*/", DocLine: "*",
	},
	"python": {
		Line: "#",
	},
	"rust": {
		Line: "//", BlockStart: "/*", BlockEnd: "*/",
		DocStart: "/**", DocEnd: "*/", DocLine: "*",
	},
	"c": {
		Line: "//", BlockStart: "/*", BlockEnd: "*/",
		DocStart: "/**", DocEnd: "*/", DocLine: "*",
	},
	"cpp": {
		Line: "//", BlockStart: "/*", BlockEnd: "*/",
		DocStart: "/**", DocEnd: "*/", DocLine: "*",
	},
	"java": {
		Line: "//", BlockStart: "/*", BlockEnd: "*/",
		DocStart: "/**", DocEnd: "*/", DocLine: "*",
	},
	"php": {
		Line: "//", BlockStart: "/*", BlockEnd: "*/",
		DocStart: "/**", DocEnd: "*/", DocLine: "*",
	},
	"ruby": {
		Line: "#", BlockStart: "=begin", BlockEnd: "=end",
	},
}

// Registry resolves dialects by canonical language name. The zero-value-free
// constructor returns a registry seeded with the builtin tables; overrides
// loaded from a config file can be layered on top with Apply.
type Registry struct {
	dialects map[string]Dialect
}

// NewRegistry returns a Registry containing the builtin dialect tables.
func NewRegistry() *Registry {
	m := make(map[string]Dialect, len(builtin))
	for lang, d := range builtin {
		m[lang] = d
	}
	return &Registry{dialects: m}
}

// ForLanguage returns the dialect for a canonical language name.
// Returns (zero, false) if the language has no dialect table.
func (r *Registry) ForLanguage(lang string) (Dialect, bool) {
	d, ok := r.dialects[lang]
	return d, ok
}

// Languages returns the names of all registered languages, unordered.
func (r *Registry) Languages() []string {
	langs := make([]string, 0, len(r.dialects))
	for lang := range r.dialects {
		langs = append(langs, lang)
	}
	return langs
}

// Apply merges per-language overrides into the registry. A non-empty field in
// an override replaces the builtin value; empty fields leave the builtin value
// in place. Overrides for unknown languages register a new dialect as given.
func (r *Registry) Apply(overrides map[string]Dialect) {
	for lang, o := range overrides {
		d := r.dialects[lang]
		if o.Line != "" {
			d.Line = o.Line
		}
		if o.BlockStart != "" {
			d.BlockStart = o.BlockStart
		}
		if o.BlockEnd != "" {
			d.BlockEnd = o.BlockEnd
		}
		if o.DocStart != "" {
			d.DocStart = o.DocStart
		}
		if o.DocEnd != "" {
			d.DocEnd = o.DocEnd
		}
		if o.DocLine != "" {
			d.DocLine = o.DocLine
		}
		r.dialects[lang] = d
	}
}
