package foldspan

import (
	"github.com/jward/foldspan/internal/dialect"
	"github.com/jward/foldspan/internal/fold"
)

// Public type aliases for internal types used in the Engine API. These are
// Go type aliases (=) — identical to the internal types at compile time.
// External consumers use these names; no conversion is needed.

type Region = fold.Region
type Range = fold.Range
type Token = fold.Token
type Kind = fold.Kind
type Dialect = dialect.Dialect
type DialectRegistry = dialect.Registry

const (
	LineComment  = fold.LineComment
	BlockComment = fold.BlockComment
	DocComment   = fold.DocComment
)
