package geosql

import (
	"strings"

	"github.com/geosql-kit/pkg/unit"
)

// Factory creates fragment builders bound to the host's identifier quoting.
type Factory struct {
	quote QuoteFunc
}

// NewFactory returns a Factory using the given quoting function, falling
// back to Postgres double-quoting when nil.
func NewFactory(quote QuoteFunc) *Factory {
	if quote == nil {
		quote = QuoteIdent
	}
	return &Factory{quote: quote}
}

// Func starts a builder for one SQL function-call expression.
func (f *Factory) Func(name string) *Builder {
	return &Builder{quote: f.quote, fn: name}
}

// Builder accumulates one SQL function-call expression:
//
//	fn(arg1, arg2, ...)[ / output-unit constant][ AS "alias"]
//
// optionally nested in wrapper calls. It is a single-use mutable
// accumulator: build one fragment per Builder, do not share across
// goroutines or reuse for unrelated fragments.
//
// Any argument that fails to resolve poisons the builder; Build then yields
// an empty string instead of malformed SQL, mirroring the silent-skip
// policy of the shape serializer. Unknown units are programmer errors and
// surface from Build as errors.
type Builder struct {
	quote    QuoteFunc
	fn       string
	args     []string
	wrappers []string
	alias    string
	outUnit  string
	poisoned bool
	err      error
}

// Arg resolves a value (column name, shape, or literal) and appends it as
// the next argument. A string argument that reads as a measurement, such as
// "10mi", is expanded to its value times the meters-per-unit constant.
func (b *Builder) Arg(v any) *Builder {
	if s, ok := v.(string); ok && unit.HasUnitSuffix(s) {
		m, ok := unit.TryParseMeasurement(s)
		if ok {
			return b.ArgUnit(m.Value, m.Unit)
		}
	}

	resolved, ok := ResolveArg(v, b.quote)
	if !ok {
		b.poisoned = true
		return b
	}
	b.args = append(b.args, resolved)
	return b
}

// ArgRaw appends an already-rendered SQL fragment as the next argument.
// The text is trusted as-is; use it for casts or expressions composed
// elsewhere. An empty fragment poisons the builder like any other
// unresolvable argument.
func (b *Builder) ArgRaw(sqlText string) *Builder {
	if sqlText == "" {
		b.poisoned = true
		return b
	}
	b.args = append(b.args, sqlText)
	return b
}

// ArgUnit appends an argument expressed in u, converted to meters with an
// arithmetic suffix ("value * 1609.344", `"col" * 1609.344`).
func (b *Builder) ArgUnit(v any, u unit.Unit) *Builder {
	suffix, err := unit.ToMetersSQL(u)
	if err != nil {
		b.fail(err)
		return b
	}

	resolved, ok := ResolveArg(v, b.quote)
	if !ok {
		b.poisoned = true
		return b
	}
	b.args = append(b.args, resolved+suffix)
	return b
}

// Unit sets the output unit: the whole function result, computed in meters
// by PostGIS, is converted once with a trailing division.
func (b *Builder) Unit(u unit.Unit) *Builder {
	suffix, err := unit.FromMetersSQL(u)
	if err != nil {
		b.fail(err)
		return b
	}
	b.outUnit = suffix
	return b
}

// Wrap nests the expression in another function call. Wraps accumulate
// inside-out: the last Wrap added becomes the outermost call.
func (b *Builder) Wrap(fn string) *Builder {
	b.wrappers = append(b.wrappers, fn)
	return b
}

// Alias appends an AS clause with an identifier-quoted name.
func (b *Builder) Alias(name string) *Builder {
	b.alias = name
	return b
}

// Build assembles the fragment. It returns an empty string when the builder
// was poisoned by an unresolvable argument or never received one, and an
// error for programmer mistakes such as an unknown unit.
func (b *Builder) Build() (string, error) {
	if b.err != nil {
		return "", b.err
	}
	if b.poisoned || b.fn == "" || len(b.args) == 0 {
		return "", nil
	}

	expr := b.fn + "(" + strings.Join(b.args, ", ") + ")" + b.outUnit
	for _, w := range b.wrappers {
		expr = w + "(" + expr + ")"
	}
	if b.alias != "" {
		expr += " AS " + b.quote(b.alias)
	}
	return expr, nil
}

func (b *Builder) fail(err error) {
	if b.err == nil {
		b.err = err
	}
}
