// Package geosql assembles PostGIS SQL fragments from shapes, column
// references and literals. Identifier quoting is injected by the host query
// builder; nothing in this package holds global state.
package geosql

import (
	"math"
	"strconv"
	"strings"

	"github.com/geosql-kit/pkg/geom"
)

// QuoteFunc renders a column or alias name as a quoted SQL identifier.
type QuoteFunc func(name string) string

// QuoteIdent is the default Postgres identifier quoting: existing quote
// characters are stripped, then the name is wrapped in double quotes. The
// stripping is not an escape mechanism; identifier names remain the
// caller's trust boundary.
func QuoteIdent(name string) string {
	cleaned := strings.NewReplacer(`"`, "", "`", "").Replace(name)
	return `"` + cleaned + `"`
}

// ResolveArg renders a value that may be a column name, a shape, or a
// scalar literal into SQL text. Strings are treated as identifiers, numbers
// and booleans as literals, and everything else is classified as a shape.
// A nil value, an unresolvable number, or an invalid shape yields false,
// the universal "skip this clause" signal.
func ResolveArg(v any, quote QuoteFunc) (string, bool) {
	if quote == nil {
		quote = QuoteIdent
	}

	switch val := v.(type) {
	case nil:
		return "", false
	case string:
		return quote(val), true
	case bool:
		if val {
			return "true", true
		}
		return "false", true
	case float64:
		return formatNumber(val)
	case float32:
		return formatNumber(float64(val))
	case int:
		return strconv.Itoa(val), true
	case int32:
		return strconv.FormatInt(int64(val), 10), true
	case int64:
		return strconv.FormatInt(val, 10), true
	case uint:
		return strconv.FormatUint(uint64(val), 10), true
	case uint32:
		return strconv.FormatUint(uint64(val), 10), true
	case uint64:
		return strconv.FormatUint(val, 10), true
	default:
		return geom.ConvertToSQL(v)
	}
}

func formatNumber(v float64) (string, bool) {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return "", false
	}
	return strconv.FormatFloat(v, 'f', -1, 64), true
}
