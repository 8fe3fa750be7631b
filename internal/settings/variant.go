package settings

import (
	"encoding/json"
	"strconv"

	"github.com/spf13/cast"
)

// Variant wraps a raw decoded JSON value and coerces it on demand.
// Values that cannot be converted coerce to the zero value of the target type.
type Variant struct {
	v any
}

// IsNil reports whether the key was absent or held JSON null.
func (v Variant) IsNil() bool {
	return v.v == nil
}

// Raw returns the decoded value as-is.
func (v Variant) Raw() any {
	return v.v
}

func (v Variant) Int() int {
	return cast.ToInt(v.number())
}

// Uint coerces to an unsigned integer; negative numbers become 0.
func (v Variant) Uint() uint {
	return cast.ToUint(v.number())
}

func (v Variant) String() string {
	return cast.ToString(v.v)
}

// number unwraps a json.Number into an exact integer when it has one,
// falling back to float64 for fractional or exponent forms.
func (v Variant) number() any {
	n, ok := v.v.(json.Number)
	if !ok {
		return v.v
	}
	if i, err := n.Int64(); err == nil {
		return i
	}
	if u, err := strconv.ParseUint(n.String(), 10, 64); err == nil {
		return u
	}
	if f, err := n.Float64(); err == nil {
		return f
	}
	return nil
}
