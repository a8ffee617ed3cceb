package glm

import (
	"fmt"
	"math"
	"reflect"
	"strings"
)

// Values are decoded following the CF conventions used by GLM files:
// _Unsigned reinterprets signed storage as unsigned, _FillValue (or the
// netCDF default fill of the type) masks a value, as does a value outside
// valid_range (or valid_min / valid_max), and scale_factor / add_offset
// unpack integers into floats. Masking compares the packed values.

type numberKind int

const (
	kindInt numberKind = iota
	kindUint
	kindFloat
)

type number struct {
	kind numberKind
	i    int64
	u    uint64
	f    float64
}

func (n number) float() float64 {
	switch n.kind {
	case kindInt:
		return float64(n.i)
	case kindUint:
		return float64(n.u)
	}
	return n.f
}

func (n number) equal(o number) bool {
	if n.kind == o.kind {
		switch n.kind {
		case kindInt:
			return n.i == o.i
		case kindUint:
			return n.u == o.u
		}
	}
	a, b := n.float(), o.float()
	return a == b || (math.IsNaN(a) && math.IsNaN(b))
}

// less orders numbers of the same kind exactly and mixed kinds as floats
func (n number) less(o number) bool {
	if n.kind == o.kind {
		switch n.kind {
		case kindInt:
			return n.i < o.i
		case kindUint:
			return n.u < o.u
		}
	}
	return n.float() < o.float()
}

func (n number) value() interface{} {
	switch n.kind {
	case kindInt:
		return n.i
	case kindUint:
		return n.u
	}
	return n.f
}

// defaultFills are the netCDF default fill values per CDL type. Byte types
// are never masked by default.
var defaultFills = map[string]number{
	"short":  {kind: kindInt, i: -32767},
	"int":    {kind: kindInt, i: -2147483647},
	"int64":  {kind: kindInt, i: -9223372036854775806},
	"ushort": {kind: kindUint, u: 65535},
	"uint":   {kind: kindUint, u: 4294967295},
	"uint64": {kind: kindUint, u: 18446744073709551614},
	"float":  {kind: kindFloat, f: float64(float32(9.9692099683868690e+36))},
	"double": {kind: kindFloat, f: 9.9692099683868690e+36},
}

// numpyTypes maps CDL type names to the names used in STAC metadata
var numpyTypes = map[string]string{
	"byte":   "int8",
	"ubyte":  "uint8",
	"char":   "S1",
	"short":  "int16",
	"ushort": "uint16",
	"int":    "int32",
	"uint":   "uint32",
	"int64":  "int64",
	"uint64": "uint64",
	"float":  "float32",
	"double": "float64",
	"string": "str",
}

// StorageType returns the on-disk data type of the variable, e.g. int16
func (v *Variable) StorageType() string {
	if t, ok := numpyTypes[v.Type]; ok {
		return t
	}
	rv := reflect.ValueOf(v.Values)
	if !rv.IsValid() {
		return v.Type
	}
	if rv.Kind() == reflect.Slice {
		return rv.Type().Elem().Kind().String()
	}
	return rv.Kind().String()
}

// IsUnsigned reports whether the variable has _Unsigned = "true"
func (v *Variable) IsUnsigned() bool {
	return strings.EqualFold(strings.TrimSpace(v.StringAttribute(unsignedAttribute)), "true")
}

func (v *Variable) isPacked() bool {
	_, hasScale := v.Attributes["scale_factor"]
	_, hasOffset := v.Attributes["add_offset"]
	return hasScale || hasOffset
}

func (v *Variable) fillValue() (number, bool, error) {
	if raw, ok := v.Attributes["_FillValue"]; ok {
		fills, err := toNumbers(raw, v.IsUnsigned())
		if err != nil {
			return number{}, false, fmt.Errorf("_FillValue of %s: %w", v.Name, err)
		}
		if len(fills) == 0 {
			return number{}, false, nil
		}
		return fills[0], true, nil
	}
	fill, ok := defaultFills[v.Type]
	if ok && v.IsUnsigned() && fill.kind == kindInt {
		// The unsigned reading of a signed default fill
		fill = reinterpretUnsigned(fill.i, v.Type)
	}
	return fill, ok, nil
}

// validRange returns the bounds from valid_range, or from valid_min and
// valid_max, read like _FillValue
func (v *Variable) validRange() (lo, hi *number, err error) {
	bound := func(name string, index int) (*number, error) {
		raw, ok := v.Attributes[name]
		if !ok {
			return nil, nil
		}
		values, err := toNumbers(raw, v.IsUnsigned())
		if err != nil {
			return nil, fmt.Errorf("%s of %s: %w", name, v.Name, err)
		}
		if len(values) <= index {
			return nil, fmt.Errorf("%s of %s holds %d values", name, v.Name, len(values))
		}
		return &values[index], nil
	}
	if _, ok := v.Attributes["valid_range"]; ok {
		if lo, err = bound("valid_range", 0); err != nil {
			return nil, nil, err
		}
		hi, err = bound("valid_range", 1)
		return lo, hi, err
	}
	if lo, err = bound("valid_min", 0); err != nil {
		return nil, nil, err
	}
	hi, err = bound("valid_max", 0)
	return lo, hi, err
}

func (v *Variable) floatAttribute(name string, fallback float64) (float64, error) {
	raw, ok := v.Attributes[name]
	if !ok {
		return fallback, nil
	}
	values, err := toNumbers(raw, false)
	if err != nil || len(values) == 0 {
		return 0, fmt.Errorf("%s of %s is not numeric", name, v.Name)
	}
	return values[0].float(), nil
}

// decode returns the decoded elements and a validity mask
func (v *Variable) decode() ([]number, []bool, error) {
	if s, ok := v.Values.(string); ok {
		return nil, nil, fmt.Errorf("variable %s holds text (%q), not numbers", v.Name, s)
	}
	raw, err := toNumbers(v.Values, v.IsUnsigned())
	if err != nil {
		return nil, nil, fmt.Errorf("variable %s: %w", v.Name, err)
	}
	fill, hasFill, err := v.fillValue()
	if err != nil {
		return nil, nil, err
	}

	lo, hi, err := v.validRange()
	if err != nil {
		return nil, nil, err
	}

	valid := make([]bool, len(raw))
	for i, n := range raw {
		valid[i] = !(hasFill && n.equal(fill)) &&
			(lo == nil || !n.less(*lo)) &&
			(hi == nil || !hi.less(n))
	}

	if !v.isPacked() {
		return raw, valid, nil
	}
	scale, err := v.floatAttribute("scale_factor", 1)
	if err != nil {
		return nil, nil, err
	}
	offset, err := v.floatAttribute("add_offset", 0)
	if err != nil {
		return nil, nil, err
	}
	out := make([]number, len(raw))
	for i, n := range raw {
		out[i] = number{kind: kindFloat, f: n.float()*scale + offset}
	}
	return out, valid, nil
}

// Scalar returns the decoded value of a zero-dimensional variable as
// int64, uint64, float64 or string. ok is false when the value is masked.
func (v *Variable) Scalar() (value interface{}, ok bool, err error) {
	if !v.IsScalar() {
		return nil, false, fmt.Errorf("variable %s is not a scalar", v.Name)
	}
	if s, isString := v.Values.(string); isString {
		return s, true, nil
	}
	values, valid, err := v.decode()
	if err != nil {
		return nil, false, err
	}
	if len(values) != 1 {
		return nil, false, fmt.Errorf("variable %s holds %d values, expected one", v.Name, len(values))
	}
	if !valid[0] {
		return nil, false, nil
	}
	return values[0].value(), true, nil
}

// Float64s decodes all elements as float64. Masked elements are NaN.
func (v *Variable) Float64s() ([]float64, error) {
	values, valid, err := v.decode()
	if err != nil {
		return nil, err
	}
	out := make([]float64, len(values))
	for i, n := range values {
		if valid[i] {
			out[i] = n.float()
		} else {
			out[i] = math.NaN()
		}
	}
	return out, nil
}

// Int64s decodes all elements as int64. Integer columns are not masked.
func (v *Variable) Int64s() ([]int64, error) {
	values, _, err := v.decode()
	if err != nil {
		return nil, err
	}
	out := make([]int64, len(values))
	for i, n := range values {
		switch n.kind {
		case kindInt:
			out[i] = n.i
		case kindUint:
			out[i] = int64(n.u)
		default:
			out[i] = int64(math.Round(n.f))
		}
	}
	return out, nil
}

// Len returns the number of stored elements
func (v *Variable) Len() int {
	rv := reflect.ValueOf(v.Values)
	switch {
	case !rv.IsValid():
		return 0
	case rv.Kind() == reflect.Slice:
		return rv.Len()
	}
	return 1
}

// toNumbers flattens a scalar or one-dimensional slice of Go numbers
func toNumbers(values interface{}, unsigned bool) ([]number, error) {
	rv := reflect.ValueOf(values)
	if !rv.IsValid() {
		return []number{}, nil
	}
	if rv.Kind() != reflect.Slice {
		n, err := toNumber(rv, unsigned)
		if err != nil {
			return nil, err
		}
		return []number{n}, nil
	}
	out := make([]number, rv.Len())
	for i := range out {
		n, err := toNumber(rv.Index(i), unsigned)
		if err != nil {
			return nil, err
		}
		out[i] = n
	}
	return out, nil
}

func toNumber(rv reflect.Value, unsigned bool) (number, error) {
	switch rv.Kind() {
	case reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64, reflect.Int:
		if unsigned {
			width := rv.Kind().String()
			if rv.Kind() == reflect.Int {
				width = "int64"
			}
			return reinterpretUnsigned(rv.Int(), width), nil
		}
		return number{kind: kindInt, i: rv.Int()}, nil
	case reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uint:
		return number{kind: kindUint, u: rv.Uint()}, nil
	case reflect.Float32, reflect.Float64:
		return number{kind: kindFloat, f: rv.Float()}, nil
	}
	return number{}, fmt.Errorf("unsupported value type %s", rv.Type())
}

// reinterpretUnsigned reads the two's complement bits of i at the width of
// the given type (Go kind or CDL type name)
func reinterpretUnsigned(i int64, typeName string) number {
	var u uint64
	switch typeName {
	case "int8", "byte":
		u = uint64(uint8(i))
	case "int16", "short":
		u = uint64(uint16(i))
	case "int32", "int":
		u = uint64(uint32(i))
	default:
		u = uint64(i)
	}
	return number{kind: kindUint, u: u}
}
