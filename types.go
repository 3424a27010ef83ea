package sqlmarkup

import (
	"sort"
	"strconv"
)

// Type is a parameter type tag attached to every bound value.
// Database drivers may use it to pick a binding mode.
type Type string

// Supported type tags.
const (
	TypeString Type = "string"
	TypeInt    Type = "int"
	TypeBool   Type = "bool"
	TypeNull   Type = "null"
	TypeLOB    Type = "lob"
)

// Param is a single compiled parameter.
type Param struct {
	Name  string // placeholder name including the leading colon, e.g. ":id"
	Value interface{}
	Type  Type
}

/*
Arg returns the parameter value converted according to its type tag,
ready to be passed to a database/sql driver:

  - TypeNull always produces nil,
  - TypeInt and TypeBool parse string values,
  - TypeLOB turns strings into byte slices.

Values that can't be converted are returned as is and left for the driver to reject.
*/
func (p Param) Arg() interface{} {
	switch p.Type {
	case TypeNull:
		return nil
	case TypeInt:
		if s, ok := p.Value.(string); ok {
			if n, err := strconv.ParseInt(s, 10, 64); err == nil {
				return n
			}
		}
	case TypeBool:
		switch v := p.Value.(type) {
		case string:
			if b, err := strconv.ParseBool(v); err == nil {
				return b
			}
		case int:
			return v != 0
		}
	case TypeLOB:
		if s, ok := p.Value.(string); ok {
			return []byte(s)
		}
	}
	return p.Value
}

// Params maps placeholder names to compiled parameters.
type Params map[string]Param

// Names returns placeholder names sorted alphabetically.
func (ps Params) Names() []string {
	names := make([]string, 0, len(ps))
	for name := range ps {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// typeOf resolves a type tag for a scalar value.
// Without detection every value is tagged as a string.
func typeOf(v interface{}, detect bool) Type {
	if !detect {
		return TypeString
	}
	switch v.(type) {
	case nil:
		return TypeNull
	case bool:
		return TypeBool
	case int, int8, int16, int32, int64, uint, uint8, uint16, uint32, uint64:
		return TypeInt
	case []byte:
		return TypeLOB
	}
	return TypeString
}

// isScalar reports whether v can be bound as a single value.
// Besides strings, integers, booleans and nil, floats are passed to the driver
// as is and a []byte is one LOB value rather than a list of bytes.
func isScalar(v interface{}) bool {
	switch v.(type) {
	case nil, string, bool, []byte,
		int, int8, int16, int32, int64,
		uint, uint8, uint16, uint32, uint64,
		float32, float64:
		return true
	}
	return false
}
