package sqlmarkup

import (
	"fmt"
	"reflect"
	"sort"
)

/*
Bind groups one or more values sharing an explicit type tag.

Every argument of a constructor becomes a positional value, a slice argument
becomes a single IN-list value:

	c.Register("age_in", sqlmarkup.Int([]int{18, 24, 36}))
	c.Register("range", sqlmarkup.Int(18, 36))

A map argument adds named values:

	c.Register("ids", sqlmarkup.Int(map[string]interface{}{":ids": []int{1, 2, 3}}))
	c.Register("ids", sqlmarkup.Int().Set("ids", []int{1, 2, 3}))

A group can't mix positional and named values. The first error is kept
and reported by Err, Compiler.Register and Compiler.Compile.
*/
type Bind struct {
	typ   Type
	named bool
	vals  canonicalBind
	err   error
}

// Typed creates a bind group with an arbitrary type tag.
func Typed(typ Type, values ...interface{}) *Bind {
	b := &Bind{typ: typ}
	return b.Add(values...)
}

// Int creates a bind group of integer values.
func Int(values ...interface{}) *Bind {
	return Typed(TypeInt, values...)
}

// String creates a bind group of string values.
func String(values ...interface{}) *Bind {
	return Typed(TypeString, values...)
}

// Bool creates a bind group of boolean values.
func Bool(values ...interface{}) *Bind {
	return Typed(TypeBool, values...)
}

// LOB creates a bind group of large object values.
func LOB(values ...interface{}) *Bind {
	return Typed(TypeLOB, values...)
}

// Null creates a bind group holding a single NULL value.
func Null() *Bind {
	return Typed(TypeNull, nil)
}

// Type returns the type tag of the group.
func (b *Bind) Type() Type {
	return b.typ
}

// Len returns the number of values in the group.
func (b *Bind) Len() int {
	return len(b.vals.entries)
}

// Err returns the first error encountered while building the group.
func (b *Bind) Err() error {
	return b.err
}

// Add appends positional values. A map with string keys adds named values instead.
func (b *Bind) Add(values ...interface{}) *Bind {
	for _, v := range values {
		if b.err != nil {
			break
		}
		if rv := reflect.ValueOf(v); rv.Kind() == reflect.Map {
			b.setMap(rv)
			continue
		}
		if b.named {
			b.fail(fmt.Errorf("%w: positional value after a named one", ErrMixedBindShape))
			break
		}
		val, err := b.member(v)
		if err != nil {
			b.fail(err)
			break
		}
		b.vals.entries = append(b.vals.entries, bindEntry{value: val})
	}
	return b
}

// Set adds a named value. The name may be given with or without the leading colon.
func (b *Bind) Set(name string, value interface{}) *Bind {
	if b.err != nil {
		return b
	}
	if len(b.vals.entries) > 0 && !b.named {
		b.fail(fmt.Errorf("%w: named value %q after a positional one", ErrMixedBindShape, name))
		return b
	}
	key, ok := placeholderKey(name)
	if !ok {
		b.fail(fmt.Errorf("%w: invalid placeholder name %q", ErrInvalidBindShape, name))
		return b
	}
	val, err := b.member(value)
	if err != nil {
		b.fail(fmt.Errorf("%w (%s)", err, key))
		return b
	}
	b.named = true
	b.vals.addNamed(key, val)
	return b
}

func (b *Bind) setMap(m reflect.Value) {
	if m.Type().Key().Kind() != reflect.String {
		b.fail(fmt.Errorf("%w: map keys must be strings", ErrMixedBindShape))
		return
	}
	keys := make([]string, 0, m.Len())
	for _, k := range m.MapKeys() {
		keys = append(keys, k.String())
	}
	sort.Strings(keys)
	for _, k := range keys {
		b.Set(k, m.MapIndex(reflect.ValueOf(k).Convert(m.Type().Key())).Interface())
	}
}

// member validates a value to be stored in the group.
func (b *Bind) member(v interface{}) (bindValue, error) {
	if isScalar(v) {
		return bindValue{scalar: v, typ: b.typ}, nil
	}
	list, ok := toList(v)
	if !ok {
		return bindValue{}, fmt.Errorf("%w: %T", ErrInvalidBindValue, v)
	}
	if len(list) == 0 {
		return bindValue{}, ErrEmptyInList
	}
	for _, el := range list {
		if !isScalar(el) {
			return bindValue{}, fmt.Errorf("%w: %T in IN-list", ErrInvalidBindValue, el)
		}
	}
	return bindValue{list: list, isList: true, typ: b.typ}, nil
}

func (b *Bind) fail(err error) {
	if b.err == nil {
		b.err = err
	}
}

// canonical returns the group as a top level bind.
func (b *Bind) canonical() (canonicalBind, error) {
	if b.err != nil {
		return canonicalBind{}, b.err
	}
	cb := canonicalBind{named: b.named}
	cb.entries = append(cb.entries, b.vals.entries...)
	if b.named {
		cb.index = make(map[string]int, len(b.vals.index))
		for k, i := range b.vals.index {
			cb.index[k] = i
		}
	}
	return cb, nil
}

// value returns the group as a single value nested into another bind.
func (b *Bind) value() (bindValue, error) {
	if b.err != nil {
		return bindValue{}, b.err
	}
	switch entries := b.vals.entries; {
	case len(entries) == 0:
		return bindValue{list: []interface{}{}, isList: true, typ: b.typ}, nil
	case len(entries) == 1:
		return entries[0].value, nil
	case b.named:
		return bindValue{}, fmt.Errorf("%w: %d named values in a nested group", ErrMultidimensionalBind, len(entries))
	default:
		list := make([]interface{}, len(entries))
		for i, e := range entries {
			if e.value.isList {
				return bindValue{}, fmt.Errorf("%w: IN-list inside a nested group", ErrMultidimensionalBind)
			}
			list[i] = e.value.scalar
		}
		return bindValue{list: list, isList: true, typ: b.typ}, nil
	}
}
