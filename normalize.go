package sqlmarkup

import (
	"fmt"
	"reflect"
	"sort"
)

// bindValue is a single bound value: a scalar or an IN-list sharing one type tag.
type bindValue struct {
	scalar interface{}
	list   []interface{}
	isList bool
	typ    Type
}

// bindEntry is a positional (name == "") or named bind value.
type bindEntry struct {
	name  string
	value bindValue
}

// canonicalBind is the only bind shape the expander deals with.
// Entries are either all positional or all named.
type canonicalBind struct {
	suppressed bool
	named      bool
	entries    []bindEntry
	index      map[string]int
}

// positional returns the number of values available for ? placeholders.
func (cb canonicalBind) positional() int {
	if cb.named {
		return 0
	}
	return len(cb.entries)
}

func (cb canonicalBind) lookup(key string) (bindValue, bool) {
	if !cb.named {
		return bindValue{}, false
	}
	i, ok := cb.index[key]
	if !ok {
		return bindValue{}, false
	}
	return cb.entries[i].value, true
}

func (cb *canonicalBind) addNamed(key string, v bindValue) {
	if cb.index == nil {
		cb.index = make(map[string]int)
	}
	if i, ok := cb.index[key]; ok {
		cb.entries[i].value = v
		return
	}
	cb.named = true
	cb.index[key] = len(cb.entries)
	cb.entries = append(cb.entries, bindEntry{name: key, value: v})
}

// normalizer turns caller supplied bind values into canonicalBind.
type normalizer struct {
	detect bool
}

/*
normalize accepts:

	nil                           the label is to be dropped
	func() interface{}            evaluated, then normalized
	*Bind                         used as is
	a scalar                      a single positional value
	a slice or an array           positional values
	a map with string keys        named values, a leading colon is added to keys if missing
	                              and names shaped like generated keys (__1__, ids_1__) are rejected
	a map with keys 0..n-1        positional values
*/
func (n normalizer) normalize(bind interface{}) (canonicalBind, error) {
	switch v := bind.(type) {
	case nil:
		return canonicalBind{suppressed: true}, nil
	case func() interface{}:
		if v == nil {
			return canonicalBind{suppressed: true}, nil
		}
		return n.normalize(v())
	case *Bind:
		if v == nil {
			return canonicalBind{suppressed: true}, nil
		}
		return v.canonical()
	}
	if isScalar(bind) {
		return canonicalBind{entries: []bindEntry{{value: n.scalar(bind)}}}, nil
	}
	if list, ok := toList(bind); ok {
		return n.fromList(list)
	}
	if rv := reflect.ValueOf(bind); rv.Kind() == reflect.Map {
		return n.fromMap(rv)
	}
	return canonicalBind{}, fmt.Errorf("%w: unsupported bind type %T", ErrInvalidBindShape, bind)
}

func (n normalizer) fromList(list []interface{}) (cb canonicalBind, err error) {
	// [{":name": value}] is accepted as {":name": value}
	if len(list) == 1 {
		switch el := list[0].(type) {
		case *Bind:
			if el != nil && el.named {
				return el.canonical()
			}
		default:
			if rv := reflect.ValueOf(el); rv.Kind() == reflect.Map && rv.Type().Key().Kind() == reflect.String {
				return n.fromMap(rv)
			}
		}
	}
	cb.entries = make([]bindEntry, 0, len(list))
	for i, el := range list {
		v, err := n.element(el)
		if err != nil {
			return cb, fmt.Errorf("%w (position %d)", err, i)
		}
		cb.entries = append(cb.entries, bindEntry{value: v})
	}
	return cb, nil
}

func (n normalizer) fromMap(m reflect.Value) (canonicalBind, error) {
	var (
		names = make(map[string]interface{})
		ints  = make(map[int64]interface{})
	)
	iter := m.MapRange()
	for iter.Next() {
		k := iter.Key()
		if k.Kind() == reflect.Interface {
			k = k.Elem()
		}
		switch k.Kind() {
		case reflect.String:
			names[k.String()] = iter.Value().Interface()
		case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
			ints[k.Int()] = iter.Value().Interface()
		case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
			ints[int64(k.Uint())] = iter.Value().Interface()
		default:
			return canonicalBind{}, fmt.Errorf("%w: unsupported key type %s", ErrMixedKeyShape, k.Kind())
		}
	}
	if len(names) > 0 && len(ints) > 0 {
		return canonicalBind{}, ErrMixedKeyShape
	}
	if len(ints) > 0 {
		list := make([]interface{}, len(ints))
		for i := range list {
			v, ok := ints[int64(i)]
			if !ok {
				return canonicalBind{}, fmt.Errorf("%w: keys are not sequential", ErrMixedKeyShape)
			}
			list[i] = v
		}
		return n.fromList(list)
	}

	keys := make([]string, 0, len(names))
	for k := range names {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	cb := canonicalBind{named: true, index: make(map[string]int, len(keys))}
	for _, k := range keys {
		key, ok := placeholderKey(k)
		if !ok {
			return canonicalBind{}, fmt.Errorf("%w: invalid placeholder name %q", ErrInvalidBindShape, k)
		}
		v, err := n.element(names[k])
		if err != nil {
			return canonicalBind{}, fmt.Errorf("%w (%s)", err, key)
		}
		cb.addNamed(key, v)
	}
	return cb, nil
}

// element normalizes a single value found inside a bind container.
func (n normalizer) element(el interface{}) (bindValue, error) {
	if f, ok := el.(func() interface{}); ok && f != nil {
		el = f()
	}
	if b, ok := el.(*Bind); ok && b != nil {
		return b.value()
	}
	if isScalar(el) {
		return n.scalar(el), nil
	}
	if list, ok := toList(el); ok {
		if len(list) == 0 {
			return bindValue{}, ErrEmptyInList
		}
		for _, v := range list {
			if !isScalar(v) {
				return bindValue{}, fmt.Errorf("%w: %T in IN-list", ErrInvalidBindValue, v)
			}
		}
		return bindValue{list: list, isList: true, typ: typeOf(list[0], n.detect)}, nil
	}
	return bindValue{}, fmt.Errorf("%w: %T", ErrInvalidBindValue, el)
}

func (n normalizer) scalar(v interface{}) bindValue {
	return bindValue{scalar: v, typ: typeOf(v, n.detect)}
}

// toList copies a slice or an array (except []byte) into a []interface{}.
func toList(v interface{}) ([]interface{}, bool) {
	switch l := v.(type) {
	case []interface{}:
		return append(make([]interface{}, 0, len(l)), l...), true
	case []byte:
		return nil, false
	}
	rv := reflect.ValueOf(v)
	if rv.Kind() != reflect.Slice && rv.Kind() != reflect.Array {
		return nil, false
	}
	list := make([]interface{}, rv.Len())
	for i := range list {
		list[i] = rv.Index(i).Interface()
	}
	return list, true
}
