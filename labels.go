package sqlmarkup

import (
	"fmt"
	"sort"
	"strings"
	"sync"
)

type labelEntry struct {
	name string
	sql  string
	bind canonicalBind
}

type labelRegistry struct {
	mu      sync.RWMutex
	entries map[string]labelEntry
}

// put stores e unless keepFirst is set and the label is already registered.
func (r *labelRegistry) put(e labelEntry, keepFirst bool) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.entries == nil {
		r.entries = make(map[string]labelEntry)
	}
	if _, ok := r.entries[e.name]; ok && keepFirst {
		return false
	}
	r.entries[e.name] = e
	return true
}

// get returns a registered label or an empty entry expanding the inline fragment.
func (r *labelRegistry) get(name string) labelEntry {
	r.mu.RLock()
	e, ok := r.entries[name]
	r.mu.RUnlock()
	if !ok {
		return labelEntry{name: name}
	}
	return e
}

func (r *labelRegistry) names() []string {
	r.mu.RLock()
	names := make([]string, 0, len(r.entries))
	for name := range r.entries {
		names = append(names, name)
	}
	r.mu.RUnlock()
	sort.Strings(names)
	return names
}

func (r *labelRegistry) reset() {
	r.mu.Lock()
	r.entries = nil
	r.mu.Unlock()
}

/*
Register enables a {{label}} and binds values to placeholders of its fragment:

	c.Register("b", []interface{}{7})
	sql, params, err := c.Compile("SELECT * FROM t WHERE a=:a {{b: AND b=?}}", map[string]interface{}{":a": "x"})
	// SELECT * FROM t WHERE a=:a  AND b=:__1__

Passing nil as bind removes the label and its inline fragment from compiled SQL.
See RegisterSQL to replace the inline fragment.
*/
func (c *Compiler) Register(label string, bind interface{}) error {
	return c.RegisterSQL(label, "", bind)
}

/*
RegisterSQL sets a SQL fragment to be used instead of the inline fragment of a label.

	c.RegisterSQL("order", "ORDER BY {{order_field}} LIMIT ?", []interface{}{10})

An empty or blank fragment keeps the inline one.

If the compiler was created with WithOverride(false), only the first
registration of a label is stored, later calls are ignored.
*/
func (c *Compiler) RegisterSQL(label, fragment string, bind interface{}) error {
	if !isValidName(label) {
		return fmt.Errorf("%w: %q", ErrInvalidLabel, label)
	}
	cb, err := c.normalize(bind)
	if err != nil {
		return fmt.Errorf("label %s: %w", label, err)
	}
	if !c.labels.put(labelEntry{name: label, sql: fragment, bind: cb}, !c.override) {
		c.log.Debug("sqlmarkup: label already registered", "label", label)
		return nil
	}
	c.log.Debug("sqlmarkup: label registered",
		"label", label,
		"dropped", cb.suppressed,
		"override", strings.TrimSpace(fragment) != "",
		"values", len(cb.entries))
	return nil
}

// Enable expands the inline fragment of a label without any bound values.
func (c *Compiler) Enable(label string) error {
	return c.Register(label, []interface{}{})
}

// Drop removes a label and its inline fragment from compiled SQL.
func (c *Compiler) Drop(label string) error {
	return c.Register(label, nil)
}

// Labels returns registered label names, sorted.
func (c *Compiler) Labels() []string {
	return c.labels.names()
}

// Reset forgets all registered labels.
func (c *Compiler) Reset() {
	c.labels.reset()
}
