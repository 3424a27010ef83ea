package sqlmarkup

import (
	"fmt"
	"log/slog"
	"strconv"
	"strings"

	"github.com/valyala/bytebufferpool"
)

// MaxLabelDepth limits label nesting. A label whose SQL includes the label itself hits it.
const MaxLabelDepth = 64

/*
Compiler turns SQL templates with {{label}} markup into SQL statements
with named placeholders and a map of values to be bound to them.

A Compiler keeps registered labels for its whole lifetime:

	c := sqlmarkup.New()
	c.Register("active", []interface{}{true})
	sql, params, err := c.Compile("SELECT * FROM users WHERE 1=1 {{active: AND active = ?}}", nil)

Labels are usually registered per statement, so create a Compiler for each
statement built, or call Reset between builds. Compile can be called
concurrently; registering labels while another goroutine compiles a
statement depending on them makes the result unpredictable.
*/
type Compiler struct {
	override bool
	norm     normalizer
	dialect  *Dialect
	cache    *tokenCache
	log      *slog.Logger
	labels   labelRegistry
}

// Option configures a Compiler.
type Option func(*Compiler)

// WithOverride controls label re-registration. When allowed, which is the
// default, a later Register call replaces an earlier one. Otherwise the
// first registration sticks.
func WithOverride(allow bool) Option {
	return func(c *Compiler) {
		c.override = allow
	}
}

// WithTypeDetection makes values bound without an explicit type get
// TypeInt, TypeBool, TypeNull or TypeLOB tags depending on their Go type.
// By default such values are tagged as TypeString.
func WithTypeDetection(detect bool) Option {
	return func(c *Compiler) {
		c.norm.detect = detect
	}
}

// WithDialect sets a dialect used by Prepare. Named is the default.
func WithDialect(d *Dialect) Option {
	return func(c *Compiler) {
		c.dialect = d
	}
}

// WithCacheSize sets the number of tokenized templates to keep.
// Zero means DefaultCacheSize, a negative value disables caching.
func WithCacheSize(size int) Option {
	return func(c *Compiler) {
		c.cache = newTokenCache(size)
	}
}

// WithLogger sets a logger for debug messages.
func WithLogger(l *slog.Logger) Option {
	return func(c *Compiler) {
		c.log = l
	}
}

// New creates a Compiler.
func New(opts ...Option) *Compiler {
	c := &Compiler{
		override: true,
		dialect:  Named,
		cache:    newTokenCache(DefaultCacheSize),
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.log == nil {
		c.log = slog.New(slog.DiscardHandler)
	}
	if c.dialect == nil {
		c.dialect = Named
	}
	return c
}

func (c *Compiler) normalize(bind interface{}) (canonicalBind, error) {
	return c.norm.normalize(bind)
}

/*
Compile expands labels of a template and replaces placeholders with
unique names.

bind is either positional, for ? placeholders, or named, for :name ones:

	c.Compile("SELECT * FROM t WHERE id = ?", []interface{}{42})
	// SELECT * FROM t WHERE id = :__1__

	c.Compile("SELECT * FROM t WHERE id IN (:ids)", map[string]interface{}{":ids": []int{1, 2}})
	// SELECT * FROM t WHERE id IN (:ids_1__,:ids_2__)

Quoted literals are never searched for placeholders. Nothing is returned
on failure, even if some labels were already expanded.
*/
func (c *Compiler) Compile(template string, bind interface{}) (string, Params, error) {
	root := canonicalBind{}
	if bind != nil {
		cb, err := c.normalize(bind)
		if err != nil {
			return "", nil, err
		}
		if !cb.suppressed {
			root = cb
		}
	}

	x := getExpander(c)
	defer putExpander(x)

	if err := x.expand(template, root); err != nil {
		c.log.Debug("sqlmarkup: compile failed", "error", err)
		return "", nil, err
	}
	sql, params := x.buf.String(), x.params
	c.log.Debug("sqlmarkup: compiled", "sql", sql, "params", len(params))
	return sql, params, nil
}

// expander holds the state of a single Compile call shared by all nested labels.
type expander struct {
	c       *Compiler
	counter int
	params  Params
	// lists maps a named IN-list placeholder to its expansion
	lists map[string]string
	buf   *bytebufferpool.ByteBuffer
	depth int
}

func (x *expander) expand(template string, bind canonicalBind) error {
	tokens := x.c.cache.tokens(template)

	positional, named := 0, 0
	for _, t := range tokens {
		switch t.kind {
		case tokenPositional:
			positional++
		case tokenNamed:
			named++
		}
	}
	if positional > 0 && named > 0 {
		return fmt.Errorf("%w: %d positional and %d named in %q", ErrMixedPlaceholderStyle, positional, named, template)
	}
	if positional > 0 && positional != bind.positional() {
		return fmt.Errorf("%w: %d placeholders, %d values bound in %q", ErrBindArityMismatch, positional, bind.positional(), template)
	}

	last, next := 0, 0
	for _, t := range tokens {
		x.buf.WriteString(template[last:t.start])
		last = t.end
		switch t.kind {
		case tokenPositional:
			x.positional(bind.entries[next].value)
			next++
		case tokenNamed:
			if err := x.named(t.name, bind); err != nil {
				return err
			}
		case tokenLabel:
			if err := x.label(t); err != nil {
				return err
			}
		}
	}
	x.buf.WriteString(template[last:])
	return nil
}

// positional writes :__n__ or :__n_1__,:__n_2__... for an IN-list.
func (x *expander) positional(v bindValue) {
	n := strconv.Itoa(x.counter)
	x.counter++
	if !v.isList {
		x.put(":__"+n+"__", v.scalar, v.typ)
		return
	}
	for j, el := range v.list {
		if j > 0 {
			x.buf.WriteByte(',')
		}
		x.put(":__"+n+"_"+strconv.Itoa(j+1)+"__", el, v.typ)
	}
}

func (x *expander) named(key string, bind canonicalBind) error {
	if _, ok := x.params[key]; ok {
		x.buf.WriteString(key)
		return nil
	}
	if keys, ok := x.lists[key]; ok {
		x.buf.WriteString(keys)
		return nil
	}
	v, ok := bind.lookup(key)
	if !ok {
		return fmt.Errorf("%w: %s", ErrUnboundPlaceholder, key)
	}
	if !v.isList {
		x.put(key, v.scalar, v.typ)
		return nil
	}
	keys := make([]string, len(v.list))
	for j, el := range v.list {
		keys[j] = key + "_" + strconv.Itoa(j+1) + "__"
		x.params[keys[j]] = Param{Name: keys[j], Value: el, Type: v.typ}
	}
	joined := strings.Join(keys, ",")
	x.lists[key] = joined
	x.buf.WriteString(joined)
	return nil
}

func (x *expander) label(t token) error {
	e := x.c.labels.get(t.name)
	if e.bind.suppressed {
		return nil
	}
	fragment, ok := t.fragment, t.hasFragment
	if strings.TrimSpace(e.sql) != "" {
		fragment, ok = e.sql, true
	}
	// {{x}} without registered SQL has nothing to expand, {{x:}} is an empty fragment
	if !ok {
		return nil
	}
	if x.depth >= MaxLabelDepth {
		return fmt.Errorf("%w: {{%s}}", ErrLabelDepth, t.name)
	}
	x.depth++
	err := x.expand(fragment, e.bind)
	x.depth--
	if err != nil {
		return fmt.Errorf("{{%s}}: %w", t.name, err)
	}
	return nil
}

// put records a parameter and writes its placeholder.
func (x *expander) put(key string, value interface{}, typ Type) {
	x.params[key] = Param{Name: key, Value: value, Type: typ}
	x.buf.WriteString(key)
}
