package sqlmarkup

import (
	"fmt"
	"strconv"

	"github.com/valyala/bytebufferpool"
)

/*
Dialect defines how compiled statements are passed to a database driver.

Compiled SQL always refers to values by :name. Named dialect leaves SQL as
is and orders arguments by first appearance of each name, the way SQLite
numbers named parameters. PostgreSQL dialect replaces placeholders with
$1, $2... and Question dialect replaces every placeholder with ? for MySQL:

	c := sqlmarkup.New(sqlmarkup.WithDialect(sqlmarkup.PostgreSQL))

Named arguments (sql.Named) are not used as database/sql only accepts
names starting with a letter.
*/
type Dialect struct {
	name string
	// placeholder formats a reference to n-th argument
	placeholder func(name string, n int) string
	// reuse makes repeated names refer to the same argument
	reuse bool
}

var (
	// Named keeps :name placeholders.
	Named = &Dialect{
		name:        "named",
		placeholder: func(name string, _ int) string { return name },
		reuse:       true,
	}
	// PostgreSQL numbers placeholders: $1, $2...
	PostgreSQL = &Dialect{
		name:        "postgres",
		placeholder: func(_ string, n int) string { return "$" + strconv.Itoa(n) },
		reuse:       true,
	}
	// Question replaces placeholders with ?, every occurrence gets its own argument.
	Question = &Dialect{
		name:        "question",
		placeholder: func(string, int) string { return "?" },
	}
)

// DialectFor returns a dialect suitable for a database/sql driver name.
func DialectFor(driver string) *Dialect {
	switch driver {
	case "postgres", "pgx", "cockroach":
		return PostgreSQL
	case "mysql":
		return Question
	}
	return Named
}

func (d *Dialect) String() string {
	return d.name
}

// Args converts compiled SQL and parameters into a query and a list of
// arguments to be passed to database/sql.
func (d *Dialect) Args(query string, params Params) (string, []interface{}, error) {
	tokens := tokenize(query, maskQuotes(query))
	buf := bytebufferpool.Get()
	defer bytebufferpool.Put(buf)

	args := make([]interface{}, 0, len(params))
	argNo := make(map[string]int, len(params))
	last := 0
	for _, t := range tokens {
		if t.kind != tokenNamed {
			continue
		}
		p, ok := params[t.name]
		if !ok {
			return "", nil, fmt.Errorf("%w: %s", ErrUnboundPlaceholder, t.name)
		}
		buf.WriteString(query[last:t.start])
		last = t.end

		n, seen := argNo[t.name]
		if !seen || !d.reuse {
			args = append(args, p.Arg())
			n = len(args)
			argNo[t.name] = n
		}
		buf.WriteString(d.placeholder(t.name, n))
	}
	buf.WriteString(query[last:])
	return buf.String(), args, nil
}
