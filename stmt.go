package sqlmarkup

/*
Stmt is a compiled statement ready to be executed.

	var name string
	q, err := c.Prepare("SELECT name FROM users WHERE id = ?", []interface{}{42})
	if err != nil {
		return err
	}
	err = q.To(&name).QueryRow(ctx, db)
*/
type Stmt struct {
	sql     string
	params  Params
	dialect *Dialect
	query   string
	args    []interface{}
	dest    []interface{}
}

// Prepare compiles a template and converts it for the compiler dialect.
func (c *Compiler) Prepare(template string, bind interface{}) (*Stmt, error) {
	sql, params, err := c.Compile(template, bind)
	if err != nil {
		return nil, err
	}
	query, args, err := c.dialect.Args(sql, params)
	if err != nil {
		return nil, err
	}
	return &Stmt{
		sql:     sql,
		params:  params,
		dialect: c.dialect,
		query:   query,
		args:    args,
	}, nil
}

// SQL returns compiled SQL with :name placeholders.
func (q *Stmt) SQL() string {
	return q.sql
}

// String returns SQL to be sent to a database.
func (q *Stmt) String() string {
	return q.query
}

// Params returns compiled parameters.
func (q *Stmt) Params() Params {
	return q.params
}

// Args returns arguments to be passed to a database driver along with String().
func (q *Stmt) Args() []interface{} {
	return q.args
}

// Dialect returns the dialect the statement was prepared for.
func (q *Stmt) Dialect() *Dialect {
	return q.dialect
}

/*
To sets scan targets for columns returned by a query.

Accepts value pointers to be passed to sql.Rows.Scan by
Query and QueryRow methods.

	var (
		id   int64
		name string
	)
	q, _ := c.Prepare("SELECT id, name FROM users {{active: WHERE active = ?}}", nil)
	err := q.To(&id, &name).Query(ctx, db, func(rows *sql.Rows) {
		// ...
	})

Multiple To calls append targets in order.
*/
func (q *Stmt) To(dest ...interface{}) *Stmt {
	q.dest = append(q.dest, dest...)
	return q
}

// Dest returns value pointers set by To calls.
func (q *Stmt) Dest() []interface{} {
	return q.dest
}
