// Package sqlmarkup compiles SQL templates with optional fragments.
/*

SQL Markup

A template is plain SQL with placeholders and labels:

	SELECT * FROM users
	WHERE status = :status
	{{age_in: AND age IN (?)}}
	{{order}}

A label is replaced with its inline fragment, with SQL registered for it or
with nothing, depending on what was registered before compiling:

	c := sqlmarkup.New()
	c.Register("age_in", sqlmarkup.Int([]int{18, 24, 36}))
	c.RegisterSQL("order", "ORDER BY name", []interface{}{})
	sql, params, err := c.Compile(tpl, map[string]interface{}{":status": "active"})

produces

	SELECT * FROM users
	WHERE status = :status
	 AND age IN (:__1_1__,:__1_2__,:__1_3__)
	ORDER BY name

and a Params map holding :status, :__1_1__, :__1_2__ and :__1_3__ along with
their type tags.

Placeholders inside quoted literals are left alone. A label fragment can hold
other labels, each nested label is expanded with values registered for it.

Use Prepare to get a statement converted to a Dialect and ready to be
executed with database/sql.
*/
package sqlmarkup
