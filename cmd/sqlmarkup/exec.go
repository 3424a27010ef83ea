package main

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/leporo/sqlmarkup"
)

var noRows bool

var execCmd = &cobra.Command{
	Use:   "exec [template-file]",
	Short: "Expand a template and run it against a database",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, c, tpl, bind, err := setup(args)
		if err != nil {
			return fail(err)
		}
		if cfg.DSN == "" {
			return fail(errors.New("no data source name, set --dsn or SQLMARKUP_DSN"))
		}
		stmt, err := c.Prepare(tpl, bind)
		if err != nil {
			return fail(err)
		}

		db, err := sql.Open(cfg.Driver, cfg.DSN)
		if err != nil {
			return fail(err)
		}
		defer db.Close()

		if err := run(cmd.Context(), db, stmt, color.Output); err != nil {
			return fail(err)
		}
		return nil
	},
}

func init() {
	execCmd.Flags().BoolVar(&noRows, "no-rows", false, "execute a statement that returns no rows and print the affected row count")
}

func run(ctx context.Context, db sqlmarkup.Executor, stmt *sqlmarkup.Stmt, out io.Writer) error {
	if noRows {
		res, err := stmt.Exec(ctx, db)
		if err != nil {
			return err
		}
		n, err := res.RowsAffected()
		if err != nil {
			return err
		}
		color.New(color.FgGreen).Fprintf(out, "%d row(s) affected\n", n)
		return nil
	}
	return printRows(ctx, db, stmt, out)
}

func printRows(ctx context.Context, db sqlmarkup.Executor, stmt *sqlmarkup.Stmt, out io.Writer) error {
	w := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	var (
		count   int
		values  []interface{}
		ptrs    []interface{}
		scanErr error
	)
	err := stmt.Query(ctx, db, func(rows *sql.Rows) {
		if scanErr != nil {
			return
		}
		if values == nil {
			cols, err := rows.Columns()
			if err != nil {
				scanErr = err
				return
			}
			values = make([]interface{}, len(cols))
			ptrs = make([]interface{}, len(cols))
			for i := range values {
				ptrs[i] = &values[i]
			}
			fmt.Fprintln(w, strings.Join(cols, "\t"))
		}
		if err := rows.Scan(ptrs...); err != nil {
			scanErr = err
			return
		}
		cells := make([]string, len(values))
		for i, v := range values {
			cells[i] = formatValue(v)
		}
		fmt.Fprintln(w, strings.Join(cells, "\t"))
		count++
	})
	if err == nil {
		err = scanErr
	}
	if err != nil {
		return err
	}
	if err := w.Flush(); err != nil {
		return err
	}
	color.New(color.Faint).Fprintf(out, "(%d row(s))\n", count)
	return nil
}

func formatValue(v interface{}) string {
	switch v := v.(type) {
	case nil:
		return "NULL"
	case []byte:
		return string(v)
	}
	return fmt.Sprint(v)
}
