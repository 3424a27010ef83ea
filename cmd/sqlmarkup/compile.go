package main

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/leporo/sqlmarkup"
)

var showArgs bool

var compileCmd = &cobra.Command{
	Use:   "compile [template-file]",
	Short: "Expand a template and print SQL with its parameters",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		_, c, tpl, bind, err := setup(args)
		if err != nil {
			return fail(err)
		}
		stmt, err := c.Prepare(tpl, bind)
		if err != nil {
			return fail(err)
		}
		printStmt(stmt, showArgs)
		return nil
	},
}

func init() {
	compileCmd.Flags().BoolVar(&showArgs, "args", false, "print dialect-specific SQL and driver arguments")
}

func printStmt(stmt *sqlmarkup.Stmt, args bool) {
	out := color.Output
	header := color.New(color.FgCyan, color.Bold)
	name := color.New(color.FgYellow)
	faint := color.New(color.Faint)

	header.Fprintln(out, "SQL:")
	fmt.Fprintln(out, stmt.SQL())

	params := stmt.Params()
	if len(params) > 0 {
		header.Fprintln(out, "Params:")
		for _, n := range params.Names() {
			p := params[n]
			name.Fprintf(out, "  %s", n)
			fmt.Fprintf(out, " = %#v ", p.Value)
			faint.Fprintf(out, "(%s)\n", p.Type)
		}
	}

	if !args {
		return
	}
	header.Fprintf(out, "%s SQL:\n", stmt.Dialect())
	fmt.Fprintln(out, stmt.String())
	if len(stmt.Args()) > 0 {
		header.Fprintln(out, "Args:")
		for i, a := range stmt.Args() {
			name.Fprintf(out, "  %d", i+1)
			fmt.Fprintf(out, " = %#v\n", a)
		}
	}
}
