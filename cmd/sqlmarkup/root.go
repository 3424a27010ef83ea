package main

import (
	"errors"
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/leporo/sqlmarkup"
)

var (
	cfgFile   string
	inputFile string
	inlineSQL string
)

var rootCmd = &cobra.Command{
	Use:   "sqlmarkup",
	Short: "Compile SQL markup templates",
	Long: `sqlmarkup expands SQL templates with ? and :name placeholders
and {{label: fragment}} sections into plain SQL with named parameters.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	flags := rootCmd.PersistentFlags()
	flags.StringVar(&cfgFile, "config", "", "config file (default is ./.sqlmarkup.yaml)")
	flags.StringVarP(&inputFile, "input", "i", "", "YAML file with bind values and labels")
	flags.StringVarP(&inlineSQL, "template", "t", "", "template text, overrides the template file argument")
	flags.String("driver", "", "database driver: sqlite3, postgres, pgx or mysql")
	flags.String("dsn", "", "data source name")
	flags.String("dialect", "", "placeholder dialect: named, postgres or question")
	flags.Bool("keep-first", false, "keep the first registration of a label")
	flags.Bool("detect-types", false, "tag parameters by their Go value type")
	flags.Int("cache-size", 0, "number of tokenized templates to cache")
	flags.Bool("debug", false, "log debug messages to stderr")

	for _, name := range []string{"driver", "dsn", "dialect", "keep-first", "detect-types", "cache-size", "debug"} {
		_ = viper.BindPFlag(name, flags.Lookup(name))
	}

	rootCmd.AddCommand(compileCmd, execCmd)
}

// setup loads configuration and input, registers input labels and
// returns the compiler along with the template and its top-level bind.
func setup(args []string) (*config, *sqlmarkup.Compiler, string, interface{}, error) {
	cfg, err := loadConfig(viper.GetViper(), cfgFile)
	if err != nil {
		return nil, nil, "", nil, err
	}
	c, err := cfg.compiler()
	if err != nil {
		return nil, nil, "", nil, err
	}
	in, err := readInput(inputFile)
	if err != nil {
		return nil, nil, "", nil, err
	}
	if err := in.apply(c); err != nil {
		return nil, nil, "", nil, err
	}
	tpl, err := readTemplate(args)
	if err != nil {
		return nil, nil, "", nil, err
	}
	return cfg, c, tpl, in.Bind, nil
}

func readTemplate(args []string) (string, error) {
	if inlineSQL != "" {
		return inlineSQL, nil
	}
	if len(args) == 0 {
		return "", errors.New("no template given, pass a file name, - or --template")
	}
	data, err := readFile(args[0])
	if err != nil {
		return "", err
	}
	return string(data), nil
}

func fail(err error) error {
	color.New(color.FgRed, color.Bold).Fprintf(color.Error, "Error: ")
	fmt.Fprintln(color.Error, err)
	return err
}
