package main

import (
	"fmt"
	"strings"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"fbnoi.com/mirror-upload/template"
)

func newTemplateCmd() *cobra.Command {
	var (
		vars    []string
		env     bool
		explain bool
	)
	cmd := &cobra.Command{
		Use:   "template <text>",
		Short: "Parse a template and print its resolved value",
		Example: `  mirror-upload template '${version}+1.20.1' --var version=1.0.0
  mirror-upload template 'v$tag' --explain`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			tpl, err := template.Parse(args[0])
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			if explain {
				for _, p := range tpl.Parts() {
					switch p := p.(type) {
					case *template.Text:
						fmt.Fprintf(out, "text     %q\n", p.Content)
					case *template.Variable:
						fmt.Fprintf(out, "variable %s\n", p.Name)
					}
				}

				return nil
			}

			params := template.Params{}
			for _, v := range vars {
				name, value, ok := strings.Cut(v, "=")
				if !ok {
					return errors.Errorf("invalid --var %q, expected name=value", v)
				}
				params[name] = value
			}
			lookup := params.Lookup()
			if env {
				lookup = template.Chain(lookup, template.Env())
			}
			if err = tpl.Validate(lookup); err != nil {
				return err
			}
			s, err := tpl.Resolve(lookup)
			if err != nil {
				return err
			}
			fmt.Fprintln(out, s)

			return nil
		},
	}
	cmd.Flags().StringArrayVar(&vars, "var", nil, "variable value as name=value (repeatable)")
	cmd.Flags().BoolVar(&env, "env", false, "fall back to environment variables")
	cmd.Flags().BoolVar(&explain, "explain", false, "print the parsed parts instead of resolving")

	return cmd
}
