package main

import (
	"fmt"
	"strings"

	"videobot/internal/core/querycompiler"
	answersdom "videobot/internal/services/answers/domain"
	answersmod "videobot/internal/services/answers/module"
	"videobot/internal/services/answers/service"

	"github.com/goccy/go-json"
	"github.com/spf13/cobra"
)

func newCompileCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "compile <question>",
		Short: "Print the query a question compiles to, without touching the database",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := querycompiler.New(answersmod.FromConfig(a.root).Compiler)
			if err != nil {
				return err
			}
			out := c.Compile(strings.Join(args, " "))
			b, err := json.MarshalIndent(answersdom.CompileOutput{
				Intent: out.Intent.String(),
				SQL:    out.SQL,
				Args:   service.DisplayArgs(out.Args),
			}, "", "  ")
			if err != nil {
				return err
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), string(b))
			return err
		},
	}
}
