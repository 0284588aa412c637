package main

import (
	"fmt"

	"github.com/AlecAivazis/survey/v2/terminal"
	"github.com/spf13/cobra"

	"github.com/goliatone/go-calckit/pkg/render"
	"github.com/goliatone/go-calckit/pkg/renderers/tui"
)

func newRunCmd(a *app) *cobra.Command {
	var format string
	var prefill map[string]string
	var attempts int

	cmd := &cobra.Command{
		Use:   "run <id>",
		Short: "Answer a calculator's inputs interactively and print the results",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			driver := a.driver
			if driver == nil {
				driver = a.surveyDriver()
			}
			renderer, err := tui.New(
				tui.WithPromptDriver(driver),
				tui.WithOutputFormat(tui.OutputFormat(format)),
				tui.WithMaxAttempts(attempts),
			)
			if err != nil {
				return err
			}
			switch tui.OutputFormat(format) {
			case tui.OutputFormatJSON, tui.OutputFormatFormURLEncoded, tui.OutputFormatPrettyText:
			default:
				return fmt.Errorf("unknown format %q (json, form or pretty)", format)
			}

			orch, bundle, err := a.orchestrator(ctx)
			if err != nil {
				return err
			}
			locale := a.resolveLocale(bundle)
			def, err := orch.Definition(ctx, args[0], locale)
			if err != nil {
				return err
			}
			opts, err := orch.RenderOptions(locale, a.cfg.Theme.Name, a.cfg.Theme.Variant)
			if err != nil {
				return err
			}
			out, err := renderer.Render(ctx, render.Page{Definition: def, Raw: prefill}, opts)
			if err != nil {
				return err
			}
			_, err = a.out.Write(out)
			if err == nil && len(out) > 0 && out[len(out)-1] != '\n' {
				_, err = fmt.Fprintln(a.out)
			}
			return err
		},
	}
	cmd.Flags().StringVar(&format, "format", string(tui.OutputFormatPrettyText), "output format: json, form or pretty")
	cmd.Flags().StringToStringVar(&prefill, "set", nil, "prefill answers, e.g. --set side=5")
	cmd.Flags().IntVar(&attempts, "attempts", tui.DefaultMaxAttempts, "re-ask an invalid answer at most this many times")
	return cmd
}

// surveyDriver prompts on the command streams when they are terminal files.
func (a *app) surveyDriver() *tui.SurveyDriver {
	in, inOK := a.in.(terminal.FileReader)
	out, outOK := a.out.(terminal.FileWriter)
	if inOK && outOK {
		return tui.NewSurveyDriver(a.out, tui.WithStdio(in, out, a.err), tui.WithPageSize(10))
	}
	return tui.NewSurveyDriver(a.out, tui.WithPageSize(10))
}
