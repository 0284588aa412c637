package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/glamour"
	"github.com/spf13/cobra"

	"github.com/goliatone/go-calckit/pkg/model"
	"github.com/goliatone/go-calckit/pkg/render"
)

func newListCmd(a *app) *cobra.Command {
	var category string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List calculators grouped by category",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			orch, bundle, err := a.orchestrator(cmd.Context())
			if err != nil {
				return err
			}
			if category != "" && !model.Category(category).Valid() {
				return fmt.Errorf("unknown category %q", category)
			}
			locale := a.resolveLocale(bundle)
			l := render.NewLocalizer(render.RenderOptions{Locale: locale, Translator: bundle})
			for _, group := range orch.Catalog().Categories() {
				if category != "" && string(group.Category) != category {
					continue
				}
				fmt.Fprintln(a.out, headingStyle.Render(l.Category(group.Category)))
				for _, def := range group.Definitions {
					def = l.Definition(def)
					fmt.Fprintf(a.out, "  %s %s\n", idStyle.Render(def.ID), def.Title)
				}
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&category, "category", "", "only list this category")
	return cmd
}

func newSearchCmd(a *app) *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "search <query>",
		Short: "Find calculators by title, description, category or keyword",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			orch, bundle, err := a.orchestrator(cmd.Context())
			if err != nil {
				return err
			}
			query := strings.Join(args, " ")
			matches, err := orch.Search(cmd.Context(), query, limit, a.resolveLocale(bundle))
			if err != nil {
				return err
			}
			if len(matches) == 0 {
				fmt.Fprintln(a.out, mutedStyle.Render(fmt.Sprintf("no calculators match %q", query)))
				return nil
			}
			for _, def := range matches {
				fmt.Fprintf(a.out, "%s %s\n", idStyle.Render(def.ID), def.Title)
			}
			return nil
		},
	}
	cmd.Flags().IntVar(&limit, "limit", 0, "maximum number of matches (default 5)")
	return cmd
}

func newShowCmd(a *app) *cobra.Command {
	var style string
	var raw bool
	var width int

	cmd := &cobra.Command{
		Use:   "show <id>",
		Short: "Describe one calculator",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			orch, bundle, err := a.orchestrator(cmd.Context())
			if err != nil {
				return err
			}
			locale := a.resolveLocale(bundle)
			def, err := orch.Definition(cmd.Context(), args[0], locale)
			if err != nil {
				return err
			}
			l := render.NewLocalizer(render.RenderOptions{Locale: locale, Translator: bundle})
			doc := definitionMarkdown(def, l)
			if raw {
				_, err := io.WriteString(a.out, doc)
				return err
			}

			options := []glamour.TermRendererOption{glamour.WithWordWrap(width)}
			if style == "" || style == "auto" {
				options = append(options, glamour.WithAutoStyle())
			} else {
				options = append(options, glamour.WithStandardStyle(style))
			}
			renderer, err := glamour.NewTermRenderer(options...)
			if err != nil {
				return fmt.Errorf("markdown renderer: %w", err)
			}
			rendered, err := renderer.Render(doc)
			if err != nil {
				return fmt.Errorf("render markdown: %w", err)
			}
			_, err = io.WriteString(a.out, rendered)
			return err
		},
	}
	cmd.Flags().StringVar(&style, "style", "auto", "glamour style: auto, dark, light or notty")
	cmd.Flags().BoolVar(&raw, "raw", false, "print markdown without terminal styling")
	cmd.Flags().IntVar(&width, "width", 80, "wrap width")
	return cmd
}

// definitionMarkdown describes def for the terminal. Section bodies may
// carry sanitised inline HTML which glamour passes through.
func definitionMarkdown(def model.Definition, l render.Localizer) string {
	var b strings.Builder
	fmt.Fprintf(&b, "# %s\n\n", def.Title)
	if def.Description != "" {
		fmt.Fprintf(&b, "%s\n\n", def.Description)
	}
	fmt.Fprintf(&b, "*%s* · `%s`\n\n", l.Category(def.Category), def.ID)

	fmt.Fprintf(&b, "## %s\n\n", l.Text("ui.inputs", "Inputs"))
	b.WriteString("| id | label | type | range |\n|---|---|---|---|\n")
	for _, input := range def.Inputs {
		label := input.Label
		if input.Unit != "" {
			label += " (" + input.Unit + ")"
		}
		fmt.Fprintf(&b, "| `%s` | %s | %s | %s |\n", input.ID, label, describeType(input), describeRange(input))
	}

	fmt.Fprintf(&b, "\n## %s\n\n", l.Text("ui.results", "Results"))
	for _, output := range def.Outputs {
		fmt.Fprintf(&b, "- **%s** (`%s`)", output.Label, output.Key())
		if unit := firstNonEmpty(output.Currency, output.Unit); unit != "" {
			fmt.Fprintf(&b, " %s", unit)
		}
		b.WriteString("\n")
	}

	if def.Content != nil {
		for _, section := range def.Content.Sections {
			fmt.Fprintf(&b, "\n## %s\n\n%s\n", section.Heading, section.Body)
		}
		if len(def.Content.FAQ) > 0 {
			fmt.Fprintf(&b, "\n## %s\n", l.Text("ui.faq", "Frequently asked questions"))
			for _, faq := range def.Content.FAQ {
				fmt.Fprintf(&b, "\n**%s**\n\n%s\n", faq.Question, faq.Answer)
			}
		}
	}
	if len(def.Keywords) > 0 {
		fmt.Fprintf(&b, "\n_%s_\n", strings.Join(def.Keywords, ", "))
	}
	return b.String()
}

func describeType(input model.InputField) string {
	if input.Type != model.InputTypeSelect {
		return string(input.Type)
	}
	values := make([]string, len(input.Options))
	for i, opt := range input.Options {
		values[i] = opt.Value
	}
	return "select: " + strings.Join(values, " / ")
}

func describeRange(input model.InputField) string {
	switch {
	case input.Min != nil && input.Max != nil:
		return fmt.Sprintf("%g – %g", *input.Min, *input.Max)
	case input.Min != nil:
		return fmt.Sprintf("≥ %g", *input.Min)
	case input.Max != nil:
		return fmt.Sprintf("≤ %g", *input.Max)
	}
	return ""
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
