package main

import (
	"encoding/json"
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/goliatone/go-calckit/pkg/model"
	"github.com/goliatone/go-calckit/pkg/validation"
)

type validateOutput struct {
	validation.Report
	OK        bool     `json:"ok"`
	Unmatched []string `json:"unmatchedOverlays,omitempty"`
}

func newValidateCmd(a *app) *cobra.Command {
	var format string
	var noWarnings bool

	cmd := &cobra.Command{
		Use:   "validate",
		Short: "Check every calculator definition and exit non-zero on errors",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			catalog, err := a.catalog(cmd.Context())
			if err != nil {
				return err
			}
			var opts []validation.Option
			if noWarnings {
				opts = append(opts, validation.WithoutWarnings())
			}
			report := validation.Validate(catalog.Registry.Source(), opts...)
			out := validateOutput{Report: report, OK: report.OK(), Unmatched: catalog.Unmatched}

			switch format {
			case "json":
				enc := json.NewEncoder(a.out)
				enc.SetIndent("", "  ")
				if err := enc.Encode(out); err != nil {
					return fmt.Errorf("encode report: %w", err)
				}
			case "text":
				printReport(a.out, out)
			default:
				return fmt.Errorf("unknown format %q (text or json)", format)
			}

			if !report.OK() {
				return exitError{code: 1, msg: fmt.Sprintf("%d validation errors", len(report.Errors))}
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&format, "format", "text", "output format: text or json")
	cmd.Flags().BoolVar(&noWarnings, "no-warnings", false, "skip warnings for missing meta and content")
	return cmd
}

func printReport(w io.Writer, out validateOutput) {
	stats := out.Stats
	fmt.Fprintln(w, headingStyle.Render("Catalog"))
	fmt.Fprintf(w, "  %d definitions, %d unique ids\n", stats.Total, stats.Unique)

	categories := make([]string, 0, len(stats.PerCategory))
	for c := range stats.PerCategory {
		categories = append(categories, string(c))
	}
	sort.Strings(categories)
	for _, c := range categories {
		fmt.Fprintf(w, "  %s %d\n", idStyle.Render(c), stats.PerCategory[model.Category(c)])
	}
	for _, dup := range stats.Duplicates {
		fmt.Fprintf(w, "  %s %q at %s (canonical #%d)\n", warnStyle.Render("duplicate"), dup.ID, joinIndexes(dup.Indexes), dup.Canonical())
	}

	printIssues(w, "Errors", errorStyle, out.Errors)
	printIssues(w, "Warnings", warnStyle, out.Warnings)
	for _, id := range out.Unmatched {
		fmt.Fprintf(w, "%s overlay %q matches no calculator\n", warnStyle.Render("!"), id)
	}

	if out.OK {
		fmt.Fprintln(w, okStyle.Render("OK"))
		return
	}
	fmt.Fprintln(w, errorStyle.Render(fmt.Sprintf("FAILED: %d errors", len(out.Errors))))
}

func printIssues(w io.Writer, title string, style lipgloss.Style, issues []validation.Issue) {
	if len(issues) == 0 {
		return
	}
	fmt.Fprintln(w, headingStyle.Render(fmt.Sprintf("%s (%d)", title, len(issues))))
	grouped := validation.ByCode(issues)
	codes := make([]string, 0, len(grouped))
	for code := range grouped {
		codes = append(codes, code)
	}
	sort.Strings(codes)
	for _, code := range codes {
		fmt.Fprintf(w, "  %s\n", style.Render(code))
		for _, issue := range grouped[code] {
			fmt.Fprintf(w, "    %s\n", issue.String())
		}
	}
}

func joinIndexes(indexes []int) string {
	parts := make([]string, len(indexes))
	for i, idx := range indexes {
		parts[i] = fmt.Sprintf("#%d", idx)
	}
	return strings.Join(parts, ", ")
}
