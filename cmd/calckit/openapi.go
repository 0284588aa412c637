package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/goliatone/go-calckit/pkg/openapi"
)

func newOpenAPICmd(a *app) *cobra.Command {
	var format, output, server string

	cmd := &cobra.Command{
		Use:   "openapi",
		Short: "Print the OpenAPI document of the HTTP API",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			catalog, err := a.catalog(cmd.Context())
			if err != nil {
				return err
			}
			doc, err := openapi.Build(cmd.Context(), catalog.Registry, openapi.WithServer(server))
			if err != nil {
				return err
			}
			data, err := openapi.Marshal(doc)
			if err != nil {
				return err
			}
			switch format {
			case "json":
			case "yaml":
				var tree any
				if err := json.Unmarshal(data, &tree); err != nil {
					return fmt.Errorf("convert document: %w", err)
				}
				if data, err = yaml.Marshal(tree); err != nil {
					return fmt.Errorf("encode yaml: %w", err)
				}
			default:
				return fmt.Errorf("unknown format %q (json or yaml)", format)
			}

			if output == "" {
				_, err = a.out.Write(append(data, '\n'))
				return err
			}
			if err := os.WriteFile(output, data, 0o644); err != nil {
				return fmt.Errorf("write %s: %w", output, err)
			}
			fmt.Fprintf(a.out, "OpenAPI document written to %s\n", output)
			return nil
		},
	}
	cmd.Flags().StringVar(&format, "format", "json", "output format: json or yaml")
	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (stdout if empty)")
	cmd.Flags().StringVar(&server, "server", "", "server URL listed in the document")
	return cmd
}
