package cli

import (
	"bytes"
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"mixable/internal/build"
	"mixable/internal/diagnostic"
	"mixable/internal/gen"
	"mixable/internal/resolve"
	"mixable/internal/schema"
)

func (a *app) newBuildCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "build FILE...",
		Short: "Merge documents and write their declared outputs",
		Long: `Resolve each document's base-file chain, then write the merged XML and
the generated sources its metadata declares. Documents are built
concurrently; nothing is written for a document that reports errors.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			b := build.New(a.fs, a.logger)
			b.DryRun = a.cfg.DryRun

			outcomes, err := b.BuildAll(cmd.Context(), args)
			if err != nil {
				return err
			}

			for _, o := range outcomes {
				if _, err := a.report(cmd, o.Diagnostics); err != nil {
					return err
				}

				if o.Result == nil {
					continue
				}

				verb := "wrote"
				paths := o.Result.Written

				if b.DryRun {
					verb = "would write"
					paths = filePaths(o.Result.Files)
				}

				for _, p := range paths {
					a.status(cmd.OutOrStdout(), color.FgGreen, "%s %s", verb, p)
				}
			}

			if build.Failed(outcomes) {
				return ErrFailed
			}

			return nil
		},
	}

	cmd.Flags().Bool("dry-run", false, "report outputs without writing them")

	return cmd
}

func filePaths(files []gen.GeneratedFile) []string {
	var paths []string

	for _, f := range files {
		if f.Path != "" {
			paths = append(paths, f.Path)
		}
	}

	return paths
}

func (a *app) newCheckCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "check FILE...",
		Short: "Validate documents without writing anything",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			b := build.New(a.fs, a.logger)
			b.DryRun = true

			outcomes, err := b.BuildAll(cmd.Context(), args)
			if err != nil {
				return err
			}

			for _, o := range outcomes {
				if _, err := a.report(cmd, o.Diagnostics); err != nil {
					return err
				}

				if o.Result != nil {
					a.status(cmd.OutOrStdout(), color.FgGreen, "ok %s", o.Path)
				}
			}

			if build.Failed(outcomes) {
				return ErrFailed
			}

			return nil
		},
	}
}

// resolved resolves and validates path, printing diagnostics. It returns
// nil after reporting when the chain has errors.
func (a *app) resolved(cmd *cobra.Command, path string) (*resolve.Chain, error) {
	diags := &diagnostic.Diagnostics{}

	chain, ok := resolve.New(a.fs, a.logger).Resolve(path, diags)
	if ok {
		schema.Validate(chain.Root, diags)
	}

	failed, err := a.report(cmd, diags)
	if err != nil {
		return nil, err
	}

	if failed {
		return nil, ErrFailed
	}

	return chain, nil
}

func (a *app) newMergeCommand() *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:   "merge FILE",
		Short: "Print the merged XML of a document chain",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			chain, err := a.resolved(cmd, args[0])
			if err != nil {
				return err
			}

			data, err := chain.Root.Document().Bytes()
			if err != nil {
				return fmt.Errorf("serializing merged document: %w", err)
			}

			if output == "" {
				_, err = cmd.OutOrStdout().Write(data)

				return err
			}

			if err := gen.WriteFile(a.fs, output, data); err != nil {
				return err
			}

			a.status(cmd.ErrOrStderr(), color.FgGreen, "wrote %s", output)

			return nil
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "write the merged XML to this file instead of stdout")

	return cmd
}

func (a *app) newSchemaCommand() *cobra.Command {
	var format string

	cmd := &cobra.Command{
		Use:   "schema FILE",
		Short: "Describe the schema of a document chain",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if format != "yaml" && format != "json" {
				return fmt.Errorf("format must be \"yaml\" or \"json\", got: %s", format)
			}

			chain, err := a.resolved(cmd, args[0])
			if err != nil {
				return err
			}

			desc := schema.Describe(chain.Root)

			var buf bytes.Buffer
			if format == "json" {
				err = desc.WriteJSON(&buf)
			} else {
				err = desc.WriteYAML(&buf)
			}

			if err != nil {
				return err
			}

			_, err = buf.WriteTo(cmd.OutOrStdout())

			return err
		},
	}

	cmd.Flags().StringVar(&format, "format", "yaml", "output format: yaml or json")

	return cmd
}
