// Package cli wires the mixable commands together.
package cli

import (
	"errors"
	"fmt"
	"io"
	"runtime"

	"github.com/fatih/color"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"mixable/internal/config"
	"mixable/internal/diagnostic"
)

var (
	// Version information - set at build time
	Version   = "dev"
	GitCommit = "unknown"
	BuildDate = "unknown"
)

// ErrFailed is returned when a command reported error diagnostics. The
// diagnostics themselves have already been printed.
var ErrFailed = errors.New("errors reported")

// app is the state shared by every command of one invocation.
type app struct {
	fs      afero.Fs
	v       *viper.Viper
	cfgFile string
	cfg     *config.Config
	logger  *zap.Logger
}

// NewRootCommand creates the root command. Documents, config files and
// outputs are all accessed through fs.
func NewRootCommand(fs afero.Fs) *cobra.Command {
	a := &app{fs: fs, v: viper.New()}
	a.v.SetFs(fs)

	rootCmd := &cobra.Command{
		Use:   "mixable",
		Short: "Layered XML configuration with schema-checked overrides",
		Long: color.CyanString(`mixable - layered XML configuration

A base document defines the schema of a configuration. Override documents
name their base with BaseFile and may only change what the base allows.
mixable merges a chain, checks it, writes the merged XML and generates
typed loaders in C#, Python and Go.`),
		SilenceUsage:      true,
		SilenceErrors:     true,
		PersistentPreRunE: a.setup,
	}

	flags := rootCmd.PersistentFlags()
	flags.StringVar(&a.cfgFile, "config", "", "config file (default ./mixable.yaml)")
	flags.String("log-level", "warn", "log level: debug, info, warn, error")
	flags.BoolP("quiet", "q", false, "disable logging")
	flags.Bool("no-color", false, "disable coloured output")
	flags.String("format", config.FormatText, "diagnostic format: text or json")

	rootCmd.AddCommand(a.newBuildCommand())
	rootCmd.AddCommand(a.newCheckCommand())
	rootCmd.AddCommand(a.newMergeCommand())
	rootCmd.AddCommand(a.newSchemaCommand())
	rootCmd.AddCommand(NewVersionCommand())

	return rootCmd
}

func (a *app) setup(cmd *cobra.Command, _ []string) error {
	// Bind against the root's flags so a subcommand may reuse a flag name.
	root := cmd.Root().PersistentFlags()
	binds := map[string]*pflag.Flag{
		config.KeyLogLevel: root.Lookup("log-level"),
		config.KeyQuiet:    root.Lookup("quiet"),
		config.KeyNoColor:  root.Lookup("no-color"),
		config.KeyFormat:   root.Lookup("format"),
		config.KeyDryRun:   cmd.Flags().Lookup("dry-run"),
	}

	for key, flag := range binds {
		if flag == nil {
			continue
		}

		if err := a.v.BindPFlag(key, flag); err != nil {
			return fmt.Errorf("binding flag %s: %w", flag.Name, err)
		}
	}

	cfg, err := config.Load(a.v, a.cfgFile)
	if err != nil {
		return err
	}

	logger, err := cfg.Logger()
	if err != nil {
		return err
	}

	if cfg.NoColor {
		color.NoColor = true
	}

	a.cfg = cfg
	a.logger = logger

	return nil
}

// report prints diags for one document and reports whether it held errors.
// Text goes to stderr; JSON goes to stdout.
func (a *app) report(cmd *cobra.Command, diags *diagnostic.Diagnostics) (bool, error) {
	if a.cfg.Format == config.FormatJSON {
		return diags.HasErrors(), diagnostic.WriteJSON(cmd.OutOrStdout(), diags)
	}

	return diags.HasErrors(), diagnostic.Fprint(cmd.ErrOrStderr(), diags, a.cfg.NoColor)
}

func (a *app) status(w io.Writer, c color.Attribute, format string, args ...any) {
	if a.cfg.Format == config.FormatJSON {
		return
	}

	out := color.New(c)
	if a.cfg.NoColor {
		out.DisableColor()
	}

	_, _ = out.Fprintf(w, format+"\n", args...)
}

// NewVersionCommand creates the version command
func NewVersionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			title := color.New(color.FgCyan, color.Bold)
			w := cmd.OutOrStdout()

			for _, row := range [][2]string{
				{"mixable version: ", Version},
				{"Git commit: ", GitCommit},
				{"Build date: ", BuildDate},
				{"Go version: ", runtime.Version()},
			} {
				if _, err := title.Fprint(w, row[0]); err != nil {
					return err
				}

				if _, err := fmt.Fprintln(w, row[1]); err != nil {
					return err
				}
			}

			return nil
		},
	}
}

// Execute runs the root command against the OS filesystem.
func Execute() error {
	rootCmd := NewRootCommand(afero.NewOsFs())
	if err := rootCmd.Execute(); err != nil {
		if !errors.Is(err, ErrFailed) {
			errorColor := color.New(color.FgRed, color.Bold)
			errorColor.Fprintf(rootCmd.ErrOrStderr(), "Error: %v\n", err)
		}

		return err
	}

	return nil
}
