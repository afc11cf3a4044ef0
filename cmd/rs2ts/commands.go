package main

import (
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/opinionated/rs2ts"
	"github.com/opinionated/rs2ts/config"
	"github.com/opinionated/rs2ts/rust"
)

// app holds the state shared by every subcommand.
type app struct {
	lookupEnv func(string) (string, bool)

	configPath   string
	verbose      bool
	rsEdition    string
	strategy     string
	tsMajor      string
	wrapperTypes bool
	exportPublic bool

	cfg    config.Config
	logger *slog.Logger
}

func newRootCmd(lookupEnv func(string) (string, bool)) *cobra.Command {
	a := &app{lookupEnv: lookupEnv}

	rootCmd := &cobra.Command{
		Use:   "rs2ts",
		Short: "rs2ts transpiles Rust to TypeScript",
		Long: `rs2ts transpiles a subset of Rust (const, fn, struct and fieldless enum
declarations) to TypeScript. Constructs outside the subset are rejected.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.setup(cmd)
		},
	}

	flags := rootCmd.PersistentFlags()
	flags.StringVarP(&a.configPath, "config", "c", "", "YAML configuration file")
	flags.BoolVarP(&a.verbose, "verbose", "v", false, "Enable debug logging on stderr")
	flags.StringVar(&a.rsEdition, "rs-edition", "", "Rust edition of the input (latest, 2015, 2018)")
	flags.StringVar(&a.strategy, "strategy", "", "Transpilation strategy (gungho, cautious)")
	flags.StringVar(&a.tsMajor, "ts-major", "", "TypeScript major version of the output (latest, 3, 4)")
	flags.BoolVar(&a.wrapperTypes, "wrapper-types", false, "Annotate primitives as Number, Boolean and String")
	flags.BoolVar(&a.exportPublic, "export-pub", true, "Export pub items")

	rootCmd.AddCommand(a.argCmd())
	rootCmd.AddCommand(a.fileCmd())
	rootCmd.AddCommand(a.tokensCmd())
	rootCmd.AddCommand(a.configCmd())
	rootCmd.AddCommand(versionCmd())

	return rootCmd
}

// setup resolves the configuration from file, environment and flags, in
// increasing order of precedence, and installs the logger.
func (a *app) setup(cmd *cobra.Command) error {
	level := slog.LevelInfo
	if a.verbose {
		level = slog.LevelDebug
	}
	a.logger = slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: level}))

	cfg := config.Default()
	if a.configPath != "" {
		loaded, err := config.Load(a.configPath)
		if err != nil {
			return err
		}
		cfg = loaded
		a.logger.Debug("loaded configuration", "path", a.configPath)
	}

	cfg, err := cfg.ApplyEnv(a.lookupEnv)
	if err != nil {
		return err
	}

	flags := cmd.Flags()
	if flags.Changed("rs-edition") {
		cfg.RsEdition = config.RsEdition(strings.ToLower(a.rsEdition))
	}
	if flags.Changed("strategy") {
		cfg.Strategy = config.Strategy(strings.ToLower(a.strategy))
	}
	if flags.Changed("ts-major") {
		cfg.TsMajor = config.TsMajor(strings.ToLower(a.tsMajor))
	}
	if flags.Changed("wrapper-types") {
		cfg.WrapperTypes = a.wrapperTypes
	}
	if flags.Changed("export-pub") {
		cfg.ExportPublic = a.exportPublic
	}

	if err := cfg.Validate(); err != nil {
		return err
	}
	a.cfg = cfg
	a.logger.Debug("configuration", "summary", cfg.String())
	return nil
}

func (a *app) transpiler() *rs2ts.Transpiler {
	return rs2ts.New(a.cfg, rs2ts.WithLogger(a.logger))
}

func (a *app) argCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "arg <source>",
		Short: "Transpile Rust source given as an argument",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			out, err := a.transpiler().Transpile(args[0])
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), out)
			return nil
		},
	}
}

func (a *app) fileCmd() *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:   "file <path>",
		Short: "Transpile a Rust source file",
		Long:  `Transpile a Rust source file and write the TypeScript to stdout or to the file named by -o.`,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			source, err := os.ReadFile(args[0])
			if err != nil {
				return fmt.Errorf("read input: %w", err)
			}

			out, err := a.transpiler().Transpile(string(source))
			if err != nil {
				return err
			}

			if output == "" {
				fmt.Fprint(cmd.OutOrStdout(), out)
				return nil
			}
			if err := os.WriteFile(output, []byte(out), 0o644); err != nil {
				return fmt.Errorf("write output: %w", err)
			}
			a.logger.Info("transpiled", "input", args[0], "output", output, "bytes", len(out))
			return nil
		},
	}
	cmd.Flags().StringVarP(&output, "output", "o", "", "Output file (default: stdout)")
	return cmd
}

func (a *app) tokensCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "tokens <path>",
		Short: "Print the lexemes of a Rust source file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			source, err := os.ReadFile(args[0])
			if err != nil {
				return fmt.Errorf("read input: %w", err)
			}
			tokens, err := rs2ts.Tokenize(string(source))
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), rust.FormatTokens(tokens))
			return nil
		},
	}
}

func (a *app) configCmd() *cobra.Command {
	var asYAML bool

	cmd := &cobra.Command{
		Use:   "config",
		Short: "Print the effective configuration",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if !asYAML {
				fmt.Fprintln(cmd.OutOrStdout(), a.cfg.String())
				return nil
			}
			data, err := a.cfg.YAML()
			if err != nil {
				return err
			}
			_, err = cmd.OutOrStdout().Write(data)
			return err
		},
	}
	cmd.Flags().BoolVar(&asYAML, "yaml", false, "Print the configuration as YAML")
	return cmd
}

func versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "rs2ts version %s\n", rs2tsVersion)
		},
	}
}
