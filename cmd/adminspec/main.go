package main

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"github.com/goliatone/go-adminspec/internal/app"
	"github.com/goliatone/go-adminspec/pkg/console"
	"github.com/goliatone/go-adminspec/pkg/idp"
)

type globalFlags struct {
	definitions string
	noEmbedded  bool
	verbose     bool
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	flags := &globalFlags{}
	root := &cobra.Command{
		Use:           "adminspec",
		Short:         "Inspect and drive admin entity dialogs",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringVar(&flags.definitions, "definitions", "", "directory with extra entity documents")
	root.PersistentFlags().BoolVar(&flags.noEmbedded, "no-embedded", false, "skip the bundled entity definitions")
	root.PersistentFlags().BoolVarP(&flags.verbose, "verbose", "v", false, "enable debug logging")

	root.AddCommand(newAddCmd(flags), newShowCmd(flags), newLintCmd(flags))
	return root
}

func newAddCmd(flags *globalFlags) *cobra.Command {
	var output string
	cmd := &cobra.Command{
		Use:   "add [entity]",
		Short: "Run an entity's add dialog interactively",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, logger, err := buildApp(flags)
			if err != nil {
				return err
			}
			defer logger.Sync() //nolint:errcheck

			d, err := a.OpenAdder(entityArg(args))
			if err != nil {
				return err
			}
			defer d.Close()

			runner := console.New(console.WithLogger(logger))
			payload, err := runner.Run(cmd.Context(), d)
			if err != nil {
				return err
			}
			return encode(cmd, payload, output)
		},
	}
	cmd.Flags().StringVarP(&output, "output", "o", "json", "output format: json or yaml")
	return cmd
}

func newShowCmd(flags *globalFlags) *cobra.Command {
	var output string
	cmd := &cobra.Command{
		Use:   "show [entity]",
		Short: "Print an entity definition",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, _, err := buildApp(flags)
			if err != nil {
				return err
			}
			ent, err := a.Entity(entityArg(args))
			if err != nil {
				return err
			}
			return encode(cmd, ent, output)
		},
	}
	cmd.Flags().StringVarP(&output, "output", "o", "yaml", "output format: json or yaml")
	return cmd
}

func newLintCmd(flags *globalFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "lint",
		Short: "Validate entity definitions and attach their dialog policies",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			a, _, err := buildApp(flags)
			if err != nil {
				return err
			}
			if err := a.Lint(); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%d entities OK: %s\n", len(a.Entities.Names()), strings.Join(a.Entities.Names(), ", "))
			return nil
		},
	}
}

func buildApp(flags *globalFlags) (*app.App, *zap.Logger, error) {
	logger := zap.NewNop()
	if flags.verbose {
		dev, err := zap.NewDevelopment()
		if err != nil {
			return nil, nil, fmt.Errorf("init logger: %w", err)
		}
		logger = dev
	}

	opts := []app.Option{app.WithLogger(logger)}
	if flags.definitions != "" {
		opts = append(opts, app.WithDefinitions(os.DirFS(flags.definitions)))
	}
	if flags.noEmbedded {
		opts = append(opts, app.WithoutEmbedded())
	}
	a, err := app.New(opts...)
	if err != nil {
		return nil, nil, err
	}
	return a, logger, nil
}

func entityArg(args []string) string {
	if len(args) > 0 && strings.TrimSpace(args[0]) != "" {
		return strings.TrimSpace(args[0])
	}
	return idp.Entity
}

func encode(cmd *cobra.Command, value any, format string) error {
	out := cmd.OutOrStdout()
	switch strings.ToLower(format) {
	case "yaml", "yml":
		enc := yaml.NewEncoder(out)
		enc.SetIndent(2)
		if err := enc.Encode(value); err != nil {
			return err
		}
		return enc.Close()
	case "json", "":
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(value)
	default:
		return fmt.Errorf("unsupported output format %q", format)
	}
}
