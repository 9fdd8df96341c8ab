package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"saassyadmin/internal/theme"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:          "themegen",
		Short:        "Compile the admin theme into a utility stylesheet",
		SilenceUsage: true,
	}
	root.AddCommand(newBuildCmd(), newValidateCmd(), newTokensCmd())
	return root
}

func newBuildCmd() *cobra.Command {
	var (
		themeFile string
		rootDir   string
		out       string
		all       bool
	)
	cmd := &cobra.Command{
		Use:   "build",
		Short: "Generate the stylesheet for the classes used in content files",
		Long: `Generate the stylesheet.

Content globs from the theme are resolved against --root. Only classes found
in those files are emitted unless --all is given.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := theme.LoadFile(themeFile)
			if err != nil {
				return err
			}

			var sheet *theme.Stylesheet
			if all {
				if err := cfg.Validate(); err != nil {
					return fmt.Errorf("invalid theme: %w", err)
				}
				sheet, err = theme.Compile(cfg, theme.Options{All: true})
			} else {
				sheet, err = theme.Build(os.DirFS(rootDir), cfg)
			}
			if err != nil {
				return err
			}

			if out == "" || out == "-" {
				_, err = cmd.OutOrStdout().Write(sheet.CSS)
				return err
			}
			if err := os.MkdirAll(filepath.Dir(out), 0o755); err != nil {
				return fmt.Errorf("create output dir: %w", err)
			}
			if err := os.WriteFile(out, sheet.CSS, 0o644); err != nil {
				return fmt.Errorf("write stylesheet: %w", err)
			}
			cmd.PrintErrf("wrote %d rules to %s (etag %s)\n", sheet.Classes, out, sheet.ETag)
			return nil
		},
	}
	cmd.Flags().StringVar(&themeFile, "theme", "", "YAML file merged over the built-in theme")
	cmd.Flags().StringVar(&rootDir, "root", ".", "directory the content globs are relative to")
	cmd.Flags().StringVarP(&out, "out", "o", "-", "output file, - for stdout")
	cmd.Flags().BoolVar(&all, "all", false, "emit every class, not only used ones")
	return cmd
}

func newValidateCmd() *cobra.Command {
	var themeFile string
	cmd := &cobra.Command{
		Use:   "validate",
		Short: "Check token keys and CSS values",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := theme.LoadFile(themeFile)
			if err != nil {
				return err
			}
			if err := cfg.Validate(); err != nil {
				return err
			}
			cmd.Println("theme ok")
			return nil
		},
	}
	cmd.Flags().StringVar(&themeFile, "theme", "", "YAML file merged over the built-in theme")
	return cmd
}

func newTokensCmd() *cobra.Command {
	var themeFile string
	cmd := &cobra.Command{
		Use:   "tokens",
		Short: "Print the resolved theme as YAML",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := theme.LoadFile(themeFile)
			if err != nil {
				return err
			}
			raw, err := theme.Marshal(cfg)
			if err != nil {
				return err
			}
			_, err = cmd.OutOrStdout().Write(raw)
			return err
		},
	}
	cmd.Flags().StringVar(&themeFile, "theme", "", "YAML file merged over the built-in theme")
	return cmd
}
