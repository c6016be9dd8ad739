package main

import (
	"fmt"
	"github.com/natefinch/atomic"
	"github.com/spf13/cobra"
	"github.com/thluiz/vox/internal/reflow"
	"os"
	"strings"
)

var heading string

var rootCmd = &cobra.Command{
	Use:           "fixtranscript <file.md>",
	Short:         "Put every timestamped transcript line in its own paragraph",
	Args:          cobra.ExactArgs(1),
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		path := args[0]
		info, err := os.Stat(path)
		if err != nil {
			return err
		}
		raw, err := os.ReadFile(path)
		if err != nil {
			return err
		}

		fixed, changed := reflow.Fix(string(raw), heading)
		out := cmd.OutOrStdout()
		if !changed {
			fmt.Fprintf(out, "No changes: %s\n", path)
			return nil
		}
		if err := atomic.WriteFile(path, strings.NewReader(fixed)); err != nil {
			return fmt.Errorf("write %s: %w", path, err)
		}
		if err := os.Chmod(path, info.Mode().Perm()); err != nil {
			return err
		}
		fmt.Fprintf(out, "Fixed: %s\n", path)
		return nil
	},
}

func init() {
	rootCmd.Flags().StringVar(&heading, "heading", reflow.DefaultHeading, "Title of the section to reflow")
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
