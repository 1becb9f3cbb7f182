// Command patternctl creates and edits pattern library JSON files
// consumed by cna's Common Neighbor Analysis command.
//
// Grounded on original_source/src/pattern_library.cpp's add_pattern/
// edit_pattern/remove_pattern/store_pattern_library, exposed here as
// cobra subcommands rather than a library API only.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/lvlath-contrib/cna/patternlib"
)

func main() {
	if err := newRootCommand().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCommand() *cobra.Command {
	var libPath string

	root := &cobra.Command{
		Use:   "patternctl",
		Short: "Manage a CNA pattern library JSON file",
	}
	root.PersistentFlags().StringVarP(&libPath, "patterns", "p", "patterns.json", "pattern library JSON file")

	root.AddCommand(
		newCreateCommand(&libPath),
		newListCommand(&libPath),
		newAddCommand(&libPath),
		newEditCommand(&libPath),
		newDeleteCommand(&libPath),
	)

	return root
}

func newCreateCommand(libPath *string) *cobra.Command {
	return &cobra.Command{
		Use:   "create",
		Short: "Create a new pattern library containing only the unknown entry",
		RunE: func(cmd *cobra.Command, args []string) error {
			return patternlib.New().Store(*libPath)
		},
	}
}

func newListCommand(libPath *string) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List every pattern in the library",
		RunE: func(cmd *cobra.Command, args []string) error {
			lib, err := patternlib.Load(*libPath)
			if err != nil {
				return err
			}
			for _, p := range lib.List() {
				fmt.Printf("%-16s %-24s %-12s #%s\n", p.Key, p.Label, p.Fingerprint, p.Color)
			}

			return nil
		},
	}
}

func newAddCommand(libPath *string) *cobra.Command {
	var key, label, fingerprint, color string
	cmd := &cobra.Command{
		Use:   "add",
		Short: "Add a pattern to the library",
		RunE: func(cmd *cobra.Command, args []string) error {
			lib, err := patternlib.Load(*libPath)
			if err != nil {
				return err
			}
			if err := lib.Add(key, label, fingerprint, color); err != nil {
				return err
			}

			return lib.Store(*libPath)
		},
	}
	cmd.Flags().StringVar(&key, "key", "", "pattern key")
	cmd.Flags().StringVar(&label, "label", "", "pattern label")
	cmd.Flags().StringVar(&fingerprint, "fingerprint", "", "pattern fingerprint")
	cmd.Flags().StringVar(&color, "color", "", "6-digit hex color")
	cmd.MarkFlagRequired("key")

	return cmd
}

func newEditCommand(libPath *string) *cobra.Command {
	var key, label, fingerprint, color string
	cmd := &cobra.Command{
		Use:   "edit",
		Short: "Edit an existing pattern in the library",
		RunE: func(cmd *cobra.Command, args []string) error {
			lib, err := patternlib.Load(*libPath)
			if err != nil {
				return err
			}
			if err := lib.Edit(key, label, fingerprint, color); err != nil {
				return err
			}

			return lib.Store(*libPath)
		},
	}
	cmd.Flags().StringVar(&key, "key", "", "pattern key")
	cmd.Flags().StringVar(&label, "label", "", "pattern label")
	cmd.Flags().StringVar(&fingerprint, "fingerprint", "", "pattern fingerprint")
	cmd.Flags().StringVar(&color, "color", "", "6-digit hex color")
	cmd.MarkFlagRequired("key")

	return cmd
}

func newDeleteCommand(libPath *string) *cobra.Command {
	var key string
	cmd := &cobra.Command{
		Use:   "delete",
		Short: "Remove a pattern from the library",
		RunE: func(cmd *cobra.Command, args []string) error {
			lib, err := patternlib.Load(*libPath)
			if err != nil {
				return err
			}
			if err := lib.Remove(key); err != nil {
				return err
			}

			return lib.Store(*libPath)
		},
	}
	cmd.Flags().StringVar(&key, "key", "", "pattern key")
	cmd.MarkFlagRequired("key")

	return cmd
}
