// internal/cli/docs.go
package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/cobra/doc"
)

const frontMatter = `---
layout: default
title: %s
nav_order: %d
---
`

func newDocsCmd(root *cobra.Command) *cobra.Command {
	var dir string
	cmd := &cobra.Command{
		Use:                        "docs",
		Short:                      "Write Markdown reference pages for every command",
		Example:                    `  stemcode docs --dir ./docs`,
		SuggestionsMinimumDistance: 2,
		Args:                       cobra.NoArgs,
		Hidden:                     true,
		PersistentPreRunE:          func(*cobra.Command, []string) error { return nil },
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := os.MkdirAll(dir, 0o755); err != nil {
				return err
			}
			order := map[string]int{}
			for i, c := range root.Commands() {
				order[strings.ReplaceAll(c.CommandPath(), " ", "_")] = i + 1
			}
			prepend := func(filename string) string {
				base := strings.TrimSuffix(filepath.Base(filename), filepath.Ext(filename))
				title := strings.ReplaceAll(base, "_", " ")
				return fmt.Sprintf(frontMatter, title, order[base])
			}
			link := func(name string) string {
				return strings.TrimSuffix(name, filepath.Ext(name))
			}
			root.DisableAutoGenTag = true
			if err := doc.GenMarkdownTreeCustom(root, dir, prepend, link); err != nil {
				return err
			}
			_, err := fmt.Fprintf(cmd.OutOrStdout(), "wrote docs to %s\n", dir)
			return err
		},
	}
	cmd.Flags().StringVar(&dir, "dir", "docs", "output directory")
	return cmd
}
