package cmd

import (
	"fmt"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/cobra/doc"
)

// docsCmd writes the Markdown documentation of every command
var docsCmd = &cobra.Command{
	Use:    "docs [dir]",
	Short:  "Write Markdown documentation for every command",
	Args:   cobra.MaximumNArgs(1),
	Hidden: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		dir := "./docs"
		if len(args) > 0 {
			dir = args[0]
		}
		return makeDocs(dir)
	},
}

func init() {
	RootCmd.AddCommand(docsCmd)
}

// makeDocs parses the custom commands and outputs Markdown documentation files
func makeDocs(dir string) error {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to make docs directory %s: %v", dir, err)
	}
	return doc.GenMarkdownTreeCustom(RootCmd, dir, filePrepender, linkHandler)
}

// docCommand returns the command documented in a file like rnacore_score_all.md
func docCommand(filename string) (*cobra.Command, bool) {
	name := filepath.Base(filename)
	parts := strings.Split(strings.TrimSuffix(name, path.Ext(name)), "_")
	if parts[0] != RootCmd.Name() {
		return nil, false
	}

	c, _, err := RootCmd.Find(parts[1:])
	if err != nil || c.Name() != parts[len(parts)-1] || !c.IsAvailableCommand() {
		return nil, false
	}
	return c, true
}

// filePrepender adds the YAML front matter of the just-the-docs theme. Score
// is the only command with children, so pages nest at most two levels deep
// https://pmarsceill.github.io/just-the-docs/docs/navigation-structure/
func filePrepender(filename string) string {
	c, ok := docCommand(filename)
	if !ok {
		return ""
	}

	var b strings.Builder
	fmt.Fprintf(&b, "---\nlayout: default\ntitle: %s\n", c.Name())
	if c.HasParent() {
		fmt.Fprintf(&b, "parent: %s\n", c.Parent().Name())
		if c.Parent().HasParent() {
			fmt.Fprintf(&b, "grand_parent: %s\n", c.Parent().Parent().Name())
		}
		fmt.Fprintf(&b, "nav_order: %d\n", navOrder(c))
	}
	if c.HasAvailableSubCommands() {
		b.WriteString("has_children: true\n")
	}
	if !c.HasParent() {
		b.WriteString("permalink: /\n")
	}
	b.WriteString("---\n")
	return b.String()
}

// navOrder is the position of c among its visible siblings
func navOrder(c *cobra.Command) int {
	order := 0
	for _, sibling := range c.Parent().Commands() {
		if sibling == c {
			break
		}
		if sibling.IsAvailableCommand() {
			order++
		}
	}
	return order
}

// linkHandler returns the URL to a documentation page
func linkHandler(filename string) string {
	name := filepath.Base(filename)
	base := strings.TrimSuffix(name, path.Ext(name))

	if base == RootCmd.Name() {
		return "/"
	}
	return base
}
