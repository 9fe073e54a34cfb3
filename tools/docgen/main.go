// Package main generates CLI reference documentation for the lvc client and
// the loss-valuation server commands.
package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/spf13/cobra/doc"

	lvc "github.com/donaldgifford/loss-valuation/cmd/lvc/cmd"
	server "github.com/donaldgifford/loss-valuation/cmd/loss-valuation/cmd"
)

func main() {
	output := flag.String("output", "docs/cli", "output directory for generated docs")
	format := flag.String("format", "markdown", "output format (markdown, man)")
	flag.Parse()

	roots := map[string]*cobra.Command{
		"lvc":            lvc.Root(),
		"loss-valuation": server.Root(),
	}

	for name, root := range roots {
		dir := filepath.Join(*output, name)
		if err := os.MkdirAll(dir, 0o750); err != nil {
			log.Fatalf("creating output directory: %v", err)
		}
		if err := generate(root, *format, dir); err != nil {
			log.Fatalf("generating %s docs: %v", name, err)
		}
	}

	fmt.Printf("CLI docs generated in %s/\n", *output)
}

func generate(root *cobra.Command, format, dir string) error {
	root.DisableAutoGenTag = true

	switch format {
	case "markdown":
		return doc.GenMarkdownTree(root, dir)
	case "man":
		return doc.GenManTree(root, &doc.GenManHeader{Title: root.Name(), Section: "1"}, dir)
	default:
		return fmt.Errorf("unknown format %q", format)
	}
}
