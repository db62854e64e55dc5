package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"coreu/ini"
)

var iniCmd = &cobra.Command{
	Use:   "ini <path>",
	Short: "Parse an INI file and print its sections and keys",
	Args:  cobra.ExactArgs(1),
	RunE:  runIni,
}

func init() {
	rootCmd.AddCommand(iniCmd)
}

func runIni(cmd *cobra.Command, args []string) error {
	path := args[0]
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read %q: %w", path, err)
	}

	doc, err := ini.Parse(data)
	if err != nil {
		return fmt.Errorf("parse %q: %w", path, err)
	}
	defer doc.Free()

	// A terminal gets a slightly more readable layout than a pipe does,
	// the same distinction the teacher draws before sizing a PTY.
	interactive := term.IsTerminal(int(os.Stdout.Fd()))

	for _, section := range doc.Sections() {
		name := section.Name
		if name == "" {
			name = "(default)"
		}
		if interactive {
			fmt.Printf("\x1b[1m[%s]\x1b[0m\n", name)
		} else {
			fmt.Printf("[%s]\n", name)
		}
		for _, p := range section.Params() {
			fmt.Printf("  %s = %s\n", p.Key, p.Value)
		}
	}
	return nil
}
