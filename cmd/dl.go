package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"coreu/dl"
)

var dlCmd = &cobra.Command{
	Use:   "dl <library-path> <symbol>",
	Short: "Load a shared library and resolve a symbol by name",
	Args:  cobra.ExactArgs(2),
	RunE:  runDl,
}

func init() {
	rootCmd.AddCommand(dlCmd)
}

func runDl(cmd *cobra.Command, args []string) error {
	path, symbol := args[0], args[1]

	lib, err := dl.New(path)
	if err != nil {
		return fmt.Errorf("load %q: %w", path, err)
	}
	defer lib.Free()

	addr, err := lib.GetSymbol(symbol)
	if err != nil {
		return fmt.Errorf("resolve %q: %w (%s)", symbol, err, lib.LastError())
	}

	fmt.Printf("%s!%s = 0x%x (ref-counted: %v)\n", path, symbol, addr, lib.IsRefCounted())
	return nil
}
