package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"coreu/list"
)

var listCmd = &cobra.Command{
	Use:   "list <item> [item...]",
	Short: "Build a singly-linked list, reverse it, and print it",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runList,
}

func init() {
	rootCmd.AddCommand(listCmd)
}

func runList(cmd *cobra.Command, args []string) error {
	l := list.New[string]()
	for _, item := range args {
		l.Append(item)
	}
	fmt.Println(strings.Join(l.ToSlice(), " -> "))

	l.Reverse()
	fmt.Println(strings.Join(l.ToSlice(), " -> "))
	return nil
}
