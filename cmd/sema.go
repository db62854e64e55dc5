package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"coreu/sema"
)

var semaCmd = &cobra.Command{
	Use:   "sema",
	Short: "Exercise a named semaphore",
}

var semaAcquireCmd = &cobra.Command{
	Use:   "acquire <name>",
	Short: "Create or open a named semaphore, acquire it once, then release",
	Args:  cobra.ExactArgs(1),
	RunE:  runSemaAcquire,
}

var semaInitial int

func init() {
	semaAcquireCmd.Flags().IntVar(&semaInitial, "initial", 1, "initial semaphore count, used only if the semaphore does not already exist")
	semaCmd.AddCommand(semaAcquireCmd)
	rootCmd.AddCommand(semaCmd)
}

func runSemaAcquire(cmd *cobra.Command, args []string) error {
	name := args[0]
	initial := semaInitial
	if !cmd.Flags().Changed("initial") {
		initial = int(config.ParameterInt("sema", "initial", int64(semaInitial)))
	}

	h, err := sema.New(name, initial, sema.Open)
	if err != nil {
		return fmt.Errorf("open semaphore %q: %w", name, err)
	}
	defer h.Free()

	if err := h.Acquire(); err != nil {
		return fmt.Errorf("acquire: %w", err)
	}
	fmt.Printf("acquired %q\n", name)

	if err := h.Release(); err != nil {
		return fmt.Errorf("release: %w", err)
	}
	fmt.Printf("released %q\n", name)
	return nil
}
