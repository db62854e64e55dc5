package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"coreu/ring"
	"coreu/shm"
)

var ringCmd = &cobra.Command{
	Use:   "ring",
	Short: "Exercise a shared-memory ring buffer",
}

var ringWriteCmd = &cobra.Command{
	Use:   "write <name> <text>",
	Short: "Create or open a ring buffer and write text into it",
	Args:  cobra.ExactArgs(2),
	RunE:  runRingWrite,
}

var ringReadCmd = &cobra.Command{
	Use:   "read <name>",
	Short: "Open a ring buffer and drain its contents",
	Args:  cobra.ExactArgs(1),
	RunE:  runRingRead,
}

var ringCapacity int

func init() {
	ringWriteCmd.Flags().IntVar(&ringCapacity, "capacity", 0, "ring buffer capacity in bytes, used only if the buffer does not already exist")
	ringReadCmd.Flags().IntVar(&ringCapacity, "capacity", 0, "ring buffer capacity in bytes, used only if the buffer does not already exist")
	ringCmd.AddCommand(ringWriteCmd, ringReadCmd)
	rootCmd.AddCommand(ringCmd)
}

func ringBufferCapacity(override int) int {
	if override > 0 {
		return override
	}
	return int(config.ParameterInt("ring", "capacity", 4096))
}

func runRingWrite(cmd *cobra.Command, args []string) error {
	name, text := args[0], args[1]
	buf, err := ring.New(name, ringBufferCapacity(ringCapacity), shm.Open)
	if err != nil {
		return fmt.Errorf("open ring %q: %w", name, err)
	}
	defer buf.Free()

	n, err := buf.Write([]byte(text))
	if err != nil {
		return fmt.Errorf("write: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("ring buffer has insufficient free space for %d bytes", len(text))
	}
	fmt.Printf("wrote %d bytes to %q\n", n, name)
	return nil
}

func runRingRead(cmd *cobra.Command, args []string) error {
	name := args[0]
	buf, err := ring.New(name, ringBufferCapacity(ringCapacity), shm.Open)
	if err != nil {
		return fmt.Errorf("open ring %q: %w", name, err)
	}
	defer buf.Free()

	used, err := buf.UsedSpace()
	if err != nil {
		return fmt.Errorf("used space: %w", err)
	}
	if used == 0 {
		fmt.Println("(empty)")
		return nil
	}

	dst := make([]byte, used)
	n, err := buf.Read(dst)
	if err != nil {
		return fmt.Errorf("read: %w", err)
	}
	fmt.Printf("%s\n", dst[:n])
	return nil
}
