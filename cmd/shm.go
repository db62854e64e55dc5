package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"coreu/shm"
)

var shmCmd = &cobra.Command{
	Use:   "shm",
	Short: "Exercise a named shared-memory segment",
}

var shmWriteCmd = &cobra.Command{
	Use:   "write <name> <text>",
	Short: "Create or open a segment, lock it, write text, unlock",
	Args:  cobra.ExactArgs(2),
	RunE:  runShmWrite,
}

var shmReadCmd = &cobra.Command{
	Use:   "read <name>",
	Short: "Open a segment, lock it, print its contents, unlock",
	Args:  cobra.ExactArgs(1),
	RunE:  runShmRead,
}

var shmSize int

func init() {
	shmWriteCmd.Flags().IntVar(&shmSize, "size", 0, "segment size in bytes, used only if the segment does not already exist")
	shmReadCmd.Flags().IntVar(&shmSize, "size", 0, "segment size in bytes, used only if the segment does not already exist")
	shmCmd.AddCommand(shmWriteCmd, shmReadCmd)
	rootCmd.AddCommand(shmCmd)
}

func segmentSize(override int) int {
	if override > 0 {
		return override
	}
	return int(config.ParameterInt("shm", "size", 4096))
}

func runShmWrite(cmd *cobra.Command, args []string) error {
	name, text := args[0], args[1]
	seg, err := shm.New(name, segmentSize(shmSize), shm.Open)
	if err != nil {
		return fmt.Errorf("open segment %q: %w", name, err)
	}
	defer seg.Free()

	if err := seg.Lock(); err != nil {
		return fmt.Errorf("lock: %w", err)
	}
	defer seg.Unlock()

	buf := seg.Address()
	if len(text) > len(buf) {
		return fmt.Errorf("text (%d bytes) does not fit in segment (%d bytes)", len(text), len(buf))
	}
	clear(buf)
	copy(buf, text)

	fmt.Printf("wrote %d bytes to %q\n", len(text), name)
	return nil
}

func runShmRead(cmd *cobra.Command, args []string) error {
	name := args[0]
	seg, err := shm.New(name, segmentSize(shmSize), shm.Open)
	if err != nil {
		return fmt.Errorf("open segment %q: %w", name, err)
	}
	defer seg.Free()

	if err := seg.Lock(); err != nil {
		return fmt.Errorf("lock: %w", err)
	}
	defer seg.Unlock()

	fmt.Printf("%s\n", seg.Address())
	return nil
}
