package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"coreu/sockaddr"
	"coreu/socket"
)

var socketCmd = &cobra.Command{
	Use:   "socket",
	Short: "Exercise the blocking-emulation socket abstraction",
}

var socketListenCmd = &cobra.Command{
	Use:   "listen <host> <port>",
	Short: "Bind, listen, accept one connection, echo lines until EOF",
	Args:  cobra.ExactArgs(2),
	RunE:  runSocketListen,
}

var socketSendCmd = &cobra.Command{
	Use:   "send <host> <port> <text>",
	Short: "Connect to host:port and send one line of text",
	Args:  cobra.ExactArgs(3),
	RunE:  runSocketSend,
}

func init() {
	socketCmd.AddCommand(socketListenCmd, socketSendCmd)
	rootCmd.AddCommand(socketCmd)
}

func parsePort(s string) (uint16, error) {
	var port uint16
	if _, err := fmt.Sscanf(s, "%d", &port); err != nil {
		return 0, fmt.Errorf("invalid port %q: %w", s, err)
	}
	return port, nil
}

func runSocketListen(cmd *cobra.Command, args []string) error {
	host, portStr := args[0], args[1]
	port, err := parsePort(portStr)
	if err != nil {
		return err
	}

	addr, err := sockaddr.New(host, port)
	if err != nil {
		return fmt.Errorf("address: %w", err)
	}

	s, err := socket.New(addr.Family, socket.Stream, 0)
	if err != nil {
		return fmt.Errorf("new socket: %w", err)
	}
	defer s.Close()

	if err := s.Bind(addr, true); err != nil {
		return fmt.Errorf("bind: %w", err)
	}
	if err := s.Listen(); err != nil {
		return fmt.Errorf("listen: %w", err)
	}
	fmt.Printf("listening on %s, waiting for one connection\n", addr)

	conn, peer, err := s.Accept()
	if err != nil {
		return fmt.Errorf("accept: %w", err)
	}
	defer conn.Close()
	fmt.Printf("accepted connection from %s\n", peer)

	buf := make([]byte, 4096)
	for {
		n, err := conn.Receive(buf)
		if err != nil {
			return fmt.Errorf("receive: %w", err)
		}
		if n == 0 {
			break
		}
		fmt.Printf("received: %s", buf[:n])
	}
	return nil
}

func runSocketSend(cmd *cobra.Command, args []string) error {
	host, portStr, text := args[0], args[1], args[2]
	port, err := parsePort(portStr)
	if err != nil {
		return err
	}

	addr, err := sockaddr.New(host, port)
	if err != nil {
		return fmt.Errorf("address: %w", err)
	}

	s, err := socket.New(addr.Family, socket.Stream, 0)
	if err != nil {
		return fmt.Errorf("new socket: %w", err)
	}
	defer s.Close()

	if err := s.Connect(addr); err != nil {
		return fmt.Errorf("connect: %w", err)
	}

	if _, err := s.Send([]byte(text + "\n")); err != nil {
		return fmt.Errorf("send: %w", err)
	}
	fmt.Printf("sent %d bytes to %s\n", len(text)+1, addr)
	return nil
}
