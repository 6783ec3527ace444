package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/clipcmp/clipcmp/internal/server"
	"github.com/spf13/cobra"
)

var (
	servePort int
	serveHost string
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP server",
	Long: `Start an HTTP server exposing the comparison API to other clients.
Images must be sent as PNG data URIs; the server never reads local paths
on behalf of remote callers.

Examples:
  clipcmp serve
  clipcmp serve --port 3456
  clipcmp serve --host 0.0.0.0 --port 8080`,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().IntVar(&servePort, "port", 3456, "Port to listen on")
	serveCmd.Flags().StringVar(&serveHost, "host", "127.0.0.1", "Host to bind to")
}

func runServe(cmd *cobra.Command, args []string) error {
	svc, err := initService()
	if err != nil {
		return err
	}

	srv := server.New(svc, server.Config{
		Host: serveHost,
		Port: servePort,
	})

	done := make(chan os.Signal, 1)
	signal.Notify(done, os.Interrupt, syscall.SIGTERM)

	go func() {
		<-done
		fmt.Println("\nShutting down...")
		srv.Shutdown()
		svc.Close()
	}()

	addr := fmt.Sprintf("%s:%d", serveHost, servePort)
	fmt.Printf("clipcmp server listening on http://%s\n", addr)
	fmt.Println("Press Ctrl+C to stop")
	fmt.Println()
	fmt.Println("Endpoints:")
	fmt.Println("  POST /compare - Score an image data URI against texts")
	fmt.Println("  POST /embed   - Generate a single embedding")
	fmt.Println("  GET  /stats   - Client and cache statistics")
	fmt.Println("  GET  /health  - Health check")

	return srv.Start()
}
