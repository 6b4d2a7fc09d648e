package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/pflag"

	"github.com/mrlokans/librarylite/internal/config"
	"github.com/mrlokans/librarylite/internal/entrypoint"
)

// Version information - set at build time via ldflags
var (
	Version = "dev"
	Commit  = "unknown"
)

func main() {
	// If no arguments or "serve" command, run the HTTP server
	if len(os.Args) < 2 || os.Args[1] == "serve" {
		var args []string
		if len(os.Args) > 2 {
			args = os.Args[2:]
		}
		exitOnError(runServe(args))
		return
	}

	command := os.Args[1]
	args := os.Args[2:]

	switch command {
	case "init-db":
		exitOnError(runInitDB(args))

	case "version":
		fmt.Printf("librarylite %s (%s)\n", Version, Commit)

	case "-h", "--help", "help":
		printUsage()

	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n\n", command)
		printUsage()
		os.Exit(1)
	}
}

func runServe(args []string) error {
	fs := pflag.NewFlagSet("serve", pflag.ContinueOnError)
	config.RegisterFlags(fs)
	if err := fs.Parse(args); err != nil {
		return err
	}

	return entrypoint.Run(config.NewConfig(fs), Version)
}

func runInitDB(args []string) error {
	fs := pflag.NewFlagSet("init-db", pflag.ContinueOnError)
	config.RegisterFlags(fs)
	seed := fs.Bool("seed", false, "Insert sample books when the library is empty")
	if err := fs.Parse(args); err != nil {
		return err
	}

	return entrypoint.InitDB(config.NewConfig(fs), *seed)
}

func exitOnError(err error) {
	if err == nil {
		return
	}
	if errors.Is(err, pflag.ErrHelp) {
		os.Exit(0)
	}
	fmt.Fprintf(os.Stderr, "Error: %v\n", err)
	os.Exit(1)
}

func printUsage() {
	fmt.Fprintf(os.Stderr, "Usage: %s <command> [options]\n\n", os.Args[0])
	fmt.Fprintf(os.Stderr, "Commands:\n")
	fmt.Fprintf(os.Stderr, "  serve     Start the HTTP server (default if no command given)\n")
	fmt.Fprintf(os.Stderr, "  init-db   Create the database schema; --seed adds sample books\n")
	fmt.Fprintf(os.Stderr, "  version   Print version information\n")
	fmt.Fprintf(os.Stderr, "\nUse '%s <command> -h' for help on a specific command.\n", os.Args[0])
}
