// Command orderctl works the order sheet from a terminal: catalog upkeep,
// order entry, delivery toggles, and history queries.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/abraham1744/amuthamorderapp/internal/adapters/inbound/cli"
	"github.com/abraham1744/amuthamorderapp/internal/app"
	"github.com/abraham1744/amuthamorderapp/internal/config"
)

// Version information (set via ldflags during build)
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	versionFlag := flag.Bool("version", false, "Print version information and exit")
	configPath := flag.String("config", "", "Path to config file (default: $"+config.EnvConfigPath+")")
	flag.Parse()

	if *versionFlag {
		fmt.Printf("orderctl %s\n", version)
		fmt.Printf("  commit: %s\n", commit)
		fmt.Printf("  built:  %s\n", date)
		os.Exit(0)
	}

	if err := run(*configPath, flag.Args()); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

func run(configPath string, args []string) error {
	path, err := config.ResolvePath(configPath)
	if err != nil {
		return err
	}
	cfg, err := config.Load(path)
	if err != nil {
		return err
	}

	application, err := app.Bootstrap(cfg)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	return cli.New(application, os.Stdout).Run(ctx, args)
}
