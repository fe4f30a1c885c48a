// Command ordersrv serves the order-taking JSON API backed by the remote
// spreadsheet.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/abraham1744/amuthamorderapp/internal/adapters/inbound/httpapi"
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
		fmt.Printf("ordersrv %s\n", version)
		fmt.Printf("  commit: %s\n", commit)
		fmt.Printf("  built:  %s\n", date)
		os.Exit(0)
	}

	if err := run(*configPath); err != nil {
		log.Fatal(err)
	}
}

func run(configPath string) error {
	path, err := config.ResolvePath(configPath)
	if err != nil {
		return err
	}
	cfg, err := config.Load(path)
	if err != nil {
		return err
	}
	log.Printf("ordersrv %s, config %s", version, path)

	application, err := app.Bootstrap(cfg)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Replay archive sagas a previous run left unfinished before taking
	// traffic.
	if err := application.RecoverArchives(ctx); err != nil {
		return fmt.Errorf("archive recovery: %w", err)
	}

	server, err := httpapi.NewServer(cfg.Server.ListenAddr, application)
	if err != nil {
		return err
	}
	if err := server.Start(ctx); err != nil {
		return err
	}

	<-ctx.Done()
	log.Printf("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return server.Stop(shutdownCtx)
}
