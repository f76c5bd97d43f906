package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"

	"github.com/ayusman/gestr/internal/app"
	"github.com/ayusman/gestr/internal/config"
	"github.com/ayusman/gestr/internal/server"
	"github.com/ayusman/gestr/internal/store"
)

func main() {
	configPath := flag.String("config", "", "path to the JSON config file")
	addr := flag.String("addr", "", "listen address (overrides config)")
	dbPath := flag.String("db", "", "SQLite database path (overrides config)")
	noStore := flag.Bool("no-store", false, "do not persist finalized samples")
	flag.Parse()

	fmt.Println("gestr - Multi-touch Gesture Collector")

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	if *addr != "" {
		cfg.Addr = *addr
	}
	if *dbPath != "" {
		cfg.DBPath = *dbPath
	}
	if *noStore {
		cfg.DBPath = ""
	}

	// Initialize the store
	var st *store.Store
	if cfg.DBPath != "" {
		if err := os.MkdirAll(filepath.Dir(cfg.DBPath), 0755); err != nil {
			log.Fatalf("Failed to create data directory: %v", err)
		}

		st, err = store.New(cfg.DBPath)
		if err != nil {
			log.Fatalf("Failed to initialize store: %v", err)
		}
		defer st.Close()
		fmt.Printf("Saving samples to: %s\n", st.Path())
	}

	application, err := app.New(app.Config{Settings: cfg, Store: st})
	if err != nil {
		log.Fatalf("Failed to initialize collector: %v", err)
	}

	srv := server.New(server.Config{App: application})

	fmt.Printf("Starting server on %s\n", cfg.Addr)
	if err := srv.ListenAndServe(cfg.Addr); err != nil {
		log.Fatalf("Server failed: %v", err)
	}
}
