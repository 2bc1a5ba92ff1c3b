package main

import (
	"flag"
	"log"

	"github.com/byndl-mvp/PoC-sub002/internal/config"
	"github.com/byndl-mvp/PoC-sub002/internal/pkg/logger"
	"github.com/byndl-mvp/PoC-sub002/pkg/catalog"
)

// Rebuilds the price catalog snapshot from the raw text resources, without
// starting the API server.
func main() {
	cfg := config.Load()

	resourceDir := flag.String("resources", cfg.Catalog.ResourceDir, "directory with per-Gewerk pricing text files")
	snapshotPath := flag.String("out", cfg.Catalog.SnapshotPath, "path of the JSON snapshot to write")
	flag.Parse()

	builder := catalog.NewBuilder(*resourceDir, logger.NewNopLogger())
	built, err := builder.Build()
	if err != nil {
		log.Fatalf("Error: catalog build failed: %v", err)
	}

	if err := catalog.Save(built, *snapshotPath); err != nil {
		log.Fatalf("Error: snapshot write failed: %v", err)
	}

	total := 0
	for gewerk, positions := range built {
		log.Printf("%s: %d positions", gewerk, len(positions))
		total += len(positions)
	}
	log.Printf("Success: wrote %d positions to %s", total, *snapshotPath)
}
