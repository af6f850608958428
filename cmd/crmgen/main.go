// Command crmgen renders the generated entity structs and descriptors of
// the CRM catalog from catalog.yaml.
//
// Usage:
//
//	go run ./cmd/crmgen                       # regenerate from the embedded catalog
//	go run ./cmd/crmgen -catalog catalog.yaml # regenerate from a file
//	go run ./cmd/crmgen -check                # fail if generated files are stale
//
// The PostgreSQL migration creating the catalog tables is rendered into
// -migrations alongside the Go sources.
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/erp/crm/internal/codegen"
	"github.com/erp/crm/internal/infrastructure/logger"
	"go.uber.org/zap"
)

func main() {
	var (
		catalogPath string
		outDir      string
		migrations  string
		check       bool
	)
	flag.StringVar(&catalogPath, "catalog", "", "Path to catalog.yaml (default: embedded catalog)")
	flag.StringVar(&outDir, "out", "internal/domain/crm", "Directory of the crm package")
	flag.StringVar(&migrations, "migrations", "migrations", "Directory of the SQL migrations (empty to skip)")
	flag.BoolVar(&check, "check", false, "Report stale generated files instead of writing them")
	flag.Parse()

	log, err := logger.New(&logger.Config{
		Level:      "info",
		Format:     "console",
		Output:     "stderr",
		TimeFormat: "2006-01-02 15:04:05",
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer func() {
		_ = logger.Sync(log)
	}()

	var catalog *codegen.Catalog
	if catalogPath == "" {
		catalog, err = codegen.Default()
	} else {
		catalog, err = codegen.Load(catalogPath)
	}
	if err != nil {
		log.Fatal("Failed to load catalog", zap.String("path", catalogPath), zap.Error(err))
	}

	files, err := codegen.Render(catalog)
	if err != nil {
		log.Fatal("Failed to render catalog", zap.Error(err))
	}

	targets := map[string]map[string][]byte{outDir: files}
	if migrations != "" {
		targets[migrations] = codegen.RenderMigration(catalog)
	}

	if check {
		var stale []string
		for dir, rendered := range targets {
			names, err := codegen.Stale(dir, rendered)
			if err != nil {
				log.Fatal("Failed to compare generated files", zap.String("dir", dir), zap.Error(err))
			}
			stale = append(stale, names...)
		}
		if len(stale) > 0 {
			log.Error("Generated files are stale, run crmgen", zap.Strings("files", stale))
			os.Exit(1)
		}
		log.Info("Generated files are up to date", zap.Int("entities", len(catalog.Entities)))
		return
	}

	for dir, rendered := range targets {
		if err := codegen.Write(dir, rendered); err != nil {
			log.Fatal("Failed to write generated files", zap.String("dir", dir), zap.Error(err))
		}
	}
	log.Info("Catalog generated",
		zap.Int("entities", len(catalog.Entities)),
		zap.String("out", outDir),
		zap.String("migrations", migrations),
	)
}
