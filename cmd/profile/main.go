// Command profile runs the profiler over a CSV or Excel file and prints
// the resulting ProfileResult as JSON to stdout.
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	profiler "dataprofiler/adapters/profiling"
	"dataprofiler/adapters/source/csvsource"
	"dataprofiler/adapters/source/excelsource"
	"dataprofiler/domain/chunk"
	"dataprofiler/internal/apperr"
	"dataprofiler/internal/config"
	"dataprofiler/internal/obslog"
)

func main() {
	path := flag.String("path", "", "path to a CSV or Excel file to profile")
	chunkSize := flag.Int("chunk-size", 10000, "rows per chunk read from the source")
	flag.Parse()

	if *path == "" {
		fmt.Fprintln(os.Stderr, "usage: profile -path <file>")
		os.Exit(2)
	}

	logger := obslog.DefaultLogger

	cfg, err := config.Load()
	if err != nil {
		logger.Error("failed to load config: %v", err)
		os.Exit(1)
	}

	src, format, err := openSource(*path, *chunkSize)
	if err != nil {
		logger.Error("failed to open source: %v", err)
		os.Exit(1)
	}

	p := profiler.New(cfg, logger)
	result, err := p.Profile(context.Background(), src, *path, format, nil)
	if err != nil {
		if apperr.IsFatal(err) {
			logger.Error("profiling failed: %v", err)
			os.Exit(1)
		}
		logger.Error("unexpected error: %v", err)
		os.Exit(1)
	}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	if err := enc.Encode(result); err != nil {
		logger.Error("failed to encode result: %v", err)
		os.Exit(1)
	}
}

func openSource(path string, chunkSize int) (chunk.Source, string, error) {
	ext := strings.ToLower(filepath.Ext(path))
	switch ext {
	case ".csv":
		src, err := csvsource.Open(csvsource.Config{Path: path, HasHeader: true, ChunkSize: chunkSize})
		return src, "csv", err
	case ".xlsx":
		src, err := excelsource.Open(excelsource.Config{Path: path, HasHeader: true, ChunkSize: chunkSize})
		return src, "excel", err
	default:
		return nil, "", fmt.Errorf("unsupported file extension %q", ext)
	}
}
