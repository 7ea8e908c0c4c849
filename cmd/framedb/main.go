package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"

	"github.com/bietkhonhungvandi212/frame-db/internal/logger"
	"github.com/bietkhonhungvandi212/frame-db/internal/storage/buffer"
	"github.com/bietkhonhungvandi212/frame-db/internal/storage/file"
	util "github.com/bietkhonhungvandi212/frame-db/internal/utils"
)

func main() {
	configPath := flag.String("config", "", "path to a YAML options file")
	flag.Parse()

	opts := util.DefaultOptions()
	if *configPath != "" {
		var err error
		if opts, err = util.LoadOptions(*configPath); err != nil {
			fmt.Fprintf(os.Stderr, "load options: %v\n", err)
			os.Exit(1)
		}
	}

	log, err := logger.New(opts.Log)
	if err != nil {
		fmt.Fprintf(os.Stderr, "build logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Sync()

	if err := run(opts, log); err != nil {
		log.Fatal("framedb failed", zap.Error(err))
	}
}

func run(opts util.Options, log *zap.Logger) error {
	fileOpts := []file.FileOption{file.WithFileLogger(log)}
	if opts.SyncWrites {
		fileOpts = append(fileOpts, file.WithSyncWrites())
	}

	fm, err := file.NewFileManager(opts.Path, opts.InitialPages, fileOpts...)
	if err != nil {
		return fmt.Errorf("open file manager: %w", err)
	}
	defer fm.Close()

	registry := prometheus.NewRegistry()
	poolOpts := []buffer.Option{
		buffer.WithLogger(log),
		buffer.WithMetrics(buffer.NewMetrics(registry)),
	}
	if opts.Replacer == util.ReplacerLRU {
		poolOpts = append(poolOpts, buffer.WithReplacer(buffer.NewLRUReplacer()))
	}

	bp := buffer.NewBufferPool(opts.BufferPoolSize, fm, poolOpts...)
	defer bp.Close()

	// Smoke workload: allocate a page, write through it, flush, refetch.
	h, err := bp.NewPage()
	if err != nil {
		return fmt.Errorf("new page: %w", err)
	}
	pageID := h.PageID()
	copy(h.Data(), []byte("framedb smoke page"))
	h.MarkDirty()
	if err := h.Release(); err != nil {
		return fmt.Errorf("release page %d: %w", pageID, err)
	}

	if err := bp.FlushPage(pageID); err != nil {
		return fmt.Errorf("flush page %d: %w", pageID, err)
	}

	h2, err := bp.FetchPage(pageID)
	if err != nil {
		return fmt.Errorf("refetch page %d: %w", pageID, err)
	}
	defer h2.Release()

	log.Info("smoke workload done",
		zap.Uint64("page_id", uint64(pageID)),
		zap.ByteString("content", h2.Data()[:18]),
		zap.String("replacer", string(opts.Replacer)),
		zap.Int("pool_size", bp.Size()))

	return nil
}
