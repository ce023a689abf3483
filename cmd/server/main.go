package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/datareveal/docverse/api/handlers"
	"github.com/datareveal/docverse/api/routes"
	"github.com/datareveal/docverse/config"
	"github.com/datareveal/docverse/internal/archive"
	"github.com/datareveal/docverse/internal/embeddings"
	"github.com/datareveal/docverse/internal/llm"
	"github.com/datareveal/docverse/internal/ocr"
	"github.com/datareveal/docverse/internal/pipeline"
	"github.com/datareveal/docverse/internal/retrieval"
	"github.com/datareveal/docverse/internal/store"
	"github.com/datareveal/docverse/pkg/logger"
)

func main() {
	searchField := flag.String("search", "", "metadata field to search instead of starting the server")
	exact := flag.Bool("exact", false, "require an exact metadata match with -search")
	flag.Parse()

	serverCfg := config.GetServerConfig()
	log, err := logger.NewLogger(
		logger.WithLevel(serverCfg.LogLevel),
		logger.WithEncoding("json"),
		logger.WithOutputPaths([]string{"stdout", "logs/app.log"}),
	)
	if err != nil {
		panic(err)
	}
	defer log.Sync()

	app, err := buildApp(context.Background(), log)
	if err != nil {
		log.Fatal("Failed to initialize application", logger.Error(err))
	}
	defer app.store.Close()

	// CLI modes: search a metadata field, or process files given as
	// arguments. With neither, serve HTTP.
	if *searchField != "" {
		if flag.NArg() != 1 {
			fmt.Fprintln(os.Stderr, "usage: docverse -search <field> [-exact] <value>")
			os.Exit(2)
		}
		runSearch(app, *searchField, flag.Arg(0), *exact)
		return
	}
	if flag.NArg() > 0 {
		runIntake(app, flag.Args())
		return
	}

	h := handlers.NewHandlers(app.pipeline, app.store, app.retrieval, serverCfg.TempUploadDir, log)
	r := gin.New()
	r.Use(gin.Recovery())
	routes.SetupRoutes(r, h)

	srv := &http.Server{
		Addr:    serverCfg.Addr,
		Handler: r,
	}

	go func() {
		log.Info("Server starting", logger.String("addr", serverCfg.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error("Server error", logger.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("Shutting down server...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("Server forced to shutdown", logger.Error(err))
	}
}

type app struct {
	pipeline  *pipeline.Pipeline
	store     *store.DocumentStore
	retrieval *retrieval.Engine
}

func buildApp(ctx context.Context, log logger.Logger) (*app, error) {
	openaiCfg := config.GetOpenAIConfig()
	completer, err := llm.NewOpenAIClient(openaiCfg, log)
	if err != nil {
		return nil, fmt.Errorf("language model client: %w", err)
	}
	embedder, err := embeddings.NewOpenAIProvider(openaiCfg, log)
	if err != nil {
		return nil, fmt.Errorf("embedding provider: %w", err)
	}

	// Textract is optional; without credentials OCR runs on Tesseract alone.
	textractCfg := config.GetTextractConfig()
	var primary ocr.Engine
	if engine, err := ocr.NewTextractEngine(ctx, ocr.TextractOptions{
		Region:        textractCfg.Region,
		AccessKey:     textractCfg.AccessKey,
		SecretKey:     textractCfg.SecretKey,
		MinConfidence: 80,
	}, log); err != nil {
		log.Warn("Textract unavailable, using Tesseract only", logger.Error(err))
	} else {
		primary = engine
	}
	extractor := ocr.NewExtractor(primary, ocr.NewTesseractEngine("eng", log), log)

	docStore, err := store.NewDocumentStore(config.GetDatastoreConfig(), log)
	if err != nil {
		return nil, fmt.Errorf("document store: %w", err)
	}
	archiver, err := archive.NewArchiver(config.GetArchiveConfig(), log)
	if err != nil {
		docStore.Close()
		return nil, fmt.Errorf("archiver: %w", err)
	}

	intake := pipeline.New(
		extractor,
		llm.NewStructuredExtractor(completer, log),
		embedder,
		archiver,
		docStore,
		log,
	)
	chat := retrieval.NewEngine(
		llm.NewIntentParser(completer, log),
		llm.NewAnswerGenerator(completer, log),
		embedder,
		docStore,
		log,
	)

	return &app{pipeline: intake, store: docStore, retrieval: chat}, nil
}

func runIntake(a *app, paths []string) {
	encoder := json.NewEncoder(os.Stdout)
	encoder.SetIndent("", "  ")
	exitCode := 0
	for _, path := range paths {
		result := a.pipeline.Process(context.Background(), path, filepath.Base(path))
		if result.Status != "success" {
			exitCode = 1
		}
		encoder.Encode(result)
	}
	os.Exit(exitCode)
}

func runSearch(a *app, field, value string, exact bool) {
	results, err := a.store.FindByMetadata(context.Background(), field, value, exact)
	if err != nil {
		fmt.Fprintln(os.Stderr, "search failed:", err)
		os.Exit(1)
	}
	encoder := json.NewEncoder(os.Stdout)
	encoder.SetIndent("", "  ")
	encoder.Encode(results)
}
