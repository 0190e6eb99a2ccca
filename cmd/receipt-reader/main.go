package main

import (
	"context"
	_ "embed"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/peterbourgon/ff/v4"
	"github.com/peterbourgon/ff/v4/ffhelp"

	"github.com/zombor/receipt-reader/internal/parsing"
	"github.com/zombor/receipt-reader/internal/receipt"
	"github.com/zombor/receipt-reader/internal/scanning"
)

//go:embed VERSION.txt
var versionFile string

var version = strings.TrimSpace(versionFile)

func main() {
	// Check for version flag before parsing other flags
	for _, arg := range os.Args[1:] {
		if arg == "--version" || arg == "-version" || arg == "-v" {
			fmt.Println(version)
			os.Exit(0)
		}
	}

	fs := ff.NewFlagSet("receipt-reader")
	var (
		port          = fs.IntLong("port", 8080, "HTTP server port")
		dbPath        = fs.StringLong("db", "receipt-reader.db", "Database file path")
		storagePath   = fs.StringLong("storage", "./receipts", "Directory for receipt images")
		tablesPath    = fs.StringLong("tables", "", "YAML file replacing the built-in store and category tables (optional)")
		debug         = fs.BoolLong("debug", "Enable debug logging")
		engine        = fs.StringLong("ocr", "tesseract", "OCR engine: tesseract, gemini, ollama or documentai")
		primaryMode   = fs.StringLong("ocr-primary", string(scanning.ModeHebrewEnglish), "Primary OCR language mode")
		fallbackMode  = fs.StringLong("ocr-fallback", string(scanning.ModeEnglish), "Fallback OCR language mode")
		minTextLength = fs.IntLong("ocr-min-text", scanning.DefaultMinTextLength, "Shortest OCR transcript accepted before asking for a retake")
		tessBinary    = fs.StringLong("tesseract", "tesseract", "Tesseract binary")
		tessdataDir   = fs.StringLong("tessdata-dir", "", "Tesseract language data directory (optional)")
		tessPSM       = fs.IntLong("tesseract-psm", 6, "Tesseract page segmentation mode (0 for default)")
		geminiKey     = fs.StringLong("gemini-key", "", "Google Gemini API key (or set GEMINI_API_KEY env var)")
		geminiModel   = fs.StringLong("gemini-model", "gemini-2.5-flash", "Google Gemini model name")
		ollamaURL     = fs.StringLong("ollama-url", "http://localhost:11434", "Ollama API base URL")
		ollamaModel   = fs.StringLong("ollama-model", "llava", "Ollama vision model name")
		docaiProject  = fs.StringLong("documentai-project", "", "Document AI project ID")
		docaiLocation = fs.StringLong("documentai-location", "us", "Document AI location")
		docaiProc     = fs.StringLong("documentai-processor", "", "Document AI OCR processor ID")
		docaiCreds    = fs.StringLong("documentai-credentials", "", "Service account JSON for Document AI (defaults to application credentials)")
		authUser      = fs.StringLong("auth-user", "", "Basic auth username (optional)")
		authPass      = fs.StringLong("auth-pass", "", "Basic auth password (optional)")
		_             = fs.BoolLong("version", "Show version information")
	)

	if err := ff.Parse(fs, os.Args[1:],
		ff.WithEnvVarPrefix("RECEIPT_READER"),
	); err != nil {
		fmt.Fprintf(os.Stderr, "%s\n", ffhelp.Flags(fs))
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}

	if *debug {
		slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelDebug})))
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	tables := parsing.DefaultTables()
	if *tablesPath != "" {
		var err error
		tables, err = parsing.LoadTables(*tablesPath)
		if err != nil {
			slog.Error("Failed to load lookup tables", "path", *tablesPath, "error", err)
			os.Exit(1)
		}
		slog.Info("Loaded lookup tables", "path", *tablesPath, "stores", tables.Stores.Len())
	}
	parser := parsing.NewParser(tables)

	slog.Info("Initializing database...")
	db, err := receipt.NewBoltDB(*dbPath)
	if err != nil {
		slog.Error("Failed to initialize database", "error", err)
		os.Exit(1)
	}
	defer db.Close()

	slog.Info("Initializing OCR engine...", "engine", *engine)
	recognizer, err := newRecognizer(ctx, engineConfig{
		Engine: *engine,
		Tesseract: scanning.TesseractConfig{
			Binary:      *tessBinary,
			TessdataDir: *tessdataDir,
			PSM:         *tessPSM,
		},
		GeminiKey:   firstNonEmpty(*geminiKey, os.Getenv("GEMINI_API_KEY")),
		GeminiModel: *geminiModel,
		OllamaURL:   *ollamaURL,
		OllamaModel: *ollamaModel,
		DocumentAI: scanning.DocumentAIConfig{
			ProjectID:       *docaiProject,
			Location:        *docaiLocation,
			ProcessorID:     *docaiProc,
			CredentialsFile: *docaiCreds,
		},
	})
	if err != nil {
		slog.Error("Failed to initialize OCR engine", "engine", *engine, "error", err)
		os.Exit(1)
	}
	scanner := scanning.NewOCRScanner(recognizer, parser, scanning.Options{
		Primary:       scanning.LanguageMode(*primaryMode),
		Fallback:      scanning.LanguageMode(*fallbackMode),
		MinTextLength: *minTextLength,
	})
	defer scanner.Close()

	slog.Info("Initializing storage...")
	store, err := receipt.NewLocalStorage(*storagePath)
	if err != nil {
		slog.Error("Failed to initialize storage", "error", err)
		os.Exit(1)
	}

	receiptService := receipt.NewService(db, scanner, parser, store)
	server := receipt.NewServer(receiptService, receipt.BasicAuth{
		Username: *authUser,
		Password: *authPass,
	})

	if *authUser != "" || *authPass != "" {
		slog.Info("Basic auth enabled", "user", *authUser)
	}

	addr := fmt.Sprintf(":%d", *port)
	if err := server.Start(ctx, addr); err != nil {
		slog.Error("Server error", "error", err)
		os.Exit(1)
	}
	slog.Info("Server stopped")
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
