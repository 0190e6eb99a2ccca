package receipt

import (
	"cmp"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"path/filepath"
	"regexp"
	"slices"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/zombor/receipt-reader/internal/parsing"
	"github.com/zombor/receipt-reader/internal/scanning"
)

// IDGenerator generates unique IDs for receipts
type IDGenerator interface {
	Generate() string
}

// TimeSource provides the current time
type TimeSource interface {
	Now() time.Time
}

type uuidGenerator struct{}

func (uuidGenerator) Generate() string {
	return uuid.NewString()
}

type defaultTimeSource struct{}

func (defaultTimeSource) Now() time.Time {
	return time.Now()
}

// Service scans receipts and keeps the ones the user confirms
type Service struct {
	db          DB
	scanner     scanning.Scanner
	parser      *parsing.Parser
	storage     Storage
	idGenerator IDGenerator
	timeSource  TimeSource
}

// NewService creates a new Service with UUID ids and the wall clock
func NewService(db DB, scanner scanning.Scanner, parser *parsing.Parser, storage Storage) *Service {
	return NewServiceWithDeps(db, scanner, parser, storage, uuidGenerator{}, defaultTimeSource{})
}

// NewServiceWithDeps creates a new Service with custom dependencies for testing
func NewServiceWithDeps(db DB, scanner scanning.Scanner, parser *parsing.Parser, storage Storage, idGen IDGenerator, timeSrc TimeSource) *Service {
	if parser == nil {
		parser = parsing.NewParser(nil)
	}
	return &Service{
		db:          db,
		scanner:     scanner,
		parser:      parser,
		storage:     storage,
		idGenerator: idGen,
		timeSource:  timeSrc,
	}
}

var (
	filenameJunk   = regexp.MustCompile(`[^\p{L}\p{N}\s\-_]`)
	filenameSpaces = regexp.MustCompile(`\s+`)
)

const maxFilenameRunes = 50

// sanitizeFilename tames long phone-generated names; letters in any script are kept
func sanitizeFilename(filename string) string {
	filename = filepath.Base(filename)
	ext := strings.ToLower(filepath.Ext(filename))
	if filenameJunk.MatchString(strings.TrimPrefix(ext, ".")) {
		ext = ""
	}
	base := strings.TrimSuffix(filename, filepath.Ext(filename))

	base = filenameJunk.ReplaceAllString(base, "")
	base = strings.TrimSpace(filenameSpaces.ReplaceAllString(base, " "))

	if runes := []rune(base); len(runes) > maxFilenameRunes {
		base = strings.TrimSpace(string(runes[:maxFilenameRunes]))
	}
	if base == "" {
		base = "receipt"
	}
	return base + ext
}

// ScanReceipt stores the image, reads it and returns an unsaved Receipt
// for the user to confirm with SaveReceipt.
// TODO: sweep stored images whose scan was never confirmed.
func (s *Service) ScanReceipt(ctx context.Context, filename string, data []byte, contentType string) (*Receipt, error) {
	id := s.idGenerator.Generate()
	now := s.timeSource.Now()

	savedName, err := s.storage.Save(fmt.Sprintf("%s_%s", id, sanitizeFilename(filename)), data)
	if err != nil {
		return nil, fmt.Errorf("saving file: %w", err)
	}

	receiptData, err := s.scanner.ScanReceipt(ctx, data, contentType)
	if err != nil {
		slog.Error("Failed to scan receipt",
			"filename", filename,
			"content_type", contentType,
			"file_size", len(data),
			"error", err,
		)
		if delErr := s.storage.Delete(savedName); delErr != nil {
			slog.Warn("Failed to clean up file", "filename", savedName, "error", delErr)
		}
		return nil, fmt.Errorf("scanning receipt: %w", err)
	}

	receipt := fromReceiptData(receiptData)
	receipt.ID = id
	receipt.Filename = savedName
	receipt.ContentType = contentType
	receipt.CreatedAt = now
	receipt.UpdatedAt = now

	slog.Info("Scanned receipt", "id", id, "store", receipt.StoreName, "items", len(receipt.Items), "total", receipt.Total)
	return receipt, nil
}

// ParseText interprets an OCR transcript without an image
func (s *Service) ParseText(text string) *Receipt {
	now := s.timeSource.Now()
	receipt := fromReceiptData(s.parser.Parse(text))
	receipt.ID = s.idGenerator.Generate()
	receipt.CreatedAt = now
	receipt.UpdatedAt = now
	return receipt
}

// SaveReceipt validates and persists a confirmed receipt. Saving an existing
// ID replaces it but keeps its creation time and image.
func (s *Service) SaveReceipt(receipt *Receipt) (*Receipt, error) {
	if receipt == nil {
		return nil, fmt.Errorf("%w: empty request", ErrInvalidReceipt)
	}
	if err := receipt.Validate(); err != nil {
		return nil, err
	}

	now := s.timeSource.Now()
	saved := *receipt
	saved.StoreName = strings.TrimSpace(saved.StoreName)
	saved.Items = append([]Item{}, receipt.Items...)
	if saved.ID == "" {
		saved.ID = s.idGenerator.Generate()
	}

	existing, err := s.db.GetReceipt(saved.ID)
	switch {
	case err == nil:
		saved.CreatedAt = existing.CreatedAt
		if saved.Filename == "" {
			saved.Filename = existing.Filename
			saved.ContentType = existing.ContentType
		}
	case errors.Is(err, ErrNotFound):
		if saved.CreatedAt.IsZero() {
			saved.CreatedAt = now
		}
	default:
		return nil, fmt.Errorf("checking existing receipt: %w", err)
	}

	if saved.Filename != "" {
		if _, err := s.storage.Get(saved.Filename); err != nil {
			return nil, fmt.Errorf("%w: unknown file %s", ErrInvalidReceipt, saved.Filename)
		}
	}
	if saved.Date.IsZero() {
		saved.Date = now
	}
	if saved.Total == 0 {
		saved.Total = saved.ItemsTotal()
	}
	saved.UpdatedAt = now

	if err := s.db.SaveReceipt(&saved); err != nil {
		return nil, fmt.Errorf("saving receipt to database: %w", err)
	}
	return &saved, nil
}

// GetReceipt retrieves a receipt by ID
func (s *Service) GetReceipt(id string) (*Receipt, error) {
	receipt, err := s.db.GetReceipt(id)
	if err != nil {
		return nil, fmt.Errorf("getting receipt: %w", err)
	}
	return receipt, nil
}

// ListReceipts returns all receipts, newest first
func (s *Service) ListReceipts() ([]*Receipt, error) {
	receipts, err := s.db.ListReceipts()
	if err != nil {
		return nil, fmt.Errorf("listing receipts: %w", err)
	}
	slices.SortFunc(receipts, func(a, b *Receipt) int {
		if c := b.Date.Compare(a.Date); c != 0 {
			return c
		}
		return cmp.Compare(a.ID, b.ID)
	})
	return receipts, nil
}

// DeleteReceipt removes a receipt and its file
func (s *Service) DeleteReceipt(id string) error {
	receipt, err := s.db.GetReceipt(id)
	if err != nil {
		return fmt.Errorf("getting receipt for deletion: %w", err)
	}

	if receipt.Filename != "" {
		if err := s.storage.Delete(receipt.Filename); err != nil {
			slog.Warn("Failed to delete file", "filename", receipt.Filename, "error", err)
		}
	}

	if err := s.db.DeleteReceipt(id); err != nil {
		return fmt.Errorf("deleting receipt from database: %w", err)
	}
	return nil
}

// GetReceiptFile retrieves the image for a receipt
func (s *Service) GetReceiptFile(id string) ([]byte, string, error) {
	receipt, err := s.db.GetReceipt(id)
	if err != nil {
		return nil, "", fmt.Errorf("getting receipt: %w", err)
	}
	if receipt.Filename == "" {
		return nil, "", fmt.Errorf("%w: receipt %s has no file", ErrNotFound, id)
	}

	data, err := s.storage.Get(receipt.Filename)
	if err != nil {
		return nil, "", fmt.Errorf("getting receipt file: %w", err)
	}
	return data, receipt.ContentType, nil
}
