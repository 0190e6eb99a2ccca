package scanning

import (
	"context"
	"fmt"

	documentai "cloud.google.com/go/documentai/apiv1"
	"cloud.google.com/go/documentai/apiv1/documentaipb"
	"github.com/googleapis/gax-go/v2"
	"google.golang.org/api/option"
)

// DocumentAIConfig names the Document AI OCR processor to call
type DocumentAIConfig struct {
	ProjectID   string
	Location    string
	ProcessorID string
	// CredentialsFile is optional; application default credentials are used when empty
	CredentialsFile string
}

// documentProcessor is the part of the Document AI client we use
type documentProcessor interface {
	ProcessDocument(ctx context.Context, req *documentaipb.ProcessRequest, opts ...gax.CallOption) (*documentaipb.ProcessResponse, error)
	Close() error
}

// DocumentAI implements Recognizer with a Google Document AI OCR processor
type DocumentAI struct {
	client documentProcessor
	name   string
}

// NewDocumentAI creates a Document AI client for the configured processor
func NewDocumentAI(ctx context.Context, cfg DocumentAIConfig) (*DocumentAI, error) {
	if cfg.ProjectID == "" || cfg.ProcessorID == "" {
		return nil, fmt.Errorf("document ai project and processor are required")
	}
	if cfg.Location == "" {
		cfg.Location = "us"
	}

	opts := []option.ClientOption{
		option.WithEndpoint(fmt.Sprintf("%s-documentai.googleapis.com:443", cfg.Location)),
	}
	if cfg.CredentialsFile != "" {
		opts = append(opts, option.WithCredentialsFile(cfg.CredentialsFile))
	}

	client, err := documentai.NewDocumentProcessorClient(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("creating document ai client: %w", err)
	}
	return newDocumentAIWithClient(client, cfg), nil
}

func newDocumentAIWithClient(client documentProcessor, cfg DocumentAIConfig) *DocumentAI {
	return &DocumentAI{
		client: client,
		name:   fmt.Sprintf("projects/%s/locations/%s/processors/%s", cfg.ProjectID, cfg.Location, cfg.ProcessorID),
	}
}

// Recognize sends the image to the processor with the mode's language hints
func (d *DocumentAI) Recognize(ctx context.Context, image []byte, mode LanguageMode) (string, error) {
	req := &documentaipb.ProcessRequest{
		Name: d.name,
		Source: &documentaipb.ProcessRequest_RawDocument{
			RawDocument: &documentaipb.RawDocument{
				Content:  image,
				MimeType: "image/png",
			},
		},
		ProcessOptions: &documentaipb.ProcessOptions{
			OcrConfig: &documentaipb.OcrConfig{
				Hints: &documentaipb.OcrConfig_Hints{
					LanguageHints: languageHints(mode),
				},
			},
		},
		SkipHumanReview: true,
	}

	resp, err := d.client.ProcessDocument(ctx, req)
	if err != nil {
		return "", fmt.Errorf("processing document: %w", err)
	}
	if resp.GetDocument() == nil {
		return "", fmt.Errorf("document ai returned no document")
	}
	return cleanTranscript(resp.GetDocument().GetText()), nil
}

// languageHints maps a tesseract style mode to BCP-47 codes
func languageHints(mode LanguageMode) []string {
	switch mode {
	case ModeHebrewEnglish:
		return []string{"he", "en"}
	case ModeEnglish:
		return []string{"en"}
	default:
		return nil
	}
}

// Close closes the Document AI client
func (d *DocumentAI) Close() error {
	return d.client.Close()
}
