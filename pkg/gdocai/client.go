package gdocai

import (
	"context"
	"fmt"
	"os"

	documentai "cloud.google.com/go/documentai/apiv1"
	"cloud.google.com/go/documentai/apiv1/documentaipb"
	"google.golang.org/api/option"
)

// Processor processes a PDF and returns the Document AI document.
type Processor interface {
	ProcessDocument(ctx context.Context, pdfBytes []byte) (*documentaipb.Document, error)
}

// Client is a Processor backed by a Document AI processor client. One Client
// is meant to serve a whole batch; Close it when done.
type Client struct {
	client *documentai.DocumentProcessorClient
	cfg    Config
}

// NewClient connects to the regional Document AI endpoint of cfg.Location
// using the credentials file named by GOOGLE_APPLICATION_CREDENTIALS.
func NewClient(ctx context.Context, cfg Config) (*Client, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	endpoint := fmt.Sprintf("%s-documentai.googleapis.com:443", cfg.Location)

	opts := []option.ClientOption{option.WithEndpoint(endpoint)}
	if creds := os.Getenv("GOOGLE_APPLICATION_CREDENTIALS"); creds != "" {
		opts = append(opts, option.WithCredentialsFile(creds))
	}

	client, err := documentai.NewDocumentProcessorClient(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create Document AI client: %w", err)
	}
	return &Client{client: client, cfg: cfg}, nil
}

// ProcessDocument sends PDF bytes to Document AI and returns the raw
// Document proto.
func (c *Client) ProcessDocument(ctx context.Context, pdfBytes []byte) (*documentaipb.Document, error) {
	req := &documentaipb.ProcessRequest{
		Name: c.cfg.ProcessorName(),
		Source: &documentaipb.ProcessRequest_RawDocument{
			RawDocument: &documentaipb.RawDocument{
				Content:  pdfBytes,
				MimeType: "application/pdf",
			},
		},
		SkipHumanReview: true,
	}

	resp, err := c.client.ProcessDocument(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("failed to process document: %w", err)
	}
	return resp.GetDocument(), nil
}

// Close releases the underlying connection.
func (c *Client) Close() error {
	if c == nil || c.client == nil {
		return nil
	}
	return c.client.Close()
}
