package gcp

import (
	"context"
	"fmt"

	documentai "cloud.google.com/go/documentai/apiv1"
	"cloud.google.com/go/documentai/apiv1/documentaipb"
	"google.golang.org/api/option"

	"github.com/Lllllllleong/identityverification/internal/verification"
)

// NewDocumentAIClient creates a Document AI processor client bound to the
// regional endpoint of location (for example "us" or "eu").
func NewDocumentAIClient(ctx context.Context, location string) (*documentai.DocumentProcessorClient, error) {
	if location == "" {
		return nil, fmt.Errorf("NewDocumentAIClient: location cannot be empty")
	}
	endpoint := fmt.Sprintf("%s-documentai.googleapis.com:443", location)
	client, err := documentai.NewDocumentProcessorClient(ctx, option.WithEndpoint(endpoint))
	if err != nil {
		return nil, fmt.Errorf("documentai.NewDocumentProcessorClient: %w", err)
	}
	return client, nil
}

// ProcessorName builds the fully qualified resource name of a processor.
func ProcessorName(projectID, location, processorID string) string {
	return fmt.Sprintf("projects/%s/locations/%s/processors/%s", projectID, location, processorID)
}

func processRaw(ctx context.Context, client *documentai.DocumentProcessorClient, processor string, content []byte, mimeType string) (*documentaipb.Document, error) {
	resp, err := client.ProcessDocument(ctx, &documentaipb.ProcessRequest{
		Name: processor,
		Source: &documentaipb.ProcessRequest_RawDocument{
			RawDocument: &documentaipb.RawDocument{
				Content:  content,
				MimeType: mimeType,
			},
		},
	})
	if err != nil {
		return nil, err
	}
	return resp.GetDocument(), nil
}

// DocumentAIFormExtractor reads key/value pairs with a Form Parser processor.
type DocumentAIFormExtractor struct {
	client    *documentai.DocumentProcessorClient
	processor string
}

func NewDocumentAIFormExtractor(client *documentai.DocumentProcessorClient, processor string) *DocumentAIFormExtractor {
	return &DocumentAIFormExtractor{client: client, processor: processor}
}

func (e *DocumentAIFormExtractor) ExtractForm(ctx context.Context, content []byte, mimeType string) ([]verification.Page, error) {
	doc, err := processRaw(ctx, e.client, e.processor, content, mimeType)
	if err != nil {
		return nil, fmt.Errorf("form parser failed: %w", err)
	}
	return FormPages(doc), nil
}

// DocumentAIFraudChecker runs an Identity Proofing processor.
type DocumentAIFraudChecker struct {
	client    *documentai.DocumentProcessorClient
	processor string
}

func NewDocumentAIFraudChecker(client *documentai.DocumentProcessorClient, processor string) *DocumentAIFraudChecker {
	return &DocumentAIFraudChecker{client: client, processor: processor}
}

func (c *DocumentAIFraudChecker) CheckIdentity(ctx context.Context, content []byte, mimeType string) ([]verification.FraudSignal, error) {
	doc, err := processRaw(ctx, c.client, c.processor, content, mimeType)
	if err != nil {
		return nil, fmt.Errorf("identity proofing failed: %w", err)
	}
	return FraudSignals(doc), nil
}

// FormPages converts the form fields of a processed document. Text is kept as
// returned by the processor; whitespace is collapsed by the verification engine.
func FormPages(doc *documentaipb.Document) []verification.Page {
	var pages []verification.Page
	for _, page := range doc.GetPages() {
		var p verification.Page
		for _, field := range page.GetFormFields() {
			p.Fields = append(p.Fields, verification.Field{
				Name:  field.GetFieldName().GetTextAnchor().GetContent(),
				Value: field.GetFieldValue().GetTextAnchor().GetContent(),
			})
		}
		pages = append(pages, p)
	}
	return pages
}

// FraudSignals converts the entities of an identity-proofing document.
func FraudSignals(doc *documentaipb.Document) []verification.FraudSignal {
	var signals []verification.FraudSignal
	for _, entity := range doc.GetEntities() {
		signals = append(signals, verification.FraudSignal{
			Type:            entity.GetType(),
			NormalizedValue: entity.GetNormalizedValue().GetText(),
		})
	}
	return signals
}
