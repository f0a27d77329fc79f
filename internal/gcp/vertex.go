package gcp

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"cloud.google.com/go/vertexai/genai"

	"github.com/Lllllllleong/identityverification/internal/verification"
)

// --- Form Extraction Model Prompts ---
const FormExtractionSystemPrompt = "You are a form field extraction tool for scanned identity documents and death certificates. You transcribe printed labels and the values written next to them exactly as they appear. You must output your response as a valid JSON array."
const FormExtractionUserPrompt = `You will be provided with an image or PDF of an identity document or a death certificate.

Follow these rules precisely:
1.  Find every labelled field on each page, for example "Name of Decedent", "Date of Birth", "Social Security Number", "County of Death".
2.  Copy the label text exactly as printed into "name" and the filled-in value exactly as written into "value". Do not reformat dates, names or numbers.
3.  Keep fields in reading order, top to bottom and left to right.
4.  Create one JSON object per page with a single key "fields" holding an array of {"name": ..., "value": ...} objects.
5.  The final output MUST be a single, valid JSON array of page objects. Do not include any text before or after the JSON array.

Example output format:
[
  {
    "fields": [
      {"name": "Decedent's Legal Name", "value": "Jill Diane Harmon"},
      {"name": "Date of Birth", "value": "November 11, 1962"}
    ]
  }
]`

// VertexFormExtractor extracts form fields with a Gemini model as an
// alternative to the Document AI form parser.
type VertexFormExtractor struct {
	FormModel  *genai.GenerativeModel
	baseClient *genai.Client
}

// NewVertexFormExtractor creates a client holding the pre-configured form model.
func NewVertexFormExtractor(ctx context.Context, projectID, region, modelName string) (*VertexFormExtractor, error) {
	if projectID == "" || region == "" {
		return nil, fmt.Errorf("NewVertexFormExtractor: projectID and region cannot be empty")
	}

	baseClient, err := genai.NewClient(ctx, projectID, region)
	if err != nil {
		return nil, fmt.Errorf("genai.NewClient: %w", err)
	}

	formModel := baseClient.GenerativeModel(modelName)
	formModel.SystemInstruction = &genai.Content{
		Parts: []genai.Part{genai.Text(FormExtractionSystemPrompt)},
	}
	formModel.GenerationConfig = genai.GenerationConfig{
		// Structured output is parsed directly into verification pages.
		ResponseMIMEType: "application/json",
		Temperature:      genai.Ptr[float32](0.0),
	}

	return &VertexFormExtractor{
		FormModel:  formModel,
		baseClient: baseClient,
	}, nil
}

func (e *VertexFormExtractor) ExtractForm(ctx context.Context, content []byte, mimeType string) ([]verification.Page, error) {
	resp, err := e.FormModel.GenerateContent(ctx, genai.Blob{MIMEType: mimeType, Data: content}, genai.Text(FormExtractionUserPrompt))
	if err != nil {
		return nil, fmt.Errorf("failed to extract form fields with gemini: %w", err)
	}
	return ParseFormPages(extractJSONContent(resp))
}

func (e *VertexFormExtractor) Close() error {
	if e.baseClient != nil {
		return e.baseClient.Close()
	}
	return nil
}

// ParseFormPages decodes the JSON array the form model is instructed to return.
func ParseFormPages(raw string) ([]verification.Page, error) {
	if raw == "" {
		return nil, fmt.Errorf("gemini returned an empty response instead of JSON")
	}
	var pages []verification.Page
	if err := json.Unmarshal([]byte(raw), &pages); err != nil {
		return nil, fmt.Errorf("failed to parse JSON from model: %w", err)
	}
	return pages, nil
}

// extractJSONContent gets the raw text content from the model response.
func extractJSONContent(resp *genai.GenerateContentResponse) string {
	if resp == nil || len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil || len(resp.Candidates[0].Content.Parts) == 0 {
		return ""
	}
	var b strings.Builder
	for _, part := range resp.Candidates[0].Content.Parts {
		if txt, ok := part.(genai.Text); ok {
			b.WriteString(string(txt))
		}
	}
	cleanJSON := strings.TrimSpace(b.String())
	cleanJSON = strings.TrimPrefix(cleanJSON, "```json")
	cleanJSON = strings.TrimSuffix(cleanJSON, "```")
	return strings.TrimSpace(cleanJSON)
}
