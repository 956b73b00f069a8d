package extraction

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"
)

// slipExtractPrompt asks the model for the exact JSON shape the rest of
// the pipeline consumes. The special-text instructions are deliberately
// heavy: the markers are handwritten and the single most important
// field on the slip.
const slipExtractPrompt = `You are a specialized OCR system for bank receipts and deposit slips. Analyze this image and extract data in this EXACT JSON format:

{
  "transaction_type": string,    // Must be 'CDM' or 'ATM_TRANSFER' or 'UNKNOWN'
  "account_number": string,      // The bank account number (10-18 digits, may have separators)
  "date": string,                // Format as YYYY-MM-DD
  "amount": string,              // Transaction amount with 2 decimal places
  "reference": string,           // Any reference number/ID, or null if none
  "has_special_text": boolean,   // true if 'HPWIN' or 'HPWINVIP' appears, false otherwise
  "special_text_found": string   // The exact marker found ('HPWIN' or 'HPWINVIP') or null if none
}

IMPORTANT INSTRUCTIONS:
1. TRANSACTION TYPE: 'deposit', 'cash in' = CDM; 'withdrawal', 'transfer', 'cash out' = ATM_TRANSFER.
2. ACCOUNT NUMBER: fix common OCR errors ('O' to '0', 'l'/'I' to '1', 'S' to '5') and remove spaces or dashes.
3. DATE: convert any date format to YYYY-MM-DD.
4. SPECIAL TEXT (HIGHEST PRIORITY): the markers 'HPWINVIP' and 'HPWIN' are HANDWRITTEN and may appear anywhere on the slip, often next to the account number or in margins. Account for OCR misreads such as 'HPW1NV1P', 'HPVVINVIP', 'HP WIN VIP', 'H P W I N V I P'. If there is ANY indication of 'VIP' after 'HPWIN', you MUST return 'HPWINVIP', not 'HPWIN'.

Return ONLY the JSON object. Do not include any text before or after it. Do not use markdown code blocks. Use null for any field you cannot find.`

// Gemini implements the Extractor interface using Google Gemini,
// serving as a built-in alternative to the remote extraction endpoint.
type Gemini struct {
	client *genai.Client
	model  *genai.GenerativeModel
}

// NewGemini creates a new Gemini Extractor instance
func NewGemini(apiKey string, modelName string) (*Gemini, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("gemini api key is required")
	}
	if modelName == "" {
		modelName = "gemini-2.5-pro"
	}

	ctx := context.Background()
	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("creating gemini client: %w", err)
	}

	model := client.GenerativeModel(modelName)

	return &Gemini{
		client: client,
		model:  model,
	}, nil
}

// ExtractSlip analyzes a slip image and extracts its structured fields
func (g *Gemini) ExtractSlip(ctx context.Context, filename string, imageData []byte, contentType string) (*SlipData, error) {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	finalImageData, err := prepareImageData(imageData, contentType)
	if err != nil {
		return nil, err
	}

	// genai.ImageData expects just the format suffix, and everything is
	// PNG after prepareImageData.
	parts := []genai.Part{
		genai.ImageData("png", finalImageData),
		genai.Text(slipExtractPrompt),
	}

	resp, err := g.model.GenerateContent(ctx, parts...)
	if err != nil {
		return nil, fmt.Errorf("generating content: %w", err)
	}

	if len(resp.Candidates) == 0 || len(resp.Candidates[0].Content.Parts) == 0 {
		return nil, fmt.Errorf("no response from gemini")
	}

	var responseText strings.Builder
	for _, part := range resp.Candidates[0].Content.Parts {
		if text, ok := part.(genai.Text); ok {
			responseText.WriteString(string(text))
		}
	}

	text := strings.TrimSpace(responseText.String())
	data, err := parseSlipJSON(text)
	if err != nil {
		return nil, fmt.Errorf("parsing slip data: %w", err)
	}

	applyDetectionFallback(data, text)

	return data, nil
}

// applyDetectionFallback firms up the classification fields with the
// keyword/regex detectors when the model left them unknown. The model
// can miss faint handwriting that the tolerant patterns still catch in
// its raw transcription.
func applyDetectionFallback(data *SlipData, rawText string) {
	if data.TransactionType == nil || *data.TransactionType == "" || *data.TransactionType == TypeUnknown {
		t := ClassifyTransactionType(rawText)
		data.TransactionType = &t
	}

	if data.Verified() {
		return
	}
	if marker, found := DetectSpecialText(rawText); found {
		yes := true
		data.HasSpecialText = &yes
		data.SpecialTextFound = &marker
	} else if data.HasSpecialText == nil {
		no := false
		data.HasSpecialText = &no
	}
}

// Close closes the Gemini client
func (g *Gemini) Close() error {
	return g.client.Close()
}
