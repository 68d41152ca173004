// Package adapters implements adapter interfaces from the application layer.
package adapters

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/google/generative-ai-go/genai"
	"github.com/shopspring/decimal"
	"google.golang.org/api/option"

	"github.com/ledgerflow/backend/internal/application/adapter"
	"github.com/ledgerflow/backend/internal/domain/entity"
)

// GeminiExtractor implements the StatementExtractor using Google Gemini.
type GeminiExtractor struct {
	apiKey    string
	modelName string
}

// NewGeminiExtractor creates a new Gemini-backed statement extractor.
func NewGeminiExtractor(apiKey string) *GeminiExtractor {
	return &GeminiExtractor{
		apiKey:    apiKey,
		modelName: "gemini-2.5-flash-lite",
	}
}

// IsAvailable checks if the extraction service is properly configured.
func (s *GeminiExtractor) IsAvailable() bool {
	return s.apiKey != ""
}

// Extract parses unstructured statement text into transaction candidates.
func (s *GeminiExtractor) Extract(ctx context.Context, statementText string) ([]*adapter.ExtractedTransaction, error) {
	if !s.IsAvailable() {
		return nil, fmt.Errorf("gemini extractor is not configured")
	}

	client, err := genai.NewClient(ctx, option.WithAPIKey(s.apiKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create gemini client: %w", err)
	}
	defer client.Close()

	model := client.GenerativeModel(s.modelName)
	model.SetTemperature(0.1)
	model.ResponseMIMEType = "application/json"

	resp, err := model.GenerateContent(ctx, genai.Text(s.buildPrompt(statementText)))
	if err != nil {
		return nil, fmt.Errorf("failed to generate content: %w", err)
	}

	results, err := s.parseResponse(resp)
	if err != nil {
		return nil, fmt.Errorf("failed to parse response: %w", err)
	}

	return results, nil
}

// buildPrompt creates the extraction prompt for Gemini.
func (s *GeminiExtractor) buildPrompt(statementText string) string {
	var sb strings.Builder

	sb.WriteString(`You are a bank statement parser. Extract every transaction line from the statement below into a JSON array.

For each transaction return:
{
  "date": "YYYY-MM-DD",
  "description": "merchant or payee as printed",
  "amount": "absolute amount as a decimal string, no currency symbol",
  "type": "income" or "expense"
}

RULES:
- Money leaving the account (debits, purchases, withdrawals, fees) is "expense".
- Money entering the account (credits, deposits, refunds, salary) is "income".
- Keep descriptions as printed, trimmed of surrounding whitespace.
- Skip running-balance lines, headers, and summary totals.
- If the year is missing from a date, infer it from surrounding lines.

RESPONSE FORMAT: return only the JSON array, no additional text.

STATEMENT:
`)
	sb.WriteString(statementText)

	return sb.String()
}

// geminiTransaction represents one raw entry from the Gemini response.
type geminiTransaction struct {
	Date        string `json:"date"`
	Description string `json:"description"`
	Amount      string `json:"amount"`
	Type        string `json:"type"`
}

// parseResponse parses the Gemini response into extracted transactions.
func (s *GeminiExtractor) parseResponse(resp *genai.GenerateContentResponse) ([]*adapter.ExtractedTransaction, error) {
	if resp == nil || len(resp.Candidates) == 0 {
		return nil, fmt.Errorf("empty response from gemini")
	}

	var textContent string
	for _, part := range resp.Candidates[0].Content.Parts {
		if text, ok := part.(genai.Text); ok {
			textContent = string(text)
			break
		}
	}

	if textContent == "" {
		return nil, fmt.Errorf("no text content in response")
	}

	// Clean the response (remove markdown code blocks if present)
	textContent = strings.TrimPrefix(textContent, "```json")
	textContent = strings.TrimPrefix(textContent, "```")
	textContent = strings.TrimSuffix(textContent, "```")
	textContent = strings.TrimSpace(textContent)

	var rows []geminiTransaction
	if err := json.Unmarshal([]byte(textContent), &rows); err != nil {
		return nil, fmt.Errorf("failed to parse JSON response: %w, content: %s", err, textContent)
	}

	results := make([]*adapter.ExtractedTransaction, 0, len(rows))
	for _, row := range rows {
		date, err := time.Parse("2006-01-02", row.Date)
		if err != nil {
			continue // skip rows with unparseable dates
		}

		amount, err := decimal.NewFromString(row.Amount)
		if err != nil {
			continue
		}

		txType := entity.TransactionType(strings.ToLower(strings.TrimSpace(row.Type)))
		if txType != entity.TransactionTypeIncome && txType != entity.TransactionTypeExpense {
			continue
		}

		results = append(results, &adapter.ExtractedTransaction{
			Date:        date,
			Description: strings.TrimSpace(row.Description),
			Amount:      amount.Abs(),
			Type:        txType,
		})
	}

	return results, nil
}
