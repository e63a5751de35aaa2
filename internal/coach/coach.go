// Package coach asks a generative model for short personal-finance tips
// based on an analysis result.
package coach

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"

	"fjacquet/finanai/internal/currencyutils"
	"fjacquet/finanai/internal/logging"
	"fjacquet/finanai/internal/models"
)

// MaxTips bounds the number of tips returned.
const MaxTips = 3

// Client produces coaching tips for an analysis.
type Client interface {
	Advise(ctx context.Context, analysis *models.AnalysisResult) ([]string, error)
}

// generator sends a prompt and returns the model's text.
type generator interface {
	Generate(ctx context.Context, prompt string) (string, error)
	Close() error
}

// GeminiClient implements Client with the Google Gemini API.
type GeminiClient struct {
	gen     generator
	timeout time.Duration
	logger  logging.Logger
}

// NewGeminiClient connects to Gemini with apiKey and the named model.
func NewGeminiClient(ctx context.Context, apiKey, model string, timeout time.Duration, logger logging.Logger) (*GeminiClient, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("GEMINI_API_KEY not set")
	}
	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}
	return newGeminiClient(&genaiGenerator{client: client, model: client.GenerativeModel(model)}, timeout, logger), nil
}

func newGeminiClient(gen generator, timeout time.Duration, logger logging.Logger) *GeminiClient {
	return &GeminiClient{
		gen:     gen,
		timeout: timeout,
		logger:  logger.WithField(logging.FieldComponent, "coach"),
	}
}

// Advise asks the model for up to MaxTips tips.
func (c *GeminiClient) Advise(ctx context.Context, analysis *models.AnalysisResult) ([]string, error) {
	if analysis == nil {
		return nil, fmt.Errorf("analysis cannot be nil")
	}
	if c.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}

	start := time.Now()
	text, err := c.gen.Generate(ctx, BuildPrompt(analysis))
	if err != nil {
		return nil, fmt.Errorf("gemini request failed: %w", err)
	}

	tips := ParseTips(text)
	c.logger.Debug("Received coaching tips",
		logging.Field{Key: logging.FieldCount, Value: len(tips)},
		logging.Field{Key: logging.FieldDuration, Value: time.Since(start).Milliseconds()})
	return tips, nil
}

// Close releases the underlying API client.
func (c *GeminiClient) Close() error {
	return c.gen.Close()
}

// BuildPrompt describes the analysis to the model.
func BuildPrompt(a *models.AnalysisResult) string {
	var b strings.Builder
	b.WriteString("Eres un asesor financiero personal. Con estos datos, da como máximo 3 consejos breves y concretos en español.\n")
	b.WriteString("Escribe cada consejo en una línea que empiece con \"- \".\n\n")
	fmt.Fprintf(&b, "Ingresos totales: %s\n", currencyutils.FormatAmount(a.TotalIncome))
	fmt.Fprintf(&b, "Gastos totales: %s\n", currencyutils.FormatAmount(a.TotalExpenses))
	fmt.Fprintf(&b, "Gastos necesarios: %s\n", currencyutils.FormatAmount(a.NecessaryExpenses))
	fmt.Fprintf(&b, "Gastos no esenciales: %s\n", currencyutils.FormatAmount(a.UnnecessaryExpenses))
	fmt.Fprintf(&b, "Ahorro para objetivos: %s\n", currencyutils.FormatAmount(a.TotalSavings))
	fmt.Fprintf(&b, "Tasa de ahorro: %s\n", currencyutils.FormatPercent(a.SavingsRate))
	fmt.Fprintf(&b, "Tendencia: %s\n", a.Trend)
	fmt.Fprintf(&b, "Objetivos completados: %d, activos: %d\n", a.CompletedGoals, a.ActiveGoals)

	var top []string
	for _, entry := range a.CategoryBreakdown {
		if entry.Amount.IsPositive() {
			top = append(top, fmt.Sprintf("%s=%s", entry.Category, currencyutils.FormatAmount(entry.Amount)))
		}
	}
	if len(top) > 0 {
		fmt.Fprintf(&b, "Gastos por categoría: %s\n", strings.Join(top, ", "))
	}
	return b.String()
}

// ParseTips extracts lines starting with "-" or "*", up to MaxTips.
func ParseTips(text string) []string {
	tips := []string{}
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if !strings.HasPrefix(line, "-") && !strings.HasPrefix(line, "*") {
			continue
		}
		tip := strings.TrimSpace(strings.TrimLeft(line, "-* "))
		if tip == "" {
			continue
		}
		tips = append(tips, tip)
		if len(tips) == MaxTips {
			break
		}
	}
	return tips
}

type genaiGenerator struct {
	client *genai.Client
	model  *genai.GenerativeModel
}

func (g *genaiGenerator) Generate(ctx context.Context, prompt string) (string, error) {
	resp, err := g.model.GenerateContent(ctx, genai.Text(prompt))
	if err != nil {
		return "", err
	}
	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return "", fmt.Errorf("no response from Gemini API")
	}

	var b strings.Builder
	for _, part := range resp.Candidates[0].Content.Parts {
		if text, ok := part.(genai.Text); ok {
			b.WriteString(string(text))
		}
	}
	return b.String(), nil
}

func (g *genaiGenerator) Close() error {
	return g.client.Close()
}
