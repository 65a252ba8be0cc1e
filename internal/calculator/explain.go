package calculator

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"
)

// Explainer turns a computed plan into user-facing prose. Implementations
// may call external text-generation services; Calculate itself never does.
type Explainer interface {
	Explain(ctx context.Context, input *Input, results *Results) (string, error)
}

type httpExplainer struct {
	baseURL string
	client  *http.Client
}

// NewHTTPExplainer builds the text-generation client
func NewHTTPExplainer(baseURL string, timeout time.Duration) Explainer {
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &httpExplainer{
		baseURL: baseURL,
		client:  &http.Client{Timeout: timeout},
	}
}

type explainRequest struct {
	Input   *Input   `json:"input"`
	Results *Results `json:"results"`
}

type explainResponse struct {
	Text string `json:"text"`
}

func (e *httpExplainer) Explain(ctx context.Context, input *Input, results *Results) (string, error) {
	payload, err := json.Marshal(explainRequest{Input: input, Results: results})
	if err != nil {
		return "", err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, e.baseURL+"/v1/explanations", bytes.NewReader(payload))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := e.client.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("explanation service returned %d", resp.StatusCode)
	}

	var decoded explainResponse
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		return "", err
	}
	return decoded.Text, nil
}

// MockExplainer returns canned prose, for development and tests
type MockExplainer struct{}

func (MockExplainer) Explain(_ context.Context, _ *Input, results *Results) (string, error) {
	return fmt.Sprintf("Seu plano prevê perder %.1f kg em aproximadamente %d semanas, com um consumo diário de %.0f kcal.",
		results.WeightToLose, results.DurationWeeks, results.DailyCalories), nil
}

// fallbackExplanation is the static text used when the explanation service
// is unavailable
const fallbackExplanation = "Não foi possível gerar a explicação personalizada agora. Confira o resumo do seu plano abaixo."

// summaryBullets is always appended to the explanation, generated or not
func summaryBullets(results *Results) string {
	var b strings.Builder

	fmt.Fprintf(&b, "\n- IMC atual: %.1f (%s)", results.CurrentBMI.Value, results.CurrentBMI.Classification)
	fmt.Fprintf(&b, "\n- Gasto energético diário (TDEE): %.0f kcal", results.TDEE)
	fmt.Fprintf(&b, "\n- Meta de consumo diário: %.0f kcal", results.DailyCalories)
	fmt.Fprintf(&b, "\n- Perda semanal estimada: %.2f kg", results.WeeklyLossKg)
	if results.DurationWeeks > 0 {
		fmt.Fprintf(&b, "\n- Duração estimada: %d semanas", results.DurationWeeks)
	}
	fmt.Fprintf(&b, "\n- Probabilidade de sucesso: %.0f%%", results.SuccessProbability*100)

	return b.String()
}
