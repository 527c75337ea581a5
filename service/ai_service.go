package service

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"os"
	"time"

	"tbontb/domain"
)

type AIService struct {
	apiKey     string
	apiURL     string
	enabled    bool
	httpClient *http.Client
}

type OpenAIRequest struct {
	Model     string    `json:"model"`
	Messages  []Message `json:"messages"`
	MaxTokens int       `json:"max_tokens,omitempty"`
}

type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type OpenAIResponse struct {
	Choices []struct {
		Message Message `json:"message"`
	} `json:"choices"`
}

func NewAIService() *AIService {
	apiKey := os.Getenv("OPENAI_API_KEY")
	enabled := apiKey != ""

	return &AIService{
		apiKey:  apiKey,
		apiURL:  "https://api.openai.com/v1/chat/completions",
		enabled: enabled,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

// GenerateComparisonExplanation genera una explicación clara de la
// comparación comprar vs invertir. Sin API key usa una plantilla local.
func (s *AIService) GenerateComparisonExplanation(
	buying domain.ScenarioSummary,
	investment domain.ScenarioSummary,
) string {
	if !s.enabled {
		return s.generateFallbackExplanation(buying, investment)
	}

	prompt := fmt.Sprintf(`Analiza esta comparación entre comprar un inmueble con hipoteca e invertir el capital en el mercado, y genera una explicación clara y educativa.

ESCENARIO DE COMPRA:
- Patrimonio neto mediano al final: %.2f
- Escenario pesimista (percentil 10): %.2f
- Escenario optimista (percentil 90): %.2f
- Retorno anualizado: %.2f%%

ESCENARIO DE INVERSIÓN:
- Valor final mediano (después de impuestos): %.2f
- Escenario pesimista (percentil 10): %.2f
- Escenario optimista (percentil 90): %.2f
- Retorno anualizado: %.2f%%

INSTRUCCIONES:
1. Explica cuál escenario produce el mejor resultado mediano y por cuánto.
2. Comenta la diferencia de riesgo entre ambos (rango pesimista-optimista).
3. Recuerda que son simulaciones Monte Carlo, no garantías.
4. Sé claro y realista, sin recomendar productos específicos.

Genera una explicación de 3-4 oraciones que sea fácil de entender para cualquier persona.`,
		buying.FinalValueMedian, buying.FinalValuePessimistic, buying.FinalValueOptimistic, buying.AnnualizedReturn,
		investment.FinalValueMedian, investment.FinalValuePessimistic, investment.FinalValueOptimistic, investment.AnnualizedReturn)

	explanation, err := s.callLLM(prompt)
	if err != nil {
		log.Printf("Error calling AI service for comparison: %v", err)
		return s.generateFallbackExplanation(buying, investment)
	}

	return explanation
}

func (s *AIService) callLLM(prompt string) (string, error) {
	reqBody := OpenAIRequest{
		Model: "gpt-4o-mini",
		Messages: []Message{
			{
				Role:    "system",
				Content: "Eres un asesor financiero experto en decisiones de vivienda e inversión a largo plazo. Explicas resultados de simulaciones Monte Carlo en español claro, sin prometer rendimientos y señalando siempre la incertidumbre de los escenarios.",
			},
			{
				Role:    "user",
				Content: prompt,
			},
		},
		MaxTokens: 300,
	}

	jsonData, err := json.Marshal(reqBody)
	if err != nil {
		return "", err
	}

	req, err := http.NewRequest("POST", s.apiURL, bytes.NewBuffer(jsonData))
	if err != nil {
		return "", err
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", fmt.Sprintf("Bearer %s", s.apiKey))

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return "", fmt.Errorf("API error (status %d): %s", resp.StatusCode, string(body))
	}

	var openAIResp OpenAIResponse
	if err := json.NewDecoder(resp.Body).Decode(&openAIResp); err != nil {
		return "", err
	}

	if len(openAIResp.Choices) == 0 {
		return "", fmt.Errorf("empty response from AI service")
	}

	return openAIResp.Choices[0].Message.Content, nil
}

func (s *AIService) generateFallbackExplanation(
	buying domain.ScenarioSummary,
	investment domain.ScenarioSummary,
) string {
	winner := "comprar el inmueble"
	diff := buying.FinalValueMedian - investment.FinalValueMedian
	if diff < 0 {
		winner = "invertir el capital"
		diff = -diff
	}
	return fmt.Sprintf("En el escenario mediano, %s termina con un patrimonio mayor por %.2f. La compra cierra entre %.2f y %.2f (percentiles 10 y 90) y la inversión entre %.2f y %.2f. Son simulaciones Monte Carlo: muestran rangos probables, no garantías.",
		winner, diff,
		buying.FinalValuePessimistic, buying.FinalValueOptimistic,
		investment.FinalValuePessimistic, investment.FinalValueOptimistic)
}
