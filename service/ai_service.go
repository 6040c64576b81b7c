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

	"emi-planner/domain"
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

// GenerateScheduleExplanation genera una explicación del resultado de un
// recálculo: interés ahorrado, desembolsos y mes de finalización.
func (s *AIService) GenerateScheduleExplanation(
	terms domain.LoanTerms,
	result domain.ScheduleResult,
) string {
	if !s.enabled {
		return s.generateFallbackExplanation(terms, result)
	}

	prompt := fmt.Sprintf(`Analiza este recálculo de cronograma de préstamo y genera una explicación clara y educativa.

CONTEXTO DEL PRÉSTAMO:
- Monto original: $%.2f
- Tasa de interés anual inicial: %.2f%%
- Plazo original: %d meses
- Desembolsos adicionales: $%.2f
- Interés total a pagar: $%.2f
- Interés ahorrado frente al plan original: $%.2f
- Mes de finalización proyectado: %d

INSTRUCCIONES:
1. Explica de manera sencilla cómo los prepagos, desembolsos o cambios de tasa modificaron el plan original.
2. Sé específico con los montos y los meses.
3. Sé motivacional pero realista.

Genera una explicación de 3-4 oraciones que sea fácil de entender para cualquier persona.`,
		terms.Principal, terms.AnnualRatePercent, terms.TenureMonths,
		result.TotalDisbursements, result.TotalInterest,
		result.InterestSaved, result.CompletionMonth)

	explanation, err := s.callLLM(prompt)
	if err != nil {
		log.Printf("Error calling AI service for schedule explanation: %v", err)
		return s.generateFallbackExplanation(terms, result)
	}

	return explanation
}

func (s *AIService) callLLM(prompt string) (string, error) {
	reqBody := OpenAIRequest{
		Model: "gpt-4o-mini",
		Messages: []Message{
			{
				Role:    "system",
				Content: "Eres un asesor financiero experto en préstamos hipotecarios y amortización. Proporcionas explicaciones claras, precisas y motivacionales en español sobre cronogramas de pago, prepagos y cambios de tasa. Tus explicaciones son educativas, fáciles de entender y ayudan a los usuarios a tomar decisiones financieras informadas.",
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
		return "", fmt.Errorf("no response from AI")
	}

	return openAIResp.Choices[0].Message.Content, nil
}

func (s *AIService) generateFallbackExplanation(
	terms domain.LoanTerms,
	result domain.ScheduleResult,
) string {
	if result.InterestSaved > 0 {
		return fmt.Sprintf("Con los ajustes aplicados, el préstamo de $%.2f se completa en el mes %d en lugar de los %d meses originales, pagando $%.2f en intereses y ahorrando $%.2f frente al plan original. Mantener los prepagos es la forma más directa de reducir el costo total del préstamo.",
			terms.Principal, result.CompletionMonth, terms.TenureMonths,
			result.TotalInterest, result.InterestSaved)
	}
	return fmt.Sprintf("Con los ajustes aplicados, el préstamo de $%.2f se completa en el mes %d pagando $%.2f en intereses totales. Los desembolsos adicionales de $%.2f incrementaron el saldo, por lo que no hay ahorro frente al plan original.",
		terms.Principal, result.CompletionMonth, result.TotalInterest,
		result.TotalDisbursements)
}
