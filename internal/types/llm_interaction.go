package types

import (
	"time"

	"github.com/google/uuid"
)

// LlmInteraction is the audit record of one generation call.
type LlmInteraction struct {
	ID                uuid.UUID `json:"id"`
	ItineraryID       int64     `json:"itinerary_id"`
	Prompt            string    `json:"prompt"`
	ResponseText      string    `json:"response_text"`
	ModelUsed         string    `json:"model_used"`
	ParseStatus       string    `json:"parse_status"`
	InsertedLandmarks int       `json:"inserted_landmarks"`
	LatencyMs         int       `json:"latency_ms"`
	CreatedAt         time.Time `json:"created_at"`
}

type ChatRequest struct {
	Prompt string `json:"prompt"`
}

type ChatResponse struct {
	Answer string `json:"answer"`
}
