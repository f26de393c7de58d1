package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"

	"github.com/gowebpki/jcs"
)

const verdictKeyPrefix = "verdict:"

// KeyMaterial is everything that can change a judgment for the same prompt.
type KeyMaterial struct {
	Provider       string   `json:"provider"`
	Model          string   `json:"model"`
	Temperature    float64  `json:"temperature"`
	TopP           float64  `json:"top_p"`
	TopK           int      `json:"top_k"`
	CandidateCount int      `json:"candidate_count"`
	MaxTokens      int      `json:"max_tokens"`
	SystemPrompt   string   `json:"system_prompt,omitempty"`
	Instructions   []string `json:"instructions,omitempty"`
	Prompt         string   `json:"prompt"`
}

// VerdictKey derives a stable key from the canonical JSON form of the key
// material.
func VerdictKey(m KeyMaterial) (string, error) {
	raw, err := json.Marshal(m)
	if err != nil {
		return "", fmt.Errorf("marshal key material: %w", err)
	}
	canonical, err := jcs.Transform(raw)
	if err != nil {
		return "", fmt.Errorf("canonicalize key material: %w", err)
	}
	sum := sha256.Sum256(canonical)
	return verdictKeyPrefix + hex.EncodeToString(sum[:]), nil
}
