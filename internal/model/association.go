// Package model defines the core domain models used throughout the application.
package model

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
)

// DefaultScore is the model score reported when the backend omits one.
const DefaultScore = 0.77

// Association is one predicted product bundle for a customer.
type Association struct {
	CustomerID  CustomerID `json:"customer_id"`
	Description string     `json:"description"`
	Products    []string   `json:"products"`
	Confidence  float64    `json:"confidence"`
}

// CustomerID is a customer identifier in its text form.
// The backend emits integer IDs; string IDs are accepted as well.
type CustomerID string

// UnmarshalJSON accepts both JSON strings and JSON numbers.
func (c *CustomerID) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*c = ""
		return nil
	}

	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return fmt.Errorf("invalid customer_id: %w", err)
		}
		*c = CustomerID(s)
		return nil
	}

	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return fmt.Errorf("invalid customer_id: %w", err)
	}
	// Normalise 1001.0 to 1001 so substring filters behave like the text form.
	if f, err := n.Float64(); err == nil && f == float64(int64(f)) {
		*c = CustomerID(strconv.FormatInt(int64(f), 10))
		return nil
	}
	*c = CustomerID(n.String())
	return nil
}

// String returns the identifier text.
func (c CustomerID) String() string {
	return string(c)
}

// PredictionResult is the decoded payload of a successful prediction.
type PredictionResult struct {
	Segments        map[string]int      `json:"segments,omitempty"`
	Recommendations map[string][]string `json:"recommendations,omitempty"`
	Associations    []Association       `json:"associations"`
	Score           float64             `json:"score"`
}

// predictionPayload mirrors the wire shape where every field is optional.
type predictionPayload struct {
	Associations    *[]Association      `json:"associations"`
	Score           *float64            `json:"score"`
	Segments        map[string]int      `json:"segments"`
	Recommendations map[string][]string `json:"recommendations"`
}

// DecodePrediction parses a backend response body and applies the defaults
// for missing fields: an empty association list and DefaultScore.
func DecodePrediction(data []byte) (*PredictionResult, error) {
	var payload predictionPayload
	if err := json.Unmarshal(data, &payload); err != nil {
		return nil, err
	}

	result := &PredictionResult{
		Associations:    []Association{},
		Score:           DefaultScore,
		Segments:        payload.Segments,
		Recommendations: payload.Recommendations,
	}
	if payload.Associations != nil && *payload.Associations != nil {
		result.Associations = *payload.Associations
	}
	if payload.Score != nil {
		result.Score = *payload.Score
	}

	for i := range result.Associations {
		if result.Associations[i].Products == nil {
			result.Associations[i].Products = []string{}
		}
	}

	return result, nil
}

// Count returns the number of associations in the result.
func (r *PredictionResult) Count() int {
	if r == nil {
		return 0
	}
	return len(r.Associations)
}

// FilterCriteria holds user-entered filters for the association list.
type FilterCriteria struct {
	CustomerIDSubstring string
	MinConfidence       float64
}
