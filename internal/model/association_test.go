package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecodePrediction(t *testing.T) {
	tests := []struct {
		name      string
		body      string
		wantCount int
		wantScore float64
		wantErr   bool
	}{
		{
			name:      "full payload",
			body:      `{"associations":[{"customer_id":"1","products":["milk","bread"],"confidence":0.8,"description":"x"}],"score":0.9}`,
			wantCount: 1,
			wantScore: 0.9,
		},
		{
			name:      "missing score uses default",
			body:      `{"associations":[]}`,
			wantCount: 0,
			wantScore: DefaultScore,
		},
		{
			name:      "missing associations is empty",
			body:      `{"score":0.5}`,
			wantCount: 0,
			wantScore: 0.5,
		},
		{
			name:      "null associations is empty",
			body:      `{"associations":null}`,
			wantCount: 0,
			wantScore: DefaultScore,
		},
		{
			name:      "empty object",
			body:      `{}`,
			wantCount: 0,
			wantScore: DefaultScore,
		},
		{
			name:    "malformed body",
			body:    `<html>oops</html>`,
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := DecodePrediction([]byte(tt.body))
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			require.NotNil(t, got.Associations)
			assert.Len(t, got.Associations, tt.wantCount)
			assert.InDelta(t, tt.wantScore, got.Score, 1e-9)
		})
	}
}

func TestCustomerID_UnmarshalJSON(t *testing.T) {
	tests := []struct {
		name string
		body string
		want CustomerID
	}{
		{name: "string", body: `{"customer_id":"abc"}`, want: "abc"},
		{name: "integer", body: `{"customer_id":1042}`, want: "1042"},
		{name: "integral float", body: `{"customer_id":1042.0}`, want: "1042"},
		{name: "null", body: `{"customer_id":null}`, want: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := DecodePrediction([]byte(`{"associations":[` + tt.body + `]}`))
			require.NoError(t, err)
			require.Len(t, got.Associations, 1)
			assert.Equal(t, tt.want, got.Associations[0].CustomerID)
			assert.NotNil(t, got.Associations[0].Products)
		})
	}
}

func TestPredictionResult_Count(t *testing.T) {
	var nilResult *PredictionResult
	assert.Equal(t, 0, nilResult.Count())

	r := &PredictionResult{Associations: make([]Association, 3)}
	assert.Equal(t, 3, r.Count())
}

func TestUploadState_String(t *testing.T) {
	assert.Equal(t, "idle", UploadIdle.String())
	assert.Equal(t, "selected", UploadSelected.String())
	assert.Equal(t, "submitting", UploadSubmitting.String())
	assert.Equal(t, "succeeded", UploadSucceeded.String())
	assert.Equal(t, "failed", UploadFailed.String())
	assert.Equal(t, "unknown", UploadState(42).String())
}
