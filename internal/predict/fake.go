package predict

import (
	"context"
	"fmt"
	"io"
	"math/rand"
	"sync"
	"time"

	"github.com/Veraticus/basket-insights/internal/model"
)

// Fake is an in-memory Predictor for demo mode and tests.
type Fake struct {
	Result  *model.PredictionResult
	Err     error
	Delay   time.Duration
	uploads [][]byte
	mu      sync.Mutex
}

// NewFake returns a fake that answers every call with result.
func NewFake(result *model.PredictionResult) *Fake {
	return &Fake{Result: result}
}

// Predict records the upload and returns the configured result or error.
func (f *Fake) Predict(ctx context.Context, r io.Reader) (*model.PredictionResult, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, &TransportError{Err: err}
	}

	f.mu.Lock()
	f.uploads = append(f.uploads, data)
	delay := f.Delay
	f.mu.Unlock()

	if delay > 0 {
		select {
		case <-ctx.Done():
			return nil, &TransportError{Err: ctx.Err()}
		case <-time.After(delay):
		}
	}

	if f.Err != nil {
		return nil, f.Err
	}
	if f.Result == nil {
		return &model.PredictionResult{Associations: []model.Association{}, Score: model.DefaultScore}, nil
	}
	return f.Result, nil
}

// Calls returns how many predictions were requested.
func (f *Fake) Calls() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.uploads)
}

// LastUpload returns the bytes of the most recent upload.
func (f *Fake) LastUpload() []byte {
	f.mu.Lock()
	defer f.mu.Unlock()
	if len(f.uploads) == 0 {
		return nil
	}
	return f.uploads[len(f.uploads)-1]
}

var demoBundles = [][]string{
	{"Diapers", "Baby Food"},
	{"Milk", "Bread"},
	{"Milk", "Cereal"},
	{"Bread", "Butter"},
	{"Pasta", "Sauce"},
	{"Coffee", "Milk"},
	{"Eggs", "Bread"},
}

// DemoResult builds a deterministic prediction with count associations.
func DemoResult(count int, seed int64) *model.PredictionResult {
	rng := rand.New(rand.NewSource(seed)) //nolint:gosec // demo data only

	assocs := make([]model.Association, 0, count)
	customer := 1000
	for i := 0; i < count; i++ {
		bundle := demoBundles[rng.Intn(len(demoBundles))]
		confidence := 0.3 + rng.Float64()*0.7
		assocs = append(assocs, model.Association{
			CustomerID: model.CustomerID(fmt.Sprintf("%d", customer)),
			Products:   append([]string(nil), bundle...),
			Confidence: confidence,
			Description: fmt.Sprintf(
				"Customers who buy %s are likely to also buy %s with a %.1f%% confidence, suggesting a cross-selling opportunity.",
				bundle[0], bundle[1], confidence*100,
			),
		})
		customer += rng.Intn(6)
	}

	return &model.PredictionResult{
		Associations: assocs,
		Score:        model.DefaultScore,
	}
}
