package model

import (
	"bytes"
	"math"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	scerr "github.com/YuminosukeSato/adiscriminator/pkg/errors"
)

func validWeights() *ModelWeights {
	return &ModelWeights{
		ModelType:       "LogisticRegression",
		Version:         WeightsVersion,
		Coefficients:    []float64{0.5, -1.0},
		Intercept:       -0.3,
		FitIntercept:    true,
		StdCoefficients: []float64{-0.2, 0.4, -0.9},
		ScalerMean:      []float64{0.1, 2.0},
		ScalerScale:     []float64{0.8, 0.9},
		Features:        []string{"age", "hours"},
		Hyperparameters: map[string]interface{}{"lambda": 0.0},
		Metadata:        map[string]interface{}{"converged": true},
		IsFitted:        true,
	}
}

func TestModelWeights_Validate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(w *ModelWeights)
		wantErr bool
	}{
		{"valid", func(w *ModelWeights) {}, false},
		{"missing type", func(w *ModelWeights) { w.ModelType = "" }, true},
		{"wrong version", func(w *ModelWeights) { w.Version = "0" }, true},
		{"fitted without coefficients", func(w *ModelWeights) { w.Coefficients = nil; w.Features = nil; w.ScalerMean = nil; w.ScalerScale = nil }, true},
		{"unfitted with coefficients", func(w *ModelWeights) { w.IsFitted = false }, true},
		{"feature names mismatch", func(w *ModelWeights) { w.Features = []string{"age"} }, true},
		{"scaler mismatch", func(w *ModelWeights) { w.ScalerScale = []float64{1} }, true},
		{"non-positive scale", func(w *ModelWeights) { w.ScalerScale[1] = 0 }, true},
		{"nan coefficient", func(w *ModelWeights) { w.Coefficients[0] = math.NaN() }, true},
		{"no scaler", func(w *ModelWeights) { w.ScalerMean = nil; w.ScalerScale = nil }, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := validWeights()
			tt.mutate(w)
			err := w.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestModelWeights_Clone(t *testing.T) {
	w := validWeights()
	c := w.Clone()
	require.Equal(t, w, c)

	c.Coefficients[0] = 99
	c.Features[0] = "changed"
	c.Metadata["converged"] = false
	assert.Equal(t, 0.5, w.Coefficients[0])
	assert.Equal(t, "age", w.Features[0])
	assert.Equal(t, true, w.Metadata["converged"])
}

type fakeExporter struct {
	weights  *ModelWeights
	imported *ModelWeights
}

func (f *fakeExporter) ExportWeights() (*ModelWeights, error) {
	if f.weights == nil {
		return nil, scerr.NewNotFittedError("fake", "ExportWeights")
	}
	return f.weights, nil
}

func (f *fakeExporter) ImportWeights(w *ModelWeights) error {
	f.imported = w
	return nil
}

func TestWeightsRoundTrip(t *testing.T) {
	src := &fakeExporter{weights: validWeights()}

	var buf bytes.Buffer
	require.NoError(t, SaveWeightsToWriter(src, &buf))

	dst := &fakeExporter{}
	require.NoError(t, LoadWeightsFromReader(dst, &buf))
	assert.Equal(t, src.weights.Coefficients, dst.imported.Coefficients)
	assert.Equal(t, src.weights.Features, dst.imported.Features)
	assert.Equal(t, src.weights.Intercept, dst.imported.Intercept)

	path := filepath.Join(t.TempDir(), "model.json")
	require.NoError(t, SaveWeights(src, path))
	file := &fakeExporter{}
	require.NoError(t, LoadWeights(file, path))
	assert.Equal(t, src.weights.StdCoefficients, file.imported.StdCoefficients)
}

func TestLoadWeights_Invalid(t *testing.T) {
	dst := &fakeExporter{}
	err := LoadWeightsFromReader(dst, bytes.NewBufferString(`{"model_type":"","version":"1"}`))
	var ve *scerr.ValidationError
	assert.True(t, scerr.As(err, &ve))
	assert.Nil(t, dst.imported)

	assert.Error(t, LoadWeightsFromReader(dst, bytes.NewBufferString("not json")))
	assert.Error(t, SaveWeightsToWriter(&fakeExporter{}, &bytes.Buffer{}))
}
