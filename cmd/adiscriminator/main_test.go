package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/YuminosukeSato/adiscriminator/core/model"
	"github.com/YuminosukeSato/adiscriminator/linear"
	"github.com/YuminosukeSato/adiscriminator/pkg/errors"
)

func noEnv(string) string { return "" }

func TestRunUsage(t *testing.T) {
	var out bytes.Buffer
	assert.Error(t, run(nil, &out, noEnv))
	assert.Contains(t, out.String(), "usage: adiscriminator")

	out.Reset()
	assert.NoError(t, run([]string{"help"}, &out, noEnv))
	assert.Error(t, run([]string{"train"}, &out, noEnv))
}

func TestRunFit(t *testing.T) {
	weights := filepath.Join(t.TempDir(), "weights.json")
	var out bytes.Buffer
	err := run([]string{"fit", "-rows", "400", "-fairness-lambda", "5", "-log-level", "error", "-output", weights}, &out, noEnv)
	require.NoError(t, err)

	text := out.String()
	assert.Contains(t, text, "intercept")
	assert.Contains(t, text, "converged: true")
	assert.Contains(t, text, "mean-probability gap")
	assert.Contains(t, text, "weights written to")

	lr := linear.NewLogisticRegression()
	require.NoError(t, model.LoadWeights(lr, weights))
	assert.True(t, lr.IsFitted())
	assert.Len(t, lr.Weights(), 3)
}

func TestRunFitCSVWithConfig(t *testing.T) {
	dir := t.TempDir()
	csvPath := filepath.Join(dir, "data.csv")
	require.NoError(t, os.WriteFile(csvPath, []byte(
		"a,b,y\n0.1,1,0\n0.4,0,0\n0.9,1,1\n1.3,0,1\n0.2,0,1\n1.1,1,0\n0.5,1,0\n0.8,0,1\n"), 0o600))
	cfgPath := filepath.Join(dir, "fit.yaml")
	require.NoError(t, os.WriteFile(cfgPath, []byte("data:\n  label: y\nmodel:\n  regularisation: l2\n  lambda: 1\nlog_level: error\n"), 0o600))

	env := map[string]string{"ADISC_DATA": csvPath}
	var out bytes.Buffer
	err := run([]string{"fit", "-config", cfgPath}, &out, func(k string) string { return env[k] })
	require.NoError(t, err)
	assert.Contains(t, out.String(), "regularisation=l2")
	assert.NotContains(t, out.String(), "mean-probability gap")
}

func TestRunFitBadFlags(t *testing.T) {
	var out bytes.Buffer
	assert.Error(t, run([]string{"fit", "-lambda", "-1", "-log-level", "error"}, &out, noEnv))
	assert.Error(t, run([]string{"fit", "-nope"}, &out, noEnv))
	assert.Error(t, run([]string{"fit", "-log-level", "loud"}, &out, noEnv))
	assert.NoError(t, run([]string{"fit", "-h"}, &out, noEnv))
}

func TestRunFitRegularisationFlags(t *testing.T) {
	var out bytes.Buffer
	err := run([]string{"fit", "-regularisation", "none", "-lambda", "5", "-log-level", "error"}, &out, noEnv)
	var ve *errors.ValidationError
	require.True(t, errors.As(err, &ve), "got %v", err)
	assert.Equal(t, "model.lambda", ve.ParamName)

	out.Reset()
	require.NoError(t, run([]string{"fit", "-rows", "300", "-lambda", "5", "-log-level", "error"}, &out, noEnv))
	assert.Contains(t, out.String(), "regularisation=l2")
}

func TestRunPath(t *testing.T) {
	png := filepath.Join(t.TempDir(), "path.png")
	var out bytes.Buffer
	err := run([]string{"path", "-rows", "400", "-lambdas", "0,5,25", "-log-level", "error", "-out", png}, &out, noEnv)
	require.NoError(t, err)
	assert.Contains(t, out.String(), "lambda")
	assert.Contains(t, out.String(), "plot written to")

	info, err := os.Stat(png)
	require.NoError(t, err)
	assert.Greater(t, info.Size(), int64(0))

	assert.Error(t, run([]string{"path", "-lambdas", "1,x", "-log-level", "error"}, &out, noEnv))
	assert.Error(t, run([]string{"path", "-lambdas", "-1", "-log-level", "error"}, &out, noEnv))
}

func TestRunCompare(t *testing.T) {
	var out bytes.Buffer
	err := run([]string{"compare", "-rows", "300", "-lambda", "2", "-tol", "1e-8", "-log-level", "error"}, &out, noEnv)
	require.NoError(t, err)
	assert.Contains(t, out.String(), "max difference")

	assert.Error(t, run([]string{"compare", "-fairness-lambda", "1", "-log-level", "error"}, &out, noEnv))
}
