package log

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"testing"
)

func TestLoggerInterface(t *testing.T) {
	testLogger, buffer := NewTestLogger(LevelDebug)

	testLogger.Debug("iteration", IterationKey, 3, LossKey, 0.41)
	testLogger.Info("fit started", OperationKey, OperationFit)
	testLogger.Warn("fit did not converge", ErrorCodeKey, ErrorConvergence)
	testLogger.Error("fit failed", fmt.Errorf("non-finite cost"), ErrorCodeKey, ErrorNumerical)

	if buffer.String() == "" {
		t.Fatal("Expected log output, got empty string")
	}

	for _, msg := range []string{"iteration", "fit started", "fit did not converge", "fit failed"} {
		if !testLogger.ContainsMessage(msg) {
			t.Errorf("message %q not found in output", msg)
		}
	}

	// JSON numbers decode as float64
	if !testLogger.ContainsField(IterationKey, 3.0) {
		t.Error("Expected field training.iteration=3 not found")
	}
	if !testLogger.ContainsField(ErrAttrKey, "non-finite cost") {
		t.Error("Expected leading error to be recorded under the error key")
	}
}

func TestLoggerWith(t *testing.T) {
	testLogger, _ := NewTestLogger(LevelDebug)

	contextLogger := testLogger.With(
		ModelNameKey, "LogisticRegression",
		ComponentKey, "linear",
		EstimatorIDKey, "lr-001",
	)
	contextLogger.Info("fit finished", OperationKey, OperationFit)

	if !testLogger.ContainsField(ModelNameKey, "LogisticRegression") {
		t.Error("Model name context not found")
	}
	if !testLogger.ContainsField(ComponentKey, "linear") {
		t.Error("Component context not found")
	}
	if !testLogger.ContainsField(OperationKey, OperationFit) {
		t.Error("Operation field not found")
	}
}

func TestLoggerEnabled(t *testing.T) {
	testLogger, _ := NewTestLogger(LevelInfo)
	ctx := context.Background()

	if !testLogger.Enabled(ctx, LevelInfo) {
		t.Error("Logger should be enabled for Info level")
	}
	if !testLogger.Enabled(ctx, LevelError) {
		t.Error("Logger should be enabled for Error level")
	}
	if testLogger.Enabled(ctx, LevelDebug) {
		t.Error("Logger should not be enabled for Debug level")
	}

	testLogger.Debug("this should not appear")
	testLogger.Info("this should appear")

	if testLogger.ContainsMessage("this should not appear") {
		t.Error("Debug message should not appear when level is Info")
	}
	if !testLogger.ContainsMessage("this should appear") {
		t.Error("Info message should appear when level is Info")
	}
}

func TestFitAttributeKeys(t *testing.T) {
	testLogger, _ := NewTestLogger(LevelInfo)

	testLogger.Info("fit finished",
		OperationKey, OperationFit,
		SamplesKey, 1000,
		FeaturesKey, 10,
		ModelNameKey, "LogisticRegression",
		MethodKey, "LBFGS",
		FairnessLambdaKey, 5.0,
		GroupGapKey, 0.02,
		ConvergedKey, true,
	)

	entries, err := testLogger.GetLogEntries()
	if err != nil {
		t.Fatalf("Failed to parse log entries: %v", err)
	}
	if len(entries) != 1 {
		t.Fatalf("Expected 1 log entry, got %d", len(entries))
	}

	expectedFields := map[string]interface{}{
		OperationKey:      OperationFit,
		SamplesKey:        1000.0,
		FeaturesKey:       10.0,
		ModelNameKey:      "LogisticRegression",
		MethodKey:         "LBFGS",
		FairnessLambdaKey: 5.0,
		GroupGapKey:       0.02,
		ConvergedKey:      true,
	}
	for key, expectedValue := range expectedFields {
		if actualValue, exists := entries[0][key]; !exists {
			t.Errorf("Expected field %s not found", key)
		} else if actualValue != expectedValue {
			t.Errorf("Field %s: expected %v, got %v", key, expectedValue, actualValue)
		}
	}
}

func TestTestLoggerNonFiniteField(t *testing.T) {
	testLogger, _ := NewTestLogger(LevelDebug)

	var nan float64
	nan = nan / nan
	testLogger.Debug("bad cost", LossKey, nan)

	entries, err := testLogger.GetLogEntries()
	if err != nil {
		t.Fatalf("Failed to parse log entries: %v", err)
	}
	if len(entries) != 1 || entries[0]["message"] != "bad cost" {
		t.Errorf("unexpected entries: %v", entries)
	}
}

func TestLoggerProviderIntegration(t *testing.T) {
	provider, buffer := NewTestLoggerProvider(LevelDebug)

	provider.GetLogger().Info("provider test message")
	provider.GetLoggerWithName("preprocessing").Info("named logger message")

	lines := buffer.String()
	for _, want := range []string{"provider test message", "named logger message", "preprocessing"} {
		if !strings.Contains(lines, want) {
			t.Errorf("%q not found in provider output", want)
		}
	}
}

func TestConcurrentLogging(t *testing.T) {
	testLogger, _ := NewTestLogger(LevelInfo)

	numGoroutines := 4
	messagesPerGoroutine := 5

	var wg sync.WaitGroup
	for i := 0; i < numGoroutines; i++ {
		wg.Add(1)
		go func(id int) {
			defer wg.Done()
			for j := 0; j < messagesPerGoroutine; j++ {
				testLogger.With("worker", id).Info(fmt.Sprintf("worker %d message %d", id, j))
			}
		}(i)
	}
	wg.Wait()

	entries, err := testLogger.GetLogEntries()
	if err != nil {
		t.Fatalf("Failed to parse log entries: %v", err)
	}
	if len(entries) != numGoroutines*messagesPerGoroutine {
		t.Errorf("Expected %d log entries, got %d", numGoroutines*messagesPerGoroutine, len(entries))
	}
}

func BenchmarkLogging(b *testing.B) {
	testLogger, _ := NewTestLogger(LevelInfo)
	contextLogger := testLogger.With(ModelNameKey, "LogisticRegression")

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		contextLogger.Info("predict",
			OperationKey, OperationPredict,
			SamplesKey, 1000,
		)
	}
}
