package errors

import (
	"math"
	"testing"

	"gonum.org/v1/gonum/mat"
)

func TestCheckScalar(t *testing.T) {
	tests := []struct {
		name    string
		value   float64
		wantErr bool
	}{
		{"finite", 0.693, false},
		{"zero", 0, false},
		{"nan", math.NaN(), true},
		{"positive inf", math.Inf(1), true},
		{"negative inf", math.Inf(-1), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := CheckScalar("cost", tt.value, 7)
			if (err != nil) != tt.wantErr {
				t.Fatalf("CheckScalar() error = %v, wantErr %v", err, tt.wantErr)
			}
			if err == nil {
				return
			}
			var numErr *NumericalInstabilityError
			if !As(err, &numErr) {
				t.Fatalf("expected *NumericalInstabilityError, got %T", err)
			}
			if numErr.Operation != "cost" || numErr.Iteration != 7 {
				t.Errorf("unexpected fields: %+v", numErr)
			}
		})
	}
}

func TestCheckNumericalStability(t *testing.T) {
	if err := CheckNumericalStability("gradient", []float64{1, -2, 3}, 0); err != nil {
		t.Errorf("unexpected error: %v", err)
	}

	values := []float64{1, math.NaN(), 3}
	err := CheckNumericalStability("gradient", values, 2)
	if err == nil {
		t.Fatal("expected error for NaN gradient")
	}
	values[0] = 42
	var numErr *NumericalInstabilityError
	if !As(err, &numErr) {
		t.Fatalf("expected *NumericalInstabilityError, got %T", err)
	}
	if numErr.Values[0] != 1 {
		t.Error("error should hold a snapshot of the values")
	}
}

func TestCheckMatrix(t *testing.T) {
	m := mat.NewDense(2, 2, []float64{1, 2, 3, 4})
	if err := CheckMatrix("design", m, 2, 2, 0); err != nil {
		t.Errorf("unexpected error: %v", err)
	}

	m.Set(1, 0, math.Inf(1))
	if err := CheckMatrix("design", m, 2, 2, 0); err == nil {
		t.Error("expected error for Inf entry")
	}
}
