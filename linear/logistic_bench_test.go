package linear

import (
	"testing"

	"gonum.org/v1/gonum/mat"

	"github.com/YuminosukeSato/adiscriminator/dataset"
)

// benchmarkData はベンチマーク用の二値分類データと群を生成する
func benchmarkData(b *testing.B, rows, cols int) (*mat.Dense, *mat.VecDense, []float64) {
	b.Helper()
	beta := make([]float64, cols+1)
	for j := 1; j <= cols; j++ {
		beta[j] = 0.5 * float64(j%3-1)
	}
	ds, err := dataset.SyntheticGroups(
		dataset.SyntheticConfig{Rows: rows, Beta: beta, Seed: 42},
		dataset.GroupConfig{Share: 0.5, Shift: 1, Effect: 1},
	)
	if err != nil {
		b.Fatal(err)
	}
	return ds.X, ds.Y, ds.Group
}

var benchSizes = []struct {
	name string
	rows int
	cols int
}{
	{"Small_500x5", 500, 5},
	{"Medium_5000x10", 5000, 10}, // 並列処理の閾値を超える
	{"Large_20000x20", 20000, 20},
}

// BenchmarkLogisticRegressionFit はペナルティ別のFitのベンチマーク
func BenchmarkLogisticRegressionFit(b *testing.B) {
	for _, size := range benchSizes {
		X, y, group := benchmarkData(b, size.rows, size.cols)
		variants := []struct {
			name string
			opts []Option
		}{
			{"plain", nil},
			{"ridge", []Option{WithRidge(1)}},
			{"fair", []Option{WithGroup(group, 5)}},
		}
		for _, v := range variants {
			b.Run(size.name+"/"+v.name, func(b *testing.B) {
				b.ResetTimer()
				for i := 0; i < b.N; i++ {
					lr := NewLogisticRegression(v.opts...)
					if err := lr.Fit(X, y); err != nil {
						b.Fatal(err)
					}
				}
			})
		}
	}
}

// BenchmarkFitIRLS は参照実装のベンチマーク（比較用）
func BenchmarkFitIRLS(b *testing.B) {
	for _, size := range benchSizes {
		X, y, _ := benchmarkData(b, size.rows, size.cols)
		b.Run(size.name, func(b *testing.B) {
			b.ResetTimer()
			for i := 0; i < b.N; i++ {
				if _, err := FitIRLS(X, y, true, 0); err != nil {
					b.Fatal(err)
				}
			}
		})
	}
}

// BenchmarkPredictProba は予測部分のみのベンチマーク
func BenchmarkPredictProba(b *testing.B) {
	X, y, _ := benchmarkData(b, 20000, 20)
	lr := NewLogisticRegression()
	if err := lr.Fit(X, y); err != nil {
		b.Fatal(err)
	}
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := lr.PredictProba(X); err != nil {
			b.Fatal(err)
		}
	}
}
