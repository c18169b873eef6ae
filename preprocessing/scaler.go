// Package preprocessing provides feature standardisation and the mapping
// of coefficients fitted on standardised features back to the raw scale.
package preprocessing

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat"

	"github.com/YuminosukeSato/adiscriminator/core/model"
	"github.com/YuminosukeSato/adiscriminator/core/parallel"
	"github.com/YuminosukeSato/adiscriminator/pkg/errors"
)

// constantColumn reports whether sd is rounding noise relative to mu.
// The test is scale-free, so features in small units are still scaled.
func constantColumn(mu, sd float64) bool {
	return sd <= 10*epsilon*math.Abs(mu)
}

const epsilon = 0x1p-52

// StandardScaler はscikit-learn互換の標準化スケーラー
// データを平均0、標準偏差1に変換する。標準偏差は母標準偏差（ddof=0）。
type StandardScaler struct {
	model.BaseEstimator

	// Mean は各特徴量の平均値
	Mean []float64

	// Scale は各特徴量の標準偏差（定数列は1）
	Scale []float64

	// NFeatures は特徴量の数
	NFeatures int

	// WithMean は平均を引くかどうか (デフォルト: true)
	WithMean bool

	// WithStd は標準偏差で割るかどうか (デフォルト: true)
	WithStd bool
}

var _ model.InverseTransformer = (*StandardScaler)(nil)

// NewStandardScaler は新しいStandardScalerを作成する
//
// 使用例:
//
//	scaler := preprocessing.NewStandardScaler(true, true)
//	XScaled, err := scaler.FitTransform(X)
func NewStandardScaler(withMean, withStd bool) *StandardScaler {
	return &StandardScaler{
		BaseEstimator: model.NewBaseEstimator("StandardScaler"),
		WithMean:      withMean,
		WithStd:       withStd,
	}
}

// NewStandardScalerDefault はデフォルト設定でStandardScalerを作成する
func NewStandardScalerDefault() *StandardScaler {
	return NewStandardScaler(true, true)
}

// NewStandardScalerFromParams は保存済みの平均と標準偏差から学習済みのスケーラーを復元する
func NewStandardScalerFromParams(mean, scale []float64) (*StandardScaler, error) {
	if len(mean) == 0 {
		return nil, errors.NewModelError("StandardScaler", "empty parameters", errors.ErrEmptyData)
	}
	if len(mean) != len(scale) {
		return nil, errors.NewDimensionError("NewStandardScalerFromParams", len(mean), len(scale), 1)
	}
	for _, v := range scale {
		if v <= 0 {
			return nil, errors.NewValidationError("scale", "must be positive", v)
		}
	}
	s := NewStandardScalerDefault()
	s.Mean = append([]float64(nil), mean...)
	s.Scale = append([]float64(nil), scale...)
	s.NFeatures = len(mean)
	if err := s.State().Restore(s.Name, s.NFeatures, 0); err != nil {
		return nil, err
	}
	return s, nil
}

// Fit は訓練データから列ごとの平均と母標準偏差を計算する
func (s *StandardScaler) Fit(X mat.Matrix) error {
	r, c := X.Dims()
	if r == 0 || c == 0 {
		return errors.NewModelError("StandardScaler.Fit", "empty data", errors.ErrEmptyData)
	}

	state := s.State()
	state.Reset()
	if err := state.BeginFit(s.Name); err != nil {
		return err
	}

	mean := make([]float64, c)
	scale := make([]float64, c)
	col := make([]float64, r)
	for j := 0; j < c; j++ {
		mat.Col(col, j, X)
		mu, sd := stat.PopMeanStdDev(col, nil)
		if err := errors.CheckScalar("StandardScaler.Fit", mu, j); err != nil {
			state.Fail(err)
			return err
		}
		if s.WithMean {
			mean[j] = mu
		}
		scale[j] = 1.0
		// 定数列（平均に対して丸め誤差程度の標準偏差）は1のまま
		if s.WithStd && !constantColumn(mu, sd) {
			scale[j] = sd
		}
	}

	s.Mean = mean
	s.Scale = scale
	s.NFeatures = c
	state.Finish(c, r)
	return nil
}

// Transform は学習済みの統計情報を使ってデータを標準化する
func (s *StandardScaler) Transform(X mat.Matrix) (mat.Matrix, error) {
	if err := s.State().RequireFitted(s.Name, "Transform"); err != nil {
		return nil, err
	}
	r, c := X.Dims()
	if c != s.NFeatures {
		return nil, errors.NewDimensionError("StandardScaler.Transform", s.NFeatures, c, 1)
	}

	result := mat.NewDense(r, c, nil)
	parallel.Rows(r, func(i int) {
		row := result.RawRowView(i)
		for j := range row {
			row[j] = (X.At(i, j) - s.Mean[j]) / s.Scale[j]
		}
	})
	return result, nil
}

// FitTransform は訓練データで学習し、同じデータを変換する
func (s *StandardScaler) FitTransform(X mat.Matrix) (mat.Matrix, error) {
	if err := s.Fit(X); err != nil {
		return nil, err
	}
	return s.Transform(X)
}

// InverseTransform は標準化されたデータを元のスケールに戻す
func (s *StandardScaler) InverseTransform(X mat.Matrix) (mat.Matrix, error) {
	if err := s.State().RequireFitted(s.Name, "InverseTransform"); err != nil {
		return nil, err
	}
	r, c := X.Dims()
	if c != s.NFeatures {
		return nil, errors.NewDimensionError("StandardScaler.InverseTransform", s.NFeatures, c, 1)
	}

	result := mat.NewDense(r, c, nil)
	parallel.Rows(r, func(i int) {
		row := result.RawRowView(i)
		for j := range row {
			row[j] = X.At(i, j)*s.Scale[j] + s.Mean[j]
		}
	})
	return result, nil
}

// Destandardise maps coefficients fitted on standardised features to the
// raw feature scale.
//
// With an intercept theta has length NFeatures+1, intercept first:
//
//	θ_i = θ'_i / s_i
//	θ_0 = θ'_0 − Σ θ'_i μ_i / s_i
//
// Without an intercept only the first rule applies.
func (s *StandardScaler) Destandardise(theta []float64, hasIntercept bool) ([]float64, error) {
	if err := s.State().RequireFitted(s.Name, "Destandardise"); err != nil {
		return nil, err
	}
	offset := 0
	if hasIntercept {
		offset = 1
	}
	if len(theta) != s.NFeatures+offset {
		return nil, errors.NewDimensionError("StandardScaler.Destandardise", s.NFeatures+offset, len(theta), 1)
	}

	out := make([]float64, len(theta))
	shift := 0.0
	for j := 0; j < s.NFeatures; j++ {
		out[j+offset] = theta[j+offset] / s.Scale[j]
		shift += theta[j+offset] * s.Mean[j] / s.Scale[j]
	}
	if hasIntercept {
		out[0] = theta[0] - shift
	}
	return out, nil
}

// Standardise is the inverse of Destandardise.
func (s *StandardScaler) Standardise(theta []float64, hasIntercept bool) ([]float64, error) {
	if err := s.State().RequireFitted(s.Name, "Standardise"); err != nil {
		return nil, err
	}
	offset := 0
	if hasIntercept {
		offset = 1
	}
	if len(theta) != s.NFeatures+offset {
		return nil, errors.NewDimensionError("StandardScaler.Standardise", s.NFeatures+offset, len(theta), 1)
	}

	out := make([]float64, len(theta))
	shift := 0.0
	for j := 0; j < s.NFeatures; j++ {
		out[j+offset] = theta[j+offset] * s.Scale[j]
		shift += theta[j+offset] * s.Mean[j]
	}
	if hasIntercept {
		out[0] = theta[0] + shift
	}
	return out, nil
}

// GetParams はスケーラーのパラメータを取得する
func (s *StandardScaler) GetParams() map[string]interface{} {
	return map[string]interface{}{
		"with_mean": s.WithMean,
		"with_std":  s.WithStd,
	}
}

// String はスケーラーの文字列表現を返す
func (s *StandardScaler) String() string {
	if !s.IsFitted() {
		return fmt.Sprintf("StandardScaler(with_mean=%t, with_std=%t)", s.WithMean, s.WithStd)
	}
	return fmt.Sprintf("StandardScaler(with_mean=%t, with_std=%t, n_features=%d)",
		s.WithMean, s.WithStd, s.NFeatures)
}
