package model

import (
	"encoding/json"

	scerr "github.com/YuminosukeSato/adiscriminator/pkg/errors"
)

// WeightsVersion is the current ModelWeights format version.
const WeightsVersion = "1"

// ModelWeights はモデルの重みを表す構造体（シリアライゼーション用）
type ModelWeights struct {
	// ModelType はモデルの種類（LogisticRegression等）
	ModelType string `json:"model_type"`

	// Version はフォーマットのバージョン（互換性チェック用）
	Version string `json:"version"`

	// Coefficients は元のスケールでの重み係数（切片を除く）
	Coefficients []float64 `json:"coefficients"`

	// Intercept は切片
	Intercept float64 `json:"intercept"`

	// FitIntercept は切片を学習したかどうか
	FitIntercept bool `json:"fit_intercept"`

	// StdCoefficients は標準化空間での θ（切片を含む、標準化しない場合は Coefficients と同じ値）
	StdCoefficients []float64 `json:"std_coefficients,omitempty"`

	// ScalerMean と ScalerScale は標準化に使った平均と標準偏差
	ScalerMean  []float64 `json:"scaler_mean,omitempty"`
	ScalerScale []float64 `json:"scaler_scale,omitempty"`

	// Features は特徴量の名前（オプション）
	Features []string `json:"features,omitempty"`

	// Hyperparameters はモデルのハイパーパラメータ
	Hyperparameters map[string]interface{} `json:"hyperparameters"`

	// Metadata は追加のメタデータ（収束状態やグループの件数など）
	Metadata map[string]interface{} `json:"metadata,omitempty"`

	// IsFitted はモデルが学習済みかどうか
	IsFitted bool `json:"is_fitted"`
}

// ToJSON はModelWeightsをJSON形式にシリアライズ
func (mw *ModelWeights) ToJSON() ([]byte, error) {
	data, err := json.MarshalIndent(mw, "", "  ")
	if err != nil {
		return nil, scerr.Wrap(err, "failed to marshal model weights")
	}
	return data, nil
}

// FromJSON はJSON形式からModelWeightsをデシリアライズ
func (mw *ModelWeights) FromJSON(data []byte) error {
	if err := json.Unmarshal(data, mw); err != nil {
		return scerr.Wrap(err, "failed to unmarshal model weights")
	}
	return nil
}

// Validate はModelWeightsの妥当性を検証
func (mw *ModelWeights) Validate() error {
	if mw.ModelType == "" {
		return scerr.NewValidationError("model_type", "is required", mw.ModelType)
	}
	if mw.Version != WeightsVersion {
		return scerr.NewValidationError("version", "unsupported weights version", mw.Version)
	}
	if !mw.IsFitted && len(mw.Coefficients) > 0 {
		return scerr.NewValidationError("coefficients", "unfitted model should not have coefficients", len(mw.Coefficients))
	}
	if !mw.IsFitted {
		return nil
	}
	if len(mw.Coefficients) == 0 {
		return scerr.NewValidationError("coefficients", "fitted model must have coefficients", 0)
	}
	n := len(mw.Coefficients)
	if len(mw.Features) > 0 && len(mw.Features) != n {
		return scerr.NewDimensionError("ModelWeights.Validate", n, len(mw.Features), 1)
	}
	if len(mw.ScalerMean) != len(mw.ScalerScale) || (len(mw.ScalerMean) > 0 && len(mw.ScalerMean) != n) {
		return scerr.NewDimensionError("ModelWeights.Validate", n, len(mw.ScalerMean), 1)
	}
	for _, s := range mw.ScalerScale {
		if s <= 0 {
			return scerr.NewValidationError("scaler_scale", "must be positive", s)
		}
	}
	if err := scerr.CheckNumericalStability("coefficients", mw.Coefficients, 0); err != nil {
		return err
	}
	return scerr.CheckScalar("intercept", mw.Intercept, 0)
}

// Clone はModelWeightsのディープコピーを作成
func (mw *ModelWeights) Clone() *ModelWeights {
	clone := *mw
	clone.Coefficients = append([]float64(nil), mw.Coefficients...)
	clone.StdCoefficients = append([]float64(nil), mw.StdCoefficients...)
	clone.ScalerMean = append([]float64(nil), mw.ScalerMean...)
	clone.ScalerScale = append([]float64(nil), mw.ScalerScale...)
	clone.Features = append([]string(nil), mw.Features...)

	clone.Hyperparameters = make(map[string]interface{}, len(mw.Hyperparameters))
	for k, v := range mw.Hyperparameters {
		clone.Hyperparameters[k] = v
	}
	clone.Metadata = make(map[string]interface{}, len(mw.Metadata))
	for k, v := range mw.Metadata {
		clone.Metadata[k] = v
	}
	return &clone
}
