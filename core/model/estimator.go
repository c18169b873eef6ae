package model

import "gonum.org/v1/gonum/mat"

// Fitter は学習可能な教師ありモデルのインターフェース
type Fitter interface {
	// Fit はモデルを訓練データで学習させる
	Fit(X, y mat.Matrix) error
}

// Predictor は予測可能なモデルのインターフェース
type Predictor interface {
	// Predict は入力データに対する予測を行う
	Predict(X mat.Matrix) (mat.Matrix, error)
}

// ProbabilisticClassifier は確率を出力する二値分類器のインターフェース
type ProbabilisticClassifier interface {
	Fitter
	Predictor
	// PredictProba は陽性クラスの確率を m×1 で返す
	PredictProba(X mat.Matrix) (mat.Matrix, error)
	// DecisionFunction は線形スコア Xθ を m×1 で返す
	DecisionFunction(X mat.Matrix) (mat.Matrix, error)
}

// LinearModel は線形モデルのインターフェース
type LinearModel interface {
	// Weights は学習された重み（切片を除く、元のスケール）を返す
	Weights() []float64
	// Intercept は学習された切片を返す
	Intercept() float64
}

// WeightExporter は学習済みの重みを書き出し・読み込みできるモデル
type WeightExporter interface {
	ExportWeights() (*ModelWeights, error)
	ImportWeights(w *ModelWeights) error
}
