package metrics

import (
	"math"

	"gonum.org/v1/gonum/mat"

	"github.com/YuminosukeSato/adiscriminator/pkg/errors"
)

// GroupRates は群ごとの平均予測値を保持する
type GroupRates struct {
	Mean0, Mean1 float64
	N0, N1       int
}

// Difference は Mean0 - Mean1 を返す
func (r GroupRates) Difference() float64 { return r.Mean0 - r.Mean1 }

// Ratio は min/max を返す。両群とも 0 の場合は 1。
func (r GroupRates) Ratio() float64 {
	lo, hi := math.Min(r.Mean0, r.Mean1), math.Max(r.Mean0, r.Mean1)
	if hi == 0 {
		return 1
	}
	return lo / hi
}

// GroupMeans は二値の群ラベル group ごとに yPred の平均を計算する。
// yPred には確率でもハードな予測ラベルでも渡せる。
func GroupMeans(yPred *mat.VecDense, group []float64) (GroupRates, error) {
	if yPred == nil || yPred.Len() == 0 {
		return GroupRates{}, errors.NewValueError("GroupMeans", "empty vector")
	}
	if len(group) != yPred.Len() {
		return GroupRates{}, errors.NewDimensionError("GroupMeans", yPred.Len(), len(group), 0)
	}

	var r GroupRates
	for i, g := range group {
		switch g {
		case 0:
			r.Mean0 += yPred.AtVec(i)
			r.N0++
		case 1:
			r.Mean1 += yPred.AtVec(i)
			r.N1++
		default:
			return GroupRates{}, errors.NewValueError("GroupMeans", "group must be binary (0 or 1)")
		}
	}
	if r.N0 == 0 || r.N1 == 0 {
		return GroupRates{}, errors.NewValueError("GroupMeans", "both groups must be non-empty")
	}
	r.Mean0 /= float64(r.N0)
	r.Mean1 /= float64(r.N1)
	return r, nil
}

// GroupMeanDifference は群 0 と群 1 の平均予測値の差を返す
func GroupMeanDifference(yPred *mat.VecDense, group []float64) (float64, error) {
	r, err := GroupMeans(yPred, group)
	if err != nil {
		return 0, err
	}
	return r.Difference(), nil
}

// DemographicParityRatio は群間の陽性予測率の比 (min/max) を返す。
// 1 に近いほど公平。
func DemographicParityRatio(yPred *mat.VecDense, group []float64) (float64, error) {
	r, err := GroupMeans(yPred, group)
	if err != nil {
		return 0, err
	}
	return r.Ratio(), nil
}

// EqualOpportunityDifference は真陽性率の群間差 TPR0 - TPR1 を返す
func EqualOpportunityDifference(yTrue, yPred *mat.VecDense, group []float64) (float64, error) {
	n, err := checkPair("EqualOpportunityDifference", yTrue, yPred)
	if err != nil {
		return 0, err
	}
	if len(group) != n {
		return 0, errors.NewDimensionError("EqualOpportunityDifference", n, len(group), 0)
	}
	if err := checkBinary("EqualOpportunityDifference", yTrue); err != nil {
		return 0, err
	}

	var pred, g []float64
	for i := 0; i < n; i++ {
		if yTrue.AtVec(i) == 1 {
			pred = append(pred, yPred.AtVec(i))
			g = append(g, group[i])
		}
	}
	if len(pred) == 0 {
		return 0, errors.NewValueError("EqualOpportunityDifference", "no positive labels")
	}
	return GroupMeanDifference(mat.NewVecDense(len(pred), pred), g)
}
