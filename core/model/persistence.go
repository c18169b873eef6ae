package model

import (
	"io"
	"os"

	scerr "github.com/YuminosukeSato/adiscriminator/pkg/errors"
)

// SaveWeights はモデルの重みをJSONファイルに保存する
//
// 使用例:
//
//	lr := linear.NewLogisticRegression()
//	// ... モデルの学習 ...
//	err := model.SaveWeights(lr, "model.json")
func SaveWeights(m WeightExporter, filename string) error {
	file, err := os.Create(filename)
	if err != nil {
		return scerr.Wrapf(err, "failed to create %s", filename)
	}
	if err := SaveWeightsToWriter(m, file); err != nil {
		_ = file.Close()
		return err
	}
	return file.Close()
}

// LoadWeights はJSONファイルから重みを読み込み、モデルに設定する
func LoadWeights(m WeightExporter, filename string) error {
	file, err := os.Open(filename)
	if err != nil {
		return scerr.Wrapf(err, "failed to open %s", filename)
	}
	defer file.Close()
	return LoadWeightsFromReader(m, file)
}

// SaveWeightsToWriter はモデルの重みをio.Writerに書き出す
func SaveWeightsToWriter(m WeightExporter, w io.Writer) error {
	weights, err := m.ExportWeights()
	if err != nil {
		return err
	}
	data, err := weights.ToJSON()
	if err != nil {
		return err
	}
	if _, err := w.Write(data); err != nil {
		return scerr.Wrap(err, "failed to write model weights")
	}
	return nil
}

// LoadWeightsFromReader はio.Readerから重みを読み込み、検証してからモデルに設定する
func LoadWeightsFromReader(m WeightExporter, r io.Reader) error {
	data, err := io.ReadAll(r)
	if err != nil {
		return scerr.Wrap(err, "failed to read model weights")
	}
	var weights ModelWeights
	if err := weights.FromJSON(data); err != nil {
		return err
	}
	if err := weights.Validate(); err != nil {
		return err
	}
	return m.ImportWeights(&weights)
}
