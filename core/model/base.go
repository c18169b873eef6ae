package model

import (
	"github.com/google/uuid"

	"github.com/YuminosukeSato/adiscriminator/pkg/log"
)

// BaseEstimator は全てのモデルが共有する識別情報とライフサイクルを保持する
type BaseEstimator struct {
	// Name はモデルの種類（例: "LogisticRegression"）
	Name string
	// ID はインスタンスごとのUUID
	ID string

	state *StateManager
}

// NewBaseEstimator は新しいIDを割り当てたBaseEstimatorを作成する
func NewBaseEstimator(name string) BaseEstimator {
	return BaseEstimator{
		Name:  name,
		ID:    uuid.NewString(),
		state: NewStateManager(),
	}
}

// State はライフサイクル管理を返す
func (e *BaseEstimator) State() *StateManager {
	if e.state == nil {
		e.state = NewStateManager()
	}
	return e.state
}

// IsFitted はモデルが学習済みかどうかを返す
func (e *BaseEstimator) IsFitted() bool {
	return e.State().IsFitted()
}

// Logger はモデル名とIDを付与したロガーを返す
func (e *BaseEstimator) Logger(base log.Logger) log.Logger {
	if base == nil {
		base = log.GetLogger()
	}
	return base.With(log.ModelNameKey, e.Name, log.EstimatorIDKey, e.ID)
}
