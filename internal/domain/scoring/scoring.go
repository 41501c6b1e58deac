// Package scoring counts per-member hits against a round's official result.
package scoring

import (
	"github.com/okian/maulas/internal/domain/model"
)

// Results looks up official results by round.
type Results interface {
	Result(round int) (model.OfficialResult, bool)
}

// Predictions looks up a member's canonical prediction for a round.
type Predictions interface {
	Prediction(round, memberID int) (model.Prediction, bool)
}

// Engine scores members for a round under a fixed Policy.
type Engine struct {
	results     Results
	predictions Predictions
	policy      Policy
}

// NewEngine returns an engine. The policy is required; callers resolve it
// from configuration with ParseMatch.
func NewEngine(results Results, predictions Predictions, policy Policy) *Engine {
	return &Engine{results: results, predictions: predictions, policy: policy}
}

// Policy returns the engine's policy.
func (e *Engine) Policy() Policy { return e.policy }

// Score returns the member's hit count for round. A missing official result
// or missing prediction scores 0.
func (e *Engine) Score(round, memberID int) int {
	official, ok := e.results.Result(round)
	if !ok {
		return 0
	}
	pred, ok := e.predictions.Prediction(round, memberID)
	if !ok || pred.Selection.Empty() {
		return 0
	}
	return e.policy.Hits(official, pred.Selection)
}
