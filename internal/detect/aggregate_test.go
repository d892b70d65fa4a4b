package detect

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/GekkoQuest/fairview/internal/config"
	"github.com/GekkoQuest/fairview/internal/models"
)

func TestAggregateWeightedAverage(t *testing.T) {
	weights := config.WeightsConfig{Process: 0.4, Hardware: 0.2, Audio: 0.15, Overlay: 0.25}
	results := []models.ModuleResult{
		{Module: models.ModuleProcess, Risk: 0.6},
		{Module: models.ModuleHardware, Risk: 0},
		{Module: models.ModuleAudio, Risk: 0},
		{Module: models.ModuleOverlay, Risk: 0},
	}

	agg := Aggregate(results, nil, weights, 0.5)

	assert.InDelta(t, 0.24, agg.Overall, 1e-9)
	assert.False(t, agg.ThresholdExceeded)
	assert.False(t, agg.NoModulesEvaluated)
}

func TestAggregateNormalizesWeightSum(t *testing.T) {
	// A single enabled module always normalizes to its own risk, no
	// matter what its configured weight is.
	weights := config.WeightsConfig{Process: 0.4}
	results := []models.ModuleResult{{Module: models.ModuleProcess, Risk: 0.5}}

	agg := Aggregate(results, nil, weights, 0.5)

	assert.InDelta(t, 0.5, agg.Overall, 1e-9)
	assert.True(t, agg.ThresholdExceeded)
}

func TestAggregateNoModulesEvaluated(t *testing.T) {
	agg := Aggregate(nil, nil, config.Default().Weights, 0.5)

	assert.Zero(t, agg.Overall)
	assert.False(t, agg.ThresholdExceeded)
	assert.True(t, agg.NoModulesEvaluated)
}

func TestAggregateFailedModuleScoresZeroButKeepsWeight(t *testing.T) {
	weights := config.WeightsConfig{Process: 0.5, Hardware: 0.5}
	results := []models.ModuleResult{
		{Module: models.ModuleProcess, Risk: 0.9, Failed: true, FailureReason: "permission denied"},
		{Module: models.ModuleHardware, Risk: 1.0},
	}

	agg := Aggregate(results, nil, weights, 0.5)

	assert.InDelta(t, 0.5, agg.Overall, 1e-9)
}

func TestAggregateVMConfidenceActsAsModuleScore(t *testing.T) {
	weights := config.WeightsConfig{Process: 0.75, VM: 0.25}
	results := []models.ModuleResult{{Module: models.ModuleProcess, Risk: 0}}
	vm := &models.VMVerdict{IsVM: true, Confidence: 0.8}

	agg := Aggregate(results, vm, weights, 0.5)

	assert.InDelta(t, 0.2, agg.Overall, 1e-9)
}

func TestAggregateVMOnly(t *testing.T) {
	vm := &models.VMVerdict{Confidence: 0.8}

	agg := Aggregate(nil, vm, config.WeightsConfig{VM: 0.25}, 0.5)

	assert.InDelta(t, 0.8, agg.Overall, 1e-9)
	assert.True(t, agg.ThresholdExceeded)
}

func TestAggregateDeterministic(t *testing.T) {
	weights := config.Default().Weights
	results := []models.ModuleResult{
		{Module: models.ModuleProcess, Risk: 0.3},
		{Module: models.ModuleOverlay, Risk: 0.75},
	}
	vm := &models.VMVerdict{Confidence: 0.1}

	first := Aggregate(results, vm, weights, 0.5)
	second := Aggregate(results, vm, weights, 0.5)

	assert.Equal(t, first, second)
}
