package detect

import (
	"github.com/GekkoQuest/fairview/internal/config"
	"github.com/GekkoQuest/fairview/internal/models"
)

// AggregateResult is the outcome of combining all module results for one
// scan.
type AggregateResult struct {
	Overall            float64
	ThresholdExceeded  bool
	NoModulesEvaluated bool
}

// Aggregate computes the normalized weighted risk over the evaluated
// modules. Normalizing by the effective weight sum guards against
// configurations whose weights do not sum to 1.0 and against runs where some
// modules are disabled. Failed modules stay in the effective set with risk 0
// so a failure never shifts weight onto the remaining modules unseen; the
// failure itself is flagged on the scan result. The VM verdict participates
// with its confidence as the module score.
func Aggregate(results []models.ModuleResult, vm *models.VMVerdict, weights config.WeightsConfig, riskThreshold float64) AggregateResult {
	var weightSum, weighted float64

	for _, r := range results {
		w := moduleWeight(r.Module, weights)
		weightSum += w
		if !r.Failed {
			weighted += w * clamp01(r.Risk)
		}
	}
	if vm != nil {
		weightSum += weights.VM
		weighted += weights.VM * clamp01(vm.Confidence)
	}

	if weightSum == 0 {
		return AggregateResult{NoModulesEvaluated: true}
	}

	overall := weighted / weightSum
	return AggregateResult{
		Overall:           overall,
		ThresholdExceeded: overall >= riskThreshold,
	}
}

func moduleWeight(module string, weights config.WeightsConfig) float64 {
	switch module {
	case models.ModuleProcess:
		return weights.Process
	case models.ModuleHardware:
		return weights.Hardware
	case models.ModuleAudio:
		return weights.Audio
	case models.ModuleOverlay:
		return weights.Overlay
	case models.ModuleVM:
		return weights.VM
	default:
		return 0
	}
}
