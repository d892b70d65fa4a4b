package detect

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/GekkoQuest/fairview/internal/config"
	"github.com/GekkoQuest/fairview/internal/facts"
)

func processConfig() *config.Config {
	cfg := config.Default()
	cfg.Whitelist.Processes = nil
	cfg.Whitelist.Directories = nil
	return cfg
}

func TestEvaluateProcessAllSignalsClamped(t *testing.T) {
	procs := []facts.Process{{
		PID:           101,
		Name:          "interview-helper",
		Path:          "/tmp/interview-helper",
		ScreenCapture: true,
		AudioCapture:  true,
		Accessibility: true,
	}}

	result := EvaluateProcess(procs, nil, processConfig())

	assert.InDelta(t, 1.0, result.Risk, 1e-9, "0.3+0.3+0.2+0.4 clamps to 1")
	require.Len(t, result.Findings, 1)
	assert.Equal(t, "interview-helper", result.Findings[0].Subject)
	assert.Len(t, result.Findings[0].Reasons, 4)
	assert.Nil(t, result.Findings[0].NewSinceBaseline, "no baseline, novelty unknown")
}

func TestEvaluateProcessNoEvidence(t *testing.T) {
	procs := []facts.Process{{PID: 1, Name: "initd", Path: "/sbin/initd"}}

	result := EvaluateProcess(procs, nil, processConfig())

	assert.Zero(t, result.Risk)
	assert.Empty(t, result.Findings)
	assert.False(t, result.Failed)
}

func TestEvaluateProcessWhitelistByName(t *testing.T) {
	cfg := processConfig()
	cfg.Whitelist.Processes = []string{"zoom"}
	procs := []facts.Process{{
		PID:           7,
		Name:          "zoom.us",
		Path:          "/opt/zoom/zoom.us",
		ScreenCapture: true,
		AudioCapture:  true,
		Accessibility: true,
	}}

	result := EvaluateProcess(procs, nil, cfg)

	assert.Zero(t, result.Risk, "whitelisted processes are excluded entirely")
	assert.Empty(t, result.Findings)
}

func TestEvaluateProcessWhitelistByDirectory(t *testing.T) {
	cfg := processConfig()
	cfg.Whitelist.Directories = []string{"/usr/bin"}
	procs := []facts.Process{{
		PID:           8,
		Name:          "gptool",
		Path:          "/usr/bin/gptool",
		ScreenCapture: true,
	}}

	result := EvaluateProcess(procs, nil, cfg)

	assert.Zero(t, result.Risk)
	assert.Empty(t, result.Findings)
}

func TestEvaluateProcessWhitelistBeatsBaseline(t *testing.T) {
	// Whitelisted processes stay excluded even when absent from baseline.
	cfg := processConfig()
	cfg.Whitelist.Processes = []string{"obs"}
	baseline := NewBaseline()
	baseline.AddSample([]facts.Process{{Name: "initd", Path: "/sbin/initd"}}, facts.DisplayFacts{})

	procs := []facts.Process{{
		PID: 9, Name: "obs", Path: "/opt/obs/obs",
		ScreenCapture: true, AudioCapture: true,
	}}
	result := EvaluateProcess(procs, baseline, cfg)

	assert.Empty(t, result.Findings)
}

func TestEvaluateProcessBaselineNovelty(t *testing.T) {
	cfg := processConfig()
	baseline := NewBaseline()
	baseline.AddSample([]facts.Process{
		{Name: "editor", Path: "/usr/local/bin/editor"},
	}, facts.DisplayFacts{})

	procs := []facts.Process{
		{PID: 10, Name: "editor", Path: "/usr/local/bin/editor"},
		{PID: 11, Name: "notetaker", Path: "/tmp/notetaker", ScreenCapture: true, AudioCapture: true},
	}
	result := EvaluateProcess(procs, baseline, cfg)

	// 0.3 screen + 0.3 audio + 0.3 new since baseline.
	assert.InDelta(t, 0.9, result.Risk, 1e-9)
	require.Len(t, result.Findings, 1)
	finding := result.Findings[0]
	assert.Equal(t, "notetaker", finding.Subject)
	require.NotNil(t, finding.NewSinceBaseline)
	assert.True(t, *finding.NewSinceBaseline)
}

func TestEvaluateProcessNoveltyUnknownWithoutProcessObservations(t *testing.T) {
	// Every process refresh failed during the prelude; only displays were
	// merged. Novelty is unknown, not "everything is new".
	cfg := processConfig()
	baseline := NewBaseline()
	baseline.AddDisplays(facts.DisplayFacts{Count: 1, Displays: []facts.Display{{ID: "eDP-1"}}})

	procs := []facts.Process{{
		PID: 20, Name: "notetaker", Path: "/tmp/notetaker",
		ScreenCapture: true, AudioCapture: true,
	}}
	result := EvaluateProcess(procs, baseline, cfg)

	assert.InDelta(t, 0.6, result.Risk, 1e-9, "no baseline contribution without observations")
	require.Len(t, result.Findings, 1)
	assert.Nil(t, result.Findings[0].NewSinceBaseline)
}

func TestEvaluateProcessIdentityIsNamePlusPath(t *testing.T) {
	cfg := processConfig()
	baseline := NewBaseline()
	baseline.AddSample([]facts.Process{
		{Name: "runner", Path: "/usr/local/bin/runner"},
	}, facts.DisplayFacts{})

	// Same name, different path: a different identity, so new.
	procs := []facts.Process{{
		PID: 12, Name: "runner", Path: "/tmp/runner",
		ScreenCapture: true, AudioCapture: true,
	}}
	result := EvaluateProcess(procs, baseline, cfg)

	require.Len(t, result.Findings, 1)
	require.NotNil(t, result.Findings[0].NewSinceBaseline)
	assert.True(t, *result.Findings[0].NewSinceBaseline)
}

func TestEvaluateProcessThresholdGatesFindings(t *testing.T) {
	cfg := processConfig()
	cfg.Thresholds.Process = 0.6
	procs := []facts.Process{
		{PID: 13, Name: "widget", Path: "/opt/widget", ScreenCapture: true},          // 0.3
		{PID: 14, Name: "llm-notes", Path: "/opt/llm-notes", ScreenCapture: true},    // 0.7
		{PID: 15, Name: "screencap", Path: "/opt/screencap", Accessibility: true},    // 0.2
	}

	result := EvaluateProcess(procs, nil, cfg)

	assert.InDelta(t, 0.7, result.Risk, 1e-9, "worst offender drives module risk")
	require.Len(t, result.Findings, 1)
	assert.Equal(t, "llm-notes", result.Findings[0].Subject)
}

func TestSuspiciousName(t *testing.T) {
	assert.True(t, SuspiciousName("ChatGPT Desktop"))
	assert.True(t, SuspiciousName("interview-ai"))
	assert.True(t, SuspiciousName("Cluely"))
	assert.False(t, SuspiciousName("terminal"))
}
