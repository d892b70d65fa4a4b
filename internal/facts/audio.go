package facts

import (
	"context"
	"os/exec"
	"runtime"
	"strings"

	"github.com/shirou/gopsutil/v3/process"
)

// ExecAudioProvider detects active real-time audio capture via the platform
// sound server (pactl/pw-cli on Linux, system_profiler on macOS) or a
// process heuristic on Windows.
type ExecAudioProvider struct{}

// NewAudioProvider returns the audio provider for this platform.
func NewAudioProvider() *ExecAudioProvider { return &ExecAudioProvider{} }

// CaptureActive reports whether something is recording audio right now.
func (a *ExecAudioProvider) CaptureActive(ctx context.Context) (bool, error) {
	switch runtime.GOOS {
	case "darwin":
		return darwinAudioActive(ctx), nil
	case "windows":
		return windowsAudioActive(ctx)
	default:
		return linuxAudioActive(ctx), nil
	}
}

func darwinAudioActive(ctx context.Context) bool {
	out, err := exec.CommandContext(ctx, "system_profiler", "SPAudioDataType").Output()
	if err != nil {
		return false
	}
	s := string(out)
	return strings.Contains(s, "Input Source:") &&
		(strings.Contains(s, "Built-in") || strings.Contains(s, "External"))
}

func linuxAudioActive(ctx context.Context) bool {
	// An active PulseAudio source output is a live capture stream.
	if out, err := exec.CommandContext(ctx, "pactl", "list", "source-outputs").Output(); err == nil {
		if strings.Contains(string(out), "Source Output #") {
			return true
		}
	}
	if out, err := exec.CommandContext(ctx, "pw-cli", "list-objects").Output(); err == nil {
		s := string(out)
		if strings.Contains(s, "Stream") && strings.Contains(s, "capture") {
			return true
		}
	}
	return false
}

// Windows has no cheap capture-session query from userland; flag known audio
// processing apps that are actively burning CPU.
var audioProcessingApps = []string{
	"cluely", "obs", "audacity", "zoom", "teams",
	"discord", "slack", "recorder", "capture",
}

func windowsAudioActive(ctx context.Context) (bool, error) {
	procs, err := process.ProcessesWithContext(ctx)
	if err != nil {
		return false, err
	}
	for _, p := range procs {
		name, err := p.Name()
		if err != nil {
			continue
		}
		lower := strings.ToLower(name)
		matched := false
		for _, app := range audioProcessingApps {
			if strings.Contains(lower, app) {
				matched = true
				break
			}
		}
		if !matched {
			continue
		}
		if cpu, err := p.CPUPercent(); err == nil && cpu > 5.0 {
			return true, nil
		}
	}
	return false, nil
}
