// Package scan drives the periodic detection loop: one session owns the
// baseline snapshot and the scan counter, invokes the enabled modules with
// per-module failure isolation and hands completed scan results to the
// caller.
package scan

import (
	"context"
	"fmt"
	"log"
	"os"
	"sync"
	"time"

	"github.com/codeGROOVE-dev/retry"
	"github.com/schollz/progressbar/v3"

	"github.com/GekkoQuest/fairview/internal/config"
	"github.com/GekkoQuest/fairview/internal/detect"
	"github.com/GekkoQuest/fairview/internal/facts"
	"github.com/GekkoQuest/fairview/internal/models"
)

const (
	factRetries            = 3
	factRetryDelay         = 200 * time.Millisecond
	factRetryMaxDelay      = 2 * time.Second
	baselineSampleInterval = time.Second
)

// Session runs scans against one set of fact providers. Sessions are
// independent; multiple can coexist in-process.
type Session struct {
	cfg       *config.Config
	providers facts.Providers
	hostname  string

	// Written during the baseline prelude, read-only afterwards.
	baseline *detect.Baseline
	lastScan int64

	mu  sync.Mutex
	err error
}

// NewSession creates a session. The configuration must already be validated
// and is treated as read-only.
func NewSession(cfg *config.Config, providers facts.Providers) *Session {
	hostname, err := os.Hostname()
	if err != nil {
		hostname = "unknown"
	}
	if cfg.Monitoring.EnableOverlay && !providers.Overlay.Supported() {
		log.Print("[INFO] Overlay enumeration not supported on this platform; overlay module reports zero risk")
	}
	return &Session{cfg: cfg, providers: providers, hostname: hostname}
}

// Err returns the terminal error after the result channel closes, or nil on
// a clean shutdown.
func (s *Session) Err() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.err
}

func (s *Session) setErr(err error) {
	s.mu.Lock()
	s.err = err
	s.mu.Unlock()
}

// Baseline returns the captured snapshot, or nil when baseline collection is
// disabled or has not run.
func (s *Session) Baseline() *detect.Baseline { return s.baseline }

// CollectBaseline runs the one-time prelude: it blocks for the configured
// duration, sampling process and display facts once per second, and freezes
// the snapshot. It is a no-op when baseline collection is disabled.
func (s *Session) CollectBaseline(ctx context.Context, showProgress bool) error {
	if !s.cfg.Monitoring.CollectBaseline {
		log.Print("[INFO] Baseline collection disabled; novelty will be reported as unknown")
		return nil
	}
	if s.baseline != nil {
		return nil
	}

	seconds := s.cfg.Monitoring.BaselineDurationSeconds
	var bar *progressbar.ProgressBar
	if showProgress {
		bar = progressbar.Default(int64(seconds), "collecting baseline")
	}

	b := detect.NewBaseline()
	for i := 0; i < seconds; i++ {
		s.sampleBaseline(ctx, b)
		if bar != nil {
			_ = bar.Add(1)
		}
		if i == seconds-1 {
			break
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(baselineSampleInterval):
		}
	}
	if bar != nil {
		_ = bar.Finish()
	}

	s.baseline = b
	log.Printf("[INFO] Baseline captured: %d process identities, %d displays over %d samples",
		b.ProcessCount(), b.DisplayCount, b.Samples)
	return nil
}

// sampleBaseline merges one observation per fact domain. A domain whose
// refresh fails is left out of the snapshot: merging its zero value would
// freeze facts that were never observed and every later scan would diff
// against them.
func (s *Session) sampleBaseline(ctx context.Context, b *detect.Baseline) {
	var procs []facts.Process
	perr := retryFacts(func() error {
		var err error
		procs, err = s.providers.Process.Processes(ctx)
		return err
	})

	var displays facts.DisplayFacts
	derr := retryFacts(func() error {
		var err error
		displays, err = s.providers.Display.Displays(ctx)
		return err
	})

	if perr == nil && derr == nil {
		b.AddSample(procs, displays)
		return
	}
	if perr != nil {
		log.Printf("[WARN] Baseline process sample failed: %v", perr)
	} else {
		b.AddProcesses(procs)
	}
	if derr != nil {
		log.Printf("[WARN] Baseline display sample failed: %v", derr)
	} else {
		b.AddDisplays(displays)
	}
}

// Run starts the loop: baseline prelude, then one scan per interval. The
// returned channel carries every completed scan result and closes when the
// context is cancelled or a module failure occurs with abort mode
// configured; check Err afterwards. An in-flight scan always finishes before
// shutdown. If a scan overruns the interval, the missed ticks are skipped
// and logged, never queued.
func (s *Session) Run(ctx context.Context) <-chan models.ScanResult {
	out := make(chan models.ScanResult)
	go func() {
		defer close(out)

		if err := s.CollectBaseline(ctx, false); err != nil {
			s.setErr(err)
			return
		}

		ticker := time.NewTicker(s.cfg.Interval())
		defer ticker.Stop()

		if !s.runTick(ctx, out) {
			return
		}
		for {
			select {
			case <-ctx.Done():
				log.Print("[INFO] Shutdown requested, scan loop exiting")
				return
			case <-ticker.C:
				if !s.runTick(ctx, out) {
					return
				}
				s.drainMissedTicks(ticker)
			}
		}
	}()
	return out
}

func (s *Session) runTick(ctx context.Context, out chan<- models.ScanResult) bool {
	result := s.ScanOnce(ctx)
	select {
	case out <- result:
	case <-ctx.Done():
		return false
	}
	if len(result.Failures) > 0 && !s.cfg.Monitoring.ContinueOnModuleFailure {
		err := fmt.Errorf("module %q failed with abort mode configured: %s",
			result.Failures[0].Module, result.Failures[0].Cause)
		log.Printf("[ERROR] %v", err)
		s.setErr(err)
		return false
	}
	return true
}

func (s *Session) drainMissedTicks(ticker *time.Ticker) {
	skipped := 0
	for {
		select {
		case <-ticker.C:
			skipped++
		default:
			if skipped > 0 {
				log.Printf("[WARN] Scan %d overran the interval; skipped %d tick(s)", s.lastScan, skipped)
			}
			return
		}
	}
}

// ScanOnce performs a single scan: enabled modules and the VM scorer run
// concurrently over independent fact providers, failures are isolated per
// module, and the aggregator produces the overall score. Scan numbers are
// monotonic starting at 1.
func (s *Session) ScanOnce(ctx context.Context) models.ScanResult {
	s.lastScan++
	result := models.ScanResult{
		ScanNumber: s.lastScan,
		Timestamp:  time.Now(),
		Hostname:   s.hostname,
	}

	type moduleRun struct {
		name string
		run  func(context.Context) (models.ModuleResult, error)
	}
	var runs []moduleRun
	if s.cfg.Monitoring.EnableProcess {
		runs = append(runs, moduleRun{models.ModuleProcess, s.evaluateProcess})
	}
	if s.cfg.Monitoring.EnableHardware {
		runs = append(runs, moduleRun{models.ModuleHardware, s.evaluateHardware})
	}
	if s.cfg.Monitoring.EnableAudio {
		runs = append(runs, moduleRun{models.ModuleAudio, s.evaluateAudio})
	}
	if s.cfg.Monitoring.EnableOverlay {
		runs = append(runs, moduleRun{models.ModuleOverlay, s.evaluateOverlay})
	}

	moduleResults := make([]models.ModuleResult, len(runs))
	var wg sync.WaitGroup
	for i, r := range runs {
		wg.Add(1)
		go func(i int, r moduleRun) {
			defer wg.Done()
			res, err := runIsolated(ctx, r.run)
			if err != nil {
				res = models.ModuleResult{Module: r.name, Failed: true, FailureReason: err.Error()}
			}
			res.Module = r.name
			moduleResults[i] = res
		}(i, r)
	}

	var vm *models.VMVerdict
	if s.cfg.Monitoring.EnableVMDetection {
		wg.Add(1)
		go func() {
			defer wg.Done()
			verdict := s.scoreVM(ctx)
			vm = &verdict
		}()
	}
	wg.Wait()

	for _, r := range moduleResults {
		if r.Failed {
			log.Printf("[WARN] Module %s failed: %s", r.Module, r.FailureReason)
			result.Failures = append(result.Failures, models.ModuleFailure{
				Module: r.Module,
				Cause:  r.FailureReason,
			})
		}
	}
	result.Modules = moduleResults
	result.VM = vm

	agg := detect.Aggregate(moduleResults, vm, s.cfg.Weights, s.cfg.Scan.RiskThreshold)
	result.OverallRisk = agg.Overall
	result.ThresholdExceeded = agg.ThresholdExceeded
	result.NoModulesEvaluated = agg.NoModulesEvaluated
	result.Severity = models.SeverityFromRisk(agg.Overall)
	return result
}

// runIsolated converts panics from a module evaluation into module failures
// so one misbehaving module cannot abort the scan.
func runIsolated(ctx context.Context, run func(context.Context) (models.ModuleResult, error)) (res models.ModuleResult, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("panic during evaluation: %v", r)
		}
	}()
	return run(ctx)
}

// retryFacts retries a transient fact refresh with bounded backoff before
// the error becomes a module failure.
func retryFacts(fn func() error) error {
	return retry.Do(fn,
		retry.Attempts(factRetries),
		retry.Delay(factRetryDelay),
		retry.MaxDelay(factRetryMaxDelay))
}

func (s *Session) evaluateProcess(ctx context.Context) (models.ModuleResult, error) {
	var procs []facts.Process
	err := retryFacts(func() error {
		var err error
		procs, err = s.providers.Process.Processes(ctx)
		return err
	})
	if err != nil {
		return models.ModuleResult{}, fmt.Errorf("process facts: %w", err)
	}
	return detect.EvaluateProcess(procs, s.baseline, s.cfg), nil
}

func (s *Session) evaluateHardware(ctx context.Context) (models.ModuleResult, error) {
	var displays facts.DisplayFacts
	err := retryFacts(func() error {
		var err error
		displays, err = s.providers.Display.Displays(ctx)
		return err
	})
	if err != nil {
		return models.ModuleResult{}, fmt.Errorf("display facts: %w", err)
	}
	return detect.EvaluateHardware(displays, s.baseline), nil
}

func (s *Session) evaluateAudio(ctx context.Context) (models.ModuleResult, error) {
	var active bool
	err := retryFacts(func() error {
		var err error
		active, err = s.providers.Audio.CaptureActive(ctx)
		return err
	})
	if err != nil {
		return models.ModuleResult{}, fmt.Errorf("audio facts: %w", err)
	}
	return detect.EvaluateAudio(active, s.cfg), nil
}

func (s *Session) evaluateOverlay(ctx context.Context) (models.ModuleResult, error) {
	var windows []facts.OverlayWindow
	err := retryFacts(func() error {
		var err error
		windows, err = s.providers.Overlay.Windows(ctx)
		return err
	})
	if err != nil {
		return models.ModuleResult{}, fmt.Errorf("overlay facts: %w", err)
	}
	return detect.EvaluateOverlay(windows), nil
}

func (s *Session) scoreVM(ctx context.Context) models.VMVerdict {
	cpu := s.providers.System.CPUID()
	ident, err := s.providers.System.Identity(ctx)
	if err != nil {
		// Partial identity still scores; CPUID evidence stands alone.
		log.Printf("[WARN] Identity facts incomplete: %v", err)
	}
	return detect.ScoreVM(cpu, ident, s.cfg.Thresholds.VM)
}
