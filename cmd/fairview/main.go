// Command fairview monitors an interview host for cheating signals: it
// samples process, display, audio and hypervisor state on a schedule and
// reports a calibrated risk score per scan.
package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/urfave/cli/v2"

	"github.com/GekkoQuest/fairview/internal/config"
	"github.com/GekkoQuest/fairview/internal/facts"
	"github.com/GekkoQuest/fairview/internal/output"
	"github.com/GekkoQuest/fairview/internal/progress"
	"github.com/GekkoQuest/fairview/internal/scan"
)

func main() {
	// Optional .env for FAIRVIEW_* overrides; absence is fine.
	_ = godotenv.Load()

	app := &cli.App{
		Name:  "fairview",
		Usage: "interview integrity scanner",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Usage:   "path to YAML configuration",
				EnvVars: []string{"FAIRVIEW_CONFIG"},
			},
		},
		Commands: []*cli.Command{
			scanCommand(),
			onceCommand(),
			initConfigCommand(),
		},
	}

	if err := app.Run(os.Args); err != nil {
		log.Fatalf("[ERROR] %v", err)
	}
}

func loadConfig(c *cli.Context) (*config.Config, error) {
	if path := c.String("config"); path != "" {
		return config.Load(path)
	}
	return config.Default(), nil
}

// buildSink assembles the configured report sinks. An unreachable dashboard
// only loses the stream, it never blocks scanning.
func buildSink(cfg *config.Config) (output.Writer, error) {
	var writers []output.Writer
	if cfg.Report.Console {
		writers = append(writers, output.NewConsoleWriter())
	}
	if cfg.Report.JSONPath != "" {
		w, err := output.NewJSONWriter(cfg.Report.JSONPath)
		if err != nil {
			return nil, fmt.Errorf("json sink: %w", err)
		}
		writers = append(writers, w)
	}
	if cfg.Report.SQLitePath != "" {
		w, err := output.NewSQLiteWriter(cfg.Report.SQLitePath)
		if err != nil {
			return nil, fmt.Errorf("sqlite sink: %w", err)
		}
		writers = append(writers, w)
	}
	if cfg.Report.WebsocketURL != "" {
		w, err := output.NewWebsocketWriter(cfg.Report.WebsocketURL)
		if err != nil {
			log.Printf("[WARN] Dashboard unreachable, continuing without stream: %v", err)
		} else {
			writers = append(writers, w)
		}
	}
	return output.NewMultiWriter(writers...), nil
}

func scanCommand() *cli.Command {
	return &cli.Command{
		Name:  "scan",
		Usage: "run the continuous scan loop",
		Action: func(c *cli.Context) error {
			cfg, err := loadConfig(c)
			if err != nil {
				return err
			}

			ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			session := scan.NewSession(cfg, facts.NewProviders())
			if err := session.CollectBaseline(ctx, true); err != nil {
				if errors.Is(err, context.Canceled) {
					return nil
				}
				return err
			}

			sink, err := buildSink(cfg)
			if err != nil {
				return err
			}
			defer sink.Close()

			var tracker *progress.Tracker
			if !cfg.Report.Console {
				tracker = progress.NewTracker()
				defer tracker.Finish()
			}

			log.Printf("[INFO] Scanning every %ds, risk threshold %.2f", cfg.Scan.IntervalSeconds, cfg.Scan.RiskThreshold)
			for result := range session.Run(ctx) {
				if err := sink.Write(result); err != nil {
					log.Printf("[WARN] Report write failed: %v", err)
				}
				if tracker != nil {
					tracker.Update(result)
				}
			}
			return session.Err()
		},
	}
}

func onceCommand() *cli.Command {
	return &cli.Command{
		Name:  "once",
		Usage: "run a single scan; exit code 1 when the risk threshold is exceeded",
		Action: func(c *cli.Context) error {
			cfg, err := loadConfig(c)
			if err != nil {
				return err
			}

			ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			session := scan.NewSession(cfg, facts.NewProviders())
			if err := session.CollectBaseline(ctx, true); err != nil {
				return err
			}

			sink, err := buildSink(cfg)
			if err != nil {
				return err
			}
			defer sink.Close()

			result := session.ScanOnce(ctx)
			if err := sink.Write(result); err != nil {
				return err
			}
			if result.ThresholdExceeded {
				return cli.Exit("risk threshold exceeded", 1)
			}
			return nil
		},
	}
}

func initConfigCommand() *cli.Command {
	return &cli.Command{
		Name:  "init-config",
		Usage: "write the default configuration file",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "output", Aliases: []string{"o"}, Value: "fairview.yaml"},
			&cli.BoolFlag{Name: "force", Usage: "overwrite an existing file"},
		},
		Action: func(c *cli.Context) error {
			path := c.String("output")
			if _, err := os.Stat(path); err == nil && !c.Bool("force") {
				return fmt.Errorf("%s already exists (use --force to overwrite)", path)
			}
			if err := config.Default().Save(path); err != nil {
				return err
			}
			log.Printf("[INFO] Wrote default configuration to %s", path)
			return nil
		},
	}
}
