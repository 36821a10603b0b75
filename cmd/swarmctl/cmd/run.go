package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/picogrid/swarmcore/internal/agent"
	swarmconfig "github.com/picogrid/swarmcore/internal/config"
	"github.com/picogrid/swarmcore/internal/joystick"
	"github.com/picogrid/swarmcore/internal/runtime"
	"github.com/picogrid/swarmcore/internal/swarm"
	"github.com/picogrid/swarmcore/internal/telemetry"
	"github.com/picogrid/swarmcore/internal/trackersrc"
	"github.com/picogrid/swarmcore/internal/vehicle"
	"github.com/picogrid/swarmcore/pkg/logger"
)

var (
	replayFile string
	csvOut     string
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run the flight supervisor against a tracker feed",
	RunE:  runSwarm,
}

func init() {
	runCmd.Flags().StringVar(&replayFile, "replay", "", "replay a recorded tracker CSV instead of dialing a live tracker")
	runCmd.Flags().StringVar(&csvOut, "telemetry-out", "", "write per-tick telemetry to this CSV file")
}

func runSwarm(_ *cobra.Command, _ []string) error {
	if cfgFile == "" {
		return fmt.Errorf("--config is required")
	}
	cfg, err := swarmconfig.LoadConfig(cfgFile)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	sw := swarm.New()
	links := make(map[string]vehicle.Link, len(cfg.Agents))

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	for _, ac := range cfg.BuildAgentConfigs() {
		a := agent.New(ac)
		sw.Add(a, ac.ManualFlight)

		link, err := vehicle.DialWSLink(ctx, ac.LinkAddress)
		if err != nil {
			return fmt.Errorf("dial vehicle link for %s: %w", ac.Name, err)
		}
		if err := link.SetupParameters(ctx); err != nil {
			return fmt.Errorf("setup parameters for %s: %w", ac.Name, err)
		}
		links[ac.Name] = link
	}

	sup := swarm.NewSupervisor(sw, cfg.Arena, links)
	if csvOut != "" {
		f, err := os.Create(csvOut)
		if err != nil {
			return fmt.Errorf("create telemetry file: %w", err)
		}
		defer f.Close()
		sup.Telemetry, err = telemetry.NewCSVWriter(f)
		if err != nil {
			return fmt.Errorf("init telemetry writer: %w", err)
		}
	}

	var frameSource trackersrc.Source
	if replayFile != "" {
		f, err := os.Open(replayFile)
		if err != nil {
			return fmt.Errorf("open replay file: %w", err)
		}
		defer f.Close()
		frameSource, err = trackersrc.NewReplaySource(f, cfg.TickPeriod)
		if err != nil {
			return fmt.Errorf("load replay file: %w", err)
		}
	} else {
		frameSource, err = trackersrc.DialWSSource(ctx, cfg.TrackerAddr)
		if err != nil {
			return fmt.Errorf("dial tracker: %w", err)
		}
	}
	defer frameSource.Close()

	frames, err := frameSource.Frames(ctx)
	if err != nil {
		return fmt.Errorf("start tracker stream: %w", err)
	}

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-sigCh
		logger.Warn("received interrupt, stopping swarm")
		cancel()
	}()

	profile := joystick.ProfileForDevice(cfg.DeviceName)
	joy := joystick.NewController(sw, profile)

	logger.LogSection("starting swarm supervisor")
	started := time.Now()
	err = runtime.Run(ctx, sup, runtime.Options{
		Frames:   frames,
		Joystick: joy,
		Device:   nil, // a real joystick device is wired in by the deployment, not this core
		Links:    links,
	})
	logger.LogKeyValue("run duration", time.Since(started).String())
	return err
}
