package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	_ "net/http/pprof"
	"os"
	"os/signal"
	"strconv"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/thelolagemann/dmgcore/internal/debugger"
	"github.com/thelolagemann/dmgcore/internal/gameboy"
	"github.com/thelolagemann/dmgcore/pkg/log"
	"github.com/thelolagemann/dmgcore/pkg/monitor"
	"github.com/thelolagemann/dmgcore/pkg/profile"
	"github.com/thelolagemann/dmgcore/pkg/utils"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := newRootCmd(os.Stderr).ExecuteContext(ctx); err != nil {
		os.Exit(1)
	}
}

type options struct {
	logLevel string
	trace    bool
	pprof    string

	logger log.Logger
}

// machine loads the ROM at path into a new GameBoy.
func (o *options) machine(path string, opts ...gameboy.Opt) (*gameboy.GameBoy, error) {
	rom, err := utils.LoadFile(path)
	if err != nil {
		return nil, fmt.Errorf("loading %s: %w", path, err)
	}

	opts = append(opts, gameboy.WithLogger(o.logger))
	if o.trace {
		opts = append(opts, gameboy.Debug())
	}
	gb := gameboy.NewGameBoy(opts...)
	if _, err := gb.LoadROM(rom); err != nil {
		return nil, fmt.Errorf("loading %s: %w", path, err)
	}
	return gb, nil
}

// summary logs the final state of gb, and err if the machine stopped
// on one.
func (o *options) summary(gb *gameboy.GameBoy, err error) error {
	o.logger.WithField("status", gb.Status()).Infof("steps=%d cycles=%d pc=0x%04X halted=%v",
		gb.Steps(), gb.Cycles(), gb.CPU.PC, gb.Halted())
	if err != nil && !errors.Is(err, context.Canceled) {
		o.logger.Errorf("%v", err)
		return err
	}
	return nil
}

func newRootCmd(logOutput io.Writer) *cobra.Command {
	o := &options{}

	rootCmd := &cobra.Command{
		Use:           "goboy",
		Short:         "Execute Game Boy ROM images on an LR35902 instruction core",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			level, err := log.ParseLevel(o.logLevel)
			if err != nil {
				return err
			}
			if o.trace {
				level = logrus.DebugLevel
			}
			o.logger = log.NewWithOutput(logOutput, level)

			if o.pprof != "" {
				go func() {
					if err := http.ListenAndServe(o.pprof, nil); err != nil {
						o.logger.Errorf("pprof: %v", err)
					}
				}()
			}
			return nil
		},
	}
	rootCmd.PersistentFlags().StringVar(&o.logLevel, "log-level", "info", "Log level (debug, info, warn, error)")
	rootCmd.PersistentFlags().BoolVar(&o.trace, "trace", false, "Log every executed instruction")
	rootCmd.PersistentFlags().StringVar(&o.pprof, "pprof", "", "Serve net/http/pprof on this address")

	rootCmd.AddCommand(newRunCmd(o), newStepCmd(o), newDebugCmd(o))
	return rootCmd
}

func newRunCmd(o *options) *cobra.Command {
	var (
		monitorAddr string
		compress    int
		profilePath string
		maxSteps    int
	)

	runCmd := &cobra.Command{
		Use:   "run <rom>",
		Short: "Run a ROM until it halts or fails",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var opts []gameboy.Opt

			var prof *profile.Profile
			if profilePath != "" {
				prof = profile.New()
				opts = append(opts, gameboy.WithTracer(prof))
			}

			if monitorAddr != "" {
				var hubOpts []monitor.HubOpt
				if compress > 0 {
					hubOpts = append(hubOpts, monitor.WithCompression(compress))
				}
				hub := monitor.NewHub(o.logger.WithField("component", "monitor"), hubOpts...)
				defer hub.Close()

				mux := http.NewServeMux()
				mux.Handle("/trace", hub)
				srv := &http.Server{Addr: monitorAddr, Handler: mux}
				go func() {
					if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
						o.logger.Errorf("monitor: %v", err)
					}
				}()
				defer srv.Close()

				o.logger.Infof("streaming trace on ws://%s/trace", monitorAddr)
				opts = append(opts, gameboy.WithTracer(hub))
			}

			gb, err := o.machine(args[0], opts...)
			if err != nil {
				o.logger.Errorf("%v", err)
				return err
			}

			_, err = gb.RunFor(cmd.Context(), maxSteps)
			if err := o.summary(gb, err); err != nil {
				return err
			}

			if prof != nil {
				return writeProfile(o, prof, profilePath)
			}
			return nil
		},
	}
	runCmd.Flags().StringVar(&monitorAddr, "monitor", "", "Stream executed instructions over websocket on this address")
	runCmd.Flags().IntVar(&compress, "monitor-compress", 0, "Brotli quality for monitor frames (0 = uncompressed)")
	runCmd.Flags().StringVar(&profilePath, "profile", "", "Write an opcode profile chart to this PNG file")
	runCmd.Flags().IntVar(&maxSteps, "max-steps", 0, "Stop after this many instructions (0 = no limit)")
	return runCmd
}

func writeProfile(o *options, prof *profile.Profile, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	if err := prof.WritePNG(f, 24); err != nil {
		o.logger.Errorf("writing profile: %v", err)
		return err
	}
	for _, e := range prof.Top(5) {
		o.logger.Debugf("0x%02X %-14s %8d executions %10d cycles", e.Opcode, e.Name, e.Count, e.Cycles)
	}
	o.logger.Infof("wrote opcode profile to %s", path)
	return nil
}

func newStepCmd(o *options) *cobra.Command {
	return &cobra.Command{
		Use:   "step <n> <rom>",
		Short: "Execute at most n instructions of a ROM",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			n, err := strconv.Atoi(args[0])
			if err != nil || n < 0 {
				return fmt.Errorf("invalid step count %q", args[0])
			}

			gb, err := o.machine(args[1])
			if err != nil {
				o.logger.Errorf("%v", err)
				return err
			}

			_, err = gb.StepN(n)
			return o.summary(gb, err)
		},
	}
}

func newDebugCmd(o *options) *cobra.Command {
	return &cobra.Command{
		Use:   "debug <rom>",
		Short: "Step through a ROM interactively",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			gb, err := o.machine(args[0])
			if err != nil {
				o.logger.Errorf("%v", err)
				return err
			}

			d := debugger.New(gb, o.logger.WithField("component", "debugger"))
			interactive := cmd.InOrStdin() == os.Stdin
			err = d.RunCommands(cmd.Context(), cmd.InOrStdin(), cmd.OutOrStdout(), interactive)
			return o.summary(gb, err)
		},
	}
}
