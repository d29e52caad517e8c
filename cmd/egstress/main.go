// Command egstress drives arrays and strings through a configurable workload
// and reports what happened. It is the profiling harness for the egbase
// containers: point --pprof at an address to watch it live, or --memprofile
// at a file to keep a heap profile.
package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	_ "net/http/pprof"
	"os"
	"os/signal"
	"runtime"
	"runtime/pprof"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/rawbytedev/egbase/internal/config"
	"github.com/rawbytedev/egbase/internal/debuglog"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		os.Exit(1)
	}
}

// newRootCmd builds the command. Settings resolve from flags first, then
// EGSTRESS_* environment variables, then the workload file.
func newRootCmd() *cobra.Command {
	v := viper.New()
	cmd := &cobra.Command{
		Use:          "egstress",
		Short:        "Stress egbase arrays and strings with a YAML workload",
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			w, err := loadWorkload(v)
			if err != nil {
				return err
			}
			return execute(cmd.Context(), w, v, cmd.ErrOrStderr())
		},
	}

	flags := cmd.Flags()
	flags.StringP("config", "c", "", "workload file (YAML)")
	flags.Int("rounds", 0, "override the workload's round count")
	flags.Int64("seed", 0, "override the workload's random seed")
	flags.String("snapshot", "", "write the final array as a snapshot frame to this file")
	flags.Bool("compress", false, "zstd compress the snapshot payload")
	flags.Bool("debug", false, "log spills, overflow rejections and per-round progress")
	flags.String("pprof", "", "serve net/http/pprof on this address, e.g. localhost:6060")
	flags.String("memprofile", "", "write a heap profile to this file when the run ends")

	_ = v.BindPFlags(flags)
	v.SetEnvPrefix("EGSTRESS")
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()
	return cmd
}

// loadWorkload reads the workload file and applies explicit overrides.
func loadWorkload(v *viper.Viper) (*config.Workload, error) {
	w, err := config.Load(v.GetString("config"))
	if err != nil {
		return nil, err
	}
	if v.IsSet("rounds") {
		w.Rounds = v.GetInt("rounds")
	}
	if v.IsSet("seed") {
		w.Seed = v.GetInt64("seed")
	}
	if v.IsSet("snapshot") {
		w.Snapshot.Path = v.GetString("snapshot")
	}
	if v.IsSet("compress") {
		w.Snapshot.Compress = v.GetBool("compress")
	}
	if v.IsSet("debug") {
		w.Debug = v.GetBool("debug")
	}
	if err := w.Validate(); err != nil {
		return nil, err
	}
	return w, nil
}

func execute(ctx context.Context, w *config.Workload, v *viper.Viper, stderr io.Writer) error {
	level := slog.LevelInfo
	if w.Debug {
		level = slog.LevelDebug
		debuglog.Enable(stderr)
		defer debuglog.Enable(nil)
	}
	log := slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: level})).With("workload", w.Name)

	if addr := v.GetString("pprof"); addr != "" {
		go func() {
			log.Info("pprof listening", "addr", addr)
			if err := http.ListenAndServe(addr, nil); err != nil {
				log.Error("pprof server stopped", "err", err)
			}
		}()
	}

	memprofile := v.GetString("memprofile")
	if memprofile != "" {
		runtime.MemProfileRate = 1
	}

	stats, err := run(ctx, w, log)
	if err != nil {
		log.Error("run failed", "err", err, "stats", stats)
		return err
	}
	log.Info("run complete", "stats", stats)

	if memprofile != "" {
		if err := writeHeapProfile(memprofile); err != nil {
			return fmt.Errorf("heap profile: %w", err)
		}
		log.Info("heap profile written", "path", memprofile)
	}
	return nil
}

func writeHeapProfile(path string) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	runtime.GC()
	return pprof.WriteHeapProfile(f)
}
