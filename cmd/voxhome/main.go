package main

import (
	"context"
	"errors"
	"fmt"
	"github.com/spf13/cobra"
	"github.com/thluiz/vox/internal/build"
	"github.com/thluiz/vox/internal/domain/config"
	domainerr "github.com/thluiz/vox/internal/domain/errors"
	"github.com/thluiz/vox/internal/history"
	"github.com/thluiz/vox/internal/logging"
	"github.com/thluiz/vox/internal/schedule"
	"github.com/thluiz/vox/internal/watch"
	"go.uber.org/zap"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"
)

var (
	configPath string
	verbose    bool

	cfg    config.Config
	logger *zap.Logger
)

var rootCmd = &cobra.Command{
	Use:   "voxhome",
	Short: "Regenerate the recent publications and tags of the vox home page",
	Long: `voxhome scans the year folders of the content root, picks the most recent
published articles and the most used tags, and rewrites the home index
document in place. Running it again with no content changes leaves the
document untouched.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error
		// an explicit --config must exist; the default file is optional
		if cmd.Flags().Changed("config") {
			cfg, err = config.Load(configPath)
		} else {
			cfg, err = config.LoadOrDefault(configPath)
		}
		if err != nil {
			return fmt.Errorf("config %s: %w", configPath, err)
		}
		if verbose {
			cfg.Log.Level = "debug"
		}
		logger, err = logging.New(cfg.Log)
		if err != nil {
			return err
		}
		logger = logger.Named("update-vox-home")
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if logger != nil {
			_ = logger.Sync()
		}
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		b, closeFn, err := newBuilder()
		if err != nil {
			return err
		}
		defer closeFn()

		res, err := b.Run(cmd.Context())
		if err != nil {
			return err
		}
		if res.Changed {
			logger.Info("done", zap.Int("posts", res.Posts), zap.Int("top_tags", len(res.TopTags)))
		} else {
			logger.Info("done, nothing to change")
		}
		return nil
	},
}

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Rebuild the home page whenever an article changes",
	RunE: func(cmd *cobra.Command, args []string) error {
		b, closeFn, err := newBuilder()
		if err != nil {
			return err
		}
		defer closeFn()

		w := &watch.Watcher{
			Root:      cfg.Content.Root,
			Extension: cfg.Content.Extension,
			Debounce:  cfg.Watch.Debounce,
			Log:       logger.Named("watch"),
			Build: func(ctx context.Context) error {
				_, err := b.Run(ctx)
				return err
			},
		}
		return w.Run(cmd.Context())
	},
}

var scheduleCmd = &cobra.Command{
	Use:   "schedule",
	Short: "Rebuild the home page on the configured cron schedule",
	RunE: func(cmd *cobra.Command, args []string) error {
		b, closeFn, err := newBuilder()
		if err != nil {
			return err
		}
		defer closeFn()

		ctx := cmd.Context()
		log := logger.Named("schedule")
		run := func() {
			if _, err := b.Run(ctx); err != nil {
				log.Error("scheduled run failed", zap.Error(err))
			}
		}

		s, err := schedule.New(cfg.Schedule.TimeZone)
		if err != nil {
			return err
		}
		if err := s.Schedule(cfg.Schedule.Spec, run); err != nil {
			return err
		}

		run()
		s.Start()
		log.Info("scheduler started",
			zap.String("spec", cfg.Schedule.Spec),
			zap.String("tz", s.Location().String()),
			zap.Time("next", s.Next()),
		)
		<-ctx.Done()
		s.Stop()
		return nil
	},
}

var (
	historyLimit int
	historyLast  bool
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "List recorded update runs, newest first",
	RunE: func(cmd *cobra.Command, args []string) error {
		if cfg.State.Path == "" {
			return fmt.Errorf("%w: state.path is not set", domainerr.ErrInvalid)
		}
		st, err := history.Open(history.OpenOptions{Path: cfg.State.Path, ReadOnly: true})
		if err != nil {
			return fmt.Errorf("open history: %w", err)
		}
		defer st.Close()

		out := cmd.OutOrStdout()
		if historyLast {
			r, err := st.Last()
			if errors.Is(err, history.ErrNotFound) {
				fmt.Fprintln(out, "no runs recorded")
				return nil
			}
			if err != nil {
				return err
			}
			printRun(out, r)
			fmt.Fprintf(out, "  recent: %s\n  tags:   %s\n", strings.Join(r.Recent, ", "), strings.Join(r.TopTags, ", "))
			return nil
		}

		runs, err := st.List(historyLimit)
		if err != nil {
			return err
		}
		for _, r := range runs {
			printRun(out, r)
		}
		return nil
	},
}

func printRun(out io.Writer, r history.RunRecord) {
	fmt.Fprintf(out, "%s  posts=%d drafts=%d tags=%d changed=%t run=%.12s\n",
		r.At.Format("2006-01-02 15:04:05"), r.Posts, r.Drafts, r.UniqueTags, r.Changed, r.RunHash)
}

// newBuilder wires the pipeline and, when state.path is set, the run history.
func newBuilder() (*build.Builder, func(), error) {
	b := &build.Builder{
		Cfg: cfg,
		Log: logger.Named("build"),
	}
	if cfg.State.Path == "" {
		return b, func() {}, nil
	}
	st, err := history.Open(history.OpenOptions{Path: cfg.State.Path})
	if err != nil {
		return nil, nil, fmt.Errorf("open history: %w", err)
	}
	b.History = st
	return b, func() { _ = st.Close() }, nil
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "vox.yaml", "Config file (defaults apply when missing)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable debug logging")

	historyCmd.Flags().IntVarP(&historyLimit, "limit", "n", 20, "Number of runs to show (0 = all)")
	historyCmd.Flags().BoolVar(&historyLast, "last", false, "Show only the latest run with its selections")

	rootCmd.AddCommand(watchCmd)
	rootCmd.AddCommand(scheduleCmd)
	rootCmd.AddCommand(historyCmd)
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := rootCmd.ExecuteContext(ctx)
	stop()
	if err != nil {
		fmt.Fprintln(os.Stderr, "[update-vox-home] error:", err)
		os.Exit(domainerr.ExitCode(err))
	}
}
