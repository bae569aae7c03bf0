package cmd

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"sync/atomic"
	"time"

	"github.com/encodeous/tint"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/ospfsim/ospfsim/api"
	"github.com/ospfsim/ospfsim/config"
	"github.com/ospfsim/ospfsim/importer"
	"github.com/ospfsim/ospfsim/ospf"
	ssync "github.com/ospfsim/ospfsim/sync"
)

var (
	listenAddr   string
	reloadPeriod time.Duration
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run the simulator with its inspection API",
	Long: `run loads the topology, computes every router's routing table, and serves
the LSDB, topology graph, and routing tables over HTTP. The topology file
is watched for changes and reloaded in place.`,
	RunE: runDaemon,
}

func init() {
	runCmd.Flags().StringVarP(&listenAddr, "listen", "l", "127.0.0.1:8620", "api listen address")
	runCmd.Flags().DurationVar(&reloadPeriod, "reload-interval", 2*time.Second, "how often to check the topology file for changes")

	rootCmd.AddCommand(runCmd)
}

func runDaemon(cmd *cobra.Command, args []string) error {
	logger := slog.New(tint.NewHandler(os.Stderr, &tint.Options{
		Level:      slog.LevelInfo,
		TimeFormat: "15:04:05",
	}))

	conf, err := config.LoadConfig(configPath)
	if err != nil {
		return err
	}

	area, routers, err := importer.BuildArea(conf)
	if err != nil {
		return err
	}

	var current atomic.Pointer[ospf.Area]
	current.Store(area)

	notifier := ssync.NewNotifier()

	logger.Info("topology loaded",
		"area", area.ID.String(),
		"routers", len(routers),
		"lsas", len(area.LSAs()))

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
	defer cancel()

	g, ctx := errgroup.WithContext(ctx)

	server := api.NewServer(listenAddr, func() *ospf.Area {
		return current.Load()
	})

	g.Go(func() error {
		logger.Info("api listening", "addr", listenAddr)
		return server.Run(ctx)
	})

	g.Go(func() error {
		return watchConfig(ctx, logger, &current, notifier)
	})

	g.Go(func() error {
		seq := notifier.LastSeq()
		for {
			seq = notifier.AwaitChange(ctx, seq)
			if ctx.Err() != nil {
				return nil
			}

			a := current.Load()
			logger.Info("topology reloaded",
				"routers", len(a.RoutingTable()),
				"lsas", len(a.LSAs()))
		}
	})

	return g.Wait()
}

// watchConfig polls the topology file's modification time and swaps in a
// freshly built area when it changes. A file that fails to parse leaves the
// running area untouched.
func watchConfig(ctx context.Context, logger *slog.Logger, current *atomic.Pointer[ospf.Area], notifier *ssync.Notifier) error {
	info, err := os.Stat(configPath)
	if err != nil {
		return err
	}
	mtime := info.ModTime()

	ticker := time.NewTicker(reloadPeriod)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
		}

		info, err := os.Stat(configPath)
		if err != nil {
			logger.Warn("stat topology file", "path", configPath, "err", err)
			continue
		}

		if info.ModTime().Equal(mtime) {
			continue
		}
		mtime = info.ModTime()

		conf, err := config.LoadConfig(configPath)
		if err != nil {
			logger.Warn("reload failed, keeping previous topology", "err", err)
			continue
		}

		area, _, err := importer.BuildArea(conf)
		if err != nil {
			logger.Warn("reload failed, keeping previous topology", "err", err)
			continue
		}

		current.Store(area)
		notifier.NotifyChange()
	}
}
