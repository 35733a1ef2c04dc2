package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/ziadkadry99/arcdocs/internal/manifest"
	"github.com/ziadkadry99/arcdocs/internal/watcher"
)

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Follow manifest changes on a running arcdocs server",
	Long: `Connects to a running arcdocs server and prints a summary every time the
manifest changes. The change-notification socket is used when available;
otherwise the server is polled.`,
	RunE: runWatch,
}

func init() {
	watchCmd.Flags().String("server", "", "server URL (defaults to watcher.server_url)")
	watchCmd.Flags().Bool("once", false, "print the current manifest summary and exit")
	rootCmd.AddCommand(watchCmd)
}

func runWatch(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	server, _ := cmd.Flags().GetString("server")
	if server == "" {
		server = cfg.Watcher.ServerURL
	}

	w := watcher.New(watcher.NewHTTPTransport(server), watcher.Options{
		PollInterval:   cfg.Watcher.PollInterval,
		ReconnectDelay: cfg.Watcher.ReconnectDelay,
		Logger:         componentLogger(),
		OnArcChanged: func(m *manifest.Manifest) {
			fmt.Printf("manifest changed: %s\n", summarize(m))
		},
	})

	if once, _ := cmd.Flags().GetBool("once"); once {
		m := w.GetCurrentData(cmd.Context())
		if m == nil {
			return fmt.Errorf("could not fetch manifest from %s", server)
		}
		fmt.Println(summarize(m))
		return nil
	}

	w.Bus().On(watcher.EventStateChanged, func(e watcher.Event) {
		fmt.Fprintf(os.Stderr, "watch: %s\n", e.State)
	})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	fmt.Fprintf(os.Stderr, "Watching %s (press Ctrl+C to stop)\n", server)
	w.Start(ctx)
	<-ctx.Done()
	w.Stop()
	return nil
}

func summarize(m *manifest.Manifest) string {
	return fmt.Sprintf("%d routes, %d lambdas, %d tables",
		m.Len(manifest.CategoryRoutes),
		m.Len(manifest.CategoryLambdas),
		m.Len(manifest.CategoryTables))
}
