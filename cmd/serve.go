package cmd

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/ziadkadry99/arcdocs/internal/server"
	"github.com/ziadkadry99/arcdocs/internal/site"
	"github.com/ziadkadry99/arcdocs/internal/viewer"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the documentation server and live architecture viewer",
	Long: `Serves the architecture viewer at / and the rendered markdown docs at /docs/.
The manifest file is watched; every change is pushed to open viewers over
a WebSocket.`,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().String("manifest", "", "manifest path (overrides config)")
	serveCmd.Flags().Int("port", 0, "port to listen on (overrides config)")
	serveCmd.Flags().Bool("no-watch", false, "do not reload the manifest when it changes")
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if port, _ := cmd.Flags().GetInt("port"); port != 0 {
		cfg.Port = port
	}
	override, _ := cmd.Flags().GetString("manifest")
	_, manifestPath, err := loadManifest(cfg, override)
	if err != nil {
		return err
	}

	src, err := viewer.NewSource(manifestPath)
	if err != nil {
		return err
	}
	v := viewer.New(src, cfg.ProjectRoot, cfg.Search)

	files, err := discoverDocs(cfg)
	if err != nil {
		return err
	}
	var docs *site.Docs
	if len(files) > 0 {
		docs, err = site.NewDocs(cfg.DocsDir, cfg.ProjectName, files, cfg.Redirects)
		if err != nil {
			return fmt.Errorf("loading docs: %w", err)
		}
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if noWatch, _ := cmd.Flags().GetBool("no-watch"); !noWatch {
		if err := src.Watch(ctx); err != nil {
			return fmt.Errorf("watching manifest: %w", err)
		}
	}

	srv := server.New(server.Config{
		Port:     cfg.Port,
		AllowAll: cfg.AllowAllOrigins,
	}, v, docs)

	go func() {
		<-ctx.Done()
		fmt.Fprintln(os.Stderr, "\nShutting down server...")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		srv.Shutdown(shutdownCtx)
	}()

	fmt.Fprintf(os.Stderr, "arcdocs %s starting on port %d\n", Version, cfg.Port)
	fmt.Fprintf(os.Stderr, "  Manifest: %s\n", manifestPath)
	if docs != nil {
		fmt.Fprintf(os.Stderr, "  Docs: %s (%d pages)\n", cfg.DocsDir, len(docs.Pages()))
	} else {
		fmt.Fprintf(os.Stderr, "  Docs: none found in %s\n", cfg.DocsDir)
	}

	if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}
