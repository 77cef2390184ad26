// Command spec-dashboard is the spec workflow dashboard daemon. It watches a
// project's spec documents, serves the REST API and SSE event stream, and
// archives observed activity.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/exec"
	"os/signal"
	"path/filepath"
	"runtime"
	"strings"
	"syscall"
	"time"

	"github.com/Pimzino/claude-code-spec-workflow/config"
	"github.com/Pimzino/claude-code-spec-workflow/dashboard"
	"github.com/Pimzino/claude-code-spec-workflow/events"
	"github.com/Pimzino/claude-code-spec-workflow/internal/version"
)

func main() {
	var (
		configPath = flag.String("config", "", "path to config file (optional)")
		port       = flag.Int("port", 0, "listen port (overrides config addr)")
		root       = flag.String("root", "", "project root to watch (overrides config)")
		openFlag   = flag.Bool("open", false, "open the dashboard in a browser")
	)
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	if *port != 0 {
		cfg.Dashboard.Addr = fmt.Sprintf(":%d", *port)
	}
	if *root != "" {
		cfg.Dashboard.Project = *root
	}
	if cfg.Dashboard.Project == "" {
		wd, err := os.Getwd()
		if err != nil {
			log.Fatalf("Failed to resolve working directory: %v", err)
		}
		cfg.Dashboard.Project = wd
	}

	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: parseLevel(cfg.LogLevel),
	}))

	logger.Info("starting spec-dashboard",
		"version", version.Version,
		"commit", version.Commit,
		"project", cfg.Dashboard.Project,
	)

	bus := events.NewBus()

	if err := os.MkdirAll(cfg.DataDir, 0o755); err != nil {
		log.Fatalf("Failed to create data dir: %v", err)
	}
	archive, err := dashboard.NewArchive(filepath.Join(cfg.DataDir, "activity.db"))
	if err != nil {
		log.Fatalf("Failed to open activity archive: %v", err)
	}
	defer archive.Close()
	unsubscribe := archive.Record(bus)
	defer unsubscribe()

	watcher, err := dashboard.NewWatcher(cfg.Dashboard.Project, bus, logger)
	if err != nil {
		log.Fatalf("Failed to start watcher: %v", err)
	}
	defer watcher.Close()

	srv := dashboard.New(*cfg, version.Version, logger)
	srv.SetBus(bus)
	srv.SetArchive(archive)

	errCh := make(chan error, 1)
	go func() {
		if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	if *openFlag || cfg.Dashboard.Open {
		openBrowser(dashboardURL(cfg.Dashboard.Addr), logger)
	}

	fmt.Printf("Dashboard running on %s\n", dashboardURL(cfg.Dashboard.Addr))
	fmt.Printf("Version: %s (%s)\n", version.Version, version.Commit)

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	select {
	case err := <-errCh:
		log.Fatalf("Server error: %v", err)
	case <-sigCh:
	}

	fmt.Println("Shutting down...")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Stop(ctx); err != nil {
		logger.Error("server stop error", "error", err)
	}
	fmt.Println("Shutdown complete")
}

func parseLevel(level string) slog.Level {
	switch strings.ToLower(level) {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

func dashboardURL(addr string) string {
	if strings.HasPrefix(addr, ":") {
		return "http://localhost" + addr
	}
	return "http://" + addr
}

// openBrowser launches the platform opener. Failures are logged, never fatal.
func openBrowser(url string, logger *slog.Logger) {
	var cmd *exec.Cmd
	switch runtime.GOOS {
	case "darwin":
		cmd = exec.Command("open", url)
	case "windows":
		cmd = exec.Command("rundll32", "url.dll,FileProtocolHandler", url)
	default:
		cmd = exec.Command("xdg-open", url)
	}
	if err := cmd.Start(); err != nil {
		logger.Warn("could not open browser", "url", url, "error", err)
	}
}
