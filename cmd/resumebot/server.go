package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"strconv"
	"strings"
	"syscall"
	"time"

	"github.com/mark3labs/mcp-go/server"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/saur-bh/resumebot/internal/api"
	"github.com/saur-bh/resumebot/internal/config"
	"github.com/saur-bh/resumebot/internal/extract"
	"github.com/saur-bh/resumebot/internal/ingest"
	"github.com/saur-bh/resumebot/internal/pipeline"
	"github.com/saur-bh/resumebot/internal/profile"
	"github.com/saur-bh/resumebot/internal/proxy"
	"github.com/saur-bh/resumebot/internal/router"
	"github.com/saur-bh/resumebot/internal/storage"
)

var startCmd = &cobra.Command{
	Use:   "start",
	Short: "Start the resumebot server (foreground)",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runServer()
	},
}

var stopCmd = &cobra.Command{
	Use:   "stop",
	Short: "Stop the running resumebot server",
	RunE: func(cmd *cobra.Command, args []string) error {
		return stopServer()
	},
}

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show resumebot status",
	RunE: func(cmd *cobra.Command, args []string) error {
		return showStatus()
	},
}

func pidFilePath(dataDir string) string {
	return filepath.Join(dataDir, "resumebot.pid")
}

func writePIDFile(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	return os.WriteFile(path, []byte(strconv.Itoa(os.Getpid())), 0o644)
}

func readPIDFile(path string) (int, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return 0, err
	}
	return strconv.Atoi(strings.TrimSpace(string(data)))
}

func removePIDFile(path string) {
	os.Remove(path)
}

// providerChain assembles the remote completion chain from config: the
// primary provider first, the optional fallback second.
func providerChain(cfg config.Config) []proxy.Settings {
	var chain []proxy.Settings
	if cfg.AI.APIKey != "" {
		chain = append(chain, proxy.Settings{
			Provider: cfg.AI.Provider,
			APIKey:   cfg.AI.APIKey,
			Model:    cfg.AI.Model,
		})
	}
	if cfg.AI.FallbackProvider != "" && cfg.AI.FallbackAPIKey != "" {
		chain = append(chain, proxy.Settings{
			Provider: cfg.AI.FallbackProvider,
			APIKey:   cfg.AI.FallbackAPIKey,
			Model:    cfg.AI.FallbackModel,
		})
	}
	return chain
}

func runServer() error {
	fmt.Fprintf(os.Stderr, "resumebot version %s\n", version)

	cfg, err := config.Load()
	if err != nil {
		return err
	}

	logLevel := slog.LevelInfo
	if strings.EqualFold(cfg.Log.Level, "debug") {
		logLevel = slog.LevelDebug
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: logLevel})))

	apiToken, err := config.GetAPIToken(cfg)
	if err != nil {
		return fmt.Errorf("initializing API token: %w", err)
	}

	// Refuse to start a second instance on the same port.
	pidPath := pidFilePath(cfg.Storage.DataDir)
	healthURL := fmt.Sprintf("http://127.0.0.1:%d/health", cfg.Server.Port)
	healthClient := &http.Client{Timeout: 2 * time.Second}
	if resp, err := healthClient.Get(healthURL); err == nil {
		resp.Body.Close()
		if pid, pidErr := readPIDFile(pidPath); pidErr == nil {
			printWarning("resumebot is already running (PID %d)", pid)
			return fmt.Errorf("server already running (PID %d)", pid)
		}
		printWarning("resumebot is already running on port %d", cfg.Server.Port)
		return fmt.Errorf("server already running on port %d", cfg.Server.Port)
	}
	if err := writePIDFile(pidPath); err != nil {
		return fmt.Errorf("writing PID file: %w", err)
	}
	defer removePIDFile(pidPath)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	store, err := storage.Open(cfg.Storage.DataDir)
	if err != nil {
		return fmt.Errorf("opening storage: %w", err)
	}
	defer func() {
		if err := store.Close(); err != nil {
			fmt.Fprintf(os.Stderr, "warning: closing storage: %v\n", err)
		}
	}()

	profileMgr := profile.NewManager(store)
	table := router.NewTable(router.ParseOrder(cfg.Chat.Priority))
	proxyClient := proxy.NewClient(providerChain(cfg)...)
	responder := pipeline.NewResponder(table, profileMgr, proxyClient, store, cfg.Chat.Mode)

	if responder.Mode() != pipeline.ModeRules && !proxyClient.Configured() {
		slog.Warn("no AI provider configured, remote completions will return the local fallback")
	}

	uploadDir := filepath.Join(cfg.Storage.DataDir, "uploads")
	handler := api.NewRouter(responder, api.AdminDeps{
		Store:     store,
		Profiles:  profileMgr,
		Token:     apiToken,
		UploadDir: uploadDir,
	})

	addr := fmt.Sprintf("127.0.0.1:%d", cfg.Server.Port)
	srv := &http.Server{
		Addr:    addr,
		Handler: handler,
	}

	mcpSrv := api.NewMCPServer(api.MCPDeps{
		Store:     store,
		Profiles:  profileMgr,
		Responder: responder,
	})
	stdioSrv := server.NewStdioServer(mcpSrv)

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		fmt.Fprintf(os.Stderr, "resumebot listening on %s\n", addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			return fmt.Errorf("server error: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		worker := ingest.NewWorker(store, extract.Text, 500*time.Millisecond)
		worker.Run(gctx)
		return nil
	})

	g.Go(func() error {
		if err := stdioSrv.Listen(gctx, os.Stdin, os.Stdout); err != nil && !errors.Is(err, context.Canceled) {
			slog.Error("MCP stdio server error", "error", err)
		}
		return nil
	})
	slog.Info("MCP server started (stdio transport)")

	g.Go(func() error {
		<-gctx.Done()
		fmt.Fprintln(os.Stderr, "shutting down...")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})

	return g.Wait()
}

func stopServer() error {
	cfg, err := config.Load()
	if err != nil {
		printError("could not load config: %v", err)
		return err
	}

	pidPath := pidFilePath(cfg.Storage.DataDir)
	pid, err := readPIDFile(pidPath)
	if err != nil {
		printError("resumebot is not running (no PID file)")
		return fmt.Errorf("not running: %w", err)
	}

	process, err := os.FindProcess(pid)
	if err != nil {
		printError("could not find process %d", pid)
		return err
	}

	if err := process.Signal(syscall.SIGTERM); err != nil {
		printError("could not stop resumebot (PID %d): %v", pid, err)
		removePIDFile(pidPath)
		return err
	}

	printSuccess("Sent stop signal to resumebot (PID %d)", pid)
	return nil
}

func showStatus() error {
	cfg, err := config.Load()
	if err != nil {
		printError("config error: %v", err)
		return nil
	}

	serverURL := fmt.Sprintf("http://127.0.0.1:%d", cfg.Server.Port)
	client := &http.Client{Timeout: 2 * time.Second}

	resp, err := client.Get(serverURL + "/health")
	if err != nil {
		printStatus("Server", "stopped")
	} else {
		resp.Body.Close()
		if resp.StatusCode == 200 {
			printStatus("Server", "running on port %d", cfg.Server.Port)
		} else {
			printStatus("Server", "error (HTTP %d)", resp.StatusCode)
		}
	}

	printStatus("Chat mode", "%s", cfg.Chat.Mode)
	if cfg.AI.APIKey != "" {
		printStatus("AI provider", "%s", cfg.AI.Provider)
	} else {
		printStatus("AI provider", "not configured")
	}
	if cfg.AI.FallbackProvider != "" && cfg.AI.FallbackAPIKey != "" {
		printStatus("AI fallback", "%s", cfg.AI.FallbackProvider)
	}
	printStatus("Data dir", "%s", cfg.Storage.DataDir)
	return nil
}
