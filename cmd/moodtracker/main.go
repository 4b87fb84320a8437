// MoodTracker daemon - local mood journal with AI insights
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/moodtracker/moodtracker/internal/api"
	"github.com/moodtracker/moodtracker/internal/config"
	"github.com/moodtracker/moodtracker/internal/insights"
	"github.com/moodtracker/moodtracker/internal/llm"
	"github.com/moodtracker/moodtracker/internal/logging"
	"github.com/moodtracker/moodtracker/internal/storage"
	"github.com/moodtracker/moodtracker/internal/vault"
)

var (
	configPath string
	dataDir    string
	port       int
)

func main() {
	// Optional .env next to the binary; real env wins
	godotenv.Load()

	rootCmd := &cobra.Command{
		Use:   "moodtracker",
		Short: "MoodTracker - mood journaling with AI insights",
		RunE:  runDaemon,
	}

	rootCmd.Flags().StringVar(&configPath, "config", "", "Config file path")
	rootCmd.Flags().StringVar(&dataDir, "data-dir", "", "Data directory (overrides config)")
	rootCmd.Flags().IntVar(&port, "port", 0, "HTTP server port (overrides config)")

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func runDaemon(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	if dataDir != "" {
		cfg.DataDir = dataDir
	}
	if port != 0 {
		cfg.Server.Port = port
	}

	logging.SetLevel(logging.ParseLevel(cfg.LogLevel))

	// Open database
	db, err := storage.Open(storage.Config{Path: cfg.DatabasePath()})
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer db.Close()

	if err := db.Migrate(); err != nil {
		return fmt.Errorf("migration failed: %w", err)
	}

	moodStore := storage.NewMoodStore(db)
	insightStore := storage.NewInsightStore(db)
	prefStore := storage.NewPreferenceStore(db)

	// Housekeeping: drop entries past the retention window
	if deleted, err := moodStore.CleanupOldEntries(); err != nil {
		logging.Warn("cleanup of old entries failed: %v", err)
	} else if deleted > 0 {
		logging.Info("cleaned up %d entries past retention", deleted)
	}

	// LLM client for AI insights
	client := llm.NewClient(llm.Config{
		APIKey:  os.Getenv("OPENAI_API_KEY"),
		BaseURL: cfg.OpenAI.BaseURL,
		Model:   cfg.OpenAI.Model,
		Timeout: time.Duration(cfg.OpenAI.TimeoutSeconds) * time.Second,
	})

	service := insights.NewService(insights.Config{
		Moods:    moodStore,
		Insights: insightStore,
		Prefs:    prefStore,
		Client:   client,
		Vault:    vault.New(cfg.Vault.Passphrase),
	})

	if service.HasAPIKey() {
		logging.Info("AI provider configured")
	} else {
		logging.Info("no API key yet - insights will use the local fallback")
	}

	server := api.New(api.Config{
		Host:      cfg.Server.Host,
		Port:      cfg.Server.Port,
		MoodStore: moodStore,
		Service:   service,
	})

	// Graceful shutdown on SIGINT/SIGTERM
	errCh := make(chan error, 1)
	go func() {
		errCh <- server.Start()
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errCh:
		return err
	case sig := <-sigCh:
		logging.Info("received %s, shutting down", sig)
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return server.Stop(ctx)
	}
}
