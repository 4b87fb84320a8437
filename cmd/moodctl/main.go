// MoodTracker CLI - manage your mood journal from the terminal.
package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/moodtracker/moodtracker/internal/config"
	"github.com/moodtracker/moodtracker/internal/core"
	"github.com/moodtracker/moodtracker/internal/insights"
	"github.com/moodtracker/moodtracker/internal/llm"
	"github.com/moodtracker/moodtracker/internal/logging"
	"github.com/moodtracker/moodtracker/internal/storage"
	"github.com/moodtracker/moodtracker/internal/validation"
	"github.com/moodtracker/moodtracker/internal/vault"
)

var (
	configPath string
	dataDir    string
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "moodctl",
		Short: "MoodTracker - mood journaling with AI insights",
	}

	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "config file path")
	rootCmd.PersistentFlags().StringVar(&dataDir, "data-dir", "", "data directory (overrides config)")

	rootCmd.AddCommand(logCmd())
	rootCmd.AddCommand(statsCmd())
	rootCmd.AddCommand(insightsCmd())
	rootCmd.AddCommand(setKeyCmd())

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// openEnv loads config and opens the database shared with the daemon.
func openEnv() (*config.Config, *storage.DB, error) {
	logging.SetLevel(logging.ERROR) // keep CLI output clean

	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load config: %w", err)
	}
	if dataDir != "" {
		cfg.DataDir = dataDir
	}

	db, err := storage.Open(storage.Config{Path: cfg.DatabasePath()})
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open database: %w", err)
	}
	if err := db.Migrate(); err != nil {
		db.Close()
		return nil, nil, fmt.Errorf("migration failed: %w", err)
	}

	return cfg, db, nil
}

func newService(cfg *config.Config, db *storage.DB) *insights.Service {
	return insights.NewService(insights.Config{
		Moods:    storage.NewMoodStore(db),
		Insights: storage.NewInsightStore(db),
		Prefs:    storage.NewPreferenceStore(db),
		Client: llm.NewClient(llm.Config{
			APIKey:  os.Getenv("OPENAI_API_KEY"),
			BaseURL: cfg.OpenAI.BaseURL,
			Model:   cfg.OpenAI.Model,
		}),
		Vault: vault.New(cfg.Vault.Passphrase),
	})
}

// logCmd records one mood entry
func logCmd() *cobra.Command {
	var (
		mood      string
		intensity int
		note      string
		tags      []string
	)

	cmd := &cobra.Command{
		Use:   "log",
		Short: "Record a mood entry",
		RunE: func(cmd *cobra.Command, args []string) error {
			option, ok := findMoodOption(mood)
			if !ok {
				var types []string
				for _, opt := range core.MoodOptions {
					types = append(types, opt.Type)
				}
				return fmt.Errorf("unknown mood %q (one of: %s)", mood, strings.Join(types, ", "))
			}

			res := validation.ValidateMoodEntry(validation.MoodEntryInput{
				Emoji:     option.Emoji,
				MoodType:  option.Type,
				Intensity: intensity,
				Note:      note,
				Tags:      tags,
			})
			if !res.Valid {
				return fmt.Errorf("%s", strings.Join(res.Errors, "; "))
			}

			_, db, err := openEnv()
			if err != nil {
				return err
			}
			defer db.Close()

			entry := &core.MoodEntry{
				Emoji:     option.Emoji,
				MoodType:  option.Type,
				Intensity: intensity,
				Note:      validation.SanitizeNote(note),
				Tags:      tags,
			}
			if err := storage.NewMoodStore(db).Create(entry); err != nil {
				return fmt.Errorf("saving entry: %w", err)
			}

			fmt.Printf("%s logged %s (%d/10) for %s\n", option.Emoji, option.Label, intensity, entry.Date)
			return nil
		},
	}

	cmd.Flags().StringVar(&mood, "mood", "", "mood type (happy, sad, anxious, ...)")
	cmd.Flags().IntVar(&intensity, "intensity", 5, "intensity 1-10")
	cmd.Flags().StringVar(&note, "note", "", "optional note (max 200 chars)")
	cmd.Flags().StringSliceVar(&tags, "tags", nil, "activity tags (max 10)")
	cmd.MarkFlagRequired("mood")

	return cmd
}

func findMoodOption(moodType string) (core.MoodOption, bool) {
	for _, opt := range core.MoodOptions {
		if opt.Type == strings.ToLower(strings.TrimSpace(moodType)) {
			return opt, true
		}
	}
	return core.MoodOption{}, false
}

// statsCmd prints the dashboard aggregates
func statsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "stats",
		Short: "Show mood statistics",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, db, err := openEnv()
			if err != nil {
				return err
			}
			defer db.Close()

			stats, err := newService(cfg, db).Stats()
			if err != nil {
				return fmt.Errorf("computing stats: %w", err)
			}

			fmt.Printf("Entries:          %d\n", stats.TotalEntries)
			fmt.Printf("Current streak:   %d day(s)\n", stats.CurrentStreak)
			fmt.Printf("Most common mood: %s\n", stats.MostCommonMood)
			fmt.Printf("Avg intensity:    %.1f/10 (%s)\n",
				stats.AverageIntensity, core.IntensityBucket(int(stats.AverageIntensity)))
			return nil
		},
	}
}

// insightsCmd generates and prints insights
func insightsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "insights",
		Short: "Generate insights for the past week",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, db, err := openEnv()
			if err != nil {
				return err
			}
			defer db.Close()

			for _, text := range newService(cfg, db).GenerateInsights(context.Background()) {
				fmt.Printf("• %s\n", text)
			}
			return nil
		},
	}
}

// setKeyCmd stores the AI provider credential
func setKeyCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "set-key",
		Short: "Store your OpenAI API key (read without echo)",
		RunE: func(cmd *cobra.Command, args []string) error {
			fmt.Print("OpenAI API key: ")
			raw, err := term.ReadPassword(int(os.Stdin.Fd()))
			fmt.Println()
			if err != nil {
				return fmt.Errorf("failed to read key: %w", err)
			}

			cfg, db, err := openEnv()
			if err != nil {
				return err
			}
			defer db.Close()

			if err := newService(cfg, db).SaveAPIKey(string(raw)); err != nil {
				return err
			}

			fmt.Println("✅ API key stored (encrypted at rest)")
			fmt.Printf("   Database: %s\n", filepath.Base(cfg.DatabasePath()))
			return nil
		},
	}
}
