package insights

import (
	"context"
	"fmt"
	"strings"

	"github.com/moodtracker/moodtracker/internal/core"
	"github.com/moodtracker/moodtracker/internal/llm"
	"github.com/moodtracker/moodtracker/internal/logging"
	"github.com/moodtracker/moodtracker/internal/storage"
	"github.com/moodtracker/moodtracker/internal/validation"
	"github.com/moodtracker/moodtracker/internal/vault"
)

// prefAPIKey stores the sealed provider credential.
const prefAPIKey = "openai_api_key"

// unavailableMessage is returned when even the local path cannot run.
const unavailableMessage = "Unable to generate insights right now. Try again later! 🔄"

// minEntriesForAI is the smallest weekly window worth a remote call.
const minEntriesForAI = 3

// promptMaxTokens and promptTemperature parameterize the completion request.
const (
	promptMaxTokens   = 200
	promptTemperature = 0.7
)

// Service orchestrates insight generation: weekly window, quota, remote
// call, fallback and persistence.
type Service struct {
	moods    *storage.MoodStore
	insights *storage.InsightStore
	prefs    *storage.PreferenceStore
	quota    *QuotaTracker
	client   *llm.Client
	vault    *vault.Vault
	log      *logging.Logger
}

// Config for the insight service
type Config struct {
	Moods    *storage.MoodStore
	Insights *storage.InsightStore
	Prefs    *storage.PreferenceStore
	Client   *llm.Client
	Vault    *vault.Vault
}

// NewService wires the insight pipeline. It loads a previously stored
// credential into the LLM client if one exists.
func NewService(cfg Config) *Service {
	s := &Service{
		moods:    cfg.Moods,
		insights: cfg.Insights,
		prefs:    cfg.Prefs,
		quota:    NewQuotaTracker(cfg.Prefs),
		client:   cfg.Client,
		vault:    cfg.Vault,
		log:      logging.WithField("component", "insights"),
	}
	s.loadStoredKey()
	return s
}

// loadStoredKey unseals a persisted credential into the client. Missing or
// unreadable credentials just leave the client unconfigured; the pipeline
// falls back locally in that case.
func (s *Service) loadStoredKey() {
	sealed, ok, err := s.prefs.Get(prefAPIKey)
	if err != nil || !ok {
		return
	}
	key, err := s.vault.Open(sealed)
	if err != nil {
		s.log.Warn("stored API key could not be unsealed: %v", err)
		return
	}
	s.client.SetAPIKey(string(key))
}

// GenerateInsights runs the full pipeline and always returns something to
// show: AI insights when possible, the local fallback otherwise. It never
// surfaces a hard error.
func (s *Service) GenerateInsights(ctx context.Context) []string {
	weekly, err := s.moods.ListWeekly()
	if err != nil {
		s.log.Error("loading weekly window: %v", err)
		return []string{unavailableMessage}
	}

	if len(weekly) < minEntriesForAI {
		return LocalFallback(weekly)
	}

	if !s.quota.TryAcquire() {
		s.log.Info("daily AI quota reached, using local fallback")
		return LocalFallback(weekly)
	}

	generated, err := s.callProvider(ctx, weekly)
	if err != nil {
		s.log.Info("AI provider failed, using local fallback: %v", err)
		return LocalFallback(weekly)
	}

	if err := s.quota.RecordUsage(); err != nil {
		s.log.Warn("recording quota usage: %v", err)
	}

	// weekly is newest-first, so the label runs oldest to newest
	dateRange := fmt.Sprintf("%s to %s", weekly[len(weekly)-1].Date, weekly[0].Date)
	for _, text := range generated {
		if _, err := s.insights.Create(text, core.InsightCategoryWeekly, dateRange); err != nil {
			s.log.Warn("persisting insight: %v", err)
		}
	}

	return generated
}

// callProvider issues the single remote completion request.
func (s *Service) callProvider(ctx context.Context, weekly []*core.MoodEntry) ([]string, error) {
	content, err := s.client.Chat(ctx, BuildPrompt(weekly), promptMaxTokens, promptTemperature)
	if err != nil {
		return nil, err
	}
	return ParseInsightLines(content), nil
}

// LatestInsightText returns the newest stored insight's text, or "" when
// none exist.
func (s *Service) LatestInsightText() (string, error) {
	stored, err := s.insights.List(1)
	if err != nil {
		return "", err
	}
	if len(stored) == 0 {
		return "", nil
	}
	return stored[0].Text, nil
}

// RecentInsights returns up to n stored insights, newest-first.
func (s *Service) RecentInsights(n int) ([]*core.Insight, error) {
	return s.insights.List(n)
}

// MarkInsightRead flips the read flag on one insight.
func (s *Service) MarkInsightRead(id core.InsightID) error {
	return s.insights.MarkRead(id)
}

// Stats computes the dashboard aggregates.
func (s *Service) Stats() (core.MoodStats, error) {
	var stats core.MoodStats

	total, err := s.moods.Count()
	if err != nil {
		return stats, err
	}
	streak, err := s.moods.StreakCount()
	if err != nil {
		return stats, err
	}
	mostCommon, err := s.moods.MostCommonMood()
	if err != nil {
		return stats, err
	}
	avg, err := s.moods.AverageIntensity()
	if err != nil {
		return stats, err
	}

	stats.TotalEntries = total
	stats.CurrentStreak = streak
	stats.MostCommonMood = mostCommon
	stats.AverageIntensity = avg
	return stats, nil
}

// SaveAPIKey validates, seals and persists the provider credential, then
// arms the client with it. Validation failures wrap core.ErrInvalidInput so
// callers can distinguish them from store failures.
func (s *Service) SaveAPIKey(apiKey string) error {
	if res := validation.ValidateAPIKey(apiKey); !res.Valid {
		return fmt.Errorf("%w: %s", core.ErrInvalidInput, strings.Join(res.Errors, "; "))
	}

	sealed, err := s.vault.Seal([]byte(apiKey))
	if err != nil {
		return fmt.Errorf("seal API key: %w", err)
	}
	if err := s.prefs.Set(prefAPIKey, sealed); err != nil {
		return fmt.Errorf("store API key: %w", err)
	}

	s.client.SetAPIKey(apiKey)
	return nil
}

// HasAPIKey reports whether a credential is currently configured.
func (s *Service) HasAPIKey() bool {
	return s.client.IsConfigured()
}
