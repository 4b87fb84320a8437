package insights

import (
	"strconv"
	"sync"
	"time"

	"github.com/moodtracker/moodtracker/internal/logging"
	"github.com/moodtracker/moodtracker/internal/storage"
)

// Preference keys for quota bookkeeping.
const (
	prefRequestCount    = "ai_requests_count"
	prefLastRequestDate = "ai_last_request_date"
)

// maxRequestsPerDay caps remote AI calls per calendar day.
const maxRequestsPerDay = 10

// QuotaTracker gates remote AI calls with a persisted per-day counter.
// The counter resets lazily when the stored date marker no longer matches
// the current calendar day; there is no background timer.
type QuotaTracker struct {
	prefs *storage.PreferenceStore
	max   int
	now   func() time.Time

	// Guards the read-check-reset sequence against concurrent callers
	// within the process.
	mu sync.Mutex
}

// NewQuotaTracker creates a tracker over the preference store.
func NewQuotaTracker(prefs *storage.PreferenceStore) *QuotaTracker {
	return &QuotaTracker{
		prefs: prefs,
		max:   maxRequestsPerDay,
		now:   time.Now,
	}
}

// TryAcquire reports whether a remote call is allowed right now. It does not
// consume quota; callers invoke RecordUsage after a successful remote call
// only. Store failures count as "exhausted" so the caller falls back to the
// local path instead of failing.
func (q *QuotaTracker) TryAcquire() bool {
	q.mu.Lock()
	defer q.mu.Unlock()

	today := q.now().Format(storage.DateFormat)

	lastDate, _, err := q.prefs.Get(prefLastRequestDate)
	if err != nil {
		logging.Warn("quota: reading last request date failed: %v", err)
		return false
	}

	if lastDate != today {
		// New day: reset the counter and allow the first call
		if err := q.prefs.Set(prefRequestCount, "0"); err != nil {
			logging.Warn("quota: resetting counter failed: %v", err)
			return false
		}
		if err := q.prefs.Set(prefLastRequestDate, today); err != nil {
			logging.Warn("quota: storing date marker failed: %v", err)
			return false
		}
		return true
	}

	countStr, _, err := q.prefs.Get(prefRequestCount)
	if err != nil {
		logging.Warn("quota: reading counter failed: %v", err)
		return false
	}

	count, err := strconv.Atoi(countStr)
	if err != nil {
		count = 0
	}
	return count < q.max
}

// RecordUsage increments the persisted counter. Called after a successful
// remote call; failed calls must not consume quota.
func (q *QuotaTracker) RecordUsage() error {
	q.mu.Lock()
	defer q.mu.Unlock()

	countStr, _, err := q.prefs.Get(prefRequestCount)
	if err != nil {
		return err
	}

	count, err := strconv.Atoi(countStr)
	if err != nil {
		count = 0
	}

	return q.prefs.Set(prefRequestCount, strconv.Itoa(count+1))
}
