package match

import (
	"context"
	"errors"
	"fmt"

	"github.com/foundit/foundit/internal/model"
)

// ErrNotify reports that match rows were persisted but notifying the
// administrators failed. Callers may treat it as a non-fatal warning; the
// persisted rows are not rolled back.
var ErrNotify = errors.New("match notification failed")

// MatchStore persists discovered matches.
type MatchStore interface {
	SaveMatch(ctx context.Context, m model.ItemMatch) (int64, error)
}

// Notifier raises an event for every administrator account. Delivery is
// fire-and-forget from the recorder's point of view.
type Notifier interface {
	NotifyAdmins(ctx context.Context, title, message string) error
}

// Recorder translates finder output into persisted ItemMatch rows and one
// aggregate admin notification. It performs no scoring itself.
type Recorder struct {
	matches  MatchStore
	notifier Notifier
}

// NewRecorder returns a recorder writing to the given store and notifier.
// The notifier may be nil, in which case no notifications are raised.
func NewRecorder(matches MatchStore, notifier Notifier) *Recorder {
	return &Recorder{matches: matches, notifier: notifier}
}

// Record persists one ItemMatch per result (item1 = target, item2 =
// candidate) and, when any matches were found, raises a single aggregate
// notification per admin with the target title and the match count. A save
// failure aborts immediately; rows already written stay. A notification
// failure is returned wrapped in ErrNotify after all rows are written.
func (r *Recorder) Record(ctx context.Context, item model.Item, results []Match) error {
	for _, result := range results {
		m := model.ItemMatch{
			Item1ID:         item.ID,
			Item2ID:         result.Item.ID,
			SimilarityScore: result.Score,
			MatchType:       result.Type,
		}
		if _, err := r.matches.SaveMatch(ctx, m); err != nil {
			return fmt.Errorf("saving match for items %d/%d: %w", item.ID, result.Item.ID, err)
		}
	}

	if len(results) == 0 || r.notifier == nil {
		return nil
	}

	title := fmt.Sprintf("New Match Found - %s", item.Title)
	message := fmt.Sprintf("Found %d potential match(es) for %q. Check the matches section.",
		len(results), item.Title)
	if err := r.notifier.NotifyAdmins(ctx, title, message); err != nil {
		return fmt.Errorf("%w: %v", ErrNotify, err)
	}
	return nil
}
