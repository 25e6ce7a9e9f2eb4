package match

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/foundit/foundit/internal/model"
)

type fakeMatchStore struct {
	saved []model.ItemMatch
	err   error
}

func (f *fakeMatchStore) SaveMatch(_ context.Context, m model.ItemMatch) (int64, error) {
	if f.err != nil {
		return 0, f.err
	}
	f.saved = append(f.saved, m)
	return int64(len(f.saved)), nil
}

type fakeNotifier struct {
	calls   int
	title   string
	message string
	err     error
}

func (f *fakeNotifier) NotifyAdmins(_ context.Context, title, message string) error {
	f.calls++
	f.title = title
	f.message = message
	return f.err
}

func testResults() []Match {
	return []Match{
		{Item: model.Item{ID: 7, Title: "Found wallet"}, Score: 0.85, Type: model.MatchTypeExact},
		{Item: model.Item{ID: 9, Title: "Found purse"}, Score: 0.65, Type: model.MatchTypeSimilar},
	}
}

func TestRecordPersistsMatches(t *testing.T) {
	store := &fakeMatchStore{}
	notifier := &fakeNotifier{}
	recorder := NewRecorder(store, notifier)

	target := model.Item{ID: 3, Title: "Lost wallet"}
	if err := recorder.Record(context.Background(), target, testResults()); err != nil {
		t.Fatalf("Record: %v", err)
	}

	if len(store.saved) != 2 {
		t.Fatalf("expected 2 saved matches, got %d", len(store.saved))
	}
	first := store.saved[0]
	if first.Item1ID != 3 || first.Item2ID != 7 {
		t.Errorf("saved pair = (%d, %d), want (3, 7)", first.Item1ID, first.Item2ID)
	}
	if first.SimilarityScore != 0.85 || first.MatchType != model.MatchTypeExact {
		t.Errorf("saved score/type = %v/%q", first.SimilarityScore, first.MatchType)
	}
}

func TestRecordRaisesOneAggregateNotification(t *testing.T) {
	store := &fakeMatchStore{}
	notifier := &fakeNotifier{}
	recorder := NewRecorder(store, notifier)

	target := model.Item{ID: 3, Title: "Lost wallet"}
	if err := recorder.Record(context.Background(), target, testResults()); err != nil {
		t.Fatalf("Record: %v", err)
	}

	if notifier.calls != 1 {
		t.Fatalf("expected 1 notification, got %d", notifier.calls)
	}
	if !strings.Contains(notifier.title, "Lost wallet") {
		t.Errorf("notification title %q missing item title", notifier.title)
	}
	if !strings.Contains(notifier.message, "2") {
		t.Errorf("notification message %q missing match count", notifier.message)
	}
}

func TestRecordEmptyResults(t *testing.T) {
	store := &fakeMatchStore{}
	notifier := &fakeNotifier{}
	recorder := NewRecorder(store, notifier)

	if err := recorder.Record(context.Background(), model.Item{ID: 3}, nil); err != nil {
		t.Fatalf("Record with no results: %v", err)
	}
	if len(store.saved) != 0 {
		t.Errorf("expected no saved matches, got %d", len(store.saved))
	}
	if notifier.calls != 0 {
		t.Errorf("expected no notification for empty results, got %d", notifier.calls)
	}
}

func TestRecordSaveFailure(t *testing.T) {
	wantErr := errors.New("disk full")
	recorder := NewRecorder(&fakeMatchStore{err: wantErr}, &fakeNotifier{})

	err := recorder.Record(context.Background(), model.Item{ID: 3}, testResults())
	if !errors.Is(err, wantErr) {
		t.Fatalf("expected wrapped save error, got %v", err)
	}
}

func TestRecordNotifyFailureIsErrNotify(t *testing.T) {
	store := &fakeMatchStore{}
	notifier := &fakeNotifier{err: errors.New("smtp down")}
	recorder := NewRecorder(store, notifier)

	err := recorder.Record(context.Background(), model.Item{ID: 3, Title: "Lost wallet"}, testResults())
	if !errors.Is(err, ErrNotify) {
		t.Fatalf("expected ErrNotify, got %v", err)
	}

	// Rows written before the notification failure are kept.
	if len(store.saved) != 2 {
		t.Errorf("expected persisted matches to survive notify failure, got %d", len(store.saved))
	}
}

func TestRecordNilNotifier(t *testing.T) {
	store := &fakeMatchStore{}
	recorder := NewRecorder(store, nil)

	if err := recorder.Record(context.Background(), model.Item{ID: 3}, testResults()); err != nil {
		t.Fatalf("Record with nil notifier: %v", err)
	}
	if len(store.saved) != 2 {
		t.Errorf("expected 2 saved matches, got %d", len(store.saved))
	}
}
