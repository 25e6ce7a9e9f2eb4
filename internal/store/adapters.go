package store

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/foundit/foundit/internal/model"
)

// ItemSource adapts the store to the matching engine's candidate query.
type ItemSource struct {
	DB *sql.DB
}

// ActiveItemsByStatus returns approved items with the given status in
// creation order, oldest first, so match ranking ties are broken by age.
func (s *ItemSource) ActiveItemsByStatus(ctx context.Context, status string) ([]model.Item, error) {
	return ListItems(ctx, s.DB, ItemFilter{
		Status:       status,
		ApprovedOnly: true,
		Sort:         "oldest",
	})
}

// MatchWriter adapts the store to the matching engine's persistence
// contract. With Dedup set, a pair that already has a match row (in either
// orientation) is skipped instead of appended.
type MatchWriter struct {
	DB    *sql.DB
	Dedup bool
}

// SaveMatch persists one discovered match.
func (w *MatchWriter) SaveMatch(ctx context.Context, m model.ItemMatch) (int64, error) {
	if w.Dedup {
		exists, err := MatchPairExists(ctx, w.DB, m.Item1ID, m.Item2ID)
		if err != nil {
			return 0, err
		}
		if exists {
			return 0, nil
		}
	}
	return SaveMatch(ctx, w.DB, m)
}

// AdminNotifier raises in-app notifications for every administrator account.
type AdminNotifier struct {
	DB *sql.DB
}

// NotifyAdmins creates one match notification row per admin user.
func (n *AdminNotifier) NotifyAdmins(ctx context.Context, title, message string) error {
	admins, err := ListUsersByRole(ctx, n.DB, model.RoleAdmin)
	if err != nil {
		return fmt.Errorf("listing admins: %w", err)
	}

	for _, admin := range admins {
		if _, err := CreateNotification(ctx, n.DB, admin.ID, title, message, model.NotificationKindMatch); err != nil {
			return fmt.Errorf("notifying admin %d: %w", admin.ID, err)
		}
	}
	return nil
}
