package store

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"

	"github.com/foundit/foundit/internal/model"
)

// CreateClaim files a new ownership claim against an item. The generated
// reference code is returned to the claimant for status lookups.
func CreateClaim(ctx context.Context, db *sql.DB, claim model.Claim) (*model.Claim, error) {
	reference := uuid.New().String()

	result, err := db.ExecContext(ctx,
		`INSERT INTO claims (item_id, reference, name, email, phone, description)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		claim.ItemID, reference, claim.Name, claim.Email, claim.Phone, claim.Description,
	)
	if err != nil {
		return nil, fmt.Errorf("creating claim: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("getting claim id: %w", err)
	}

	return GetClaim(ctx, db, id)
}

// GetClaim returns a claim by ID.
func GetClaim(ctx context.Context, db *sql.DB, id int64) (*model.Claim, error) {
	row := db.QueryRowContext(ctx,
		`SELECT c.id, c.item_id, c.reference, c.name, c.email, c.phone, c.description,
		        c.status, c.created_at, c.decided_at, i.title
		 FROM claims c JOIN items i ON i.id = c.item_id
		 WHERE c.id = ?`, id,
	)
	return scanClaim(row)
}

// GetClaimByReference returns a claim by its public reference code.
func GetClaimByReference(ctx context.Context, db *sql.DB, reference string) (*model.Claim, error) {
	row := db.QueryRowContext(ctx,
		`SELECT c.id, c.item_id, c.reference, c.name, c.email, c.phone, c.description,
		        c.status, c.created_at, c.decided_at, i.title
		 FROM claims c JOIN items i ON i.id = c.item_id
		 WHERE c.reference = ?`, reference,
	)
	return scanClaim(row)
}

// ListClaims returns claims, optionally filtered by status, newest first.
func ListClaims(ctx context.Context, db *sql.DB, status string) ([]model.Claim, error) {
	query := `SELECT c.id, c.item_id, c.reference, c.name, c.email, c.phone, c.description,
	                 c.status, c.created_at, c.decided_at, i.title
	          FROM claims c JOIN items i ON i.id = c.item_id`
	var args []any
	if status != "" {
		query += ` WHERE c.status = ?`
		args = append(args, status)
	}
	query += ` ORDER BY c.created_at DESC`

	rows, err := db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("listing claims: %w", err)
	}
	defer rows.Close()

	var claims []model.Claim
	for rows.Next() {
		claim, err := scanClaim(rows)
		if err != nil {
			return nil, err
		}
		claims = append(claims, *claim)
	}
	return claims, rows.Err()
}

// ApproveClaim marks a claim approved and transitions the claimed item to
// the claimed status in one transaction.
func ApproveClaim(ctx context.Context, db *sql.DB, id int64) error {
	claim, err := GetClaim(ctx, db, id)
	if err != nil {
		return err
	}
	if claim == nil {
		return fmt.Errorf("claim %d not found", id)
	}

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("starting claim approval: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx,
		`UPDATE claims SET status = ?, decided_at = CURRENT_TIMESTAMP WHERE id = ?`,
		model.ClaimStatusApproved, id); err != nil {
		return fmt.Errorf("approving claim: %w", err)
	}
	if _, err := tx.ExecContext(ctx,
		`UPDATE items SET status = ?, updated_at = CURRENT_TIMESTAMP WHERE id = ?`,
		model.ItemStatusClaimed, claim.ItemID); err != nil {
		return fmt.Errorf("marking item claimed: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing claim approval: %w", err)
	}
	return nil
}

// RejectClaim marks a claim rejected; the item is untouched.
func RejectClaim(ctx context.Context, db *sql.DB, id int64) error {
	_, err := db.ExecContext(ctx,
		`UPDATE claims SET status = ?, decided_at = CURRENT_TIMESTAMP WHERE id = ?`,
		model.ClaimStatusRejected, id,
	)
	if err != nil {
		return fmt.Errorf("rejecting claim: %w", err)
	}
	return nil
}

func scanClaim(row rowScanner) (*model.Claim, error) {
	c := &model.Claim{}
	var phone, description sql.NullString
	err := row.Scan(&c.ID, &c.ItemID, &c.Reference, &c.Name, &c.Email, &phone,
		&description, &c.Status, &c.CreatedAt, &c.DecidedAt, &c.ItemTitle)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("scanning claim: %w", err)
	}
	c.Phone = phone.String
	c.Description = description.String
	return c, nil
}
