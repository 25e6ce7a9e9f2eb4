package store

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/foundit/foundit/internal/match"
	"github.com/foundit/foundit/internal/model"
)

const itemColumns = `i.id, i.title, i.description, i.category_id, i.status, i.location,
	i.contact_info, i.brand, i.model, i.color, i.size, i.material, i.condition,
	i.keywords, i.is_approved, i.image_mime, i.created_at, i.updated_at`

// ItemFilter narrows ListItems results. Zero values mean "no filter".
type ItemFilter struct {
	Search       string
	CategoryID   int64
	Status       string
	ApprovedOnly bool
	Sort         string // newest (default), oldest, title
}

// CreateItem creates a new item. Keywords are extracted from title and
// description at creation time; they are not touched again by matching.
func CreateItem(ctx context.Context, db *sql.DB, item model.Item) (*model.Item, error) {
	keywords := match.ExtractKeywords(match.KeywordText(item.Title, item.Description))

	result, err := db.ExecContext(ctx,
		`INSERT INTO items (title, description, category_id, status, location, contact_info,
		                    brand, model, color, size, material, condition, keywords, is_approved)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		item.Title, item.Description, nullableID(item.CategoryID), item.Status, item.Location,
		item.ContactInfo, item.Brand, item.Model, item.Color, item.Size, item.Material,
		item.Condition, strings.Join(keywords, ","), item.Approved,
	)
	if err != nil {
		return nil, fmt.Errorf("creating item: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("getting item id: %w", err)
	}

	return GetItem(ctx, db, id)
}

// GetItem returns an item by ID.
func GetItem(ctx context.Context, db *sql.DB, id int64) (*model.Item, error) {
	row := db.QueryRowContext(ctx,
		`SELECT `+itemColumns+` FROM items i WHERE i.id = ?`, id,
	)
	item, err := scanItem(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("getting item: %w", err)
	}
	return item, nil
}

// ListItems returns items matching the filter.
func ListItems(ctx context.Context, db *sql.DB, filter ItemFilter) ([]model.Item, error) {
	query := `SELECT ` + itemColumns + ` FROM items i WHERE 1=1`
	var args []any

	if filter.ApprovedOnly {
		query += ` AND i.is_approved = 1`
	}
	if filter.Status != "" {
		query += ` AND i.status = ?`
		args = append(args, filter.Status)
	}
	if filter.CategoryID != 0 {
		query += ` AND i.category_id = ?`
		args = append(args, filter.CategoryID)
	}
	if filter.Search != "" {
		query += ` AND (i.title LIKE ? OR i.description LIKE ? OR i.location LIKE ?
		           OR i.brand LIKE ? OR i.model LIKE ?)`
		pattern := "%" + filter.Search + "%"
		for range 5 {
			args = append(args, pattern)
		}
	}

	switch filter.Sort {
	case "oldest":
		query += ` ORDER BY i.created_at ASC`
	case "title":
		query += ` ORDER BY i.title ASC`
	default:
		query += ` ORDER BY i.created_at DESC`
	}

	rows, err := db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("listing items: %w", err)
	}
	defer rows.Close()

	var items []model.Item
	for rows.Next() {
		item, err := scanItem(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning item: %w", err)
		}
		items = append(items, *item)
	}
	return items, rows.Err()
}

// UpdateItem updates an item's fields and recomputes its keywords from the
// new title and description.
func UpdateItem(ctx context.Context, db *sql.DB, item model.Item) error {
	keywords := match.ExtractKeywords(match.KeywordText(item.Title, item.Description))

	_, err := db.ExecContext(ctx,
		`UPDATE items SET title = ?, description = ?, category_id = ?, status = ?, location = ?,
		        contact_info = ?, brand = ?, model = ?, color = ?, size = ?, material = ?,
		        condition = ?, keywords = ?, is_approved = ?, updated_at = CURRENT_TIMESTAMP
		 WHERE id = ?`,
		item.Title, item.Description, nullableID(item.CategoryID), item.Status, item.Location,
		item.ContactInfo, item.Brand, item.Model, item.Color, item.Size, item.Material,
		item.Condition, strings.Join(keywords, ","), item.Approved, item.ID,
	)
	if err != nil {
		return fmt.Errorf("updating item: %w", err)
	}
	return nil
}

// SetItemApproval flips an item's approval flag.
func SetItemApproval(ctx context.Context, db *sql.DB, id int64, approved bool) error {
	_, err := db.ExecContext(ctx,
		`UPDATE items SET is_approved = ?, updated_at = CURRENT_TIMESTAMP WHERE id = ?`,
		approved, id,
	)
	if err != nil {
		return fmt.Errorf("setting item approval: %w", err)
	}
	return nil
}

// SetItemStatus updates only an item's status.
func SetItemStatus(ctx context.Context, db *sql.DB, id int64, status string) error {
	_, err := db.ExecContext(ctx,
		`UPDATE items SET status = ?, updated_at = CURRENT_TIMESTAMP WHERE id = ?`,
		status, id,
	)
	if err != nil {
		return fmt.Errorf("setting item status: %w", err)
	}
	return nil
}

// DeleteItem removes an item and its dependent match and claim rows.
func DeleteItem(ctx context.Context, db *sql.DB, id int64) error {
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("starting delete: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx,
		`DELETE FROM item_matches WHERE item1_id = ? OR item2_id = ?`, id, id); err != nil {
		return fmt.Errorf("deleting item matches: %w", err)
	}
	if _, err := tx.ExecContext(ctx, `DELETE FROM claims WHERE item_id = ?`, id); err != nil {
		return fmt.Errorf("deleting item claims: %w", err)
	}
	if _, err := tx.ExecContext(ctx, `DELETE FROM items WHERE id = ?`, id); err != nil {
		return fmt.Errorf("deleting item: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing delete: %w", err)
	}
	return nil
}

// SetItemImage sets an item's image data.
func SetItemImage(ctx context.Context, db *sql.DB, id int64, image []byte, mime string) error {
	_, err := db.ExecContext(ctx,
		`UPDATE items SET image = ?, image_mime = ?, updated_at = CURRENT_TIMESTAMP WHERE id = ?`,
		image, mime, id,
	)
	if err != nil {
		return fmt.Errorf("setting item image: %w", err)
	}
	return nil
}

// GetItemImage returns an item's image data and MIME type.
func GetItemImage(ctx context.Context, db *sql.DB, id int64) ([]byte, string, error) {
	var image []byte
	var mime sql.NullString
	err := db.QueryRowContext(ctx,
		`SELECT image, image_mime FROM items WHERE id = ?`, id,
	).Scan(&image, &mime)
	if err == sql.ErrNoRows {
		return nil, "", nil
	}
	if err != nil {
		return nil, "", fmt.Errorf("getting item image: %w", err)
	}
	return image, mime.String, nil
}

// CountItemsByStatus returns the number of items with the given status, or
// all items when status is empty.
func CountItemsByStatus(ctx context.Context, db *sql.DB, status string) (int, error) {
	var count int
	var err error
	if status == "" {
		err = db.QueryRowContext(ctx, `SELECT COUNT(*) FROM items`).Scan(&count)
	} else {
		err = db.QueryRowContext(ctx, `SELECT COUNT(*) FROM items WHERE status = ?`, status).Scan(&count)
	}
	if err != nil {
		return 0, fmt.Errorf("counting items: %w", err)
	}
	return count, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanItem(row rowScanner) (*model.Item, error) {
	item := &model.Item{}
	var description, location, contactInfo, brand, mdl, color, size, material,
		condition, keywords, imageMime sql.NullString
	var categoryID sql.NullInt64

	err := row.Scan(&item.ID, &item.Title, &description, &categoryID, &item.Status,
		&location, &contactInfo, &brand, &mdl, &color, &size, &material, &condition,
		&keywords, &item.Approved, &imageMime, &item.CreatedAt, &item.UpdatedAt)
	if err != nil {
		return nil, err
	}

	item.Description = description.String
	item.CategoryID = categoryID.Int64
	item.Location = location.String
	item.ContactInfo = contactInfo.String
	item.Brand = brand.String
	item.Model = mdl.String
	item.Color = color.String
	item.Size = size.String
	item.Material = material.String
	item.Condition = condition.String
	item.Keywords = keywords.String
	item.ImageMime = imageMime.String
	return item, nil
}

// nullableID maps a zero id to NULL so optional foreign keys stay unset.
func nullableID(id int64) any {
	if id == 0 {
		return nil
	}
	return id
}
