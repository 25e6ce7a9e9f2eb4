package store

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/foundit/foundit/internal/model"
)

// CreateCategory creates a new category.
func CreateCategory(ctx context.Context, db *sql.DB, name, description, icon, color string) (*model.Category, error) {
	result, err := db.ExecContext(ctx,
		`INSERT INTO categories (name, description, icon, color) VALUES (?, ?, ?, ?)`,
		name, description, icon, color,
	)
	if err != nil {
		return nil, fmt.Errorf("creating category: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("getting category id: %w", err)
	}

	return GetCategory(ctx, db, id)
}

// GetCategory returns a category by ID.
func GetCategory(ctx context.Context, db *sql.DB, id int64) (*model.Category, error) {
	c := &model.Category{}
	var description, icon, color sql.NullString
	err := db.QueryRowContext(ctx,
		`SELECT id, name, description, icon, color, created_at FROM categories WHERE id = ?`, id,
	).Scan(&c.ID, &c.Name, &description, &icon, &color, &c.CreatedAt)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("getting category: %w", err)
	}
	c.Description = description.String
	c.Icon = icon.String
	c.Color = color.String
	return c, nil
}

// ListCategories returns all categories ordered by name.
func ListCategories(ctx context.Context, db *sql.DB) ([]model.Category, error) {
	rows, err := db.QueryContext(ctx,
		`SELECT id, name, description, icon, color, created_at FROM categories ORDER BY name`,
	)
	if err != nil {
		return nil, fmt.Errorf("listing categories: %w", err)
	}
	defer rows.Close()

	var categories []model.Category
	for rows.Next() {
		var c model.Category
		var description, icon, color sql.NullString
		if err := rows.Scan(&c.ID, &c.Name, &description, &icon, &color, &c.CreatedAt); err != nil {
			return nil, fmt.Errorf("scanning category: %w", err)
		}
		c.Description = description.String
		c.Icon = icon.String
		c.Color = color.String
		categories = append(categories, c)
	}
	return categories, rows.Err()
}

// UpdateCategory updates a category's metadata.
func UpdateCategory(ctx context.Context, db *sql.DB, id int64, name, description, icon, color string) error {
	_, err := db.ExecContext(ctx,
		`UPDATE categories SET name = ?, description = ?, icon = ?, color = ? WHERE id = ?`,
		name, description, icon, color, id,
	)
	if err != nil {
		return fmt.Errorf("updating category: %w", err)
	}
	return nil
}

// DeleteCategory removes a category. Items keep their category_id pointing at
// the removed row; the join in listings simply yields no name.
func DeleteCategory(ctx context.Context, db *sql.DB, id int64) error {
	_, err := db.ExecContext(ctx, `DELETE FROM categories WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("deleting category: %w", err)
	}
	return nil
}

// defaultCategories are seeded on first run.
var defaultCategories = []model.Category{
	{Name: "Electronics", Description: "Phones, laptops, tablets, etc.", Icon: "fas fa-mobile-alt", Color: "#007bff"},
	{Name: "Jewelry", Description: "Rings, necklaces, watches, etc.", Icon: "fas fa-gem", Color: "#ffc107"},
	{Name: "Clothing", Description: "Shirts, pants, jackets, etc.", Icon: "fas fa-tshirt", Color: "#28a745"},
	{Name: "Documents", Description: "IDs, cards, papers, etc.", Icon: "fas fa-file-alt", Color: "#dc3545"},
	{Name: "Keys", Description: "Car keys, house keys, etc.", Icon: "fas fa-key", Color: "#6c757d"},
	{Name: "Books", Description: "Textbooks, notebooks, etc.", Icon: "fas fa-book", Color: "#17a2b8"},
	{Name: "Sports", Description: "Sports equipment, gym items, etc.", Icon: "fas fa-futbol", Color: "#fd7e14"},
	{Name: "Other", Description: "Miscellaneous items", Icon: "fas fa-box", Color: "#6f42c1"},
}

// SeedCategories inserts the default categories if none exist yet.
func SeedCategories(ctx context.Context, db *sql.DB) error {
	var count int
	if err := db.QueryRowContext(ctx, `SELECT COUNT(*) FROM categories`).Scan(&count); err != nil {
		return fmt.Errorf("counting categories: %w", err)
	}
	if count > 0 {
		return nil
	}

	for _, c := range defaultCategories {
		if _, err := CreateCategory(ctx, db, c.Name, c.Description, c.Icon, c.Color); err != nil {
			return fmt.Errorf("seeding category %q: %w", c.Name, err)
		}
	}
	return nil
}
