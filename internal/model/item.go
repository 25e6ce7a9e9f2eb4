package model

import (
	"strings"
	"time"
)

// Item represents a lost-or-found report.
type Item struct {
	ID          int64  `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description,omitempty"`
	CategoryID  int64  `json:"category_id,omitempty"`
	Status      string `json:"status"`
	Location    string `json:"location,omitempty"`
	ContactInfo string `json:"contact_info,omitempty"`

	// Structured attributes filled in by the reporter.
	Brand     string `json:"brand,omitempty"`
	Model     string `json:"model,omitempty"`
	Color     string `json:"color,omitempty"`
	Size      string `json:"size,omitempty"`
	Material  string `json:"material,omitempty"`
	Condition string `json:"condition,omitempty"`

	// Keywords holds the normalized tokens extracted from title and
	// description at creation/edit time, comma-joined for storage.
	Keywords string `json:"keywords,omitempty"`

	Approved  bool      `json:"approved"`
	ImageMime string    `json:"image_mime,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	// Joined fields (not always populated).
	CategoryName string `json:"category_name,omitempty"`
}

// Item statuses.
const (
	ItemStatusFound    = "found"
	ItemStatusLost     = "lost"
	ItemStatusClaimed  = "claimed"
	ItemStatusArchived = "archived"
)

// ValidItemStatus reports whether status is one of the known item statuses.
func ValidItemStatus(status string) bool {
	switch status {
	case ItemStatusFound, ItemStatusLost, ItemStatusClaimed, ItemStatusArchived:
		return true
	}
	return false
}

// ActiveStatus reports whether items with this status take part in matching.
// Only found and lost reports are active; claimed and archived ones are not.
func ActiveStatus(status string) bool {
	return status == ItemStatusFound || status == ItemStatusLost
}

// OppositeStatus returns the status a candidate must have to match an item
// with the given status: lost reports match found ones and vice versa.
func OppositeStatus(status string) string {
	if status == ItemStatusFound {
		return ItemStatusLost
	}
	return ItemStatusFound
}

// KeywordList splits the stored comma-joined keywords back into tokens.
func (i Item) KeywordList() []string {
	if i.Keywords == "" {
		return nil
	}
	return strings.Split(i.Keywords, ",")
}
