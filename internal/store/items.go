package store

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/erazemk/najdeno/internal/model"
)

const itemColumns = `id, title, status, location, description, contact_name,
	contact_email, image_url, owner_id, owner_email, created_at, updated_at`

// ItemFields carries the mutable fields of an item for create and update.
type ItemFields struct {
	Title        string
	Status       string
	Location     string
	Description  string
	ContactName  string
	ContactEmail string
	ImageURL     string
}

// CreateItem creates a new item and returns the stored record. The store
// assigns the id and sets created_at == updated_at.
func CreateItem(ctx context.Context, db *sql.DB, fields ItemFields, ownerID *string, ownerEmail string) (*model.Item, error) {
	id := uuid.NewString()
	now := time.Now().UTC()

	status := fields.Status
	if !model.ValidItemStatus(status) {
		status = model.ItemStatusLost
	}

	_, err := db.ExecContext(ctx,
		`INSERT INTO items (id, title, status, location, description, contact_name,
		 contact_email, image_url, owner_id, owner_email, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		id, fields.Title, status, fields.Location, fields.Description, fields.ContactName,
		fields.ContactEmail, fields.ImageURL, ownerID, ownerEmail, now.UnixNano(), now.UnixNano(),
	)
	if err != nil {
		return nil, fmt.Errorf("creating item: %w", err)
	}

	return GetItem(ctx, db, id)
}

// GetItem returns an item by ID, or nil if it doesn't exist. A malformed id
// fails with ErrInvalidID instead of reading the database.
func GetItem(ctx context.Context, db *sql.DB, id string) (*model.Item, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, ErrInvalidID
	}

	row := db.QueryRowContext(ctx,
		`SELECT `+itemColumns+` FROM items WHERE id = ?`, id,
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

// ListRecentItems returns up to limit items, newest first. Ties on created_at
// break on id descending so the ordering is stable.
func ListRecentItems(ctx context.Context, db *sql.DB, limit int) ([]model.Item, error) {
	rows, err := db.QueryContext(ctx,
		`SELECT `+itemColumns+` FROM items ORDER BY created_at DESC, id DESC LIMIT ?`, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("listing items: %w", err)
	}
	defer rows.Close()

	return scanItems(rows)
}

// SearchItems returns up to limit items matching query and statusFilter,
// newest first. A non-empty query must appear as a case-insensitive substring
// of the title, description or location; a non-empty statusFilter must equal
// the status exactly. Both empty yields the unfiltered recent set.
func SearchItems(ctx context.Context, db *sql.DB, query, statusFilter string, limit int) ([]model.Item, error) {
	var conds []string
	var args []any

	if query != "" {
		pattern := "%" + escapeLike(strings.ToLower(query)) + "%"
		conds = append(conds,
			`(LOWER(title) LIKE ? ESCAPE '\' OR LOWER(description) LIKE ? ESCAPE '\' OR LOWER(location) LIKE ? ESCAPE '\')`)
		args = append(args, pattern, pattern, pattern)
	}
	if statusFilter != "" {
		conds = append(conds, `status = ?`)
		args = append(args, statusFilter)
	}

	q := `SELECT ` + itemColumns + ` FROM items`
	if len(conds) > 0 {
		q += ` WHERE ` + strings.Join(conds, " AND ")
	}
	q += ` ORDER BY created_at DESC, id DESC LIMIT ?`
	args = append(args, limit)

	rows, err := db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, fmt.Errorf("searching items: %w", err)
	}
	defer rows.Close()

	return scanItems(rows)
}

// UpdateItem updates an item's mutable fields and refreshes updated_at.
// Fails with ErrNotFound if the id doesn't resolve to an existing item.
func UpdateItem(ctx context.Context, db *sql.DB, id string, fields ItemFields) error {
	if _, err := uuid.Parse(id); err != nil {
		return ErrInvalidID
	}

	result, err := db.ExecContext(ctx,
		`UPDATE items SET title = ?, status = ?, location = ?, description = ?,
		 contact_name = ?, contact_email = ?, image_url = ?, updated_at = ?
		 WHERE id = ?`,
		fields.Title, fields.Status, fields.Location, fields.Description,
		fields.ContactName, fields.ContactEmail, fields.ImageURL,
		time.Now().UTC().UnixNano(), id,
	)
	if err != nil {
		return fmt.Errorf("updating item: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("getting affected rows: %w", err)
	}
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}

// escapeLike escapes the LIKE metacharacters so the query is matched as a
// literal substring.
func escapeLike(s string) string {
	s = strings.ReplaceAll(s, `\`, `\\`)
	s = strings.ReplaceAll(s, `%`, `\%`)
	s = strings.ReplaceAll(s, `_`, `\_`)
	return s
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanItem(row rowScanner) (*model.Item, error) {
	item := &model.Item{}
	var description, contactName, imageURL, ownerID, ownerEmail sql.NullString
	var createdAt, updatedAt int64

	err := row.Scan(&item.ID, &item.Title, &item.Status, &item.Location,
		&description, &contactName, &item.ContactEmail, &imageURL,
		&ownerID, &ownerEmail, &createdAt, &updatedAt)
	if err != nil {
		return nil, err
	}

	item.Description = description.String
	item.ContactName = contactName.String
	item.ImageURL = imageURL.String
	item.OwnerEmail = ownerEmail.String
	if ownerID.Valid {
		item.OwnerID = &ownerID.String
	}
	item.CreatedAt = time.Unix(0, createdAt).UTC()
	item.UpdatedAt = time.Unix(0, updatedAt).UTC()
	return item, nil
}

func scanItems(rows *sql.Rows) ([]model.Item, error) {
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
