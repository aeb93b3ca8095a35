package store

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/refurbtrack/refurbtrack/internal/model"
)

func scanPhoto(row rowScanner) (*model.Photo, error) {
	var photo model.Photo
	var storageKey sql.NullString
	err := row.Scan(&photo.ID, &photo.ItemID, &photo.Type, &photo.URL,
		&storageKey, &photo.SortOrder, &photo.CreatedAt)
	if err != nil {
		return nil, err
	}
	photo.StorageKey = storageKey.String
	return &photo, nil
}

// GetPhotos returns an item's photos in display order.
func GetPhotos(ctx context.Context, db *sql.DB, itemID int64) ([]model.Photo, error) {
	rows, err := db.QueryContext(ctx,
		`SELECT id, item_id, type, url, storage_key, sort_order, created_at
		 FROM photos WHERE item_id = ? ORDER BY sort_order, id`, itemID)
	if err != nil {
		return nil, fmt.Errorf("listing photos: %w", err)
	}
	defer rows.Close()

	photos := []model.Photo{}
	for rows.Next() {
		photo, err := scanPhoto(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning photo: %w", err)
		}
		photos = append(photos, *photo)
	}
	return photos, rows.Err()
}

// AddPhoto attaches a photo to an item. A zero sort order places it after
// the item's current photos.
func AddPhoto(ctx context.Context, db *sql.DB, photo *model.Photo) (*model.Photo, error) {
	if photo.SortOrder == 0 {
		err := db.QueryRowContext(ctx,
			`SELECT COALESCE(MAX(sort_order) + 1, 0) FROM photos WHERE item_id = ?`,
			photo.ItemID,
		).Scan(&photo.SortOrder)
		if err != nil {
			return nil, fmt.Errorf("computing photo sort order: %w", err)
		}
	}

	result, err := db.ExecContext(ctx,
		`INSERT INTO photos (item_id, type, url, storage_key, sort_order)
		 VALUES (?, ?, ?, ?, ?)`,
		photo.ItemID, photo.Type, photo.URL, nullable(photo.StorageKey), photo.SortOrder,
	)
	if err != nil {
		return nil, fmt.Errorf("adding photo: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("getting photo id: %w", err)
	}

	row := db.QueryRowContext(ctx,
		`SELECT id, item_id, type, url, storage_key, sort_order, created_at
		 FROM photos WHERE id = ?`, id)
	return scanPhoto(row)
}

// DeletePhoto removes a single photo.
func DeletePhoto(ctx context.Context, db *sql.DB, id int64) error {
	result, err := db.ExecContext(ctx, `DELETE FROM photos WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("deleting photo: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("checking delete result: %w", err)
	}
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}

// ReorderPhotos reassigns sequential sort orders following the given id
// list, so a later read returns the photos in exactly this order. Ids
// that don't belong to the item fail the whole reorder.
func ReorderPhotos(ctx context.Context, db *sql.DB, itemID int64, ids []int64) error {
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	for i, id := range ids {
		result, err := tx.ExecContext(ctx,
			`UPDATE photos SET sort_order = ? WHERE id = ? AND item_id = ?`,
			i, id, itemID)
		if err != nil {
			return fmt.Errorf("reordering photo %d: %w", id, err)
		}
		affected, err := result.RowsAffected()
		if err != nil {
			return fmt.Errorf("checking reorder result: %w", err)
		}
		if affected == 0 {
			return ErrNotFound
		}
	}

	return tx.Commit()
}
