package store

import (
	"context"
	"database/sql"
	"fmt"
	"sort"
	"strings"

	"github.com/refurbtrack/refurbtrack/internal/model"
)

// ItemFilter narrows ListItems results. Status accepts a concrete status,
// the pseudo-filters "active" and "archived", or "all"/empty for no
// filtering. Search matches sku, brand, model and category substrings.
type ItemFilter struct {
	Status string
	Search string
	Limit  int
	Offset int
}

// itemColumns is the canonical SELECT list; scanItem must match it.
const itemColumns = `id, sku, status, intake_date, source, source_location, dropoff_type,
	category, power_test, intake_notes, brand, model, cpu, ram, storage_type, storage_size,
	battery_health, charger_included, screen_resolution, os, gpu, bench_tested, test_tool,
	magic_octopus_run, bench_notes, test_notes, data_destruction, ebay_category_id,
	ebay_condition_id, listing_format, list_price, research_price, quantity, upc,
	storage_location, listing_title, listing_description, source_vendor,
	intake_confirmed_by, processing_confirmed_by, listing_confirmed_by, review_confirmed_by,
	is_drafted, is_reviewed, is_template_drafted, is_second_review_completed,
	created_by, reviewer_id, created_at, updated_at`

type rowScanner interface {
	Scan(dest ...any) error
}

func scanItem(row rowScanner) (*model.Item, error) {
	var (
		item model.Item

		source, sourceLocation, dropoffType, category, intakeNotes         sql.NullString
		brand, mdl, cpu, ram, storageType, storageSize                     sql.NullString
		batteryHealth, chargerIncluded, screenResolution, osName, gpu      sql.NullString
		testTool, benchNotes, testNotes                                    sql.NullString
		ebayCategoryID, ebayConditionID, listingFormat                     sql.NullString
		listPrice, researchPrice, upc, storageLocation                     sql.NullString
		listingTitle, listingDescription, sourceVendor                     sql.NullString
		powerTest, benchTested, dataDestruction                            sql.NullBool
		intakeConfBy, processingConfBy, listingConfBy, reviewConfBy        sql.NullInt64
		createdBy, reviewerID                                              sql.NullInt64
	)

	err := row.Scan(
		&item.ID, &item.SKU, &item.Status, &item.IntakeDate,
		&source, &sourceLocation, &dropoffType, &category, &powerTest, &intakeNotes,
		&brand, &mdl, &cpu, &ram, &storageType, &storageSize,
		&batteryHealth, &chargerIncluded, &screenResolution, &osName, &gpu,
		&benchTested, &testTool, &item.MagicOctopusRun, &benchNotes, &testNotes, &dataDestruction,
		&ebayCategoryID, &ebayConditionID, &listingFormat, &listPrice, &researchPrice,
		&item.Quantity, &upc, &storageLocation, &listingTitle, &listingDescription, &sourceVendor,
		&intakeConfBy, &processingConfBy, &listingConfBy, &reviewConfBy,
		&item.IsDrafted, &item.IsReviewed, &item.IsTemplateDrafted, &item.IsSecondReviewCompleted,
		&createdBy, &reviewerID, &item.CreatedAt, &item.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	item.Source = source.String
	item.SourceLocation = sourceLocation.String
	item.DropoffType = dropoffType.String
	item.Category = category.String
	item.IntakeNotes = intakeNotes.String
	item.Brand = brand.String
	item.Model = mdl.String
	item.CPU = cpu.String
	item.RAM = ram.String
	item.StorageType = storageType.String
	item.StorageSize = storageSize.String
	item.BatteryHealth = batteryHealth.String
	item.ChargerIncluded = chargerIncluded.String
	item.ScreenResolution = screenResolution.String
	item.OS = osName.String
	item.GPU = gpu.String
	item.TestTool = testTool.String
	item.BenchNotes = benchNotes.String
	item.TestNotes = testNotes.String
	item.EbayCategoryID = ebayCategoryID.String
	item.EbayConditionID = ebayConditionID.String
	item.ListingFormat = listingFormat.String
	item.ListPrice = listPrice.String
	item.ResearchPrice = researchPrice.String
	item.UPC = upc.String
	item.StorageLocation = storageLocation.String
	item.ListingTitle = listingTitle.String
	item.ListingDescription = listingDescription.String
	item.SourceVendor = sourceVendor.String
	item.PowerTest = nullBool(powerTest)
	item.BenchTested = nullBool(benchTested)
	item.DataDestruction = nullBool(dataDestruction)
	item.IntakeConfirmedBy = nullInt64(intakeConfBy)
	item.ProcessingConfirmedBy = nullInt64(processingConfBy)
	item.ListingConfirmedBy = nullInt64(listingConfBy)
	item.ReviewConfirmedBy = nullInt64(reviewConfBy)
	item.CreatedBy = nullInt64(createdBy)
	item.ReviewerID = nullInt64(reviewerID)

	return &item, nil
}

func nullBool(v sql.NullBool) *bool {
	if !v.Valid {
		return nil
	}
	b := v.Bool
	return &b
}

func nullInt64(v sql.NullInt64) *int64 {
	if !v.Valid {
		return nil
	}
	n := v.Int64
	return &n
}

// nullable converts an empty string to NULL for optional text columns.
func nullable(s string) any {
	if s == "" {
		return nil
	}
	return s
}

func isUniqueViolation(err error) bool {
	return err != nil && strings.Contains(err.Error(), "UNIQUE constraint failed")
}

// CreateItem inserts a new item with the given SKU and the field map
// produced by ParseItemUpdates. Omitted fields fall back to the schema
// defaults (status intake, quantity 1, intake date now). A SKU collision
// returns ErrDuplicateSKU.
func CreateItem(ctx context.Context, db *sql.DB, sku string, fields map[string]any, createdBy *int64) (*model.ItemWithPhotos, error) {
	columns := []string{"sku"}
	args := []any{sku}

	names := make([]string, 0, len(fields))
	for col := range fields {
		if col == "sku" {
			continue
		}
		names = append(names, col)
	}
	sort.Strings(names)
	for _, col := range names {
		columns = append(columns, col)
		args = append(args, fields[col])
	}

	if createdBy != nil {
		columns = append(columns, "created_by")
		args = append(args, *createdBy)
	}

	placeholders := strings.Repeat("?, ", len(columns)-1) + "?"
	result, err := db.ExecContext(ctx,
		`INSERT INTO items (`+strings.Join(columns, ", ")+`) VALUES (`+placeholders+`)`,
		args...)
	if err != nil {
		if isUniqueViolation(err) {
			return nil, ErrDuplicateSKU
		}
		return nil, fmt.Errorf("creating item: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("getting item id: %w", err)
	}

	return GetItem(ctx, db, id)
}

// GetItem returns an item with its photos, or nil if it doesn't exist.
func GetItem(ctx context.Context, db *sql.DB, id int64) (*model.ItemWithPhotos, error) {
	row := db.QueryRowContext(ctx,
		`SELECT `+itemColumns+` FROM items WHERE id = ?`, id)

	item, err := scanItem(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("getting item: %w", err)
	}

	photos, err := GetPhotos(ctx, db, id)
	if err != nil {
		return nil, err
	}

	return &model.ItemWithPhotos{Item: *item, Photos: photos}, nil
}

// GetItemBySKU returns an item by SKU (without photos), or nil.
func GetItemBySKU(ctx context.Context, db *sql.DB, sku string) (*model.Item, error) {
	row := db.QueryRowContext(ctx,
		`SELECT `+itemColumns+` FROM items WHERE sku = ?`, sku)

	item, err := scanItem(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("getting item by sku: %w", err)
	}
	return item, nil
}

// ListItems returns items matching the filter, newest intake first, with
// photos attached in sort order.
func ListItems(ctx context.Context, db *sql.DB, filter ItemFilter) ([]model.ItemWithPhotos, error) {
	var where []string
	var args []any

	switch filter.Status {
	case "", "all":
		// No status filter.
	case "active":
		where = append(where, `status NOT IN (?, ?, ?)`)
		args = append(args, model.StatusListed, model.StatusSold, model.StatusScrap)
	case "archived":
		where = append(where, `status IN (?, ?, ?)`)
		args = append(args, model.StatusListed, model.StatusSold, model.StatusScrap)
	default:
		where = append(where, `status = ?`)
		args = append(args, filter.Status)
	}

	if filter.Search != "" {
		pattern := "%" + strings.ToLower(filter.Search) + "%"
		where = append(where,
			`(LOWER(sku) LIKE ? OR LOWER(COALESCE(brand, '')) LIKE ?
			  OR LOWER(COALESCE(model, '')) LIKE ? OR LOWER(COALESCE(category, '')) LIKE ?)`)
		args = append(args, pattern, pattern, pattern, pattern)
	}

	query := `SELECT ` + itemColumns + ` FROM items`
	if len(where) > 0 {
		query += ` WHERE ` + strings.Join(where, ` AND `)
	}
	query += ` ORDER BY intake_date DESC, id DESC`

	if filter.Limit > 0 {
		query += ` LIMIT ?`
		args = append(args, filter.Limit)
		if filter.Offset > 0 {
			query += ` OFFSET ?`
			args = append(args, filter.Offset)
		}
	} else if filter.Offset > 0 {
		// SQLite requires a LIMIT clause to use OFFSET.
		query += ` LIMIT -1 OFFSET ?`
		args = append(args, filter.Offset)
	}

	rows, err := db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("listing items: %w", err)
	}
	defer rows.Close()

	var items []model.ItemWithPhotos
	for rows.Next() {
		item, err := scanItem(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning item: %w", err)
		}
		items = append(items, model.ItemWithPhotos{Item: *item, Photos: []model.Photo{}})
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	if err := attachPhotos(ctx, db, items); err != nil {
		return nil, err
	}
	return items, nil
}

// GetItemsByIDs returns the requested items with photos, in the order the
// ids were given, so export row order is under the caller's control.
// Missing ids are silently dropped.
func GetItemsByIDs(ctx context.Context, db *sql.DB, ids []int64) ([]model.ItemWithPhotos, error) {
	if len(ids) == 0 {
		return []model.ItemWithPhotos{}, nil
	}

	placeholders := strings.Repeat("?, ", len(ids)-1) + "?"
	args := make([]any, len(ids))
	for i, id := range ids {
		args[i] = id
	}

	rows, err := db.QueryContext(ctx,
		`SELECT `+itemColumns+` FROM items WHERE id IN (`+placeholders+`)`, args...)
	if err != nil {
		return nil, fmt.Errorf("getting items by ids: %w", err)
	}
	defer rows.Close()

	byID := make(map[int64]*model.Item, len(ids))
	for rows.Next() {
		item, err := scanItem(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning item: %w", err)
		}
		byID[item.ID] = item
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	items := make([]model.ItemWithPhotos, 0, len(byID))
	for _, id := range ids {
		if item, ok := byID[id]; ok {
			items = append(items, model.ItemWithPhotos{Item: *item, Photos: []model.Photo{}})
			delete(byID, id)
		}
	}

	if err := attachPhotos(ctx, db, items); err != nil {
		return nil, err
	}
	return items, nil
}

// attachPhotos fetches the photos for all given items in one query and
// distributes them in sort order.
func attachPhotos(ctx context.Context, db *sql.DB, items []model.ItemWithPhotos) error {
	if len(items) == 0 {
		return nil
	}

	placeholders := strings.Repeat("?, ", len(items)-1) + "?"
	args := make([]any, len(items))
	index := make(map[int64]int, len(items))
	for i := range items {
		args[i] = items[i].ID
		index[items[i].ID] = i
	}

	rows, err := db.QueryContext(ctx,
		`SELECT id, item_id, type, url, storage_key, sort_order, created_at
		 FROM photos WHERE item_id IN (`+placeholders+`)
		 ORDER BY sort_order, id`, args...)
	if err != nil {
		return fmt.Errorf("fetching photos: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		photo, err := scanPhoto(rows)
		if err != nil {
			return fmt.Errorf("scanning photo: %w", err)
		}
		if i, ok := index[photo.ItemID]; ok {
			items[i].Photos = append(items[i].Photos, *photo)
		}
	}
	return rows.Err()
}

// UpdateItem applies a partial update produced by ParseItemUpdates and
// bumps updated_at. Returns ErrNotFound if the item doesn't exist and
// ErrDuplicateSKU if a SKU change collides.
func UpdateItem(ctx context.Context, db *sql.DB, id int64, updates map[string]any) error {
	// Deterministic clause order for readable logs and stable tests.
	columns := make([]string, 0, len(updates))
	for col := range updates {
		columns = append(columns, col)
	}
	sort.Strings(columns)

	set := make([]string, 0, len(columns)+1)
	args := make([]any, 0, len(columns)+1)
	for _, col := range columns {
		set = append(set, col+" = ?")
		args = append(args, updates[col])
	}
	set = append(set, "updated_at = CURRENT_TIMESTAMP")
	args = append(args, id)

	result, err := db.ExecContext(ctx,
		`UPDATE items SET `+strings.Join(set, ", ")+` WHERE id = ?`, args...)
	if err != nil {
		if isUniqueViolation(err) {
			return ErrDuplicateSKU
		}
		return fmt.Errorf("updating item: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("checking update result: %w", err)
	}
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}

// DeleteItem removes an item and its photos.
func DeleteItem(ctx context.Context, db *sql.DB, id int64) error {
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM photos WHERE item_id = ?`, id); err != nil {
		return fmt.Errorf("deleting item photos: %w", err)
	}

	result, err := tx.ExecContext(ctx, `DELETE FROM items WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("deleting item: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("checking delete result: %w", err)
	}
	if affected == 0 {
		return ErrNotFound
	}

	return tx.Commit()
}
