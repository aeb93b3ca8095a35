package db

import (
	"database/sql"
	"fmt"
)

// schema is the full database schema.
const schema = `
CREATE TABLE IF NOT EXISTS users (
    id            INTEGER PRIMARY KEY,
    username      TEXT NOT NULL,
    password_hash TEXT NOT NULL,
    role          TEXT NOT NULL DEFAULT 'user' CHECK (role IN ('admin', 'manager', 'user')),
    created_at    DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
    deleted_at    DATETIME
);

CREATE UNIQUE INDEX IF NOT EXISTS idx_users_username_active
    ON users(username) WHERE deleted_at IS NULL;

CREATE TABLE IF NOT EXISTS items (
    id                         INTEGER PRIMARY KEY,
    sku                        TEXT NOT NULL,
    status                     TEXT NOT NULL DEFAULT 'intake' CHECK (status IN
        ('intake', 'processing', 'drafted', 'review', 'ready', 'listed', 'sold', 'scrap')),

    intake_date                DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
    source                     TEXT,
    source_location            TEXT,
    dropoff_type               TEXT,
    category                   TEXT,
    power_test                 INTEGER,
    intake_notes               TEXT,

    brand                      TEXT,
    model                      TEXT,
    cpu                        TEXT,
    ram                        TEXT,
    storage_type               TEXT,
    storage_size               TEXT,
    battery_health             TEXT,
    charger_included           TEXT,
    screen_resolution          TEXT,
    os                         TEXT,
    gpu                        TEXT,
    bench_tested               INTEGER,
    test_tool                  TEXT,
    magic_octopus_run          INTEGER NOT NULL DEFAULT 0,
    bench_notes                TEXT,
    test_notes                 TEXT,
    data_destruction           INTEGER,

    ebay_category_id           TEXT,
    ebay_condition_id          TEXT,
    listing_format             TEXT,
    list_price                 TEXT,
    research_price             TEXT,
    quantity                   INTEGER NOT NULL DEFAULT 1,
    upc                        TEXT,
    storage_location           TEXT,
    listing_title              TEXT,
    listing_description        TEXT,
    source_vendor              TEXT,

    intake_confirmed_by        INTEGER REFERENCES users(id),
    processing_confirmed_by    INTEGER REFERENCES users(id),
    listing_confirmed_by       INTEGER REFERENCES users(id),
    review_confirmed_by        INTEGER REFERENCES users(id),

    is_drafted                 INTEGER NOT NULL DEFAULT 0,
    is_reviewed                INTEGER NOT NULL DEFAULT 0,
    is_template_drafted        INTEGER NOT NULL DEFAULT 0,
    is_second_review_completed INTEGER NOT NULL DEFAULT 0,

    created_by                 INTEGER REFERENCES users(id),
    reviewer_id                INTEGER REFERENCES users(id),
    created_at                 DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
    updated_at                 DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
);

CREATE UNIQUE INDEX IF NOT EXISTS idx_items_sku ON items(sku);
CREATE INDEX IF NOT EXISTS idx_items_status ON items(status);
CREATE INDEX IF NOT EXISTS idx_items_intake_date ON items(intake_date);

CREATE TABLE IF NOT EXISTS photos (
    id          INTEGER PRIMARY KEY,
    item_id     INTEGER NOT NULL REFERENCES items(id) ON DELETE CASCADE,
    type        TEXT NOT NULL CHECK (type IN ('intake', 'listing')),
    url         TEXT NOT NULL,
    storage_key TEXT,
    sort_order  INTEGER NOT NULL DEFAULT 0,
    created_at  DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
);

CREATE INDEX IF NOT EXISTS idx_photos_item ON photos(item_id, sort_order);

CREATE TABLE IF NOT EXISTS export_profiles (
    id         INTEGER PRIMARY KEY,
    name       TEXT NOT NULL,
    mappings   TEXT NOT NULL,
    created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
);

CREATE TABLE IF NOT EXISTS settings (
    key   TEXT PRIMARY KEY,
    value TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS revoked_tokens (
    jti        TEXT PRIMARY KEY,
    expires_at DATETIME NOT NULL
);

CREATE TABLE IF NOT EXISTS audit_logs (
    id          INTEGER PRIMARY KEY,
    actor_id    INTEGER REFERENCES users(id),
    action      TEXT NOT NULL,
    entity_type TEXT NOT NULL,
    entity_id   TEXT,
    details     TEXT,
    created_at  DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
);
`

// EnsureSchema creates all tables and indexes if they don't already exist.
func EnsureSchema(db *sql.DB) error {
	_, err := db.Exec(schema)
	if err != nil {
		return fmt.Errorf("creating schema: %w", err)
	}
	return nil
}
