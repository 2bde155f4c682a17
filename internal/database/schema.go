package database

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"
)

// schema is applied on startup. Every statement is idempotent so repeated
// starts against the same database are safe.
const schema = `
CREATE TABLE IF NOT EXISTS users (
	id            SERIAL PRIMARY KEY,
	username      TEXT NOT NULL UNIQUE,
	password_hash TEXT NOT NULL,
	created_at    TIMESTAMPTZ NOT NULL DEFAULT now()
);

CREATE TABLE IF NOT EXISTS rolls (
	id         SERIAL PRIMARY KEY,
	user_id    INTEGER NOT NULL REFERENCES users(id) ON DELETE CASCADE,
	name       TEXT NOT NULL,
	film_stock TEXT NOT NULL DEFAULT '',
	iso        INTEGER NOT NULL DEFAULT 0,
	camera     TEXT NOT NULL DEFAULT '',
	notes      TEXT NOT NULL DEFAULT '',
	created_at TIMESTAMPTZ NOT NULL DEFAULT now()
);

CREATE TABLE IF NOT EXISTS lenses (
	id           SERIAL PRIMARY KEY,
	user_id      INTEGER NOT NULL REFERENCES users(id) ON DELETE CASCADE,
	name         TEXT NOT NULL,
	focal_length TEXT NOT NULL DEFAULT '',
	max_aperture TEXT NOT NULL DEFAULT '',
	UNIQUE (user_id, name)
);

CREATE TABLE IF NOT EXISTS photos (
	id            SERIAL PRIMARY KEY,
	roll_id       INTEGER NOT NULL REFERENCES rolls(id) ON DELETE CASCADE,
	subject       TEXT NOT NULL DEFAULT '',
	f_stop        TEXT NOT NULL DEFAULT '',
	shutter_speed TEXT NOT NULL DEFAULT '',
	lens_id       INTEGER REFERENCES lenses(id) ON DELETE SET NULL,
	photo_url     TEXT,
	notes         TEXT NOT NULL DEFAULT '',
	created_at    TIMESTAMPTZ NOT NULL DEFAULT now()
);

CREATE TABLE IF NOT EXISTS tags (
	id          SERIAL PRIMARY KEY,
	user_id     INTEGER NOT NULL REFERENCES users(id) ON DELETE CASCADE,
	name        TEXT NOT NULL,
	usage_count INTEGER NOT NULL DEFAULT 0,
	UNIQUE (user_id, name)
);

CREATE TABLE IF NOT EXISTS photo_tags (
	photo_id INTEGER NOT NULL REFERENCES photos(id) ON DELETE CASCADE,
	tag_id   INTEGER NOT NULL REFERENCES tags(id) ON DELETE CASCADE,
	PRIMARY KEY (photo_id, tag_id)
);

CREATE INDEX IF NOT EXISTS idx_rolls_user_id ON rolls(user_id);
CREATE INDEX IF NOT EXISTS idx_photos_roll_id ON photos(roll_id);
CREATE INDEX IF NOT EXISTS idx_photos_created_at ON photos(created_at DESC);
CREATE INDEX IF NOT EXISTS idx_tags_user_id ON tags(user_id);
CREATE INDEX IF NOT EXISTS idx_photo_tags_tag_id ON photo_tags(tag_id);
`

func applySchema(ctx context.Context, pool *pgxpool.Pool) error {
	_, err := pool.Exec(ctx, schema)
	return err
}
