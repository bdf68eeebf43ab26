package server

const schema = `
CREATE TABLE movies (
	id TEXT PRIMARY KEY,
	title TEXT NOT NULL,
	genre TEXT NOT NULL DEFAULT '',
	year TEXT NOT NULL DEFAULT '',
	created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
	updated_at TIMESTAMP
);

CREATE INDEX idx_movies_title ON movies(title);
`

// migrations are applied in order starting at the stored user_version.
// migrations[0] is empty because version 0 uses the base schema.
var migrations = []string{
	"",
	`ALTER TABLE movies ADD COLUMN updated_at TIMESTAMP;`,
}
