package frames

// The workspace database is transient storage for one editing session, not a
// long-term archive. Schema changes bump the version; a reset clears the file.
const schemaVersion = 1

const schemaSQL = `
CREATE TABLE IF NOT EXISTS schema_info (
    version INTEGER NOT NULL
);

CREATE TABLE IF NOT EXISTS frames (
    id          TEXT PRIMARY KEY,
    position    INTEGER NOT NULL UNIQUE,
    source_name TEXT NOT NULL,
    width       INTEGER NOT NULL,
    height      INTEGER NOT NULL,
    png         BLOB NOT NULL,
    created_at  TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS session (
    id         INTEGER PRIMARY KEY CHECK (id = 1),
    title      TEXT NOT NULL DEFAULT '',
    delay_ms   INTEGER NOT NULL,
    updated_at TEXT NOT NULL
);
`
