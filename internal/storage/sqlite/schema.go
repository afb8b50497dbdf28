// ABOUTME: SQLite database schema for the transcript search index
// ABOUTME: Creates content tables, FTS5 keyword indexes with sync triggers, and the chunk store
package sqlite

// Schema contains all SQL statements for database initialization
const Schema = `
-- Ingested transcripts (immutable after insert)
CREATE TABLE IF NOT EXISTS transcripts (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    filename TEXT NOT NULL UNIQUE,
    date TEXT NOT NULL,
    timestamp TEXT NOT NULL,
    engine TEXT DEFAULT '',
    file_path TEXT DEFAULT '',
    content TEXT NOT NULL,
    word_count INTEGER DEFAULT 0,
    created_at DATETIME DEFAULT CURRENT_TIMESTAMP
);

-- Analysis annotations (append-only; latest row wins at read time)
CREATE TABLE IF NOT EXISTS analysis (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    transcript_id INTEGER NOT NULL REFERENCES transcripts(id) ON DELETE CASCADE,
    mode TEXT DEFAULT '',
    model TEXT DEFAULT '',
    summary TEXT DEFAULT '',
    action_items TEXT DEFAULT '[]',
    tags TEXT DEFAULT '[]',
    classification TEXT DEFAULT '',
    sentiment TEXT DEFAULT '',
    confidence REAL DEFAULT 0,
    file_path TEXT DEFAULT '',
    created_at DATETIME DEFAULT CURRENT_TIMESTAMP
);

-- Embedded chunks (vector storage for the semantic index)
CREATE TABLE IF NOT EXISTS chunks (
    transcript_id INTEGER NOT NULL REFERENCES transcripts(id) ON DELETE CASCADE,
    chunk_index INTEGER NOT NULL,
    chunk_text TEXT NOT NULL,
    embedding BLOB NOT NULL,
    created_at DATETIME DEFAULT CURRENT_TIMESTAMP,
    PRIMARY KEY (transcript_id, chunk_index)
);

-- Full-text indexes over transcript content and analysis summaries.
-- External-content tables: rows live in the base tables, triggers keep
-- the FTS shadow tables in sync.
CREATE VIRTUAL TABLE IF NOT EXISTS transcripts_fts USING fts5(
    content,
    content='transcripts',
    content_rowid='id',
    tokenize='porter unicode61'
);

CREATE VIRTUAL TABLE IF NOT EXISTS analysis_fts USING fts5(
    summary,
    content='analysis',
    content_rowid='id',
    tokenize='porter unicode61'
);

CREATE TRIGGER IF NOT EXISTS transcripts_ai AFTER INSERT ON transcripts BEGIN
    INSERT INTO transcripts_fts(rowid, content) VALUES (new.id, new.content);
END;

CREATE TRIGGER IF NOT EXISTS transcripts_ad AFTER DELETE ON transcripts BEGIN
    INSERT INTO transcripts_fts(transcripts_fts, rowid, content) VALUES ('delete', old.id, old.content);
END;

CREATE TRIGGER IF NOT EXISTS analysis_ai AFTER INSERT ON analysis BEGIN
    INSERT INTO analysis_fts(rowid, summary) VALUES (new.id, new.summary);
END;

CREATE TRIGGER IF NOT EXISTS analysis_ad AFTER DELETE ON analysis BEGIN
    INSERT INTO analysis_fts(analysis_fts, rowid, summary) VALUES ('delete', old.id, old.summary);
END;

-- Indexes for efficient querying
CREATE INDEX IF NOT EXISTS idx_transcripts_date ON transcripts(date);
CREATE INDEX IF NOT EXISTS idx_analysis_transcript ON analysis(transcript_id);
CREATE INDEX IF NOT EXISTS idx_analysis_classification ON analysis(classification);
CREATE INDEX IF NOT EXISTS idx_chunks_transcript ON chunks(transcript_id);
`

// SchemaVersion is the current schema version for migrations
const SchemaVersion = 1
