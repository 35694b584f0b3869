package db

const schema = `
-- Performance and reliability settings
PRAGMA journal_mode = WAL;
PRAGMA synchronous = NORMAL;
PRAGMA foreign_keys = ON;
PRAGMA temp_store = MEMORY;

-- Runs: one row per validate invocation
CREATE TABLE IF NOT EXISTS runs (
    run_id TEXT PRIMARY KEY,
    created_at TEXT NOT NULL, -- UTC, fixed-width so it sorts
    source TEXT,
    page_count INTEGER NOT NULL,
    error_count INTEGER DEFAULT 0,
    warning_count INTEGER DEFAULT 0,
    info_count INTEGER DEFAULT 0
);

CREATE INDEX IF NOT EXISTS idx_runs_created ON runs(created_at DESC);

-- Run pages: per-record summary within a run
CREATE TABLE IF NOT EXISTS run_pages (
    page_id INTEGER PRIMARY KEY AUTOINCREMENT,
    run_id TEXT NOT NULL,
    page_index INTEGER NOT NULL,
    source TEXT,
    title TEXT,
    canonical_url TEXT,
    error_count INTEGER DEFAULT 0,
    warning_count INTEGER DEFAULT 0,
    info_count INTEGER DEFAULT 0,
    FOREIGN KEY (run_id) REFERENCES runs(run_id) ON DELETE CASCADE,
    UNIQUE(run_id, page_index)
);

CREATE INDEX IF NOT EXISTS idx_run_pages_run ON run_pages(run_id);
CREATE INDEX IF NOT EXISTS idx_run_pages_canonical ON run_pages(canonical_url);

-- Run findings: every finding, page_index NULL for cross-page findings
CREATE TABLE IF NOT EXISTS run_findings (
    finding_id INTEGER PRIMARY KEY AUTOINCREMENT,
    run_id TEXT NOT NULL,
    page_index INTEGER,
    position INTEGER NOT NULL,
    field TEXT NOT NULL,
    severity TEXT NOT NULL,
    code TEXT NOT NULL,
    message TEXT NOT NULL,
    FOREIGN KEY (run_id) REFERENCES runs(run_id) ON DELETE CASCADE
);

CREATE INDEX IF NOT EXISTS idx_run_findings_run ON run_findings(run_id);
CREATE INDEX IF NOT EXISTS idx_run_findings_severity ON run_findings(severity);
CREATE INDEX IF NOT EXISTS idx_run_findings_code ON run_findings(code);
`
