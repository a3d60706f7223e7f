package history

const schema = `
CREATE TABLE IF NOT EXISTS invocations (
    id TEXT PRIMARY KEY,
    repository TEXT NOT NULL,
    dry_run BOOLEAN NOT NULL DEFAULT FALSE,
    started_at TIMESTAMP NOT NULL,
    finished_at TIMESTAMP,
    deleted INTEGER NOT NULL DEFAULT 0,
    skipped INTEGER NOT NULL DEFAULT 0,
    failed INTEGER NOT NULL DEFAULT 0
);

CREATE INDEX IF NOT EXISTS idx_invocations_repository ON invocations(repository);
CREATE INDEX IF NOT EXISTS idx_invocations_started_at ON invocations(started_at);

CREATE TABLE IF NOT EXISTS outcomes (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    invocation_id TEXT NOT NULL REFERENCES invocations(id),
    run_id INTEGER NOT NULL,
    workflow TEXT,
    action TEXT NOT NULL,
    reason TEXT,
    error TEXT,
    created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
);

CREATE INDEX IF NOT EXISTS idx_outcomes_invocation_id ON outcomes(invocation_id);
`
