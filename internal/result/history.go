package result

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "modernc.org/sqlite"
)

const historySchema = `
CREATE TABLE IF NOT EXISTS runs (
	id TEXT PRIMARY KEY,
	run_dir TEXT NOT NULL,
	created_at INTEGER NOT NULL
);

CREATE TABLE IF NOT EXISTS evaluations (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	run_id TEXT NOT NULL,
	task_id TEXT NOT NULL,
	agent_id TEXT NOT NULL,
	agent_name TEXT NOT NULL,
	success INTEGER NOT NULL,
	search_score REAL NOT NULL,
	identification_score REAL NOT NULL,
	resolution_score REAL NOT NULL,
	overall_proactivity REAL NOT NULL,
	efficiency_score REAL NOT NULL,
	total_actions INTEGER NOT NULL,
	proactive_actions INTEGER NOT NULL,
	bottlenecks_identified INTEGER NOT NULL,
	bottlenecks_resolved INTEGER NOT NULL,
	created_at INTEGER NOT NULL,
	FOREIGN KEY(run_id) REFERENCES runs(id) ON DELETE CASCADE
);
CREATE INDEX IF NOT EXISTS idx_evaluations_run ON evaluations(run_id, agent_id, task_id);
`

// History records finished runs in SQLite so scores can be compared
// across invocations.
type History struct {
	db *sql.DB
}

// RunMeta is one row of the runs table.
type RunMeta struct {
	ID        string
	RunDir    string
	CreatedAt time.Time
}

// OpenHistory opens (or creates) the history database at dbPath.
func OpenHistory(dbPath string) (*History, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}

	pragmas := []string{
		"PRAGMA journal_mode=WAL;",
		"PRAGMA synchronous=NORMAL;",
		"PRAGMA foreign_keys=ON;",
		"PRAGMA busy_timeout=5000;",
	}
	for _, stmt := range pragmas {
		if _, err := db.Exec(stmt); err != nil {
			_ = db.Close()
			return nil, fmt.Errorf("set sqlite pragma %q: %w", stmt, err)
		}
	}

	return &History{db: db}, nil
}

func (h *History) Close() error {
	return h.db.Close()
}

func (h *History) Migrate(ctx context.Context) error {
	if _, err := h.db.ExecContext(ctx, historySchema); err != nil {
		return fmt.Errorf("migrate schema: %w", err)
	}
	return nil
}

// SaveRun writes the run row and its evaluations in one transaction.
func (h *History) SaveRun(ctx context.Context, runID, runDir string, evals []*Evaluation) error {
	tx, err := h.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback()

	now := time.Now().UTC().Unix()
	if _, err := tx.ExecContext(ctx,
		`INSERT INTO runs(id, run_dir, created_at) VALUES(?, ?, ?)`,
		runID, runDir, now,
	); err != nil {
		return fmt.Errorf("insert run: %w", err)
	}

	for _, e := range evals {
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO evaluations(
				run_id, task_id, agent_id, agent_name, success,
				search_score, identification_score, resolution_score,
				overall_proactivity, efficiency_score,
				total_actions, proactive_actions,
				bottlenecks_identified, bottlenecks_resolved, created_at
			) VALUES(?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			runID, e.TaskID, e.AgentID, e.AgentName, boolInt(e.Success),
			e.Metrics.SearchScore, e.Metrics.IdentificationScore, e.Metrics.ResolutionScore,
			e.Metrics.OverallProactivity, e.Metrics.EfficiencyScore,
			e.Details.TotalActions, e.Details.ProactiveActions,
			e.Details.BottlenecksIdentified, e.Details.BottlenecksResolved, now,
		); err != nil {
			return fmt.Errorf("insert evaluation %s/%s: %w", e.AgentID, e.TaskID, err)
		}
	}
	return tx.Commit()
}

// ListRuns returns run metadata, newest first.
func (h *History) ListRuns(ctx context.Context, limit int) ([]RunMeta, error) {
	if limit <= 0 {
		limit = 20
	}
	rows, err := h.db.QueryContext(ctx,
		`SELECT id, run_dir, created_at FROM runs ORDER BY created_at DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("list runs: %w", err)
	}
	defer rows.Close()

	var runs []RunMeta
	for rows.Next() {
		var m RunMeta
		var created int64
		if err := rows.Scan(&m.ID, &m.RunDir, &created); err != nil {
			return nil, fmt.Errorf("scan run: %w", err)
		}
		m.CreatedAt = time.Unix(created, 0).UTC()
		runs = append(runs, m)
	}
	return runs, rows.Err()
}

// RunEvaluations loads the stored evaluations for one run. Only the
// columns the history tracks are populated; the full action history
// stays in the run directory's JSON files.
func (h *History) RunEvaluations(ctx context.Context, runID string) ([]*Evaluation, error) {
	rows, err := h.db.QueryContext(ctx,
		`SELECT task_id, agent_id, agent_name, success,
			search_score, identification_score, resolution_score,
			overall_proactivity, efficiency_score,
			total_actions, proactive_actions,
			bottlenecks_identified, bottlenecks_resolved
		FROM evaluations WHERE run_id = ? ORDER BY agent_id, task_id`, runID)
	if err != nil {
		return nil, fmt.Errorf("query evaluations: %w", err)
	}
	defer rows.Close()

	var evals []*Evaluation
	for rows.Next() {
		e := &Evaluation{RunID: runID}
		var success int
		if err := rows.Scan(
			&e.TaskID, &e.AgentID, &e.AgentName, &success,
			&e.Metrics.SearchScore, &e.Metrics.IdentificationScore, &e.Metrics.ResolutionScore,
			&e.Metrics.OverallProactivity, &e.Metrics.EfficiencyScore,
			&e.Details.TotalActions, &e.Details.ProactiveActions,
			&e.Details.BottlenecksIdentified, &e.Details.BottlenecksResolved,
		); err != nil {
			return nil, fmt.Errorf("scan evaluation: %w", err)
		}
		e.Success = success != 0
		if e.Success {
			e.Metrics.SuccessRate = 1.0
		}
		evals = append(evals, e)
	}
	return evals, rows.Err()
}

func boolInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
