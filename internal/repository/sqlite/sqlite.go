package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"bpauto/internal/domain"

	_ "modernc.org/sqlite"
)

// Repository implements repository.Repository using SQLite
type Repository struct {
	db *sql.DB
}

// New creates a new SQLite repository
func New(dbPath string) (*Repository, error) {
	db, err := sql.Open("sqlite", dbPath+"?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)&_pragma=foreign_keys(1)")
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	// Every connection to :memory: is a separate database
	db.SetMaxOpenConns(1)

	repo := &Repository{db: db}
	if err := repo.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}

	return repo, nil
}

func (r *Repository) migrate() error {
	schema := `
	CREATE TABLE IF NOT EXISTS plans (
		id TEXT PRIMARY KEY,
		network TEXT NOT NULL,
		created_at DATETIME NOT NULL,
		object_count INTEGER NOT NULL DEFAULT 0,
		path_count INTEGER NOT NULL DEFAULT 0,
		script TEXT
	);

	CREATE TABLE IF NOT EXISTS plan_objects (
		plan_id TEXT NOT NULL,
		seq INTEGER NOT NULL,
		name TEXT NOT NULL,
		class TEXT NOT NULL,
		container TEXT,
		data JSON NOT NULL,
		PRIMARY KEY (plan_id, seq),
		FOREIGN KEY (plan_id) REFERENCES plans(id) ON DELETE CASCADE
	);

	CREATE TABLE IF NOT EXISTS plan_paths (
		plan_id TEXT NOT NULL,
		seq INTEGER NOT NULL,
		a TEXT NOT NULL,
		b TEXT NOT NULL,
		PRIMARY KEY (plan_id, seq),
		FOREIGN KEY (plan_id) REFERENCES plans(id) ON DELETE CASCADE
	);

	CREATE INDEX IF NOT EXISTS idx_plans_created ON plans(created_at);
	CREATE INDEX IF NOT EXISTS idx_plan_objects_class ON plan_objects(plan_id, class);
	`

	_, err := r.db.Exec(schema)
	return err
}

// SavePlan stores the plan and its objects and paths in one transaction
func (r *Repository) SavePlan(ctx context.Context, plan *domain.Plan) error {
	if plan.ID == "" {
		plan.ID = uuid.NewString()
	}
	if plan.CreatedAt.IsZero() {
		plan.CreatedAt = time.Now().UTC()
	}

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx, `
		INSERT INTO plans (id, network, created_at, object_count, path_count, script)
		VALUES (?, ?, ?, ?, ?, ?)
	`, plan.ID, plan.Network, plan.CreatedAt, len(plan.Objects), len(plan.Paths),
		stringToNull(strings.Join(plan.Commands, "\n")))
	if err != nil {
		return fmt.Errorf("failed to insert plan: %w", err)
	}

	objStmt, err := tx.PrepareContext(ctx, `
		INSERT INTO plan_objects (plan_id, seq, name, class, container, data)
		VALUES (?, ?, ?, ?, ?, ?)
	`)
	if err != nil {
		return fmt.Errorf("failed to prepare object insert: %w", err)
	}
	defer objStmt.Close()

	for i, obj := range plan.Objects {
		data, err := marshalObject(obj)
		if err != nil {
			return fmt.Errorf("failed to marshal object %s: %w", obj.Name, err)
		}
		if _, err := objStmt.ExecContext(ctx, plan.ID, i, obj.Name, string(obj.Class),
			stringToNull(obj.ContainerName), data); err != nil {
			return fmt.Errorf("failed to insert object %s: %w", obj.Name, err)
		}
	}

	pathStmt, err := tx.PrepareContext(ctx, `
		INSERT INTO plan_paths (plan_id, seq, a, b) VALUES (?, ?, ?, ?)
	`)
	if err != nil {
		return fmt.Errorf("failed to prepare path insert: %w", err)
	}
	defer pathStmt.Close()

	for i, p := range plan.Paths {
		if _, err := pathStmt.ExecContext(ctx, plan.ID, i, p.A, p.B); err != nil {
			return fmt.Errorf("failed to insert path %s-%s: %w", p.A, p.B, err)
		}
	}

	return tx.Commit()
}

// GetPlan loads a plan with its objects, paths and script
func (r *Repository) GetPlan(ctx context.Context, id string) (*domain.Plan, error) {
	var (
		plan   = &domain.Plan{ID: id}
		script sql.NullString
	)
	err := r.db.QueryRowContext(ctx, `
		SELECT network, created_at, script FROM plans WHERE id = ?
	`, id).Scan(&plan.Network, &plan.CreatedAt, &script)

	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query plan: %w", err)
	}
	if s := nullToString(script); s != "" {
		plan.Commands = strings.Split(s, "\n")
	}

	if plan.Objects, err = r.planObjects(ctx, id); err != nil {
		return nil, err
	}
	if plan.Paths, err = r.planPaths(ctx, id); err != nil {
		return nil, err
	}
	return plan, nil
}

func (r *Repository) planObjects(ctx context.Context, id string) ([]domain.Object, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT data FROM plan_objects WHERE plan_id = ? ORDER BY seq
	`, id)
	if err != nil {
		return nil, fmt.Errorf("failed to query plan objects: %w", err)
	}
	defer rows.Close()

	var objects []domain.Object
	for rows.Next() {
		var data []byte
		if err := rows.Scan(&data); err != nil {
			return nil, fmt.Errorf("failed to scan plan object: %w", err)
		}
		obj, err := unmarshalObject(data)
		if err != nil {
			return nil, fmt.Errorf("failed to unmarshal plan object: %w", err)
		}
		objects = append(objects, obj)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating plan objects: %w", err)
	}
	return objects, nil
}

func (r *Repository) planPaths(ctx context.Context, id string) ([]domain.Path, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT a, b FROM plan_paths WHERE plan_id = ? ORDER BY seq
	`, id)
	if err != nil {
		return nil, fmt.Errorf("failed to query plan paths: %w", err)
	}
	defer rows.Close()

	var paths []domain.Path
	for rows.Next() {
		var a, b string
		if err := rows.Scan(&a, &b); err != nil {
			return nil, fmt.Errorf("failed to scan plan path: %w", err)
		}
		paths = append(paths, domain.NewPath(a, b))
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating plan paths: %w", err)
	}
	return paths, nil
}

// ListPlans returns archived plans, newest first
func (r *Repository) ListPlans(ctx context.Context, limit int) ([]domain.PlanInfo, error) {
	query := `
		SELECT id, network, created_at, object_count, path_count
		FROM plans ORDER BY created_at DESC, id
	`
	var args []any
	if limit > 0 {
		query += " LIMIT ?"
		args = append(args, limit)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query plans: %w", err)
	}
	defer rows.Close()

	var plans []domain.PlanInfo
	for rows.Next() {
		var info domain.PlanInfo
		if err := rows.Scan(&info.ID, &info.Network, &info.CreatedAt, &info.Objects, &info.Paths); err != nil {
			return nil, fmt.Errorf("failed to scan plan: %w", err)
		}
		plans = append(plans, info)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating plans: %w", err)
	}
	return plans, nil
}

// DeletePlan removes a plan; objects and paths cascade
func (r *Repository) DeletePlan(ctx context.Context, id string) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM plans WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("failed to delete plan: %w", err)
	}
	return nil
}

// Close closes the database connection
func (r *Repository) Close() error {
	return r.db.Close()
}
