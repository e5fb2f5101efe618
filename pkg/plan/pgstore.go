package plan

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// PgStore is a PostgreSQL-backed plan store.
type PgStore struct {
	pool *pgxpool.Pool
}

// NewPgStore creates a PgStore.
func NewPgStore(pool *pgxpool.Pool) *PgStore {
	return &PgStore{pool: pool}
}

// EnsureTables creates the plan tables if they don't exist.
func (s *PgStore) EnsureTables(ctx context.Context) error {
	_, err := s.pool.Exec(ctx, `
		CREATE TABLE IF NOT EXISTS task_plans (
			id                      TEXT PRIMARY KEY,
			goal                    TEXT NOT NULL,
			title                   TEXT NOT NULL,
			description             TEXT NOT NULL DEFAULT '',
			estimated_duration_days INTEGER NOT NULL DEFAULT 1,
			created_at              TIMESTAMPTZ DEFAULT NOW(),
			updated_at              TIMESTAMPTZ DEFAULT NOW()
		)`)
	if err != nil {
		return err
	}
	_, err = s.pool.Exec(ctx, `
		CREATE TABLE IF NOT EXISTS plan_tasks (
			plan_id                  TEXT NOT NULL REFERENCES task_plans(id) ON DELETE CASCADE,
			idx                      INTEGER NOT NULL,
			title                    TEXT NOT NULL,
			description              TEXT NOT NULL DEFAULT '',
			estimated_hours          DOUBLE PRECISION NOT NULL,
			priority                 TEXT NOT NULL DEFAULT 'medium',
			dependencies             JSONB NOT NULL DEFAULT '[]',
			deadline_days_from_start INTEGER NOT NULL,
			status                   TEXT NOT NULL DEFAULT 'pending',
			category                 TEXT NOT NULL DEFAULT '',
			skills_required          JSONB NOT NULL DEFAULT '[]',
			deliverables             JSONB NOT NULL DEFAULT '[]',
			complexity_score         DOUBLE PRECISION NOT NULL DEFAULT 0,
			PRIMARY KEY (plan_id, idx)
		)`)
	if err != nil {
		return err
	}
	_, err = s.pool.Exec(ctx, `CREATE INDEX IF NOT EXISTS idx_plan_tasks_status ON plan_tasks(status)`)
	return err
}

// CreatePlan inserts a plan and its tasks in one transaction.
func (s *PgStore) CreatePlan(ctx context.Context, p *Plan) (*Plan, error) {
	p.ID = uuid.Must(uuid.NewV7()).String()
	now := time.Now().Truncate(time.Microsecond)
	p.CreatedAt = now
	p.UpdatedAt = now

	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("begin: %w", err)
	}
	defer tx.Rollback(ctx)

	_, err = tx.Exec(ctx, `
		INSERT INTO task_plans (id, goal, title, description, estimated_duration_days, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		p.ID, p.Goal, p.Title, p.Description, p.EstimatedDurationDays, p.CreatedAt, p.UpdatedAt)
	if err != nil {
		return nil, fmt.Errorf("create plan: %w", err)
	}

	for i, t := range p.Tasks {
		deps, err := json.Marshal(t.Dependencies)
		if err != nil {
			return nil, fmt.Errorf("marshal dependencies: %w", err)
		}
		skills, err := json.Marshal(t.SkillsRequired)
		if err != nil {
			return nil, fmt.Errorf("marshal skills: %w", err)
		}
		deliv, err := json.Marshal(t.Deliverables)
		if err != nil {
			return nil, fmt.Errorf("marshal deliverables: %w", err)
		}
		_, err = tx.Exec(ctx, `
			INSERT INTO plan_tasks (plan_id, idx, title, description, estimated_hours, priority, dependencies,
				deadline_days_from_start, status, category, skills_required, deliverables, complexity_score)
			VALUES ($1, $2, $3, $4, $5, $6, $7::jsonb, $8, $9, $10, $11::jsonb, $12::jsonb, $13)`,
			p.ID, i, t.Title, t.Description, t.EstimatedHours, t.Priority, string(deps),
			t.DeadlineDays, t.Status, t.Category, string(skills), string(deliv), t.ComplexityScore)
		if err != nil {
			return nil, fmt.Errorf("create task %d: %w", i, err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("commit: %w", err)
	}
	return p, nil
}

// GetPlan retrieves a plan and its tasks by ID.
func (s *PgStore) GetPlan(ctx context.Context, id string) (*Plan, error) {
	var p Plan
	err := s.pool.QueryRow(ctx, `
		SELECT id, goal, title, description, estimated_duration_days, created_at, updated_at
		FROM task_plans WHERE id = $1`, id).
		Scan(&p.ID, &p.Goal, &p.Title, &p.Description, &p.EstimatedDurationDays, &p.CreatedAt, &p.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, fmt.Errorf("plan %s: %w", id, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("get plan %s: %w", id, err)
	}

	rows, err := s.pool.Query(ctx, `
		SELECT idx, title, description, estimated_hours, priority, dependencies,
			deadline_days_from_start, status, category, skills_required, deliverables, complexity_score
		FROM plan_tasks WHERE plan_id = $1 ORDER BY idx`, id)
	if err != nil {
		return nil, fmt.Errorf("get plan tasks %s: %w", id, err)
	}
	defer rows.Close()

	p.Tasks = []Task{}
	for rows.Next() {
		var t Task
		var idx int
		var deps, skills, deliv []byte
		if err := rows.Scan(&idx, &t.Title, &t.Description, &t.EstimatedHours, &t.Priority, &deps,
			&t.DeadlineDays, &t.Status, &t.Category, &skills, &deliv, &t.ComplexityScore); err != nil {
			return nil, fmt.Errorf("scan task: %w", err)
		}
		if err := json.Unmarshal(deps, &t.Dependencies); err != nil {
			t.Dependencies = []int{}
		}
		if err := json.Unmarshal(skills, &t.SkillsRequired); err != nil {
			t.SkillsRequired = []string{}
		}
		if err := json.Unmarshal(deliv, &t.Deliverables); err != nil {
			t.Deliverables = []string{}
		}
		p.Tasks = append(p.Tasks, t)
	}
	return &p, rows.Err()
}

// ListPlans returns plan summaries, newest first.
func (s *PgStore) ListPlans(ctx context.Context, limit int) ([]Summary, error) {
	if limit <= 0 {
		limit = 50
	}
	rows, err := s.pool.Query(ctx, `
		SELECT p.id, p.goal, p.title, p.estimated_duration_days, p.created_at,
			(SELECT COUNT(*) FROM plan_tasks t WHERE t.plan_id = p.id)
		FROM task_plans p ORDER BY p.created_at DESC LIMIT $1`, limit)
	if err != nil {
		return nil, fmt.Errorf("list plans: %w", err)
	}
	defer rows.Close()

	summaries := []Summary{}
	for rows.Next() {
		var sum Summary
		if err := rows.Scan(&sum.ID, &sum.Goal, &sum.Title, &sum.EstimatedDurationDays, &sum.CreatedAt, &sum.TaskCount); err != nil {
			return nil, fmt.Errorf("scan summary: %w", err)
		}
		summaries = append(summaries, sum)
	}
	return summaries, rows.Err()
}

// UpdateTaskStatus sets the status of one task and returns the updated task.
func (s *PgStore) UpdateTaskStatus(ctx context.Context, planID string, taskIndex int, status string) (*Task, error) {
	tag, err := s.pool.Exec(ctx, `
		UPDATE plan_tasks SET status = $1 WHERE plan_id = $2 AND idx = $3`,
		status, planID, taskIndex)
	if err != nil {
		return nil, fmt.Errorf("update task status: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return nil, fmt.Errorf("plan %s task %d: %w", planID, taskIndex, ErrNotFound)
	}
	_, err = s.pool.Exec(ctx, `UPDATE task_plans SET updated_at = NOW() WHERE id = $1`, planID)
	if err != nil {
		return nil, fmt.Errorf("touch plan: %w", err)
	}

	var t Task
	var deps, skills, deliv []byte
	err = s.pool.QueryRow(ctx, `
		SELECT title, description, estimated_hours, priority, dependencies,
			deadline_days_from_start, status, category, skills_required, deliverables, complexity_score
		FROM plan_tasks WHERE plan_id = $1 AND idx = $2`, planID, taskIndex).
		Scan(&t.Title, &t.Description, &t.EstimatedHours, &t.Priority, &deps,
			&t.DeadlineDays, &t.Status, &t.Category, &skills, &deliv, &t.ComplexityScore)
	if err != nil {
		return nil, fmt.Errorf("reload task: %w", err)
	}
	if err := json.Unmarshal(deps, &t.Dependencies); err != nil {
		t.Dependencies = []int{}
	}
	if err := json.Unmarshal(skills, &t.SkillsRequired); err != nil {
		t.SkillsRequired = []string{}
	}
	if err := json.Unmarshal(deliv, &t.Deliverables); err != nil {
		t.Deliverables = []string{}
	}
	return &t, nil
}

// Count returns the number of stored plans.
func (s *PgStore) Count(ctx context.Context) (int, error) {
	var n int
	err := s.pool.QueryRow(ctx, `SELECT COUNT(*) FROM task_plans`).Scan(&n)
	return n, err
}
