package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"ergasia-marketplace/internal/domain"
)

type jobRepo struct {
	db *pgxpool.Pool
}

func NewJobRepository(db *pgxpool.Pool) domain.JobRepository {
	return &jobRepo{db: db}
}

const jobColumns = `id::text, name, description, salary, rating, slots, status, user_id, created_at, updated_at`

func (r *jobRepo) Create(ctx context.Context, job *domain.Job) error {
	return pgx.BeginFunc(ctx, r.db, func(tx pgx.Tx) error {
		query := `INSERT INTO jobs (id, name, description, salary, rating, slots, status, user_id, created_at, updated_at)
              VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`
		_, err := tx.Exec(ctx, query,
			job.ID, job.Name, job.Description, job.Salary, job.Rating, job.Slots, string(job.Status), job.UserID,
			job.CreatedAt, job.UpdatedAt,
		)
		if err != nil {
			return translate(err)
		}
		return replaceTags(ctx, tx, job.ID, job.Tags)
	})
}

func (r *jobRepo) GetByID(ctx context.Context, id string) (*domain.Job, error) {
	query := `SELECT ` + jobColumns + ` FROM jobs WHERE id = $1`
	job, err := scanJob(r.db.QueryRow(ctx, query, id))
	if err != nil {
		return nil, translate(err)
	}
	jobs := []domain.Job{*job}
	if err := r.attachTags(ctx, jobs); err != nil {
		return nil, err
	}
	return &jobs[0], nil
}

func (r *jobRepo) FetchAll(ctx context.Context) ([]domain.Job, error) {
	query := `SELECT ` + jobColumns + ` FROM jobs ORDER BY created_at DESC`
	return r.fetch(ctx, query)
}

func (r *jobRepo) FetchByUserID(ctx context.Context, userID string) ([]domain.Job, error) {
	query := `SELECT ` + jobColumns + ` FROM jobs WHERE user_id = $1 ORDER BY created_at DESC`
	return r.fetch(ctx, query, userID)
}

func (r *jobRepo) Update(ctx context.Context, job *domain.Job) error {
	return pgx.BeginFunc(ctx, r.db, func(tx pgx.Tx) error {
		query := `UPDATE jobs SET name = $2, description = $3, salary = $4, slots = $5, status = $6, updated_at = $7
              WHERE id = $1`
		tag, err := tx.Exec(ctx, query, job.ID, job.Name, job.Description, job.Salary, job.Slots, string(job.Status), job.UpdatedAt)
		if err != nil {
			return translate(err)
		}
		if tag.RowsAffected() == 0 {
			return domain.ErrNotFound
		}
		return replaceTags(ctx, tx, job.ID, job.Tags)
	})
}

func (r *jobRepo) Delete(ctx context.Context, id string) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM jobs WHERE id = $1`, id)
	if err != nil {
		return translate(err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *jobRepo) fetch(ctx context.Context, query string, args ...any) ([]domain.Job, error) {
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	jobs := []domain.Job{}
	for rows.Next() {
		job, err := scanJob(rows)
		if err != nil {
			return nil, err
		}
		jobs = append(jobs, *job)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	if err := r.attachTags(ctx, jobs); err != nil {
		return nil, err
	}
	return jobs, nil
}

// attachTags loads the tags of all jobs with one query.
func (r *jobRepo) attachTags(ctx context.Context, jobs []domain.Job) error {
	if len(jobs) == 0 {
		return nil
	}
	ids := make([]string, 0, len(jobs))
	index := make(map[string]int, len(jobs))
	for i, j := range jobs {
		ids = append(ids, j.ID)
		index[j.ID] = i
	}

	query := `SELECT jt.job_id::text, c.id::text, c.name
              FROM job_tags jt
              JOIN job_categories c ON c.id = jt.category_id
              WHERE jt.job_id = ANY($1::uuid[])
              ORDER BY jt.job_id, jt.position`
	rows, err := r.db.Query(ctx, query, ids)
	if err != nil {
		return fmt.Errorf("load job tags: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var jobID string
		var cat domain.JobCategory
		if err := rows.Scan(&jobID, &cat.ID, &cat.Name); err != nil {
			return err
		}
		if i, ok := index[jobID]; ok {
			jobs[i].Tags = append(jobs[i].Tags, cat)
		}
	}
	return rows.Err()
}

func replaceTags(ctx context.Context, tx pgx.Tx, jobID string, tags []domain.JobCategory) error {
	if _, err := tx.Exec(ctx, `DELETE FROM job_tags WHERE job_id = $1`, jobID); err != nil {
		return err
	}
	batch := &pgx.Batch{}
	for i, t := range tags {
		batch.Queue(`INSERT INTO job_tags (job_id, category_id, position) VALUES ($1, $2, $3) ON CONFLICT DO NOTHING`,
			jobID, t.ID, i)
	}
	if batch.Len() == 0 {
		return nil
	}
	if err := tx.SendBatch(ctx, batch).Close(); err != nil {
		return translate(err)
	}
	return nil
}

func scanJob(row pgx.Row) (*domain.Job, error) {
	var job domain.Job
	var status string
	err := row.Scan(
		&job.ID, &job.Name, &job.Description, &job.Salary, &job.Rating, &job.Slots, &status, &job.UserID,
		&job.CreatedAt, &job.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	job.Status = domain.JobStatus(status)
	return &job, nil
}
