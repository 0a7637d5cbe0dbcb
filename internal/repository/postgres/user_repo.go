package postgres

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"ergasia-marketplace/internal/domain"
)

type userRepo struct {
	db *pgxpool.Pool
}

func NewUserRepository(db *pgxpool.Pool) domain.UserRepository {
	return &userRepo{db: db}
}

const userColumns = `id, username, description, rating, created_at, updated_at`

// Create returns domain.ErrConflict when the id is taken.
func (r *userRepo) Create(ctx context.Context, user *domain.User) error {
	query := `INSERT INTO users (id, username, description, rating, created_at, updated_at)
              VALUES ($1, $2, $3, $4, $5, $6)`
	_, err := r.db.Exec(ctx, query, user.ID, user.Username, user.Description, user.Rating, user.CreatedAt, user.UpdatedAt)
	return translate(err)
}

func (r *userRepo) GetByID(ctx context.Context, id string) (*domain.User, error) {
	var user domain.User
	err := r.db.QueryRow(ctx, `SELECT `+userColumns+` FROM users WHERE id = $1`, id).Scan(
		&user.ID, &user.Username, &user.Description, &user.Rating, &user.CreatedAt, &user.UpdatedAt,
	)
	if err != nil {
		return nil, translate(err)
	}
	users := []domain.User{user}
	if err := r.attachPreferences(ctx, users); err != nil {
		return nil, err
	}
	return &users[0], nil
}

func (r *userRepo) FetchAll(ctx context.Context) ([]domain.User, error) {
	rows, err := r.db.Query(ctx, `SELECT `+userColumns+` FROM users ORDER BY rating DESC, created_at`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	users := []domain.User{}
	for rows.Next() {
		var u domain.User
		if err := rows.Scan(&u.ID, &u.Username, &u.Description, &u.Rating, &u.CreatedAt, &u.UpdatedAt); err != nil {
			return nil, err
		}
		users = append(users, u)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if err := r.attachPreferences(ctx, users); err != nil {
		return nil, err
	}
	return users, nil
}

func (r *userRepo) attachPreferences(ctx context.Context, users []domain.User) error {
	if len(users) == 0 {
		return nil
	}
	ids := make([]string, 0, len(users))
	index := make(map[string]int, len(users))
	for i, u := range users {
		ids = append(ids, u.ID)
		index[u.ID] = i
	}

	query := `SELECT up.user_id, c.id::text, c.name
              FROM user_preferences up
              JOIN job_categories c ON c.id = up.category_id
              WHERE up.user_id = ANY($1)
              ORDER BY up.user_id, c.name`
	rows, err := r.db.Query(ctx, query, ids)
	if err != nil {
		return err
	}
	defer rows.Close()

	for rows.Next() {
		var userID string
		var c domain.JobCategory
		if err := rows.Scan(&userID, &c.ID, &c.Name); err != nil {
			return err
		}
		if i, ok := index[userID]; ok {
			users[i].PreferredCategories = append(users[i].PreferredCategories, c)
		}
	}
	return rows.Err()
}
