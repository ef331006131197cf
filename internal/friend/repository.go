package friend

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"
	"github.com/lib/pq"
)

// Repository handles friend data persistence.
//
// Schema:
//
//	CREATE TABLE friends (
//	    id         UUID PRIMARY KEY,
//	    name       TEXT NOT NULL,
//	    email      TEXT UNIQUE,
//	    avatar_url TEXT,
//	    created_at TIMESTAMPTZ NOT NULL DEFAULT now()
//	);
type Repository struct {
	db *sql.DB
}

// NewRepository creates a new friend repository with database dependency injected
func NewRepository(db *sql.DB) *Repository {
	return &Repository{db: db}
}

// Create inserts a new friend into the database
func (r *Repository) Create(ctx context.Context, req *CreateFriendRequest) (*Friend, error) {
	query := `
		INSERT INTO friends (id, name, email, avatar_url)
		VALUES ($1, $2, $3, $4)
		RETURNING id, name, email, avatar_url, created_at
	`

	friend := &Friend{}
	err := r.db.QueryRowContext(ctx, query, uuid.New().String(), req.Name, req.Email, req.AvatarURL).Scan(
		&friend.ID,
		&friend.Name,
		&friend.Email,
		&friend.AvatarURL,
		&friend.CreatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create friend: %w", err)
	}

	return friend, nil
}

// GetByID retrieves a friend by their ID
func (r *Repository) GetByID(ctx context.Context, id string) (*Friend, error) {
	query := `
		SELECT id, name, email, avatar_url, created_at
		FROM friends
		WHERE id = $1
	`

	friend := &Friend{}
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&friend.ID,
		&friend.Name,
		&friend.Email,
		&friend.AvatarURL,
		&friend.CreatedAt,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get friend: %w", err)
	}

	return friend, nil
}

// GetByEmail retrieves a friend by their email
func (r *Repository) GetByEmail(ctx context.Context, email string) (*Friend, error) {
	query := `
		SELECT id, name, email, avatar_url, created_at
		FROM friends
		WHERE email = $1
	`

	friend := &Friend{}
	err := r.db.QueryRowContext(ctx, query, email).Scan(
		&friend.ID,
		&friend.Name,
		&friend.Email,
		&friend.AvatarURL,
		&friend.CreatedAt,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get friend by email: %w", err)
	}

	return friend, nil
}

// List retrieves all friends with pagination, sorted by name
func (r *Repository) List(ctx context.Context, limit, offset int) ([]*Friend, int, error) {
	var total int
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM friends`).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count friends: %w", err)
	}

	query := `
		SELECT id, name, email, avatar_url, created_at
		FROM friends
		ORDER BY name
		LIMIT $1 OFFSET $2
	`

	rows, err := r.db.QueryContext(ctx, query, limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list friends: %w", err)
	}
	defer rows.Close()

	var friends []*Friend
	for rows.Next() {
		friend := &Friend{}
		err := rows.Scan(
			&friend.ID,
			&friend.Name,
			&friend.Email,
			&friend.AvatarURL,
			&friend.CreatedAt,
		)
		if err != nil {
			return nil, 0, fmt.Errorf("failed to scan friend: %w", err)
		}
		friends = append(friends, friend)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("failed to iterate friends: %w", err)
	}

	return friends, total, nil
}

// GetNamesByIDs retrieves display names for a batch of friend ids. IDs that
// are not friends (contacts, temp people) are simply absent from the result.
func (r *Repository) GetNamesByIDs(ctx context.Context, ids []string) (map[string]string, error) {
	if len(ids) == 0 {
		return map[string]string{}, nil
	}

	// Person ids may be contact or temp ids that are not valid UUIDs, so
	// compare as text rather than letting postgres reject the cast.
	query := `
		SELECT id, name
		FROM friends
		WHERE id::text = ANY($1)
	`

	rows, err := r.db.QueryContext(ctx, query, pq.Array(ids))
	if err != nil {
		return nil, fmt.Errorf("failed to look up friend names: %w", err)
	}
	defer rows.Close()

	names := make(map[string]string, len(ids))
	for rows.Next() {
		var id, name string
		if err := rows.Scan(&id, &name); err != nil {
			return nil, fmt.Errorf("failed to scan friend name: %w", err)
		}
		names[id] = name
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate friend names: %w", err)
	}

	return names, nil
}

// Update modifies an existing friend
func (r *Repository) Update(ctx context.Context, id string, req *UpdateFriendRequest) (*Friend, error) {
	query := `
		UPDATE friends
		SET name = COALESCE($2, name),
		    avatar_url = COALESCE($3, avatar_url)
		WHERE id = $1
		RETURNING id, name, email, avatar_url, created_at
	`

	friend := &Friend{}
	err := r.db.QueryRowContext(ctx, query, id, req.Name, req.AvatarURL).Scan(
		&friend.ID,
		&friend.Name,
		&friend.Email,
		&friend.AvatarURL,
		&friend.CreatedAt,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to update friend: %w", err)
	}

	return friend, nil
}

// Delete removes a friend
func (r *Repository) Delete(ctx context.Context, id string) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM friends WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete friend: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check delete result: %w", err)
	}
	if affected == 0 {
		return ErrFriendNotFound
	}

	return nil
}
