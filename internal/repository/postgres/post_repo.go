package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"go-devnet-backend/internal/domain"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const postColumns = `id::text, user_id::text, text, name, avatar, likes, created_at`

type postRepo struct {
	db *pgxpool.Pool
}

func NewPostRepository(db *pgxpool.Pool) domain.PostRepository {
	return &postRepo{db: db}
}

func (r *postRepo) List(ctx context.Context) ([]domain.Post, error) {
	rows, err := r.db.Query(ctx, `SELECT `+postColumns+` FROM posts ORDER BY created_at DESC`)
	if err != nil {
		return nil, fmt.Errorf("list posts: %w", err)
	}
	defer rows.Close()

	posts := []domain.Post{}
	for rows.Next() {
		post, err := scanPost(rows)
		if err != nil {
			return nil, err
		}
		posts = append(posts, *post)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list posts: %w", err)
	}
	return posts, nil
}

func (r *postRepo) GetByID(ctx context.Context, id string) (*domain.Post, error) {
	return scanPost(r.db.QueryRow(ctx, `SELECT `+postColumns+` FROM posts WHERE id = $1`, id))
}

func (r *postRepo) Create(ctx context.Context, post *domain.Post) error {
	likes, err := json.Marshal(post.Likes)
	if err != nil {
		return fmt.Errorf("encode likes: %w", err)
	}

	query := `INSERT INTO posts (id, user_id, text, name, avatar, likes, created_at)
              VALUES ($1, $2, $3, $4, $5, $6::jsonb, $7)`
	_, err = r.db.Exec(ctx, query,
		post.ID, post.User, post.Text, post.Name, post.Avatar, string(likes), post.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert post: %w", err)
	}
	return nil
}

func (r *postRepo) Delete(ctx context.Context, id string) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM posts WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete post: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// AddLike prepends the like only while no like by the same user exists.
// The `NOT (likes @> probe)` guard runs inside the UPDATE, so two concurrent
// requests cannot both succeed and a user holds at most one like per post.
func (r *postRepo) AddLike(ctx context.Context, postID string, like domain.Like) (*domain.Post, error) {
	entry, err := json.Marshal([]domain.Like{like})
	if err != nil {
		return nil, fmt.Errorf("encode like: %w", err)
	}
	probe, err := likeProbe(like.User)
	if err != nil {
		return nil, err
	}

	query := `
		UPDATE posts SET likes = $2::jsonb || likes
		WHERE id = $1 AND NOT (likes @> $3::jsonb)
		RETURNING ` + postColumns

	post, err := scanPost(r.db.QueryRow(ctx, query, postID, string(entry), probe))
	if errors.Is(err, domain.ErrNotFound) {
		return nil, domain.ErrConflict
	}
	return post, err
}

// RemoveLike drops the user's like, keeping the order of the others. The
// `likes @> probe` guard makes the write a no-op (ErrConflict) when the user
// holds no like, including when a concurrent unlike got there first.
func (r *postRepo) RemoveLike(ctx context.Context, postID, userID string) (*domain.Post, error) {
	probe, err := likeProbe(userID)
	if err != nil {
		return nil, err
	}

	query := `
		UPDATE posts SET likes = COALESCE((
			SELECT jsonb_agg(t.elem ORDER BY t.ord)
			FROM jsonb_array_elements(likes) WITH ORDINALITY AS t(elem, ord)
			WHERE t.elem->>'user' <> $2
		), '[]'::jsonb)
		WHERE id = $1 AND likes @> $3::jsonb
		RETURNING ` + postColumns

	post, err := scanPost(r.db.QueryRow(ctx, query, postID, userID, probe))
	if errors.Is(err, domain.ErrNotFound) {
		return nil, domain.ErrConflict
	}
	return post, err
}

// likeProbe builds the containment operand matching any like by userID.
func likeProbe(userID string) (string, error) {
	b, err := json.Marshal([]map[string]string{{"user": userID}})
	if err != nil {
		return "", fmt.Errorf("encode like probe: %w", err)
	}
	return string(b), nil
}

func scanPost(row pgx.Row) (*domain.Post, error) {
	var (
		post  domain.Post
		likes []byte
	)
	err := row.Scan(&post.ID, &post.User, &post.Text, &post.Name, &post.Avatar, &likes, &post.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("scan post: %w", err)
	}

	if err := json.Unmarshal(likes, &post.Likes); err != nil {
		return nil, fmt.Errorf("decode likes: %w", err)
	}
	if post.Likes == nil {
		post.Likes = []domain.Like{}
	}
	return &post, nil
}
