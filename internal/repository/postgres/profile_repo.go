package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"go-devnet-backend/internal/domain"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/lib/pq"
)

const pgForeignKeyViolation = "23503"

// profileColumns expects profiles aliased as p and users as u.
const profileColumns = `
	p.id::text, p.user_id::text, u.name, u.avatar, COALESCE(p.handle, ''),
	p.company, p.website, p.location, p.status, p.bio, p.github_username,
	p.skills, p.social, p.education, p.experience, p.created_at`

type profileRepo struct {
	db *pgxpool.Pool
}

func NewProfileRepository(db *pgxpool.Pool) domain.ProfileRepository {
	return &profileRepo{db: db}
}

func (r *profileRepo) GetByUserID(ctx context.Context, userID string) (*domain.Profile, error) {
	query := `SELECT ` + profileColumns + `
		FROM profiles p JOIN users u ON u.id = p.user_id
		WHERE p.user_id = $1`
	return scanProfile(r.db.QueryRow(ctx, query, userID))
}

func (r *profileRepo) GetByHandle(ctx context.Context, handle string) (*domain.Profile, error) {
	query := `SELECT ` + profileColumns + `
		FROM profiles p JOIN users u ON u.id = p.user_id
		WHERE p.handle = $1`
	return scanProfile(r.db.QueryRow(ctx, query, handle))
}

func (r *profileRepo) List(ctx context.Context) ([]domain.Profile, error) {
	query := `SELECT ` + profileColumns + `
		FROM profiles p JOIN users u ON u.id = p.user_id
		ORDER BY p.created_at DESC`

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list profiles: %w", err)
	}
	defer rows.Close()

	profiles := []domain.Profile{}
	for rows.Next() {
		profile, err := scanProfile(rows)
		if err != nil {
			return nil, err
		}
		profiles = append(profiles, *profile)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list profiles: %w", err)
	}
	return profiles, nil
}

// Create inserts the profile and fills in the owner's name and avatar.
func (r *profileRepo) Create(ctx context.Context, profile *domain.Profile) error {
	social, err := json.Marshal(profile.Social)
	if err != nil {
		return fmt.Errorf("encode social: %w", err)
	}
	education, experience, err := encodeEntries(profile)
	if err != nil {
		return err
	}

	query := `
		INSERT INTO profiles (
			id, user_id, handle, company, website, location, status, bio,
			github_username, skills, social, education, experience, created_at
		) VALUES (
			$1, $2, NULLIF($3, ''), $4, $5, $6, $7, $8,
			$9, $10::text[], $11::jsonb, $12::jsonb, $13::jsonb, $14
		)
		RETURNING
			(SELECT name FROM users WHERE id = $2),
			(SELECT avatar FROM users WHERE id = $2)`

	err = r.db.QueryRow(ctx, query,
		profile.ID, profile.User.ID, profile.Handle, profile.Company, profile.Website,
		profile.Location, profile.Status, profile.Bio, profile.GithubUsername,
		pq.Array(profile.Skills), string(social), education, experience, profile.CreatedAt,
	).Scan(&profile.User.Name, &profile.User.Avatar)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) {
			switch pgErr.Code {
			case pgUniqueViolation:
				return domain.ErrConflict
			case pgForeignKeyViolation:
				return domain.ErrNotFound
			}
		}
		return fmt.Errorf("insert profile: %w", err)
	}
	return nil
}

// Update merges the present fields in one statement. Absent scalars and
// skills are passed as NULL, so COALESCE keeps the stored value. A non-nil
// skills array replaces the set. `social || $10` overwrites only the social
// keys that were sent.
func (r *profileRepo) Update(ctx context.Context, userID string, fields domain.ProfileFields) (*domain.Profile, error) {
	social, err := json.Marshal(fields.Social)
	if err != nil {
		return nil, fmt.Errorf("encode social: %w", err)
	}

	query := `
		WITH p AS (
			UPDATE profiles SET
				handle          = COALESCE($2::text, handle),
				company         = COALESCE($3::text, company),
				website         = COALESCE($4::text, website),
				location        = COALESCE($5::text, location),
				status          = COALESCE($6::text, status),
				bio             = COALESCE($7::text, bio),
				github_username = COALESCE($8::text, github_username),
				skills          = COALESCE($9::text[], skills),
				social          = social || $10::jsonb
			WHERE user_id = $1
			RETURNING *
		)
		SELECT ` + profileColumns + `
		FROM p JOIN users u ON u.id = p.user_id`

	profile, err := scanProfile(r.db.QueryRow(ctx, query,
		userID, fields.Handle, fields.Company, fields.Website, fields.Location,
		fields.Status, fields.Bio, fields.GithubUsername, pq.Array(fields.Skills),
		string(social),
	))
	if err != nil {
		if isUniqueViolation(err) {
			return nil, domain.ErrConflict
		}
		return nil, err
	}
	return profile, nil
}

// SaveEntries overwrites the education and experience arrays.
func (r *profileRepo) SaveEntries(ctx context.Context, profile *domain.Profile) error {
	education, experience, err := encodeEntries(profile)
	if err != nil {
		return err
	}

	tag, err := r.db.Exec(ctx,
		`UPDATE profiles SET education = $2::jsonb, experience = $3::jsonb WHERE user_id = $1`,
		profile.User.ID, education, experience,
	)
	if err != nil {
		return fmt.Errorf("save profile entries: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// DeleteByUserID succeeds when there is no profile to delete.
func (r *profileRepo) DeleteByUserID(ctx context.Context, userID string) error {
	if _, err := r.db.Exec(ctx, `DELETE FROM profiles WHERE user_id = $1`, userID); err != nil {
		return fmt.Errorf("delete profile: %w", err)
	}
	return nil
}

func scanProfile(row pgx.Row) (*domain.Profile, error) {
	var (
		p                             domain.Profile
		social, education, experience []byte
	)
	err := row.Scan(
		&p.ID, &p.User.ID, &p.User.Name, &p.User.Avatar, &p.Handle,
		&p.Company, &p.Website, &p.Location, &p.Status, &p.Bio, &p.GithubUsername,
		pq.Array(&p.Skills), &social, &education, &experience, &p.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("scan profile: %w", err)
	}

	if err := json.Unmarshal(social, &p.Social); err != nil {
		return nil, fmt.Errorf("decode social: %w", err)
	}
	if err := json.Unmarshal(education, &p.Education); err != nil {
		return nil, fmt.Errorf("decode education: %w", err)
	}
	if err := json.Unmarshal(experience, &p.Experience); err != nil {
		return nil, fmt.Errorf("decode experience: %w", err)
	}

	if p.Skills == nil {
		p.Skills = []string{}
	}
	if p.Education == nil {
		p.Education = []domain.Education{}
	}
	if p.Experience == nil {
		p.Experience = []domain.Experience{}
	}
	return &p, nil
}

func encodeEntries(profile *domain.Profile) (string, string, error) {
	education := profile.Education
	if education == nil {
		education = []domain.Education{}
	}
	experience := profile.Experience
	if experience == nil {
		experience = []domain.Experience{}
	}

	edu, err := json.Marshal(education)
	if err != nil {
		return "", "", fmt.Errorf("encode education: %w", err)
	}
	exp, err := json.Marshal(experience)
	if err != nil {
		return "", "", fmt.Errorf("encode experience: %w", err)
	}
	return string(edu), string(exp), nil
}
