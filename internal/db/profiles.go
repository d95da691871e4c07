package db

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

const profileColumns = `id, display_name, skills, location, role, verified, avatar_ref, created_at, updated_at`

// DefaultCandidateLimit bounds the candidate pool loaded for recommendations
const DefaultCandidateLimit = 500

func scanProfile(row pgx.Row) (*Profile, error) {
	var p Profile
	err := row.Scan(&p.ID, &p.DisplayName, &p.Skills, &p.Location, &p.Role,
		&p.Verified, &p.AvatarRef, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func collectProfiles(rows pgx.Rows) ([]Profile, error) {
	defer rows.Close()

	profiles := []Profile{}
	for rows.Next() {
		p, err := scanProfile(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan profile: %w", err)
		}
		profiles = append(profiles, *p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate profiles: %w", err)
	}
	return profiles, nil
}

// CreateProfile inserts a profile for an existing user
func (db *DB) CreateProfile(ctx context.Context, p *Profile) error {
	err := db.pool.QueryRow(ctx,
		`INSERT INTO profiles (id, display_name, skills, location, role, verified, avatar_ref)
		 VALUES ($1, $2, $3, $4, $5, $6, $7)
		 RETURNING created_at, updated_at`,
		p.ID, p.DisplayName, p.Skills, p.Location, p.Role, p.Verified, p.AvatarRef,
	).Scan(&p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to create profile: %w", err)
	}
	return nil
}

// GetProfile retrieves a profile by ID. Returns (nil, nil) if not found.
func (db *DB) GetProfile(ctx context.Context, id uuid.UUID) (*Profile, error) {
	p, err := scanProfile(db.pool.QueryRow(ctx,
		`SELECT `+profileColumns+` FROM profiles WHERE id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get profile: %w", err)
	}
	return p, nil
}

// GetProfiles retrieves the profiles with the given IDs. Missing IDs are skipped.
func (db *DB) GetProfiles(ctx context.Context, ids []uuid.UUID) ([]Profile, error) {
	if len(ids) == 0 {
		return []Profile{}, nil
	}
	rows, err := db.pool.Query(ctx,
		`SELECT `+profileColumns+` FROM profiles WHERE id = ANY($1) ORDER BY created_at, id`, ids)
	if err != nil {
		return nil, fmt.Errorf("failed to get profiles: %w", err)
	}
	return collectProfiles(rows)
}

// ListProfilesExcluding returns up to limit profiles other than id, oldest first.
// The order is stable so recommendation ties resolve the same way on every call.
func (db *DB) ListProfilesExcluding(ctx context.Context, id uuid.UUID, limit int) ([]Profile, error) {
	if limit <= 0 {
		limit = DefaultCandidateLimit
	}
	rows, err := db.pool.Query(ctx,
		`SELECT `+profileColumns+` FROM profiles WHERE id <> $1 ORDER BY created_at, id LIMIT $2`,
		id, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list profiles: %w", err)
	}
	return collectProfiles(rows)
}

// UpdateProfile overwrites the editable fields of a profile.
// Returns (nil, nil) if the profile does not exist.
func (db *DB) UpdateProfile(ctx context.Context, id uuid.UUID, in ProfileUpdate) (*Profile, error) {
	p, err := scanProfile(db.pool.QueryRow(ctx,
		`UPDATE profiles
		 SET display_name = $2, skills = $3, location = $4, role = $5, avatar_ref = $6, updated_at = NOW()
		 WHERE id = $1
		 RETURNING `+profileColumns,
		id, in.DisplayName, StringArray(in.Skills), in.Location, in.Role, in.AvatarRef))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to update profile: %w", err)
	}
	return p, nil
}
