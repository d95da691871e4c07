package db

import (
	"context"
	"fmt"

	"github.com/google/uuid"
)

// DefaultListingLimit is used when ListingFilter.Limit is zero
const DefaultListingLimit = 50

// CreateListing inserts a listing and fills in its ID and creation time
func (db *DB) CreateListing(ctx context.Context, l *Listing) error {
	err := db.pool.QueryRow(ctx,
		`INSERT INTO listings (seller_id, title, description, brand, category, condition_label, year, price, image_ref)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		 RETURNING id, created_at`,
		l.SellerID, l.Title, l.Description, l.Brand, l.Category, l.ConditionLabel, l.Year, l.Price, l.ImageRef,
	).Scan(&l.ID, &l.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to create listing: %w", err)
	}
	return nil
}

// ListListings retrieves listings with optional filters, newest first
func (db *DB) ListListings(ctx context.Context, filter ListingFilter) ([]Listing, error) {
	if filter.Limit <= 0 {
		filter.Limit = DefaultListingLimit
	}

	query := `SELECT id, seller_id, title, description, brand, category, condition_label, year, price, image_ref, created_at
		FROM listings WHERE 1=1`
	args := []any{}
	argNum := 1

	if filter.Category != "" {
		query += fmt.Sprintf(" AND category = $%d", argNum)
		args = append(args, filter.Category)
		argNum++
	}
	if filter.Brand != "" {
		query += fmt.Sprintf(" AND brand = $%d", argNum)
		args = append(args, filter.Brand)
		argNum++
	}
	if filter.SellerID != uuid.Nil {
		query += fmt.Sprintf(" AND seller_id = $%d", argNum)
		args = append(args, filter.SellerID)
		argNum++
	}

	query += fmt.Sprintf(" ORDER BY created_at DESC LIMIT $%d", argNum)
	args = append(args, filter.Limit)

	rows, err := db.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list listings: %w", err)
	}
	defer rows.Close()

	listings := []Listing{}
	for rows.Next() {
		var l Listing
		if err := rows.Scan(&l.ID, &l.SellerID, &l.Title, &l.Description, &l.Brand, &l.Category,
			&l.ConditionLabel, &l.Year, &l.Price, &l.ImageRef, &l.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan listing: %w", err)
		}
		listings = append(listings, l)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate listings: %w", err)
	}
	return listings, nil
}
