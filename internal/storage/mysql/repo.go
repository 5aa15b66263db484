package mysql

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	gomysql "github.com/go-sql-driver/mysql"

	"house_explorer/internal/domain"
)

// errNoReferencedRow is MySQL's foreign key violation on insert.
const errNoReferencedRow = 1452

type Repo struct{ db *sql.DB }

func New(db *sql.DB) *Repo { return &Repo{db: db} }

func (r *Repo) UpsertListing(ctx context.Context, l domain.Listing) error {
	gallery, err := json.Marshal(l.GalleryImages)
	if err != nil {
		return err
	}
	_, err = r.db.ExecContext(ctx, upsertListingSQL,
		l.ID, l.Title, l.Location, l.Description, l.Price, l.ImageURL, string(gallery), l.Architect,
		l.Year, l.Sqft, l.Bedrooms, l.Bathrooms, string(l.Style), l.Featured,
		l.Ratings.Architecture, l.Ratings.Interior, l.Ratings.Landscape, l.Ratings.Overall,
		l.AverageRating, l.ReviewCount,
	)
	return err
}

func (r *Repo) UpsertReviews(ctx context.Context, rs []domain.Review) error {
	if len(rs) == 0 {
		return nil
	}
	values := make([]string, 0, len(rs))
	args := make([]any, 0, len(rs)*8)
	for _, rv := range rs {
		values = append(values, "(?,?,?,?,?,?,?,?)")
		args = append(args, reviewArgs(rv)...)
	}
	sqlStr := insertReviewsPrefix + strings.Join(values, ",") + insertReviewsOnDup
	_, err := r.db.ExecContext(ctx, sqlStr, args...)
	return err
}

func (r *Repo) LogMiss(ctx context.Context, id string, status int, reason string) error {
	if rs := []rune(reason); len(rs) > 255 {
		reason = string(rs[:255])
	}
	_, err := r.db.ExecContext(ctx, insertMissSQL, id, status, reason)
	return err
}

func (r *Repo) GetAll(ctx context.Context) ([]domain.Listing, error) {
	rows, err := r.db.QueryContext(ctx, listListingsSQL)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []domain.Listing{}
	for rows.Next() {
		l, err := scanListing(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, l)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

func (r *Repo) GetByID(ctx context.Context, id string) (domain.Listing, error) {
	l, err := scanListing(r.db.QueryRowContext(ctx, getListingSQL, id))
	if errors.Is(err, sql.ErrNoRows) {
		return domain.Listing{}, domain.ErrNotFound
	}
	return l, err
}

func (r *Repo) ListByListing(ctx context.Context, listingID string) ([]domain.Review, error) {
	rows, err := r.db.QueryContext(ctx, listReviewsSQL, listingID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []domain.Review{}
	for rows.Next() {
		var (
			rv       domain.Review
			userID   sql.NullString
			username sql.NullString
			avatar   sql.NullString
		)
		if err := rows.Scan(&rv.ID, &rv.ListingID, &userID, &username, &avatar,
			&rv.Rating, &rv.Comment, &rv.CreatedAt); err != nil {
			return nil, err
		}
		rv.UserID, rv.Username, rv.Avatar = userID.String, username.String, avatar.String
		rv.CreatedAt = rv.CreatedAt.UTC()
		out = append(out, rv)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

func (r *Repo) Append(ctx context.Context, rv domain.Review) (domain.Review, error) {
	_, err := r.db.ExecContext(ctx, insertReviewSQL, reviewArgs(rv)...)
	var me *gomysql.MySQLError
	if errors.As(err, &me) && me.Number == errNoReferencedRow {
		return domain.Review{}, fmt.Errorf("listing %q: %w", rv.ListingID, domain.ErrNotFound)
	}
	if err != nil {
		return domain.Review{}, err
	}
	return rv, nil
}

func reviewArgs(rv domain.Review) []any {
	created := rv.CreatedAt
	if created.IsZero() {
		created = time.Now()
	}
	return []any{
		rv.ID,
		rv.ListingID,
		nullStr(rv.UserID),
		nullStr(rv.Username),
		nullStr(rv.Avatar),
		rv.Rating,
		rv.Comment,
		created.UTC(),
	}
}

func nullStr(s string) any {
	if s == "" {
		return nil
	}
	return s
}

type scanner interface {
	Scan(dest ...any) error
}

func scanListing(s scanner) (domain.Listing, error) {
	var (
		l       domain.Listing
		gallery []byte
		style   string
		desc    sql.NullString
		arch    sql.NullString
	)
	if err := s.Scan(
		&l.ID, &l.Title, &l.Location, &desc, &l.Price, &l.ImageURL, &gallery, &arch,
		&l.Year, &l.Sqft, &l.Bedrooms, &l.Bathrooms, &style, &l.Featured,
		&l.Ratings.Architecture, &l.Ratings.Interior, &l.Ratings.Landscape, &l.Ratings.Overall,
		&l.AverageRating, &l.ReviewCount,
	); err != nil {
		return domain.Listing{}, err
	}
	l.Description, l.Architect = desc.String, arch.String
	l.Style = domain.Style(style)
	l.GalleryImages = []string{}
	if len(gallery) > 0 {
		if err := json.Unmarshal(gallery, &l.GalleryImages); err != nil {
			return domain.Listing{}, fmt.Errorf("listing %s gallery: %w", l.ID, err)
		}
	}
	return l, nil
}
