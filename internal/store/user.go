package store

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"quotehub/internal/database"
	"quotehub/internal/model"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// ErrUserNotFound is returned when a lookup by id or email matches no row.
var ErrUserNotFound = errors.New("user not found")

const userColumns = `id, name, email, quotes, password_hash`

// sortColumns is the allow-list for the sort_by query parameter. Anything
// outside it silently falls back to id.
var sortColumns = map[string]struct{}{
	"id":     {},
	"name":   {},
	"email":  {},
	"quotes": {},
}

// orderBy resolves sortBy against the allow-list and appends id as a
// secondary key so that equal values still come back in a stable order.
func orderBy(sortBy, sortOrder string) string {
	col := sortBy
	if _, ok := sortColumns[col]; !ok {
		col = "id"
	}
	dir := "ASC"
	if strings.EqualFold(sortOrder, "desc") {
		dir = "DESC"
	}
	if col == "id" {
		return fmt.Sprintf("ORDER BY id %s", dir)
	}
	return fmt.Sprintf("ORDER BY %s %s, id ASC", col, dir)
}

func scanUser(row pgx.Row) (*model.User, error) {
	u := &model.User{}
	if err := row.Scan(
		&u.ID,
		&u.Name,
		&u.Email,
		&u.Quotes,
		&u.PasswordHash,
	); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return u, nil
}

func scanUsers(rows pgx.Rows) ([]model.User, error) {
	defer rows.Close()
	users := []model.User{}
	for rows.Next() {
		var u model.User
		if err := rows.Scan(
			&u.ID,
			&u.Name,
			&u.Email,
			&u.Quotes,
			&u.PasswordHash,
		); err != nil {
			return nil, err
		}
		users = append(users, u)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return users, nil
}

// IsUniqueViolation reports whether err is a Postgres unique constraint
// violation, the race-loser outcome of two concurrent creates with the same
// email.
func IsUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}

func CreateUser(ctx context.Context, db database.DB, u *model.User) (*model.User, error) {
	row := db.QueryRow(ctx,
		`INSERT INTO users (name, email, quotes, password_hash)
		 VALUES ($1, $2, $3, $4)
		 RETURNING id`,
		u.Name,
		u.Email,
		u.Quotes,
		u.PasswordHash,
	)
	if err := row.Scan(&u.ID); err != nil {
		return nil, fmt.Errorf("CreateUser: %w", err)
	}
	return u, nil
}

func GetUserByID(ctx context.Context, db database.DB, userID int) (*model.User, error) {
	row := db.QueryRow(ctx,
		`SELECT `+userColumns+` FROM users WHERE id = $1`,
		userID,
	)
	u, err := scanUser(row)
	if err != nil {
		if errors.Is(err, ErrUserNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("GetUserByID: %w", err)
	}
	return u, nil
}

func GetUserByEmail(ctx context.Context, db database.DB, email string) (*model.User, error) {
	row := db.QueryRow(ctx,
		`SELECT `+userColumns+` FROM users WHERE LOWER(email) = LOWER($1)`,
		email,
	)
	u, err := scanUser(row)
	if err != nil {
		if errors.Is(err, ErrUserNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("GetUserByEmail: %w", err)
	}
	return u, nil
}

// UserUpdate carries the mutable columns of a user. A nil field leaves the
// stored value untouched, a non-nil field overwrites it.
type UserUpdate struct {
	Name         *string
	Email        *string
	Quotes       *string
	PasswordHash *string
}

func UpdateUser(ctx context.Context, db database.DB, userID int, upd UserUpdate) (*model.User, error) {
	u, err := GetUserByID(ctx, db, userID)
	if err != nil {
		return nil, err
	}
	if upd.Name != nil {
		u.Name = *upd.Name
	}
	if upd.Email != nil {
		u.Email = *upd.Email
	}
	if upd.Quotes != nil {
		u.Quotes = upd.Quotes
	}
	if upd.PasswordHash != nil {
		u.PasswordHash = *upd.PasswordHash
	}
	_, err = db.Exec(ctx,
		`UPDATE users SET name = $1, email = $2, quotes = $3, password_hash = $4
		 WHERE id = $5`,
		u.Name,
		u.Email,
		u.Quotes,
		u.PasswordHash,
		u.ID,
	)
	if err != nil {
		return nil, fmt.Errorf("UpdateUser: %w", err)
	}
	return u, nil
}

// DeleteUser removes the row and returns its pre-delete snapshot.
func DeleteUser(ctx context.Context, db database.DB, userID int) (*model.User, error) {
	row := db.QueryRow(ctx,
		`DELETE FROM users WHERE id = $1
		 RETURNING `+userColumns,
		userID,
	)
	u, err := scanUser(row)
	if err != nil {
		if errors.Is(err, ErrUserNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("DeleteUser: %w", err)
	}
	return u, nil
}

func ListUsers(ctx context.Context, db database.DB, skip, limit int, sortBy, sortOrder string) ([]model.User, error) {
	rows, err := db.Query(ctx,
		`SELECT `+userColumns+` FROM users `+orderBy(sortBy, sortOrder)+` OFFSET $1 LIMIT $2`,
		skip,
		limit,
	)
	if err != nil {
		return nil, fmt.Errorf("ListUsers: %w", err)
	}
	users, err := scanUsers(rows)
	if err != nil {
		return nil, fmt.Errorf("ListUsers: %w", err)
	}
	return users, nil
}

// FilterUsers returns every user matching the conjunction of the supplied
// predicates: case-insensitive substring on name and quotes, case-insensitive
// prefix on name. Empty arguments contribute no predicate.
func FilterUsers(ctx context.Context, db database.DB, name, quote, alphabet, sortBy, sortOrder string) ([]model.User, error) {
	conds := []string{}
	args := []any{}
	if name != "" {
		args = append(args, name)
		conds = append(conds, fmt.Sprintf("name ILIKE '%%' || $%d || '%%'", len(args)))
	}
	if quote != "" {
		args = append(args, quote)
		conds = append(conds, fmt.Sprintf("quotes ILIKE '%%' || $%d || '%%'", len(args)))
	}
	if alphabet != "" {
		args = append(args, alphabet)
		conds = append(conds, fmt.Sprintf("name ILIKE $%d || '%%'", len(args)))
	}

	query := `SELECT ` + userColumns + ` FROM users`
	if len(conds) > 0 {
		query += ` WHERE ` + strings.Join(conds, " AND ")
	}
	query += ` ` + orderBy(sortBy, sortOrder)

	rows, err := db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("FilterUsers: %w", err)
	}
	users, err := scanUsers(rows)
	if err != nil {
		return nil, fmt.Errorf("FilterUsers: %w", err)
	}
	return users, nil
}

// UpdateUserQuote overwrites the quotes column only.
func UpdateUserQuote(ctx context.Context, db database.DB, userID int, quote string) (*model.User, error) {
	row := db.QueryRow(ctx,
		`UPDATE users SET quotes = $1 WHERE id = $2
		 RETURNING `+userColumns,
		quote,
		userID,
	)
	u, err := scanUser(row)
	if err != nil {
		if errors.Is(err, ErrUserNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("UpdateUserQuote: %w", err)
	}
	return u, nil
}

// ClearUserQuote resets the quotes column to NULL.
func ClearUserQuote(ctx context.Context, db database.DB, userID int) (*model.User, error) {
	row := db.QueryRow(ctx,
		`UPDATE users SET quotes = NULL WHERE id = $1
		 RETURNING `+userColumns,
		userID,
	)
	u, err := scanUser(row)
	if err != nil {
		if errors.Is(err, ErrUserNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("ClearUserQuote: %w", err)
	}
	return u, nil
}
