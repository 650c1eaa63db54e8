package course

import (
	"context"
	"database/sql"
	"errors"
)

// UpsertUser inserts the user, or updates name and password in place when a
// row with the same username already exists. The username itself is never
// rewritten. Returns the user id either way.
func (s *SQLiteStore) UpsertUser(ctx context.Context, user User) (int64, error) {
	id, err := s.LookupUserID(ctx, user.Username)
	switch {
	case err == nil:
		_, err = s.db.ExecContext(
			ctx,
			`UPDATE User SET Firstname = ?, Lastname = ?, Password = ? WHERE Username = ?`,
			user.FirstName,
			user.LastName,
			user.Password,
			user.Username,
		)
		if err != nil {
			return 0, err
		}
		return id, nil

	case errors.Is(err, ErrUserNotFound):
		res, err := s.db.ExecContext(
			ctx,
			`INSERT INTO User (Username, Firstname, Lastname, Password) VALUES (?, ?, ?, ?)`,
			user.Username,
			user.FirstName,
			user.LastName,
			user.Password,
		)
		if err != nil {
			return 0, err
		}
		return res.LastInsertId()

	default:
		return 0, err
	}
}

// LookupUserID resolves a username to its id, or ErrUserNotFound.
func (s *SQLiteStore) LookupUserID(ctx context.Context, username string) (int64, error) {
	var id int64
	err := s.db.QueryRowContext(
		ctx,
		`SELECT UserId FROM User WHERE Username = ?`,
		username,
	).Scan(&id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return 0, ErrUserNotFound
		}
		return 0, err
	}
	return id, nil
}

// VerifyCredentials reports whether a user row matches both username and
// password exactly. The comparison is plaintext against the stored column;
// see the User type for the security caveat.
func (s *SQLiteStore) VerifyCredentials(ctx context.Context, username, password string) (bool, error) {
	var found int
	err := s.db.QueryRowContext(
		ctx,
		`SELECT 1 FROM User WHERE Username = ? AND Password = ? LIMIT 1`,
		username,
		password,
	).Scan(&found)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}
