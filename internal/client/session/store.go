// Package session persists the access/refresh token pair in the local
// metadata table so a session survives restarts of the client.
package session

import (
	"context"
	"database/sql"

	"github.com/dmitrijs2005/washstore/internal/client/repositories/metadata"
)

const (
	AccessTokenKey  = "access_token"
	RefreshTokenKey = "refresh_token"
)

// Store implements api.TokenStore on top of SQLite. Every write is
// committed before the method returns. An empty token is stored as absence.
type Store struct {
	db *sql.DB
}

func NewStore(db *sql.DB) *Store {
	return &Store{db: db}
}

func (s *Store) AccessToken(ctx context.Context) (string, error) {
	return s.get(ctx, AccessTokenKey)
}

func (s *Store) RefreshToken(ctx context.Context) (string, error) {
	return s.get(ctx, RefreshTokenKey)
}

func (s *Store) SetAccessToken(ctx context.Context, token string) error {
	return put(ctx, metadata.NewSQLiteRepository(s.db), AccessTokenKey, token)
}

func (s *Store) SetRefreshToken(ctx context.Context, token string) error {
	return put(ctx, metadata.NewSQLiteRepository(s.db), RefreshTokenKey, token)
}

// SetTokens replaces both tokens atomically.
func (s *Store) SetTokens(ctx context.Context, access, refresh string) error {
	return s.inTx(ctx, func(repo metadata.Repository) error {
		if err := put(ctx, repo, AccessTokenKey, access); err != nil {
			return err
		}
		return put(ctx, repo, RefreshTokenKey, refresh)
	})
}

// inTx runs fn against a repository bound to one transaction. The
// transaction is committed only if fn returns nil; a panic in fn rolls it
// back and is re-raised.
func (s *Store) inTx(ctx context.Context, fn func(repo metadata.Repository) error) (err error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}

	defer func() {
		if p := recover(); p != nil {
			_ = tx.Rollback()
			panic(p)
		}
		if err != nil {
			_ = tx.Rollback()
			return
		}
		err = tx.Commit()
	}()

	return fn(metadata.NewSQLiteRepository(tx))
}

func (s *Store) ClearTokens(ctx context.Context) error {
	return metadata.NewSQLiteRepository(s.db).Delete(ctx, AccessTokenKey, RefreshTokenKey)
}

func (s *Store) get(ctx context.Context, key string) (string, error) {
	v, err := metadata.NewSQLiteRepository(s.db).Get(ctx, key)
	if err != nil {
		return "", err
	}
	return string(v), nil
}

func put(ctx context.Context, repo metadata.Repository, key, token string) error {
	if token == "" {
		return repo.Delete(ctx, key)
	}
	return repo.Set(ctx, key, []byte(token))
}
