package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgconn"
	"github.com/jackc/pgx/v4"
	"github.com/jackc/pgx/v4/pgxpool"

	"struggle-quiz-service/internal/domain"
)

const uniqueViolation = "23505"

// WordStore is the durable app.WordStore on Postgres. The fingerprint blob
// lives in the same row as the word, so insert and delete are atomic by
// construction and no orphan fingerprints can persist.
type WordStore struct {
	pool *pgxpool.Pool
}

func NewWordStore(pool *pgxpool.Pool) *WordStore {
	return &WordStore{pool: pool}
}

func (s *WordStore) Add(ctx context.Context, scope domain.Scope, term, definition string, fpBlob []byte) (int64, error) {
	var id int64
	err := s.pool.QueryRow(ctx,
		`INSERT INTO struggle_words (guild_id, user_id, term, definition, fingerprint)
		 VALUES ($1, $2, $3, $4, $5) RETURNING id`,
		scope.GuildID, scope.UserID, term, definition, fpBlob).Scan(&id)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			return 0, domain.ErrDuplicateWord
		}
		return 0, fmt.Errorf("insert struggle word: %w", err)
	}
	return id, nil
}

func (s *WordStore) Remove(ctx context.Context, scope domain.Scope, term string) (int64, bool, error) {
	var id int64
	err := s.pool.QueryRow(ctx,
		`DELETE FROM struggle_words WHERE guild_id=$1 AND user_id=$2 AND term=$3 RETURNING id`,
		scope.GuildID, scope.UserID, term).Scan(&id)
	if errors.Is(err, pgx.ErrNoRows) {
		return 0, false, nil
	}
	if err != nil {
		return 0, false, fmt.Errorf("delete struggle word: %w", err)
	}
	return id, true, nil
}

func (s *WordStore) List(ctx context.Context, scope domain.Scope) ([]domain.StruggleWord, error) {
	rows, err := s.pool.Query(ctx,
		`SELECT id, term, definition FROM struggle_words
		 WHERE guild_id=$1 AND user_id=$2 ORDER BY term`,
		scope.GuildID, scope.UserID)
	if err != nil {
		return nil, fmt.Errorf("list struggle words: %w", err)
	}
	defer rows.Close()

	var words []domain.StruggleWord
	for rows.Next() {
		word := domain.StruggleWord{Scope: scope}
		if err := rows.Scan(&word.ID, &word.Term, &word.Definition); err != nil {
			return nil, fmt.Errorf("scan struggle word: %w", err)
		}
		words = append(words, word)
	}
	return words, rows.Err()
}

func (s *WordStore) GetFingerprint(ctx context.Context, wordID int64) ([]byte, error) {
	var blob []byte
	err := s.pool.QueryRow(ctx,
		`SELECT fingerprint FROM struggle_words WHERE id=$1`, wordID).Scan(&blob)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, domain.ErrWordNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("load fingerprint: %w", err)
	}
	return blob, nil
}
