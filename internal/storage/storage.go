// Package storage реализует хранилище данных на основе PostgreSQL
// для управления учётными записями, профилями, настройками,
// каталогом курсов и записями на курсы.
package storage

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Ошибки уровня хранилища. Нарушение уникальности и отсутствие записи
// приводятся к этим значениям, выше уровня хранилища коды postgres
// не протекают.
var (
	// ErrNotFound запись не найдена.
	ErrNotFound = errors.New("not found")
	// ErrConflict нарушено ограничение уникальности.
	ErrConflict = errors.New("conflict")
)

// Storage обёртка над пулом подключений к PostgreSQL.
type Storage struct {
	pool *pgxpool.Pool
}

// New создаёт пул подключений и проверяет доступность базы.
func New(ctx context.Context, connectionString string) (*Storage, error) {
	const op = "storage.New"

	pool, err := pgxpool.New(ctx, connectionString)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return &Storage{pool: pool}, nil
}

// Close закрывает пул подключений.
func (s *Storage) Close() {
	s.pool.Close()
}

// translateErr приводит ошибки драйвера к ошибкам уровня хранилища.
func translateErr(err error) error {
	if errors.Is(err, pgx.ErrNoRows) {
		return ErrNotFound
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == pgerrcode.UniqueViolation {
		return ErrConflict
	}
	return err
}
