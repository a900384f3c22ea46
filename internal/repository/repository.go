// Package repository persists the supervisor hierarchy in PostgreSQL.
//
// Each repository owns one table and returns internal/model records.
// Lookups that are scoped to a supervisor join up the ownership chain, so a
// row that exists but belongs to someone else is reported exactly like a
// row that does not exist.
package repository

import (
	"context"
	"errors"

	"github.com/deppfellow/social-scores/internal/sqlerr"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// DBTX is the part of pgx shared by *pgxpool.Pool, *pgx.Conn and pgx.Tx.
type DBTX interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// one collects exactly one row into T, tagging pgx.ErrNoRows with table.
func one[T any](rows pgx.Rows, table string) (*T, error) {
	row, err := pgx.CollectExactlyOneRow(rows, pgx.RowToAddrOfStructByName[T])
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, sqlerr.NotFound(table)
	}
	return row, err
}

func many[T any](rows pgx.Rows) ([]T, error) {
	return pgx.CollectRows(rows, pgx.RowToStructByName[T])
}

// affected turns a command that touched no rows into a not found error.
func affected(tag pgconn.CommandTag, table string) error {
	if tag.RowsAffected() == 0 {
		return sqlerr.NotFound(table)
	}
	return nil
}
