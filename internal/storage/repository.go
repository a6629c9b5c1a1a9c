// Package storage implements the ledger store over SQLite.
//
// Rows come back in id-descending order, which matches the in-memory
// backend's head-insertion ordering. The shared query evaluator runs on the
// fetched rows, so filter semantics are identical across backends.
package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"expensenote/internal/core"
	"expensenote/internal/ledger"

	_ "modernc.org/sqlite"
)

type SQLiteRepository struct {
	db *sql.DB
}

func NewSQLiteRepository(dbPath string) (*SQLiteRepository, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0755); err != nil {
		return nil, fmt.Errorf("create db directory: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	if err := RunMigrations(dbPath); err != nil {
		db.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}

	return &SQLiteRepository{db: db}, nil
}

func (r *SQLiteRepository) Close() error {
	if r.db != nil {
		return r.db.Close()
	}
	return nil
}

func (r *SQLiteRepository) ListTransactions(ctx context.Context, q *core.TransactionQuery) ([]core.Transaction, error) {
	rows, err := r.db.QueryContext(ctx, listTransactionsSQL)
	if err != nil {
		return nil, fmt.Errorf("list transactions: %w", err)
	}
	defer rows.Close()

	var txs []core.Transaction
	for rows.Next() {
		tx, err := scanTransaction(rows)
		if err != nil {
			return nil, fmt.Errorf("scan transaction: %w", err)
		}
		txs = append(txs, tx)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate transactions: %w", err)
	}

	if q.IsEmpty() {
		return txs, nil
	}
	cats, err := r.ListCategories(ctx)
	if err != nil {
		return nil, err
	}
	return core.Filter(txs, cats, q), nil
}

func (r *SQLiteRepository) GetTransaction(ctx context.Context, id int64) (core.Transaction, error) {
	row := r.db.QueryRowContext(ctx, getTransactionSQL, id)
	tx, err := scanTransaction(row)
	if errors.Is(err, sql.ErrNoRows) {
		return core.Transaction{}, ledger.ErrNotFound
	}
	if err != nil {
		return core.Transaction{}, fmt.Errorf("get transaction: %w", err)
	}
	return tx, nil
}

func (r *SQLiteRepository) InsertTransaction(ctx context.Context, tx core.Transaction) (core.Transaction, error) {
	tx, err := core.Normalize(tx)
	if err != nil {
		return core.Transaction{}, err
	}

	res, err := r.db.ExecContext(ctx, insertTransactionSQL,
		tx.Amount.Cents, tx.Category, string(tx.Type), tx.Date, tx.Note, tx.PhotoRef)
	if err != nil {
		return core.Transaction{}, fmt.Errorf("insert transaction: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return core.Transaction{}, fmt.Errorf("last insert id: %w", err)
	}
	tx.ID = id

	slog.InfoContext(ctx, "Transaction saved to SQLite",
		"id", tx.ID,
		"amount_cents", tx.Amount.Cents,
		"category", tx.Category,
		"type", tx.Type)

	return tx, nil
}

func (r *SQLiteRepository) UpdateTransaction(ctx context.Context, tx core.Transaction) (bool, error) {
	tx, err := core.NormalizeUpdate(tx)
	if err != nil {
		return false, err
	}

	res, err := r.db.ExecContext(ctx, updateTransactionSQL,
		tx.Amount.Cents, tx.Category, string(tx.Type), tx.Date, tx.Note, tx.PhotoRef, tx.ID)
	if err != nil {
		return false, fmt.Errorf("update transaction: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("rows affected: %w", err)
	}
	return n > 0, nil
}

func (r *SQLiteRepository) DeleteTransaction(ctx context.Context, id int64) (bool, error) {
	res, err := r.db.ExecContext(ctx, deleteTransactionSQL, id)
	if err != nil {
		return false, fmt.Errorf("delete transaction: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("rows affected: %w", err)
	}
	return n > 0, nil
}

func (r *SQLiteRepository) Totals(ctx context.Context, dr *core.DateRange) (core.Totals, error) {
	var q *core.TransactionQuery
	if dr != nil && !dr.IsEmpty() {
		q = &core.TransactionQuery{DateRange: dr}
	}
	txs, err := r.ListTransactions(ctx, q)
	if err != nil {
		return core.Totals{}, fmt.Errorf("totals: %w", err)
	}
	return core.Sum(txs), nil
}

func (r *SQLiteRepository) ListCategories(ctx context.Context) ([]core.Category, error) {
	rows, err := r.db.QueryContext(ctx, listCategoriesSQL)
	if err != nil {
		return nil, fmt.Errorf("list categories: %w", err)
	}
	defer rows.Close()

	var cats []core.Category
	for rows.Next() {
		var c core.Category
		if err := rows.Scan(&c.ID, &c.Name, &c.Color, &c.Icon); err != nil {
			return nil, fmt.Errorf("scan category: %w", err)
		}
		cats = append(cats, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate categories: %w", err)
	}
	return cats, nil
}

func (r *SQLiteRepository) GetCategory(ctx context.Context, id int64) (core.Category, error) {
	var c core.Category
	err := r.db.QueryRowContext(ctx, getCategorySQL, id).Scan(&c.ID, &c.Name, &c.Color, &c.Icon)
	if errors.Is(err, sql.ErrNoRows) {
		return core.Category{}, ledger.ErrNotFound
	}
	if err != nil {
		return core.Category{}, fmt.Errorf("get category: %w", err)
	}
	return c, nil
}

func (r *SQLiteRepository) InsertCategory(ctx context.Context, c core.Category) (core.Category, error) {
	c.Name = strings.TrimSpace(c.Name)
	if err := c.Validate(); err != nil {
		return core.Category{}, err
	}
	res, err := r.db.ExecContext(ctx, insertCategorySQL, c.Name, c.Color, c.Icon)
	if err != nil {
		return core.Category{}, fmt.Errorf("insert category: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return core.Category{}, fmt.Errorf("last insert id: %w", err)
	}
	c.ID = id
	return c, nil
}

func (r *SQLiteRepository) UpdateCategory(ctx context.Context, c core.Category) (bool, error) {
	if c.ID == 0 {
		return false, core.ErrMissingID
	}
	c.Name = strings.TrimSpace(c.Name)
	if err := c.Validate(); err != nil {
		return false, err
	}
	res, err := r.db.ExecContext(ctx, updateCategorySQL, c.Name, c.Color, c.Icon, c.ID)
	if err != nil {
		return false, fmt.Errorf("update category: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("rows affected: %w", err)
	}
	return n > 0, nil
}

func (r *SQLiteRepository) DeleteCategory(ctx context.Context, id int64) (bool, error) {
	res, err := r.db.ExecContext(ctx, deleteCategorySQL, id)
	if err != nil {
		return false, fmt.Errorf("delete category: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("rows affected: %w", err)
	}
	return n > 0, nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanTransaction(s scanner) (core.Transaction, error) {
	var (
		tx  core.Transaction
		typ string
	)
	if err := s.Scan(&tx.ID, &tx.Amount.Cents, &tx.Category, &typ, &tx.Date, &tx.Note, &tx.PhotoRef); err != nil {
		return core.Transaction{}, err
	}
	tx.Type = core.TransactionType(typ)
	return tx, nil
}

var _ ledger.Store = (*SQLiteRepository)(nil)
