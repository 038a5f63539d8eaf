package store

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/hance08/dealflow/internal/model"
	sqlite "github.com/mattn/go-sqlite3"
	"github.com/shopspring/decimal"
)

const transactionColumns = `id, name, status, address, price, parties, updated_at`

type rowScanner interface {
	Scan(dest ...any) error
}

func scanTransaction(row rowScanner) (*model.Transaction, error) {
	var (
		tx        model.Transaction
		status    string
		price     string
		parties   string
		updatedAt int64
	)

	if err := row.Scan(&tx.ID, &tx.Name, &status, &tx.Address, &price, &parties, &updatedAt); err != nil {
		return nil, err
	}

	p, err := decimal.NewFromString(price)
	if err != nil {
		return nil, fmt.Errorf("transaction %d has invalid price %q: %w", tx.ID, price, err)
	}

	if parties != "" {
		if err := json.Unmarshal([]byte(parties), &tx.Parties); err != nil {
			return nil, fmt.Errorf("transaction %d has invalid parties: %w", tx.ID, err)
		}
	}

	tx.Status = model.Status(status)
	tx.Price = p
	tx.UpdatedAt = time.Unix(updatedAt, 0).UTC()
	return &tx, nil
}

func isConstraintErr(err error) bool {
	var sqliteErr sqlite.Error
	if errors.As(err, &sqliteErr) {
		return sqliteErr.Code == sqlite.ErrConstraint
	}
	return false
}

// CreateTransaction inserts a transaction and returns its new ID.
func (s *Store) CreateTransaction(tx model.Transaction) (int64, error) {
	parties, err := json.Marshal(tx.Parties)
	if err != nil {
		return 0, fmt.Errorf("failed to encode parties: %w", err)
	}
	if tx.Parties == nil {
		parties = []byte("[]")
	}

	stmt, err := s.db.Prepare(`
        INSERT INTO transactions (name, status, address, price, parties, updated_at)
        VALUES (?, ?, ?, ?, ?, ?)
        RETURNING id;
    `)
	if err != nil {
		return 0, fmt.Errorf("failed to prepare transaction SQL: %w", err)
	}
	defer stmt.Close()

	var newID int64
	err = stmt.QueryRow(
		tx.Name, string(tx.Status), tx.Address, tx.Price.String(), string(parties), time.Now().Unix(),
	).Scan(&newID)
	if err != nil {
		if isConstraintErr(err) {
			return 0, fmt.Errorf("%w: %v", ErrConstraintViolation, err)
		}
		return 0, fmt.Errorf("failed to insert transaction: %w", err)
	}

	return newID, nil
}

func (s *Store) GetTransactionByID(txID int64) (*model.Transaction, error) {
	row := s.db.QueryRow(`SELECT `+transactionColumns+` FROM transactions WHERE id = ?`, txID)

	tx, err := scanTransaction(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("transaction with ID %d: %w", txID, ErrRecordNotFound)
		}
		return nil, fmt.Errorf("failed to query transaction: %w", err)
	}
	return tx, nil
}

// GetAllTransactions returns transactions in board order (oldest first).
// limit <= 0 means no limit.
func (s *Store) GetAllTransactions(limit int) ([]*model.Transaction, error) {
	if limit <= 0 {
		limit = -1
	}

	rows, err := s.db.Query(`
        SELECT `+transactionColumns+`
        FROM transactions
        ORDER BY id
        LIMIT ?
    `, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query transactions: %w", err)
	}
	defer rows.Close()

	var transactions []*model.Transaction
	for rows.Next() {
		tx, err := scanTransaction(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan transaction: %w", err)
		}
		transactions = append(transactions, tx)
	}

	return transactions, rows.Err()
}

// UpdateTransactionStatus sets the status and bumps updated_at.
func (s *Store) UpdateTransactionStatus(txID int64, status model.Status) error {
	result, err := s.db.Exec(`
		UPDATE transactions
		SET status = ?, updated_at = ?
		WHERE id = ?
	`, string(status), time.Now().Unix(), txID)
	if err != nil {
		if isConstraintErr(err) {
			return fmt.Errorf("%w: %v", ErrConstraintViolation, err)
		}
		return fmt.Errorf("failed to update transaction status: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}

	if rowsAffected == 0 {
		return fmt.Errorf("transaction with ID %d: %w", txID, ErrRecordNotFound)
	}

	return nil
}

// DeleteTransaction deletes a transaction. Its status history goes with it
// through ON DELETE CASCADE.
func (s *Store) DeleteTransaction(txID int64) error {
	result, err := s.db.Exec(`
		DELETE FROM transactions
		WHERE id = ?
	`, txID)
	if err != nil {
		return fmt.Errorf("failed to delete transaction: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}

	if rowsAffected == 0 {
		return fmt.Errorf("transaction with ID %d: %w", txID, ErrRecordNotFound)
	}

	return nil
}

func (s *Store) CreateStatusChange(change model.StatusChange) (int64, error) {
	changedAt := change.ChangedAt
	if changedAt.IsZero() {
		changedAt = time.Now()
	}

	var newID int64
	err := s.db.QueryRow(`
		INSERT INTO status_changes (transaction_id, from_status, to_status, changed_at)
		VALUES (?, ?, ?, ?)
		RETURNING id;
	`, change.TransactionID, string(change.From), string(change.To), changedAt.Unix()).Scan(&newID)
	if err != nil {
		return 0, fmt.Errorf("failed to insert status change: %w", err)
	}
	return newID, nil
}

func (s *Store) GetStatusChanges(txID int64) ([]*model.StatusChange, error) {
	rows, err := s.db.Query(`
		SELECT id, transaction_id, from_status, to_status, changed_at
		FROM status_changes
		WHERE transaction_id = ?
		ORDER BY id
	`, txID)
	if err != nil {
		return nil, fmt.Errorf("failed to query status changes: %w", err)
	}
	defer rows.Close()

	var changes []*model.StatusChange
	for rows.Next() {
		var (
			c         model.StatusChange
			from, to  string
			changedAt int64
		)
		if err := rows.Scan(&c.ID, &c.TransactionID, &from, &to, &changedAt); err != nil {
			return nil, fmt.Errorf("failed to scan status change: %w", err)
		}
		c.From = model.Status(from)
		c.To = model.Status(to)
		c.ChangedAt = time.Unix(changedAt, 0).UTC()
		changes = append(changes, &c)
	}

	return changes, rows.Err()
}
