package transaction

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Repository persists transactions. Every operation is scoped to an owner;
// rows belonging to other users are invisible.
type Repository interface {
	ListByOwner(ctx context.Context, ownerID int64) ([]Transaction, error)
	Create(ctx context.Context, ownerID int64, input Input) (Transaction, error)
	Update(ctx context.Context, ownerID, id int64, input Input) (Transaction, error)
	Delete(ctx context.Context, ownerID, id int64) error
}

// PostgresRepository stores transactions in PostgreSQL.
type PostgresRepository struct {
	db *pgxpool.Pool
}

// NewPostgresRepository builds a repository backed by PostgreSQL.
func NewPostgresRepository(db *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{db: db}
}

const transactionColumns = `id, descricao, valor, categoria, data, tipo, userid`

// ListByOwner returns the owner's transactions, most recent date first.
// ISO dates order lexically, so the text column sorts correctly.
func (r *PostgresRepository) ListByOwner(ctx context.Context, ownerID int64) ([]Transaction, error) {
	rows, err := r.db.Query(ctx,
		`SELECT `+transactionColumns+` FROM transacoes WHERE userid = $1 ORDER BY data DESC, id DESC`, ownerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	transactions := make([]Transaction, 0)
	for rows.Next() {
		var t Transaction
		if err := rows.Scan(&t.ID, &t.Description, &t.Amount, &t.Category, &t.Date, &t.Kind, &t.OwnerID); err != nil {
			return nil, err
		}
		transactions = append(transactions, t)
	}
	return transactions, rows.Err()
}

// Create inserts a row for the owner and returns it with its assigned id.
func (r *PostgresRepository) Create(ctx context.Context, ownerID int64, input Input) (Transaction, error) {
	row := r.db.QueryRow(ctx,
		`INSERT INTO transacoes (descricao, valor, categoria, data, tipo, userid)
         VALUES ($1, $2, $3, $4, $5, $6)
         RETURNING `+transactionColumns,
		input.Description, input.Amount, input.Category, input.Date, input.Kind, ownerID)
	return scanTransaction(row)
}

// Update rewrites the mutable fields of a row matching both id and owner.
func (r *PostgresRepository) Update(ctx context.Context, ownerID, id int64, input Input) (Transaction, error) {
	row := r.db.QueryRow(ctx,
		`UPDATE transacoes
         SET descricao = $1, valor = $2, categoria = $3, data = $4
         WHERE id = $5 AND userid = $6
         RETURNING `+transactionColumns,
		input.Description, input.Amount, input.Category, input.Date, id, ownerID)
	t, err := scanTransaction(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return Transaction{}, ErrNotFound
	}
	if err != nil {
		return Transaction{}, err
	}
	return t, nil
}

// Delete removes a row matching both id and owner.
func (r *PostgresRepository) Delete(ctx context.Context, ownerID, id int64) error {
	cmd, err := r.db.Exec(ctx, `DELETE FROM transacoes WHERE id = $1 AND userid = $2`, id, ownerID)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func scanTransaction(row pgx.Row) (Transaction, error) {
	var t Transaction
	err := row.Scan(&t.ID, &t.Description, &t.Amount, &t.Category, &t.Date, &t.Kind, &t.OwnerID)
	if err != nil {
		return Transaction{}, err
	}
	return t, nil
}
