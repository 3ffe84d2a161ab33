package expense

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
	log "github.com/sirupsen/logrus"
)

type Repository interface {
	StoreExpense(ctx context.Context, userId int, expense Expense) (Expense, error)
	GetExpense(ctx context.Context, userId int, id int) (Expense, error)
	// ListExpenses returns the owner's expenses matching filter, newest date first.
	ListExpenses(ctx context.Context, userId int, filter Filter) ([]Expense, error)
	// ListAllExpenses returns every expense of the owner, without pagination.
	ListAllExpenses(ctx context.Context, userId int) ([]Expense, error)
	UpdateExpense(ctx context.Context, userId int, id int, update Update) (Expense, error)
	DeleteExpense(ctx context.Context, userId int, id int) (Expense, error)
	CountByCategory(ctx context.Context, userId int, categoryId int) (int, error)
}

type RepositoryImpl struct {
	db *pgxpool.Pool
}

func NewRepository(db *pgxpool.Pool) *RepositoryImpl {
	return &RepositoryImpl{db: db}
}

const expenseColumns = "id, amount::text, description, category_id, date, user_id, created_at"

func scanExpense(row pgx.Row) (Expense, error) {
	var e Expense
	var amount string
	if err := row.Scan(&e.Id, &amount, &e.Description, &e.CategoryId, &e.Date, &e.OwnerId, &e.CreatedAt); err != nil {
		return Expense{}, err
	}
	parsed, err := decimal.NewFromString(amount)
	if err != nil {
		return Expense{}, fmt.Errorf("invalid amount %q: %w", amount, err)
	}
	e.Amount = parsed
	return e, nil
}

func (r *RepositoryImpl) StoreExpense(ctx context.Context, userId int, expense Expense) (Expense, error) {
	query := `INSERT INTO expense (amount, description, category_id, date, user_id)
              VALUES ($1::numeric, $2, $3, $4, $5)
              RETURNING ` + expenseColumns
	stored, err := scanExpense(r.db.QueryRow(ctx, query,
		expense.Amount.String(), expense.Description, expense.CategoryId, expense.Date, userId))
	if err != nil {
		err := fmt.Errorf("could not store expense: %w", err)
		log.Error(err)
		return Expense{}, err
	}
	return stored, nil
}

func (r *RepositoryImpl) GetExpense(ctx context.Context, userId int, id int) (Expense, error) {
	query := `SELECT ` + expenseColumns + ` FROM expense WHERE id = $1 AND user_id = $2`
	e, err := scanExpense(r.db.QueryRow(ctx, query, id, userId))
	if errors.Is(err, pgx.ErrNoRows) {
		return Expense{}, ErrExpenseNotFound
	}
	if err != nil {
		err := fmt.Errorf("could not get expense: %w", err)
		log.Error(err)
		return Expense{}, err
	}
	return e, nil
}

func (r *RepositoryImpl) ListExpenses(ctx context.Context, userId int, filter Filter) ([]Expense, error) {
	conditions := []string{"user_id = $1"}
	args := []any{userId}
	if filter.StartDate != "" {
		args = append(args, filter.StartDate)
		conditions = append(conditions, fmt.Sprintf("date >= $%d", len(args)))
	}
	if filter.EndDate != "" {
		args = append(args, filter.EndDate)
		conditions = append(conditions, fmt.Sprintf("date <= $%d", len(args)))
	}
	if filter.CategoryId != nil {
		args = append(args, *filter.CategoryId)
		conditions = append(conditions, fmt.Sprintf("category_id = $%d", len(args)))
	}
	args = append(args, filter.Limit, filter.Offset)
	query := fmt.Sprintf(`SELECT %s FROM expense WHERE %s ORDER BY date DESC, id DESC LIMIT $%d OFFSET $%d`,
		expenseColumns, strings.Join(conditions, " AND "), len(args)-1, len(args))

	return r.queryExpenses(ctx, query, args...)
}

func (r *RepositoryImpl) ListAllExpenses(ctx context.Context, userId int) ([]Expense, error) {
	query := `SELECT ` + expenseColumns + ` FROM expense WHERE user_id = $1 ORDER BY date DESC, id DESC`
	return r.queryExpenses(ctx, query, userId)
}

func (r *RepositoryImpl) queryExpenses(ctx context.Context, query string, args ...any) ([]Expense, error) {
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		err := fmt.Errorf("could not query expenses: %w", err)
		log.Error(err)
		return nil, err
	}
	defer rows.Close()

	expenses := make([]Expense, 0, 64)
	for rows.Next() {
		e, err := scanExpense(rows)
		if err != nil {
			err := fmt.Errorf("could not scan expense: %w", err)
			log.Error(err)
			return nil, err
		}
		expenses = append(expenses, e)
	}
	if err := rows.Err(); err != nil {
		err := fmt.Errorf("error iterating over rows: %w", err)
		log.Error(err)
		return nil, err
	}
	return expenses, nil
}

func (r *RepositoryImpl) UpdateExpense(ctx context.Context, userId int, id int, update Update) (Expense, error) {
	var amount *string
	if update.Amount != nil {
		s := update.Amount.String()
		amount = &s
	}
	query := `UPDATE expense SET
                  amount = COALESCE($1::numeric, amount),
                  description = COALESCE($2::text, description),
                  category_id = COALESCE($3::integer, category_id),
                  date = COALESCE($4::text, date)
              WHERE id = $5 AND user_id = $6
              RETURNING ` + expenseColumns
	e, err := scanExpense(r.db.QueryRow(ctx, query, amount, update.Description, update.CategoryId, update.Date, id, userId))
	if errors.Is(err, pgx.ErrNoRows) {
		return Expense{}, ErrExpenseNotFound
	}
	if err != nil {
		err := fmt.Errorf("could not update expense: %w", err)
		log.Error(err)
		return Expense{}, err
	}
	return e, nil
}

func (r *RepositoryImpl) DeleteExpense(ctx context.Context, userId int, id int) (Expense, error) {
	query := `DELETE FROM expense WHERE id = $1 AND user_id = $2 RETURNING ` + expenseColumns
	e, err := scanExpense(r.db.QueryRow(ctx, query, id, userId))
	if errors.Is(err, pgx.ErrNoRows) {
		return Expense{}, ErrExpenseNotFound
	}
	if err != nil {
		err := fmt.Errorf("could not delete expense: %w", err)
		log.Error(err)
		return Expense{}, err
	}
	return e, nil
}

func (r *RepositoryImpl) CountByCategory(ctx context.Context, userId int, categoryId int) (int, error) {
	var count int
	err := r.db.QueryRow(ctx, `SELECT count(*) FROM expense WHERE user_id = $1 AND category_id = $2`, userId, categoryId).Scan(&count)
	if err != nil {
		err := fmt.Errorf("could not count expenses: %w", err)
		log.Error(err)
		return 0, err
	}
	return count, nil
}
