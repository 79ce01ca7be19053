package repository

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v4/pgxpool"

	accountdomain "github.com/finalstore/backend/internal/account/domain"
	"github.com/finalstore/backend/internal/common/db"
	"github.com/finalstore/backend/internal/order/domain"
)

var ErrOrderNotFound = errors.New("order not found")

type OrderRepository interface {
	Insert(ctx context.Context, order domain.Order) (domain.Order, error)
	ListByAccount(ctx context.Context, accountID accountdomain.AccountID) ([]domain.Order, error)
}

type PgOrderRepository struct {
	pool *pgxpool.Pool
}

func NewPgOrderRepository(pool *pgxpool.Pool) *PgOrderRepository {
	return &PgOrderRepository{pool: pool}
}

// Insert allocates the order ID from its sequence inside the insert itself,
// so concurrent purchases never collide.
func (r *PgOrderRepository) Insert(ctx context.Context, order domain.Order) (domain.Order, error) {
	start := time.Now()
	row := r.pool.QueryRow(
		ctx,
		`INSERT INTO orders (id, account_id, item_ids, quantities, order_no, purchased_at)
		 VALUES (nextval('order_id_seq'), $1, $2, $3, $4, $5)
		 RETURNING id, account_id, item_ids, quantities, order_no, purchased_at, created_at`,
		int64(order.AccountID),
		order.ItemIDs,
		order.Quantities,
		order.OrderNo,
		order.PurchasedAt,
	)
	return scanOrder(row, "insert order", start)
}

func (r *PgOrderRepository) ListByAccount(ctx context.Context, accountID accountdomain.AccountID) ([]domain.Order, error) {
	start := time.Now()
	rows, err := r.pool.Query(
		ctx,
		`SELECT id, account_id, item_ids, quantities, order_no, purchased_at, created_at
		 FROM orders
		 WHERE account_id = $1
		 ORDER BY purchased_at DESC`,
		int64(accountID),
	)
	if err != nil {
		return nil, db.HandleQueryError(err, ErrOrderNotFound, "list orders by account", start)
	}
	defer rows.Close()

	orders := []domain.Order{}
	for rows.Next() {
		order, err := scanOrder(rows, "list orders by account", start)
		if err != nil {
			return nil, err
		}
		orders = append(orders, order)
	}
	if err := rows.Err(); err != nil {
		return nil, db.HandleQueryError(err, ErrOrderNotFound, "list orders by account", start)
	}
	db.MeasureQueryDuration("list orders by account", start)
	return orders, nil
}

type orderRow interface {
	Scan(dest ...interface{}) error
}

func scanOrder(row orderRow, operation string, start time.Time) (domain.Order, error) {
	var order domain.Order
	var accountID int64
	err := row.Scan(
		&order.ID,
		&accountID,
		&order.ItemIDs,
		&order.Quantities,
		&order.OrderNo,
		&order.PurchasedAt,
		&order.CreatedAt,
	)
	if err := db.HandleQueryError(err, ErrOrderNotFound, operation, start); err != nil {
		return domain.Order{}, err
	}
	order.AccountID = accountdomain.AccountID(accountID)
	return order, nil
}
