package repository

import (
	"context"
	"fmt"

	"bill_tracker/internal/model"
)

const selectBills = `SELECT b.id, b.description, b.amount, b.group_id, g.number, g.name
            FROM bills b JOIN groups g ON g.id = b.group_id`

type billRepository struct {
	db DBTX
}

// NewBillRepository creates a postgres BillRepository
func NewBillRepository(db DBTX) BillRepository {
	return &billRepository{db: db}
}

// Create inserts a new bill
func (r *billRepository) Create(ctx context.Context, b *model.Bill) error {
	sql := `INSERT INTO bills (description, amount, group_id) VALUES ($1, $2, $3) RETURNING id`
	if err := r.db.QueryRow(ctx, sql, b.Description, b.Amount, b.GroupID).Scan(&b.ID); err != nil {
		return fmt.Errorf("failed to create bill: %w", err)
	}
	return nil
}

// FindAll lists the bills of every group
func (r *billRepository) FindAll(ctx context.Context) ([]model.Bill, error) {
	return r.query(ctx, selectBills+` ORDER BY b.id`)
}

// FindByGroup lists the bills owned by one group
func (r *billRepository) FindByGroup(ctx context.Context, groupID int) ([]model.Bill, error) {
	return r.query(ctx, selectBills+` WHERE b.group_id = $1 ORDER BY b.id`, groupID)
}

func (r *billRepository) query(ctx context.Context, sql string, args ...any) ([]model.Bill, error) {
	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query bills: %w", err)
	}
	defer rows.Close()

	var bills []model.Bill
	for rows.Next() {
		b := model.Bill{Group: &model.Group{}}
		if err := rows.Scan(&b.ID, &b.Description, &b.Amount, &b.GroupID, &b.Group.Number, &b.Group.Name); err != nil {
			return nil, fmt.Errorf("failed to scan bill row: %w", err)
		}
		b.Group.ID = b.GroupID
		bills = append(bills, b)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating bill rows: %w", err)
	}
	return bills, nil
}
