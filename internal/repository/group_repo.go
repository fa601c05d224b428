package repository

import (
	"context"
	"errors"
	"fmt"

	"bill_tracker/internal/model"

	"github.com/jackc/pgx/v5"
)

type groupRepository struct {
	db DBTX
}

// NewGroupRepository creates a postgres GroupRepository
func NewGroupRepository(db DBTX) GroupRepository {
	return &groupRepository{db: db}
}

// Create inserts a new group
func (r *groupRepository) Create(ctx context.Context, g *model.Group) error {
	sql := `INSERT INTO groups (number, name) VALUES ($1, $2) RETURNING id`
	if err := r.db.QueryRow(ctx, sql, g.Number, g.Name).Scan(&g.ID); err != nil {
		return fmt.Errorf("failed to create group: %w", err)
	}
	return nil
}

// FindAll lists every group ordered by id
func (r *groupRepository) FindAll(ctx context.Context) ([]model.Group, error) {
	rows, err := r.db.Query(ctx, `SELECT id, number, name FROM groups ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("failed to query groups: %w", err)
	}
	defer rows.Close()

	var groups []model.Group
	for rows.Next() {
		var g model.Group
		if err := rows.Scan(&g.ID, &g.Number, &g.Name); err != nil {
			return nil, fmt.Errorf("failed to scan group row: %w", err)
		}
		groups = append(groups, g)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating group rows: %w", err)
	}
	return groups, nil
}

// FindByID retrieves a group by ID
func (r *groupRepository) FindByID(ctx context.Context, id int) (*model.Group, error) {
	g := &model.Group{}
	err := r.db.QueryRow(ctx, `SELECT id, number, name FROM groups WHERE id = $1`, id).Scan(&g.ID, &g.Number, &g.Name)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to find group by ID: %w", err)
	}
	return g, nil
}
