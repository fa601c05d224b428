package repository

import (
	"context"
	"errors"

	"bill_tracker/internal/model"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// ErrDuplicate is returned when an insert violates a unique index
var ErrDuplicate = errors.New("record already exists")

// UserRepository defines operations for user data.
// Finders return nil, nil when no row matches.
type UserRepository interface {
	Create(ctx context.Context, user *model.User) error
	FindByEmail(ctx context.Context, email string) (*model.User, error)
	FindByName(ctx context.Context, name string) (*model.User, error)
	FindByID(ctx context.Context, id int) (*model.User, error)
}

// GroupRepository defines operations for group data
type GroupRepository interface {
	Create(ctx context.Context, group *model.Group) error
	FindAll(ctx context.Context) ([]model.Group, error)
	FindByID(ctx context.Context, id int) (*model.Group, error)
}

// BillRepository defines operations for bill data.
// Listed bills carry their owning group.
type BillRepository interface {
	Create(ctx context.Context, bill *model.Bill) error
	FindAll(ctx context.Context) ([]model.Bill, error)
	FindByGroup(ctx context.Context, groupID int) ([]model.Bill, error)
}

// DBTX is the subset of *pgxpool.Pool used by the postgres repositories.
// pgxmock.PgxPoolIface satisfies it as well.
type DBTX interface {
	Exec(ctx context.Context, sql string, arguments ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	Ping(ctx context.Context) error
	Close()
}

// Store bundles the repositories of one backend
type Store struct {
	Users  UserRepository
	Groups GroupRepository
	Bills  BillRepository

	ping  func(ctx context.Context) error
	close func() error
}

// Ping checks that the backing database is reachable
func (s *Store) Ping(ctx context.Context) error {
	return s.ping(ctx)
}

// Close releases the database connections
func (s *Store) Close() error {
	return s.close()
}

// NewPostgresStore creates a Store backed by a pgx pool
func NewPostgresStore(db DBTX) *Store {
	return &Store{
		Users:  NewUserRepository(db),
		Groups: NewGroupRepository(db),
		Bills:  NewBillRepository(db),
		ping:   db.Ping,
		close: func() error {
			db.Close()
			return nil
		},
	}
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}
