package service

import (
	"context"
	"errors"
	"fmt"

	"bill_tracker/internal/metrics"
	"bill_tracker/internal/model"
	"bill_tracker/internal/repository"

	"github.com/shopspring/decimal"
)

var (
	ErrInvalidAmount    = errors.New("amount must be greater than zero")
	ErrAmountOutOfRange = errors.New("amount is too large or has too many decimal places")
)

// BillService defines operations for bills
type BillService interface {
	// ListBills returns the bills of the group, or of every group when the
	// service was built with listAll.
	ListBills(ctx context.Context, groupID int) ([]model.Bill, error)
	CreateBill(ctx context.Context, groupID int, description string, amount decimal.Decimal) (*model.Bill, error)
}

type billService struct {
	bills   repository.BillRepository
	groups  repository.GroupRepository
	listAll bool
}

// NewBillService creates a new BillService
func NewBillService(bills repository.BillRepository, groups repository.GroupRepository, listAll bool) BillService {
	return &billService{bills: bills, groups: groups, listAll: listAll}
}

func (s *billService) ListBills(ctx context.Context, groupID int) ([]model.Bill, error) {
	var (
		bills []model.Bill
		err   error
	)
	if s.listAll {
		bills, err = s.bills.FindAll(ctx)
	} else {
		bills, err = s.bills.FindByGroup(ctx, groupID)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to list bills: %w", err)
	}
	return bills, nil
}

func (s *billService) CreateBill(ctx context.Context, groupID int, description string, amount decimal.Decimal) (*model.Bill, error) {
	if !amount.IsPositive() {
		return nil, ErrInvalidAmount
	}
	if !model.AmountInRange(amount) {
		return nil, ErrAmountOutOfRange
	}

	group, err := s.groups.FindByID(ctx, groupID)
	if err != nil {
		return nil, fmt.Errorf("failed to look up group: %w", err)
	}
	if group == nil {
		return nil, ErrGroupNotFound
	}

	bill := &model.Bill{
		Description: description,
		Amount:      amount.String(),
		GroupID:     group.ID,
	}
	if err := s.bills.Create(ctx, bill); err != nil {
		return nil, fmt.Errorf("failed to create bill in repo: %w", err)
	}
	bill.Group = group

	metrics.IncrementCreated("bill")
	return bill, nil
}
