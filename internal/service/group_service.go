package service

import (
	"context"
	"errors"
	"fmt"
	"math"

	"bill_tracker/internal/metrics"
	"bill_tracker/internal/model"
	"bill_tracker/internal/repository"
)

var (
	ErrGroupNotFound      = errors.New("group not found")
	ErrInvalidGroupNumber = errors.New("group number must be a non-zero 32-bit integer")
)

// GroupService defines operations for groups
type GroupService interface {
	ListGroups(ctx context.Context) ([]model.Group, error)
	GetGroup(ctx context.Context, id int) (*model.Group, error)
	CreateGroup(ctx context.Context, number int, name string) (*model.Group, error)
}

type groupService struct {
	repo repository.GroupRepository
}

// NewGroupService creates a new GroupService
func NewGroupService(repo repository.GroupRepository) GroupService {
	return &groupService{repo: repo}
}

func (s *groupService) ListGroups(ctx context.Context) ([]model.Group, error) {
	groups, err := s.repo.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list groups: %w", err)
	}
	return groups, nil
}

// GetGroup returns ErrGroupNotFound when there is no such group
func (s *groupService) GetGroup(ctx context.Context, id int) (*model.Group, error) {
	group, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get group: %w", err)
	}
	if group == nil {
		return nil, ErrGroupNotFound
	}
	return group, nil
}

func (s *groupService) CreateGroup(ctx context.Context, number int, name string) (*model.Group, error) {
	if number == 0 || number < math.MinInt32 || number > math.MaxInt32 {
		return nil, ErrInvalidGroupNumber
	}

	group := &model.Group{Number: number, Name: name}
	if err := s.repo.Create(ctx, group); err != nil {
		return nil, fmt.Errorf("failed to create group in repo: %w", err)
	}

	metrics.IncrementCreated("group")
	return group, nil
}
