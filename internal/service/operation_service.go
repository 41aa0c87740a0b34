package service

import (
	"context"
	"fmt"

	"backend/internal/model"
	"backend/internal/repository"

	"github.com/shopspring/decimal"
)

// OperationService exposes the reporting view: an operation is a request
// whose status is APPROVED. There is no separate operation entity.
type OperationService interface {
	ListCompanyOperations(ctx context.Context, companyID int64) ([]model.Request, error)
	ListProjectOperations(ctx context.Context, projectID, companyID int64) ([]model.Request, error)
	ProjectStatistic(ctx context.Context, projectID, companyID int64) (model.ProjectStatistic, error)
}

type operationService struct {
	requests repository.RequestRepository
}

func NewOperationService(requests repository.RequestRepository) OperationService {
	return &operationService{requests: requests}
}

func (s *operationService) ListCompanyOperations(ctx context.Context, companyID int64) ([]model.Request, error) {
	requests, err := s.requests.FindByCompanyID(ctx, companyID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch company operations: %w", err)
	}
	return approvedOnly(requests), nil
}

func (s *operationService) ListProjectOperations(ctx context.Context, projectID, companyID int64) ([]model.Request, error) {
	requests, err := s.requests.FindByProjectAndCompany(ctx, projectID, companyID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch project operations: %w", err)
	}
	return approvedOnly(requests), nil
}

// ProjectStatistic aggregates the project's approved operations: revenue is
// the sum of positive amounts, profit the sum of all amounts.
func (s *operationService) ProjectStatistic(ctx context.Context, projectID, companyID int64) (model.ProjectStatistic, error) {
	operations, err := s.ListProjectOperations(ctx, projectID, companyID)
	if err != nil {
		return model.ProjectStatistic{}, err
	}

	stat := model.ProjectStatistic{
		Revenue: decimal.Zero,
		Profit:  decimal.Zero,
	}
	for _, op := range operations {
		sum := decimal.NewFromInt(op.Sum)
		if op.Sum > 0 {
			stat.Revenue = stat.Revenue.Add(sum)
		}
		stat.Profit = stat.Profit.Add(sum)
		stat.CountOfOperations++
	}
	return stat, nil
}

func approvedOnly(requests []model.Request) []model.Request {
	out := make([]model.Request, 0, len(requests))
	for _, r := range requests {
		if r.IsApproved() {
			out = append(out, r)
		}
	}
	return out
}
