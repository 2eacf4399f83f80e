package payment

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/pema-project/pema/internal/models"
	"github.com/pema-project/pema/internal/repository/postgres"
)

// Repo is the storage surface the service relies on
type Repo interface {
	Create(ctx context.Context, params postgres.CreatePaymentParams) (models.Payment, error)
	List(ctx context.Context, req models.PageRequest) (models.Page[models.Payment], error)
	GetByID(ctx context.Context, id uuid.UUID) (models.Payment, error)
	Update(ctx context.Context, id uuid.UUID, params postgres.UpdatePaymentParams) (models.Payment, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type PaymentService struct {
	repo Repo
}

func NewService(repo Repo) *PaymentService {
	return &PaymentService{repo: repo}
}

// Process records a payment for an order. The transaction id and the
// completed status are stamped here, the caller only supplies what to pay for.
func (s *PaymentService) Process(ctx context.Context, orderID uuid.UUID, amount decimal.Decimal) (models.Payment, error) {
	payment, err := s.repo.Create(ctx, postgres.CreatePaymentParams{
		OrderID:       orderID,
		Amount:        amount,
		Status:        models.PaymentStatusCompleted,
		TransactionID: uuid.NewString(),
	})
	if err != nil {
		return payment, fmt.Errorf("can't record payment. Err: %w", err)
	}

	return payment, nil
}

func (s *PaymentService) List(ctx context.Context, req models.PageRequest) (models.Page[models.Payment], error) {
	return s.repo.List(ctx, req)
}

func (s *PaymentService) GetByID(ctx context.Context, id uuid.UUID) (models.Payment, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *PaymentService) UpdateStatus(ctx context.Context, id uuid.UUID, status *string) (models.Payment, error) {
	return s.repo.Update(ctx, id, postgres.UpdatePaymentParams{Status: status})
}

func (s *PaymentService) Delete(ctx context.Context, id uuid.UUID) error {
	return s.repo.Delete(ctx, id)
}
