package payment

import (
	"testing"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/pema-project/pema/internal/models"
	"github.com/pema-project/pema/internal/repository/postgres"
	"github.com/pema-project/pema/internal/testutil"
)

func TestPaymentService(t *testing.T) {
	t.Parallel()

	pg := testutil.StartPostgresContainer(t)
	t.Cleanup(pg.Terminate)

	inTx := func(t *testing.T, fn func(s *PaymentService, orderID uuid.UUID)) {
		testutil.WithTx(pg.Pool, t, func(tx pgx.Tx) {
			storage := postgres.NewStorage(tx)

			user, err := storage.Users().Create(t.Context(), postgres.CreateUserParams{
				Username:     "payer",
				Email:        "payer@example.com",
				PasswordHash: "hash",
			})
			require.NoError(t, err)

			order, err := storage.Orders().Create(t.Context(), postgres.CreateOrderParams{
				UserID:      user.ID,
				TotalAmount: decimal.NewFromInt(100),
			})
			require.NoError(t, err)

			fn(NewService(storage.Payments()), order.ID)
		})
	}

	t.Run("Process", func(t *testing.T) {
		t.Run("stamps transaction id and completed status", func(t *testing.T) {
			inTx(t, func(s *PaymentService, orderID uuid.UUID) {
				payment, err := s.Process(t.Context(), orderID, decimal.NewFromFloat(99.90))

				require.NoError(t, err)
				require.Equal(t, models.PaymentStatusCompleted, payment.Status)
				require.Equal(t, orderID, payment.OrderID)
				require.True(t, payment.Amount.Equal(decimal.NewFromFloat(99.90)))

				_, err = uuid.Parse(payment.TransactionID)
				require.NoError(t, err, "transaction id should be a uuid")
			})
		})

		t.Run("each payment gets its own transaction id", func(t *testing.T) {
			inTx(t, func(s *PaymentService, orderID uuid.UUID) {
				first, err := s.Process(t.Context(), orderID, decimal.NewFromInt(10))
				require.NoError(t, err)

				second, err := s.Process(t.Context(), orderID, decimal.NewFromInt(20))
				require.NoError(t, err)

				require.NotEqual(t, first.TransactionID, second.TransactionID)
			})
		})
	})

	t.Run("UpdateStatus", func(t *testing.T) {
		inTx(t, func(s *PaymentService, orderID uuid.UUID) {
			payment, err := s.Process(t.Context(), orderID, decimal.NewFromInt(10))
			require.NoError(t, err)

			status := models.PaymentStatusRefunded
			updated, err := s.UpdateStatus(t.Context(), payment.ID, &status)

			require.NoError(t, err)
			require.Equal(t, models.PaymentStatusRefunded, updated.Status)
			require.Equal(t, payment.TransactionID, updated.TransactionID, "transaction id is immutable")
		})
	})
}
