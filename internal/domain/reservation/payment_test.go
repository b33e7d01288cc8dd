package reservation_test

import (
	"testing"
	"time"

	"parking-core/internal/domain/money"
	"parking-core/internal/domain/reservation"
	"parking-core/internal/pkg/errs"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewPayment(t *testing.T) {
	now := time.Now()
	r := reservation.Reconstruct(uuid.New(), uuid.New(), uuid.New(), uuid.New(), uuid.New(), now, nil, nil)
	due := money.FromCents(1300)

	tests := []struct {
		name      string
		method    reservation.PaymentMethod
		amount    int64
		tolerance int64
		errIs     error
	}{
		{name: "exact amount", method: reservation.MethodPix, amount: 1300},
		{name: "within tolerance", method: reservation.MethodBoleto, amount: 1295, tolerance: 5},
		{name: "outside tolerance", method: reservation.MethodCreditCard, amount: 1200, tolerance: 5, errIs: reservation.ErrAmountMismatch},
		{name: "overpaid", method: reservation.MethodPix, amount: 1301, errIs: reservation.ErrAmountMismatch},
		{name: "negative", method: reservation.MethodPix, amount: -1, errIs: reservation.ErrInvalidAmount},
		{name: "unknown method", method: reservation.PaymentMethod("cash"), amount: 1300, errIs: reservation.ErrInvalidPaymentMethod},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p, err := reservation.NewPayment(r, tt.method, money.FromCents(tt.amount), due, money.FromCents(tt.tolerance), reservation.IdempotencyKey{}, now)
			if tt.errIs != nil {
				require.Error(t, err)
				assert.True(t, errs.Is(err, tt.errIs), "got %v", err)
				assert.Equal(t, errs.KindInvalidInput, errs.KindOf(err))
				return
			}
			require.NoError(t, err)
			assert.Equal(t, r.ID(), p.ReservationID())
			assert.Equal(t, tt.amount, p.Amount().Cents())
		})
	}
}

func TestPaymentReplay(t *testing.T) {
	now := time.Now()
	r := reservation.Reconstruct(uuid.New(), uuid.New(), uuid.New(), uuid.New(), uuid.New(), now, nil, nil)
	key, err := reservation.NewIdempotencyKey("abc-123")
	require.NoError(t, err)
	amount := money.FromCents(500)

	p, err := reservation.NewPayment(r, reservation.MethodPix, amount, amount, money.Zero(), key, now)
	require.NoError(t, err)

	assert.True(t, p.IsReplayOf(key, reservation.MethodPix, amount))
	assert.False(t, p.IsReplayOf(key, reservation.MethodBoleto, amount))
	assert.False(t, p.IsReplayOf(key, reservation.MethodPix, money.FromCents(501)))
	assert.False(t, p.IsReplayOf(reservation.IdempotencyKey{}, reservation.MethodPix, amount))
}

func TestParsePaymentMethod(t *testing.T) {
	for in, want := range map[string]reservation.PaymentMethod{
		"PIX":         reservation.MethodPix,
		"credit-card": reservation.MethodCreditCard,
		"Credit Card": reservation.MethodCreditCard,
		" boleto ":    reservation.MethodBoleto,
	} {
		got, err := reservation.ParsePaymentMethod(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got)
	}

	_, err := reservation.ParsePaymentMethod("cheque")
	assert.True(t, errs.Is(err, reservation.ErrInvalidPaymentMethod))
}
