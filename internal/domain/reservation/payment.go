package reservation

import (
	"time"

	"parking-core/internal/domain/money"
	"parking-core/internal/pkg/errs"

	"github.com/google/uuid"
)

var (
	ErrAlreadyPaid    = errs.NewKind("reservation already paid", errs.ErrConflict)
	ErrAmountMismatch = errs.NewKind("payment amount does not match amount due", errs.ErrInvalidInput)
	ErrInvalidAmount  = errs.NewKind("payment amount cannot be negative", errs.ErrInvalidInput)
)

type Payment struct {
	id             uuid.UUID
	reservationID  uuid.UUID
	method         PaymentMethod
	amount         money.Money
	paidAt         time.Time
	idempotencyKey IdempotencyKey
}

// NewPayment accepts the payment when amount is within tolerance of due.
func NewPayment(
	r *Reservation,
	method PaymentMethod,
	amount, due, tolerance money.Money,
	key IdempotencyKey,
	paidAt time.Time,
) (*Payment, error) {
	if !method.IsValid() {
		return nil, ErrInvalidPaymentMethod
	}
	if amount.IsNegative() {
		return nil, ErrInvalidAmount
	}
	if amount.Distance(due).GreaterThan(tolerance) {
		return nil, errs.Wrapf(ErrAmountMismatch, "paid %s, due %s", amount, due)
	}
	return &Payment{
		id:             uuid.New(),
		reservationID:  r.ID(),
		method:         method,
		amount:         amount,
		paidAt:         paidAt,
		idempotencyKey: key,
	}, nil
}

func ReconstructPayment(id, reservationID uuid.UUID, method PaymentMethod, amount money.Money, paidAt time.Time, key IdempotencyKey) *Payment {
	return &Payment{
		id:             id,
		reservationID:  reservationID,
		method:         method,
		amount:         amount,
		paidAt:         paidAt,
		idempotencyKey: key,
	}
}

// IsReplayOf reports whether a retried request carries the same key and
// body as this payment, in which case the caller gets this payment back.
func (p *Payment) IsReplayOf(key IdempotencyKey, method PaymentMethod, amount money.Money) bool {
	return !key.IsZero() && p.idempotencyKey == key && p.method == method && p.amount == amount
}

func (p *Payment) ID() uuid.UUID                  { return p.id }
func (p *Payment) ReservationID() uuid.UUID       { return p.reservationID }
func (p *Payment) Method() PaymentMethod          { return p.method }
func (p *Payment) Amount() money.Money            { return p.amount }
func (p *Payment) PaidAt() time.Time              { return p.paidAt }
func (p *Payment) IdempotencyKey() IdempotencyKey { return p.idempotencyKey }
