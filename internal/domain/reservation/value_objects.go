package reservation

import (
	"strings"

	"parking-core/internal/pkg/errs"
)

const MaxIdempotencyKeyLength = 128

var (
	ErrInvalidPaymentMethod  = errs.NewKind("payment method must be pix, credit_card or boleto", errs.ErrInvalidInput)
	ErrIdempotencyKeyTooLong = errs.NewKind("idempotency key is too long", errs.ErrInvalidInput)
)

type PaymentMethod string

const (
	MethodPix        PaymentMethod = "pix"
	MethodCreditCard PaymentMethod = "credit_card"
	MethodBoleto     PaymentMethod = "boleto"
)

func (m PaymentMethod) String() string {
	return string(m)
}

func (m PaymentMethod) IsValid() bool {
	switch m {
	case MethodPix, MethodCreditCard, MethodBoleto:
		return true
	default:
		return false
	}
}

func ParsePaymentMethod(v string) (PaymentMethod, error) {
	normalized := strings.ToLower(strings.TrimSpace(v))
	normalized = strings.NewReplacer("-", "_", " ", "_").Replace(normalized)
	m := PaymentMethod(normalized)
	if !m.IsValid() {
		return "", ErrInvalidPaymentMethod
	}
	return m, nil
}

// IdempotencyKey identifies a client's payment attempt across retries.
type IdempotencyKey struct {
	value string
}

func NewIdempotencyKey(v string) (IdempotencyKey, error) {
	v = strings.TrimSpace(v)
	if len(v) > MaxIdempotencyKeyLength {
		return IdempotencyKey{}, ErrIdempotencyKeyTooLong
	}
	return IdempotencyKey{value: v}, nil
}

func (k IdempotencyKey) String() string { return k.value }
func (k IdempotencyKey) IsZero() bool   { return k.value == "" }

// RestoreIdempotencyKey rebuilds a key that was validated before it was stored.
func RestoreIdempotencyKey(v string) IdempotencyKey {
	return IdempotencyKey{value: v}
}
