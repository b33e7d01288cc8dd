package response

import (
	"fmt"

	"parking-core/internal/domain/money"

	"github.com/jinzhu/copier"
)

// copyFrom fills a response from a view with matching field names. copier only
// fails on mismatched kinds, which the handler suites would catch.
func copyFrom[T any](src any) *T {
	dst := new(T)
	if err := copier.Copy(dst, src); err != nil {
		panic(fmt.Sprintf("response mapping %T: %v", src, err))
	}
	return dst
}

func copyEach[T any, S any](items []S) []*T {
	out := make([]*T, len(items))
	for i, it := range items {
		out[i] = copyFrom[T](it)
	}
	return out
}

func formatCents(cents int64) string {
	return money.FromCents(cents).String()
}
