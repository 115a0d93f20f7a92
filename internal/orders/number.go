package orders

import (
	"fmt"
	"math/rand"
	"strings"
	"time"
)

const numberAlphabet = "0123456789ABCDEFGHIJKLMNOPQRSTUVWXYZ"

// NewOrderNumber produces a timestamp-plus-random order number like
// ORD-1756713600000-7KQ2M. The random suffix makes collisions between
// concurrent submissions unlikely; actual uniqueness is enforced by
// the database constraint, and callers retry on a duplicate.
func NewOrderNumber() string {
	var suffix strings.Builder
	for i := 0; i < 5; i++ {
		suffix.WriteByte(numberAlphabet[rand.Intn(len(numberAlphabet))])
	}
	return fmt.Sprintf("ORD-%d-%s", time.Now().UnixMilli(), suffix.String())
}
