package ordering

import (
	"fmt"
	"hash/crc32"
)

// GenerateOrderNumber derives the order number from the basket uid. The
// mapping is deterministic on purpose: two concurrent placements of the same
// basket produce the same number, so the uniqueness check turns the race into
// a clean conflict instead of a double order.
func GenerateOrderNumber(basketUID string) string {
	return fmt.Sprintf("%d", 100000+crc32.ChecksumIEEE([]byte(basketUID)))
}
