package utils

import (
	"crypto/rand"
	"fmt"
	"io"
	"math/big"
	"time"
)

// codeEntropy feeds the random suffix of order codes; tests swap it.
var codeEntropy io.Reader = rand.Reader

// GenerateOrderCode returns ORD-YYYYMMDD-HHMMSS-mmm-RRRR for an order created at
// createdAt, so the code and the stored creation time agree to the millisecond.
func GenerateOrderCode(createdAt time.Time) string {
	at := createdAt.UTC()

	suffix := at.UnixNano() % 10000
	if n, err := rand.Int(codeEntropy, big.NewInt(10000)); err == nil {
		suffix = n.Int64()
	}

	return fmt.Sprintf("ORD-%s-%03d-%04d",
		at.Format("20060102-150405"),
		at.Nanosecond()/int(time.Millisecond),
		suffix,
	)
}
