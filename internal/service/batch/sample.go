package batch

import (
	"encoding/csv"
	"fmt"
	"io"
	"math/rand"
	"strconv"

	"github.com/shopspring/decimal"
)

const (
	sampleBaseHeight    = 5_000_000
	sampleBaseTimestamp = 1514764800
	hexDigits           = "0123456789abcdef"
)

// GenerateSample writes n synthetic rows in the batch input schema. About 70%
// of rows are small transfers, 20% medium ones with occasional errors and the
// rest large ones with frequent errors.
func GenerateSample(w io.Writer, n int, seed int64) error {
	rng := rand.New(rand.NewSource(seed))
	cw := csv.NewWriter(w)

	header := append(append([]string{}, requiredColumns...), ColumnIsError)
	if err := cw.Write(header); err != nil {
		return fmt.Errorf("write header: %w", err)
	}

	normal, medium := n*7/10, n*9/10
	for i := 0; i < n; i++ {
		var (
			amount  float64
			isError bool
		)
		switch {
		case i < normal:
			amount = between(rng, 0.001, 2)
		case i < medium:
			amount = between(rng, 2, 50)
			isError = rng.Intn(4) == 0
		default:
			amount = between(rng, 50, 1000)
			isError = rng.Intn(2) == 0
		}

		row := []string{
			"0x" + randomHex(rng, 64),
			strconv.Itoa(sampleBaseHeight + rng.Intn(5_000_001)),
			strconv.Itoa(sampleBaseTimestamp + rng.Intn(200_000_001)),
			"0x" + randomHex(rng, 40),
			"0x" + randomHex(rng, 40),
			decimal.NewFromFloat(amount).Round(8).String(),
			strconv.Itoa(boolInt(isError)),
		}
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("write row %d: %w", i, err)
		}
	}
	cw.Flush()
	return cw.Error()
}

func between(rng *rand.Rand, lo, hi float64) float64 {
	return lo + rng.Float64()*(hi-lo)
}

func randomHex(rng *rand.Rand, n int) string {
	b := make([]byte, n)
	for i := range b {
		b[i] = hexDigits[rng.Intn(len(hexDigits))]
	}
	return string(b)
}

func boolInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
