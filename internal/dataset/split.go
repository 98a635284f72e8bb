package dataset

import (
	"fmt"
	"math"
)

// SplitChronological partitions the frame into a leading train run and
// a trailing test run. The test partition is the last floor(len*ratio)
// rows, so test timestamps always postdate train timestamps and no
// shuffling occurs. Ratios that would leave either partition empty are
// rejected.
func SplitChronological(f *Frame, ratio float64) (train, test *Frame, err error) {
	n := f.Len()
	if n == 0 {
		return nil, nil, fmt.Errorf("cannot split an empty table")
	}

	testSize := int(math.Floor(float64(n) * ratio))
	if testSize == 0 {
		return nil, nil, fmt.Errorf("test partition is empty: ratio %v of %d rows", ratio, n)
	}
	if testSize >= n {
		return nil, nil, fmt.Errorf("test partition consumes all %d rows: ratio %v", n, ratio)
	}

	return f.Slice(0, n-testSize), f.Slice(n-testSize, n), nil
}
