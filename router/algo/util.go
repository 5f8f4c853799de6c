package algo

import (
	"math"
	"time"
)

// HoursToDuration 将小时数转换为time.Duration，精确到纳秒
func HoursToDuration(hours float64) time.Duration {
	return time.Duration(math.Round(hours * float64(time.Hour)))
}
