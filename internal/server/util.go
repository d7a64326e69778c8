package server

import (
	"strconv"
	"time"
)

func timeNowUTC() time.Time {
	return time.Now().UTC()
}

func itoa(value uint) string {
	return strconv.FormatUint(uint64(value), 10)
}
