package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestMonthStart(t *testing.T) {
	assert.Equal(t,
		time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC),
		MonthStart(time.Date(2024, 3, 15, 17, 30, 0, 0, time.UTC)))

	// Already at the boundary
	assert.Equal(t,
		time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC),
		MonthStart(time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)))
}

func TestMonthEnd(t *testing.T) {
	end := MonthEnd(time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC))
	assert.Equal(t, time.March, end.Month())
	assert.Equal(t, 31, end.Day())
	assert.True(t, end.Before(time.Date(2024, 4, 1, 0, 0, 0, 0, time.UTC)))

	// December rolls over the year
	end = MonthEnd(time.Date(2024, 12, 5, 0, 0, 0, 0, time.UTC))
	assert.Equal(t, time.December, end.Month())
	assert.Equal(t, 2024, end.Year())
}
