// Copyright (c) 2026 Raduga Center. All rights reserved.

package dateonly_test

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/raduga-center/raduga/pkg/dateonly"
)

/*
TestDate_JSON verifies the "2006-01-02" wire format in both directions.
*/
func TestDate_JSON(t *testing.T) {
	date := dateonly.New(2018, time.March, 9)

	encoded, err := json.Marshal(date)
	require.NoError(t, err)
	assert.Equal(t, `"2018-03-09"`, string(encoded))

	var decoded dateonly.Date
	require.NoError(t, json.Unmarshal([]byte(`"2018-03-09"`), &decoded))
	assert.Equal(t, date, decoded)

	assert.Error(t, json.Unmarshal([]byte(`"09.03.2018"`), &decoded))
}

/*
TestDate_YearsSince verifies that the age counter only advances once the
anniversary has passed.
*/
func TestDate_YearsSince(t *testing.T) {
	birthDate := dateonly.New(2018, time.June, 15)

	testCases := []struct {
		name string
		now  time.Time
		want int
	}{
		{"day before birthday", time.Date(2026, time.June, 14, 0, 0, 0, 0, time.UTC), 7},
		{"on the birthday", time.Date(2026, time.June, 15, 0, 0, 0, 0, time.UTC), 8},
		{"day after birthday", time.Date(2026, time.June, 16, 0, 0, 0, 0, time.UTC), 8},
		{"before birth", time.Date(2017, time.January, 1, 0, 0, 0, 0, time.UTC), 0},
	}

	for _, testCase := range testCases {
		t.Run(testCase.name, func(t *testing.T) {
			assert.Equal(t, testCase.want, birthDate.YearsSince(testCase.now))
		})
	}
}

/*
TestDate_AddDays verifies window arithmetic across month boundaries.
*/
func TestDate_AddDays(t *testing.T) {
	start := dateonly.New(2026, time.March, 1)

	assert.Equal(t, dateonly.New(2026, time.February, 23), start.AddDays(-6))
	assert.Equal(t, dateonly.New(2026, time.March, 31), start.AddDays(30))
}
