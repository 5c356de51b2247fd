// Copyright (c) 2026 Raduga Center. All rights reserved.

// Package stats computes usage statistics over the records database.
//
// Every series is day-bucketed over a trailing window and zero-filled, so
// the frontend charts never have to interpolate missing days.
package stats

import (
	"github.com/raduga-center/raduga/pkg/dateonly"
)

// Window bounds for the {days} route parameter. Five years of history is
// the most any chart in the UI can display.
const (
	MinWindowDays = 1
	MaxWindowDays = 1825
)

// DayCount is one point of a day-bucketed series.
type DayCount struct {
	Date  dateonly.Date `json:"date"`
	Count int64         `json:"count"`
}

// PatientDayCount is one point of the patient-activity series. The frontend
// charts read the count under its historical key.
type PatientDayCount struct {
	Date  dateonly.Date `json:"date"`
	Count int64         `json:"patient_count"`
}

// UserDayCount is one point of the account-registration series.
type UserDayCount struct {
	Date  dateonly.Date `json:"date"`
	Count int64         `json:"users_count"`
}

// RoleCount is the number of accounts holding one role.
type RoleCount struct {
	Role  string `json:"role"`
	Count int64  `json:"count"`
}

// CategoryCount is the number of documents in one section.
type CategoryCount struct {
	Category string `json:"subdirectory"`
	Count    int64  `json:"count"`
}

// NameCount is a sparse categorical row as it comes back from storage.
type NameCount struct {
	Name  string
	Count int64
}
