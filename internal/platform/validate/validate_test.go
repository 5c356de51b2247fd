// Copyright (c) 2026 Raduga Center. All rights reserved.

package validate_test

import (
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/raduga-center/raduga/internal/platform/apperr"
	"github.com/raduga-center/raduga/internal/platform/validate"
)

/*
TestValidator_CollectsAllErrors verifies that every failed rule appears in
the resulting 422 details, not just the first one.
*/
func TestValidator_CollectsAllErrors(t *testing.T) {
	validator := validate.New()
	validator.Required("fio", "")
	validator.MinLen("login", "ab", 5)
	validator.Positive("role_id", 0)

	err := validator.Err()
	require.Error(t, err)

	appError := apperr.As(err)
	require.NotNil(t, appError)

	assert.Equal(t, 422, appError.HTTPStatus)
	assert.Len(t, appError.Details, 3)
	assert.Equal(t, "fio", appError.Details[0].Field)
}

/*
TestValidator_PassesCleanInput verifies that valid input yields no error.
*/
func TestValidator_PassesCleanInput(t *testing.T) {
	validator := validate.New()
	validator.Required("fio", "Иванова Елена Петровна").
		MinLen("fio", "Иванова Елена Петровна", 10).
		MaxLen("fio", "Иванова Елена Петровна", 255)
	validator.Positive("role_id", 2)

	assert.NoError(t, validator.Err())
	assert.False(t, validator.HasErrors())
}

/*
TestValidator_LengthIsRuneBased verifies that Cyrillic strings are measured
in characters, not bytes.
*/
func TestValidator_LengthIsRuneBased(t *testing.T) {
	// Ten Cyrillic letters occupy twenty bytes.
	value := "Абвгдеёжзи"

	validator := validate.New()
	validator.MaxLen("name", value, 10)

	assert.NoError(t, validator.Err())
}

/*
TestValidator_Match verifies regexp-backed rules with a custom message.
*/
func TestValidator_Match(t *testing.T) {
	pattern := regexp.MustCompile(`^[A-Za-zА-Яа-яёЁ0-9\s\-_]{3,255}$`)

	valid := validate.New()
	valid.Match("name", "Старший методист", pattern, "bad")
	assert.NoError(t, valid.Err())

	invalid := validate.New()
	invalid.Match("name", "??", pattern, "bad")
	err := invalid.Err()
	require.Error(t, err)

	appError := apperr.As(err)
	require.NotNil(t, appError)
	assert.Equal(t, "bad", appError.Details[0].Message)
}

/*
TestValidator_Email verifies address parsing.
*/
func TestValidator_Email(t *testing.T) {
	assert.NoError(t, validate.New().Email("email", "staff@raduga-center.ru").Err())
	assert.Error(t, validate.New().Email("email", "not-an-email").Err())
}
