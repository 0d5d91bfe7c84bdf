// ServiceGraph - Trust-Weighted Service Provider Matching
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/servicegraph

package validation

import (
	"strings"
	"testing"
)

type budgetInput struct {
	Min      float64 `validate:"gte=0"`
	Max      float64 `validate:"gtefield=Min"`
	Currency string  `validate:"required,oneof=USD EUR GBP"`
}

func TestValidateStructValid(t *testing.T) {
	t.Parallel()

	in := budgetInput{Min: 20, Max: 50, Currency: "USD"}
	if err := ValidateStruct(&in); err != nil {
		t.Errorf("ValidateStruct() = %v, want nil", err)
	}
}

func TestValidateStructCollectsAllFailures(t *testing.T) {
	t.Parallel()

	in := budgetInput{Min: -5, Max: -10, Currency: ""}
	err := ValidateStruct(&in)
	if err == nil {
		t.Fatal("ValidateStruct accepted invalid input")
	}
	if got := len(err.Fields()); got != 3 {
		t.Fatalf("got %d field errors, want 3: %v", got, err)
	}
}

func TestFieldErrorDetails(t *testing.T) {
	t.Parallel()

	in := budgetInput{Min: 50, Max: 20, Currency: "USD"}
	err := ValidateStruct(&in)
	if err == nil {
		t.Fatal("ValidateStruct accepted Max < Min")
	}

	fields := err.Fields()
	if len(fields) != 1 {
		t.Fatalf("got %d field errors, want 1: %v", len(fields), err)
	}
	fe := fields[0]
	if fe.Field() != "Max" {
		t.Errorf("Field() = %q, want Max", fe.Field())
	}
	if fe.Tag() != "gtefield" {
		t.Errorf("Tag() = %q, want gtefield", fe.Tag())
	}
	if fe.Param() != "Min" {
		t.Errorf("Param() = %q, want Min", fe.Param())
	}
	if !strings.Contains(fe.Error(), "Max") {
		t.Errorf("message %q does not name the field", fe.Error())
	}
}

func TestErrorMessageJoinsFields(t *testing.T) {
	t.Parallel()

	in := budgetInput{Min: 0, Max: 10, Currency: "JPY"}
	err := ValidateStruct(&in)
	if err == nil {
		t.Fatal("ValidateStruct accepted unknown currency")
	}
	msg := err.Error()
	if !strings.Contains(msg, "Currency") || !strings.Contains(msg, "USD EUR GBP") {
		t.Errorf("message %q missing field or allowed values", msg)
	}
}

func TestValidatorSingleton(t *testing.T) {
	t.Parallel()

	if Validator() != Validator() {
		t.Error("Validator() returned distinct instances")
	}
}
