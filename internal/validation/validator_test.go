// Tabularium - Media Server Dashboard Aggregation and Template Formatting
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/tabularium

package validation

import (
	"strings"
	"testing"
)

func TestGetValidator_Singleton(t *testing.T) {
	v1 := GetValidator()
	v2 := GetValidator()

	if v1 == nil {
		t.Fatal("GetValidator returned nil")
	}
	if v1 != v2 {
		t.Error("Expected the same validator instance on repeated calls")
	}
}

type formatRequest struct {
	Name     string `validate:"required"`
	Template string `validate:"required"`
	Type     string `validate:"omitempty,oneof=movies shows music"`
	Count    int    `validate:"min=1,max=100"`
}

func TestValidateStruct_Valid(t *testing.T) {
	req := formatRequest{
		Name:     "line",
		Template: "{title} ({year})",
		Type:     "movies",
		Count:    20,
	}

	if err := ValidateStruct(&req); err != nil {
		t.Errorf("Expected valid struct, got %v", err)
	}
}

func TestValidateStruct_EmptyTypeAllowed(t *testing.T) {
	req := formatRequest{Name: "line", Template: "{title}", Count: 1}
	if err := ValidateStruct(&req); err != nil {
		t.Errorf("Expected omitempty to allow empty type, got %v", err)
	}
}

func TestValidateStruct_Invalid(t *testing.T) {
	req := formatRequest{Type: "books", Count: 0}

	err := ValidateStruct(&req)
	if err == nil {
		t.Fatal("Expected validation errors")
	}

	fields := make(map[string]bool)
	for _, fe := range err.Errors() {
		fields[fe.Field()] = true
	}
	for _, want := range []string{"Name", "Template", "Type", "Count"} {
		if !fields[want] {
			t.Errorf("Expected error for field %s, got %v", want, err)
		}
	}
}

func TestValidateStruct_OneofMessage(t *testing.T) {
	req := formatRequest{Name: "x", Template: "y", Type: "books", Count: 1}

	err := ValidateStruct(&req)
	if err == nil {
		t.Fatal("Expected validation error")
	}
	if !strings.Contains(err.Error(), "must be one of") {
		t.Errorf("Expected oneof message, got %q", err.Error())
	}
}

func TestToAPIError_SingleError(t *testing.T) {
	req := formatRequest{Name: "x", Template: "", Type: "", Count: 1}

	err := ValidateStruct(&req)
	if err == nil {
		t.Fatal("Expected validation error")
	}

	apiErr := err.ToAPIError()
	if apiErr.Code != "VALIDATION_ERROR" {
		t.Errorf("Expected VALIDATION_ERROR code, got %s", apiErr.Code)
	}
	if apiErr.Details["field"] != "Template" {
		t.Errorf("Expected Template field detail, got %v", apiErr.Details)
	}
}

func TestToAPIError_MultipleErrors(t *testing.T) {
	req := formatRequest{Count: 500}

	err := ValidateStruct(&req)
	if err == nil {
		t.Fatal("Expected validation errors")
	}

	apiErr := err.ToAPIError()
	if apiErr.Code != "VALIDATION_ERROR" {
		t.Errorf("Expected VALIDATION_ERROR code, got %s", apiErr.Code)
	}
	fields, ok := apiErr.Details["fields"].([]map[string]interface{})
	if !ok || len(fields) < 2 {
		t.Errorf("Expected multiple field details, got %v", apiErr.Details)
	}
}

func TestNestedStructValidation(t *testing.T) {
	type inner struct {
		Template string `validate:"required"`
	}
	type outer struct {
		Items []inner `validate:"dive"`
	}

	err := ValidateStruct(&outer{Items: []inner{{Template: "ok"}, {}}})
	if err == nil {
		t.Fatal("Expected nested validation error")
	}
}
