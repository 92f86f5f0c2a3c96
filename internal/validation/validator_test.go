// GameEdge Intelligence - Customer Analytics for Sports Betting Platforms
// Copyright 2026 GameEdge Labs
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/gameedge/intelligence

package validation

import (
	"testing"
)

// ===================================================================================================
// Singleton Validator Tests
// ===================================================================================================

func TestGetValidator_Singleton(t *testing.T) {
	// Test that GetValidator returns the same instance
	v1 := GetValidator()
	v2 := GetValidator()

	if v1 != v2 {
		t.Error("GetValidator() should return the same singleton instance")
	}

	if v1 == nil {
		t.Error("GetValidator() should not return nil")
	}
}

// ===================================================================================================
// ValidateStruct Tests
// ===================================================================================================

// TestStruct for basic validation tests
type TestStruct struct {
	CustomerID string `validate:"required,min=1,max=64"`
	Rating     int    `validate:"min=0,max=5"`
	Comment    string `validate:"max=2000"`
	Days       int    `validate:"omitempty,min=1,max=365"`
	PageSize   int    `validate:"min=0,max=1000"`
}

func TestValidateStruct_Valid(t *testing.T) {
	tests := []struct {
		name  string
		input TestStruct
	}{
		{
			name: "all valid fields",
			input: TestStruct{
				CustomerID: "cust-000042",
				Rating:     4,
				Comment:    "payout was fast",
				Days:       30,
				PageSize:   100,
			},
		},
		{
			name: "minimum values",
			input: TestStruct{
				CustomerID: "c",
				Rating:     0,
				Days:       0,
				PageSize:   0,
			},
		},
		{
			name: "maximum values",
			input: TestStruct{
				CustomerID: "c",
				Rating:     5,
				Days:       365,
				PageSize:   1000,
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateStruct(&tt.input)
			if err != nil {
				t.Errorf("ValidateStruct() returned unexpected error: %v", err)
			}
		})
	}
}

func TestValidateStruct_Invalid(t *testing.T) {
	tests := []struct {
		name      string
		input     TestStruct
		wantField string
		wantTag   string
	}{
		{
			name: "missing required customer ID",
			input: TestStruct{
				CustomerID: "",
				Rating:     3,
			},
			wantField: "CustomerID",
			wantTag:   "required",
		},
		{
			name: "rating too high",
			input: TestStruct{
				CustomerID: "cust-1",
				Rating:     9,
			},
			wantField: "Rating",
			wantTag:   "max",
		},
		{
			name: "negative rating",
			input: TestStruct{
				CustomerID: "cust-1",
				Rating:     -1,
			},
			wantField: "Rating",
			wantTag:   "min",
		},
		{
			name: "days out of window",
			input: TestStruct{
				CustomerID: "cust-1",
				Days:       400,
			},
			wantField: "Days",
			wantTag:   "max",
		},
		{
			name: "page size too large",
			input: TestStruct{
				CustomerID: "cust-1",
				PageSize:   2000,
			},
			wantField: "PageSize",
			wantTag:   "max",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateStruct(&tt.input)
			if err == nil {
				t.Fatal("ValidateStruct() should have returned an error")
			}

			errs := err.Errors()
			if len(errs) == 0 {
				t.Fatal("ValidationErrors should contain at least one error")
			}

			found := false
			for _, e := range errs {
				if e.Field() == tt.wantField && e.Tag() == tt.wantTag {
					found = true
					break
				}
			}

			if !found {
				t.Errorf("Expected error on field %s with tag %s, got: %v", tt.wantField, tt.wantTag, errs)
			}
		})
	}
}

// ===================================================================================================
// ToAPIError Tests
// ===================================================================================================

func TestToAPIError_SingleError(t *testing.T) {
	input := TestStruct{
		CustomerID: "", // required field missing
		Rating:     3,
	}

	err := ValidateStruct(&input)
	if err == nil {
		t.Fatal("Expected validation error")
	}

	apiErr := err.ToAPIError()

	if apiErr.Code != "VALIDATION_ERROR" {
		t.Errorf("Expected code VALIDATION_ERROR, got %s", apiErr.Code)
	}

	if apiErr.Message == "" {
		t.Error("Expected non-empty message")
	}

	// Should contain field name in details
	if apiErr.Details == nil {
		t.Error("Expected details to be set")
	}
}

func TestToAPIError_MultipleErrors(t *testing.T) {
	input := TestStruct{
		CustomerID: "", // required field missing
		Rating:     9,
		Days:       400,
		PageSize:   -1,
	}

	err := ValidateStruct(&input)
	if err == nil {
		t.Fatal("Expected validation error")
	}

	apiErr := err.ToAPIError()

	if apiErr.Code != "VALIDATION_ERROR" {
		t.Errorf("Expected code VALIDATION_ERROR, got %s", apiErr.Code)
	}

	// Details should contain field information
	if apiErr.Details == nil {
		t.Error("Expected details to contain field information")
	}

	if _, ok := apiErr.Details["fields"]; !ok {
		t.Error("Expected details to contain 'fields' key")
	}
}

// ===================================================================================================
// URL Validation Tests - Import Source
// ===================================================================================================

type SourceURLStruct struct {
	SourceURL string `validate:"omitempty,url"`
}

func TestURLValidation_Valid(t *testing.T) {
	tests := []struct {
		name string
		url  string
	}{
		{"empty url", ""},
		{"https dataset", "https://datasets.example.com/customers.json"},
		{"http with port", "http://10.0.0.5:9000/export/bets.json"},
		{"with query", "https://warehouse.example.com/dump?window=90d"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			input := SourceURLStruct{SourceURL: tt.url}
			err := ValidateStruct(&input)
			if err != nil {
				t.Errorf("ValidateStruct() returned unexpected error for url %q: %v", tt.url, err)
			}
		})
	}
}

func TestURLValidation_Invalid(t *testing.T) {
	tests := []struct {
		name string
		url  string
	}{
		{"spaces", "not a url"},
		{"missing scheme separator", "https//example.com"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			input := SourceURLStruct{SourceURL: tt.url}
			err := ValidateStruct(&input)
			if err == nil {
				t.Errorf("ValidateStruct() should have returned error for url %q", tt.url)
			}
		})
	}
}

// ===================================================================================================
// Oneof Validation Tests - Analysis Method
// ===================================================================================================

type AnalysisMethodStruct struct {
	Method string `validate:"omitempty,oneof=rfm clustering hybrid"`
}

func TestOneofValidation_Valid(t *testing.T) {
	tests := []struct {
		name   string
		method string
	}{
		{"empty", ""},
		{"rfm", "rfm"},
		{"clustering", "clustering"},
		{"hybrid", "hybrid"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			input := AnalysisMethodStruct{Method: tt.method}
			err := ValidateStruct(&input)
			if err != nil {
				t.Errorf("ValidateStruct() returned unexpected error for method %q: %v", tt.method, err)
			}
		})
	}
}

func TestOneofValidation_Invalid(t *testing.T) {
	tests := []struct {
		name   string
		method string
	}{
		{"unknown method", "spectral"},
		{"partial match", "rfmx"},
		{"case sensitive", "Hybrid"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			input := AnalysisMethodStruct{Method: tt.method}
			err := ValidateStruct(&input)
			if err == nil {
				t.Errorf("ValidateStruct() should have returned error for method %q", tt.method)
			}
		})
	}
}

// ===================================================================================================
// WithRequiredStructEnabled Tests
// ===================================================================================================

type NestedStruct struct {
	Inner InnerStruct `validate:"required"`
}

type InnerStruct struct {
	Value string `validate:"required"`
}

func TestNestedStructValidation(t *testing.T) {
	// Valid nested struct
	valid := NestedStruct{
		Inner: InnerStruct{Value: "test"},
	}

	err := ValidateStruct(&valid)
	if err != nil {
		t.Errorf("ValidateStruct() returned unexpected error for valid nested struct: %v", err)
	}

	// Invalid - missing inner value
	invalid := NestedStruct{
		Inner: InnerStruct{Value: ""},
	}

	err = ValidateStruct(&invalid)
	if err == nil {
		t.Error("ValidateStruct() should have returned error for invalid nested struct")
	}
}

// ===================================================================================================
// Dive Validation Tests - Imported Rows
// ===================================================================================================

type ImportRowsStruct struct {
	CustomerIDs []string `validate:"omitempty,max=10,dive,required,min=1"`
}

func TestDiveValidation(t *testing.T) {
	valid := ImportRowsStruct{CustomerIDs: []string{"cust-1", "cust-2"}}
	if err := ValidateStruct(&valid); err != nil {
		t.Errorf("ValidateStruct() returned unexpected error: %v", err)
	}

	empty := ImportRowsStruct{}
	if err := ValidateStruct(&empty); err != nil {
		t.Errorf("ValidateStruct() returned unexpected error for empty slice: %v", err)
	}

	blankElement := ImportRowsStruct{CustomerIDs: []string{"cust-1", ""}}
	if err := ValidateStruct(&blankElement); err == nil {
		t.Error("ValidateStruct() should have returned error for blank element")
	}

	tooMany := ImportRowsStruct{CustomerIDs: make([]string, 11)}
	for i := range tooMany.CustomerIDs {
		tooMany.CustomerIDs[i] = "cust"
	}
	if err := ValidateStruct(&tooMany); err == nil {
		t.Error("ValidateStruct() should have returned error for oversized slice")
	}
}

// ===================================================================================================
// Error Message Translation Tests
// ===================================================================================================

func TestErrorMessages(t *testing.T) {
	input := TestStruct{
		CustomerID: "",
		Rating:     9,
	}

	err := ValidateStruct(&input)
	if err == nil {
		t.Fatal("Expected validation error")
	}

	// Error message should be human-readable
	msg := err.Error()
	if msg == "" {
		t.Error("Error message should not be empty")
	}

	// Should contain field name
	if !containsSubstring(msg, "CustomerID") && !containsSubstring(msg, "Rating") {
		t.Errorf("Error message should reference failed field: %s", msg)
	}
}

// helper function
func containsSubstring(s, substr string) bool {
	return len(s) >= len(substr) && (s == substr || len(s) > 0 && containsSubstringHelper(s, substr))
}

func containsSubstringHelper(s, substr string) bool {
	for i := 0; i <= len(s)-len(substr); i++ {
		if s[i:i+len(substr)] == substr {
			return true
		}
	}
	return false
}
