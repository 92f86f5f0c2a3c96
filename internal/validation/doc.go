// GameEdge Intelligence - Customer Analytics for Sports Betting Platforms
// Copyright 2026 GameEdge Labs
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/gameedge/intelligence

// Package validation provides struct validation using go-playground/validator v10.
//
// This package wraps the go-playground/validator library to provide a thread-safe
// singleton validator instance with user-friendly error messages. It integrates
// with the API's error envelope for consistent error responses.
//
// # Overview
//
// The package provides:
//   - Thread-safe singleton validator (initialized once, cached struct info)
//   - Error translation to human-readable messages
//   - APIError conversion matching the application's error format
//   - Future v11 compatibility with WithRequiredStructEnabled
//
// # Quick Start
//
//	type FeedbackRequest struct {
//	    CustomerID string `validate:"required,min=1,max=64"`
//	    Rating     int    `validate:"required,min=1,max=5"`
//	    Comment    string `validate:"max=2000"`
//	}
//
//	func handler(w http.ResponseWriter, r *http.Request) {
//	    var req FeedbackRequest
//	    if err := decodeJSON(r.Body, &req); err != nil {
//	        // handle decode error
//	    }
//
//	    if verr := validation.ValidateStruct(&req); verr != nil {
//	        apiErr := verr.ToAPIError()
//	        respondError(w, http.StatusBadRequest, apiErr.Code, apiErr.Message, apiErr.Details)
//	        return
//	    }
//
//	    // proceed with valid request
//	}
//
// # Common Validation Tags
//
// String validations:
//   - required: field must not be empty
//   - min=n: minimum length n characters
//   - max=n: maximum length n characters
//   - url: valid URL format (import source URLs)
//
// Numeric validations:
//   - gte=n, lte=n, gt=n, lt=n: range bounds
//   - min=n, max=n: minimum and maximum values
//
// Enum validations:
//   - oneof=rfm clustering hybrid: analysis method selection
//   - oneof=partition density: clustering mode selection
//
// Collection validations:
//   - dive: apply element rules inside imported row slices
//
// # API Error Integration
//
// ToAPIError produces errors matching the application envelope:
//
//	// Single field error
//	{
//	    "code": "VALIDATION_ERROR",
//	    "message": "Rating must be at most 5",
//	    "details": {"field": "Rating", "tag": "max", "value": 9}
//	}
//
//	// Multiple field errors
//	{
//	    "code": "VALIDATION_ERROR",
//	    "message": "CustomerID: CustomerID is required; Rating: Rating must be at least 1",
//	    "details": {
//	        "fields": [
//	            {"field": "CustomerID", "tag": "required", "message": "..."},
//	            {"field": "Rating", "tag": "min", "message": "..."}
//	        ]
//	    }
//	}
//
// # Thread Safety
//
// The singleton validator is initialized once and safe for concurrent use:
//
//	validate := validation.GetValidator()  // Thread-safe
//	err := validation.ValidateStruct(&req) // Thread-safe
//
// # Performance
//
// The validator caches struct reflection information: the first validation of
// a struct type pays for reflection, subsequent validations hit the cache.
//
// # See Also
//
//   - internal/api: request handlers using validation
//   - github.com/go-playground/validator/v10: underlying library
package validation
