// Tabularium - Media Server Dashboard Aggregation and Template Formatting
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/tabularium

// Package validation provides struct validation using go-playground/validator v10.
//
// This package wraps the go-playground/validator library to provide a thread-safe
// singleton validator instance with user-friendly error messages. It integrates
// with the application's API error format for consistent error responses.
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
//	type SaveFormatsRequest struct {
//	    Name     string `validate:"required"`
//	    Template string `validate:"required"`
//	    Type     string `validate:"omitempty,oneof=movies shows music"`
//	}
//
//	func handler(w http.ResponseWriter, r *http.Request) {
//	    var req SaveFormatsRequest
//	    if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
//	        // handle decode error
//	    }
//
//	    if verr := validation.ValidateStruct(&req); verr != nil {
//	        apiErr := verr.ToAPIError()
//	        respondError(w, http.StatusBadRequest, apiErr.Code, apiErr.Message, nil)
//	        return
//	    }
//
//	    // proceed with valid request
//	}
//
// # Common Validation Tags
//
// String validations:
//   - required: Field must not be empty
//   - min=n / max=n: Length bounds in characters
//   - oneof=a b c: Value must be one of the listed options
//   - url: Valid URL format
//
// Numeric validations:
//   - gte=n / lte=n: Inclusive bounds
//   - gt=n / lt=n: Exclusive bounds
package validation
