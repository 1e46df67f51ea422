// Tabularium - Media Server Dashboard Aggregation and Template Formatting
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/tabularium

package assembler

import (
	"errors"
	"fmt"
)

// ErrUnknownMediaType is returned before any upstream call when the
// requested media type is not one of movies, shows, or music.
var ErrUnknownMediaType = errors.New("media type must be one of: movies, shows, music")

// UpstreamError marks a request-fatal upstream failure (the foundational
// fetch could not be completed at all). The HTTP layer maps it to a 502.
type UpstreamError struct {
	Op  string
	Err error
}

func (e *UpstreamError) Error() string {
	return fmt.Sprintf("upstream %s failed: %v", e.Op, e.Err)
}

func (e *UpstreamError) Unwrap() error {
	return e.Err
}

// IsUpstream reports whether err is request-fatal upstream failure.
func IsUpstream(err error) bool {
	var ue *UpstreamError
	return errors.As(err, &ue)
}
