// Parkwatch - Industrial Park Utility Monitoring
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/parkwatch

/*
Package validation wraps go-playground/validator v10 for request and document
validation.

A single validator instance is shared by the API handlers and the layout
store. It reports fields by their JSON names and adds two tags:

  - isodate: a YYYY-MM-DD calendar date, as used by utility readings
  - plotnumber: a plot identifier such as A-101

Handlers turn failures into the VALIDATION_ERROR envelope:

	if verr := validation.ValidateStruct(&req); verr != nil {
	    apiErr := verr.ToAPIError()
	    respondError(w, r, http.StatusBadRequest, apiErr.Code, apiErr.Message, apiErr.Details)
	    return
	}
*/
package validation
