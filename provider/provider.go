// Package provider implements translation backends.
package provider

import "github.com/lingopipe/lingopipe"

// Provider is the interface for translation backends.
// This is an alias to the main package interface for convenience.
type Provider = lingopipe.Provider

// Request is an alias to the main package type.
type Request = lingopipe.Request

// Result is an alias to the main package type.
type Result = lingopipe.Result

// Detection is an alias to the main package type.
type Detection = lingopipe.Detection
