// Package smartframe holds release metadata for the smartframe module.
package smartframe

// Version is the semantic version of the module.
const Version = "0.1.0"

// ModulePath is the Go import path of the module.
const ModulePath = "github.com/mesh-intelligence/smartframe"
