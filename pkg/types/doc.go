// Package types defines the record structs, enumerations, standard errors,
// and configuration shared by the chronicle storage layer and its callers.
package types
