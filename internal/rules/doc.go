// Package rules stores the declarative rule definitions that drive
// projections. Rules live in a TOML registry under the project directory
// and are the single source of truth for generated tool configuration.
package rules
