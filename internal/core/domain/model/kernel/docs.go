// Package kernel contains shared value objects used across the production
// domain model. These are the building blocks that aggregates are composed
// from: strongly-typed identifiers and small immutable values with their own
// validation rules.
package kernel
