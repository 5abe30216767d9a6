// Package services contains stateless domain services that work across
// aggregates, currently the alert deriver that turns an order snapshot into
// attention alerts.
package services
