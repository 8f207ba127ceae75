// Package queries contains read operations over live orders and the
// collaborators around them. Queries return plain read models so adapters
// never hold an order.Lifecycle outside a unit of work.
package queries
