// Package kernel contains shared value objects used across the order domain.
//
// The package includes:
//   - Money: an immutable non-negative monetary amount with minor-unit precision
//
// Value objects in this package are immutable, validated on construction, and
// safe for concurrent use.
package kernel
