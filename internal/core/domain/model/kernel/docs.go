// Package kernel provides the shared value objects of the purchasing domain.
//
// The package includes:
//   - UUID: an immutable identifier for orders, constructed only through
//     NewUUID, UUIDFromString or UUIDFromBytes. Its zero value fails Validate.
package kernel
