// Package store defines the persistence contract for cakes together with
// the sentinel errors every backend reports. Concrete backends live under
// internal/platform.
package store
