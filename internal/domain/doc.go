// Package domain contains the core business entities and their validation
// rules. It has no dependencies on storage or transport packages.
package domain
