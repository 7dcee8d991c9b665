// Package mocks provides hand-written test doubles for the service
// interfaces. Each mock records its calls and lets a test override behavior
// per method through a function field.
package mocks
