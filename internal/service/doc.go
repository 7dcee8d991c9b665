// Package service contains the cake use cases. It sits between the HTTP
// handlers in internal/api and the persistence contract in internal/store,
// translating store errors into service errors and domain records into the
// request and response DTOs the API speaks.
//
// Error handling principles:
//  1. Expected conditions are reported with sentinel errors (ErrCakeNotFound)
//  2. Every failure is wrapped in a *CakeServiceError naming the operation
//  3. Callers use errors.Is/errors.As to check for specific error conditions
//  4. The API layer maps service errors to HTTP status codes
package service
