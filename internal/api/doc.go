// Package api exposes the cake service over HTTP. CakeHandler mounts the
// /cakes routes on a chi router, and errors.go turns service and store
// failures into status codes and client-safe messages.
package api
