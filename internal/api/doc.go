// Package api implements the HTTP boundary of the assistant.
//
// The main surface is POST /query, which answers within the caller's
// deadline: status queries short-circuit to the task store, everything else
// runs through the background processor and either returns the finished
// result or a processing acknowledgment. GET /stats exposes store
// diagnostics and GET /health serves monitoring.
package api
