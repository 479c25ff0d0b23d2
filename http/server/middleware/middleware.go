// Package middleware provides the Fiber middlewares of the HTTP server.
//
// Each constructor returns a server.Middleware whose priority fixes its place in the chain:
//
//   - Recovery (1000) turns panics into errors
//   - Tracing (900) starts the request span
//   - Timeout (800) bounds the request context
//   - MetaInject (700) puts request metadata into the context
//   - Alerting (600) reports internal errors
//   - Logger (500) logs every request
package middleware

const (
	priorityRecovery   = 1000
	priorityTracing    = 900
	priorityTimeout    = 800
	priorityMetaInject = 700
	priorityAlerting   = 600
	priorityLogger     = 500
)
