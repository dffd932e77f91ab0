// Package http implements HTTP request handlers for the billing web service.
// It provides a thin layer between HTTP transport and business logic, keeping
// handlers focused solely on HTTP concerns.
//
// # Architecture Principles
//
// Handlers in this package follow these principles:
//
//	1. Thin handlers - minimal logic, delegate to services
//	2. HTTP-only concerns - request parsing, response formatting
//	3. Error transformation - convert service errors to HTTP responses
//	4. No business logic - all logic belongs in the service layer
//
// # Request Flow
//
// A typical request flows through these layers:
//
//	HTTP Request → Chi Router → Middleware → Handler → Service
//	                                              ↓
//	HTTP Response ← Handler ← Service Response ←─┘
//
// # Error Handling
//
// All errors follow RFC 7807 Problem Details specification:
//
//	{
//	    "type": "/errors/validation",
//	    "title": "Invalid request data",
//	    "status": 400,
//	    "detail": "Date must be a valid YYYY-MM-DD value",
//	    "instance": "/api/billing/metrics"
//	}
//
// An empty ledger is not an error. Endpoints that depend on loaded billing
// data respond with HTTP 200 and {"status": "empty"} when nothing has been
// uploaded yet, so clients can render their idle state without special
// error handling.
package http
