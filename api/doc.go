// Package api provides the HTTP API layer for the Course Finder service.
// It uses the Huma framework to provide automatic OpenAPI documentation,
// request/response validation, and a clean handler interface.
//
// # Architecture
//
// The API package is structured as follows:
//
// - server.go: Huma API configuration and setup
// - handlers/: HTTP request handlers
// - dto/: Data Transfer Objects for requests and responses
// - middleware/: HTTP middleware for cross-cutting concerns
//
// # Endpoints
//
//	GET  /search?q=python          ranked courses for a query
//	GET  /courses?platform=&page=  one page of the aggregated corpus
//	POST /courses/refresh?async=   rebuild the corpus now or in the background
//	GET  /platforms                platform table and last scrape outcomes
//	GET  /health                   corpus size, age and feature flags
//
// The JSON spec is available at /openapi.json and the interactive docs at /docs.
//
// # Middleware
//
// The API includes middleware for:
// - Request logging with request IDs (reused from X-Request-ID when present)
// - Token bucket rate limiting per client IP
// - CORS handling
//
// # Usage Example
//
//	humaAPI, router := api.NewAPIWithMiddleware(api.APIConfig{
//	    Logger:    logger,
//	    RateLimit: 5,
//	    RateBurst: 10,
//	})
//
//	handlers.NewSearchHandler(searchService, logger).RegisterRoutes(humaAPI)
//
//	http.ListenAndServe(":8000", router)
//
// # Error Handling
//
// Errors use the RFC 7807 format produced by Huma:
//
//	{
//	    "status": 400,
//	    "title": "Bad Request",
//	    "detail": "validation error on field 'q': query cannot be empty"
//	}
//
// Validation errors map to 400, an unavailable embedding backend to 503 and
// a refresh where every platform failed to 502. An empty corpus is not an
// error for search; it returns 200 with the message "No courses available".
package api
