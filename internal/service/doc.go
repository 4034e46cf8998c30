// Package service contains the application-specific use cases and business
// logic. It orchestrates interactions between domain objects, the
// generation pipeline, and repositories (defined in internal/store) to
// fulfill application features.
//
// The central use case is DocumentService.GenerateDocument: validate the
// request, snapshot a session-scoped provider gateway, run the pipeline,
// and persist the result only when the full session succeeded. Services
// receive dependencies through constructor injection and translate store
// and pipeline errors into application-level errors for the API layer.
package service
