// Package service contains the application-specific use cases and business
// logic. It orchestrates interactions between domain objects and stores
// (defined in internal/store) to fulfill application features.
//
// Services receive their dependencies through constructor injection and
// translate store-level errors into application-level errors. The API
// layer maps those errors to HTTP status codes; services never reference
// HTTP concepts directly.
package service
