// Package events provides types and interfaces for broadcasting job
// lifecycle changes to interested components.
//
// The job runner emits an event whenever a background job changes status.
// Handlers register with an emitter and receive every event; this keeps
// audit logging and any future notification surfaces decoupled from the
// runner itself.
//
// The primary components are:
// - JobLifecycleEvent: A status transition of one background job
// - EventHandler: Interface for components that can handle events
// - EventEmitter: Interface for components that can emit events
package events
