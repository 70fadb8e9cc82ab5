// Package events provides types and interfaces for task lifecycle events.
//
// The background processor emits an event at every task state change so that
// observers can react without the processor knowing about them. Handlers are
// registered on an emitter; the bundled log handler writes an audit trail of
// every task's life.
package events
