// Package domain contains the core business entities and value objects of
// the assistant: background tasks, conversation turns and sessions, routing
// domains, and the read-only context snapshots handed to the AI handlers.
// It is independent of any specific infrastructure or delivery mechanism.
package domain
