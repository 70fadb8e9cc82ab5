// Package processor runs the deadline-bound query pipeline.
//
// Every query becomes a background task immediately. The pipeline, routing
// the query, fetching external context, calling the model, and executing the
// resulting actions, runs in its own goroutine; the caller waits up to a
// deadline for the result. When the deadline passes first, the caller gets a
// processing acknowledgment and the pipeline keeps running to completion,
// parking its result in the task store for a later status query.
package processor
