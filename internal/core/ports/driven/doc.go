// Package driven provides interfaces for infrastructure adapters
// (secondary/outbound ports): the chat model, the embedding service,
// the chunk store, the vector index, agent sessions, and the chat
// history store.
package driven
