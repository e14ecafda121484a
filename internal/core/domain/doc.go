// Package domain holds the core types shared across the pipeline:
// chunk reports, tool descriptors and calls, conversation messages,
// and the sentinel errors that cross agent boundaries.
package domain
