// Package driving provides interfaces for inbound adapters
// (primary ports): the operations the CLI and the chat front-end
// invoke on the pipeline.
package driving
