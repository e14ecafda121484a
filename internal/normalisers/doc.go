// Package normalisers provides implementations of the Normaliser
// interface for the document formats the ingestion agent accepts.
// Each normaliser knows how to extract plain text from the file
// extensions it registers for.
//
// Normalisers are registered with the Registry at agent startup.
package normalisers
