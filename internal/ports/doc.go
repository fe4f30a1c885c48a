// Package ports defines the interfaces between the application core and its
// adapters, together with the error contracts adapters must honor.
//
// Outbound ports (stores, token source, archive journal) are implemented by
// the sheets, journal, and inmemory adapters; the application services in
// internal/app depend only on these interfaces so every screen can be tested
// against the in-memory twin.
package ports
