// Package domain contains the core model for the order application.
//
// This package is the center of the hexagonal architecture: it defines the
// catalog, order, and history entities plus the pure logic that operates on
// them (draft assembly, totals, statistics, history filtering). It depends on
// nothing outside the standard library and the decimal/uuid value types —
// never on adapters, ports, or remote SDKs.
package domain
