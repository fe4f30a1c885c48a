// Package app holds the application services behind the three screens —
// create order, order management, history — plus the archive saga and the
// composition root that wires adapters to ports.
package app
