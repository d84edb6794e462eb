// Package log defines the structured event logging interface for RACP.
//
// The core packages never write to stdout or a file themselves. They emit
// Event values to a Logger supplied by the host application; NoopLogger (or
// a nil logger where accepted) disables logging entirely. SlogAdapter
// bridges events into a standard library slog.Logger for console output and
// MultiLogger fans events out to several sinks.
//
// Events carry CBOR integer-key tags so hosts that archive protocol traces
// can encode them compactly with the wire codec.
package log
