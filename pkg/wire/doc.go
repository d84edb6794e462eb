// Package wire defines the CBOR wire format for RACP messages.
//
// RACP uses CBOR (RFC 8949) with integer keys for compact, deterministic
// encoding. Frames are length-prefixed; the transport carrying them is out
// of scope for this package, which performs no I/O beyond the supplied
// io.Reader/io.Writer.
//
// # Canonical encoding
//
// Encoding is deterministic: map keys are sorted canonically and indefinite
// lengths are forbidden, so identical logical content always yields
// identical bytes. Command authentication depends on this property: both
// peers must recompute byte-identical MAC input independently, and a
// non-deterministic encoder silently breaks cross-peer verification without
// raising an error on either side. Canonical is the entry point the command
// layer uses.
//
// # Handshake messages
//
// The pairing handshake exchanges PairingHello, CodeEntry, CodeResult,
// KeyExchange, PairingComplete and PairingError messages. DecodeMessage
// dispatches raw frames to the concrete type via the leading message-type
// key.
package wire
