// Package pairing implements the RACP pairing state machine that binds a
// remote agent to a controller through a short human-verifiable code.
//
// # Overview
//
// Pairing is driven by a Coordinator owned by the device agent. The device
// generates a 6-digit pairing code and displays it (screen, QR payload);
// the operator enters the code on the controller. A correct entry moves the
// coordinator into key exchange: each side sends its X25519 exchange public
// key and derives the same 32-byte session key locally. The session key is
// never transmitted.
//
// # State machine
//
//	IDLE --GeneratePairingCode--> AWAITING_CODE
//	AWAITING_CODE --correct code--> EXCHANGING_KEYS
//	AWAITING_CODE --wrong code xN--> LOCKED_OUT
//	EXCHANGING_KEYS --peer key--> PAIRED
//	any --Reset--> IDLE (fresh identity keypair)
//
// PAIRED and LOCKED_OUT are terminal until an explicit Reset. Code
// comparison is constant time over the full fixed-length string, and each
// wrong entry burns one of a bounded number of attempts (default 3).
//
// # Security properties
//
//   - The pairing code is consumed one-shot: a correct entry invalidates it.
//   - Attempt limiting resists online brute force of the 6-digit space.
//   - Reset regenerates the local identity keypair, so a failed or
//     abandoned pairing never shares key material with the next one.
//   - Code expiry (default 5 minutes) bounds the window a displayed code
//     stays usable. Expiry is a caller-checked query (IsPairingCodeValid),
//     not an automatic transition.
//
// A Coordinator represents exactly one in-flight pairing attempt. Its
// methods are mutex-guarded, but hosts running multiple sessions must give
// each session its own Coordinator.
package pairing
