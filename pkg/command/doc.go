// Package command authenticates control messages exchanged over a paired
// session.
//
// Every outgoing command is wrapped in a SignedCommand carrying a millisecond
// timestamp and an HMAC-SHA256 tag computed over the command's canonical
// serialization and the timestamp:
//
//	mac = HMAC-SHA256(sessionKey, canonical(command) || "|" || timestamp)
//
// Canonical serialization comes from the wire package's deterministic CBOR
// encoder, so both peers independently recompute identical MAC input for
// identical logical content.
//
// Verification rejects commands whose timestamp falls outside the replay
// window in either direction (stale replays and future clock-skew injection
// alike) and compares MACs in constant time. All attacker-reachable failures
// return false; only programmer misuse, such as signing with a session key
// of the wrong length, returns an error.
package command
