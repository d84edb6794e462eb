// Package session defines the record a host keeps about an established
// pairing and the Store interface at the persistence boundary.
//
// Persistent storage itself is the host's concern; this package specifies
// what crosses the boundary and ships a mutex-guarded MemoryStore for tests
// and hosts that do not persist pairings. Records hold only public peer
// material. The symmetric session key is deliberately absent: it lives with
// the component that uses it and dies with the pairing.
package session
