// Package machine provides the machine aggregate for production equipment.
// A machine is an exclusive resource: at most one production run holds it at
// any time, and the lock carries the holder's identity so only that run can
// release it.
//
// The aggregate enforces occupancy in memory; the persistence layer enforces
// the same rule with an atomic compare-and-set so two concurrent starts on the
// same machine cannot both succeed.
package machine
