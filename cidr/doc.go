// Package cidr implements an IPv4/IPv6 address range value in CIDR
// notation.
//
// A CIDR keeps the address bits as given: only Network (and the values
// derived from it) zero the host bits. Ordering ignores the prefix length
// and sorts every IPv4 value before any IPv6 value. Arithmetic works on the
// fixed-width address and clamps instead of wrapping around.
//
// Operations that modify a value come in two flavours: the plain method
// returns a new CIDR and leaves the receiver alone, whereas the *InPlace and
// Set* variants overwrite the receiver and report whether they succeeded.
package cidr
