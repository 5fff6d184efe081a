package cidr

import (
	"encoding/binary"
	"math/bits"
)

// uint128 holds an address as two big-endian 64 bit words. IPv4 addresses
// live in the low 32 bits of lo.
type uint128 struct {
	hi, lo uint64
}

var (
	zero128 = uint128{}
	one128  = uint128{lo: 1}
	max128  = uint128{hi: ^uint64(0), lo: ^uint64(0)}
	max32   = uint128{lo: 0xFFFFFFFF}
)

func u128From16(b [16]byte) uint128 {
	return uint128{
		hi: binary.BigEndian.Uint64(b[:8]),
		lo: binary.BigEndian.Uint64(b[8:]),
	}
}

func u128From4(b [4]byte) uint128 {
	return uint128{lo: uint64(binary.BigEndian.Uint32(b[:]))}
}

func (u uint128) bytes16() [16]byte {
	var b [16]byte
	binary.BigEndian.PutUint64(b[:8], u.hi)
	binary.BigEndian.PutUint64(b[8:], u.lo)
	return b
}

func (u uint128) bytes4() [4]byte {
	var b [4]byte
	binary.BigEndian.PutUint32(b[:], uint32(u.lo))
	return b
}

func (u uint128) isZero() bool {
	return u == zero128
}

func (u uint128) cmp(v uint128) int {
	switch {
	case u.hi < v.hi:
		return -1
	case u.hi > v.hi:
		return 1
	case u.lo < v.lo:
		return -1
	case u.lo > v.lo:
		return 1
	}
	return 0
}

// add returns u+v and whether the sum carried out of bit 127.
func (u uint128) add(v uint128) (uint128, bool) {
	lo, carry := bits.Add64(u.lo, v.lo, 0)
	hi, carry := bits.Add64(u.hi, v.hi, carry)
	return uint128{hi: hi, lo: lo}, carry != 0
}

// sub returns u-v and whether it borrowed past zero.
func (u uint128) sub(v uint128) (uint128, bool) {
	lo, borrow := bits.Sub64(u.lo, v.lo, 0)
	hi, borrow := bits.Sub64(u.hi, v.hi, borrow)
	return uint128{hi: hi, lo: lo}, borrow != 0
}

func (u uint128) and(v uint128) uint128 {
	return uint128{hi: u.hi & v.hi, lo: u.lo & v.lo}
}

func (u uint128) or(v uint128) uint128 {
	return uint128{hi: u.hi | v.hi, lo: u.lo | v.lo}
}

func (u uint128) andNot(v uint128) uint128 {
	return uint128{hi: u.hi &^ v.hi, lo: u.lo &^ v.lo}
}

func (u uint128) onesCount() int {
	return bits.OnesCount64(u.hi) + bits.OnesCount64(u.lo)
}

// lowOnes returns a value with its n least significant bits set.
func lowOnes(n int) uint128 {
	switch {
	case n <= 0:
		return zero128
	case n >= 128:
		return max128
	case n >= 64:
		return uint128{hi: 1<<uint(n-64) - 1, lo: ^uint64(0)}
	}
	return uint128{lo: 1<<uint(n) - 1}
}

// allOnes is the highest address of a width-bit family.
func allOnes(width int) uint128 {
	if width == 32 {
		return max32
	}
	return max128
}

// hostMask has the width-prefix low bits set.
func hostMask(width, prefix int) uint128 {
	return lowOnes(width - prefix)
}

// netMask has the prefix high bits of a width-bit address set.
func netMask(width, prefix int) uint128 {
	return allOnes(width).andNot(hostMask(width, prefix))
}

// maskLen returns the prefix length m encodes within width bits, or false
// when the set bits are not contiguous from the top.
func maskLen(m uint128, width int) (int, bool) {
	inv := allOnes(width).andNot(m)
	next, _ := inv.add(one128)
	if !next.and(inv).isZero() {
		return 0, false
	}
	return width - inv.onesCount(), true
}
