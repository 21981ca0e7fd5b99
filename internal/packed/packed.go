// Package packed provides types and functions for memory efficient representations of keypad moves.
package packed

import (
	"encoding/binary"
	"fmt"
	"hash/maphash"
)

// MaxDepth is the largest depth a Move can hold.
const MaxDepth = 1<<16 - 1

// Move is a compressed representation of a key to key move at an indirection depth:
// two bytes depth (big endian), one byte from key, one byte to key.
type Move [4]byte

// Pack returns the packed representation of a move.
func Pack(depth int, from, to uint8) Move {
	if depth < 0 || depth > MaxDepth {
		panic(fmt.Sprintf("packed: depth %d out of range", depth))
	}
	var m Move
	binary.BigEndian.PutUint16(m[:2], uint16(depth))
	m[2], m[3] = from, to
	return m
}

// Hash returns a hash value of m.
func (m Move) Hash(seed maphash.Seed) uint64 { return maphash.Bytes(seed, m[:]) }
