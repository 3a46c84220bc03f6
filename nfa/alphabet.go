package nfa

// ByteClasses maps each byte value to its equivalence class.
//
// Two bytes share a class when no state of the NFA distinguishes them, so
// a DFA may compute one transition per class instead of one per byte.
//
// Example for pattern [a-z]+:
//   - Class 0: bytes 0x00-0x60 (before 'a')
//   - Class 1: bytes 0x61-0x7a ('a' to 'z')
//   - Class 2: bytes 0x7b-0xff (after 'z')
type ByteClasses struct {
	classes [256]byte
}

// SingletonByteClasses puts every byte in its own class.
func SingletonByteClasses() ByteClasses {
	var bc ByteClasses
	for i := 0; i < 256; i++ {
		bc.classes[i] = byte(i)
	}
	return bc
}

// Get returns the equivalence class for the given byte.
func (bc *ByteClasses) Get(b byte) byte {
	return bc.classes[b]
}

// AlphabetLen returns the number of classes.
func (bc *ByteClasses) AlphabetLen() int {
	// Classes are assigned in ascending byte order.
	return int(bc.classes[255]) + 1
}

// IsSingleton reports whether each byte is its own class.
func (bc *ByteClasses) IsSingleton() bool {
	return bc.AlphabetLen() == 256
}

// Representatives returns the smallest byte of each class, in class order.
func (bc *ByteClasses) Representatives() []byte {
	reps := make([]byte, 0, bc.AlphabetLen())
	for b := 0; b < 256; b++ {
		if b == 0 || bc.classes[b] != bc.classes[b-1] {
			reps = append(reps, byte(b))
		}
	}
	return reps
}

// ByteClassSet collects the class boundaries of byte ranges.
//
// A range [lo, hi] ends a class at lo-1 and at hi. Walking the bytes in
// order and bumping the class after each boundary yields the classes.
type ByteClassSet struct {
	bits [4]uint64
}

// SetRange marks the byte range [lo, hi] as distinguishable from its
// neighbours.
func (bcs *ByteClassSet) SetRange(lo, hi byte) {
	if lo > 0 {
		bcs.setBit(lo - 1)
	}
	bcs.setBit(hi)
}

func (bcs *ByteClassSet) setBit(b byte) {
	bcs.bits[b/64] |= 1 << (b % 64)
}

func (bcs *ByteClassSet) getBit(b byte) bool {
	return bcs.bits[b/64]&(1<<(b%64)) != 0
}

// ByteClasses converts the boundary set into a lookup table.
func (bcs *ByteClassSet) ByteClasses() ByteClasses {
	var bc ByteClasses
	class := byte(0)
	for b := 0; b < 256; b++ {
		bc.classes[b] = class
		if bcs.getBit(byte(b)) && b < 255 {
			class++
		}
	}
	return bc
}
