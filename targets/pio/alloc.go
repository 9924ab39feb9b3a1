package pio

// Claimed state machines, [pioNum][smNum]. RP2040 has 2 PIO blocks with 4
// state machines each.
var pioClaims [2][4]bool

// allocatePIO claims the first free state machine
// Returns (pioNum, smNum, ok)
func allocatePIO() (uint8, uint8, bool) {
	for p := range pioClaims {
		for sm := range pioClaims[p] {
			if !pioClaims[p][sm] {
				pioClaims[p][sm] = true
				return uint8(p), uint8(sm), true
			}
		}
	}
	return 0, 0, false
}

// releasePIO frees a slot taken by allocatePIO
func releasePIO(pioNum, smNum uint8) {
	pioClaims[pioNum][smNum] = false
}

// resetPIOAllocations releases every slot
func resetPIOAllocations() {
	pioClaims = [2][4]bool{}
}
