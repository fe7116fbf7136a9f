package crypto

// Zero overwrites every given buffer with zero bytes. Derived keys,
// decrypted secrets and individual shares must be wiped with Zero on every
// exit path once they are no longer needed; the garbage collector gives no
// timing guarantee.
func Zero(buffers ...[]byte) {
	for _, b := range buffers {
		for i := range b {
			b[i] = 0
		}
	}
}
