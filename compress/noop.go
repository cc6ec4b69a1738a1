package compress

// decodeStored returns a copy of a stored block. The caller's size check
// rejects blocks whose length is not the expected size.
func decodeStored(src []byte, _ int) ([]byte, error) {
	out := make([]byte, len(src))
	copy(out, src)

	return out, nil
}
