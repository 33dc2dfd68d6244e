package oneshot

// noCopy may be embedded into structs which must not be copied after first
// use. See go vet -copylocks.
type noCopy struct{}

func (*noCopy) Lock()   {}
func (*noCopy) Unlock() {}
