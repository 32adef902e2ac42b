package matches

type shadowState uint8

const (
	shadowUnset shadowState = iota
	shadowImplicit
	shadowExplicit
)

// ShadowBool is a boolean with an inferred value that an explicit value
// overrides. Once explicit, implicit updates are ignored until Reset.
// The zero value is unset and reads as false.
type ShadowBool struct {
	state shadowState
	value bool
}

// ImplicitBool returns a ShadowBool holding an inferred value.
func ImplicitBool(v bool) ShadowBool {
	return ShadowBool{state: shadowImplicit, value: v}
}

// ExplicitBool returns a ShadowBool holding an explicit value.
func ExplicitBool(v bool) ShadowBool {
	return ShadowBool{state: shadowExplicit, value: v}
}

// Get returns the explicit value if there is one, else the implicit value.
func (b ShadowBool) Get() bool {
	return b.value
}

// IsExplicit reports whether the value was set explicitly.
func (b ShadowBool) IsExplicit() bool {
	return b.state == shadowExplicit
}

// IsSet reports whether any value, implicit or explicit, has been recorded.
func (b ShadowBool) IsSet() bool {
	return b.state != shadowUnset
}

// SetImplicit records an inferred value unless an explicit one exists.
func (b *ShadowBool) SetImplicit(v bool) {
	if b.state == shadowExplicit {
		return
	}
	b.state = shadowImplicit
	b.value = v
}

// SetExplicit records an authoritative value.
func (b *ShadowBool) SetExplicit(v bool) {
	b.state = shadowExplicit
	b.value = v
}

// Reset returns b to the unset state.
func (b *ShadowBool) Reset() {
	*b = ShadowBool{}
}

func (b ShadowBool) String() string {
	v := "false"
	if b.value {
		v = "true"
	}
	switch b.state {
	case shadowExplicit:
		return v + " (explicit)"
	case shadowImplicit:
		return v + " (implicit)"
	default:
		return v + " (unset)"
	}
}
