package domain

// Opt is a string that may be absent. An absent Opt means the value was not
// found; a present Opt may still hold "".
type Opt struct {
	value string
	ok    bool
}

func Some(value string) Opt {
	return Opt{value: value, ok: true}
}

func None() Opt {
	return Opt{}
}

// SomeNonEmpty is Some for a non-empty value and None otherwise.
func SomeNonEmpty(value string) Opt {
	if value == "" {
		return None()
	}
	return Some(value)
}

func (o Opt) Get() (string, bool) {
	return o.value, o.ok
}

func (o Opt) IsSome() bool {
	return o.ok
}

func (o Opt) Or(fallback string) string {
	if o.ok {
		return o.value
	}
	return fallback
}

// OrElse returns o when present, otherwise other.
func (o Opt) OrElse(other Opt) Opt {
	if o.ok {
		return o
	}
	return other
}
