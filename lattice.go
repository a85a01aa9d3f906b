package hermes

// Joiner is implemented by the elements of a join-semilattice. Join must
// be associative, commutative and idempotent.
type Joiner[T any] interface {
	Join(T) T
}

// Fold joins all xs starting from the bottom element bot. For a proper
// semilattice the result does not depend on the order of xs.
func Fold[T Joiner[T]](bot T, xs ...T) T {
	res := bot
	for _, x := range xs {
		res = res.Join(x)
	}
	return res
}

// Lattice adapts a JsonType to [Joiner] so that [Fold] can be used with
// inferred types. The zero Lattice holds [Never].
type Lattice struct{ T JsonType }

func (l Lattice) Join(r Lattice) Lattice {
	return Lattice{Join(l.T, r.T)}
}

func (l Lattice) Type() JsonType {
	if l.T == nil {
		return Never
	}
	return l.T
}
