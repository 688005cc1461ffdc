package topology

import "fmt"

// Iso is a homeomorphism witnessed by an explicit pair of mutually
// inverse maps. Isomorphism is tracked, never assumed: code that claims
// two spaces are isomorphic must hand over an Iso, and tests exercise
// the round-trip laws on sample points.
type Iso struct {
	Fwd Map // A → B
	Inv Map // B → A
}

// IdentityIso returns the identity isomorphism on s.
func IdentityIso(s Space) Iso {
	id := Identity(s)
	return Iso{Fwd: id, Inv: id}
}

// Check verifies the two round-trip laws on the given probe points:
// Inv(Fwd(a)) = a for probes in the source and Fwd(Inv(b)) = b for
// probes in the target.
func (i Iso) Check(sourceProbes, targetProbes []Point, tol float64) error {
	for _, p := range sourceProbes {
		back := i.Inv.At(i.Fwd.At(p))
		if !Equal(back, p, tol) {
			return fmt.Errorf("iso %s/%s: round trip moved %v to %v", i.Fwd.Name(), i.Inv.Name(), p, back)
		}
	}
	for _, q := range targetProbes {
		forth := i.Fwd.At(i.Inv.At(q))
		if !Equal(forth, q, tol) {
			return fmt.Errorf("iso %s/%s: reverse round trip moved %v to %v", i.Fwd.Name(), i.Inv.Name(), q, forth)
		}
	}
	return nil
}
