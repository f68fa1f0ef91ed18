package status

// Modifier is one contribution of an enabled effect to a stat.
// Source is the key used to remove or update it; effects use a pointer to
// themselves.
type Modifier struct {
	Source any
	Stat   Stat
	Type   ManipType
	Value  float64
}

type statTotals struct {
	fixed   float64
	percent float64
	rating  float64
}
