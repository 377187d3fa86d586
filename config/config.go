// Package config holds the small set of analyzer-wide settings that the core
// IR pipeline threads through opaquely without acting on: the target curve
// and the minimum report severity a downstream pass should surface. Neither
// affects how a Cfg is built; they are read back by analyses consuming it.
package config

import "fmt"

// Curve identifies the elliptic curve a circuit is written against. The
// pipeline does not interpret it — it only carries the value so later
// analyses (field-size-dependent range checks, for instance) can read it
// off the Cfg.
type Curve uint8

const (
	BN254 Curve = iota
	BLS12_381
	Goldilocks
)

func (c Curve) String() string {
	switch c {
	case BN254:
		return "bn254"
	case BLS12_381:
		return "bls12_381"
	case Goldilocks:
		return "goldilocks"
	default:
		return fmt.Sprintf("curve(%d)", uint8(c))
	}
}

// DefaultCurve is the curve assumed when a caller does not specify one.
const DefaultCurve = BN254

// Level is the minimum report severity a downstream pass should surface.
type Level uint8

const (
	LevelWarning Level = iota
	LevelError
)

func (l Level) String() string {
	switch l {
	case LevelWarning:
		return "WARNING"
	case LevelError:
		return "ERROR"
	default:
		return fmt.Sprintf("level(%d)", uint8(l))
	}
}

// DefaultLevel is the severity threshold assumed when a caller does not
// specify one.
const DefaultLevel = LevelWarning
