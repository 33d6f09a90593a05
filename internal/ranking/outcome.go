package ranking

import (
	"fmt"
	"lol-tracker/internal/domain"
)

type Dimension int

const (
	DimensionPoints Dimension = iota + 1
	DimensionDivision
	DimensionTier
)

func (d Dimension) String() string {
	switch d {
	case DimensionPoints:
		return "POINTS"
	case DimensionDivision:
		return "DIVISION"
	case DimensionTier:
		return "TIER"
	}
	return ""
}

// Change is the part of a rank that moved and by how much. Only the field
// matching Dimension is set.
type Change struct {
	Dimension Dimension
	Tier      domain.Tier
	Division  domain.Division
	Points    int
}

func (c Change) String() string {
	switch c.Dimension {
	case DimensionTier:
		return c.Tier.String()
	case DimensionDivision:
		return c.Division.String()
	case DimensionPoints:
		return fmt.Sprintf("%d LP", c.Points)
	}
	return ""
}

// Outcome is one of Victory, Defeat or Remake.
type Outcome interface {
	Result() string
	outcome()
}

type Victory struct {
	Change
}

type Defeat struct {
	Change
}

// Remake is a voided match. It carries no change and is never notified.
type Remake struct{}

func (Victory) Result() string { return "VICTORY" }
func (Defeat) Result() string  { return "DEFEAT" }
func (Remake) Result() string  { return "REMAKE" }

func (Victory) outcome() {}
func (Defeat) outcome()  {}
func (Remake) outcome()  {}

// DimensionOf returns the changed dimension, or the empty string for a remake.
func DimensionOf(o Outcome) string {
	switch o := o.(type) {
	case Victory:
		return o.Dimension.String()
	case Defeat:
		return o.Dimension.String()
	}
	return ""
}
