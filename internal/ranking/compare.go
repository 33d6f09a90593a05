package ranking

import "lol-tracker/internal/domain"

type Direction int

const (
	Downgrade Direction = iota - 1
	Same
	Upgrade
)

func (d Direction) String() string {
	switch d {
	case Downgrade:
		return "downgrade"
	case Upgrade:
		return "upgrade"
	}
	return "same"
}

func CompareTiers(previous, current domain.Tier) Direction {
	switch {
	case current > previous:
		return Upgrade
	case current < previous:
		return Downgrade
	}
	return Same
}

func CompareDivisions(previous, current domain.Division) Direction {
	switch {
	case current > previous:
		return Upgrade
	case current < previous:
		return Downgrade
	}
	return Same
}

// Compare classifies the move from previous to current. Tier is checked
// before division and division before points, so a single match is only
// ever reported on its coarsest changed dimension.
//
// Equal points at zero are a Defeat: a loss at 0 LP leaves no trace in the
// point delta. Equal nonzero points are a Remake.
func Compare(previous, current domain.RankState) Outcome {
	switch CompareTiers(previous.Tier, current.Tier) {
	case Upgrade:
		return Victory{Change{Dimension: DimensionTier, Tier: current.Tier}}
	case Downgrade:
		return Defeat{Change{Dimension: DimensionTier, Tier: current.Tier}}
	}

	switch CompareDivisions(previous.Division, current.Division) {
	case Upgrade:
		return Victory{Change{Dimension: DimensionDivision, Division: current.Division}}
	case Downgrade:
		return Defeat{Change{Dimension: DimensionDivision, Division: current.Division}}
	}

	switch {
	case current.Points > previous.Points:
		return Victory{Change{Dimension: DimensionPoints, Points: current.Points - previous.Points}}
	case current.Points < previous.Points:
		return Defeat{Change{Dimension: DimensionPoints, Points: previous.Points - current.Points}}
	case current.Points == 0:
		return Defeat{Change{Dimension: DimensionPoints, Points: 0}}
	}
	return Remake{}
}
