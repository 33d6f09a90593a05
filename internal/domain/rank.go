package domain

import (
	"fmt"
	"strings"
)

type Tier int

const (
	Unranked Tier = iota
	Iron
	Bronze
	Silver
	Gold
	Platinum
	Emerald
	Diamond
	Master
	Grandmaster
	Challenger
)

var tierNames = [...]string{
	Unranked:    "UNRANKED",
	Iron:        "IRON",
	Bronze:      "BRONZE",
	Silver:      "SILVER",
	Gold:        "GOLD",
	Platinum:    "PLATINUM",
	Emerald:     "EMERALD",
	Diamond:     "DIAMOND",
	Master:      "MASTER",
	Grandmaster: "GRANDMASTER",
	Challenger:  "CHALLENGER",
}

func (t Tier) String() string {
	if t < Unranked || t > Challenger {
		return fmt.Sprintf("Tier(%d)", int(t))
	}
	return tierNames[t]
}

// IsApex reports whether the tier has no divisions.
func (t Tier) IsApex() bool {
	return t >= Master
}

// ParseTier maps a ladder label such as "gold" to its Tier. Unknown labels
// are Unranked.
func ParseTier(s string) Tier {
	s = strings.ToUpper(strings.TrimSpace(s))
	for t, name := range tierNames {
		if name == s {
			return Tier(t)
		}
	}
	return Unranked
}

// Division is ordered IV (lowest) to I (highest). NoDivision sorts below IV
// and is used for unranked players.
type Division int

const (
	NoDivision Division = iota
	DivisionIV
	DivisionIII
	DivisionII
	DivisionI
)

var divisionNames = [...]string{
	NoDivision:  "",
	DivisionIV:  "IV",
	DivisionIII: "III",
	DivisionII:  "II",
	DivisionI:   "I",
}

func (d Division) String() string {
	if d < NoDivision || d > DivisionI {
		return fmt.Sprintf("Division(%d)", int(d))
	}
	return divisionNames[d]
}

func ParseDivision(s string) Division {
	s = strings.ToUpper(strings.TrimSpace(s))
	if s == "" {
		return NoDivision
	}
	for d, name := range divisionNames {
		if name == s {
			return Division(d)
		}
	}
	return NoDivision
}

// RankState is a player's solo queue standing at one point in time.
type RankState struct {
	Tier     Tier
	Division Division
	Points   int
}

func (r RankState) String() string {
	if r.Division == NoDivision {
		return fmt.Sprintf("%s %d LP", r.Tier, r.Points)
	}
	return fmt.Sprintf("%s %s %d LP", r.Tier, r.Division, r.Points)
}

// Label renders the tier and division without points, e.g. "GOLD II".
func (r RankState) Label() string {
	if r.Division == NoDivision {
		return r.Tier.String()
	}
	return r.Tier.String() + " " + r.Division.String()
}
