package bracket

import "sort"

// GroupSize is the only group size that gets a fixture.
const GroupSize = 4

// Day labels for the three rounds of a group.
const (
	Day1 = "Day 1"
	Day2 = "Day 2"
	Day3 = "Day 3"
)

// pairings is the 1v4 / 2v3 round robin by seed index, home side first.
var pairings = []struct {
	home, away int
	day        string
}{
	{0, 3, Day1},
	{1, 2, Day1},
	{3, 1, Day2},
	{2, 0, Day2},
	{2, 3, Day3},
	{0, 1, Day3},
}

// GenerateGroupFixture emits six matches for every group of exactly four
// teams. Teams are taken in InitialSeed order, not current rank, so the ids
// do not change when overrides re-sort a group.
func GenerateGroupFixture(groups []PlayoffGroup, stage Stage) []PlayoffMatch {
	var matches []PlayoffMatch
	for _, g := range groups {
		matches = append(matches, groupFixture(g, stage)...)
	}
	return matches
}

func groupFixture(g PlayoffGroup, stage Stage) []PlayoffMatch {
	if len(g.Teams) != GroupSize {
		return nil
	}
	seeds := SeedOrder(g)

	matches := make([]PlayoffMatch, 0, len(pairings))
	for _, p := range pairings {
		matches = append(matches, PlayoffMatch{
			ID: MatchID{
				Stage: stage,
				Group: g.Name,
				Home:  seeds[p.home].Name,
				Away:  seeds[p.away].Name,
			},
			Day: p.day,
		})
	}
	return matches
}

// SeedOrder returns the group's teams sorted by InitialSeed.
func SeedOrder(g PlayoffGroup) []PlayoffTeam {
	teams := make([]PlayoffTeam, len(g.Teams))
	copy(teams, g.Teams)
	sort.SliceStable(teams, func(i, j int) bool {
		return teams[i].InitialSeed < teams[j].InitialSeed
	})
	return teams
}
