package scenario

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/derekprior/volleysim/internal/bracket"
	"github.com/derekprior/volleysim/internal/volley"
)

func playoffGroup(name string, teams ...string) bracket.PlayoffGroup {
	g := bracket.PlayoffGroup{Name: name}
	for i, t := range teams {
		g.Teams = append(g.Teams, bracket.PlayoffTeam{
			Team:        volley.Team{Name: t},
			Rating:      1200,
			InitialSeed: i,
		})
	}
	return g
}

func byName(g bracket.PlayoffGroup) map[string]bracket.PlayoffTeam {
	m := make(map[string]bracket.PlayoffTeam)
	for _, t := range g.Teams {
		m[t.Name] = t
	}
	return m
}

func order(g bracket.PlayoffGroup) []string {
	var out []string
	for _, t := range g.Teams {
		out = append(out, t.Name)
	}
	return out
}

func TestApplyToGroupsPointRules(t *testing.T) {
	groups := []bracket.PlayoffGroup{playoffGroup("A", "TeamA", "TeamD", "TeamC", "TeamB")}
	// TeamA is seed 1 and TeamB seed 4, so they meet on day 1 with TeamA at home.
	tests := []struct {
		score              string
		homePts, awayPts   int
		homeWins, awayWins int
	}{
		{"3-0", 3, 0, 1, 0},
		{"3-1", 3, 0, 1, 0},
		{"3-2", 2, 1, 1, 0},
		{"2-3", 1, 2, 0, 1},
		{"1-3", 0, 3, 0, 1},
		{"0-3", 0, 3, 0, 1},
	}
	for _, tt := range tests {
		t.Run(tt.score, func(t *testing.T) {
			got := ApplyToGroups(groups, map[string]string{"quarter-A-TeamA-TeamB": tt.score}, bracket.Quarter)
			teams := byName(got[0])
			a, b := teams["TeamA"].Stats(), teams["TeamB"].Stats()
			if a.Points != tt.homePts || b.Points != tt.awayPts {
				t.Errorf("points = %d/%d, want %d/%d", a.Points, b.Points, tt.homePts, tt.awayPts)
			}
			if a.Wins != tt.homeWins || b.Wins != tt.awayWins {
				t.Errorf("wins = %d/%d, want %d/%d", a.Wins, b.Wins, tt.homeWins, tt.awayWins)
			}
			if a.Played != 1 || b.Played != 1 {
				t.Errorf("played = %d/%d, want 1/1", a.Played, b.Played)
			}
			if a.Losses+b.Losses != 1 {
				t.Errorf("losses = %d/%d, want one loss", a.Losses, b.Losses)
			}
		})
	}
}

func TestApplyToGroupsInvalidOverrides(t *testing.T) {
	groups := []bracket.PlayoffGroup{playoffGroup("A", "W", "X", "Y", "Z")}
	base := ApplyToGroups(groups, nil, bracket.Quarter)

	tests := map[string]map[string]string{
		"unknown group":      {"quarter-Z-W-Z": "3-0"},
		"wrong stage":        {"semi-A-W-Z": "3-0"},
		"reversed home/away": {"quarter-A-Z-W": "3-0"},
		"unknown team":       {"quarter-A-W-Ghost": "3-0"},
		"malformed score":    {"quarter-A-W-Z": "2-2"},
		"non-numeric score":  {"quarter-A-W-Z": "abc"},
		"empty score":        {"quarter-A-W-Z": ""},
		"garbage key":        {"nonsense": "3-0"},
	}
	for name, overrides := range tests {
		t.Run(name, func(t *testing.T) {
			got := ApplyToGroups(groups, overrides, bracket.Quarter)
			if diff := cmp.Diff(base, got); diff != "" {
				t.Errorf("override should be inert (-want +got):\n%s", diff)
			}
		})
	}
}

func TestApplyToGroupsTieBreakCascade(t *testing.T) {
	// Seeds 0..3: P, Q, R, S. Fixture ids:
	// P-S, Q-R, S-Q, R-P, R-S, P-Q.
	g := playoffGroup("A", "P", "Q", "R", "S")

	t.Run("wins before points", func(t *testing.T) {
		got := ApplyToGroups([]bracket.PlayoffGroup{g}, map[string]string{
			"final-A-P-S": "3-2", // P: 1 win, 2 pts
			"final-A-Q-R": "3-0", // Q: 1 win, 3 pts
			"final-A-S-Q": "3-0", // S: 1 win, 3+1 pts; Q: 1 loss
			"final-A-R-P": "0-3", // P: 2 wins
		}, bracket.Final)
		if got[0].Teams[0].Name != "P" {
			t.Errorf("leader = %s, want P (most wins)", got[0].Teams[0].Name)
		}
		if got[0].Teams[1].Name != "S" {
			t.Errorf("second = %s, want S (more points than Q)", got[0].Teams[1].Name)
		}
	})

	t.Run("set ratio when wins and points tie", func(t *testing.T) {
		got := ApplyToGroups([]bracket.PlayoffGroup{g}, map[string]string{
			"final-A-P-S": "3-1", // P 3/1
			"final-A-Q-R": "3-0", // Q 3/0
		}, bracket.Final)
		if diff := cmp.Diff([]string{"Q", "P", "S", "R"}, order(got[0])); diff != "" {
			t.Errorf("order (-want +got):\n%s", diff)
		}
	})

	t.Run("rating when everything else ties", func(t *testing.T) {
		rated := g.Clone()
		rated.Teams[3].Rating = 1300 // S
		rated.Teams[1].Rating = 1250 // Q
		got := ApplyToGroups([]bracket.PlayoffGroup{rated}, map[string]string{
			"final-A-P-S": "3-1",
			"final-A-Q-R": "1-3",
		}, bracket.Final)
		// P and R: 1 win, 3 pts, ratio 3. S and Q: 0 wins, ratio 1/3.
		if diff := cmp.Diff([]string{"P", "R", "S", "Q"}, order(got[0])); diff != "" {
			t.Errorf("order (-want +got):\n%s", diff)
		}
	})

	t.Run("no results sorts by rating", func(t *testing.T) {
		rated := g.Clone()
		rated.Teams[2].Rating = 1400
		got := ApplyToGroups([]bracket.PlayoffGroup{rated}, nil, bracket.Final)
		if got[0].Teams[0].Name != "R" {
			t.Errorf("leader = %s, want R", got[0].Teams[0].Name)
		}
		for _, tm := range got[0].Teams {
			if tm.Scenario == nil {
				t.Errorf("%s has no scenario counters", tm.Name)
			}
		}
	})
}

func TestApplyToGroupsFixtureStability(t *testing.T) {
	original := []bracket.PlayoffGroup{playoffGroup("C", "P", "Q", "R", "S")}
	before := bracket.GenerateGroupFixture(original, bracket.Semi)

	overrides := map[string]string{
		"semi-C-S-Q": "3-0",
		"semi-C-R-S": "0-3",
		"semi-C-R-P": "3-2",
	}
	ranked := ApplyToGroups(original, overrides, bracket.Semi)
	if ranked[0].Teams[0].Name != "S" {
		t.Fatalf("leader = %s, want S", ranked[0].Teams[0].Name)
	}

	if diff := cmp.Diff(before, bracket.GenerateGroupFixture(original, bracket.Semi)); diff != "" {
		t.Errorf("fixture from original groups changed:\n%s", diff)
	}
	if diff := cmp.Diff(before, bracket.GenerateGroupFixture(ranked, bracket.Semi)); diff != "" {
		t.Errorf("fixture from ranked groups changed:\n%s", diff)
	}

	t.Run("reapplying to ranked groups is idempotent", func(t *testing.T) {
		again := ApplyToGroups(ranked, overrides, bracket.Semi)
		if diff := cmp.Diff(ranked, again); diff != "" {
			t.Errorf("reapply differs:\n%s", diff)
		}
	})

	t.Run("input not mutated", func(t *testing.T) {
		if diff := cmp.Diff([]bracket.PlayoffGroup{playoffGroup("C", "P", "Q", "R", "S")}, original); diff != "" {
			t.Errorf("input mutated:\n%s", diff)
		}
	})
}

func TestApplyToGroupsNormalizesNames(t *testing.T) {
	groups := []bracket.PlayoffGroup{playoffGroup("A", "VakıfBank", "B", "C", "Fenerbahçe")}
	got := ApplyToGroups(groups, map[string]string{"quarter-A-VakıfBank-Fenerbahçe": "3-2"}, bracket.Quarter)
	teams := byName(got[0])
	if teams["VakıfBank"].Stats().Points != 2 || teams["Fenerbahçe"].Stats().Points != 1 {
		t.Errorf("points = %d/%d, want 2/1", teams["VakıfBank"].Stats().Points, teams["Fenerbahçe"].Stats().Points)
	}
}

func TestApplyToTeams(t *testing.T) {
	teams := []volley.Team{
		{Name: "A", Played: 2, Wins: 1, Points: 3, SetsWon: 4, SetsLost: 3},
		{Name: "B", Played: 2, Wins: 1, Points: 3, SetsWon: 3, SetsLost: 4},
		{Name: "C"},
	}

	t.Run("adds to season totals", func(t *testing.T) {
		got := ApplyToTeams(teams, map[string]string{
			"A|||B": "3-2",
			"c|||A": "0-3",
		})
		want := []volley.Team{
			{Name: "A", Played: 4, Wins: 3, Points: 8, SetsWon: 10, SetsLost: 5},
			{Name: "B", Played: 3, Wins: 1, Points: 4, SetsWon: 5, SetsLost: 7},
			{Name: "C", Played: 1, Wins: 0, Points: 0, SetsWon: 0, SetsLost: 3},
		}
		if diff := cmp.Diff(want, got); diff != "" {
			t.Errorf("ApplyToTeams (-want +got):\n%s", diff)
		}
	})

	t.Run("ignores unknown teams and bad scores", func(t *testing.T) {
		got := ApplyToTeams(teams, map[string]string{
			"A|||Ghost": "3-0",
			"A|||B":     "4-1",
			"A-B":       "3-0",
			"A|||A":     "3-0",
		})
		if diff := cmp.Diff(teams, got); diff != "" {
			t.Errorf("teams changed (-want +got):\n%s", diff)
		}
	})

	t.Run("input not mutated", func(t *testing.T) {
		ApplyToTeams(teams, map[string]string{"A|||B": "3-0"})
		if teams[0].Played != 2 {
			t.Error("input mutated")
		}
	})
}

func TestParseFlatOverrides(t *testing.T) {
	got := ParseFlatOverrides(map[string]string{
		"B|||C":         "3-1",
		"A|||B":         "3-0",
		"quarter-A-X-Y": "3-0",
		"|||C":          "3-0",
	})
	want := []MatchOverride{
		{Home: "A", Away: "B", Score: "3-0"},
		{Home: "B", Away: "C", Score: "3-1"},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("ParseFlatOverrides (-want +got):\n%s", diff)
	}
}
