package volley

import (
	"math"
	"testing"
)

func TestParseScore(t *testing.T) {
	tests := []struct {
		score string
		want  Outcome
	}{
		{"3-0", Outcome{HomeSets: 3, AwaySets: 0, HomePoints: 3, AwayPoints: 0, HomeWin: true}},
		{"3-1", Outcome{HomeSets: 3, AwaySets: 1, HomePoints: 3, AwayPoints: 0, HomeWin: true}},
		{"3-2", Outcome{HomeSets: 3, AwaySets: 2, HomePoints: 2, AwayPoints: 1, HomeWin: true}},
		{"2-3", Outcome{HomeSets: 2, AwaySets: 3, HomePoints: 1, AwayPoints: 2}},
		{"1-3", Outcome{HomeSets: 1, AwaySets: 3, HomePoints: 0, AwayPoints: 3}},
		{"0-3", Outcome{HomeSets: 0, AwaySets: 3, HomePoints: 0, AwayPoints: 3}},
	}
	for _, tt := range tests {
		t.Run(tt.score, func(t *testing.T) {
			got, ok := ParseScore(tt.score)
			if !ok {
				t.Fatalf("ParseScore(%q) not ok", tt.score)
			}
			if got != tt.want {
				t.Errorf("ParseScore(%q) = %+v, want %+v", tt.score, got, tt.want)
			}
		})
	}

	t.Run("invalid scores", func(t *testing.T) {
		for _, s := range []string{"2-2", "4-0", "3-3", "0-0", "invalid", "", "3", "3-", "a-3", "3-0-1"} {
			if _, ok := ParseScore(s); ok {
				t.Errorf("ParseScore(%q) should be invalid", s)
			}
		}
	})

	t.Run("every listed score parses", func(t *testing.T) {
		for _, s := range Scores {
			if _, ok := ParseScore(s); !ok {
				t.Errorf("ParseScore(%q) not ok", s)
			}
		}
	})
}

func TestOutcomeApply(t *testing.T) {
	home := Team{Name: "A"}
	away := Team{Name: "B"}
	o, _ := ParseScore("3-2")
	o.Apply(&home, &away)

	if home.Points != 2 || home.Wins != 1 || home.SetsWon != 3 || home.SetsLost != 2 || home.Played != 1 {
		t.Errorf("home = %+v", home)
	}
	if away.Points != 1 || away.Wins != 0 || away.SetsWon != 2 || away.SetsLost != 3 || away.Played != 1 {
		t.Errorf("away = %+v", away)
	}
	if away.Losses() != 1 {
		t.Errorf("away losses = %d, want 1", away.Losses())
	}
}

func TestSetRatio(t *testing.T) {
	if r := SetRatio(0, 0); r != 0 {
		t.Errorf("SetRatio(0,0) = %v, want 0", r)
	}
	if r := SetRatio(3, 0); !math.IsInf(r, 1) {
		t.Errorf("SetRatio(3,0) = %v, want +Inf", r)
	}
	if r := SetRatio(3, 2); r != 1.5 {
		t.Errorf("SetRatio(3,2) = %v, want 1.5", r)
	}

	t.Run("compare", func(t *testing.T) {
		if CompareRatios(math.Inf(1), math.Inf(1)) != 0 {
			t.Error("two infinite ratios should tie")
		}
		if CompareRatios(math.Inf(1), 9) != 1 {
			t.Error("infinite ratio should beat finite")
		}
		if CompareRatios(1.5, 2) != -1 {
			t.Error("1.5 should lose to 2")
		}
		if CompareRatios(1.00001, 1) != 0 {
			t.Error("ratios within tolerance should tie")
		}
	})
}

func TestNormalizeName(t *testing.T) {
	tests := []struct{ in, want string }{
		{"İstanbul", "ISTANBUL"},
		{"Fenerbahçe", "FENERBAHCE"},
		{"VakıfBank", "VAKIFBANK"},
		{"vakifbank", "VAKIFBANK"},
		{"Team A B", "TEAMAB"},
		{"Team-Name", "TEAMNAME"},
		{"Eczacıbaşı Dynavit", "ECZACIBASIDYNAVIT"},
		{"Göztepe", "GOZTEPE"},
	}
	for _, tt := range tests {
		if got := NormalizeName(tt.in); got != tt.want {
			t.Errorf("NormalizeName(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}

	t.Run("nil func falls back", func(t *testing.T) {
		var fn NormalizeFunc
		if got := fn.Or()("ankara"); got != "ANKARA" {
			t.Errorf("got %q, want ANKARA", got)
		}
	})
}

func TestGroupNumberAndLetter(t *testing.T) {
	if n := GroupNumber("12. GR"); n != 12 {
		t.Errorf("GroupNumber = %d, want 12", n)
	}
	if n := GroupNumber("Grup"); n != 0 {
		t.Errorf("GroupNumber = %d, want 0", n)
	}
	if l := GroupLetter("a. Grup"); l != "A" {
		t.Errorf("GroupLetter = %q, want A", l)
	}
	if l := GroupLetter("B"); l != "B" {
		t.Errorf("GroupLetter = %q, want B", l)
	}
}
