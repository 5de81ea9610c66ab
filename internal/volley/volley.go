// Package volley holds the season data model shared by the standings,
// rating, bracket and scenario packages, plus the volleyball scoring rules.
package volley

import (
	"strings"
	"time"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// Team is one team's regular-season record within its group.
type Team struct {
	Name     string `yaml:"name" json:"name"`
	Group    string `yaml:"group,omitempty" json:"groupName"`
	Played   int    `yaml:"played" json:"played"`
	Wins     int    `yaml:"wins" json:"wins"`
	Points   int    `yaml:"points" json:"points"`
	SetsWon  int    `yaml:"sets_won" json:"setsWon"`
	SetsLost int    `yaml:"sets_lost" json:"setsLost"`
}

// Losses is derived; every completed match is either a win or a loss.
func (t Team) Losses() int { return t.Played - t.Wins }

// Match is a scheduled or completed regular-season match.
type Match struct {
	Home   string    `json:"homeTeam"`
	Away   string    `json:"awayTeam"`
	Group  string    `json:"groupName"`
	Played bool      `json:"isPlayed"`
	Score  string    `json:"resultScore,omitempty"` // "H-A" in sets
	Date   time.Time `json:"matchDate,omitempty"`
}

// Key is the flat override key for this match: "Home|||Away".
func (m Match) Key() string { return FlatKey(m.Home, m.Away) }

// FlatKey builds the regular-season override key for a home/away pair.
func FlatKey(home, away string) string { return home + "|||" + away }

// NormalizeFunc maps a display name to the key used for comparisons.
type NormalizeFunc func(string) string

// NormalizeName folds case and diacritics (including the Turkish dotted and
// dotless I) and drops everything that is not an ASCII letter or digit, so
// "Fenerbahçe Medicana" and "FENERBAHCE  medicana" compare equal.
func NormalizeName(name string) string {
	name = strings.NewReplacer("İ", "I", "ı", "I").Replace(name)

	// Chained transformers carry state, so build one per call.
	fold := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	if folded, _, err := transform.String(fold, name); err == nil {
		name = folded
	}

	var b strings.Builder
	for _, r := range strings.ToUpper(name) {
		if (r >= 'A' && r <= 'Z') || (r >= '0' && r <= '9') {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// Or returns fn, or NormalizeName when fn is nil.
func (fn NormalizeFunc) Or() NormalizeFunc {
	if fn == nil {
		return NormalizeName
	}
	return fn
}
