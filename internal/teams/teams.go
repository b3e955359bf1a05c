// Package teams maps the provider's team-name variants to canonical codes.
package teams

import "strings"

// Team is one NFL franchise with the name variants the provider uses.
type Team struct {
	Code   string
	Loc    string
	Mascot string
	Short  string   // alternate abbreviation, e.g. SF for SFO
	Nick   []string // other names seen in payloads, e.g. Philly
}

// DisplayName returns the full provider-style name, e.g. "Green Bay Packers".
func (t *Team) DisplayName() string {
	return t.Loc + " " + t.Mascot
}

var all = []*Team{
	// NFC
	{Code: "ARI", Loc: "Arizona", Mascot: "Cardinals", Nick: []string{"Cards"}},
	{Code: "ATL", Loc: "Atlanta", Mascot: "Falcons"},
	{Code: "CAR", Loc: "Carolina", Mascot: "Panthers"},
	{Code: "CHI", Loc: "Chicago", Mascot: "Bears"},
	{Code: "DAL", Loc: "Dallas", Mascot: "Cowboys"},
	{Code: "DET", Loc: "Detroit", Mascot: "Lions"},
	{Code: "GB", Loc: "Green Bay", Mascot: "Packers", Short: "GBP"},
	{Code: "LAR", Loc: "Los Angeles", Mascot: "Rams"},
	{Code: "MIN", Loc: "Minnesota", Mascot: "Vikings"},
	{Code: "NO", Loc: "New Orleans", Mascot: "Saints", Short: "NOS"},
	{Code: "NYG", Loc: "New York", Mascot: "Giants"},
	{Code: "PHI", Loc: "Philadelphia", Mascot: "Eagles", Nick: []string{"Philly"}},
	{Code: "SF", Loc: "San Francisco", Mascot: "49ers", Short: "SFO", Nick: []string{"Niners"}},
	{Code: "SEA", Loc: "Seattle", Mascot: "Seahawks", Nick: []string{"Hawks"}},
	{Code: "TB", Loc: "Tampa Bay", Mascot: "Buccaneers", Short: "TBB", Nick: []string{"Bucs"}},
	{Code: "WSH", Loc: "Washington", Mascot: "Commanders", Short: "WAS"},
	// AFC
	{Code: "BAL", Loc: "Baltimore", Mascot: "Ravens"},
	{Code: "BUF", Loc: "Buffalo", Mascot: "Bills"},
	{Code: "CIN", Loc: "Cincinnati", Mascot: "Bengals"},
	{Code: "CLE", Loc: "Cleveland", Mascot: "Browns"},
	{Code: "DEN", Loc: "Denver", Mascot: "Broncos"},
	{Code: "HOU", Loc: "Houston", Mascot: "Texans"},
	{Code: "IND", Loc: "Indianapolis", Mascot: "Colts", Nick: []string{"Indy"}},
	{Code: "JAX", Loc: "Jacksonville", Mascot: "Jaguars", Short: "JAC", Nick: []string{"Jags"}},
	{Code: "KC", Loc: "Kansas City", Mascot: "Chiefs", Short: "KCC"},
	{Code: "LV", Loc: "Las Vegas", Mascot: "Raiders", Short: "LVR"},
	{Code: "LAC", Loc: "Los Angeles", Mascot: "Chargers"},
	{Code: "MIA", Loc: "Miami", Mascot: "Dolphins"},
	{Code: "NE", Loc: "New England", Mascot: "Patriots", Short: "NEP", Nick: []string{"Pats"}},
	{Code: "NYJ", Loc: "New York", Mascot: "Jets"},
	{Code: "PIT", Loc: "Pittsburgh", Mascot: "Steelers"},
	{Code: "TEN", Loc: "Tennessee", Mascot: "Titans"},
}

// placeholders are conference stand-ins the provider emits before playoff
// matchups are set. They never resolve; callers keep the verbatim name and
// flag the record unresolved.
var placeholders = map[string]bool{
	"nfc": true,
	"afc": true,
	"tbd": true,
}

var byName map[string]*Team

func init() {
	byName = make(map[string]*Team, len(all)*4)
	for _, t := range all {
		byName[strings.ToLower(t.Code)] = t
		byName[strings.ToLower(t.DisplayName())] = t
		byName[strings.ToLower(t.Mascot)] = t
		if t.Short != "" {
			byName[strings.ToLower(t.Short)] = t
		}
		for _, n := range t.Nick {
			byName[strings.ToLower(n)] = t
		}
	}
}

// Resolve maps a provider team name or abbreviation to its canonical code.
// Placeholder conference names and unrecognized strings do not resolve.
func Resolve(name string) (code string, ok bool) {
	key := strings.ToLower(strings.TrimSpace(name))
	if key == "" || placeholders[key] {
		return "", false
	}
	if t, found := byName[key]; found {
		return t.Code, true
	}
	return "", false
}

// IsPlaceholder reports whether the name is a pre-matchup conference
// stand-in such as "NFC" or "AFC".
func IsPlaceholder(name string) bool {
	return placeholders[strings.ToLower(strings.TrimSpace(name))]
}
