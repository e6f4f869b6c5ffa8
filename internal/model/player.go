package model

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/text/cases"
	"golang.org/x/text/unicode/norm"
)

// AnonymousName is used when a player does not give a name
const AnonymousName = "Anonymous"

// playerNamespace seeds the name-based player IDs. Changing it orphans every stored profile.
var playerNamespace = uuid.MustParse("6f1d2c7e-4b1a-5d3e-9a8c-1b2c3d4e5f60")

// PlayerID uniquely identifies a player across runs
type PlayerID string

// PlayerProfile holds durable cross-session statistics for one named player
type PlayerProfile struct {
	ID          PlayerID  `json:"id"`
	Name        string    `json:"name"`
	TotalGames  int       `json:"total_games"`
	TotalWins   int       `json:"total_wins"`
	BestScore   int       `json:"best_score"`
	CreatedDate time.Time `json:"created_date"`
	LastPlayed  time.Time `json:"last_played"`
}

// WinRate returns the percentage of games won, 0 when no games were played
func (p *PlayerProfile) WinRate() float64 {
	if p.TotalGames == 0 {
		return 0
	}
	return float64(p.TotalWins) / float64(p.TotalGames) * 100
}

// DisplayName trims a raw player name, falling back to AnonymousName
func DisplayName(raw string) string {
	name := strings.Join(strings.Fields(raw), " ")
	if name == "" {
		return AnonymousName
	}
	return name
}

// NormalizeName folds a player name so that "  ALICE " and "alice" are the same player
func NormalizeName(raw string) string {
	name := norm.NFKC.String(DisplayName(raw))
	return cases.Fold().String(name)
}

// NewPlayerID derives the stable ID for a player name
func NewPlayerID(name string) PlayerID {
	return PlayerID(uuid.NewSHA1(playerNamespace, []byte(NormalizeName(name))).String())
}
