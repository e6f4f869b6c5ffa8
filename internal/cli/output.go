package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"sort"
	"strings"
	"time"

	"github.com/mcoot/brainplay/internal/model"
	"github.com/mcoot/brainplay/internal/services/session"
	"github.com/mcoot/brainplay/internal/services/stats"
)

// Output handles formatting output based on the configured format
type Output struct {
	format string
	out    io.Writer
	errOut io.Writer
}

// NewOutput creates a new Output formatter
func NewOutput(format string, out, errOut io.Writer) *Output {
	return &Output{format: format, out: out, errOut: errOut}
}

// IsJSON reports whether output is machine-readable
func (o *Output) IsJSON() bool {
	return o.format == OutputJSON
}

// Print outputs data in the configured format
func (o *Output) Print(data any) {
	if o.IsJSON() {
		o.printJSON(data)
	} else {
		o.printText(data)
	}
}

// PrintError outputs an error
func (o *Output) PrintError(err error) {
	if o.IsJSON() {
		errData := map[string]any{
			"error": map[string]string{
				"message": err.Error(),
			},
		}
		data, _ := json.Marshal(errData)
		fmt.Fprintln(o.errOut, string(data))
	} else {
		fmt.Fprintf(o.errOut, "Error: %s\n", err)
	}
}

// Prompt asks for input; prompts are suppressed in JSON mode
func (o *Output) Prompt(prompt string) {
	if o.IsJSON() {
		return
	}
	fmt.Fprint(o.out, prompt)
}

func (o *Output) printJSON(data any) {
	enc := json.NewEncoder(o.out)
	enc.SetIndent("", "  ")
	_ = enc.Encode(data)
}

func (o *Output) printText(data any) {
	switch v := data.(type) {
	case WelcomeView:
		o.printWelcome(v)
	case QuestionView:
		o.printQuestion(v)
	case TurnView:
		o.printTurn(v)
	case OutcomeView:
		o.printOutcome(v)
	case HistoryView:
		o.printHistory(v)
	case StatsView:
		o.printStats(v)
	default:
		// Fallback to JSON for unknown types
		o.printJSON(data)
	}
}

// WelcomeView is shown when a session starts
type WelcomeView struct {
	Event      string `json:"event"`
	SessionID  string `json:"session_id"`
	Player     string `json:"player"`
	Mode       string `json:"mode"`
	TotalGames int    `json:"total_games"`
	TotalWins  int    `json:"total_wins"`
}

// QuestionView is one asked question
type QuestionView struct {
	Event string `json:"event"`
	Round int    `json:"round"`
	Type  string `json:"question_type"`
	Text  string `json:"text"`
	Hint  string `json:"hint,omitempty"`
}

// TurnView is the evaluation of one answer
type TurnView struct {
	Event         string   `json:"event"`
	Round         int      `json:"round"`
	Correct       bool     `json:"correct"`
	CorrectAnswer int      `json:"correct_answer"`
	Points        int      `json:"points"`
	Score         int      `json:"score"`
	Achievements  []string `json:"achievements,omitempty"`
	State         string   `json:"state"`
}

// ProfileView is a player's durable statistics
type ProfileView struct {
	Name       string    `json:"name"`
	TotalGames int       `json:"total_games"`
	TotalWins  int       `json:"total_wins"`
	BestScore  int       `json:"best_score"`
	WinRate    float64   `json:"win_rate"`
	LastPlayed time.Time `json:"last_played"`
}

// OutcomeView is the end-of-game summary
type OutcomeView struct {
	Event        string           `json:"event"`
	SessionID    string           `json:"session_id"`
	Player       string           `json:"player"`
	Won          bool             `json:"won"`
	FinalScore   int              `json:"final_score"`
	Duration     string           `json:"duration"`
	Achievements []string         `json:"achievements"`
	Rounds       stats.RoundStats `json:"round_stats"`
	Profile      ProfileView      `json:"profile"`
}

// HistoryView lists recent round histories, newest first
type HistoryView struct {
	Histories []model.RoundHistory `json:"histories"`
}

// StatsView is the --stats report
type StatsView struct {
	Overview stats.Overview `json:"overview"`
	Players  []ProfileView  `json:"players"`
	Leader   string         `json:"leader,omitempty"`
}

func newProfileView(p model.PlayerProfile) ProfileView {
	return ProfileView{
		Name:       p.Name,
		TotalGames: p.TotalGames,
		TotalWins:  p.TotalWins,
		BestScore:  p.BestScore,
		WinRate:    p.WinRate(),
		LastPlayed: p.LastPlayed,
	}
}

func newTurnView(turn session.Turn) TurnView {
	view := TurnView{
		Event: "turn",
		Score: turn.Score,
		State: string(turn.State),
	}
	if turn.Round != nil {
		view.Round = turn.Round.RoundNumber
		view.Correct = turn.Round.IsCorrect
		view.CorrectAnswer = turn.Round.CorrectAnswer
		view.Points = turn.Round.PointsEarned
	}
	for _, a := range turn.Unlocked {
		view.Achievements = append(view.Achievements, string(a.Label))
	}
	return view
}

func newOutcomeView(outcome *session.Outcome, rounds stats.RoundStats) OutcomeView {
	s := outcome.Session
	achievements := make([]string, 0, len(s.Achievements))
	for _, a := range s.Achievements {
		achievements = append(achievements, string(a.Label))
	}
	return OutcomeView{
		Event:        "outcome",
		SessionID:    string(s.ID),
		Player:       s.PlayerName,
		Won:          s.Won,
		FinalScore:   s.FinalScore,
		Duration:     s.Duration().Round(time.Second).String(),
		Achievements: achievements,
		Rounds:       rounds,
		Profile:      newProfileView(outcome.Profile),
	}
}

func (o *Output) printWelcome(w WelcomeView) {
	rule := strings.Repeat("=", 40)
	fmt.Fprintln(o.out, "Welcome to BrainPlay: Win or Lose!")
	fmt.Fprintln(o.out, rule)
	fmt.Fprintf(o.out, "Player: %s\n", w.Player)
	fmt.Fprintf(o.out, "Session ID: %s\n", shortID(w.SessionID))
	fmt.Fprintf(o.out, "Mode: %s\n", strings.ToUpper(w.Mode))
	fmt.Fprintf(o.out, "Your Stats: %d games, %d wins\n", w.TotalGames, w.TotalWins)
	fmt.Fprintln(o.out, rule)
	fmt.Fprintln(o.out, "Rules:")
	fmt.Fprintf(o.out, "  +%d points for correct answers\n", model.PointsCorrect)
	fmt.Fprintf(o.out, "  %d points for wrong answers\n", model.PointsWrong)
	fmt.Fprintf(o.out, "  Reach %d points to WIN!\n", model.WinningScore)
	fmt.Fprintln(o.out, "  Type 'quit' anytime to exit")
	fmt.Fprintln(o.out, rule)
}

func (o *Output) printQuestion(q QuestionView) {
	fmt.Fprintf(o.out, "\nRound %d: %s\n", q.Round, q.Text)
	if q.Hint != "" {
		fmt.Fprintf(o.out, "Hint: %s\n", q.Hint)
	}
}

func (o *Output) printTurn(t TurnView) {
	if t.Round == 0 {
		return
	}
	if t.Correct {
		fmt.Fprintln(o.out, "Correct!")
	} else {
		fmt.Fprintf(o.out, "Wrong! Answer was %d\n", t.CorrectAnswer)
	}
	fmt.Fprintf(o.out, "Points: %+d | Total Score: %d\n", t.Points, t.Score)
	for _, a := range t.Achievements {
		fmt.Fprintf(o.out, "Achievement unlocked: %s\n", a)
	}
}

func (o *Output) printOutcome(v OutcomeView) {
	if v.Won {
		fmt.Fprintf(o.out, "\nWINNER! Final Score: %d\n", v.FinalScore)
	} else {
		fmt.Fprintf(o.out, "\nGame over. Final Score: %d\n", v.FinalScore)
	}
	if len(v.Achievements) > 0 {
		fmt.Fprintf(o.out, "Achievements: %s\n", strings.Join(v.Achievements, ", "))
	}

	if v.Rounds.Rounds > 0 {
		fmt.Fprintln(o.out, "\nGame Statistics:")
		fmt.Fprintf(o.out, "Total Rounds: %d\n", v.Rounds.Rounds)
		fmt.Fprintf(o.out, "Correct Answers: %d\n", v.Rounds.Correct)
		fmt.Fprintf(o.out, "Wrong Answers: %d\n", v.Rounds.Wrong)
		fmt.Fprintf(o.out, "Accuracy: %.1f%%\n", v.Rounds.Accuracy)
		fmt.Fprintf(o.out, "Total Points Earned: %d\n", v.Rounds.TotalPoints)
		fmt.Fprintf(o.out, "Question Types: %s\n", typeCounts(v.Rounds.ByType))
	}

	fmt.Fprintln(o.out, "\nPlayer Profile:")
	o.printProfile(v.Profile)
}

func (o *Output) printProfile(p ProfileView) {
	fmt.Fprintf(o.out, "Name: %s\n", p.Name)
	fmt.Fprintf(o.out, "Total Games: %d\n", p.TotalGames)
	fmt.Fprintf(o.out, "Total Wins: %d\n", p.TotalWins)
	fmt.Fprintf(o.out, "Best Score: %d\n", p.BestScore)
	fmt.Fprintf(o.out, "Win Rate: %.1f%%\n", p.WinRate)
}

func (o *Output) printHistory(h HistoryView) {
	if len(h.Histories) == 0 {
		fmt.Fprintln(o.out, "No game history found.")
		return
	}

	fmt.Fprintf(o.out, "Recent Games (%d):\n", len(h.Histories))
	for i, rec := range h.Histories {
		correct := 0
		for _, r := range rec.Rounds {
			if r.IsCorrect {
				correct++
			}
		}
		fmt.Fprintf(o.out, "%2d. %s [%s] score %d, %d/%d correct (session %s)\n",
			i+1, rec.PlayerName, rec.Mode, rec.FinalScore, correct, len(rec.Rounds), shortID(string(rec.SessionID)))
	}
}

func (o *Output) printStats(v StatsView) {
	fmt.Fprintln(o.out, "Overall Statistics:")
	fmt.Fprintf(o.out, "Total Sessions: %d\n", v.Overview.TotalSessions)
	fmt.Fprintf(o.out, "Won Sessions: %d\n", v.Overview.WonSessions)
	fmt.Fprintf(o.out, "Win Rate: %.1f%%\n", v.Overview.WinRate)
	fmt.Fprintf(o.out, "Average Score: %.1f\n", v.Overview.AverageScore)
	fmt.Fprintf(o.out, "Total Players: %d\n", v.Overview.TotalPlayers)

	if len(v.Players) == 0 {
		fmt.Fprintln(o.out, "\nNo players found.")
		return
	}

	fmt.Fprintln(o.out, "\nPlayers:")
	for _, p := range v.Players {
		marker := ""
		if p.Name == v.Leader {
			marker = " [leader]"
		}
		fmt.Fprintf(o.out, "  %s%s: %d games, %d wins (%.1f%%), best %d\n",
			p.Name, marker, p.TotalGames, p.TotalWins, p.WinRate, p.BestScore)
	}
}

// typeCounts renders a question-type distribution in a stable order
func typeCounts(byType map[model.QuestionType]int) string {
	keys := make([]string, 0, len(byType))
	for t := range byType {
		keys = append(keys, string(t))
	}
	sort.Strings(keys)

	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, fmt.Sprintf("%s=%d", k, byType[model.QuestionType(k)]))
	}
	return strings.Join(parts, ", ")
}

func shortID(id string) string {
	if len(id) <= 8 {
		return id
	}
	return id[:8] + "..."
}
