package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/yungbote/ideascore-backend/internal/app"
	"github.com/yungbote/ideascore-backend/internal/platform/ctxutil"
	"github.com/yungbote/ideascore-backend/internal/platform/dbctx"
	"github.com/yungbote/ideascore-backend/internal/services"
)

var (
	rankUser   string
	rankLimit  int
	rankFormat string
)

var rankCmd = &cobra.Command{
	Use:   "rank",
	Short: "Rank a user's ideas by final score",
	Long: `Computes every idea's weighted score for the user and prints the top
--limit ideas, highest first. Ties keep idea creation order.

Formats: console (default), json, yaml.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		userID, err := uuid.Parse(rankUser)
		if err != nil {
			return fmt.Errorf("invalid --user: %w", err)
		}
		format := strings.ToLower(strings.TrimSpace(rankFormat))
		if format != "console" && format != "json" && format != "yaml" {
			return fmt.Errorf("invalid format: %s. Must be 'console', 'json', or 'yaml'", rankFormat)
		}
		a, err := loadApp(cmd.Context(), app.Options{})
		if err != nil {
			return err
		}
		defer a.Close()

		ctx := ctxutil.WithPrincipal(cmd.Context(), userID)
		ranked, err := a.Services.Scoring.RankIdeasByUser(dbctx.Context{Ctx: ctx}, userID, rankLimit)
		if err != nil {
			return err
		}
		return writeRanking(cmd.OutOrStdout(), format, ranked)
	},
}

func init() {
	rankCmd.Flags().StringVar(&rankUser, "user", "", "User id whose ideas are ranked (required)")
	rankCmd.Flags().IntVarP(&rankLimit, "limit", "n", 0, "Number of ideas to print (default ranking.default_limit)")
	rankCmd.Flags().StringVarP(&rankFormat, "format", "f", "console", "Output format (console|json|yaml)")
	_ = rankCmd.MarkFlagRequired("user")
	rootCmd.AddCommand(rankCmd)
}

type rankRow struct {
	Rank        int     `json:"rank" yaml:"rank"`
	IdeaID      string  `json:"idea_id" yaml:"idea_id"`
	Title       string  `json:"title" yaml:"title"`
	FinalScore  float64 `json:"final_score" yaml:"final_score"`
	TotalWeight int     `json:"total_weight" yaml:"total_weight"`
	ScoresCount int     `json:"scores_count" yaml:"scores_count"`
}

func toRankRows(ranked []*services.RankedIdea) []rankRow {
	rows := make([]rankRow, 0, len(ranked))
	for _, r := range ranked {
		if r == nil || r.Idea == nil {
			continue
		}
		rows = append(rows, rankRow{
			Rank:        r.Rank,
			IdeaID:      r.Idea.ID.String(),
			Title:       r.Idea.Title,
			FinalScore:  r.FinalScore,
			TotalWeight: r.TotalWeight,
			ScoresCount: r.ScoresCount,
		})
	}
	return rows
}

func writeRanking(w io.Writer, format string, ranked []*services.RankedIdea) error {
	rows := toRankRows(ranked)
	switch format {
	case "json":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(rows)
	case "yaml":
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(rows); err != nil {
			return err
		}
		return enc.Close()
	default:
		printRankingTable(w, rows)
		return nil
	}
}

type rankStyles struct {
	header lipgloss.Style
	high   lipgloss.Style
	mid    lipgloss.Style
	low    lipgloss.Style
	dim    lipgloss.Style
}

func newRankStyles() rankStyles {
	return rankStyles{
		header: lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("12")),
		high:   lipgloss.NewStyle().Foreground(lipgloss.Color("10")),
		mid:    lipgloss.NewStyle().Foreground(lipgloss.Color("3")),
		low:    lipgloss.NewStyle().Foreground(lipgloss.Color("9")),
		dim:    lipgloss.NewStyle().Foreground(lipgloss.Color("8")),
	}
}

func (s rankStyles) score(v float64) lipgloss.Style {
	switch {
	case v >= 7:
		return s.high
	case v >= 4:
		return s.mid
	default:
		return s.low
	}
}

func printRankingTable(w io.Writer, rows []rankRow) {
	styles := newRankStyles()
	if len(rows) == 0 {
		fmt.Fprintln(w, styles.dim.Render("No ideas to rank."))
		return
	}
	fmt.Fprintln(w, styles.header.Render(fmt.Sprintf("%-5s %-8s %-6s %-7s %s", "RANK", "SCORE", "WEIGHT", "SCORES", "TITLE")))
	for _, r := range rows {
		score := styles.score(r.FinalScore).Render(fmt.Sprintf("%-8.2f", r.FinalScore))
		fmt.Fprintf(w, "%-5d %s %-6d %-7d %s\n", r.Rank, score, r.TotalWeight, r.ScoresCount, r.Title)
	}
	fmt.Fprintln(w, styles.dim.Render(fmt.Sprintf("%d idea(s)", len(rows))))
}
