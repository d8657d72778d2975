package cli

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/google/uuid"
	"gopkg.in/yaml.v3"

	types "github.com/yungbote/ideascore-backend/internal/domain"
	"github.com/yungbote/ideascore-backend/internal/services"
)

func sampleRanking() []*services.RankedIdea {
	return []*services.RankedIdea{
		{Rank: 1, Idea: &types.Idea{ID: uuid.New(), Title: "Solar kiosks"}, FinalScore: 8.5, TotalWeight: 15, ScoresCount: 2},
		{Rank: 2, Idea: &types.Idea{ID: uuid.New(), Title: "Bike courier"}, FinalScore: 3, TotalWeight: 7, ScoresCount: 1},
		nil,
	}
}

func TestWriteRankingJSON(t *testing.T) {
	var buf bytes.Buffer
	if err := writeRanking(&buf, "json", sampleRanking()); err != nil {
		t.Fatalf("writeRanking: %v", err)
	}
	var rows []rankRow
	if err := json.Unmarshal(buf.Bytes(), &rows); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(rows) != 2 || rows[0].Title != "Solar kiosks" || rows[1].FinalScore != 3 {
		t.Fatalf("rows: %+v", rows)
	}
}

func TestWriteRankingYAML(t *testing.T) {
	var buf bytes.Buffer
	if err := writeRanking(&buf, "yaml", sampleRanking()); err != nil {
		t.Fatalf("writeRanking: %v", err)
	}
	var rows []rankRow
	if err := yaml.Unmarshal(buf.Bytes(), &rows); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(rows) != 2 || rows[0].Rank != 1 || rows[0].TotalWeight != 15 {
		t.Fatalf("rows: %+v", rows)
	}
}

func TestWriteRankingConsole(t *testing.T) {
	var buf bytes.Buffer
	if err := writeRanking(&buf, "console", sampleRanking()); err != nil {
		t.Fatalf("writeRanking: %v", err)
	}
	out := buf.String()
	for _, want := range []string{"RANK", "Solar kiosks", "Bike courier", "2 idea(s)"} {
		if !strings.Contains(out, want) {
			t.Fatalf("console output missing %q:\n%s", want, out)
		}
	}

	buf.Reset()
	_ = writeRanking(&buf, "console", nil)
	if !strings.Contains(buf.String(), "No ideas to rank.") {
		t.Fatalf("empty ranking output: %q", buf.String())
	}
}

func TestRootRegistersCommands(t *testing.T) {
	want := map[string]bool{"serve": false, "migrate": false, "seed-criteria": false, "rank": false}
	for _, c := range rootCmd.Commands() {
		if _, ok := want[c.Name()]; ok {
			want[c.Name()] = true
		}
	}
	for name, found := range want {
		if !found {
			t.Fatalf("command %q not registered", name)
		}
	}
}
