package fpl

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"strconv"
	"strings"

	crerr "github.com/cockroachdb/errors"

	"github.com/matchpulse/matchpulse/internal/domain/player"
	"github.com/matchpulse/matchpulse/internal/reconcile"
)

// parseArchive joins the archive's cleaned_players.csv with teams.csv.
// The player file references teams by numeric id.
func parseArchive(playersRaw, teamsRaw []byte, teams *reconcile.TeamMapper) ([]player.Record, error) {
	teamNames, err := parseTeamLookup(teamsRaw)
	if err != nil {
		return nil, err
	}

	header, rows, err := readCSV(playersRaw)
	if err != nil {
		return nil, crerr.Wrap(err, "parse cleaned_players.csv")
	}

	out := make([]player.Record, 0, len(rows))
	for _, rec := range rows {
		cell := func(col string) string {
			i, ok := header[col]
			if !ok || i >= len(rec) {
				return ""
			}
			return strings.TrimSpace(rec[i])
		}

		teamName := teamNames[atoi(cell("team"))]
		if teamName == "" {
			teamName = cell("team")
		}

		name := cell("web_name")
		if name == "" {
			name = cell("second_name")
		}

		out = append(out, player.Record{
			Name:        name,
			FullName:    strings.TrimSpace(cell("first_name") + " " + cell("second_name")),
			Team:        teams.Canonical(teamName),
			Position:    archivePosition(cell("element_type")),
			Goals:       atoi(cell("goals_scored")),
			Assists:     atoi(cell("assists")),
			CleanSheets: atoi(cell("clean_sheets")),
			Minutes:     atoi(cell("minutes")),
			YellowCards: atoi(cell("yellow_cards")),
			RedCards:    atoi(cell("red_cards")),
			TotalPoints: atoi(cell("total_points")),
			Price:       normalizePrice(atof(cell("now_cost"))),
			BonusPoints: atoi(cell("bonus")),
		})
	}
	return out, nil
}

func parseTeamLookup(teamsRaw []byte) (map[int]string, error) {
	header, rows, err := readCSV(teamsRaw)
	if err != nil {
		return nil, crerr.Wrap(err, "parse teams.csv")
	}

	out := make(map[int]string, len(rows))
	for _, rec := range rows {
		idIdx, idOK := header["id"]
		nameIdx, nameOK := header["name"]
		if !idOK || !nameOK || idIdx >= len(rec) || nameIdx >= len(rec) {
			continue
		}
		out[atoi(rec[idIdx])] = strings.TrimSpace(rec[nameIdx])
	}
	return out, nil
}

// archivePosition accepts both the numeric element_type encoding and the
// position strings newer archive files use.
func archivePosition(v string) string {
	if pos, ok := positionByElementType[atoi(v)]; ok {
		return pos
	}
	switch strings.ToUpper(v) {
	case player.PositionGoalkeeper, player.PositionDefender, player.PositionMidfielder, player.PositionForward:
		return strings.ToUpper(v)
	}
	return positionUnknown
}

func readCSV(raw []byte) (map[string]int, [][]string, error) {
	reader := csv.NewReader(bytes.NewReader(raw))
	reader.FieldsPerRecord = -1
	records, err := reader.ReadAll()
	if err != nil {
		return nil, nil, err
	}
	if len(records) == 0 {
		return nil, nil, fmt.Errorf("empty csv payload")
	}

	header := make(map[string]int, len(records[0]))
	for i, name := range records[0] {
		header[strings.TrimSpace(name)] = i
	}
	return header, records[1:], nil
}

func atoi(v string) int {
	if v == "" {
		return 0
	}
	if f, err := strconv.ParseFloat(v, 64); err == nil {
		return int(f)
	}
	return 0
}

func atof(v string) float64 {
	if v == "" {
		return 0
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return 0
	}
	return f
}
