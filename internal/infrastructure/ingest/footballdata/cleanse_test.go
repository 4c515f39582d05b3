package footballdata

import (
	"testing"

	"github.com/matchpulse/matchpulse/internal/domain/match"
	"github.com/matchpulse/matchpulse/internal/reconcile"
)

const rawSeasonCSV = "\xef\xbb\xbfDiv,Date,Time,HomeTeam,AwayTeam,FTHG,FTAG,FTR,HTHG,HTAG,HTR,Referee,HS,AS,HST,AST,HF,AF,HC,AC,HY,AY,HR,AR,B365H,B365D,B365A\n" +
	"E0,16/08/2025,15:00,Man United,Wolves,2,1,H,1,1,D,M Oliver ,14,9,6,3,10,12,7,4,2,3,0,0,1.80,3.60,4.50\n" +
	"E0,17/08/25,14:00,Tottenham,Arsenal,0,2,A,0,1,A,,8,11,2,5,,,,,1,1,0,1,2.90,3.30,2.50\n" +
	"E0,bad-date,15:00,Everton,Fulham,1,1,D,0,0,D,S Hooper,9,9,3,3,11,11,5,5,1,1,0,0,2.50,3.20,2.90\n" +
	"E0,18/08/2025,20:00,Chelsea,Brighton,,1,A,0,0,D,A Taylor,12,7,4,2,9,8,6,3,2,1,0,0,1.95,3.50,3.90\n"

func TestCleanseSeason(t *testing.T) {
	teams := reconcile.NewTeamMapper(map[string]string{
		"Man United": "Manchester United",
		"Wolves":     "Wolverhampton",
		"Tottenham":  "Tottenham Hotspur",
	})

	records, err := CleanseSeason([]byte(rawSeasonCSV), "2025-26", teams)
	if err != nil {
		t.Fatalf("cleanse: %v", err)
	}

	// The bad-date and null-goal rows must be dropped.
	if len(records) != 2 {
		t.Fatalf("expected 2 records, got %d", len(records))
	}

	first := records[0]
	if first.HomeTeam != "Manchester United" || first.AwayTeam != "Wolverhampton" {
		t.Fatalf("expected canonical team names, got %q vs %q", first.HomeTeam, first.AwayTeam)
	}
	if first.Date != "2025-08-16" {
		t.Fatalf("expected ISO date, got %q", first.Date)
	}
	if first.Referee != "M Oliver" {
		t.Fatalf("expected trimmed referee, got %q", first.Referee)
	}
	if first.Result != match.ResultHome {
		t.Fatalf("expected derived result H, got %q", first.Result)
	}
	if first.TotalGoals != 3 || first.TotalShots != 23 || first.TotalCards != 5 {
		t.Fatalf("unexpected derived totals: %+v", first)
	}

	second := records[1]
	if second.Date != "2025-08-17" {
		t.Fatalf("expected two-digit-year date to parse, got %q", second.Date)
	}
	if second.Referee != unknownReferee {
		t.Fatalf("expected empty referee to fill as %q, got %q", unknownReferee, second.Referee)
	}
	if second.HomeFouls != 0 || second.HomeCorners != 0 {
		t.Fatalf("expected null peripheral stats to fill with 0: %+v", second)
	}
}
