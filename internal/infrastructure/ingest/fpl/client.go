package fpl

import (
	"context"
	"fmt"
	"io"
	"math"
	"net/http"
	"strings"
	"time"

	sonic "github.com/bytedance/sonic"
	crerr "github.com/cockroachdb/errors"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	"github.com/matchpulse/matchpulse/internal/domain/player"
	"github.com/matchpulse/matchpulse/internal/platform/logging"
	"github.com/matchpulse/matchpulse/internal/reconcile"
)

var positionByElementType = map[int]string{
	1: player.PositionGoalkeeper,
	2: player.PositionDefender,
	3: player.PositionMidfielder,
	4: player.PositionForward,
}

const positionUnknown = "UNK"

type ClientConfig struct {
	HTTPClient  *http.Client
	LiveAPIBase string
	ArchiveBase string
	Timeout     time.Duration
	Logger      *logging.Logger
}

// Client fetches fantasy player statistics, either from the live API or
// from the published season archive for completed seasons.
type Client struct {
	http        *http.Client
	liveAPIBase string
	archiveBase string
	logger      *logging.Logger
}

func NewClient(cfg ClientConfig) *Client {
	logger := cfg.Logger
	if logger == nil {
		logger = logging.Default()
	}

	httpClient := cfg.HTTPClient
	if httpClient == nil {
		timeout := cfg.Timeout
		if timeout <= 0 {
			timeout = 30 * time.Second
		}
		httpClient = &http.Client{
			Timeout:   timeout,
			Transport: otelhttp.NewTransport(http.DefaultTransport),
		}
	}

	return &Client{
		http:        httpClient,
		liveAPIBase: strings.TrimRight(cfg.LiveAPIBase, "/"),
		archiveBase: strings.TrimRight(cfg.ArchiveBase, "/"),
		logger:      logger,
	}
}

type bootstrapPayload struct {
	Elements []struct {
		WebName     string  `json:"web_name"`
		FirstName   string  `json:"first_name"`
		SecondName  string  `json:"second_name"`
		Team        int     `json:"team"`
		ElementType int     `json:"element_type"`
		GoalsScored int     `json:"goals_scored"`
		Assists     int     `json:"assists"`
		CleanSheets int     `json:"clean_sheets"`
		Minutes     int     `json:"minutes"`
		YellowCards int     `json:"yellow_cards"`
		RedCards    int     `json:"red_cards"`
		TotalPoints int     `json:"total_points"`
		NowCost     float64 `json:"now_cost"`
		Bonus       int     `json:"bonus"`
	} `json:"elements"`
	Teams []struct {
		ID   int    `json:"id"`
		Name string `json:"name"`
	} `json:"teams"`
}

// FetchLive pulls the current season's player data from bootstrap-static.
func (c *Client) FetchLive(ctx context.Context, teams *reconcile.TeamMapper) ([]player.Record, error) {
	raw, err := c.get(ctx, c.liveAPIBase+"/bootstrap-static/")
	if err != nil {
		return nil, fmt.Errorf("fetch bootstrap-static: %w", err)
	}

	var payload bootstrapPayload
	if err := sonic.Unmarshal(raw, &payload); err != nil {
		return nil, crerr.Wrap(err, "decode bootstrap-static payload")
	}

	teamNames := make(map[int]string, len(payload.Teams))
	for _, t := range payload.Teams {
		teamNames[t.ID] = t.Name
	}

	out := make([]player.Record, 0, len(payload.Elements))
	for _, e := range payload.Elements {
		name := e.WebName
		if name == "" {
			name = e.SecondName
		}
		out = append(out, player.Record{
			Name:        name,
			FullName:    strings.TrimSpace(e.FirstName + " " + e.SecondName),
			Team:        teams.Canonical(teamNames[e.Team]),
			Position:    positionFor(e.ElementType),
			Goals:       e.GoalsScored,
			Assists:     e.Assists,
			CleanSheets: e.CleanSheets,
			Minutes:     e.Minutes,
			YellowCards: e.YellowCards,
			RedCards:    e.RedCards,
			TotalPoints: e.TotalPoints,
			Price:       roundPrice(e.NowCost / 10),
			BonusPoints: e.Bonus,
		})
	}
	return out, nil
}

// FetchHistorical pulls a completed season's player data from the archive:
// cleaned_players.csv joined against teams.csv for team names.
func (c *Client) FetchHistorical(ctx context.Context, seasonLabel string, teams *reconcile.TeamMapper) ([]player.Record, error) {
	base := fmt.Sprintf(c.archiveBase, seasonLabel)

	playersRaw, err := c.get(ctx, base+"/cleaned_players.csv")
	if err != nil {
		return nil, fmt.Errorf("fetch cleaned_players.csv: %w", err)
	}
	teamsRaw, err := c.get(ctx, base+"/teams.csv")
	if err != nil {
		return nil, fmt.Errorf("fetch teams.csv: %w", err)
	}

	return parseArchive(playersRaw, teamsRaw, teams)
}

func (c *Client) get(ctx context.Context, url string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, crerr.Wrapf(err, "send request %s", url)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, 32<<20))
	if err != nil {
		return nil, crerr.Wrap(err, "read response body")
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("fantasy source status=%d url=%s", resp.StatusCode, url)
	}
	return raw, nil
}

func positionFor(elementType int) string {
	if pos, ok := positionByElementType[elementType]; ok {
		return pos
	}
	return positionUnknown
}

// normalizePrice handles archive files that store prices either in
// millions or in the API's tenths encoding.
func normalizePrice(raw float64) float64 {
	if raw > 100 {
		raw /= 10
	}
	return roundPrice(raw)
}

func roundPrice(v float64) float64 {
	return math.Round(v*10) / 10
}
