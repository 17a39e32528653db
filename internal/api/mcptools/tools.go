// Package mcptools exposes the dashboard views as MCP tools over streamable
// HTTP, so assistants can query the same season table as the web page.
package mcptools

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/jyoun110/FantasyComp/internal/config"
	"github.com/jyoun110/FantasyComp/internal/dashboard"
	"github.com/jyoun110/FantasyComp/internal/league"
	"github.com/jyoun110/FantasyComp/internal/provider"
)

// Version is reported in the MCP implementation info.
const Version = "1.0.0"

type WeekArgs struct {
	Week     int      `json:"week,omitempty" jsonschema:"Week number (0 = current week)"`
	Managers []string `json:"managers,omitempty" jsonschema:"Managers to include (empty = all)"`
}

type NoArgs struct{}

type tools struct {
	src       *dashboard.Source
	cats      league.Categories
	anomalous league.WeekSet
	logger    *slog.Logger
}

// NewServer registers the dashboard tools on a new MCP server.
func NewServer(src *dashboard.Source, cfg *config.Config, logger *slog.Logger) *mcp.Server {
	if logger == nil {
		logger = slog.Default()
	}
	t := &tools{src: src, cats: cfg.Categories, anomalous: cfg.AnomalousWeekSet(), logger: logger}
	server := mcp.NewServer(&mcp.Implementation{Name: "fantasycomp", Version: Version}, nil)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "available_weeks",
		Description: "List the weeks with at least one completed game, the current week, and the league managers.",
	}, func(ctx context.Context, req *mcp.CallToolRequest, args NoArgs) (*mcp.CallToolResult, any, error) {
		return t.run(ctx, "available_weeks", func(records []provider.Record) (any, error) {
			return dashboard.BuildWeeks(records), nil
		})
	})

	mcp.AddTool(server, &mcp.Tool{
		Name:        "week_comparison",
		Description: "Compare managers' category totals for one week, with the leader of each category.",
	}, func(ctx context.Context, req *mcp.CallToolRequest, args WeekArgs) (*mcp.CallToolResult, any, error) {
		return t.run(ctx, "week_comparison", func(records []provider.Record) (any, error) {
			return dashboard.BuildWeek(records, args.Week, args.Managers, t.cats)
		})
	})

	mcp.AddTool(server, &mcp.Tool{
		Name:        "week_ranks",
		Description: "Dense rank of every team per category for one week (1 = best, turnovers ranked ascending).",
	}, func(ctx context.Context, req *mcp.CallToolRequest, args WeekArgs) (*mcp.CallToolResult, any, error) {
		return t.run(ctx, "week_ranks", func(records []provider.Record) (any, error) {
			return dashboard.BuildRanks(records, args.Week, args.Managers, t.cats)
		})
	})

	mcp.AddTool(server, &mcp.Tool{
		Name:        "season_averages",
		Description: "Per-manager category averages over the weeks each manager completed at least one game.",
	}, func(ctx context.Context, req *mcp.CallToolRequest, args NoArgs) (*mcp.CallToolResult, any, error) {
		return t.run(ctx, "season_averages", func(records []provider.Record) (any, error) {
			return dashboard.BuildAverages(records, t.cats), nil
		})
	})

	mcp.AddTool(server, &mcp.Tool{
		Name:        "season_highs_lows",
		Description: "Season high and low per category with manager and week, excluding the current and anomalous weeks.",
	}, func(ctx context.Context, req *mcp.CallToolRequest, args NoArgs) (*mcp.CallToolResult, any, error) {
		return t.run(ctx, "season_highs_lows", func(records []provider.Record) (any, error) {
			return dashboard.BuildHighsLows(records, t.cats, t.anomalous), nil
		})
	})

	return server
}

// Handler serves server over streamable HTTP with JSON responses.
func Handler(server *mcp.Server) http.Handler {
	return mcp.NewStreamableHTTPHandler(func(r *http.Request) *mcp.Server {
		return server
	}, &mcp.StreamableHTTPOptions{JSONResponse: true})
}

func (t *tools) run(ctx context.Context, name string, build func([]provider.Record) (any, error)) (*mcp.CallToolResult, any, error) {
	snap, err := t.src.Table(ctx)
	if err != nil {
		return toolError(fmt.Errorf("season table unavailable: %w", err)), nil, nil
	}
	v, err := build(snap.Records)
	if err != nil {
		t.logger.Debug("Tool failed", "tool", name, "error", err)
		return toolError(err), nil, nil
	}
	return toolJSON(json.Marshal(v))
}

func toolJSON(res []byte, err error) (*mcp.CallToolResult, any, error) {
	if err != nil {
		return toolError(err), nil, nil
	}
	return toolJSONBytes(res), nil, nil
}

func toolJSONBytes(res []byte) *mcp.CallToolResult {
	return &mcp.CallToolResult{
		Content: []mcp.Content{
			&mcp.TextContent{Text: string(res)},
		},
	}
}

func toolError(err error) *mcp.CallToolResult {
	return &mcp.CallToolResult{
		IsError: true,
		Content: []mcp.Content{
			&mcp.TextContent{Text: fmt.Sprintf("error: %v", err)},
		},
	}
}
