package calctools

import (
	"context"
	"log/slog"
	"time"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/dmitrymomot/calcdesk/pkg/keypad"
	"github.com/dmitrymomot/calcdesk/pkg/logger"
	"github.com/dmitrymomot/calcdesk/pkg/requestid"
)

// Tool names
const (
	ToolPress   = "calculator_press"
	ToolDisplay = "calculator_display"
	ToolClear   = "calculator_clear"
)

// NewServer creates an MCP server with the calculator tools registered.
func NewServer(name, version string, d *Desk) *server.MCPServer {
	s := server.NewMCPServer(name, version)
	Register(s, d)
	return s
}

// Register adds the calculator tools to s.
func Register(s *server.MCPServer, d *Desk) {
	press := NewPressTool(d)
	s.AddTool(press.GetTool(), press.Handle)

	show := NewDisplayTool(d)
	s.AddTool(show.GetTool(), show.Handle)

	reset := NewClearTool(d)
	s.AddTool(reset.GetTool(), reset.Handle)
}

// PressTool presses a sequence of keys.
type PressTool struct {
	desk *Desk
}

func NewPressTool(d *Desk) *PressTool {
	return &PressTool{desk: d}
}

// GetTool returns the MCP tool definition
func (t *PressTool) GetTool() mcp.Tool {
	return mcp.NewTool(ToolPress,
		mcp.WithDescription("Press calculator keys in order and return the display"),
		mcp.WithString("keys",
			mcp.Required(),
			mcp.Description(`Space-separated keys: 0-9 . + - * / % Enter = Escape Backspace, e.g. "1 2 + 3 Enter"`),
		),
	)
}

// Handle processes the tool request
func (t *PressTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	ctx, done := begin(ctx, t.desk.log, ToolPress)
	keys := mcp.ParseString(req, "keys", "")
	f, v, err := t.desk.press(ctx, keys)
	done(err)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return mcp.NewToolResultText(formatFrame(f, v)), nil
}

// DisplayTool reads the display.
type DisplayTool struct {
	desk *Desk
}

func NewDisplayTool(d *Desk) *DisplayTool {
	return &DisplayTool{desk: d}
}

// GetTool returns the MCP tool definition
func (t *DisplayTool) GetTool() mcp.Tool {
	return mcp.NewTool(ToolDisplay,
		mcp.WithDescription("Return the calculator display without pressing anything"),
	)
}

// Handle processes the tool request
func (t *DisplayTool) Handle(ctx context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	_, done := begin(ctx, t.desk.log, ToolDisplay)
	f, v := t.desk.snapshot()
	done(nil)
	return mcp.NewToolResultText(formatFrame(f, v)), nil
}

// ClearTool resets the calculator.
type ClearTool struct {
	desk *Desk
}

func NewClearTool(d *Desk) *ClearTool {
	return &ClearTool{desk: d}
}

// GetTool returns the MCP tool definition
func (t *ClearTool) GetTool() mcp.Tool {
	return mcp.NewTool(ToolClear,
		mcp.WithDescription("Clear the calculator, like pressing Escape"),
	)
}

// Handle processes the tool request
func (t *ClearTool) Handle(ctx context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	ctx, done := begin(ctx, t.desk.log, ToolClear)
	f, v, err := t.desk.press(ctx, string(keypad.Clear))
	done(err)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return mcp.NewToolResultText(formatFrame(f, v)), nil
}

// begin tags ctx with a fresh request ID and returns a func logging the
// outcome of the call.
func begin(ctx context.Context, log *slog.Logger, tool string) (context.Context, func(error)) {
	ctx = requestid.WithContext(ctx, requestid.New())
	start := time.Now()
	return ctx, func(err error) {
		level := slog.LevelInfo
		if err != nil {
			level = slog.LevelWarn
		}
		log.Log(ctx, level, "tool call",
			logger.Component("calctools"),
			logger.Tool(tool),
			logger.Duration(time.Since(start)),
			logger.Error(err),
		)
	}
}
