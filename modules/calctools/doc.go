// Package calctools exposes a calculator to MCP clients.
//
// A Desk owns one calculator and its display renderer; every tool call runs
// under the desk mutex, so calls from concurrent clients are applied one at
// a time. The tools are:
//
//	calculator_press    keys: space-separated key names, e.g. "1 2 + 3 Enter"
//	calculator_display  current display rows
//	calculator_clear    same as pressing Escape
//
// Each tool answers with the two display rows. A computation error such as
// division by zero is reported in the result text while the error is shown.
//
// Usage:
//
//	desk := calctools.NewDesk(calctools.WithLogger(log))
//	defer desk.Close()
//
//	s := calctools.NewServer("calcdesk", version, desk)
//	if err := server.ServeStdio(s); err != nil {
//	    log.Error("mcp server stopped", logger.Error(err))
//	}
package calctools
