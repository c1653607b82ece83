package config

import (
	"io"
	"log/slog"
)

// NewLogger returns a JSON logger writing to w at the configured level.
// The MCP server passes stderr: stdout carries the protocol.
func (c *Config) NewLogger(w io.Writer) *slog.Logger {
	return slog.New(slog.NewJSONHandler(w, &slog.HandlerOptions{Level: c.LogLevel}))
}
