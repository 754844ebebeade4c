// Package mcptools exposes household reminders to assistants as MCP tools.
package mcptools

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
	"gorm.io/gorm"

	"household-hub/internal/model"
	"household-hub/internal/reminder"
	"household-hub/internal/repository"
	"household-hub/internal/service"
)

const (
	serverName    = "household-hub"
	serverVersion = "1.0.0"
)

// Server is the MCP server for household reminders.
type Server struct {
	mcpServer *server.MCPServer
	reminders *service.ReminderService
}

func NewServer(reminders *service.ReminderService) *Server {
	s := &Server{reminders: reminders}
	s.mcpServer = server.NewMCPServer(
		serverName,
		serverVersion,
		server.WithToolCapabilities(false),
	)
	s.registerTools()
	return s
}

// MCPServer returns the underlying MCP server for serving.
func (s *Server) MCPServer() *server.MCPServer {
	return s.mcpServer
}

// ServeStdio blocks serving tools over stdin/stdout.
func (s *Server) ServeStdio() error {
	return server.ServeStdio(s.mcpServer)
}

func (s *Server) registerTools() {
	s.mcpServer.AddTool(
		mcp.NewTool("list_reminders",
			mcp.WithDescription("List household reminders with their status and days until due"),
			mcp.WithString("status", mcp.Description("overdue, due_today, upcoming, completed or dismissed; empty lists every active reminder")),
			mcp.WithString("domain", mcp.Description("plants, finance, cooking, reading, coding, household or custom")),
		),
		s.handleList,
	)

	s.mcpServer.AddTool(
		mcp.NewTool("reminder_summary",
			mcp.WithDescription("Count active reminders: total, overdue, due today, due within the window, per domain"),
			mcp.WithNumber("window_days", mcp.Description("Width of the upcoming window in days (default 7)")),
		),
		s.handleSummary,
	)

	s.mcpServer.AddTool(
		mcp.NewTool("add_reminder",
			mcp.WithDescription("Add a reminder"),
			mcp.WithString("title", mcp.Required(), mcp.Description("Reminder title")),
			mcp.WithString("reminder_date", mcp.Required(), mcp.Description("Date as YYYY-MM-DD or an ISO-8601 date-time")),
			mcp.WithString("domain", mcp.Description("Hub domain (default custom)")),
			mcp.WithString("description", mcp.Description("Optional description")),
			mcp.WithString("priority", mcp.Description("LOW, MEDIUM, HIGH or URGENT (default MEDIUM)")),
			mcp.WithString("recurrence", mcp.Description("none, weekly, monthly or yearly")),
		),
		s.handleAdd,
	)

	s.mcpServer.AddTool(
		mcp.NewTool("complete_reminder",
			mcp.WithDescription("Mark a reminder as completed; recurring reminders get their next occurrence"),
			mcp.WithString("id", mcp.Required(), mcp.Description("Reminder ID")),
		),
		s.handleComplete,
	)

	s.mcpServer.AddTool(
		mcp.NewTool("dismiss_reminder",
			mcp.WithDescription("Dismiss a reminder without completing it"),
			mcp.WithString("id", mcp.Required(), mcp.Description("Reminder ID")),
		),
		s.handleDismiss,
	)

	s.mcpServer.AddTool(
		mcp.NewTool("sync_reminders",
			mcp.WithDescription("Generate reminders from vehicle, subscription, insurance and document expiry dates"),
		),
		s.handleSync,
	)
}

func (s *Server) handleList(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	filter := service.ListFilter{
		Status: reminder.Status(req.GetString("status", "")),
		Domain: model.Domain(req.GetString("domain", "")),
	}
	views, _, err := s.reminders.List(ctx, filter)
	if err != nil {
		return toolError("list reminders", err), nil
	}
	if len(views) == 0 {
		return mcp.NewToolResultText("No reminders found."), nil
	}
	return jsonResult(views), nil
}

func (s *Server) handleSummary(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	window := int(req.GetFloat("window_days", 0))
	summary, invalid, err := s.reminders.Summary(ctx, window)
	if err != nil {
		return toolError("summarize reminders", err), nil
	}
	out := struct {
		reminder.Summary
		InvalidDates int `json:"invalid_dates,omitempty"`
	}{summary, len(invalid)}
	return jsonResult(out), nil
}

func (s *Server) handleAdd(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	created, err := s.reminders.Create(ctx, service.ReminderInput{
		Title:        req.GetString("title", ""),
		Description:  req.GetString("description", ""),
		Domain:       model.Domain(req.GetString("domain", "")),
		ReminderDate: req.GetString("reminder_date", ""),
		Priority:     model.Priority(req.GetString("priority", "")),
		Recurrence:   model.Recurrence(req.GetString("recurrence", "")),
	})
	if err != nil {
		return toolError("add reminder", err), nil
	}
	return jsonResult(created), nil
}

func (s *Server) handleComplete(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	id := req.GetString("id", "")
	if id == "" {
		return mcp.NewToolResultError("id is required"), nil
	}
	done, next, err := s.reminders.Complete(ctx, id)
	if err != nil {
		return toolError("complete reminder", err), nil
	}
	text := fmt.Sprintf("Reminder %q marked as completed.", done.Title)
	if next != nil {
		text += fmt.Sprintf(" Next occurrence %s on %s.", next.ID, next.ReminderDate)
	}
	return mcp.NewToolResultText(text), nil
}

func (s *Server) handleDismiss(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	id := req.GetString("id", "")
	if id == "" {
		return mcp.NewToolResultError("id is required"), nil
	}
	r, err := s.reminders.Dismiss(ctx, id)
	if err != nil {
		return toolError("dismiss reminder", err), nil
	}
	return mcp.NewToolResultText(fmt.Sprintf("Reminder %q dismissed.", r.Title)), nil
}

func (s *Server) handleSync(ctx context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	res, err := s.reminders.Sync(ctx)
	if err != nil {
		return toolError("sync reminders", err), nil
	}
	return jsonResult(res), nil
}

func toolError(op string, err error) *mcp.CallToolResult {
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		return mcp.NewToolResultError(op + ": reminder not found")
	case errors.Is(err, repository.ErrAlreadyResolved):
		return mcp.NewToolResultError(op + ": reminder is already completed or dismissed")
	}
	return mcp.NewToolResultError(fmt.Sprintf("failed to %s: %v", op, err))
}

func jsonResult(v interface{}) *mcp.CallToolResult {
	output, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("encode result: %v", err))
	}
	return mcp.NewToolResultText(string(output))
}
