package alarm

import (
	"context"
	"errors"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	domain "github.com/oshokin/alarm-agenda/internal/domain/alarm"
	"github.com/oshokin/alarm-agenda/internal/logger"
)

// Tool and prompt names exposed to agent hosts.
const (
	ToolGetTimeNow      = "get_time_now"
	ToolSetAlarm        = "set_alarm"
	ToolGetAlarm        = "get_alarm"
	ToolGetAlarms       = "get_alarms"
	ToolDeleteAlarm     = "delete_alarm"
	PromptGenerateAlarm = "generate_alarm_prompt"
)

const (
	argDatetime    = "datetime_str"
	argDescription = "description"
	argAlarmInfo   = "alarm_info"

	timestampFormatHint  = "Use the format %Y-%m-%d %H:%M:%S."
	promptResultSynopsis = "Prompt for the alarm creation tool"
)

// Instructions is sent to hosts during initialisation.
const Instructions = `Alarm agenda. Timestamps use the format %Y-%m-%d %H:%M:%S in local time;
seconds are ignored, so there is at most one alarm per minute.
Call get_time_now before resolving relative dates such as "tomorrow".`

// Service abstracts the business operations the transport layer depends on.
type Service interface {
	Now(ctx context.Context) string
	SetAlarm(ctx context.Context, timestamp, description string) (*domain.Alarm, error)
	GetAlarm(ctx context.Context, timestamp string) (*domain.Alarm, error)
	ListAlarms(ctx context.Context) (domain.Agenda, error)
	DeleteAlarm(ctx context.Context, timestamp string) error
}

// Server exposes the alarm agenda as MCP tools and a prompt.
type Server struct {
	// service provides the business logic for alarm operations.
	service Service
}

// errorResponse is returned by get_alarm on a miss.
type errorResponse struct {
	Error string `json:"error"`
}

// alarmsResponse wraps the whole agenda for get_alarms.
type alarmsResponse struct {
	Alarms domain.Agenda `json:"alarms"`
}

// NewServer wires the provided service implementation into MCP handlers.
func NewServer(service Service) *Server {
	return &Server{
		service: service,
	}
}

// Register adds every tool and the prompt to the MCP server.
func (s *Server) Register(mcpServer *server.MCPServer) {
	mcpServer.AddTool(getTimeNowTool(), s.GetTimeNow)
	mcpServer.AddTool(setAlarmTool(), s.SetAlarm)
	mcpServer.AddTool(getAlarmTool(), s.GetAlarm)
	mcpServer.AddTool(getAlarmsTool(), s.GetAlarms)
	mcpServer.AddTool(deleteAlarmTool(), s.DeleteAlarm)
	mcpServer.AddPrompt(generateAlarmPrompt(), s.GenerateAlarmPrompt)
}

// GetTimeNow returns the current local time.
func (s *Server) GetTimeNow(ctx context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return mcp.NewToolResultText(s.service.Now(ctx)), nil
}

// SetAlarm stores an alarm and confirms the timestamp.
func (s *Server) SetAlarm(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	timestamp, err := request.RequireString(argDatetime)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	description, err := request.RequireString(argDescription)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	ctx = logger.WithKV(ctx, "tool", ToolSetAlarm)

	if _, err = s.service.SetAlarm(ctx, timestamp, description); err != nil {
		return toolError(ctx, err), nil
	}

	return mcp.NewToolResultText("Alarm set for " + timestamp), nil
}

// GetAlarm returns {datetime, description} on a hit and {error} on a miss.
func (s *Server) GetAlarm(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	timestamp, err := request.RequireString(argDatetime)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	ctx = logger.WithKV(ctx, "tool", ToolGetAlarm)

	alarm, err := s.service.GetAlarm(ctx, timestamp)
	if errors.Is(err, domain.ErrAlarmNotFound) {
		return jsonResult(ctx, errorResponse{Error: "No alarm set for " + timestamp}), nil
	}

	if err != nil {
		return toolError(ctx, err), nil
	}

	return jsonResult(ctx, alarm), nil
}

// GetAlarms returns the whole agenda under the "alarms" key.
func (s *Server) GetAlarms(ctx context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	ctx = logger.WithKV(ctx, "tool", ToolGetAlarms)

	agenda, err := s.service.ListAlarms(ctx)
	if err != nil {
		return toolError(ctx, err), nil
	}

	return jsonResult(ctx, alarmsResponse{Alarms: agenda}), nil
}

// DeleteAlarm removes an alarm. A miss is reported as plain text, not as a tool error.
func (s *Server) DeleteAlarm(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	timestamp, err := request.RequireString(argDatetime)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	ctx = logger.WithKV(ctx, "tool", ToolDeleteAlarm)

	err = s.service.DeleteAlarm(ctx, timestamp)
	if errors.Is(err, domain.ErrAlarmNotFound) {
		return mcp.NewToolResultText("No alarm found for " + timestamp), nil
	}

	if err != nil {
		return toolError(ctx, err), nil
	}

	return mcp.NewToolResultText("Alarm deleted for " + timestamp), nil
}

// GenerateAlarmPrompt renders the alarm extraction prompt for the given instruction.
func (s *Server) GenerateAlarmPrompt(_ context.Context, request mcp.GetPromptRequest) (*mcp.GetPromptResult, error) {
	alarmInfo := request.Params.Arguments[argAlarmInfo]

	return mcp.NewGetPromptResult(
		promptResultSynopsis,
		[]mcp.PromptMessage{
			mcp.NewPromptMessage(mcp.RoleUser, mcp.NewTextContent(domain.GeneratePrompt(alarmInfo))),
		},
	), nil
}

// jsonResult returns v as structured content with its JSON encoding as the text fallback.
func jsonResult(ctx context.Context, v any) *mcp.CallToolResult {
	data, err := domain.MarshalJSON(v, "")
	if err != nil {
		return toolError(ctx, fmt.Errorf("encode result: %w", err))
	}

	return mcp.NewToolResultStructured(v, string(data))
}

// toolError reports err to the host as a tool error result.
func toolError(ctx context.Context, err error) *mcp.CallToolResult {
	if errors.Is(err, domain.ErrMalformedTimestamp) {
		logger.WarnKV(ctx, "Rejected timestamp", "error", err)

		return mcp.NewToolResultError(err.Error() + ". " + timestampFormatHint)
	}

	logger.ErrorKV(ctx, "Alarm tool failed", "error", err)

	return mcp.NewToolResultError(err.Error())
}
