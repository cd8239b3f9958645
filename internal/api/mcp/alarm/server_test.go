package alarm

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/stretchr/testify/require"

	domain "github.com/oshokin/alarm-agenda/internal/domain/alarm"
)

var errTestStorage = errors.New("disk is on fire")

// fakeService implements the alarm Service interface on top of an in-memory agenda.
type fakeService struct {
	// agenda holds the alarms managed by the fake service.
	agenda domain.Agenda
	// err, when set, is returned by every operation.
	err error
}

// newFakeService returns a fake service with an empty agenda.
func newFakeService() *fakeService {
	return &fakeService{agenda: domain.NewAgenda()}
}

// Now returns a fixed timestamp.
func (f *fakeService) Now(context.Context) string { return "2025-07-17 08:00:00" }

// SetAlarm stores the description in the in-memory agenda.
func (f *fakeService) SetAlarm(_ context.Context, timestamp, description string) (*domain.Alarm, error) {
	if f.err != nil {
		return nil, f.err
	}

	slot, err := domain.ParseSlot(timestamp)
	if err != nil {
		return nil, err
	}

	f.agenda.Set(slot, description)

	return &domain.Alarm{Datetime: timestamp, Description: description}, nil
}

// GetAlarm looks the slot up in the in-memory agenda.
func (f *fakeService) GetAlarm(_ context.Context, timestamp string) (*domain.Alarm, error) {
	if f.err != nil {
		return nil, f.err
	}

	slot, err := domain.ParseSlot(timestamp)
	if err != nil {
		return nil, err
	}

	description, err := f.agenda.Get(slot)
	if err != nil {
		return nil, err
	}

	return &domain.Alarm{Datetime: timestamp, Description: description}, nil
}

// ListAlarms returns a copy of the in-memory agenda.
func (f *fakeService) ListAlarms(context.Context) (domain.Agenda, error) {
	if f.err != nil {
		return nil, f.err
	}

	return f.agenda.Clone(), nil
}

// DeleteAlarm removes the slot from the in-memory agenda.
func (f *fakeService) DeleteAlarm(_ context.Context, timestamp string) error {
	if f.err != nil {
		return f.err
	}

	slot, err := domain.ParseSlot(timestamp)
	if err != nil {
		return err
	}

	return f.agenda.Delete(slot)
}

// callRequest builds a tool call request with the given arguments.
func callRequest(name string, args map[string]any) mcp.CallToolRequest {
	var request mcp.CallToolRequest

	request.Params.Name = name
	request.Params.Arguments = args

	return request
}

// resultText extracts the single text content of a tool result.
func resultText(t *testing.T, result *mcp.CallToolResult) string {
	t.Helper()

	require.NotNil(t, result)
	require.Len(t, result.Content, 1)

	text, ok := result.Content[0].(mcp.TextContent)
	require.True(t, ok, fmt.Sprintf("unexpected content %T", result.Content[0]))

	return text.Text
}

// TestServer_DentistScenario exercises every tool with the result shapes hosts rely on.
func TestServer_DentistScenario(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	s := NewServer(newFakeService())

	result, err := s.GetTimeNow(ctx, callRequest(ToolGetTimeNow, nil))
	require.NoError(t, err)
	require.Equal(t, "2025-07-17 08:00:00", resultText(t, result))

	result, err = s.GetAlarms(ctx, callRequest(ToolGetAlarms, nil))
	require.NoError(t, err)
	require.JSONEq(t, `{"alarms": {}}`, resultText(t, result))

	result, err = s.SetAlarm(ctx, callRequest(ToolSetAlarm, map[string]any{
		"datetime_str": "2025-07-17 09:30:00",
		"description":  "Dentist",
	}))
	require.NoError(t, err)
	require.False(t, result.IsError)
	require.Contains(t, resultText(t, result), "2025-07-17 09:30:00")

	hit := callRequest(ToolGetAlarm, map[string]any{"datetime_str": "2025-07-17 09:30:00"})

	result, err = s.GetAlarm(ctx, hit)
	require.NoError(t, err)
	require.JSONEq(t, `{"datetime": "2025-07-17 09:30:00", "description": "Dentist"}`, resultText(t, result))
	require.Equal(t, &domain.Alarm{Datetime: "2025-07-17 09:30:00", Description: "Dentist"}, result.StructuredContent)

	result, err = s.GetAlarm(ctx, callRequest(ToolGetAlarm, map[string]any{"datetime_str": "2025-07-18 09:30:00"}))
	require.NoError(t, err)
	require.False(t, result.IsError)
	require.JSONEq(t, `{"error": "No alarm set for 2025-07-18 09:30:00"}`, resultText(t, result))
	require.Equal(t, errorResponse{Error: "No alarm set for 2025-07-18 09:30:00"}, result.StructuredContent)

	result, err = s.GetAlarms(ctx, callRequest(ToolGetAlarms, nil))
	require.NoError(t, err)
	require.JSONEq(t, `{"alarms": {"2025-07-17": {"09": {"30": "Dentist"}}}}`, resultText(t, result))
	require.Equal(t,
		alarmsResponse{Alarms: domain.Agenda{"2025-07-17": domain.Hours{"09": domain.Minutes{"30": "Dentist"}}}},
		result.StructuredContent,
	)

	remove := callRequest(ToolDeleteAlarm, map[string]any{"datetime_str": "2025-07-17 09:30:00"})

	result, err = s.DeleteAlarm(ctx, remove)
	require.NoError(t, err)
	require.Equal(t, "Alarm deleted for 2025-07-17 09:30:00", resultText(t, result))

	result, err = s.DeleteAlarm(ctx, remove)
	require.NoError(t, err)
	require.False(t, result.IsError)
	require.Equal(t, "No alarm found for 2025-07-17 09:30:00", resultText(t, result))

	result, err = s.GetAlarm(ctx, hit)
	require.NoError(t, err)
	require.JSONEq(t, `{"error": "No alarm set for 2025-07-17 09:30:00"}`, resultText(t, result))
}

// TestServer_GetAlarm_KeepsAmpersands verifies descriptions are not HTML escaped in text results.
func TestServer_GetAlarm_KeepsAmpersands(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	s := NewServer(newFakeService())

	_, err := s.SetAlarm(ctx, callRequest(ToolSetAlarm, map[string]any{
		"datetime_str": "2025-07-17 20:00:00",
		"description":  "Tom & Jerry <rerun>",
	}))
	require.NoError(t, err)

	result, err := s.GetAlarm(ctx, callRequest(ToolGetAlarm, map[string]any{"datetime_str": "2025-07-17 20:00:00"}))
	require.NoError(t, err)
	require.Equal(t, `{"datetime":"2025-07-17 20:00:00","description":"Tom & Jerry <rerun>"}`, resultText(t, result))
}

// TestServer_Validation ensures missing arguments and malformed timestamps become tool errors.
func TestServer_Validation(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	s := NewServer(newFakeService())

	result, err := s.SetAlarm(ctx, callRequest(ToolSetAlarm, map[string]any{"datetime_str": "2025-07-17 09:30:00"}))
	require.NoError(t, err)
	require.True(t, result.IsError)

	result, err = s.GetAlarm(ctx, callRequest(ToolGetAlarm, nil))
	require.NoError(t, err)
	require.True(t, result.IsError)

	result, err = s.DeleteAlarm(ctx, callRequest(ToolDeleteAlarm, map[string]any{"datetime_str": 42}))
	require.NoError(t, err)
	require.True(t, result.IsError)

	result, err = s.GetAlarm(ctx, callRequest(ToolGetAlarm, map[string]any{"datetime_str": "2025-07-17T09:30:00"}))
	require.NoError(t, err)
	require.True(t, result.IsError)
	require.Contains(t, resultText(t, result), timestampFormatHint)
}

// TestServer_StorageFailure ensures service failures are reported as tool errors.
func TestServer_StorageFailure(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	service := newFakeService()
	service.err = errTestStorage
	s := NewServer(service)

	result, err := s.GetAlarms(ctx, callRequest(ToolGetAlarms, nil))
	require.NoError(t, err)
	require.True(t, result.IsError)
	require.Contains(t, resultText(t, result), errTestStorage.Error())

	result, err = s.DeleteAlarm(ctx, callRequest(ToolDeleteAlarm, map[string]any{"datetime_str": "2025-07-17 09:30:00"}))
	require.NoError(t, err)
	require.True(t, result.IsError)
}

// TestServer_GenerateAlarmPrompt verifies the prompt embeds the instruction.
func TestServer_GenerateAlarmPrompt(t *testing.T) {
	t.Parallel()

	var request mcp.GetPromptRequest

	request.Params.Name = PromptGenerateAlarm
	request.Params.Arguments = map[string]string{"alarm_info": "remind me to call mom at 6pm"}

	result, err := NewServer(newFakeService()).GenerateAlarmPrompt(context.Background(), request)
	require.NoError(t, err)
	require.Len(t, result.Messages, 1)
	require.Equal(t, mcp.RoleUser, result.Messages[0].Role)

	text, ok := result.Messages[0].Content.(mcp.TextContent)
	require.True(t, ok)
	require.Contains(t, text.Text, "remind me to call mom at 6pm")
	require.Contains(t, text.Text, domain.DefaultDescription)
}

// TestToolDefinitions verifies tool names and required arguments.
func TestToolDefinitions(t *testing.T) {
	t.Parallel()

	require.Equal(t, ToolGetTimeNow, getTimeNowTool().Name)
	require.Equal(t, []string{"datetime_str", "description"}, setAlarmTool().InputSchema.Required)
	require.Equal(t, []string{"datetime_str"}, getAlarmTool().InputSchema.Required)
	require.Empty(t, getAlarmsTool().InputSchema.Required)
	require.Equal(t, []string{"datetime_str"}, deleteAlarmTool().InputSchema.Required)

	prompt := generateAlarmPrompt()
	require.Equal(t, PromptGenerateAlarm, prompt.Name)
	require.Len(t, prompt.Arguments, 1)
	require.True(t, prompt.Arguments[0].Required)
}
