package alarm

import "github.com/mark3labs/mcp-go/mcp"

// getTimeNowTool declares get_time_now.
func getTimeNowTool() mcp.Tool {
	return mcp.NewTool(ToolGetTimeNow,
		mcp.WithDescription("Get the current time."),
		mcp.WithReadOnlyHintAnnotation(true),
	)
}

// setAlarmTool declares set_alarm with its two required arguments.
func setAlarmTool() mcp.Tool {
	return mcp.NewTool(ToolSetAlarm,
		mcp.WithDescription("Set an alarm for datetime with the description. "+timestampFormatHint),
		mcp.WithString(argDatetime,
			mcp.Required(),
			mcp.Description("When the alarm goes off, e.g. 2025-07-17 09:30:00"),
		),
		mcp.WithString(argDescription,
			mcp.Required(),
			mcp.Description("What the alarm is for"),
		),
		mcp.WithDestructiveHintAnnotation(false),
		mcp.WithIdempotentHintAnnotation(true),
	)
}

// getAlarmTool declares get_alarm.
func getAlarmTool() mcp.Tool {
	return mcp.NewTool(ToolGetAlarm,
		mcp.WithDescription("Get a json with an alarm from the agenda based on the datetime. "+timestampFormatHint),
		mcp.WithString(argDatetime,
			mcp.Required(),
			mcp.Description("When the alarm goes off, e.g. 2025-07-17 09:30:00"),
		),
		mcp.WithReadOnlyHintAnnotation(true),
	)
}

// getAlarmsTool declares get_alarms.
func getAlarmsTool() mcp.Tool {
	return mcp.NewTool(ToolGetAlarms,
		mcp.WithDescription("Get a json with all alarms from the user."),
		mcp.WithReadOnlyHintAnnotation(true),
	)
}

// deleteAlarmTool declares delete_alarm.
func deleteAlarmTool() mcp.Tool {
	return mcp.NewTool(ToolDeleteAlarm,
		mcp.WithDescription("Delete an alarm from the agenda. "+timestampFormatHint),
		mcp.WithString(argDatetime,
			mcp.Required(),
			mcp.Description("When the alarm goes off, e.g. 2025-07-17 09:30:00"),
		),
		mcp.WithDestructiveHintAnnotation(true),
	)
}

// generateAlarmPrompt declares the generate_alarm_prompt prompt.
func generateAlarmPrompt() mcp.Prompt {
	return mcp.NewPrompt(PromptGenerateAlarm,
		mcp.WithPromptDescription("Generate a prompt for the alarm creation tool."),
		mcp.WithArgument(argAlarmInfo,
			mcp.ArgumentDescription("Free-form instruction describing the alarm"),
			mcp.RequiredArgument(),
		),
	)
}
