package alarm

import "fmt"

// DefaultDescription is what the model should use when the instruction does
// not say what the alarm is for.
const DefaultDescription = "4L4RM"

const promptTemplate = `Analyze the instruction for alarm creation.
Return a json with the alarm information.
The json should have the following fields:
- datetime: the datetime of the alarm in the format %%Y-%%m-%%d %%H:%%M:%%S
- description: the description of the alarm

If the description is not clear, just use %q as the description.
If the date is not clear, just get the date with @get_time_now and use the date or the next day.

# Begin of instruction
%s
# End of instruction

# Return the json with the alarm information
{
    "datetime": "2025-07-17 00:01:50",
    "description": "Alarm"
}
`

// GeneratePrompt builds the instruction text asking a language model to
// extract an alarm from free-form text.
func GeneratePrompt(alarmInfo string) string {
	return fmt.Sprintf(promptTemplate, DefaultDescription, alarmInfo)
}
