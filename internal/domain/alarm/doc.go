// Package alarm contains core domain types for the alarm agenda.
//
// It defines Slot (a parsed date/hour/minute key), Agenda (the nested
// date → hour → minute → description mapping), the Clock used to report the
// current time, and the prompt template handed to language models.
package alarm
