// Package agenda implements persistence for the alarm Agenda.
//
// FileRepository keeps the agenda as a pretty-printed JSON document and
// SQLiteRepository keeps it in a single table. Both read and write the whole
// agenda at once and satisfy the Repository interface the service depends on.
package agenda
