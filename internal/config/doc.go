// Package config defines the alarm agenda server settings and provides
// helpers to load, validate and save them in YAML format.
//
// The Config type selects the storage backend and its path, the log level
// and the optional health endpoint address.
package config
