// Package logging builds the slog loggers used across gifforge.
//
// Two output formats are supported: a console handler that renders compact
// "TIME LEVEL component: message key=value" lines for interactive use, and a
// JSON handler for log files. Components tag their loggers via WithComponent
// so the console prefix stays stable.
package logging
