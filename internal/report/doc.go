// Package report renders examinations for people and tools.
//
// This package contains reports for different output formats:
//   - TextReport: the terminal report, with pluggable warning, list and heading formatters
//   - JSONReport and YAMLReport: warning lists for tool integration
//   - MarkdownReport: a summary for pull requests and documentation
//   - SARIFReport: a SARIF 2.1.0 log for code scanning services
//
// Design decision: reports collect results through AddResult and render
// them in a single Show call, so each format sees every result before it
// writes anything. Reports are not safe for concurrent use.
package report
