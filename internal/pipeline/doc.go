// Package pipeline runs a scan as a sequence of steps: collecting sources,
// examining them, saving the results, and writing the report.
//
// Each stage is implemented as a Step that receives the shared Run and
// can modify it. Examination of many sources is fanned out by the
// BatchExaminer with a concurrency limit.
//
// Design decision: We use a pipeline of steps rather than one scan
// function so that the CLI can leave out saving or reporting without
// branching inside the scan itself, and so that cancellation is checked
// between stages.
package pipeline
