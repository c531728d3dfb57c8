// Package model defines the core data structures used throughout smellscan.
//
// This package contains the following main types:
//   - SmellWarning: A single smell found in a source, with ordered details
//   - Value: The tagged union used for detail values
//   - Category: A smell type or family name, see NormalizeCategory
//   - Examination: All smells found in one source
//   - Severity: How strongly a smell type suggests a design problem
//
// Design decision: We separate models into their own package to avoid circular
// dependencies. The examiner, the smell matchers, the reports and the
// database all need these types, so centralizing them prevents import cycles.
//
// The models are designed to be serializable to JSON and YAML for report
// output and database storage.
package model
