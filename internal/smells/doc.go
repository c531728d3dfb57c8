// Package smells implements the smell detectors run by the examiner.
//
// Each detector inspects one parsed Go file and reports a single smell
// type. Smell types are grouped into families (the Category of a
// warning) so that callers can ask for "UncommunicativeName" instead of
// each naming detector separately:
//
//	UncommunicativeName  UncommunicativeMethodName, UncommunicativeParameterName, UncommunicativeVariableName
//	LowCohesion          FeatureEnvy, UtilityFunction
//	LongMethod           TooManyStatements
//	LongParameterList    LongParameterList
//	ControlCouple        BooleanParameter
//	Duplication          DuplicateMethodCall
//	NestedIterators      NestedIterators
//	LargeClass           TooManyMethods
//
// Analysis is syntactic only: files are parsed but never type-checked, so
// inline snippets that reference undeclared types are fine.
package smells
