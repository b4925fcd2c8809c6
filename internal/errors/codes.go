package errors

type Code string

const (
	CodeUnknown          Code = "UNKNOWN"
	CodeInternal         Code = "INTERNAL_ERROR"
	CodeConfigValidation Code = "CONFIG_VALIDATION_ERROR"
	CodeConfigReadError  Code = "CONFIG_READ_ERROR"
	CodeConfigParseError Code = "CONFIG_PARSE_ERROR"
	CodeConfigNotFound   Code = "CONFIG_NOT_FOUND"
	CodeNotImplemented   Code = "NOT_IMPLEMENTED"
	CodeTimeout          Code = "TIMEOUT_ERROR"

	// Catalog access
	CodeConnectionError Code = "CONNECTION_ERROR"
	CodeQueryError      Code = "QUERY_ERROR"

	// Comparison pipeline
	CodeMatchingError   Code = "MATCHING_ERROR"
	CodeComparisonError Code = "COMPARISON_ERROR"
	CodeReportError     Code = "REPORT_ERROR"
)

func (c Code) String() string {
	return string(c)
}
