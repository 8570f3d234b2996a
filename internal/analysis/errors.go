package analysis

import "errors"

var (
	// ErrTransport means the analysis service could not be reached.
	ErrTransport = errors.New("analysis service unreachable")
	// ErrService means the analysis service answered with a non-success status.
	ErrService = errors.New("analysis service returned an error status")
	// ErrParse means the response body did not match the expected result shape.
	ErrParse = errors.New("analysis response could not be parsed")
)

const (
	fetchFailedMessage = "Failed to fetch analysis from the backend."
	parseFailedMessage = "The analysis service returned an unexpected response."
	unexpectedMessage  = "An unexpected error occurred."
)

// UserMessage maps an analysis error to the text shown to the user.
// Transport and service failures are deliberately indistinguishable.
func UserMessage(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, ErrTransport), errors.Is(err, ErrService):
		return fetchFailedMessage
	case errors.Is(err, ErrParse):
		return parseFailedMessage
	default:
		return unexpectedMessage
	}
}
