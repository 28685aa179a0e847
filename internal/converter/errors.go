package converter

// errors.go maps technical errors to user-facing messages with codes.
// Users quote the code when reporting a problem, which is faster to
// diagnose than a raw error string.
//
// Error codes are grouped by category:
//
//	FMT001-FMT099  - format detection and parsing
//	FILE001-FILE099 - local file handling
//	NET001-NET099  - remote document fetching
//	WBK001-WBK099  - workbook reading and writing
//	VAL001-VAL099  - contract validation
//	REQ001-REQ099  - request lifecycle
//
// Patterns are matched case-insensitively with strings.Contains; the first
// match wins, so specific patterns come before general ones.

import (
	"fmt"
	"strings"

	"github.com/thiruselvaa/odcs-converter/internal/contract"
)

// UserMessage provides user-friendly error information with actionable guidance.
type UserMessage struct {
	Message string // What happened (user-friendly)
	Action  string // What to do about it
	Code    string // Error code for support reference
}

// ValidationFailedError is returned in strict mode when a contract fails
// validation. The full result is attached so callers can list every field.
type ValidationFailedError struct {
	Result *contract.ValidationResult
}

func (e *ValidationFailedError) Error() string {
	return fmt.Sprintf("contract validation failed with %d error(s)", len(e.Result.Errors))
}

type errorPattern struct {
	pattern string
	msg     UserMessage
}

var errorPatterns = []errorPattern{
	{
		pattern: "unknown format",
		msg: UserMessage{
			Message: "The file format could not be determined",
			Action:  "Use a .json, .yaml, .yml or .xlsx file, or pass the format explicitly",
			Code:    "FMT001",
		},
	},
	{
		pattern: "parse json",
		msg: UserMessage{
			Message: "The document is not valid JSON",
			Action:  "Check the document for syntax errors",
			Code:    "FMT002",
		},
	},
	{
		pattern: "parse yaml",
		msg: UserMessage{
			Message: "The document is not valid YAML",
			Action:  "Check the document for indentation or syntax errors",
			Code:    "FMT003",
		},
	},
	{
		pattern: "no such file",
		msg: UserMessage{
			Message: "The input file does not exist",
			Action:  "Check the file path",
			Code:    "FILE001",
		},
	},
	{
		pattern: "permission denied",
		msg: UserMessage{
			Message: "The file could not be accessed",
			Action:  "Check file permissions on the input and output paths",
			Code:    "FILE002",
		},
	},
	{
		pattern: "status 404",
		msg: UserMessage{
			Message: "The remote document was not found",
			Action:  "Check the URL",
			Code:    "NET001",
		},
	},
	{
		pattern: "response exceeds",
		msg: UserMessage{
			Message: "The remote document is too large",
			Action:  "Raise FETCH_MAX_RESPONSE_SIZE or fetch a smaller document",
			Code:    "NET002",
		},
	},
	{
		pattern: "fetch",
		msg: UserMessage{
			Message: "The remote document could not be retrieved",
			Action:  "Check the URL and network connectivity",
			Code:    "NET003",
		},
	},
	{
		pattern: "zip",
		msg: UserMessage{
			Message: "The workbook could not be opened",
			Action:  "Ensure the file is a valid .xlsx workbook",
			Code:    "WBK001",
		},
	},
	{
		pattern: "sheet",
		msg: UserMessage{
			Message: "A worksheet could not be read",
			Action:  "Regenerate the workbook from a template",
			Code:    "WBK002",
		},
	},
	{
		pattern: "validation failed",
		msg: UserMessage{
			Message: "The contract did not pass validation",
			Action:  "Run the validate command to list every failing field",
			Code:    "VAL001",
		},
	},
	{
		pattern: "context canceled",
		msg: UserMessage{
			Message: "The operation was cancelled",
			Action:  "Please try again",
			Code:    "REQ001",
		},
	},
	{
		pattern: "context deadline exceeded",
		msg: UserMessage{
			Message: "The operation timed out",
			Action:  "Try a smaller document or raise the timeout",
			Code:    "REQ002",
		},
	},
}

// defaultMessage is the ERR000 fallback when no pattern matches. Check the
// logs for the original technical error when users report ERR000.
var defaultMessage = UserMessage{
	Message: "An unexpected error occurred",
	Action:  "Please try again or contact support",
	Code:    "ERR000",
}

// MapError converts a technical error to a user-friendly message. It searches
// the known patterns case-insensitively and returns the first match, falling
// back to ERR000.
func MapError(err error) UserMessage {
	if err == nil {
		return UserMessage{}
	}

	errStr := strings.ToLower(err.Error())
	for _, ep := range errorPatterns {
		if strings.Contains(errStr, ep.pattern) {
			return ep.msg
		}
	}
	return defaultMessage
}

// FormatUserError creates a formatted error string for display.
// The format is: "Message (Code: XXX). Action"
func FormatUserError(err error) string {
	msg := MapError(err)
	if msg.Message == "" {
		return ""
	}
	return fmt.Sprintf("%s (Code: %s). %s", msg.Message, msg.Code, msg.Action)
}
