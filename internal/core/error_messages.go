package core

// error_messages.go maps technical errors to messages users can act on.
//
// Every message carries a code users can quote when reporting a problem:
//
//	FILE001  file too large             FILE002  invalid csv
//	FILE004  no file provided           FILE005  empty file
//	VAL001   invalid id                 VAL002   invalid filter value
//	VAL003   unknown column             VAL004   missing required column
//	HIST001  dataset not found
//	UPL002   too many uploads           UPL004   request cancelled
//	UPL005   request timed out
//	DB004    connection refused         DB005    connection reset
//	DB006    timeout
//	AUTH001  missing or invalid API key
//	RATE001  rate limited
//	ERR000   anything else; check the server log for the technical error
//
// Sentinel errors are matched with errors.Is first. Anything else is matched
// case-insensitively against the patterns below and the first match wins,
// so specific patterns come before general ones.

import (
	"context"
	"errors"
	"fmt"
	"strings"
)

// UserMessage provides user-friendly error information with actionable guidance.
type UserMessage struct {
	Message string `json:"message"` // What happened
	Action  string `json:"action"`  // What to do about it
	Code    string `json:"code"`    // Error code for support reference
}

var (
	// ErrInvalidID is returned for a history id that is not a positive integer.
	ErrInvalidID = errors.New("invalid id")

	// ErrInvalidFilter is returned for a range bound that is not a number.
	ErrInvalidFilter = errors.New("invalid filter value")

	// ErrUnknownColumn is returned when a column name does not match any column.
	ErrUnknownColumn = errors.New("unknown column")

	// ErrUnauthorized is returned when an API key is required but missing or wrong.
	ErrUnauthorized = errors.New("missing or invalid api key")

	// ErrRateLimited is returned when a client exceeds its request rate.
	ErrRateLimited = errors.New("rate limit exceeded")
)

var (
	msgFileTooLarge = UserMessage{
		Message: "File exceeds the maximum upload size",
		Action:  "Split the file or remove unused columns",
		Code:    "FILE001",
	}
	msgInvalidCSV = UserMessage{
		Message: "File is not a valid CSV",
		Action:  "Ensure the file is comma-separated with a header row",
		Code:    "FILE002",
	}
	msgNoFile = UserMessage{
		Message: "No file was selected",
		Action:  "Please select a CSV file",
		Code:    "FILE004",
	}
	msgEmptyFile = UserMessage{
		Message: "The uploaded file is empty",
		Action:  "Please upload a CSV file with a header row",
		Code:    "FILE005",
	}
	msgInvalidID = UserMessage{
		Message: "Invalid dataset id",
		Action:  "Use the numeric id shown in the history list",
		Code:    "VAL001",
	}
	msgInvalidFilter = UserMessage{
		Message: "A filter value is not a number",
		Action:  "Use plain numbers for minimum and maximum values",
		Code:    "VAL002",
	}
	msgUnknownColumn = UserMessage{
		Message: "Unknown column",
		Action:  "Use one of: name, type, flowrate, pressure, temperature",
		Code:    "VAL003",
	}
	msgMissingColumn = UserMessage{
		Message: "Required column is missing from CSV",
		Action:  "The header must include Equipment Name, Type, Flowrate, Pressure and Temperature",
		Code:    "VAL004",
	}
	msgNotFound = UserMessage{
		Message: "Dataset not found",
		Action:  "It may have dropped out of the upload history. Upload the file again",
		Code:    "HIST001",
	}
	msgTooManyUploads = UserMessage{
		Message: "System is busy processing other files",
		Action:  "Please wait a moment and try again",
		Code:    "UPL002",
	}
	msgCancelled = UserMessage{
		Message: "Request was cancelled",
		Action:  "Please try again",
		Code:    "UPL004",
	}
	msgDeadline = UserMessage{
		Message: "Request timed out",
		Action:  "Try a smaller file or check your connection",
		Code:    "UPL005",
	}
	msgUnauthorized = UserMessage{
		Message: "Missing or invalid API key",
		Action:  "Send a configured key in the X-API-Key header",
		Code:    "AUTH001",
	}
	msgRateLimited = UserMessage{
		Message: "Too many requests",
		Action:  "Please wait a moment before trying again",
		Code:    "RATE001",
	}
)

type sentinelMessage struct {
	err error
	msg UserMessage
}

var sentinelMessages = []sentinelMessage{
	{ErrFileTooLarge, msgFileTooLarge},
	{ErrNoFile, msgNoFile},
	{ErrEmptyFile, msgEmptyFile},
	{ErrInvalidID, msgInvalidID},
	{ErrInvalidFilter, msgInvalidFilter},
	{ErrUnknownColumn, msgUnknownColumn},
	{ErrDatasetNotFound, msgNotFound},
	{ErrTooManyUploads, msgTooManyUploads},
	{ErrUnauthorized, msgUnauthorized},
	{ErrRateLimited, msgRateLimited},
	{context.Canceled, msgCancelled},
	{context.DeadlineExceeded, msgDeadline},
}

// errorPattern defines a pattern to match and its corresponding user message.
type errorPattern struct {
	pattern string
	msg     UserMessage
}

// errorPatterns covers errors that cross a boundary as text, such as
// driver errors and server errors relayed to the CLI.
var errorPatterns = []errorPattern{
	{"missing required column", msgMissingColumn},
	{"invalid csv", msgInvalidCSV},
	{"file too large", msgFileTooLarge},
	{"empty file", msgEmptyFile},
	{"no file provided", msgNoFile},
	{"dataset not found", msgNotFound},
	{"too many uploads", msgTooManyUploads},
	{"rate limit", msgRateLimited},
	{"context canceled", msgCancelled},
	{"context deadline exceeded", msgDeadline},

	{"connection refused", UserMessage{
		Message: "Unable to connect to database",
		Action:  "Please try again in a few moments",
		Code:    "DB004",
	}},
	{"connection reset", UserMessage{
		Message: "Database connection was interrupted",
		Action:  "Please try again",
		Code:    "DB005",
	}},
	{"timeout", UserMessage{
		Message: "Operation timed out",
		Action:  "Try a smaller file or try again later",
		Code:    "DB006",
	}},
}

// defaultMessage is returned when nothing matches (ERR000).
var defaultMessage = UserMessage{
	Message: "An unexpected error occurred",
	Action:  "Please try again or contact support",
	Code:    "ERR000",
}

// MapError converts a technical error to a user-friendly message.
//
//	msg := MapError(fmt.Errorf("load: %w", ErrDatasetNotFound))
//	// msg.Code == "HIST001"
func MapError(err error) UserMessage {
	if err == nil {
		return UserMessage{}
	}

	var missing *MissingColumnsError
	if errors.As(err, &missing) {
		return msgMissingColumn
	}
	for _, sm := range sentinelMessages {
		if errors.Is(err, sm.err) {
			return sm.msg
		}
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

// IsUserFacing reports whether err maps to a specific message rather than
// the ERR000 fallback.
func IsUserFacing(err error) bool {
	if err == nil {
		return false
	}
	return MapError(err).Code != defaultMessage.Code
}

// UserError pairs a technical error with its user-facing message.
type UserError struct {
	Technical error       // Original technical error for logging
	User      UserMessage // User-friendly message for display
}

func (e *UserError) Error() string {
	return e.User.Message
}

func (e *UserError) Unwrap() error {
	return e.Technical
}

// NewUserError maps err. Returns nil if err is nil.
func NewUserError(err error) *UserError {
	if err == nil {
		return nil
	}
	return &UserError{
		Technical: err,
		User:      MapError(err),
	}
}
