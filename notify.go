package diffinsight

import "fmt"

// Severity is the tone of a Notification.
type Severity int

// Notification severities.
const (
	SeverityInfo Severity = iota
	SeveritySuccess
	SeverityError
)

// String returns the lower-case name of the severity.
func (s Severity) String() string {
	switch s {
	case SeveritySuccess:
		return "success"
	case SeverityError:
		return "error"
	default:
		return "info"
	}
}

// Notification is a transient user-visible message.
type Notification struct {
	Title       string
	Description string
	Severity    Severity
}

// Notifier surfaces notifications to the user.
type Notifier interface {
	Notify(n Notification)
}

// NotifierFunc adapts a function to the Notifier interface.
type NotifierFunc func(Notification)

// Notify calls f(n).
func (f NotifierFunc) Notify(n Notification) {
	f(n)
}

// EmptyInputNotification is raised when analysis is requested for a blank buffer.
func EmptyInputNotification() Notification {
	return Notification{
		Title:       "Error",
		Description: "Please enter a code diff to analyze",
		Severity:    SeverityError,
	}
}

// AnalysisCompleteNotification is raised when an analysis finishes.
func AnalysisCompleteNotification() Notification {
	return Notification{
		Title:       "Analysis Complete",
		Description: "Found potential issues and solutions",
		Severity:    SeveritySuccess,
	}
}

// AnalysisFailedNotification is raised when an analysis call fails.
func AnalysisFailedNotification(err *AnalysisError) Notification {
	var desc string
	switch err.Kind {
	case KindTimeout:
		desc = "The analysis service did not answer in time. Press analyze to retry."
	case KindCanceled:
		desc = "The analysis was canceled."
	case KindMalformedResponse:
		desc = "The analysis service returned an unexpected response. Press analyze to retry."
	default:
		desc = fmt.Sprintf("%v. Press analyze to retry.", err.Err)
	}
	return Notification{
		Title:       "Analysis Failed",
		Description: desc,
		Severity:    SeverityError,
	}
}

// CopiedNotification is raised after a list was copied to the clipboard.
func CopiedNotification(label string) Notification {
	return Notification{
		Title:       "Copied to clipboard",
		Description: label + " copied successfully",
		Severity:    SeveritySuccess,
	}
}

// CopyFailedNotification is raised when the clipboard rejected a write.
func CopyFailedNotification(label string, err error) Notification {
	return Notification{
		Title:       "Copy failed",
		Description: fmt.Sprintf("%s could not be copied: %v", label, err),
		Severity:    SeverityError,
	}
}
