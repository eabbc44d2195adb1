package diffinsight_test

import (
	"context"
	"errors"
	"testing"

	"github.com/fwojciec/diffinsight"
	"github.com/stretchr/testify/assert"
)

func TestNotifications(t *testing.T) {
	t.Parallel()

	t.Run("empty input", func(t *testing.T) {
		t.Parallel()

		n := diffinsight.EmptyInputNotification()

		assert.Equal(t, "Error", n.Title)
		assert.Equal(t, "Please enter a code diff to analyze", n.Description)
		assert.Equal(t, diffinsight.SeverityError, n.Severity)
	})

	t.Run("analysis complete", func(t *testing.T) {
		t.Parallel()

		n := diffinsight.AnalysisCompleteNotification()

		assert.Equal(t, "Analysis Complete", n.Title)
		assert.Equal(t, "Found potential issues and solutions", n.Description)
		assert.Equal(t, diffinsight.SeveritySuccess, n.Severity)
	})

	t.Run("copied", func(t *testing.T) {
		t.Parallel()

		n := diffinsight.CopiedNotification(diffinsight.LabelIssues)

		assert.Equal(t, "Copied to clipboard", n.Title)
		assert.Equal(t, "Issues copied successfully", n.Description)
		assert.Equal(t, diffinsight.SeveritySuccess, n.Severity)
	})

	t.Run("copy failed", func(t *testing.T) {
		t.Parallel()

		n := diffinsight.CopyFailedNotification(diffinsight.LabelSolutions, errors.New("no xclip"))

		assert.Equal(t, diffinsight.SeverityError, n.Severity)
		assert.Contains(t, n.Description, "Solutions")
		assert.Contains(t, n.Description, "no xclip")
	})

	t.Run("analysis failed describes the kind", func(t *testing.T) {
		t.Parallel()

		timeout := diffinsight.AnalysisFailedNotification(&diffinsight.AnalysisError{Kind: diffinsight.KindTimeout, Err: context.DeadlineExceeded})
		service := diffinsight.AnalysisFailedNotification(&diffinsight.AnalysisError{Kind: diffinsight.KindService, Err: errors.New("HTTP 503")})

		assert.Equal(t, "Analysis Failed", timeout.Title)
		assert.Equal(t, diffinsight.SeverityError, timeout.Severity)
		assert.Contains(t, timeout.Description, "did not answer in time")
		assert.Contains(t, service.Description, "HTTP 503")
		assert.Contains(t, service.Description, "retry")
	})
}

func TestNotifierFunc(t *testing.T) {
	t.Parallel()

	var got []diffinsight.Notification
	var n diffinsight.Notifier = diffinsight.NotifierFunc(func(n diffinsight.Notification) {
		got = append(got, n)
	})

	n.Notify(diffinsight.AnalysisCompleteNotification())

	assert.Len(t, got, 1)
}

func TestSeverity_String(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "info", diffinsight.SeverityInfo.String())
	assert.Equal(t, "success", diffinsight.SeveritySuccess.String())
	assert.Equal(t, "error", diffinsight.SeverityError.String())
}
