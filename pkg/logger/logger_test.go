package logger

import (
	"errors"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"flickrembed/pkg/config"
)

func TestParseLogLevel(t *testing.T) {
	tests := []struct {
		input    string
		expected zerolog.Level
		wantErr  bool
	}{
		{"debug", zerolog.DebugLevel, false},
		{"info", zerolog.InfoLevel, false},
		{"WARN", zerolog.WarnLevel, false},
		{"warning", zerolog.WarnLevel, false},
		{"error", zerolog.ErrorLevel, false},
		{"fatal", zerolog.FatalLevel, false},
		{"disabled", zerolog.Disabled, false},
		{"verbose", zerolog.InfoLevel, true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			level, err := parseLogLevel(tt.input)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.expected, level)
		})
	}
}

func TestNewRejectsInvalidLevel(t *testing.T) {
	_, err := New(&config.LoggingConfig{Level: "shouting"})
	assert.Error(t, err)
}

func TestWithFieldsDoesNotMutateParent(t *testing.T) {
	log, err := New(&config.LoggingConfig{Level: "info"})
	require.NoError(t, err)

	child := log.WithField("album_url", "https://www.flickr.com/photos/x/albums/1")
	grandchild := child.WithField("photo_url", "https://www.flickr.com/photos/x/2")

	assert.NotNil(t, child)
	assert.NotNil(t, grandchild)
	assert.NotSame(t, log, child)
	assert.NotSame(t, child, grandchild)
}

func TestWithErrorNil(t *testing.T) {
	log, err := New(&config.LoggingConfig{Level: "info"})
	require.NoError(t, err)

	assert.Same(t, log, log.WithError(nil))
}

func TestTestLoggerCapture(t *testing.T) {
	tl := NewTestLogger()

	tl.Info("starting")
	tl.WithField("photo_url", "u").Warn("skipping photo")
	tl.WithError(errors.New("boom")).Error("failed")
	tl.InfoWithFields("done", map[string]interface{}{"count": 3})

	msgs := tl.Messages()
	require.Len(t, msgs, 4)

	assert.True(t, tl.HasMessage("starting"))
	assert.Len(t, tl.MessagesByLevel("WARN"), 1)
	assert.Equal(t, "u", tl.MessagesByLevel("WARN")[0].Fields["photo_url"])

	errMsgs := tl.MessagesByLevel("ERROR")
	require.Len(t, errMsgs, 1)
	assert.EqualError(t, errMsgs[0].Error, "boom")

	assert.Equal(t, 3, tl.MessagesByLevel("INFO")[1].Fields["count"])
}

func TestTestLoggerDerivedShareStore(t *testing.T) {
	tl := NewTestLogger()

	derived := tl.WithField("component", "extractor").WithField("step", "enumerate")
	derived.Info("hello")

	require.Len(t, tl.Messages(), 1)
	assert.Equal(t, "extractor", tl.Messages()[0].Fields["component"])
	assert.Equal(t, "enumerate", tl.Messages()[0].Fields["step"])
}
