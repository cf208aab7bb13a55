package logger

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"gorm.io/gorm"
)

func TestGormLoggerTrace(t *testing.T) {
	var buf bytes.Buffer
	gl := NewGormLogger(zerolog.New(&buf), 50*time.Millisecond)
	fc := func() (string, int64) { return "SELECT 1", 1 }

	// routine query stays below warn
	gl.Trace(context.Background(), time.Now(), fc, nil)
	if strings.Contains(buf.String(), `"level":"warn"`) || strings.Contains(buf.String(), `"level":"error"`) {
		t.Errorf("routine query logged above debug: %s", buf.String())
	}
	buf.Reset()

	// failures log at error with the statement
	gl.Trace(context.Background(), time.Now(), fc, errors.New("disk I/O error"))
	if !strings.Contains(buf.String(), `"level":"error"`) || !strings.Contains(buf.String(), "SELECT 1") {
		t.Errorf("query failure not logged at error: %s", buf.String())
	}
	buf.Reset()

	// not-found is a routine lookup, not a failure
	gl.Trace(context.Background(), time.Now(), fc, gorm.ErrRecordNotFound)
	if strings.Contains(buf.String(), `"level":"error"`) {
		t.Errorf("record-not-found logged as a failure: %s", buf.String())
	}
	buf.Reset()

	// queries over the threshold log at warn
	gl.Trace(context.Background(), time.Now().Add(-time.Second), fc, nil)
	if !strings.Contains(buf.String(), `"level":"warn"`) {
		t.Errorf("slow query not logged at warn: %s", buf.String())
	}
}

func TestParseLogLevel(t *testing.T) {
	cases := map[string]zerolog.Level{
		"trace":   zerolog.TraceLevel,
		"debug":   zerolog.DebugLevel,
		"warning": zerolog.WarnLevel,
		"ERROR":   zerolog.ErrorLevel,
		"bogus":   zerolog.InfoLevel,
	}
	for in, want := range cases {
		if got := parseLogLevel(in); got != want {
			t.Errorf("parseLogLevel(%q) = %v, want %v", in, got, want)
		}
	}
}
