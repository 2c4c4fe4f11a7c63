package logger

import (
	"bytes"
	"encoding/json"
	"os"
	"strings"
	"sync"
	"testing"

	"github.com/sirupsen/logrus"
)

func TestMain(m *testing.M) {
	Init()
	os.Exit(m.Run())
}

func TestConfigure_ReachesEarlierEntries(t *testing.T) {
	early := For("world")

	var buf bytes.Buffer
	Configure("debug", "json", &buf)
	defer Configure("info", "", os.Stdout)

	early.Debug("entity spawned")

	var line map[string]any
	if err := json.Unmarshal(buf.Bytes(), &line); err != nil {
		t.Fatalf("output %q is not JSON: %v", buf.String(), err)
	}
	if line["component"] != "world" || line["msg"] != "entity spawned" {
		t.Errorf("line = %v", line)
	}
}

func TestConfigure_Levels(t *testing.T) {
	tests := []struct {
		level string
		want  logrus.Level
	}{
		{"debug", logrus.DebugLevel},
		{"WARN", logrus.WarnLevel},
		{"bogus", logrus.InfoLevel},
		{"", logrus.InfoLevel},
	}
	defer Configure("info", "", os.Stdout)
	for _, tt := range tests {
		t.Run(tt.level, func(t *testing.T) {
			var buf bytes.Buffer
			Configure(tt.level, "text", &buf)
			if got := Log.GetLevel(); got != tt.want {
				t.Errorf("level = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestFor_Concurrent(t *testing.T) {
	var buf syncBuffer
	Configure("info", "text", &buf)
	defer Configure("info", "", os.Stdout)

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			For("worker").Info("tick")
		}()
	}
	wg.Wait()

	if n := strings.Count(buf.String(), "component=worker"); n != 8 {
		t.Errorf("lines = %d, want 8", n)
	}
}

type syncBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (b *syncBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.Write(p)
}

func (b *syncBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.String()
}
