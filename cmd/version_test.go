package cmd

import (
	"bytes"
	"strings"
	"testing"

	"github.com/oakwood-commons/destiny/pkg/settings"
)

func TestWriteVersionKeepsLdflagsValues(t *testing.T) {
	var buf bytes.Buffer
	err := writeVersion(&buf, settings.VersionInfo{
		Commit:       "abc1234",
		BuildVersion: "v1.2.3",
		BuildTime:    "2026-01-02T03:04:05Z",
	})
	if err != nil {
		t.Fatalf("writeVersion: %v", err)
	}
	out := buf.String()
	for _, want := range []string{"destiny v1.2.3\n", "commit: abc1234\n", "built: 2026-01-02T03:04:05Z\n", "go: "} {
		if !strings.Contains(out, want) {
			t.Fatalf("expected %q in %q", want, out)
		}
	}
}
