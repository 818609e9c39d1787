package content

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"go.uber.org/zap"
)

func runChecker(t *testing.T, rs *recordingServer, cfg CheckConfig) (int, string) {
	t.Helper()
	cfg.BaseURL = rs.srv.URL
	var out bytes.Buffer
	client := NewClient(cfg.BaseURL, nil, nil, zap.NewNop())
	code := NewChecker(cfg, client, &out, zap.NewNop()).Run(context.Background())
	return code, out.String()
}

const validDetail = `{"lessonRef":"a1","title":"T","tasks":[{"ref":"t1","type":"flashcard","front":"кот","back":"cat"}]}`

func TestCheckerAllValid(t *testing.T) {
	rs := newRecordingServer()
	defer rs.srv.Close()
	rs.handle("/content/v2/modules/a0.basics/lessons", 200, listBody)
	rs.handle("/content/v2/lessons/a1", 200, validDetail)

	code, out := runChecker(t, rs, CheckConfig{ModuleRef: "a0.basics"})
	if code != ExitOK {
		t.Fatalf("exit = %d, want %d\n%s", code, ExitOK, out)
	}
}

func TestCheckerListSchemaFailureAbortsBeforeDetails(t *testing.T) {
	rs := newRecordingServer()
	defer rs.srv.Close()
	// lessonRef missing: list schema violation.
	rs.handle("/content/v2/modules/m/lessons", 200,
		`[{"moduleRef":"m","title":"T","description":"D","estimatedMinutes":5,"order":0}]`)
	rs.handle("/content/v2/lessons/a1", 200, validDetail)

	code, out := runChecker(t, rs, CheckConfig{ModuleRef: "m"})
	if code != ExitListSchema {
		t.Fatalf("exit = %d, want %d\n%s", code, ExitListSchema, out)
	}
	if !strings.Contains(out, "lessonRef") {
		t.Fatalf("diagnostics do not name the failing field:\n%s", out)
	}
	if rs.count("/content/v2/lessons/a1") != 0 {
		t.Fatalf("detail stage ran despite list schema failure")
	}
}

func TestCheckerDetailSchemaFailure(t *testing.T) {
	rs := newRecordingServer()
	defer rs.srv.Close()
	rs.handle("/content/v2/modules/m/lessons", 200, listBody)
	// Detail missing tasks: detail schema violation.
	rs.handle("/content/v2/lessons/a1", 200, `{"lessonRef":"a1","title":"T"}`)

	code, out := runChecker(t, rs, CheckConfig{ModuleRef: "m"})
	if code != ExitDetailSchema {
		t.Fatalf("exit = %d, want %d\n%s", code, ExitDetailSchema, out)
	}
	if !strings.Contains(out, "tasks") {
		t.Fatalf("diagnostics do not mention tasks:\n%s", out)
	}
}

func TestCheckerDetailUsesLegacyFallback(t *testing.T) {
	rs := newRecordingServer()
	defer rs.srv.Close()
	rs.handle("/content/v2/modules/m/lessons", 200, listBody)
	rs.handle("/content/v2/lessons/a1", 500, "boom")
	rs.handle("/content/lessons/a1", 200, validDetail)

	code, out := runChecker(t, rs, CheckConfig{ModuleRef: "m"})
	if code != ExitOK {
		t.Fatalf("exit = %d, want %d\n%s", code, ExitOK, out)
	}
	if got := rs.count("/content/lessons/a1"); got != 1 {
		t.Fatalf("legacy detail endpoint hit %d times, want exactly 1", got)
	}
}

func TestCheckerTransportExhaustionIsUnexpected(t *testing.T) {
	rs := newRecordingServer()
	defer rs.srv.Close()
	rs.handle("/content/v2/modules/m/lessons", 500, "boom")
	rs.handle("/content/lessons", 503, "down")

	code, out := runChecker(t, rs, CheckConfig{ModuleRef: "m"})
	if code != ExitUnexpected {
		t.Fatalf("exit = %d, want %d\n%s", code, ExitUnexpected, out)
	}
}

func TestCheckerLimitCapsDetailChecks(t *testing.T) {
	rs := newRecordingServer()
	defer rs.srv.Close()
	rs.handle("/content/v2/modules/m/lessons", 200, `[
		{"lessonRef":"a1","moduleRef":"m","title":"T","description":"D","estimatedMinutes":5,"order":0},
		{"lessonRef":"a2","moduleRef":"m","title":"T","description":"D","estimatedMinutes":5,"order":1}
	]`)
	rs.handle("/content/v2/lessons/a1", 200, validDetail)
	rs.handle("/content/v2/lessons/a2", 200, `{"lessonRef":"a2","title":"T"}`)

	code, out := runChecker(t, rs, CheckConfig{ModuleRef: "m", Limit: 1})
	if code != ExitOK {
		t.Fatalf("exit = %d, want %d (a2 is past the limit)\n%s", code, ExitOK, out)
	}
	if rs.count("/content/v2/lessons/a2") != 0 {
		t.Fatalf("limit not respected; a2 was fetched")
	}
}
