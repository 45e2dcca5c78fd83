package commands

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/vasiliykireev/multi-lang-for-miot-home-assistant-integration/pkg/trace"
)

const testURN = "urn:miot-spec-v2:device:health-pot:0000A051:chunmi-a1:1"

func TestRunGenerate_NoURN(t *testing.T) {
	stdout := &bytes.Buffer{}
	stderr := &bytes.Buffer{}

	exitCode := RunGenerate([]string{}, stdout, stderr)

	if exitCode != exitUsage {
		t.Errorf("expected exit code %d, got %d", exitUsage, exitCode)
	}
	if !strings.Contains(stderr.String(), "URN is required") {
		t.Errorf("expected URN requirement in stderr, got: %s", stderr.String())
	}
	if !strings.Contains(stderr.String(), "Usage:") {
		t.Errorf("expected usage in stderr, got: %s", stderr.String())
	}
}

func TestRunGenerate_LocalFile(t *testing.T) {
	stdout := &bytes.Buffer{}
	stderr := &bytes.Buffer{}
	outPath := filepath.Join(t.TempDir(), "health-pot.json")

	exitCode := RunGenerate([]string{
		"-f", "../../../testdata/health-pot.json",
		"-o", outPath,
		testURN,
	}, stdout, stderr)

	if exitCode != exitSuccess {
		t.Fatalf("expected exit code %d, got %d\nstderr: %s", exitSuccess, exitCode, stderr.String())
	}

	out := stdout.String()
	for _, want := range []string{
		`"urn:miot-spec-v2:device:health-pot:0000A051:chunmi-a1"`, // normalized, version suffix gone
		`"service:001": "Device Information"`,
		`"service:002:property:001:valuelist:002": "保温"`,
		`"service:002:action:002": "Cancel Cooking"`,
		`"service:002:event:001": "Cooking Finished"`,
		"Saved to " + outPath,
	} {
		if !strings.Contains(out, want) {
			t.Errorf("expected %q in stdout, got: %s", want, out)
		}
	}

	data, err := os.ReadFile(outPath)
	if err != nil {
		t.Fatalf("output file not written: %v", err)
	}
	if !strings.Contains(string(data), `"ru"`) {
		t.Errorf("expected default lang key in output file, got: %s", data)
	}
	// Keys sorted numerically by service id: service 1 before service 2.
	if strings.Index(string(data), "service:001") > strings.Index(string(data), "service:002") {
		t.Errorf("expected service:001 before service:002 in output:\n%s", data)
	}
}

func TestRunGenerate_LangFlag(t *testing.T) {
	stdout := &bytes.Buffer{}
	stderr := &bytes.Buffer{}
	outPath := filepath.Join(t.TempDir(), "out.json")

	exitCode := RunGenerate([]string{
		"-f", "../../../testdata/health-pot.json",
		"-o", outPath,
		"-l", "en",
		testURN,
	}, stdout, stderr)

	if exitCode != exitSuccess {
		t.Fatalf("expected exit code %d, got %d\nstderr: %s", exitSuccess, exitCode, stderr.String())
	}
	if !strings.Contains(stdout.String(), `"en"`) {
		t.Errorf("expected en lang key in stdout, got: %s", stdout.String())
	}
}

func TestRunGenerate_LangFromEnv(t *testing.T) {
	t.Setenv("MIOT_LANG", "de")

	stdout := &bytes.Buffer{}
	stderr := &bytes.Buffer{}
	outPath := filepath.Join(t.TempDir(), "out.json")

	exitCode := RunGenerate([]string{
		"-f", "../../../testdata/health-pot.json",
		"-o", outPath,
		testURN,
	}, stdout, stderr)

	if exitCode != exitSuccess {
		t.Fatalf("expected exit code %d, got %d\nstderr: %s", exitSuccess, exitCode, stderr.String())
	}
	if !strings.Contains(stdout.String(), `"de"`) {
		t.Errorf("expected de lang key from env, got: %s", stdout.String())
	}
}

func TestRunGenerate_YAMLFormat(t *testing.T) {
	stdout := &bytes.Buffer{}
	stderr := &bytes.Buffer{}
	outPath := filepath.Join(t.TempDir(), "out.yaml")

	exitCode := RunGenerate([]string{
		"-f", "../../../testdata/health-pot.json",
		"-o", outPath,
		"--format", "yaml",
		testURN,
	}, stdout, stderr)

	if exitCode != exitSuccess {
		t.Fatalf("expected exit code %d, got %d\nstderr: %s", exitSuccess, exitCode, stderr.String())
	}
	data, err := os.ReadFile(outPath)
	if err != nil {
		t.Fatalf("output file not written: %v", err)
	}
	if !strings.Contains(string(data), "service:002:property:001") {
		t.Errorf("expected mapping keys in YAML output, got: %s", data)
	}
}

func TestRunGenerate_BadFormat(t *testing.T) {
	stdout := &bytes.Buffer{}
	stderr := &bytes.Buffer{}

	exitCode := RunGenerate([]string{"--format", "xml", testURN}, stdout, stderr)

	if exitCode != exitUsage {
		t.Errorf("expected exit code %d, got %d", exitUsage, exitCode)
	}
	if !strings.Contains(stderr.String(), "unknown format") {
		t.Errorf("expected format error in stderr, got: %s", stderr.String())
	}
}

func TestRunGenerate_MissingLocalFile(t *testing.T) {
	stdout := &bytes.Buffer{}
	stderr := &bytes.Buffer{}

	exitCode := RunGenerate([]string{"-f", "nonexistent.json", testURN}, stdout, stderr)

	if exitCode != exitRead {
		t.Errorf("expected exit code %d, got %d", exitRead, exitCode)
	}
	if !strings.Contains(stderr.String(), "could not read specification file") {
		t.Errorf("expected read error in stderr, got: %s", stderr.String())
	}
}

func TestRunGenerate_FetchSuccess(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.URL.Query().Get("type"); got != testURN {
			t.Errorf("expected type=%s, got %s", testURN, got)
		}
		_, _ = w.Write([]byte(`{"services":[{"siid":1,"description":"Light"}]}`))
	}))
	defer srv.Close()
	t.Setenv("MIOT_SPEC_BASE_URL", srv.URL)

	stdout := &bytes.Buffer{}
	stderr := &bytes.Buffer{}
	outPath := filepath.Join(t.TempDir(), "out.json")

	exitCode := RunGenerate([]string{"-o", outPath, testURN}, stdout, stderr)

	if exitCode != exitSuccess {
		t.Fatalf("expected exit code %d, got %d\nstderr: %s", exitSuccess, exitCode, stderr.String())
	}
	if !strings.Contains(stdout.String(), `"service:001": "Light"`) {
		t.Errorf("expected mapping in stdout, got: %s", stdout.String())
	}
}

func TestRunGenerate_FetchFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "no such instance", http.StatusNotFound)
	}))
	defer srv.Close()
	t.Setenv("MIOT_SPEC_BASE_URL", srv.URL)

	stdout := &bytes.Buffer{}
	stderr := &bytes.Buffer{}
	outPath := filepath.Join(t.TempDir(), "out.json")

	exitCode := RunGenerate([]string{"-o", outPath, testURN}, stdout, stderr)

	if exitCode != exitFetch {
		t.Errorf("expected exit code %d, got %d", exitFetch, exitCode)
	}
	if _, err := os.Stat(outPath); !os.IsNotExist(err) {
		t.Errorf("expected no output file after fetch failure")
	}
	if !strings.Contains(stderr.String(), "could not fetch") {
		t.Errorf("expected fetch error in stderr, got: %s", stderr.String())
	}
}

func TestRunGenerate_SaveFailure(t *testing.T) {
	stdout := &bytes.Buffer{}
	stderr := &bytes.Buffer{}
	outPath := filepath.Join(t.TempDir(), "missing-dir", "out.json")

	exitCode := RunGenerate([]string{
		"-f", "../../../testdata/health-pot.json",
		"-o", outPath,
		testURN,
	}, stdout, stderr)

	if exitCode != exitSave {
		t.Errorf("expected exit code %d, got %d", exitSave, exitCode)
	}
	if !strings.Contains(stderr.String(), "could not save") {
		t.Errorf("expected save error in stderr, got: %s", stderr.String())
	}
}

func TestRunGenerate_TraceFile(t *testing.T) {
	stdout := &bytes.Buffer{}
	stderr := &bytes.Buffer{}
	dir := t.TempDir()
	outPath := filepath.Join(dir, "out.json")
	tracePath := filepath.Join(dir, "run.trace")

	exitCode := RunGenerate([]string{
		"-f", "../../../testdata/health-pot.json",
		"-o", outPath,
		"--trace", tracePath,
		testURN,
	}, stdout, stderr)

	if exitCode != exitSuccess {
		t.Fatalf("expected exit code %d, got %d\nstderr: %s", exitSuccess, exitCode, stderr.String())
	}

	reader, err := trace.NewReader(tracePath)
	if err != nil {
		t.Fatalf("trace file not readable: %v", err)
	}
	defer reader.Close()

	events, err := reader.ReadAll()
	if err != nil {
		t.Fatalf("failed to read trace events: %v", err)
	}
	if len(events) < 3 {
		t.Fatalf("expected parse/build/save events, got %d", len(events))
	}
	runID := events[0].RunID
	if runID == "" {
		t.Error("expected a run ID on trace events")
	}
	stages := map[trace.Stage]bool{}
	for _, e := range events {
		if e.RunID != runID {
			t.Errorf("expected constant run ID, got %s and %s", runID, e.RunID)
		}
		stages[e.Stage] = true
	}
	for _, stage := range []trace.Stage{trace.StageParse, trace.StageBuild, trace.StageSave} {
		if !stages[stage] {
			t.Errorf("expected a %s event in the trace", stage)
		}
	}
}

func TestRunGenerate_HelpFlag(t *testing.T) {
	stdout := &bytes.Buffer{}
	stderr := &bytes.Buffer{}

	exitCode := RunGenerate([]string{"-h"}, stdout, stderr)

	if exitCode != exitSuccess {
		t.Errorf("expected exit code %d, got %d", exitSuccess, exitCode)
	}
	if !strings.Contains(stdout.String(), "Usage:") {
		t.Errorf("expected usage in stdout, got: %s", stdout.String())
	}
}

func TestRunGenerate_Verbose(t *testing.T) {
	stdout := &bytes.Buffer{}
	stderr := &bytes.Buffer{}
	outPath := filepath.Join(t.TempDir(), "out.json")

	exitCode := RunGenerate([]string{
		"-f", "../../../testdata/health-pot.json",
		"-o", outPath,
		"-v",
		testURN,
	}, stdout, stderr)

	if exitCode != exitSuccess {
		t.Fatalf("expected exit code %d, got %d\nstderr: %s", exitSuccess, exitCode, stderr.String())
	}
	if !strings.Contains(stderr.String(), "mapping built") {
		t.Errorf("expected debug logging in stderr, got: %s", stderr.String())
	}
}
