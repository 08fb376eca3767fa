package cli

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func Test_Render_EmitsHTMLToStdout_When_NoOutputFlag(t *testing.T) {
	t.Parallel()

	r := NewCLI(t)
	writeWorkspaceFile(t, r.Dir, "docs/guide/docs.md", "# Guide\n\nSome **bold** text.\n")

	out, errOut, code := r.Run("render", "guide")
	if code != 0 {
		t.Fatalf("exit = %d, stderr = %q", code, errOut)
	}

	if !strings.HasPrefix(out, "<!doctype html>") {
		t.Fatalf("output = %q", out)
	}

	if !strings.Contains(out, "<strong>bold</strong>") {
		t.Fatalf("markdown not rendered:\n%s", out)
	}
}

func Test_Render_WritesFile_When_OutputFlagGiven(t *testing.T) {
	t.Parallel()

	r := NewCLI(t)
	writeWorkspaceFile(t, r.Dir, "docs/guide/docs.md", "# Guide\n")

	out, errOut, code := r.Run("render", "-o", "guide.html", "guide")
	if code != 0 {
		t.Fatalf("exit = %d, stderr = %q", code, errOut)
	}

	if !strings.Contains(out, "rendered guide ->") {
		t.Fatalf("output = %q", out)
	}

	page, err := os.ReadFile(filepath.Join(r.Dir, "guide.html"))
	if err != nil {
		t.Fatalf("read html: %v", err)
	}

	if !strings.Contains(string(page), "<h1 id=\"guide\">Guide</h1>") {
		t.Fatalf("html = %q", page)
	}
}

func Test_Render_Fails_When_TopicBroken(t *testing.T) {
	t.Parallel()

	r := NewCLI(t)
	writeWorkspaceFile(t, r.Dir, "docs/guide/docs.md", "@include(gone.md)\n")

	out, _, code := r.Run("render", "guide")
	if code != 1 {
		t.Fatalf("exit = %d", code)
	}

	if out != "" {
		t.Fatalf("partial output on failure: %q", out)
	}
}

func Test_Preview_PrintsHelp_When_HelpFlagGiven(t *testing.T) {
	t.Parallel()

	r := NewCLI(t)

	out, _, code := r.Run("preview", "--help")
	if code != 0 {
		t.Fatalf("exit = %d", code)
	}

	if !strings.Contains(out, "Usage: dw preview") {
		t.Fatalf("output = %q", out)
	}
}

func Test_Preview_Fails_When_TopicDirMissing(t *testing.T) {
	t.Parallel()

	r := NewCLI(t)

	_, errOut, code := r.Run("preview", "nope")
	if code != 1 {
		t.Fatalf("exit = %d", code)
	}

	if !strings.Contains(errOut, "not found") {
		t.Fatalf("stderr = %q", errOut)
	}
}

func Test_Watch_PrintsHelp_When_HelpFlagGiven(t *testing.T) {
	t.Parallel()

	r := NewCLI(t)

	out, _, code := r.Run("watch", "--help")
	if code != 0 {
		t.Fatalf("exit = %d", code)
	}

	if !strings.Contains(out, "Usage: dw watch") {
		t.Fatalf("output = %q", out)
	}
}

func Test_Watch_Fails_When_TopicDirArgumentOmitted(t *testing.T) {
	t.Parallel()

	r := NewCLI(t)

	_, errOut, code := r.Run("watch")
	if code != 1 {
		t.Fatalf("exit = %d", code)
	}

	if !strings.Contains(errOut, "topic directory is required") {
		t.Fatalf("stderr = %q", errOut)
	}
}
