package cli

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func Test_Build_ComposesEveryTopic_When_AllTopicsValid(t *testing.T) {
	t.Parallel()

	r := NewCLI(t)
	writeWorkspaceFile(t, r.Dir, "docs/alpha/docs.md", "# Alpha\n")
	writeWorkspaceFile(t, r.Dir, "docs/beta/docs.md", "# Beta\n")
	writeWorkspaceFile(t, r.Dir, "docs/beta/examples.md", "## Examples\n")

	out, errOut, code := r.Run("build")
	if code != 0 {
		t.Fatalf("exit = %d, stderr = %q", code, errOut)
	}

	if !strings.Contains(out, "composed alpha ->") || !strings.Contains(out, "composed beta ->") {
		t.Fatalf("output = %q", out)
	}

	alpha, err := os.ReadFile(filepath.Join(r.Dir, "dist", "alpha.md"))
	if err != nil {
		t.Fatalf("read alpha: %v", err)
	}

	if string(alpha) != "# Alpha\n" {
		t.Fatalf("alpha = %q", alpha)
	}

	beta, err := os.ReadFile(filepath.Join(r.Dir, "dist", "beta.md"))
	if err != nil {
		t.Fatalf("read beta: %v", err)
	}

	if string(beta) != "# Beta\n\n---\n\n## Examples\n" {
		t.Fatalf("beta = %q", beta)
	}
}

func Test_Build_WritesToCustomDir_When_OutDirFlagGiven(t *testing.T) {
	t.Parallel()

	r := NewCLI(t)
	writeWorkspaceFile(t, r.Dir, "docs/alpha/docs.md", "# Alpha\n")

	_, errOut, code := r.Run("build", "-o", "public")
	if code != 0 {
		t.Fatalf("exit = %d, stderr = %q", code, errOut)
	}

	if _, err := os.Stat(filepath.Join(r.Dir, "public", "alpha.md")); err != nil {
		t.Fatalf("stat: %v", err)
	}
}

func Test_Build_KeepsGoodTopics_When_OneTopicBroken(t *testing.T) {
	t.Parallel()

	r := NewCLI(t)
	writeWorkspaceFile(t, r.Dir, "docs/good/docs.md", "# Good\n")
	writeWorkspaceFile(t, r.Dir, "docs/bad/docs.md", "@include(missing.md)\n")

	_, errOut, code := r.Run("build")
	if code != 1 {
		t.Fatalf("exit = %d", code)
	}

	if !strings.Contains(errOut, "compose bad failed") {
		t.Fatalf("stderr = %q", errOut)
	}

	// The broken topic must not produce a file; the good one still does.
	if _, err := os.Stat(filepath.Join(r.Dir, "dist", "bad.md")); !os.IsNotExist(err) {
		t.Fatalf("bad.md written despite failure: %v", err)
	}

	if _, err := os.Stat(filepath.Join(r.Dir, "dist", "good.md")); err != nil {
		t.Fatalf("good.md missing: %v", err)
	}
}

func Test_Build_ReportsNothingToDo_When_NoTopicsFound(t *testing.T) {
	t.Parallel()

	r := NewCLI(t)
	writeWorkspaceFile(t, r.Dir, "docs/readme.txt", "not a topic\n")

	out, _, code := r.Run("build")
	if code != 0 {
		t.Fatalf("exit = %d", code)
	}

	if !strings.Contains(out, "no topics found under") {
		t.Fatalf("output = %q", out)
	}
}
