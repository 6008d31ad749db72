package cli

import (
	"bytes"
	"context"
	"io"
	"strings"
	"testing"
)

func complete(t *testing.T, args ...string) string {
	t.Helper()
	root := New(io.Discard, LogInfo).RootCommand()
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetErr(io.Discard)
	root.SetArgs(append([]string{"__complete"}, args...))
	if err := root.ExecuteContext(context.Background()); err != nil {
		t.Fatalf("complete %v: %v", args, err)
	}
	return out.String()
}

func TestCompletionScripts(t *testing.T) {
	for _, shell := range []string{"bash", "zsh", "fish", "powershell"} {
		t.Run(shell, func(t *testing.T) {
			root := New(io.Discard, LogInfo).RootCommand()
			var out bytes.Buffer
			root.SetOut(&out)
			root.SetArgs([]string{"completion", shell})
			if err := root.ExecuteContext(context.Background()); err != nil {
				t.Fatal(err)
			}
			if !strings.Contains(out.String(), "skyline") {
				t.Errorf("%s script does not mention skyline", shell)
			}
		})
	}
}

func TestCompleteFlags(t *testing.T) {
	tests := []struct {
		name    string
		args    []string
		want    []string
		notWant []string
	}{
		{"sides", []string{"building", "--side", ""}, []string{"north", "east", "south", "west"}, nil},
		{"formats", []string{"grid", "-f", ""}, []string{"svg", "json", "txt"}, nil},
		{"format list", []string{"lattice", "-f", "svg,"}, []string{"svg,json", "svg,txt"}, []string{"svg,svg"}},
		{"explore variants", []string{"explore", ""}, []string{"grid", "lattice", "stack"}, nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := strings.Split(complete(t, tt.args...), "\n")
			for _, w := range tt.want {
				if !containsLine(got, w) {
					t.Errorf("completions %q lack %q", got, w)
				}
			}
			for _, w := range tt.notWant {
				if containsLine(got, w) {
					t.Errorf("completions %q offer %q", got, w)
				}
			}
		})
	}
}

func containsLine(lines []string, want string) bool {
	for _, l := range lines {
		if l == want || strings.HasPrefix(l, want+"\t") {
			return true
		}
	}
	return false
}
