package main

import (
	"bytes"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestGraphCmd_Stdout(t *testing.T) {
	path := writeScenarioFile(t)

	var out bytes.Buffer
	rootCmd := newTestRootCmd()
	rootCmd.AddCommand(newGraphCmd())
	rootCmd.SetOut(&out)
	rootCmd.SetArgs([]string{"graph", path})
	if err := rootCmd.Execute(); err != nil {
		t.Fatalf("graph failed: %v", err)
	}
	text := out.String()
	for _, want := range []string{`digraph "commute"`, `"agent:alice" -> "agent:bob"`} {
		if !strings.Contains(text, want) {
			t.Errorf("graph output missing %q:\n%s", want, text)
		}
	}
}

func TestGraphCmd_OutputFile(t *testing.T) {
	path := writeScenarioFile(t)
	outFile := filepath.Join(t.TempDir(), "graph.dot")

	rootCmd := newTestRootCmd()
	rootCmd.AddCommand(newGraphCmd())
	rootCmd.SetOut(io.Discard)
	rootCmd.SetArgs([]string{"graph", path, "-o", outFile})
	if err := rootCmd.Execute(); err != nil {
		t.Fatalf("graph failed: %v", err)
	}
	data, err := os.ReadFile(outFile)
	if err != nil {
		t.Fatalf("output file missing: %v", err)
	}
	if !strings.Contains(string(data), "digraph") {
		t.Errorf("output file content:\n%s", data)
	}
}
