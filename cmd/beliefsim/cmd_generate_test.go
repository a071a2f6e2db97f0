package main

import (
	"bytes"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestGenerateCmd_Stdout(t *testing.T) {
	var out bytes.Buffer
	rootCmd := newTestRootCmd()
	rootCmd.AddCommand(newGenerateCmd())
	rootCmd.SetOut(&out)
	rootCmd.SetArgs([]string{"generate", "--agents", "3", "--seed", "5"})
	if err := rootCmd.Execute(); err != nil {
		t.Fatalf("generate failed: %v", err)
	}
	text := out.String()
	if !strings.Contains(text, "name: generated") || !strings.Contains(text, "agent-02") {
		t.Errorf("generate output:\n%s", text)
	}
}

func TestGenerateCmd_FileValidates(t *testing.T) {
	path := filepath.Join(t.TempDir(), "generated.yaml")

	rootCmd := newTestRootCmd()
	rootCmd.AddCommand(newGenerateCmd())
	rootCmd.SetOut(io.Discard)
	rootCmd.SetArgs([]string{"generate", "--agents", "4", "--seed", "5", "-o", path})
	if err := rootCmd.Execute(); err != nil {
		t.Fatalf("generate failed: %v", err)
	}
	if _, err := os.Stat(path); err != nil {
		t.Fatalf("output file missing: %v", err)
	}

	var out bytes.Buffer
	rootCmd2 := newTestRootCmd()
	rootCmd2.AddCommand(newValidateCmd())
	rootCmd2.SetOut(&out)
	rootCmd2.SetArgs([]string{"validate", path})
	if err := rootCmd2.Execute(); err != nil {
		t.Fatalf("generated scenario fails validation: %v", err)
	}
}
