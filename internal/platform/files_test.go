package platform

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestCreateDirectoryIfNotExists(t *testing.T) {
	tempDir := t.TempDir()
	testDir := filepath.Join(tempDir, "test_dir")

	// Directory should not exist initially
	if _, err := os.Stat(testDir); !os.IsNotExist(err) {
		t.Fatalf("Test directory already exists: %s", testDir)
	}

	// Create directory
	err := CreateDirectoryIfNotExists(testDir)
	if err != nil {
		t.Fatalf("Failed to create directory: %v", err)
	}

	// Directory should now exist
	if _, err := os.Stat(testDir); os.IsNotExist(err) {
		t.Fatalf("Directory was not created: %s", testDir)
	}

	// Second call should not fail
	err = CreateDirectoryIfNotExists(testDir)
	if err != nil {
		t.Fatalf("Failed to handle existing directory: %v", err)
	}
}

func TestCreateDirectoryIfNotExists_Nested(t *testing.T) {
	tempDir := t.TempDir()
	nested := filepath.Join(tempDir, "a", "b", "c")

	if err := CreateDirectoryIfNotExists(nested); err != nil {
		t.Fatalf("Failed to create nested directory: %v", err)
	}

	if _, err := os.Stat(nested); err != nil {
		t.Fatalf("Nested directory was not created: %v", err)
	}
}

func TestOpenDirectory_NonExistent(t *testing.T) {
	tempDir := t.TempDir()
	missing := filepath.Join(tempDir, "missing")

	err := OpenDirectory(missing)
	if err == nil {
		t.Error("Expected error for non-existent directory, got nil")
	}
	if err != nil && !strings.Contains(err.Error(), "directory does not exist") {
		t.Errorf("Error message should contain 'directory does not exist', got: %v", err)
	}
}
