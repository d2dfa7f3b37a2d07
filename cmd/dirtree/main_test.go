package main_test

import (
	"bytes"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"strings"
	"testing"
)

// #nosec G204
func buildBinary(testSetup *testing.T) string {
	testSetup.Helper()
	if testing.Short() {
		testSetup.Skip("binary integration tests are skipped in short mode")
	}
	binaryName := "dirtree_integration_test_binary"
	if runtime.GOOS == "windows" {
		binaryName += ".exe"
	}
	binaryPath := filepath.Join(testSetup.TempDir(), binaryName)

	currentDirectory, directoryError := os.Getwd()
	if directoryError != nil {
		testSetup.Fatalf("Failed to get current working directory: %v", directoryError)
	}
	moduleRoot := filepath.Dir(filepath.Dir(currentDirectory))

	buildCommand := exec.Command("go", "build", "-o", binaryPath, "./cmd/dirtree")
	buildCommand.Dir = moduleRoot
	outputData, buildErr := buildCommand.CombinedOutput()
	if buildErr != nil {
		testSetup.Fatalf("Failed to build binary in %s: %v\nBuild Output:\n%s", moduleRoot, buildErr, string(outputData))
	}
	return binaryPath
}

type commandOutcome struct {
	stdout   string
	stderr   string
	exitCode int
}

// #nosec G204
func runBinary(testSetup *testing.T, binaryPath string, arguments ...string) commandOutcome {
	testSetup.Helper()
	command := exec.Command(binaryPath, arguments...)
	command.Dir = testSetup.TempDir()
	command.Env = append(os.Environ(), "HOME="+testSetup.TempDir())

	var standardOutputBuffer, standardErrorBuffer bytes.Buffer
	command.Stdout = &standardOutputBuffer
	command.Stderr = &standardErrorBuffer

	outcome := commandOutcome{}
	if runError := command.Run(); runError != nil {
		exitError, isExitError := runError.(*exec.ExitError)
		if !isExitError {
			testSetup.Fatalf("failed to run %s: %v", binaryPath, runError)
		}
		outcome.exitCode = exitError.ExitCode()
	}
	outcome.stdout = standardOutputBuffer.String()
	outcome.stderr = standardErrorBuffer.String()
	return outcome
}

func setupTestDirectory(testSetup *testing.T, directoryStructure map[string]string) string {
	testSetup.Helper()
	rootDirectory := testSetup.TempDir()
	for relativePath, content := range directoryStructure {
		fullPath := filepath.Join(rootDirectory, relativePath)
		if err := os.MkdirAll(filepath.Dir(fullPath), 0o755); err != nil {
			testSetup.Fatalf("Failed to create directory for %s: %v", fullPath, err)
		}
		if err := os.WriteFile(fullPath, []byte(content), 0o644); err != nil {
			testSetup.Fatalf("Failed to write %s: %v", fullPath, err)
		}
	}
	return rootDirectory
}

func TestBinaryExitBehavior(testInstance *testing.T) {
	binaryPath := buildBinary(testInstance)
	rootDirectory := setupTestDirectory(testInstance, map[string]string{
		"a.txt":     "0123456789",
		".b.txt":    "01234",
		"sub/c.txt": "abc",
	})

	testCases := []struct {
		name           string
		arguments      []string
		expectedStdout string
		expectFailure  bool
	}{
		{
			name:           "renders_scenario",
			arguments:      []string{rootDirectory},
			expectedStdout: "├── a.txt (10 bytes)\n└── sub/\n    └── c.txt (3 bytes)\n",
		},
		{
			name:          "rejects_conflicting_filters",
			arguments:     []string{"-d", "-f", rootDirectory},
			expectFailure: true,
		},
		{
			name:          "rejects_non_integer_depth",
			arguments:     []string{"-s", "x", rootDirectory},
			expectFailure: true,
		},
		{
			name:          "fails_on_missing_directory",
			arguments:     []string{filepath.Join(rootDirectory, "absent")},
			expectFailure: true,
		},
	}

	for _, testCase := range testCases {
		testInstance.Run(testCase.name, func(subTest *testing.T) {
			outcome := runBinary(subTest, binaryPath, testCase.arguments...)
			if testCase.expectFailure {
				if outcome.exitCode == 0 {
					subTest.Fatalf("expected non-zero exit, stdout:\n%s", outcome.stdout)
				}
				if outcome.stdout != "" {
					subTest.Fatalf("expected no tree output on failure, got:\n%s", outcome.stdout)
				}
				if !strings.Contains(outcome.stderr, "dirtree failed") {
					subTest.Fatalf("expected failure message on stderr, got:\n%s", outcome.stderr)
				}
				return
			}
			if outcome.exitCode != 0 {
				subTest.Fatalf("unexpected exit code %d, stderr:\n%s", outcome.exitCode, outcome.stderr)
			}
			if outcome.stdout != testCase.expectedStdout {
				subTest.Fatalf("unexpected output:\n%s", outcome.stdout)
			}
		})
	}
}

func TestVersionFlag(testInstance *testing.T) {
	binaryPath := buildBinary(testInstance)
	outcome := runBinary(testInstance, binaryPath, "--version")
	if outcome.exitCode != 0 {
		testInstance.Fatalf("--version exited with %d: %s", outcome.exitCode, outcome.stderr)
	}
	if !strings.HasPrefix(outcome.stdout, "dirtree version: ") {
		testInstance.Fatalf("unexpected version output: %q", outcome.stdout)
	}
}
