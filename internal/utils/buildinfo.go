// Package utils provides helper functions, including version retrieval.
package utils

import (
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"runtime/debug"
	"strings"
)

const (
	unknownVersion = "unknown"
	develVersion   = "(devel)"
)

// Version is stamped at link time with -ldflags "-X github.com/temirov/dirtree/internal/utils.Version=v1.2.3".
var Version = EmptyString

// GetApplicationVersion attempts to determine the application version using various methods.
// It checks the link-time stamp, then Go build info, then falls back to git describe.
func GetApplicationVersion() string {
	if Version != EmptyString {
		return Version
	}

	buildInfo, buildInfoAvailable := debug.ReadBuildInfo()
	if buildInfoAvailable && buildInfo.Main.Version != EmptyString && buildInfo.Main.Version != develVersion {
		return buildInfo.Main.Version
	}

	gitDirectoryPath, gitDirectoryError := findGitDirectory(".")
	if gitDirectoryError != nil {
		return unknownVersion
	}
	if exactTag := describeRevision(gitDirectoryPath, "--tags", "--exact-match"); exactTag != EmptyString {
		return exactTag
	}
	if longDescription := describeRevision(gitDirectoryPath, "--tags", "--long", "--dirty"); longDescription != EmptyString {
		return longDescription
	}
	return unknownVersion
}

// describeRevision runs git describe with the given arguments and returns its trimmed output.
func describeRevision(repositoryDirectory string, arguments ...string) string {
	// #nosec G204
	describeCommand := exec.Command("git", append([]string{"describe"}, arguments...)...)
	describeCommand.Dir = repositoryDirectory
	describeOutput, describeError := describeCommand.Output()
	if describeError != nil {
		return EmptyString
	}
	return strings.TrimSpace(string(describeOutput))
}

// findGitDirectory searches upward from the provided starting directory
// until it locates a directory containing the .git folder.
func findGitDirectory(startDirectory string) (string, error) {
	absoluteStartDirectory, errorAbsolute := filepath.Abs(startDirectory)
	if errorAbsolute != nil {
		return EmptyString, fmt.Errorf("failed to get absolute path for %s: %w", startDirectory, errorAbsolute)
	}

	currentDirectory := absoluteStartDirectory
	for {
		fileInformation, errorStat := os.Stat(filepath.Join(currentDirectory, GitDirectoryName))
		if errorStat == nil && fileInformation.IsDir() {
			return currentDirectory, nil
		}

		parentDirectory := filepath.Dir(currentDirectory)
		if parentDirectory == currentDirectory {
			break
		}
		currentDirectory = parentDirectory
	}

	return EmptyString, fmt.Errorf(".git directory not found in or above %s", absoluteStartDirectory)
}
