package testutil

import "time"

// Test user information used across all test helpers.
const (
	// TestAuthor is the default author name for test commits.
	TestAuthor = "Test User"

	// TestEmail is the default email for test commits.
	TestEmail = "test@example.com"
)

// Test repository URLs.
const (
	// TestRepoURL is a sample HTTPS repository URL for testing.
	TestRepoURL = "https://github.com/test/repo.git"

	// TestRepoSSHURL is a sample SSH repository URL for testing.
	TestRepoSSHURL = "git@github.com:test/repo.git"
)

// Test file content.
const (
	// TestFilePath is a standard test file path.
	TestFilePath = "README.md"

	// TestFileContent is sample content for README files.
	TestFileContent = "# Test Repository\n\nThis is a test repository.\n"
)

// Test commit messages.
const (
	// TestInitialCommit is a message for initial commits.
	TestInitialCommit = "Initial commit"

	// TestCommitMessage is a standard test commit message.
	TestCommitMessage = "Test commit"
)

// BaseTime is the timestamp of the first commit in source repositories built
// by NewSourceRepo. Later commits are spaced one hour apart.
var BaseTime = time.Date(2020, time.January, 1, 12, 0, 0, 0, time.UTC)
