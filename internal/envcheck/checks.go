// Package envcheck verifies that the course toolchain is installed: commands
// on PATH, Python packages, SDK paths and editor extensions.
package envcheck

// Kind names the family a check belongs to.
type Kind string

const (
	KindCommand   Kind = "command"
	KindPackage   Kind = "package"
	KindEnvPath   Kind = "env-path"
	KindExtension Kind = "vscode-ext"
)

// Status is the outcome of a single check.
type Status string

const (
	StatusFound   Status = "FOUND"
	StatusMissing Status = "MISSING"
	StatusError   Status = "ERROR"
	StatusSkipped Status = "SKIPPED"
)

// CommandCheck looks a command up on PATH and records its version line.
type CommandCheck struct {
	Command  string
	Label    string
	Required bool
	// VersionArgs defaults to --version when empty.
	VersionArgs []string
}

// PackageCheck asks the Python interpreter whether ImportName is importable
// and which version of Distribution is installed.
type PackageCheck struct {
	Distribution string
	ImportName   string
	Label        string
	Required     bool
}

// EnvPathCheck requires EnvVar to name an existing directory, optionally
// containing MustContain.
type EnvPathCheck struct {
	EnvVar      string
	Label       string
	Required    bool
	MustContain string
}

// ExtensionCheck looks for an installed VS Code extension.
type ExtensionCheck struct {
	ExtensionID string
	Label       string
	Required    bool
}

// Checks is the full set of checks run by a Checker.
type Checks struct {
	Commands   []CommandCheck
	Packages   []PackageCheck
	EnvPaths   []EnvPathCheck
	Extensions []ExtensionCheck
}

// Count returns the number of individual checks.
func (c Checks) Count() int {
	return len(c.Commands) + len(c.Packages) + len(c.EnvPaths) + len(c.Extensions)
}

// DefaultChecks returns a fresh copy of the course toolchain checks.
func DefaultChecks() Checks {
	return Checks{
		Commands: []CommandCheck{
			{Command: "git", Label: "Git", Required: true},
			{Command: "python3", Label: "Python 3", Required: true},
			{Command: "cmake", Label: "CMake", Required: true},
			{Command: "ninja", Label: "Ninja"},
			{Command: "arm-none-eabi-gcc", Label: "ARM GCC toolchain"},
			{Command: "picotool", Label: "picotool", VersionArgs: []string{"version"}},
			{Command: "mpremote", Label: "mpremote (command)"},
			{Command: "code", Label: "VS Code CLI (code)"},
		},
		Packages: []PackageCheck{
			{Distribution: "pyserial", ImportName: "serial", Label: "pyserial (Python package)"},
			{Distribution: "mpremote", ImportName: "mpremote", Label: "mpremote (Python package)"},
		},
		EnvPaths: []EnvPathCheck{
			{
				EnvVar:      "PICO_SDK_PATH",
				Label:       "pico-sdk path (PICO_SDK_PATH)",
				MustContain: "external/pico_sdk_import.cmake",
			},
		},
		Extensions: []ExtensionCheck{
			{ExtensionID: "ms-python.python", Label: "VS Code extension: ms-python.python"},
			{ExtensionID: "ms-vscode.cpptools", Label: "VS Code extension: ms-vscode.cpptools"},
			{ExtensionID: "ms-vscode.cmake-tools", Label: "VS Code extension: ms-vscode.cmake-tools"},
		},
	}
}
