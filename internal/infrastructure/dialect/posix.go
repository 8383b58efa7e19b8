package dialect

import "github.com/doeshing/ganpi-go/internal/domain"

type posix struct{}

// POSIX targets sh-compatible shells on Linux and macOS.
func POSIX() Dialect {
	return posix{}
}

func (posix) Name() domain.DialectName { return domain.DialectPOSIX }
func (posix) FenceTag() string         { return "bash" }
func (posix) Label() string            { return "shell" }

func (posix) PromptRules() []string {
	return []string{
		"Use safe, standard commands that work on Unix-like systems (Linux/macOS)",
		"For file deletion, use 'rm -f' with explicit paths to avoid confirmation prompts",
		"For folder deletion, use 'rm -rf' with an explicit relative path, never a bare '/' or '~'",
		"Do not use sudo unless the request explicitly needs elevated privileges",
	}
}

func (posix) CommandVerbs() []string {
	return []string{"ls", "cd", "cp", "mv", "rm", "mkdir", "find", "grep", "cat", "echo", "tar", "zip"}
}

func (posix) DefaultRules() domain.RuleTables {
	return domain.RuleTables{
		Forbidden: []string{
			"rm -rf / ",
			"rm -fr / ",
			"rm -rf /* ",
			"rm -rf ~ ",
			"rm -r -f / ",
			"rm -f -r / ",
			"rm --recursive --force / ",
			"rm --force --recursive / ",
			"rm -rf --no-preserve-root",
			"mkfs",
			"fdisk ",
			"parted ",
			"wipefs ",
			":(){ :|:& };:",
			":(){:|:&};:",
			"dd if=/dev/urandom",
			"dd if=/dev/random",
			"dd if=/dev/zero of=/dev/",
			"> /dev/sda",
			"shutdown -h now",
			"shutdown now",
			" poweroff",
			" halt ",
			"init 0",
		},
		Dangerous: []string{
			"sudo ",
			" su ",
			"rm -rf",
			"rm -fr",
			"rm -r ",
			"rm --recursive",
			"chmod 777",
			"chmod -r ",
			"chown root",
			"chown -r ",
			" passwd",
			" dd ",
			"shutdown",
			"reboot",
			"kill -9 ",
			"killall ",
			"curl | sh",
			"| sh ",
			"| bash ",
		},
	}
}

func (posix) Invocation(command string) (string, []string) {
	return "sh", []string{"-c", command}
}
