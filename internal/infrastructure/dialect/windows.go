package dialect

import "github.com/doeshing/ganpi-go/internal/domain"

type windows struct{}

// Windows targets cmd.exe.
func Windows() Dialect {
	return windows{}
}

func (windows) Name() domain.DialectName { return domain.DialectWindows }
func (windows) FenceTag() string         { return "cmd" }
func (windows) Label() string            { return "Windows shell" }

func (windows) PromptRules() []string {
	return []string{
		"Use Windows commands (dir, copy, move, del, etc.)",
		"For folder deletion, use 'rmdir /s /q' to avoid confirmation prompts",
		"For file deletion, use 'del /q' to avoid confirmation prompts",
	}
}

func (windows) CommandVerbs() []string {
	return []string{"dir", "copy", "move", "del", "echo"}
}

// DefaultRules downgrades recursive deletes that carry /q: batch-mode deletion is a
// deliberate scripted choice in cmd.exe.
func (windows) DefaultRules() domain.RuleTables {
	return domain.RuleTables{
		Forbidden: []string{
			"format c:",
			"format d:",
			"diskpart",
			"del /s /q c:\\ ",
			"del /q /s c:\\ ",
			"del /s /q c:\\* ",
			"del /q /s c:\\* ",
			"del /s /q c:\\*.* ",
			"del /q /s c:\\*.* ",
			"rmdir /s /q c:\\ ",
			"rmdir /q /s c:\\ ",
			" rd /s /q c:\\ ",
			" rd /q /s c:\\ ",
			"shutdown /s",
			"shutdown -s",
			"shutdown /p",
			"cipher /w",
		},
		Dangerous: []string{
			" format ",
			"del /s",
			"del /q /s",
			"rmdir /s",
			"rmdir /q /s",
			" rd /s",
			" rd /q /s",
			"shutdown",
			"reboot",
			"runas ",
			"takeown ",
			"icacls ",
			"reg delete",
			"bcdedit",
		},
		QuietFlag:      "/q",
		QuietDowngrade: []string{"del /s", "del /q /s", "rmdir /s", "rmdir /q /s", " rd /s", " rd /q /s"},
	}
}

func (windows) Invocation(command string) (string, []string) {
	return "cmd", []string{"/C", command}
}
