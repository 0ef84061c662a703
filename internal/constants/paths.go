// Package constants contains the fixed targets, payloads and file names used by archpatch.
package constants

const (
	// AppName is the application name used for XDG directory paths.
	AppName = "archpatch"

	// LogFilename is the default log file name for archpatch.
	LogFilename = "archpatch.log"

	// HistoryFilename is the run journal database file name.
	HistoryFilename = "history.db"

	// BackupSuffix is appended to a target path when --backup is set.
	BackupSuffix = ".bak"
)

// Target files touched by the patch steps.
const (
	// PamPasswdPath is the PAM configuration for the passwd service.
	PamPasswdPath = "/etc/pam.d/passwd"

	// LoginDefsPath is the shadow password suite configuration.
	LoginDefsPath = "/etc/login.defs"

	// BashrcPath is the system-wide bash init file.
	BashrcPath = "/etc/bash.bashrc"

	// SSHConfigPath is the system-wide SSH client configuration.
	SSHConfigPath = "/etc/ssh/ssh_config"

	// VimrcPath is the global VIM configuration.
	VimrcPath = "/etc/vimrc"

	// ScreenrcPath is the global GNU screen configuration.
	ScreenrcPath = "/etc/screenrc"
)
