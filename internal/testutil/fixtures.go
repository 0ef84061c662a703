package testutil

import (
	"path/filepath"
	"testing"

	"github.com/spf13/afero"
)

// Representative pre-edit content of the files archpatch touches, taken from
// a stock Arch Linux install.
const (
	PamPasswd = `#%PAM-1.0
#password	required	pam_cracklib.so difok=2 minlen=8 dcredit=2 ocredit=2 retry=3
#password	required	pam_unix.so md5 shadow use_authtok
password	required	pam_unix.so md5 shadow nullok
`

	LoginDefs = `#
# /etc/login.defs - Configuration control definitions for the login package.
#
MAIL_DIR	/var/spool/mail
UMASK		077
`

	Bashrc = `#
# /etc/bash.bashrc
#

# If not running interactively, don't do anything
[[ $- != *i* ]] && return

PS1='[\u@\h \W]\$ '
PS2='> '
PS3='> '
PS4='+ '
`

	SSHConfig = `# Host *
#   ForwardAgent no
#   ForwardX11 no
#   PasswordAuthentication yes
#   VisualHostKey no
#   ProxyCommand ssh -q -W %h:%p gateway.example.com
`

	Vimrc = `" All system-wide defaults are set in $VIMRUNTIME/archlinux.vim
runtime! archlinux.vim
`

	Screenrc = `# GNU Screen - main configuration file
defscrollback 1000
`
)

// EtcFiles maps each target path to its seed content.
func EtcFiles() map[string]string {
	return map[string]string{
		"/etc/pam.d/passwd":   PamPasswd,
		"/etc/login.defs":     LoginDefs,
		"/etc/bash.bashrc":    Bashrc,
		"/etc/ssh/ssh_config": SSHConfig,
		"/etc/vimrc":          Vimrc,
		"/etc/screenrc":       Screenrc,
	}
}

// SeedEtc writes the stub /etc tree under root on fs.
func SeedEtc(t *testing.T, fs afero.Fs, root string) {
	t.Helper()

	for path, content := range EtcFiles() {
		full := filepath.Join(root, path)
		if err := fs.MkdirAll(filepath.Dir(full), 0o755); err != nil {
			t.Fatalf("Failed to create %s: %v", filepath.Dir(full), err)
		}
		if err := afero.WriteFile(fs, full, []byte(content), 0o644); err != nil {
			t.Fatalf("Failed to seed %s: %v", full, err)
		}
	}
}

// ReadString reads a file from fs, failing the test on error.
func ReadString(t *testing.T, fs afero.Fs, path string) string {
	t.Helper()

	data, err := afero.ReadFile(fs, path)
	if err != nil {
		t.Fatalf("Failed to read %s: %v", path, err)
	}
	return string(data)
}
