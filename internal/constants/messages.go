package constants

// Progress lines printed to stdout. Step 4 is labelled twice on purpose:
// the VIM and screen steps have always shared the same number.
const (
	Banner = "=== Archlinux Post Install Patch ==="

	LabelInit   = "INIT"
	LabelHash   = "1"
	LabelPrompt = "2"
	LabelSSH    = "3"
	LabelVim    = "4"
	LabelScreen = "4"

	TitleInit   = "Install Useful packages"
	TitleHash   = "Security Correction md5 -> sha512 hash method"
	TitlePrompt = "Nicer shell prompt and useful aliases (system wide)"
	TitleSSH    = "Enables Visual Host Key Feature"
	TitleVim    = "Enables Visual Options in VIM"
	TitleScreen = "Screen Nice Term and Scrollback"

	NotRootMessage     = "You have to be root to run the post install patch"
	InstallingPackages = "Installing the following packages : "
)
