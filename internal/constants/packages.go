package constants

// PacmanBinary is the package manager invoked by the installer.
const PacmanBinary = "pacman"

// DefaultPackages returns the install set in the order it is queried.
func DefaultPackages() []string {
	return []string{
		"screen",
		"sudo",
		"vim",
		"bash-completion",
		"tree",
		"ruby",
		"figlet",
		"cowsay",
		"metalog",
		"ncdu",
		"net-tools",
		"ntp",
		"sqlite",
	}
}
