package constants

// Hash method patch.
const (
	MD5Pattern          = "md5"
	SHA512Replacement   = "sha512"
	EncryptMethodSHA512 = "ENCRYPT_METHOD sha512"
)

// PromptPattern matches a single-quoted PS1 assignment on one line.
const PromptPattern = `PS1='.*'`

// BetterPrompt replaces the distribution prompt. Its PS1 lines keep the
// single quotes so they still match PromptPattern.
const BetterPrompt = `# Gives a nice colored PS1 prompt with root/user

if [[ ${EUID} == 0 ]] ; then
    PS1='\[\033[01;31m\]\h\[\033[01;34m\] \W \$\[\033[00m\] '
else
    PS1='\[\033[01;32m\]\u@\h\[\033[01;34m\] \w \$\[\033[00m\] '
fi

# Aliases to get color output + ll shortcut
alias ls='ls --color=auto'
alias grep='grep --colour=auto'
alias ll='ls -la'
`

// SSH visual host key patch.
const (
	VisualHostKeyDefault = "#   VisualHostKey no"
	VisualHostKeyOn      = "VisualHostKey yes"
)

// VimVisual is appended to the global vimrc.
const VimVisual = `syntax on
set number
set expandtab
set tabstop=4`

// ScreenVisual is appended to the global screenrc.
const ScreenVisual = `vbell off
startup_message off
caption always "%H %?%{+b kw}%-Lw%?%{yK}%n*%f %t%?(%u)%?%?%{wk}%+Lw%? %{gk}%=%c %{yk}%D %d %M %Y"
termcapinfo xterm-256color|xterm-color|xterm|xterms|xs|rxvt ti@:te@`
