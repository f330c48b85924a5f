package tty

// DefaultCommands is the built-in command-name list the Completer matches
// tab-completion prefixes against. It mirrors the user-space program list
// the console was originally shipped alongside.
var DefaultCommands = []string{
	"cat", "console", "echo", "find_sum", "forktest", "grep", "init",
	"kill", "ln", "ls", "mkdir", "rm", "sh",
	"stressfs", "usertests", "wc", "zombie",
}
