package app

import "os"

// shellFromEnv mirrors the teacher's shell-discovery fallback: prefer
// $SHELL, the variable every login shell sets, over a hardcoded guess.
func shellFromEnv() string {
	return os.Getenv("SHELL")
}

func defaultShell() string {
	if sh := shellFromEnv(); sh != "" {
		return sh
	}
	return "/bin/sh"
}
