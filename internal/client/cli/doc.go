// Package cli provides the interactive IgniteGym command-line client.
//
// It is a thin presentation layer over the session store and the client
// services: it reads commands and form values from the terminal, renders
// results and prints field validation messages next to the prompt. Every
// other failure is reported by the notifier the core was built with.
//
// Commands:
//   - register, login, logout, whoami
//   - profile (edit name and password), avatar <path> (pick a new avatar)
//   - groups, exercises <group>, exercise <id>, done <id>, history
//
// The REPL is started via App.Run(ctx), which blocks until the user exits.
package cli
