// Package ansi prepares the console for ANSI escape sequences.
package ansi
