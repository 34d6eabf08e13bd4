package main

import (
	"bufio"
	"fmt"
	"os"
	"strings"
)

func readLine(r *bufio.Reader, prompt string) string {
	fmt.Print(prompt)
	t, _ := r.ReadString('\n')
	return strings.TrimSpace(t)
}

func yes(s string) bool { return s == "y" || s == "yes" || s == "д" || s == "да" }

func must(err error, msg string) {
	if err != nil {
		die(msg + ": " + err.Error())
	}
}

// die prints an error and waits for Enter before exiting.
// This prevents instant console close on Windows double-click runs.
func die(message string) {
	fmt.Fprintln(os.Stderr, "Error:", message)
	fmt.Fprint(os.Stderr, "Exit now? Press Enter to close...")
	_, _ = bufio.NewReader(os.Stdin).ReadBytes('\n')
	os.Exit(1)
}
