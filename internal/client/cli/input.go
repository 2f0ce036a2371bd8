package cli

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"golang.org/x/term"
)

// GetSimpleText prompts for a single line of input and returns it trimmed.
func GetSimpleText(reader *bufio.Reader, prompt string, out io.Writer) (string, error) {
	fmt.Fprintf(out, "%s: ", prompt)
	line, err := reader.ReadString('\n')
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(line), nil
}

// GetPassword prompts for a password without echoing it.
func GetPassword(prompt string, out io.Writer) (string, error) {
	fmt.Fprintf(out, "%s: ", prompt)
	password, err := term.ReadPassword(int(os.Stdin.Fd()))
	fmt.Fprintln(out)
	if err != nil {
		return "", err
	}
	return string(password), nil
}
