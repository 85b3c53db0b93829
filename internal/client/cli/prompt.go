package cli

import (
	"bufio"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/term"
)

// readPassword читает пароль интерактивно из терминала со скрытым вводом.
//
// Если stdin не терминал, пароль нужно передать флагом --password.
// Пустой пароль считается ошибкой.
func readPassword(cmd *cobra.Command, prompt string) (string, error) {
	fd := int(os.Stdin.Fd())
	if !term.IsTerminal(fd) {
		return "", errors.New("stdin is not a terminal; use --password")
	}

	fmt.Fprint(cmd.ErrOrStderr(), prompt)
	pwBytes, err := term.ReadPassword(fd)
	fmt.Fprintln(cmd.ErrOrStderr())
	if err != nil {
		return "", fmt.Errorf("read password: %w", err)
	}

	pw := strings.TrimRight(string(pwBytes), "\r\n")
	if pw == "" {
		return "", errors.New("empty password")
	}
	return pw, nil
}

// promptConfirmer спрашивает подтверждение y/N в stdin команды.
type promptConfirmer struct {
	cmd *cobra.Command
}

func (p *promptConfirmer) Confirm(prompt string) bool {
	fmt.Fprintf(p.cmd.ErrOrStderr(), "%s [y/N]: ", prompt)

	line, err := bufio.NewReader(p.cmd.InOrStdin()).ReadString('\n')
	if err != nil && line == "" {
		return false
	}
	switch strings.ToLower(strings.TrimSpace(line)) {
	case "y", "yes", "s", "sim":
		return true
	default:
		return false
	}
}
