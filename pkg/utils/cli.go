package utils

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/pkg/errors"
	"golang.org/x/term"
)

// Ask reads a line from stdin until validate accepts it. An empty answer is
// returned as is when allowEmpty is set.
func Ask(
	ctx context.Context,
	question string,
	allowEmpty bool,
	validate func(string) (bool, string, error),
) (string, error) {
	fmt.Println("")
	reader := bufio.NewReader(os.Stdin)

	for {
		if ctx.Err() != nil {
			return "", ctx.Err()
		}

		fmt.Print(question)

		result, err := reader.ReadString('\n')
		if err != nil {
			return result, errors.WithMessage(err, "failed to read string")
		}
		result = strings.TrimSpace(result)

		if allowEmpty && result == "" {
			return result, nil
		}

		if validate != nil {
			ok, message, err := validate(result)
			if err != nil {
				return result, err
			}
			if !ok {
				fmt.Println(message)

				continue
			}
		}

		if result != "" {
			return result, nil
		}
	}
}

// AskPassword reads a password without echo. Falls back to a regular
// prompt when stdin is not a terminal.
func AskPassword(ctx context.Context, question string) (string, error) {
	stdinFd := int(os.Stdin.Fd())

	if !term.IsTerminal(stdinFd) {
		return Ask(ctx, question, true, nil)
	}

	fmt.Print(question)

	passwordBytes, err := term.ReadPassword(stdinFd)
	fmt.Println("")
	if err != nil {
		return "", errors.WithMessage(err, "failed to read password")
	}

	return strings.TrimSpace(string(passwordBytes)), nil
}
