// ABOUTME: Credential collection and sign-in helpers shared by commands
// ABOUTME: Passwords come from stdin or an interactive prompt, never from disk

package cmd

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/huh"
	"github.com/markalston/tally/cli/internal/session"
)

// credentials live only for the duration of one command
type credentials struct {
	username string
	password string
}

// resolveCredentials gathers a username and password from flags, env,
// stdin, and finally an interactive prompt when a terminal is attached
func resolveCredentials(in io.Reader, interactive bool) (credentials, error) {
	creds := credentials{username: GetUsername()}

	if passwordStdin {
		pw, err := readPassword(in)
		if err != nil {
			return creds, err
		}
		creds.password = pw
	}

	if creds.username != "" && creds.password != "" {
		return creds, nil
	}
	if !interactive {
		return creds, fmt.Errorf("username and password required: use --username and --password-stdin")
	}
	if err := promptCredentials(&creds); err != nil {
		return creds, err
	}
	return creds, nil
}

// readPassword reads the first line of in
func readPassword(in io.Reader) (string, error) {
	line, err := bufio.NewReader(in).ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return "", fmt.Errorf("failed to read password from stdin: %w", err)
	}
	pw := strings.TrimRight(line, "\r\n")
	if pw == "" {
		return "", fmt.Errorf("no password on stdin")
	}
	return pw, nil
}

// promptCredentials asks for whatever is still missing
func promptCredentials(creds *credentials) error {
	var fields []huh.Field
	if creds.username == "" {
		fields = append(fields, huh.NewInput().
			Title("Username").
			Value(&creds.username).
			Validate(required("username")))
	}
	if creds.password == "" {
		fields = append(fields, huh.NewInput().
			Title("Password").
			EchoMode(huh.EchoModePassword).
			Value(&creds.password).
			Validate(required("password")))
	}

	form := huh.NewForm(huh.NewGroup(fields...)).WithTheme(huh.ThemeBase())
	return form.Run()
}

func required(name string) func(string) error {
	return func(s string) error {
		if strings.TrimSpace(s) == "" {
			return fmt.Errorf("%s is required", name)
		}
		return nil
	}
}

// isInteractive reports whether stdin is a terminal
func isInteractive() bool {
	fi, err := os.Stdin.Stat()
	if err != nil {
		return false
	}
	return fi.Mode()&os.ModeCharDevice != 0
}

// signIn logs in and loads the dashboard, returning the failure message if
// the session did not authenticate
func signIn(ctx context.Context, m *session.Manager, creds credentials) error {
	m.Login(ctx, creds.username, creds.password)
	st := m.State()
	if !st.Authenticated {
		if st.LastError != "" {
			return errors.New(st.LastError)
		}
		return errors.New(session.MsgLoginFailed)
	}
	return nil
}

// signOut ends the remote session even when ctx was canceled
func signOut(ctx context.Context, m *session.Manager) {
	m.Logout(context.WithoutCancel(ctx))
}
