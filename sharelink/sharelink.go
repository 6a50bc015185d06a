// Package sharelink builds and parses the links used to hand out a shared
// task: the share URL, and a mailto: link that carries it.
package sharelink

import (
	"errors"
	"fmt"
	"net/mail"
	"net/url"
	"strings"

	"github.com/taskshare/taskshare/internal/ids"
	internalstrings "github.com/taskshare/taskshare/internal/strings"
)

// PathPrefix is the route under which shared tasks are served.
const PathPrefix = "/shared/"

var (
	// ErrInvalidCode is returned when input does not contain a share code.
	ErrInvalidCode = errors.New("invalid share code")

	// ErrInvalidEmail is returned for malformed recipient addresses.
	ErrInvalidEmail = errors.New("invalid email address")
)

// URL returns the share URL for code under baseURL.
func URL(baseURL, code string) string {
	return internalstrings.TrimTrailingSlash(strings.TrimSpace(baseURL)) + PathPrefix + code
}

// ValidCode reports whether code has the shape of a generated share code.
func ValidCode(code string) bool {
	return ids.IsShareCode(code)
}

// CodeFromInput extracts the share code from a bare code or a share URL.
func CodeFromInput(input string) (string, error) {
	input = strings.TrimSpace(input)
	code := input

	if strings.Contains(input, PathPrefix) {
		path := input
		if parsed, err := url.Parse(input); err == nil && parsed.Path != "" {
			path = parsed.Path
		}
		idx := strings.LastIndex(path, PathPrefix)
		if idx >= 0 {
			code = internalstrings.TrimTrailingSlash(path[idx+len(PathPrefix):])
		}
	}

	if !ValidCode(code) {
		return "", fmt.Errorf("%w: %q", ErrInvalidCode, input)
	}
	return code, nil
}

// Mailto returns a mailto: link inviting email to look at a shared task.
// An empty email leaves the recipient for the mail client to fill in.
func Mailto(title, shareURL, email string) (string, error) {
	email = strings.TrimSpace(email)
	if email != "" {
		addr, err := mail.ParseAddress(email)
		if err != nil || strings.ContainsAny(addr.Address, "?&#") {
			return "", fmt.Errorf("%w: %q", ErrInvalidEmail, email)
		}
		email = addr.Address
	}

	subject := encodeComponent("Check out this task: " + title)
	body := encodeComponent("Take a look at this task:\n\n" + title + "\n\n" + shareURL)
	return "mailto:" + email + "?subject=" + subject + "&body=" + body, nil
}

// componentUnescaper restores the characters a URI component leaves bare
// but url.QueryEscape encodes.
var componentUnescaper = strings.NewReplacer(
	"+", "%20",
	"%21", "!",
	"%27", "'",
	"%28", "(",
	"%29", ")",
	"%2A", "*",
)

func encodeComponent(value string) string {
	return componentUnescaper.Replace(url.QueryEscape(value))
}
