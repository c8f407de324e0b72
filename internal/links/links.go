// Package links holds the two external pages uidgen can open.
package links

import (
	"errors"
	"fmt"
	"os/exec"
	"runtime"
	"strings"
)

// ErrUnknownTarget is returned for a link name that is not configured.
var ErrUnknownTarget = errors.New("unknown link target")

// Link targets.
const (
	GitHub  = "github"
	RFC9562 = "rfc9562"
)

// Default URLs.
const (
	DefaultGitHubURL  = "https://github.com/hiql/get-unique-id-app"
	DefaultRFC9562URL = "https://www.rfc-editor.org/rfc/rfc9562.html"
)

// Config overrides the default URLs.
type Config struct {
	GitHub  string `mapstructure:"github"`
	RFC9562 string `mapstructure:"rfc9562"`
}

// Link is a named URL.
type Link struct {
	Name string `json:"name" yaml:"name"`
	URL  string `json:"url" yaml:"url"`
}

// Opener launches a URL in the user's browser.
type Opener func(url string) error

// Links resolves and opens targets.
type Links struct {
	urls   map[string]string
	opener Opener
}

// New builds the link set, falling back to defaults for blank entries.
func New(cfg Config) *Links {
	gh, rfc := cfg.GitHub, cfg.RFC9562
	if gh == "" {
		gh = DefaultGitHubURL
	}
	if rfc == "" {
		rfc = DefaultRFC9562URL
	}
	return &Links{
		urls:   map[string]string{GitHub: gh, RFC9562: rfc},
		opener: OpenBrowser,
	}
}

// WithOpener replaces the browser launcher.
func (l *Links) WithOpener(o Opener) *Links {
	l.opener = o
	return l
}

// URL returns the address behind target.
func (l *Links) URL(target string) (string, error) {
	u, ok := l.urls[strings.ToLower(strings.TrimSpace(target))]
	if !ok {
		return "", fmt.Errorf("%w: %q", ErrUnknownTarget, target)
	}
	return u, nil
}

// All returns every link in a stable order.
func (l *Links) All() []Link {
	return []Link{
		{Name: GitHub, URL: l.urls[GitHub]},
		{Name: RFC9562, URL: l.urls[RFC9562]},
	}
}

// Open launches target and returns the URL that was opened.
func (l *Links) Open(target string) (string, error) {
	u, err := l.URL(target)
	if err != nil {
		return "", err
	}
	if err := l.opener(u); err != nil {
		return u, fmt.Errorf("open %s: %w", u, err)
	}
	return u, nil
}

// OpenBrowser starts the platform URL handler without waiting for it.
func OpenBrowser(url string) error {
	var cmd *exec.Cmd
	switch runtime.GOOS {
	case "darwin":
		cmd = exec.Command("open", url)
	case "linux", "freebsd", "openbsd", "netbsd":
		cmd = exec.Command("xdg-open", url)
	case "windows":
		cmd = exec.Command("rundll32", "url.dll,FileProtocolHandler", url)
	default:
		return fmt.Errorf("no browser opener for %s", runtime.GOOS)
	}
	return cmd.Start()
}
