package links

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestURL(t *testing.T) {
	l := New(Config{})

	u, err := l.URL("github")
	require.NoError(t, err)
	assert.Equal(t, DefaultGitHubURL, u)

	u, err = l.URL(" RFC9562 ")
	require.NoError(t, err)
	assert.Equal(t, DefaultRFC9562URL, u)

	_, err = l.URL("gitlab")
	assert.ErrorIs(t, err, ErrUnknownTarget)
}

func TestOverride(t *testing.T) {
	l := New(Config{GitHub: "https://example.com/fork"})
	assert.Equal(t, []Link{
		{Name: GitHub, URL: "https://example.com/fork"},
		{Name: RFC9562, URL: DefaultRFC9562URL},
	}, l.All())
}

func TestOpen(t *testing.T) {
	var opened []string
	l := New(Config{}).WithOpener(func(url string) error {
		opened = append(opened, url)
		return nil
	})

	u, err := l.Open("rfc9562")
	require.NoError(t, err)
	assert.Equal(t, DefaultRFC9562URL, u)
	assert.Equal(t, []string{DefaultRFC9562URL}, opened)

	_, err = l.Open("nope")
	assert.ErrorIs(t, err, ErrUnknownTarget)
	assert.Len(t, opened, 1)

	l.WithOpener(func(string) error { return errors.New("no display") })
	_, err = l.Open("github")
	assert.Error(t, err)
}
