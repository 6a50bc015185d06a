package sharelink

import (
	"net/url"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestURL(t *testing.T) {
	cases := []struct {
		base string
		want string
	}{
		{base: "http://localhost:8080", want: "http://localhost:8080/shared/AbCdEfGhIj"},
		{base: "https://tasks.example.com/", want: "https://tasks.example.com/shared/AbCdEfGhIj"},
		{base: " https://tasks.example.com/app ", want: "https://tasks.example.com/app/shared/AbCdEfGhIj"},
	}

	for _, tc := range cases {
		require.Equal(t, tc.want, URL(tc.base, "AbCdEfGhIj"))
	}
}

func TestValidCode(t *testing.T) {
	require.True(t, ValidCode("AbCdEfGhIj"))
	require.True(t, ValidCode("0123456789"))
	require.False(t, ValidCode("short"))
	require.False(t, ValidCode("AbCdEfGhIjK"))
	require.False(t, ValidCode("AbCd/fGhIj"))
	require.False(t, ValidCode(""))
}

func TestCodeFromInput(t *testing.T) {
	cases := []struct {
		input string
		want  string
		err   bool
	}{
		{input: "AbCdEfGhIj", want: "AbCdEfGhIj"},
		{input: "  AbCdEfGhIj\n", want: "AbCdEfGhIj"},
		{input: "http://localhost:8080/shared/AbCdEfGhIj", want: "AbCdEfGhIj"},
		{input: "https://x.example/app/shared/AbCdEfGhIj/", want: "AbCdEfGhIj"},
		{input: "https://x.example/shared/AbCdEfGhIj?utm=1", want: "AbCdEfGhIj"},
		{input: "/shared/AbCdEfGhIj", want: "AbCdEfGhIj"},
		{input: "https://x.example/shared/", err: true},
		{input: "https://x.example/other/AbCdEfGhIj", err: true},
		{input: "nope", err: true},
	}

	for _, tc := range cases {
		got, err := CodeFromInput(tc.input)
		if tc.err {
			require.ErrorIs(t, err, ErrInvalidCode, "input %q", tc.input)
			continue
		}
		require.NoError(t, err, "input %q", tc.input)
		require.Equal(t, tc.want, got, "input %q", tc.input)
	}
}

func TestMailto(t *testing.T) {
	link, err := Mailto("Pay rent (May)", "http://localhost:8080/shared/AbCdEfGhIj", "landlord@example.com")
	require.NoError(t, err)
	require.Equal(t,
		"mailto:landlord@example.com"+
			"?subject=Check%20out%20this%20task%3A%20Pay%20rent%20(May)"+
			"&body=Take%20a%20look%20at%20this%20task%3A%0A%0APay%20rent%20(May)%0A%0Ahttp%3A%2F%2Flocalhost%3A8080%2Fshared%2FAbCdEfGhIj",
		link)

	parsed, err := url.Parse(link)
	require.NoError(t, err)
	require.Equal(t, "Check out this task: Pay rent (May)", parsed.Query().Get("subject"))
	require.Equal(t, "Take a look at this task:\n\nPay rent (May)\n\nhttp://localhost:8080/shared/AbCdEfGhIj", parsed.Query().Get("body"))
}

func TestMailtoWithoutRecipient(t *testing.T) {
	link, err := Mailto("x", "u", "")
	require.NoError(t, err)
	require.Equal(t, "mailto:?subject=Check%20out%20this%20task%3A%20x&body=Take%20a%20look%20at%20this%20task%3A%0A%0Ax%0A%0Au", link)
}

func TestMailtoRejectsBadRecipient(t *testing.T) {
	_, err := Mailto("x", "u", "not an address")
	require.ErrorIs(t, err, ErrInvalidEmail)

	_, err = Mailto("x", "u", "a@example.com?cc=b@example.com")
	require.ErrorIs(t, err, ErrInvalidEmail)
}
