package htmlutil

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
	"golang.org/x/net/html"
)

func TestGetText(t *testing.T) {
	doc, err := html.Parse(strings.NewReader("<p>hello <b>bold</b> world</p>"))
	require.NoError(t, err)
	require.Equal(t, "hello bold world", GetText(doc))
}

func TestStripTags(t *testing.T) {
	testCases := []struct {
		input    string
		expected string
	}{
		{input: "<b>用户名或密码</b>错误", expected: "用户名或密码错误"},
		{input: "plain text", expected: "plain text"},
		{input: "  <span> spaced </span> ", expected: "spaced"},
		{input: "", expected: ""},
	}
	for _, test := range testCases {
		require.Equal(t, test.expected, StripTags(test.input), test.input)
	}
}
