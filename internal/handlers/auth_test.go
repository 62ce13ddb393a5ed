package handlers

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSafeNext(t *testing.T) {
	cases := map[string]string{
		"":                          "/",
		"/posts/create/":            "/posts/create/",
		"/profile/alice/?page=2":    "/profile/alice/?page=2",
		"//evil.example.com/":       "/",
		"/\\evil.example.com":       "/",
		"https://evil.example.com/": "/",
		"posts/create/":             "/",
	}
	for next, want := range cases {
		assert.Equal(t, want, safeNext(next), next)
	}
}

func TestPaths(t *testing.T) {
	assert.Equal(t, "/posts/7/", postPath(7))
	assert.Equal(t, "/profile/alice/", ProfilePath("alice"))
	assert.Equal(t, "/profile/a%20b/", ProfilePath("a b"))
}
