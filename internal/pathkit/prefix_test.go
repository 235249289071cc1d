package pathkit

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPrefixes(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  []string
	}{
		{"empty", "", nil},
		{"root", "/", []string{"/"}},
		{"single segment", "/Users", []string{"/Users"}},
		{"deep path", "/Users/john/Documents", []string{"/Users", "/Users/john", "/Users/john/Documents"}},
		{"drive path", "C:/Users/john", []string{"C:", "C:/Users", "C:/Users/john"}},
		{"bare drive", "C:", []string{"C:"}},
		{"unc with folder", "//server/share/folder", []string{"//server/share", "//server/share/folder"}},
		{"unc share only", "//server/share", []string{"//server/share"}},
		{"unc server only", "//server", []string{"//server"}},
		{"unc deep", "//server/share/a/b", []string{"//server/share", "//server/share/a", "//server/share/a/b"}},
		{"relative", "a/b", []string{"a", "a/b"}},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, Prefixes(tc.input))
		})
	}
}

func TestPrefixes_CountMatchesSeparators(t *testing.T) {
	for _, p := range []string{"/a", "/a/b", "/a/b/c/d", "/x/y/z"} {
		internal := strings.Count(p[1:], "/")
		got := Prefixes(p)
		assert.Len(t, got, internal+1, "path %q", p)
		assert.Equal(t, p, got[len(got)-1])
	}
}

func TestPrefixes_ComposeWithNormalize(t *testing.T) {
	got := Prefixes(Normalize(`file:///C:/Users/john/`).Path)
	assert.Equal(t, []string{"C:", "C:/Users", "C:/Users/john"}, got)
}

func TestDepthAndParent(t *testing.T) {
	assert.Equal(t, 0, Depth(""))
	assert.Equal(t, 1, Depth("/"))
	assert.Equal(t, 3, Depth("/a/b/c"))

	assert.Equal(t, "/a/b", Parent("/a/b/c"))
	assert.Equal(t, "C:", Parent("C:/Users"))
	assert.Equal(t, "//server/share", Parent("//server/share/x"))
	assert.Equal(t, "", Parent("/a"))
	assert.Equal(t, "", Parent("/"))
	assert.Equal(t, "", Parent(""))
}
