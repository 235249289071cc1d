package pathkit

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalize(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  NormalizedPath
	}{
		{"empty string", "", NormalizedPath{}},
		{"whitespace only", "   ", NormalizedPath{}},
		{"unix absolute", "/Users/john", NormalizedPath{"/Users/john", true}},
		{"bare root", "/", NormalizedPath{"/", true}},
		{"only separators", "///", NormalizedPath{"/", true}},
		{"only backslashes", `\\\`, NormalizedPath{"/", true}},
		{"trailing slash", "/Users/john/", NormalizedPath{"/Users/john", true}},
		{"many trailing slashes", "/Users/john///", NormalizedPath{"/Users/john", true}},
		{"backslashes", `C:\Users\john`, NormalizedPath{"C:/Users/john", true}},
		{"drive with forward slashes", "C:/Users", NormalizedPath{"C:/Users", true}},
		{"bare drive", "D:", NormalizedPath{"D:", true}},
		{"drive with trailing slash", `D:\`, NormalizedPath{"D:", true}},
		{"file url unix", "file:///Users/john", NormalizedPath{"/Users/john", true}},
		{"file url windows", "file:///C:/Users", NormalizedPath{"C:/Users", true}},
		{"file url windows trailing slash", "file:///C:/Users/john/", NormalizedPath{"C:/Users/john", true}},
		{"file url upper case scheme", "FILE:///Users/john", NormalizedPath{"/Users/john", true}},
		{"file url mixed case scheme", "File:///tmp", NormalizedPath{"/tmp", true}},
		{"unc forward", "//server/share", NormalizedPath{"//server/share", true}},
		{"unc backslash", `\\server\share`, NormalizedPath{"//server/share", true}},
		{"unc backslash nested", `\\server\share\folder`, NormalizedPath{"//server/share/folder", true}},
		{"relative", "Documents/file.txt", NormalizedPath{"Documents/file.txt", false}},
		{"dot relative", "./file.txt", NormalizedPath{"./file.txt", false}},
		{"drive relative is not absolute", "C:foo", NormalizedPath{"C:foo", false}},
		{"surrounding whitespace", "  /Users/john  ", NormalizedPath{"/Users/john", true}},
		{"illegal characters pass through", "/a/b<c>|d", NormalizedPath{"/a/b<c>|d", true}},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, Normalize(tc.input))
		})
	}
}

func TestNormalize_Idempotent(t *testing.T) {
	inputs := []string{
		"", " ", "/", "//", `\\`, "a", "a/", "a /", "/ /",
		"/Users/john/", `C:\Users\john\`, "file:///C:/Users/john/",
		"file://file://a", "FILE://file:///x", "file:// /a",
		`\\server\share\folder`, "//server", "D:", "/D:", "./x/../y",
		"  \t/tmp\t ", "file://", "file:///", "ünïcødé/päth",
	}

	for _, in := range inputs {
		first := Normalize(in)
		assert.Equal(t, first, Normalize(first.Path), "input %q", in)
	}
}

func TestNormalize_EmptyOnlyForBlankInput(t *testing.T) {
	for _, in := range []string{"/", "file://", `\`, "x"} {
		assert.NotEmpty(t, Normalize(in).Path, "input %q", in)
	}
}

func TestIsUNCAndIsDrive(t *testing.T) {
	assert.True(t, IsUNC("//server/share"))
	assert.False(t, IsUNC("/server/share"))
	assert.True(t, IsDrive("C:"))
	assert.True(t, IsDrive("c:/Users"))
	assert.False(t, IsDrive("C:foo"))
	assert.False(t, IsDrive("/C:/Users"))
}
