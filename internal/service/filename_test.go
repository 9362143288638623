package service

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSecureFilename(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{name: "plain", in: "report.pdf", want: "report.pdf"},
		{name: "spaces", in: "My cool movie.mov", want: "My_cool_movie.mov"},
		{name: "path traversal", in: "../../../etc/passwd", want: "etc_passwd"},
		{name: "windows path", in: `C:\Users\alice\notes.txt`, want: "C_Users_alice_notes.txt"},
		{name: "accents", in: "résumé.doc", want: "resume.doc"},
		{name: "unsafe chars", in: "a<b>c|d?.txt", want: "abcd.txt"},
		{name: "leading dots", in: "...hidden", want: "hidden"},
		{name: "nothing left", in: "../..", want: ""},
		{name: "non latin only", in: "отчёт", want: ""},
		{name: "empty", in: "", want: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, SecureFilename(tt.in))
		})
	}
}

func TestSecureFilename_Truncates(t *testing.T) {
	got := SecureFilename(strings.Repeat("a", 300) + ".pdf")
	assert.Len(t, got, maxFilenameLen)
	assert.True(t, strings.HasSuffix(got, ".pdf"))
}
