package contact

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func sampleForm() Form {
	return Form{
		FirstName: "John",
		Email:     "a@b.com",
		Subject:   "Hi",
		Message:   "Test",
	}
}

func TestLinkSampleSubmission(t *testing.T) {
	enc := NewEncoder("")
	link := enc.Link(sampleForm())

	require.True(t, strings.HasPrefix(link, "https://wa.me/923000000000?text="), link)
	for _, want := range []string{"John", "a%40b.com", "Hi", "Test", "*New%20Inquiry%20from%20Website*"} {
		require.Contains(t, link, want)
	}

	text, err := DecodeText(link)
	require.NoError(t, err)
	require.Equal(t, "*New Inquiry from Website*\n    \n"+
		"*Name:* John \n"+
		"*Email:* a@b.com\n"+
		"*Phone:* \n"+
		"*Subject:* Hi\n\n"+
		"*Message:*\n"+
		"Test", text)
}

func TestLinkEncodesBlankLineAndTrailingSpace(t *testing.T) {
	link := NewEncoder("").Link(sampleForm())
	require.Contains(t, link, "Website*%0A%20%20%20%20%0A*Name%3A*%20John%20%0A*Email")
}

func TestFullNameKeepsSeparator(t *testing.T) {
	require.Equal(t, "John ", Form{FirstName: "John"}.FullName())
	require.Equal(t, " Doe", Form{LastName: "Doe"}.FullName())
	require.Equal(t, "John Doe", Form{FirstName: "John", LastName: "Doe"}.FullName())
}

func TestTextIncludesFullName(t *testing.T) {
	f := sampleForm()
	f.LastName = "Doe"
	f.Phone = "+92 300 0000000"
	text := NewEncoder("").Text(f)
	require.Contains(t, text, "*Name:* John Doe\n")
	require.Contains(t, text, "*Phone:* +92 300 0000000\n")
}

func TestLinkDoesNotValidate(t *testing.T) {
	link := NewEncoder("").Link(Form{})
	text, err := DecodeText(link)
	require.NoError(t, err)
	require.True(t, strings.HasPrefix(text, "*New Inquiry from Website*"))
}

func TestEscapeComponent(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"abcXYZ019", "abcXYZ019"},
		{"-_.!~*'()", "-_.!~*'()"},
		{"a b", "a%20b"},
		{"a+b=c&d", "a%2Bb%3Dc%26d"},
		{"line\nbreak", "line%0Abreak"},
		{"a@b.com", "a%40b.com"},
		{"/?#:", "%2F%3F%23%3A"},
		{"é", "%C3%A9"},
	}
	for _, tt := range tests {
		require.Equal(t, tt.want, EscapeComponent(tt.in), "input %q", tt.in)
	}
}

func TestNewEncoderCustomBase(t *testing.T) {
	enc := NewEncoder(" https://wa.me/15550001111 ")
	require.Equal(t, "https://wa.me/15550001111", enc.BaseURL())
	require.True(t, strings.HasPrefix(enc.Link(sampleForm()), "https://wa.me/15550001111?text="))

	withQuery := NewEncoder("https://api.whatsapp.com/send?phone=15550001111")
	require.Contains(t, withQuery.Link(sampleForm()), "?phone=15550001111&text=")
}

func TestMissing(t *testing.T) {
	require.Empty(t, sampleForm().Missing())
	require.Equal(t, []string{"firstName", "email", "subject", "message"}, Form{Phone: "1"}.Missing())
	require.Equal(t, []string{"subject"}, Form{FirstName: "J", Email: "e", Subject: "  ", Message: "m"}.Missing())
}
