// Package contact turns a contact form submission into a pre-filled
// WhatsApp deep link.
package contact

import (
	"net/url"
	"strings"
)

// DefaultBaseURL is the messaging endpoint submissions are forwarded to.
const DefaultBaseURL = "https://wa.me/923000000000"

// Form is the contact form as submitted. All fields are free text.
type Form struct {
	FirstName string `form:"firstName"`
	LastName  string `form:"lastName"`
	Email     string `form:"email"`
	Phone     string `form:"phone"`
	Subject   string `form:"subject"`
	Message   string `form:"message"`
}

// FullName joins first and last name with a single space. An empty last
// name leaves the trailing space in place.
func (f Form) FullName() string {
	return f.FirstName + " " + f.LastName
}

// Missing returns the form names of required fields left blank. The
// encoder does not call it; handlers decide what to do with the result.
func (f Form) Missing() []string {
	var out []string
	for _, field := range []struct{ name, v string }{
		{"firstName", f.FirstName},
		{"email", f.Email},
		{"subject", f.Subject},
		{"message", f.Message},
	} {
		if strings.TrimSpace(field.v) == "" {
			out = append(out, field.name)
		}
	}
	return out
}

// Encoder builds deep links against a fixed base URL.
type Encoder struct {
	base string
}

// NewEncoder returns an Encoder for base, falling back to DefaultBaseURL.
func NewEncoder(base string) *Encoder {
	base = strings.TrimSpace(base)
	if base == "" {
		base = DefaultBaseURL
	}
	return &Encoder{base: strings.TrimSuffix(base, "?")}
}

// BaseURL returns the messaging endpoint.
func (e *Encoder) BaseURL() string {
	return e.base
}

// Text renders the fixed message template for f. The second line holds
// four spaces.
func (e *Encoder) Text(f Form) string {
	var b strings.Builder
	b.WriteString("*New Inquiry from Website*\n    \n")
	b.WriteString("*Name:* " + f.FullName() + "\n")
	b.WriteString("*Email:* " + f.Email + "\n")
	b.WriteString("*Phone:* " + f.Phone + "\n")
	b.WriteString("*Subject:* " + f.Subject + "\n\n")
	b.WriteString("*Message:*\n")
	b.WriteString(f.Message)
	return b.String()
}

// Link returns base?text=<percent-encoded Text(f)>. It never validates f
// and cannot observe whether the message is delivered.
func (e *Encoder) Link(f Form) string {
	sep := "?"
	if strings.Contains(e.base, "?") {
		sep = "&"
	}
	return e.base + sep + "text=" + EscapeComponent(e.Text(f))
}

// DecodeText extracts the message text from a link built by Link.
func DecodeText(link string) (string, error) {
	u, err := url.Parse(link)
	if err != nil {
		return "", err
	}
	return u.Query().Get("text"), nil
}

// EscapeComponent percent-encodes s the way browsers' encodeURIComponent
// does: only A-Z a-z 0-9 and -_.!~*'() pass through, spaces become %20.
func EscapeComponent(s string) string {
	const hex = "0123456789ABCDEF"
	var b strings.Builder
	b.Grow(len(s))
	for i := 0; i < len(s); i++ {
		c := s[i]
		if unreserved(c) {
			b.WriteByte(c)
			continue
		}
		b.WriteByte('%')
		b.WriteByte(hex[c>>4])
		b.WriteByte(hex[c&0x0f])
	}
	return b.String()
}

func unreserved(c byte) bool {
	switch {
	case 'a' <= c && c <= 'z', 'A' <= c && c <= 'Z', '0' <= c && c <= '9':
		return true
	}
	switch c {
	case '-', '_', '.', '!', '~', '*', '\'', '(', ')':
		return true
	}
	return false
}
