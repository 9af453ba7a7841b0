package sanitizer

import (
	"net/url"
	"strings"
	"time"
)

const DateLayout = "2006-01-02"

type Strategy func(string) string

type Pipeline []Strategy

func (p Pipeline) Apply(s string) string {
	for _, fn := range p {
		s = fn(s)
	}
	return s
}

func trim(s string) string {
	return strings.TrimSpace(s)
}

func lower(s string) string {
	return strings.ToLower(s)
}

func NormalizeEmail(email string) string {
	return Pipeline{trim, lower}.Apply(email)
}

// NormalizeComment collapses whitespace inside free text while keeping line breaks between paragraphs.
func NormalizeComment(comment string) string {
	lines := strings.Split(strings.TrimSpace(comment), "\n")
	out := make([]string, 0, len(lines))
	for _, line := range lines {
		out = append(out, TrimAndNormalize(line))
	}
	return strings.TrimSpace(strings.Join(out, "\n"))
}

// NormalizeURL lower-cases scheme and host and strips utm_* parameters.
// Unparseable input is returned trimmed so the validator can report it.
func NormalizeURL(input string) string {
	s := strings.TrimSpace(input)
	if s == "" {
		return ""
	}

	u, err := url.Parse(s)
	if err != nil || u.Host == "" {
		return s
	}

	u.Scheme = strings.ToLower(u.Scheme)
	u.Host = strings.ToLower(u.Host)

	q := u.Query()
	for key := range q {
		if strings.HasPrefix(strings.ToLower(key), "utm_") {
			q.Del(key)
		}
	}
	u.RawQuery = q.Encode()

	return u.String()
}

// NormalizeDate reduces a stay date to YYYY-MM-DD. Browsers send either the
// date input value or a full ISO timestamp.
func NormalizeDate(input string) string {
	s := strings.TrimSpace(input)
	if s == "" {
		return ""
	}
	if _, err := time.Parse(DateLayout, s); err == nil {
		return s
	}
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t.UTC().Format(DateLayout)
	}
	return s
}
