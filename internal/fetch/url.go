package fetch

import (
	"strings"
)

// QueryParam is the parameter the item source reads the search text from
const QueryParam = "q"

// BuildQueryURL appends the query parameter to endpoint, joining with '&'
// when the endpoint already carries a query string and '?' otherwise
func BuildQueryURL(endpoint, query string) string {
	sep := "?"
	if strings.Contains(endpoint, "?") {
		sep = "&"
	}
	return endpoint + sep + QueryParam + "=" + EncodeURIComponent(query)
}

const upperhex = "0123456789ABCDEF"

// EncodeURIComponent percent-encodes s the way browsers do for a single
// URI component: only A-Z a-z 0-9 and -_.!~*'() are left as-is, spaces
// become %20 and every other byte of the UTF-8 encoding is escaped
func EncodeURIComponent(s string) string {
	n := 0
	for i := 0; i < len(s); i++ {
		if !unreservedComponent(s[i]) {
			n++
		}
	}
	if n == 0 {
		return s
	}

	var b strings.Builder
	b.Grow(len(s) + 2*n)
	for i := 0; i < len(s); i++ {
		c := s[i]
		if unreservedComponent(c) {
			b.WriteByte(c)
			continue
		}
		b.WriteByte('%')
		b.WriteByte(upperhex[c>>4])
		b.WriteByte(upperhex[c&15])
	}
	return b.String()
}

func unreservedComponent(c byte) bool {
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
