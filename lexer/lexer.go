package lexer

import (
	"errors"
	"log"
	"strings"
	"unicode"

	"golang.org/x/net/html"

	"github.com/tebeka/snowball"
)

type Lexer struct {
	content []rune
	stemmer *snowball.Stemmer
}

// NewLexer creates a new Lexer with an english snowball stemmer. Callers must
// Close the lexer to release the stemmer.
func NewLexer(content string) *Lexer {
	stemmer, err := snowball.New("english")
	if err != nil {
		// Tokens are still produced, just lowercased and unstemmed.
		log.Println("snowball stemmer unavailable:", err)
	}
	return &Lexer{content: []rune(content), stemmer: stemmer}
}

// Close releases the underlying stemmer
func (l *Lexer) Close() {
	if l.stemmer != nil {
		l.stemmer.Close()
	}
}

// TrimLeft trims empty spaces from the left of the content
func (l *Lexer) TrimLeft() {
	for len(l.content) > 0 && unicode.IsSpace(l.content[0]) {
		l.content = l.content[1:]
	}
}

// Chop chops the content by n and returns the chopped content
func (l *Lexer) Chop(n int) (token []rune) {
	token = l.content[:n]
	l.content = l.content[n:]
	return token
}

// ChopWhile chops the content while the predicate f returns true
func (l *Lexer) ChopWhile(f func(rune) bool) (token []rune) {
	n := 0
	for n < len(l.content) && f(l.content[n]) {
		n += 1
	}
	return l.Chop(n)
}

// NextToken returns the next token. Alphabetic terms are lowercased and
// stemmed, numbers are kept whole, anything else is a single rune token.
func (l *Lexer) NextToken() []rune {
	l.TrimLeft()

	if len(l.content) == 0 {
		return nil
	}
	if unicode.IsNumber(l.content[0]) {
		return l.ChopWhile(unicode.IsNumber)
	}
	if unicode.IsLetter(l.content[0]) {
		term := l.ChopWhile(func(r rune) bool {
			return unicode.IsLetter(r) || unicode.IsNumber(r)
		})

		lowered := strings.ToLower(string(term))
		if l.stemmer == nil {
			return []rune(lowered)
		}
		return []rune(l.stemmer.Stem(lowered))
	}
	return l.Chop(1)
}

// Next returns the next token as a string
func (l *Lexer) Next() (string, error) {
	token := l.NextToken()
	if token == nil {
		return "EOF", errors.New("no more tokens")
	}
	return string(token), nil
}

// Tokens drains the lexer and returns all remaining tokens
func (l *Lexer) Tokens() []string {
	var tokens []string
	for {
		token, err := l.Next()
		if err != nil {
			break
		}
		tokens = append(tokens, token)
	}
	return tokens
}

// StemContent tokenizes and stems a whole text and returns the stems in order.
func StemContent(content string) []string {
	l := NewLexer(content)
	defer l.Close()
	return l.Tokens()
}

// ParseLinks parses a html string and returns all the links as a slice of strings
func ParseLinks(htmlContent string) []string {
	links := []string{}
	nodes, err := html.Parse(strings.NewReader(htmlContent))
	if err != nil {
		log.Println(err)
	}
	var f func(*html.Node)
	f = func(n *html.Node) {
		if n.Type == html.ElementNode && n.Data == "a" {
			for _, a := range n.Attr {
				if a.Key == "href" {
					links = append(links, a.Val)
				}
			}
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			f(c)
		}
	}
	f(nodes)
	return links
}

// ParseHtmlTextContent parses a html string and returns all the text content in the document
func ParseHtmlTextContent(htmlContent string) string {
	var content string

	d := html.NewTokenizer(strings.NewReader(htmlContent))
	for {
		tt := d.Next()
		switch tt {
		case html.ErrorToken:
			return content
		case html.TextToken:
			content += string(d.Text())
		}
	}
}
