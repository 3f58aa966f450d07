package media

/*
License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2023–2026 Norbert Pillmayer <norbert@pillmayer.com>

*/

import (
	"fmt"
	"strings"

	"github.com/gorilla/css/scanner"
)

// ParseList parses a comma separated media query list, as it appears
// after `@media` once all interpolation has been resolved.
func ParseList(input string) ([]Query, error) {
	tokens, err := tokenize(input)
	if err != nil {
		return nil, err
	}
	var queries []Query
	for _, group := range splitTokens(tokens, ",") {
		q, err := parseQuery(group)
		if err != nil {
			return nil, err
		}
		queries = append(queries, q)
	}
	if len(queries) == 0 {
		return nil, fmt.Errorf("expected media query")
	}
	tracer().Debugf("media: parsed %q into %d queries", input, len(queries))
	return queries, nil
}

func tokenize(input string) ([]*scanner.Token, error) {
	s := scanner.New(input)
	var tokens []*scanner.Token
	for {
		tok := s.Next()
		switch tok.Type {
		case scanner.TokenEOF:
			return tokens, nil
		case scanner.TokenError:
			return nil, fmt.Errorf("invalid media query %q: %s", input, tok.Value)
		case scanner.TokenS, scanner.TokenComment:
			// not significant
		default:
			tokens = append(tokens, tok)
		}
	}
}

// splitTokens splits on a top-level separator char, respecting paren
// nesting.
func splitTokens(tokens []*scanner.Token, sep string) [][]*scanner.Token {
	var groups [][]*scanner.Token
	var current []*scanner.Token
	depth := 0
	for _, tok := range tokens {
		if tok.Type == scanner.TokenChar {
			switch tok.Value {
			case "(":
				depth++
			case ")":
				depth--
			case sep:
				if depth == 0 {
					groups = append(groups, current)
					current = nil
					continue
				}
			}
		}
		current = append(current, tok)
	}
	return append(groups, current)
}

func parseQuery(tokens []*scanner.Token) (Query, error) {
	q := Query{Conjunction: true}
	i := 0
	if i < len(tokens) && isIdent(tokens[i], "not", "only") {
		q.Modifier = strings.ToLower(tokens[i].Value)
		i++
	}
	if i < len(tokens) && tokens[i].Type == scanner.TokenIdent {
		q.Type = tokens[i].Value
		i++
		for i < len(tokens) {
			if !isIdent(tokens[i], "and") {
				return q, fmt.Errorf("expected \"and\", was %q", tokens[i].Value)
			}
			i++
			cond, n, err := parseCondition(tokens[i:])
			if err != nil {
				return q, err
			}
			q.Conditions = append(q.Conditions, cond)
			i += n
		}
		return q, nil
	}
	if q.Modifier != "" {
		return q, fmt.Errorf("expected media type after %q", q.Modifier)
	}
	// Type-less query: conditions joined uniformly by "and" or "or".
	first := true
	for i < len(tokens) {
		if !first {
			conjunction := isIdent(tokens[i], "and")
			if !conjunction && !isIdent(tokens[i], "or") {
				return q, fmt.Errorf("expected \"and\" or \"or\", was %q", tokens[i].Value)
			}
			if len(q.Conditions) > 1 && conjunction != q.Conjunction {
				return q, fmt.Errorf("cannot mix \"and\" and \"or\" in one media query")
			}
			q.Conjunction = conjunction
			i++
		}
		cond, n, err := parseCondition(tokens[i:])
		if err != nil {
			return q, err
		}
		q.Conditions = append(q.Conditions, cond)
		i += n
		first = false
	}
	if len(q.Conditions) == 0 {
		return q, fmt.Errorf("expected media query")
	}
	return q, nil
}

// parseCondition consumes one parenthesized condition and returns its
// canonical text and the number of tokens consumed.
func parseCondition(tokens []*scanner.Token) (string, int, error) {
	if len(tokens) == 0 || !isChar(tokens[0], "(") {
		return "", 0, fmt.Errorf("expected media condition in parentheses")
	}
	depth := 0
	for i, tok := range tokens {
		if isChar(tok, "(") {
			depth++
		} else if isChar(tok, ")") {
			depth--
			if depth == 0 {
				return joinTokens(tokens[:i+1]), i + 1, nil
			}
		}
	}
	return "", 0, fmt.Errorf("unclosed parenthesis in media condition")
}

// joinTokens reconstructs canonical source text from tokens, normalizing
// whitespace.
func joinTokens(tokens []*scanner.Token) string {
	var b strings.Builder
	for i, tok := range tokens {
		if i > 0 {
			prev := tokens[i-1].Value
			if prev != "(" && tok.Value != ")" && tok.Value != ":" && tok.Value != "," {
				b.WriteByte(' ')
			}
		}
		b.WriteString(tok.Value)
	}
	return b.String()
}

func isIdent(tok *scanner.Token, names ...string) bool {
	if tok.Type != scanner.TokenIdent {
		return false
	}
	for _, n := range names {
		if strings.EqualFold(tok.Value, n) {
			return true
		}
	}
	return false
}

func isChar(tok *scanner.Token, v string) bool {
	return tok.Type == scanner.TokenChar && tok.Value == v
}
