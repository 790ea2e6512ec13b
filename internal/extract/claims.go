// Package extract isolates candidate factual claims from raw post text.
package extract

import (
	"context"
	"encoding/json"
	"regexp"
	"strings"

	jsonrepair "github.com/kaptinlin/jsonrepair"
	"golang.org/x/net/html"

	"github.com/factlens/factlens/internal/search"
)

// minClaimTokens is the minimum token count for a sentence fragment to
// stand alone as a claim in the heuristic splitter.
const minClaimTokens = 4

// Extractor produces candidate claim strings from raw input text,
// ordered by presentation priority (the first claim is verified).
// Extraction never fails: a strategy degrades internally rather than
// returning an error.
type Extractor interface {
	Extract(ctx context.Context, text string) []string
}

// PatternExtractor treats the entire trimmed input as a single claim.
// Good enough for short posts where the claim is the post.
type PatternExtractor struct{}

// Extract implements Extractor.
func (PatternExtractor) Extract(_ context.Context, text string) []string {
	t := strings.TrimSpace(normalizeInput(text))
	if t == "" {
		return nil
	}
	return []string{t}
}

// tagPattern detects markup-looking input: text pasted from a browser
// extension sometimes arrives as an HTML fragment.
var tagPattern = regexp.MustCompile(`<\s*[a-zA-Z!/]`)

// normalizeInput reduces HTML-looking input to its visible text. Plain
// text, including text with a stray "<", passes through untouched.
func normalizeInput(text string) string {
	if !tagPattern.MatchString(text) {
		return text
	}
	doc, err := html.Parse(strings.NewReader(text))
	if err != nil {
		return text
	}
	return visibleText(doc)
}

// visibleText extracts text nodes, skipping scripts/styles.
func visibleText(n *html.Node) string {
	var buf strings.Builder

	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode {
			switch n.Data {
			case "script", "style", "noscript", "iframe":
				return
			}
		}

		if n.Type == html.TextNode {
			text := strings.TrimSpace(n.Data)
			if text != "" {
				if buf.Len() > 0 {
					buf.WriteString(" ")
				}
				buf.WriteString(text)
			}
		}

		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}

	walk(n)
	return buf.String()
}

// heuristicClaims is the local fallback when the oracle is unusable:
// split on sentence-terminating punctuation or newlines and take the
// first fragment that carries at least minClaimTokens tokens. When no
// fragment qualifies, the whole trimmed text is the claim; empty text
// yields no claims.
func heuristicClaims(text string) []string {
	t := strings.TrimSpace(text)
	if t == "" {
		return nil
	}
	for _, fragment := range splitFragments(t) {
		if len(search.Tokens(fragment)) >= minClaimTokens {
			return []string{fragment}
		}
	}
	return []string{t}
}

// splitFragments splits text on '.', '!', '?' and newlines, dropping
// empty fragments.
func splitFragments(text string) []string {
	var fragments []string
	var current strings.Builder

	flush := func() {
		if f := strings.TrimSpace(current.String()); f != "" {
			fragments = append(fragments, f)
		}
		current.Reset()
	}

	for _, r := range text {
		switch r {
		case '.', '!', '?', '\n':
			flush()
		default:
			current.WriteRune(r)
		}
	}
	flush()

	return fragments
}

// decodeClaims parses an oracle reply expected to be a JSON array of
// claim strings. Markdown code fences are tolerated, and malformed JSON
// gets one repair attempt before the reply is rejected.
func decodeClaims(reply string) ([]string, error) {
	raw := stripCodeFence(reply)

	var claims []string
	err := json.Unmarshal([]byte(raw), &claims)
	if err != nil {
		repaired, repairErr := jsonrepair.JSONRepair(raw)
		if repairErr != nil {
			return nil, err
		}
		if err = json.Unmarshal([]byte(repaired), &claims); err != nil {
			return nil, err
		}
	}

	out := claims[:0]
	for _, c := range claims {
		if c = strings.TrimSpace(c); c != "" {
			out = append(out, c)
		}
	}
	return out, nil
}

// stripCodeFence removes a surrounding markdown code fence, with or
// without a language tag.
func stripCodeFence(s string) string {
	s = strings.TrimSpace(s)
	if !strings.HasPrefix(s, "```") {
		return s
	}
	s = strings.TrimPrefix(s, "```")
	if i := strings.IndexByte(s, '\n'); i >= 0 && !strings.HasPrefix(s, "[") && !strings.HasPrefix(s, "{") {
		s = s[i+1:]
	}
	s = strings.TrimSuffix(strings.TrimSpace(s), "```")
	return strings.TrimSpace(s)
}
