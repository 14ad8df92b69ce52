package poster

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"golang.org/x/net/html"

	"YoDawg/lib/sl"
)

// Placeholder is returned whenever a post text cannot be extracted.
const Placeholder = "this post"

const maxPageBytes = 5 << 20

// Strategy finds the post text in a parsed page. An empty result passes to the next strategy.
type Strategy struct {
	Name string
	Find func(doc *html.Node) string
}

// DefaultStrategies are tried in order: Telegram widget text, LinkedIn update text,
// feed shared text, then the Open Graph description.
func DefaultStrategies() []Strategy {
	return []Strategy{
		ByClass("tgme_widget_message_text"),
		ByClass("update-components-text"),
		ByClass("feed-shared-text"),
		ByMetaProperty("og:description"),
	}
}

// FirstText runs the strategies in order and returns the first non-empty text.
func FirstText(doc *html.Node, strategies ...Strategy) (string, string) {
	for _, s := range strategies {
		if text := strings.TrimSpace(s.Find(doc)); text != "" {
			return text, s.Name
		}
	}
	return "", ""
}

// Extractor downloads a post page and pulls its text out.
type Extractor struct {
	httpClient *http.Client
	strategies []Strategy
	log        *slog.Logger
}

func NewExtractor(timeout time.Duration, log *slog.Logger) *Extractor {
	return &Extractor{
		httpClient: &http.Client{Timeout: timeout},
		strategies: DefaultStrategies(),
		log:        log.With(sl.Module("extractor")),
	}
}

// FetchPostText never fails: any problem yields Placeholder.
func (e *Extractor) FetchPostText(ctx context.Context, pageURL string) string {
	text, err := e.fetch(ctx, pageURL)
	if err != nil {
		e.log.With(slog.String("url", pageURL)).Warn("post text unavailable", sl.Err(err))
		return Placeholder
	}
	return text
}

func (e *Extractor) fetch(ctx context.Context, pageURL string) (string, error) {
	u, err := url.Parse(strings.TrimSpace(pageURL))
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") {
		return "", fmt.Errorf("not a web address: %q", pageURL)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return "", fmt.Errorf("making request: %w", err)
	}
	req.Header.Set("User-Agent", "Mozilla/5.0 (compatible; yodawg/1.0)")

	resp, err := e.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("getting page: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("page http status %s", resp.Status)
	}

	doc, err := html.Parse(io.LimitReader(resp.Body, maxPageBytes))
	if err != nil {
		return "", fmt.Errorf("parsing page: %w", err)
	}

	text, strategy := FirstText(doc, e.strategies...)
	if text == "" {
		return "", fmt.Errorf("no strategy matched")
	}
	e.log.With(
		slog.String("strategy", strategy),
		sl.Short("text", text),
	).Debug("post text extracted")
	return text, nil
}

// ByClass takes the text of the first element carrying the class.
func ByClass(class string) Strategy {
	return Strategy{
		Name: "class:" + class,
		Find: func(doc *html.Node) string {
			node := findNode(doc, func(n *html.Node) bool {
				return n.Type == html.ElementNode && hasClass(n, class)
			})
			if node == nil {
				return ""
			}
			return textContent(node)
		},
	}
}

// ByMetaProperty reads the content of <meta property="...">.
func ByMetaProperty(property string) Strategy {
	return Strategy{
		Name: "meta:" + property,
		Find: func(doc *html.Node) string {
			node := findNode(doc, func(n *html.Node) bool {
				return n.Type == html.ElementNode && n.Data == "meta" && attr(n, "property") == property
			})
			if node == nil {
				return ""
			}
			return attr(node, "content")
		},
	}
}

func findNode(n *html.Node, match func(*html.Node) bool) *html.Node {
	if match(n) {
		return n
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if found := findNode(c, match); found != nil {
			return found
		}
	}
	return nil
}

func hasClass(n *html.Node, class string) bool {
	for _, c := range strings.Fields(attr(n, "class")) {
		if c == class {
			return true
		}
	}
	return false
}

func attr(n *html.Node, key string) string {
	for _, a := range n.Attr {
		if a.Key == key {
			return a.Val
		}
	}
	return ""
}

func textContent(n *html.Node) string {
	var b strings.Builder
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		switch {
		case n.Type == html.TextNode:
			b.WriteString(n.Data)
		case n.Type == html.ElementNode && n.Data == "br":
			b.WriteString("\n")
		case n.Type == html.ElementNode && (n.Data == "script" || n.Data == "style"):
			return
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(n)
	return strings.TrimSpace(b.String())
}
