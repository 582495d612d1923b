package letterboxd

import (
	"io"
	"regexp"
	"strconv"
	"strings"

	"golang.org/x/net/html"
)

var (
	// "Sinners (2025)" style titles on the new list markup
	titleYearRe = regexp.MustCompile(`\((\d{4})\)$`)
	// trailing year on film slugs like "dune-2021"
	slugYearRe = regexp.MustCompile(`-(\d{4})$`)
)

// page is the parsed content of a single list page.
type page struct {
	films   []Film
	skipped int
	hasNext bool
}

// parsePage extracts films and pagination state from list page HTML.
// Letterboxd has shipped two generations of list markup: the current one
// wraps each film in <li class="posteritem"> with a react-component div
// carrying data-item-slug / data-item-name, the older one used
// <li class="poster-container"> with data-film-slug and the title in the
// poster img alt text. Both are handled.
func parsePage(r io.Reader) (*page, error) {
	root, err := html.Parse(r)
	if err != nil {
		return nil, err
	}

	p := &page{}
	walk(root, func(n *html.Node) {
		if n.Type != html.ElementNode {
			return
		}
		switch {
		case n.Data == "li" && (hasClass(n, "posteritem") || hasClass(n, "poster-container")):
			if film, ok := parseFilmNode(n); ok {
				p.films = append(p.films, film)
			} else {
				p.skipped++
			}
		case n.Data == "div" && hasClass(n, "pagination"):
			walk(n, func(child *html.Node) {
				if child.Type == html.ElementNode && child.Data == "a" && hasClass(child, "next") {
					p.hasNext = true
				}
			})
		}
	})
	return p, nil
}

// parseFilmNode extracts a film from a single list entry.
func parseFilmNode(li *html.Node) (Film, bool) {
	// Current markup: react-component div with data-item-* attributes.
	if div := findElement(li, "div", "react-component"); div != nil {
		slug := attr(div, "data-item-slug")
		name := attr(div, "data-item-name")
		if slug != "" && name != "" {
			film := Film{Title: name, Slug: slug}
			if m := titleYearRe.FindStringSubmatch(name); m != nil {
				film.Year, _ = strconv.Atoi(m[1])
				film.Title = strings.TrimSpace(name[:len(name)-len(m[0])])
			}
			if film.Year == 0 {
				film.Year = slugYear(slug)
			}
			return film, true
		}
	}

	// Legacy markup: first div carries data-film-slug, title lives in the
	// poster image alt text.
	div := findFirstDiv(li)
	if div == nil {
		return Film{}, false
	}
	slug := attr(div, "data-film-slug")
	if slug == "" {
		return Film{}, false
	}

	img := findElement(div, "img", "")
	if img == nil {
		return Film{}, false
	}
	title := attr(img, "alt")
	if title == "" {
		return Film{}, false
	}

	film := Film{Title: title, Slug: slug}
	film.Year = slugYear(slug)
	if film.Year == 0 {
		if y, err := strconv.Atoi(attr(div, "data-film-year")); err == nil {
			film.Year = y
		}
	}
	return film, true
}

// slugYear recovers a year from a trailing "-dddd" on a film slug.
func slugYear(slug string) int {
	if m := slugYearRe.FindStringSubmatch(slug); m != nil {
		y, _ := strconv.Atoi(m[1])
		return y
	}
	return 0
}

// walk visits every node of the tree in document order.
func walk(n *html.Node, visit func(*html.Node)) {
	visit(n)
	for child := n.FirstChild; child != nil; child = child.NextSibling {
		walk(child, visit)
	}
}

// attr returns the value of the named attribute, or "".
func attr(n *html.Node, name string) string {
	for _, a := range n.Attr {
		if a.Key == name {
			return a.Val
		}
	}
	return ""
}

// hasClass reports whether the node's class attribute contains the class.
func hasClass(n *html.Node, class string) bool {
	for _, c := range strings.Fields(attr(n, "class")) {
		if c == class {
			return true
		}
	}
	return false
}

// findElement finds the first descendant element with the given tag, and
// class when non-empty.
func findElement(n *html.Node, tag, class string) *html.Node {
	var found *html.Node
	walk(n, func(child *html.Node) {
		if found != nil || child == n {
			return
		}
		if child.Type == html.ElementNode && child.Data == tag {
			if class == "" || hasClass(child, class) {
				found = child
			}
		}
	})
	return found
}

// findFirstDiv finds the first div child at any depth.
func findFirstDiv(n *html.Node) *html.Node {
	return findElement(n, "div", "")
}
