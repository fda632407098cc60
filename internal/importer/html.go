package importer

import (
	"io"
	"strconv"
	"strings"
	"time"

	"golang.org/x/net/html"
)

// Link is a bookmark parsed from an export file.
type Link struct {
	Title   string
	URL     string
	AddedAt time.Time // zero when the file has no ADD_DATE
}

// Folder is a parsed folder with its direct links and subfolders.
type Folder struct {
	Title   string
	Links   []Link
	Folders []*Folder
}

// Document is the parsed content of a Netscape bookmark file.
type Document struct {
	Folders []*Folder
	Links   []Link // links outside of any folder
}

// Count returns the number of folders and links in the document.
func (d Document) Count() (folders, links int) {
	links = len(d.Links)
	var count func([]*Folder)
	count = func(fs []*Folder) {
		for _, f := range fs {
			folders++
			links += len(f.Links)
			count(f.Folders)
		}
	}
	count(d.Folders)
	return folders, links
}

// ParseHTML parses Netscape bookmark HTML as written by browsers.
func ParseHTML(r io.Reader) (Document, error) {
	doc, err := html.Parse(r)
	if err != nil {
		return Document{}, err
	}

	var out Document

	// Current folder stack, empty = root
	var stack []*Folder
	var pending *Folder // folder waiting to be pushed on the next DL

	addLink := func(l Link) {
		if len(stack) == 0 {
			out.Links = append(out.Links, l)
			return
		}
		top := stack[len(stack)-1]
		top.Links = append(top.Links, l)
	}

	var parse func(*html.Node)
	parse = func(n *html.Node) {
		if n.Type == html.ElementNode {
			switch strings.ToLower(n.Data) {
			case "h3":
				title := textContent(n)
				if title == "" {
					return
				}
				folder := &Folder{Title: title}
				if len(stack) == 0 {
					out.Folders = append(out.Folders, folder)
				} else {
					top := stack[len(stack)-1]
					top.Folders = append(top.Folders, folder)
				}
				pending = folder
				return

			case "a":
				href := strings.TrimSpace(attr(n, "href"))
				if href == "" {
					return
				}
				title := textContent(n)
				if title == "" {
					title = href
				}

				var added time.Time
				if v := attr(n, "add_date"); v != "" {
					if ts, err := strconv.ParseInt(v, 10, 64); err == nil {
						added = time.Unix(ts, 0)
					}
				}
				addLink(Link{Title: title, URL: href, AddedAt: added})
				return

			case "dl":
				pushed := false
				if pending != nil {
					stack = append(stack, pending)
					pending = nil
					pushed = true
				}

				for c := n.FirstChild; c != nil; c = c.NextSibling {
					parse(c)
				}

				if pushed {
					stack = stack[:len(stack)-1]
				}
				return
			}
		}

		for c := n.FirstChild; c != nil; c = c.NextSibling {
			parse(c)
		}
	}

	parse(doc)
	return out, nil
}

// textContent returns the trimmed text content of a node.
func textContent(n *html.Node) string {
	var text strings.Builder
	var extract func(*html.Node)
	extract = func(n *html.Node) {
		if n.Type == html.TextNode {
			text.WriteString(n.Data)
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			extract(c)
		}
	}
	extract(n)
	return strings.TrimSpace(text.String())
}

// attr returns the value of an attribute, case-insensitive.
func attr(n *html.Node, key string) string {
	for _, a := range n.Attr {
		if strings.EqualFold(a.Key, key) {
			return a.Val
		}
	}
	return ""
}
