package opml

import (
	"bytes"
	"encoding/xml"
	"io"
	"time"
)

type Document struct {
	XMLName xml.Name `xml:"opml"`
	Version string   `xml:"version,attr"`
	Head    Head     `xml:"head"`
	Body    Body     `xml:"body"`
}

type Head struct {
	Title       string `xml:"title,omitempty"`
	DateCreated string `xml:"dateCreated,omitempty"`
}

type Body struct {
	Outlines []Outline `xml:"outline"`
}

type Outline struct {
	Text        string    `xml:"text,attr,omitempty"`
	Title       string    `xml:"title,attr,omitempty"`
	Description string    `xml:"description,attr,omitempty"`
	Type        string    `xml:"type,attr,omitempty"`
	XMLURL      string    `xml:"xmlUrl,attr,omitempty"`
	HTMLURL     string    `xml:"htmlUrl,attr,omitempty"`
	Outlines    []Outline `xml:"outline,omitempty"`
}

// Subscription is one feed line of an export.
type Subscription struct {
	Title       string
	Description string
	XMLURL      string
}

// New builds a flat OPML 2.0 document, one rss outline per subscription.
func New(title string, subs []Subscription, created time.Time) Document {
	doc := Document{
		Version: "2.0",
		Head:    Head{Title: title, DateCreated: created.UTC().Format(time.RFC1123Z)},
	}
	for _, s := range subs {
		text := s.Title
		if text == "" {
			text = s.XMLURL
		}
		doc.Body.Outlines = append(doc.Body.Outlines, Outline{
			Text:        text,
			Title:       s.Title,
			Description: s.Description,
			Type:        "rss",
			XMLURL:      s.XMLURL,
		})
	}
	return doc
}

// FeedURLs walks every outline depth-first and returns the xmlUrl values in
// document order. Folders contribute only their children.
func (d Document) FeedURLs() []string {
	var urls []string
	var walk func([]Outline)
	walk = func(outlines []Outline) {
		for _, o := range outlines {
			if o.XMLURL != "" {
				urls = append(urls, o.XMLURL)
			}
			walk(o.Outlines)
		}
	}
	walk(d.Body.Outlines)
	return urls
}

func Parse(r io.Reader) (Document, error) {
	decoder := xml.NewDecoder(r)
	var doc Document
	if err := decoder.Decode(&doc); err != nil {
		return Document{}, err
	}
	return doc, nil
}

func Encode(doc Document) ([]byte, error) {
	buf := &bytes.Buffer{}
	buf.WriteString(xml.Header)
	encoder := xml.NewEncoder(buf)
	encoder.Indent("", "  ")
	if err := encoder.Encode(doc); err != nil {
		return nil, err
	}
	if err := encoder.Flush(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
