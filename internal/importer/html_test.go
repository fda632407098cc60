package importer_test

import (
	"strings"
	"testing"
	"time"

	"gotest.tools/v3/assert"

	"github.com/nikbrunner/hive/internal/importer"
)

func TestParseHTML_SingleLink(t *testing.T) {
	html := `<!DOCTYPE NETSCAPE-Bookmark-file-1>
<TITLE>Bookmarks</TITLE>
<H1>Bookmarks</H1>
<DL><p>
    <DT><A HREF="https://example.com" ADD_DATE="1234567890">Example Site</A>
</DL><p>`

	doc, err := importer.ParseHTML(strings.NewReader(html))
	assert.NilError(t, err)

	assert.Equal(t, len(doc.Folders), 0)
	assert.Equal(t, len(doc.Links), 1)
	assert.Equal(t, doc.Links[0].Title, "Example Site")
	assert.Equal(t, doc.Links[0].URL, "https://example.com")
}

func TestParseHTML_NestedFolders(t *testing.T) {
	html := `<!DOCTYPE NETSCAPE-Bookmark-file-1>
<DL><p>
    <DT><H3 ADD_DATE="1234567890">Development</H3>
    <DL><p>
        <DT><H3 ADD_DATE="1234567890">React</H3>
        <DL><p>
            <DT><A HREF="https://react.dev" ADD_DATE="1234567890">React Docs</A>
        </DL><p>
        <DT><A HREF="https://github.com" ADD_DATE="1234567890">GitHub</A>
    </DL><p>
    <DT><A HREF="https://google.com" ADD_DATE="1234567890">Google</A>
</DL><p>`

	doc, err := importer.ParseHTML(strings.NewReader(html))
	assert.NilError(t, err)

	assert.Equal(t, len(doc.Folders), 1)
	dev := doc.Folders[0]
	assert.Equal(t, dev.Title, "Development")
	assert.Equal(t, len(dev.Links), 1)
	assert.Equal(t, dev.Links[0].Title, "GitHub")

	assert.Equal(t, len(dev.Folders), 1)
	react := dev.Folders[0]
	assert.Equal(t, react.Title, "React")
	assert.Equal(t, len(react.Links), 1)
	assert.Equal(t, react.Links[0].URL, "https://react.dev")

	// Google sits after the folder closes, so it is at root
	assert.Equal(t, len(doc.Links), 1)
	assert.Equal(t, doc.Links[0].Title, "Google")

	folders, links := doc.Count()
	assert.Equal(t, folders, 2)
	assert.Equal(t, links, 3)
}

func TestParseHTML_EmptyFile(t *testing.T) {
	html := `<!DOCTYPE NETSCAPE-Bookmark-file-1>
<TITLE>Bookmarks</TITLE>
<H1>Bookmarks</H1>
<DL><p>
</DL><p>`

	doc, err := importer.ParseHTML(strings.NewReader(html))
	assert.NilError(t, err)

	folders, links := doc.Count()
	assert.Equal(t, folders, 0)
	assert.Equal(t, links, 0)
}

func TestParseHTML_Timestamps(t *testing.T) {
	// 1234567890 = Fri Feb 13 2009 23:31:30 UTC
	html := `<DL><p>
    <DT><A HREF="https://example.com" ADD_DATE="1234567890">Test</A>
    <DT><A HREF="https://undated.example.com">Undated</A>
</DL><p>`

	doc, err := importer.ParseHTML(strings.NewReader(html))
	assert.NilError(t, err)
	assert.Equal(t, len(doc.Links), 2)

	assert.Assert(t, doc.Links[0].AddedAt.Equal(time.Unix(1234567890, 0)))
	assert.Assert(t, doc.Links[1].AddedAt.IsZero())
}

func TestParseHTML_MissingHrefAndTitle(t *testing.T) {
	html := `<DL><p>
    <DT><A ADD_DATE="1234567890">No URL</A>
    <DT><A HREF="https://valid.com" ADD_DATE="1234567890">Valid</A>
    <DT><A HREF="https://untitled.com"></A>
</DL><p>`

	doc, err := importer.ParseHTML(strings.NewReader(html))
	assert.NilError(t, err)

	// Skip the link without HREF, fall back to the url as title
	assert.Equal(t, len(doc.Links), 2)
	assert.Equal(t, doc.Links[0].Title, "Valid")
	assert.Equal(t, doc.Links[1].Title, "https://untitled.com")
}
