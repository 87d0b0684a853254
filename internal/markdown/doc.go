// Package markdown wraps goldmark for the two things pages need from
// Markdown blocks: rendering the body to HTML and listing its headings in
// document order. It also splits front matter from Markdown page documents.
package markdown
