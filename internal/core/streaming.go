package core

import (
	"io"

	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

// countingReader counts the raw bytes taken from the data file.
type countingReader struct {
	r io.Reader
	n int64
}

func (c *countingReader) Read(p []byte) (int, error) {
	n, err := c.r.Read(p)
	c.n += int64(n)
	return n, err
}

// loadReader decodes a data file for Load. A leading UTF-8 BOM, which
// Windows editors add, is dropped and invalid UTF-8 becomes U+FFFD.
// The returned counter reports raw file bytes consumed, BOM included.
func loadReader(r io.Reader) (io.Reader, *countingReader) {
	counter := &countingReader{r: r}
	dec := unicode.BOMOverride(unicode.UTF8.NewDecoder())
	return transform.NewReader(counter, dec), counter
}
