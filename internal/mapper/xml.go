package mapper

import (
	"bytes"
	"encoding/xml"
	"fmt"
	"io"
	"strings"

	"golang.org/x/text/encoding/charmap"
)

// DecodeXML reads the two XML feed shapes in the wild: flat attribute feeds
// (<Offer Code=".." Price=".."/>) and element feeds (<catalog><item><code>..
// </code></item></catalog>). Both collapse into Raw rows; attribute and
// element names are normalized the same way as JSON keys.
func DecodeXML(data []byte) ([]Raw, error) {
	dec := xml.NewDecoder(bytes.NewReader(data))
	dec.CharsetReader = charsetReader

	var rows []Raw
	for {
		tok, err := dec.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("malformed XML: %w", err)
		}

		se, ok := tok.(xml.StartElement)
		if !ok {
			continue
		}
		switch strings.ToLower(se.Name.Local) {
		case "offer", "item":
			row, err := decodeRowElement(dec, se)
			if err != nil {
				return nil, fmt.Errorf("malformed XML: %w", err)
			}
			rows = append(rows, row)
		}
	}
	return rows, nil
}

// decodeRowElement flattens one record element: attributes first, then each
// leaf child element's text content.
func decodeRowElement(dec *xml.Decoder, start xml.StartElement) (Raw, error) {
	row := make(Raw, len(start.Attr))
	for _, attr := range start.Attr {
		row[strings.ToLower(strings.TrimSpace(attr.Name.Local))] = attr.Value
	}

	for {
		tok, err := dec.Token()
		if err != nil {
			return nil, err
		}
		switch t := tok.(type) {
		case xml.StartElement:
			var value string
			if err := dec.DecodeElement(&value, &t); err != nil {
				return nil, err
			}
			row[strings.ToLower(strings.TrimSpace(t.Name.Local))] = strings.TrimSpace(value)
		case xml.EndElement:
			return row, nil
		}
	}
}

func charsetReader(charset string, input io.Reader) (io.Reader, error) {
	switch strings.ToLower(charset) {
	case "windows-1251", "cp1251":
		return charmap.Windows1251.NewDecoder().Reader(input), nil
	case "utf-8", "":
		return input, nil
	}
	return nil, fmt.Errorf("unsupported XML charset %q", charset)
}
