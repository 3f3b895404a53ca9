package mapper

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/encoding/charmap"
)

var bomUTF8 = []byte{0xEF, 0xBB, 0xBF}

// DecodeCSV reads header-row CSV drops. FTP exports typically arrive as
// windows-1251 with a semicolon delimiter; valid UTF-8 passes through as is
// and the delimiter is sniffed from the header line.
func DecodeCSV(data []byte) ([]Raw, error) {
	if !utf8.Valid(data) {
		decoded, err := charmap.Windows1251.NewDecoder().Bytes(data)
		if err != nil {
			return nil, fmt.Errorf("cp1251 decode failed: %w", err)
		}
		data = decoded
	}
	data = bytes.TrimPrefix(data, bomUTF8)

	reader := csv.NewReader(bytes.NewReader(data))
	reader.Comma = sniffDelimiter(data)
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	records, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("malformed CSV: %w", err)
	}
	if len(records) == 0 {
		return nil, nil
	}

	headers := make([]string, len(records[0]))
	for i, h := range records[0] {
		headers[i] = strings.ToLower(strings.TrimSpace(h))
	}

	rows := make([]Raw, 0, len(records)-1)
	for _, rec := range records[1:] {
		row := make(Raw, len(headers))
		empty := true
		for i, field := range rec {
			if i >= len(headers) || headers[i] == "" {
				continue
			}
			field = strings.TrimSpace(field)
			if field != "" {
				empty = false
			}
			row[headers[i]] = field
		}
		if !empty {
			rows = append(rows, row)
		}
	}
	return rows, nil
}

func sniffDelimiter(data []byte) rune {
	line := data
	if idx := bytes.IndexByte(data, '\n'); idx >= 0 {
		line = data[:idx]
	}
	if bytes.Count(line, []byte{';'}) > bytes.Count(line, []byte{','}) {
		return ';'
	}
	return ','
}
