package mapper

import (
	"fmt"

	"github.com/nazdrin/inventory-sub001/internal/model"
)

// Decode turns a fetched payload into raw rows using the converter matching
// the enterprise's data format. A decode failure here means the payload
// itself is broken, not an individual record.
func Decode(format string, data []byte) ([]Raw, error) {
	switch format {
	case model.FormatJSONFeed, model.FormatRESTAPI:
		return DecodeJSON(data)
	case model.FormatXMLFeed:
		return DecodeXML(data)
	case model.FormatExcelDrive:
		return DecodeExcel(data)
	case model.FormatCSVFTP:
		return DecodeCSV(data)
	}
	return nil, fmt.Errorf("unsupported data format %q", format)
}
