package mapper

// Source-field alias tables. Heterogeneous feeds name the same canonical
// field differently; new sources are added here, not as new control flow.
// All aliases are matched against lower-cased, trimmed keys.
var (
	codeAliases     = []string{"code", "sku", "product_id", "goodscode", "article", "id"}
	nameAliases     = []string{"name", "product_name", "title"}
	producerAliases = []string{"producer", "manufacturer", "brand", "vendor"}
	barcodeAliases  = []string{"barcode", "ean", "ean13"}
	vatAliases      = []string{"vat", "tax"}

	branchAliases  = []string{"branch"}
	storeIDAliases = []string{"store_id", "storeid", "warehouse_id", "warehouse"}
	priceAliases   = []string{"price", "retail_price"}
	qtyAliases     = []string{"qty", "quantity", "balance", "in_stock", "rest"}
	reserveAliases = []string{"price_reserve", "pricereserve", "reserve_price"}
)
