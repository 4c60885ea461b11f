// Package export renders reports as CSV.
package export

import (
	"encoding/csv"
	"io"
	"strconv"

	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/odyssey-erp/erp-dashboard/internal/analytics"
)

const dateLayout = "2006-01-02"

// Formatter renders numbers in the CSV body. The zero value writes plain
// decimals that spreadsheet imports parse without a locale.
type Formatter struct {
	printer *message.Printer
}

// NewFormatter returns a locale-aware formatter for the BCP 47 tag. An empty
// or unparsable tag yields the plain formatter.
func NewFormatter(tag string) Formatter {
	if tag == "" {
		return Formatter{}
	}
	parsed, err := language.Parse(tag)
	if err != nil {
		return Formatter{}
	}
	return Formatter{printer: message.NewPrinter(parsed)}
}

func (f Formatter) number(v float64) string {
	if f.printer == nil {
		return strconv.FormatFloat(v, 'f', 2, 64)
	}
	return f.printer.Sprintf("%.2f", v)
}

// WriteProducts emits the product report.
func WriteProducts(w io.Writer, rows []analytics.ProductRow, f Formatter) error {
	writer := csv.NewWriter(w)
	defer writer.Flush()
	if err := writer.Write([]string{"Product Name", "Product Code", "Category", "Unit", "Critical Stock Level", "Current Stock", "Brand", "Created At"}); err != nil {
		return err
	}
	for _, row := range rows {
		if err := writer.Write([]string{
			row.ProductName,
			row.ProductCode,
			row.ProductCategory,
			row.Unit,
			f.number(row.CriticalStockLevel),
			f.number(row.CurrentStock),
			row.Brand,
			row.CreatedAt.Format(dateLayout),
		}); err != nil {
			return err
		}
	}
	writer.Flush()
	return writer.Error()
}

// WriteCosts emits the product cost report.
func WriteCosts(w io.Writer, rows []analytics.CostRow, f Formatter) error {
	writer := csv.NewWriter(w)
	defer writer.Flush()
	if err := writer.Write([]string{"Product Name", "Product Code", "Month", "Unit Cost"}); err != nil {
		return err
	}
	for _, row := range rows {
		if err := writer.Write([]string{
			row.ProductName,
			row.ProductCode,
			row.Month.Format("2006-01"),
			f.number(row.UnitCost),
		}); err != nil {
			return err
		}
	}
	writer.Flush()
	return writer.Error()
}

// WriteCustomers emits the customer report.
func WriteCustomers(w io.Writer, rows []analytics.CustomerRow, f Formatter) error {
	writer := csv.NewWriter(w)
	defer writer.Flush()
	if err := writer.Write([]string{"Customer Name", "Customer Code", "Sales Rep", "City/District", "Country", "Email", "Telephone", "Payment Terms Limit", "Balance Risk Limit"}); err != nil {
		return err
	}
	for _, row := range rows {
		if err := writer.Write([]string{
			row.CustomerName,
			row.CustomerCode,
			row.SalesRep,
			row.CityOrDistrict,
			row.Country,
			row.Email,
			row.TelephoneNumber,
			f.number(row.PaymentTermsLimit),
			f.number(row.BalanceRiskLimit),
		}); err != nil {
			return err
		}
	}
	writer.Flush()
	return writer.Error()
}
