// Package pdf renders a vehicle configuration as a compact A4 quotation.
package pdf

import (
	"fmt"
	"io"
	"time"

	"github.com/go-pdf/fpdf"
	"github.com/shopspring/decimal"

	"github.com/AnjosHD-Black/bmw-offer-pilot/pkg/vehicle"
)

// Meta carries the request fields shown in the quotation header.
type Meta struct {
	Model    string
	Color    string
	Interior string
	Date     time.Time
}

const (
	leftMargin  = 30.0
	rightMargin = 30.0
	lineGap     = 8.0
)

// Build writes the rendered quotation PDF to w. Like the workbook renderer it
// only lays out what the configuration already contains.
func Build(cfg vehicle.Configuration, meta Meta, w io.Writer) error {
	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.AddPage()
	width, height := pdf.GetPageSize()

	pdf.SetFont("Helvetica", "B", 18)
	pdf.Text(leftMargin, 25, "Vehicle Quotation")

	pdf.SetLineWidth(1)
	pdf.Line(leftMargin, 28, width-rightMargin, 28)

	pdf.SetFont("Helvetica", "", 10)
	pdf.Text(leftMargin, 38, "Date: "+meta.Date.Format("02.01.2006"))

	y := 55.0
	row := func(label, value string, price decimal.Decimal) {
		pdf.SetFont("Helvetica", "B", 10)
		pdf.Text(leftMargin, y, label)
		pdf.SetFont("Helvetica", "", 10)
		pdf.Text(leftMargin+40, y, value)
		rightText(pdf, width-rightMargin, y, formatPrice(price))
		y += lineGap
	}

	row("Model", meta.Model, decimal.Zero)
	row("Color", meta.Color, decimal.Zero)
	row("Interior", meta.Interior, decimal.Zero)

	sections := []struct {
		title string
		items []vehicle.ResolvedOption
	}{
		{"Basic Vehicle", cfg.Base},
		{"Standard Equipment", cfg.Standard},
		{"Optional Equipment", cfg.Optional},
		{"Security Equipment", cfg.Security},
	}

	for _, sec := range sections {
		if len(sec.items) == 0 {
			continue
		}

		y += 4
		pdf.SetFont("Helvetica", "B", 11)
		pdf.Text(leftMargin, y, sec.title)
		y += lineGap

		pdf.SetFont("Helvetica", "", 10)
		for _, item := range sec.items {
			if y > height-40 {
				pdf.AddPage()
				y = 30
			}
			pdf.Text(leftMargin+2, y, fmt.Sprintf("%s - %s", item.Code, item.Text))
			rightText(pdf, width-rightMargin, y, formatPrice(item.Price))
			y += lineGap
		}
	}

	y += 4
	pdf.SetLineWidth(0.5)
	pdf.Line(leftMargin, y, width-rightMargin, y)
	y += lineGap

	pdf.SetFont("Helvetica", "B", 12)
	pdf.Text(leftMargin, y, "Total Price")
	rightText(pdf, width-rightMargin, y, formatPrice(cfg.TotalPrice))

	return pdf.Output(w)
}

func rightText(pdf *fpdf.Fpdf, x, y float64, text string) {
	pdf.Text(x-pdf.GetStringWidth(text), y, text)
}

func formatPrice(p decimal.Decimal) string {
	return p.StringFixed(2) + " EUR"
}
