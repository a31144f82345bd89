// Package excel renders a vehicle configuration as the quotation workbook
// layout used by the sales department: meta block and basic vehicle on page
// one, optional equipment and price summary on page two, technical data at
// the end.
package excel

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"

	"github.com/AnjosHD-Black/bmw-offer-pilot/pkg/vehicle"
)

const sheet = "Quotation"

// Meta carries the request fields shown in the quotation header.
type Meta struct {
	Model    string
	Color    string
	Interior string
	Date     time.Time
}

var technicalLines = []string{
	"Weight",
	"Unladen DIN (without Driver) kg",
	"Unladen EU kg",
	"Gross vehicle weight kg",
	"Engine",
	"Cylinders/valves",
	"Capacity cc3",
	"Output/Engine Speed kW(hp) / rpm",
	"Engine Torque Nm",
	"Performance",
	"Top Speed3 km/h",
	"Acceleration 0-100 km/h s",
	"Fuel Consumption",
	"Combined l/100 km",
	"CO2 emissions g/km",
}

// builder accumulates the first write error so the layout code below can stay
// linear instead of checking every cell write.
type builder struct {
	f   *excelize.File
	row int
	err error

	underline int
}

func (b *builder) set(cell string, value any) {
	if b.err != nil {
		return
	}
	b.err = b.f.SetCellValue(sheet, cell, value)
}

func (b *builder) setRow(col string, value any) {
	b.set(fmt.Sprintf("%s%d", col, b.row), value)
}

func (b *builder) heading(text string) {
	cell := fmt.Sprintf("A%d", b.row)
	b.set(cell, text)
	if b.err == nil {
		b.err = b.f.SetCellStyle(sheet, cell, cell, b.underline)
	}
	b.row++
}

func (b *builder) border(style int, row int) {
	if b.err != nil {
		return
	}
	b.err = b.f.SetCellStyle(sheet, fmt.Sprintf("A%d", row), fmt.Sprintf("F%d", row), style)
}

func (b *builder) options(items []vehicle.ResolvedOption) {
	for _, item := range items {
		b.setRow("B", item.Code)
		b.setRow("C", item.Text)
		b.setRow("E", item.Price.InexactFloat64())
		b.row++
	}
}

func (b *builder) pageBreak(label string) {
	if b.err == nil {
		b.err = b.f.InsertPageBreak(sheet, fmt.Sprintf("A%d", b.row))
	}
	if b.err == nil {
		b.err = b.f.SetCellFormula(sheet, fmt.Sprintf("A%d", b.row), "A8")
	}
	if b.err == nil {
		b.err = b.f.SetCellFormula(sheet, fmt.Sprintf("B%d", b.row), "B8")
	}
	b.setRow("E", label)
	b.row += 2
}

func sumPrices(items []vehicle.ResolvedOption) float64 {
	total := decimal.Zero
	for _, item := range items {
		total = total.Add(item.Price)
	}
	return total.InexactFloat64()
}

// Build assembles the quotation workbook. It only lays out what the
// configuration already contains; prices and categories are never re-derived.
func Build(cfg vehicle.Configuration, meta Meta) (*excelize.File, error) {
	f := excelize.NewFile()
	if err := f.SetSheetName("Sheet1", sheet); err != nil {
		return nil, err
	}

	widths := map[string]float64{"A": 22, "B": 22, "C": 45, "D": 12, "E": 18, "F": 10}
	for col, w := range widths {
		if err := f.SetColWidth(sheet, col, col, w); err != nil {
			return nil, err
		}
	}

	if err := f.SetHeaderFooter(sheet, &excelize.HeaderFooterOptions{
		OddHeader: "&LLOGO 1&RLOGO 2",
	}); err != nil {
		return nil, err
	}

	underline, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true, Underline: "single"}})
	if err != nil {
		return nil, err
	}
	bottom, err := f.NewStyle(&excelize.Style{Border: []excelize.Border{{Type: "bottom", Style: 1, Color: "000000"}}})
	if err != nil {
		return nil, err
	}
	double, err := f.NewStyle(&excelize.Style{Border: []excelize.Border{{Type: "bottom", Style: 6, Color: "000000"}}})
	if err != nil {
		return nil, err
	}

	b := &builder{f: f, underline: underline}

	// Page 1: meta block.
	b.border(bottom, 3)
	b.set("A4", "Quotation")
	b.set("B4", meta.Date.Format("02.01.2006"))
	b.set("E4", "Country")
	b.set("A5", "Department")
	b.set("B5", "Sales Person")
	b.set("A6", "Type")
	b.set("B6", meta.Model)
	b.set("A7", "Protection class")
	b.set("B7", "VR")
	b.set("A8", "Top Down")
	b.set("B8", "Number")
	b.set("A9", "Model Year")
	b.set("B9", "YYYY")
	b.set("A10", "Vehicle Status")
	b.set("B10", "STOCK / TO ORDER")
	b.border(bottom, 10)

	b.set("D11", "Country")
	b.set("E11", "Page 1")
	b.set("B12", "Option Code")
	b.set("C12", "Description")
	b.set("E12", "Price")
	if b.err == nil {
		b.err = f.SetCellStyle(sheet, "B12", "C12", underline)
	}

	b.row = 13
	b.heading("Basic Vehicle")
	b.options(cfg.Base)

	b.heading("Exterior Color")
	b.setRow("C", meta.Color)
	b.row++
	b.heading("Interior Color")
	b.setRow("C", meta.Interior)
	b.row++
	b.setRow("A", "Interior Trim")
	b.row++
	b.border(bottom, b.row-1)

	b.heading("Standard Equipment")
	b.options(cfg.Standard)
	b.row++

	b.heading("Security Equipment")
	b.options(cfg.Security)
	b.row += 2

	// Page 2: optional equipment and price summary.
	b.pageBreak("Page 2")

	b.heading("Optional Equipment")
	b.options(cfg.Optional)
	b.row++

	b.heading("Technical Adjustments")
	b.heading("Editions")

	b.setRow("B", "Basic Vehicle Price")
	b.setRow("E", sumPrices(cfg.Base))
	b.row++
	b.setRow("B", "Security Package VR6")
	b.setRow("E", sumPrices(cfg.Security))
	b.row++
	b.setRow("B", "Optional Equipment")
	b.setRow("E", sumPrices(cfg.Optional))
	b.row++
	b.setRow("B", "Technical Adjustment")
	b.setRow("E", 0.0)
	b.border(bottom, b.row)
	b.row++

	b.setRow("B", "Transportation")
	b.setRow("E", 0.0)
	b.row++
	b.setRow("B", "Special Discount")
	b.setRow("E", 0.0)
	b.border(bottom, b.row)
	b.row++

	b.setRow("B", "Total Price")
	b.setRow("E", cfg.TotalPrice.InexactFloat64())
	b.border(double, b.row)
	b.row += 4

	// Technical data page.
	b.pageBreak("Page 4")
	b.heading("Technical Data")
	for _, line := range technicalLines {
		b.setRow("A", line)
		b.setRow("C", "Text / Number")
		b.row++
	}

	if b.err != nil {
		return nil, b.err
	}
	return f, nil
}
