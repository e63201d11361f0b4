// Package pdf renders order invoices with Maroto v2.
//
// A4 layout:
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  HEADER: title                │  order ref + date           │
//	│  ─────────────────────────────────────────────────────────  │
//	│  BRANCH: name / email / address                              │
//	│  DELIVERY: address / instructions / payment method           │
//	│  ─────────────────────────────────────────────────────────  │
//	│  per supplier: name + delivery date                          │
//	│     TABLE: Qty | Product | SKU | Unit price | VAT | Line     │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TOTALS: net / VAT / TOTAL                                   │
//	└─────────────────────────────────────────────────────────────┘
package pdf

import (
	"fmt"
	"strings"

	maroto "github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/line"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/consts/pagesize"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"
	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"

	"github.com/jhoicas/wholesale-api/internal/application/ports"
	"github.com/jhoicas/wholesale-api/internal/domain/entity"
)

// ── palette ──────────────────────────────────────────────────────────────────

var (
	colorPrimary = &props.Color{Red: 0, Green: 70, Blue: 127}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
)

var _ ports.InvoiceRenderer = (*InvoiceRenderer)(nil)

// InvoiceRenderer implements ports.InvoiceRenderer with Maroto v2.
type InvoiceRenderer struct {
	companyName string
	money       *message.Printer
}

// NewInvoiceRenderer builds the renderer. companyName is printed as the document author.
func NewInvoiceRenderer(companyName string) *InvoiceRenderer {
	return &InvoiceRenderer{
		companyName: companyName,
		money:       message.NewPrinter(language.BritishEnglish),
	}
}

// RenderInvoice returns the PDF bytes of the order invoice.
func (g *InvoiceRenderer) RenderInvoice(data ports.InvoiceData) ([]byte, error) {
	if data.Order == nil {
		return nil, fmt.Errorf("pdf: invoice without order")
	}
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle("Order Invoice", true).
		WithAuthor(g.companyName, true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(g.headerRow(data))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))
	m.AddRows(branchRow(data.Branch))
	m.AddRows(deliveryRow(data.Order))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))

	for _, group := range groupBySupplier(data.Order.Items) {
		m.AddRows(supplierRow(data.Suppliers[group.supplierID], group.items[0]))
		m.AddRows(tableHeaderRow())
		m.AddRows(g.tableRows(group.items)...)
		m.AddRows(line.NewRow(3))
	}

	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))
	m.AddRows(g.totalsRow(data.Order))

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generate invoice: %w", err)
	}
	return doc.GetBytes(), nil
}

// ── sections ─────────────────────────────────────────────────────────────────

func (g *InvoiceRenderer) headerRow(data ports.InvoiceData) core.Row {
	title := "Order Invoice"
	if data.AdminCopy {
		title = "New Order Placed"
	}
	o := data.Order
	return row.New(18).Add(
		col.New(7).Add(
			text.New(title, props.Text{Style: fontstyle.Bold, Size: 15, Color: colorPrimary, Top: 1}),
			text.New(g.companyName, props.Text{Size: 9, Top: 10, Color: colorGray}),
		),
		col.New(5).Add(
			text.New("ORDER", props.Text{Style: fontstyle.Bold, Size: 8, Align: align.Right, Color: colorPrimary, Top: 1}),
			text.New(shortRef(o.ID), props.Text{Style: fontstyle.Bold, Size: 12, Align: align.Right, Top: 7}),
			text.New("Date: "+o.CreatedAt.Format("02/01/2006 15:04"), props.Text{Size: 8, Align: align.Right, Top: 14, Color: colorGray}),
		),
	)
}

func branchRow(branch *entity.User) core.Row {
	name, details := "-", ""
	if branch != nil {
		name = strings.TrimSpace(branch.Firstname + " " + branch.Lastname)
		details = joinNonEmpty("   |   ", branch.Email, branch.Address.Street, branch.Address.City, branch.Address.Postcode)
	}
	return row.New(14).Add(
		col.New(12).Add(
			text.New("BRANCH", props.Text{Style: fontstyle.Bold, Size: 8, Color: colorPrimary, Top: 1}),
			text.New(name, props.Text{Style: fontstyle.Bold, Size: 10, Top: 6}),
			text.New(details, props.Text{Size: 8, Top: 11, Color: colorGray}),
		),
	)
}

func deliveryRow(o *entity.Order) core.Row {
	return row.New(18).Add(
		col.New(12).Add(
			text.New("DELIVERY", props.Text{Style: fontstyle.Bold, Size: 8, Color: colorPrimary, Top: 1}),
			text.New("Delivery Address: "+nonEmpty(o.DeliveryAddress, "-"), props.Text{Size: 8, Top: 6}),
			text.New("Delivery Instructions: "+nonEmpty(o.DeliveryInstructions, "-"), props.Text{Size: 8, Top: 10}),
			text.New("Payment Method: "+nonEmpty(o.PaymentMethod, "-"), props.Text{Size: 8, Top: 14}),
		),
	)
}

func supplierRow(s *entity.Supplier, first entity.OrderItem) core.Row {
	name := "Unknown supplier"
	if s != nil {
		name = s.Name
	}
	delivery := "Delivery Date: not requested"
	if first.DeliveryDate != nil {
		delivery = "Delivery Date: " + first.DeliveryDate.Format("Monday 02/01/2006")
	}
	return row.New(10).Add(
		col.New(7).Add(text.New("Supplier: "+name, props.Text{Style: fontstyle.Bold, Size: 10, Top: 3})),
		col.New(5).Add(text.New(delivery, props.Text{Size: 8, Align: align.Right, Top: 4, Color: colorGray})),
	)
}

func tableHeaderRow() core.Row {
	h := func(label string, size int, a align.Type) core.Col {
		return col.New(size).Add(text.New(label, props.Text{
			Style: fontstyle.Bold, Size: 8, Align: a, Color: colorPrimary, Top: 2, Left: 1, Right: 1,
		}))
	}
	return row.New(8).Add(
		h("Qty", 1, align.Center),
		h("Product", 4, align.Left),
		h("SKU", 2, align.Left),
		h("Unit price", 2, align.Right),
		h("VAT", 1, align.Center),
		h("Line total", 2, align.Right),
	)
}

func (g *InvoiceRenderer) tableRows(items []entity.OrderItem) []core.Row {
	rows := make([]core.Row, 0, len(items))
	for _, it := range items {
		rows = append(rows, row.New(7).Add(
			col.New(1).Add(text.New(fmt.Sprint(it.Quantity), props.Text{Size: 8, Align: align.Center, Top: 1})),
			col.New(4).Add(text.New(it.ProductName, props.Text{Size: 8, Top: 1, Left: 1})),
			col.New(2).Add(text.New(nonEmpty(it.SKU, "-"), props.Text{Size: 8, Top: 1, Left: 1, Color: colorGray})),
			col.New(2).Add(text.New(g.formatMoney(it.UnitPrice), props.Text{Size: 8, Align: align.Right, Top: 1, Right: 1})),
			col.New(1).Add(text.New(it.VAT.String()+"%", props.Text{Size: 8, Align: align.Center, Top: 1})),
			col.New(2).Add(text.New(g.formatMoney(it.Gross()), props.Text{Size: 8, Align: align.Right, Top: 1, Right: 1})),
		))
	}
	return rows
}

// totalsRow prices are VAT inclusive, so the net is total minus the VAT share.
func (g *InvoiceRenderer) totalsRow(o *entity.Order) core.Row {
	tax := decimal.Zero
	for _, it := range o.Items {
		tax = tax.Add(it.Tax())
	}
	label := func(s string, top float64) core.Component {
		return text.New(s, props.Text{Style: fontstyle.Bold, Size: 9, Align: align.Right, Right: 2, Top: top})
	}
	value := func(s string, top float64) core.Component {
		return text.New(s, props.Text{Size: 9, Align: align.Right, Right: 1, Top: top})
	}
	return row.New(22).Add(
		col.New(6),
		col.New(3).Add(
			label("Net:", 1),
			label("VAT:", 7),
			text.New("TOTAL:", props.Text{Style: fontstyle.Bold, Size: 10, Align: align.Right, Color: colorPrimary, Right: 2, Top: 13}),
		),
		col.New(3).Add(
			value(g.formatMoney(o.TotalPrice.Sub(tax)), 1),
			value(g.formatMoney(tax), 7),
			text.New(g.formatMoney(o.TotalPrice), props.Text{Style: fontstyle.Bold, Size: 10, Align: align.Right, Color: colorPrimary, Right: 1, Top: 13}),
		),
	)
}

// ── helpers ──────────────────────────────────────────────────────────────────

type supplierGroup struct {
	supplierID string
	items      []entity.OrderItem
}

// groupBySupplier keeps the order in which suppliers first appear.
func groupBySupplier(items []entity.OrderItem) []supplierGroup {
	idx := map[string]int{}
	var groups []supplierGroup
	for _, it := range items {
		i, ok := idx[it.SupplierID]
		if !ok {
			i = len(groups)
			idx[it.SupplierID] = i
			groups = append(groups, supplierGroup{supplierID: it.SupplierID})
		}
		groups[i].items = append(groups[i].items, it)
	}
	return groups
}

// formatMoney renders pounds with thousands separators, e.g. £1,234.50.
func (g *InvoiceRenderer) formatMoney(d decimal.Decimal) string {
	return g.money.Sprintf("£%v", number.Decimal(d.Round(2).InexactFloat64(), number.Scale(2)))
}

func shortRef(id string) string {
	if len(id) > 8 {
		return "#" + strings.ToUpper(id[:8])
	}
	return "#" + strings.ToUpper(id)
}

func nonEmpty(s, fallback string) string {
	if strings.TrimSpace(s) != "" {
		return s
	}
	return fallback
}

func joinNonEmpty(sep string, parts ...string) string {
	kept := parts[:0:0]
	for _, p := range parts {
		if strings.TrimSpace(p) != "" {
			kept = append(kept, p)
		}
	}
	return strings.Join(kept, sep)
}
