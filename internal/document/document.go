// Package document turns a print job into printable output: a plain-text
// body for the command encoder and a full styled HTML document for the
// render-fallback channel. Generators are pure; the caller supplies the
// timestamp.
package document

import (
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/cetakin/printd/internal/job"
)

const (
	divider        = "--------------------------------"
	noItemsMessage = "Tidak ada item yang dipilih"

	basePageHeightCM    = 15.0
	perItemPageHeightCM = 2.0
)

// Document is the rendered form of one print job.
type Document struct {
	Text         string
	HTML         string
	PageHeightCM float64
}

// Generate builds the document for a job. It fails only on an unknown job
// type; settings ids are not consulted here, so a misconfigured destination
// still yields a renderable document for the fallback channel.
func Generate(j *job.PrintJob, now time.Time) (*Document, error) {
	switch j.Type {
	case job.TypeWorkOrder:
		return workOrder(j, now), nil
	case job.TypeReceipt:
		return receipt(j, now, "NOTA"), nil
	case job.TypeInvoice:
		return receipt(j, now, "INVOICE"), nil
	case job.TypeSettlement:
		return settlement(j, now), nil
	case job.TypeGeneric:
		return generic(j, now), nil
	default:
		return nil, fmt.Errorf("%w: no generator for type %q", job.ErrInvalidJob, j.Type)
	}
}

// pageHeight sizes the fallback page so it is never needlessly long nor
// clipped: 15cm plus 2cm per item beyond the first.
func pageHeight(itemCount int) float64 {
	extra := itemCount - 1
	if extra < 0 {
		extra = 0
	}
	return basePageHeightCM + float64(extra)*perItemPageHeightCM
}

func workOrder(j *job.PrintJob, now time.Time) *Document {
	items, emptySelection := j.SelectedItems()

	var b strings.Builder
	b.WriteString("SPK\n")
	b.WriteString("No. " + j.Order.OrderNumber + "\n")
	writeFlags(&b, j.Order.Flags)
	b.WriteString("Pelanggan: " + j.Order.CustomerName + "\n")
	b.WriteString("Tanggal: " + formatDate(now) + "\n")
	if j.Order.Deadline != nil {
		b.WriteString("Deadline: " + formatDeadline(*j.Order.Deadline, j.Order.DeadlineHasTime) + "\n")
	}
	if len(j.Order.Staff) > 0 {
		b.WriteString("Petugas: " + strings.Join(j.Order.Staff, ", ") + "\n")
	}
	b.WriteString(divider + "\n")

	if emptySelection {
		b.WriteString(noItemsMessage + "\n")
	} else {
		for _, item := range items {
			b.WriteString(item.Name + "\n")
			b.WriteString(fmt.Sprintf("%s @%d %s\n", item.Dimension(), item.Quantity, item.FinishingLabel()))
		}
	}

	b.WriteString(divider + "\n")
	b.WriteString(fmt.Sprintf("Jumlah item: %d\n", len(items)))

	d := &Document{
		Text:         b.String(),
		PageHeightCM: pageHeight(len(items)),
	}
	d.HTML = renderHTML(htmlData{
		Title:        "SURAT PERINTAH KERJA",
		Job:          j,
		Items:        workOrderHTMLItems(items, emptySelection),
		Date:         formatDate(now),
		Deadline:     deadlineString(j),
		PageHeightCM: d.PageHeightCM,
	})
	return d
}

func receipt(j *job.PrintJob, now time.Time, title string) *Document {
	var b strings.Builder
	b.WriteString(title + "\n")
	b.WriteString("No. " + j.Order.OrderNumber + "\n")
	writeFlags(&b, j.Order.Flags)
	b.WriteString("Pelanggan: " + j.Order.CustomerName + "\n")
	b.WriteString("Tanggal: " + formatDate(now) + "\n")
	b.WriteString(divider + "\n")
	writeItemLines(&b, j.Items)
	b.WriteString(divider + "\n")
	b.WriteString("Total: " + FormatRupiah(j.Order.Total) + "\n")
	b.WriteString("Terima kasih\n")

	d := &Document{
		Text:         b.String(),
		PageHeightCM: pageHeight(len(j.Items)),
	}
	d.HTML = renderHTML(htmlData{
		Title:        title,
		Job:          j,
		Items:        receiptHTMLItems(j.Items),
		Date:         formatDate(now),
		Totals:       []totalRow{{Label: "Total", Value: FormatRupiah(j.Order.Total), Strong: true}},
		Footer:       "Terima kasih",
		PageHeightCM: d.PageHeightCM,
	})
	return d
}

func settlement(j *job.PrintJob, now time.Time) *Document {
	remaining := j.Order.Total.Sub(j.Order.DownPayment).Sub(j.Order.PaymentNow)
	paidInFull := remaining.LessThanOrEqual(decimal.Zero)

	var b strings.Builder
	b.WriteString("NOTA PELUNASAN\n")
	b.WriteString("No. " + j.Order.OrderNumber + "\n")
	writeFlags(&b, j.Order.Flags)
	b.WriteString("Pelanggan: " + j.Order.CustomerName + "\n")
	b.WriteString("Tanggal: " + formatDate(now) + "\n")
	b.WriteString(divider + "\n")
	writeItemLines(&b, j.Items)
	b.WriteString(divider + "\n")
	b.WriteString("Total: " + FormatRupiah(j.Order.Total) + "\n")
	b.WriteString("DP: -" + FormatRupiah(j.Order.DownPayment) + "\n")
	b.WriteString("Bayar: -" + FormatRupiah(j.Order.PaymentNow) + "\n")
	if paidInFull {
		b.WriteString("** LUNAS **\n")
	} else {
		b.WriteString("Sisa: " + FormatRupiah(remaining) + "\n")
	}
	b.WriteString("Terima kasih\n")

	totals := []totalRow{
		{Label: "Total", Value: FormatRupiah(j.Order.Total)},
		{Label: "DP", Value: "-" + FormatRupiah(j.Order.DownPayment)},
		{Label: "Bayar", Value: "-" + FormatRupiah(j.Order.PaymentNow)},
	}
	if paidInFull {
		totals = append(totals, totalRow{Label: "Status", Value: "LUNAS", Strong: true})
	} else {
		totals = append(totals, totalRow{Label: "Sisa", Value: FormatRupiah(remaining), Strong: true})
	}

	d := &Document{
		Text:         b.String(),
		PageHeightCM: pageHeight(len(j.Items)),
	}
	d.HTML = renderHTML(htmlData{
		Title:        "NOTA PELUNASAN",
		Job:          j,
		Items:        receiptHTMLItems(j.Items),
		Date:         formatDate(now),
		Totals:       totals,
		Footer:       "Terima kasih",
		PageHeightCM: d.PageHeightCM,
	})
	return d
}

func generic(j *job.PrintJob, now time.Time) *Document {
	var b strings.Builder
	b.WriteString(divider + "\n")
	b.WriteString(j.Content)
	if !strings.HasSuffix(j.Content, "\n") {
		b.WriteByte('\n')
	}
	b.WriteString(divider + "\n")
	b.WriteString("Dicetak: " + formatDate(now) + "\n")

	d := &Document{
		Text:         b.String(),
		PageHeightCM: basePageHeightCM,
	}
	d.HTML = renderHTML(htmlData{
		Title:        "CETAK",
		Job:          j,
		Generic:      j.Content,
		Date:         formatDate(now),
		PageHeightCM: d.PageHeightCM,
	})
	return d
}

func writeFlags(b *strings.Builder, flags []job.Flag) {
	for _, f := range flags {
		if f.Set {
			b.WriteString("* " + f.Label + " *\n")
		}
	}
}

func writeItemLines(b *strings.Builder, items []job.LineItem) {
	for _, item := range items {
		b.WriteString(item.Name + "\n")
		if dim := item.Dimension(); dim != "-" {
			b.WriteString(dim + "\n")
		}
		b.WriteString(fmt.Sprintf("%d x %s = %s\n",
			item.Quantity, FormatRupiah(item.UnitPrice()), FormatRupiah(item.SubTotal)))
	}
}

func deadlineString(j *job.PrintJob) string {
	if j.Order.Deadline == nil {
		return ""
	}
	return formatDeadline(*j.Order.Deadline, j.Order.DeadlineHasTime)
}
