package document

import (
	"bytes"
	"fmt"
	"io"
	"time"

	"github.com/go-pdf/fpdf"
	"github.com/skip2/go-qrcode"
)

const qrSize = 256

// TicketPage is one admission printed on its own page.
type TicketPage struct {
	Code           string
	EventName      string
	StartsAt       time.Time
	Location       string
	TicketTypeName string
	Price          string
	HolderName     string
}

// PlaceBooking is the confirmation sheet of a place reservation.
type PlaceBooking struct {
	ReservationID int64
	PlaceName     string
	Location      string
	Date          time.Time
	Total         string
	Status        string
	HolderName    string
}

func QRPNG(content string) ([]byte, error) {
	return qrcode.Encode(content, qrcode.Medium, qrSize)
}

// WriteTickets renders one page per ticket with a scannable redemption code.
func WriteTickets(w io.Writer, tickets []TicketPage) error {
	const op = "document.WriteTickets"

	if len(tickets) == 0 {
		return fmt.Errorf("%s: no tickets", op)
	}

	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetTitle("Tickets", true)

	for i, t := range tickets {
		png, err := QRPNG(t.Code)
		if err != nil {
			return fmt.Errorf("%s: qr: %w", op, err)
		}

		pdf.AddPage()

		pdf.SetFont("Helvetica", "B", 20)
		pdf.CellFormat(0, 12, t.EventName, "", 1, "C", false, 0, "")
		pdf.Ln(4)

		pdf.SetFont("Helvetica", "", 12)
		line(pdf, "Date", t.StartsAt.Format("Mon, 02 Jan 2006 15:04 MST"))
		line(pdf, "Location", t.Location)
		line(pdf, "Ticket", t.TicketTypeName)
		line(pdf, "Price", t.Price)
		if t.HolderName != "" {
			line(pdf, "Holder", t.HolderName)
		}

		name := fmt.Sprintf("qr-%d", i)
		opts := fpdf.ImageOptions{ImageType: "PNG"}
		pdf.RegisterImageOptionsReader(name, opts, bytes.NewReader(png))
		pdf.ImageOptions(name, 65, 100, 80, 80, false, opts, 0, "")

		pdf.SetY(185)
		pdf.SetFont("Courier", "B", 12)
		pdf.CellFormat(0, 8, t.Code, "", 1, "C", false, 0, "")
	}

	if err := pdf.Output(w); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	return nil
}

// WritePlaceBooking renders a single-page booking confirmation.
func WritePlaceBooking(w io.Writer, b PlaceBooking) error {
	const op = "document.WritePlaceBooking"

	png, err := QRPNG(fmt.Sprintf("RES-%d", b.ReservationID))
	if err != nil {
		return fmt.Errorf("%s: qr: %w", op, err)
	}

	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetTitle("Reservation", true)
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 20)
	pdf.CellFormat(0, 12, "Place reservation", "", 1, "C", false, 0, "")
	pdf.Ln(4)

	pdf.SetFont("Helvetica", "", 12)
	line(pdf, "Reservation", fmt.Sprintf("#%d", b.ReservationID))
	line(pdf, "Place", b.PlaceName)
	line(pdf, "Location", b.Location)
	line(pdf, "Date", b.Date.Format("Mon, 02 Jan 2006"))
	line(pdf, "Total", b.Total)
	line(pdf, "Status", b.Status)
	if b.HolderName != "" {
		line(pdf, "Booked by", b.HolderName)
	}

	opts := fpdf.ImageOptions{ImageType: "PNG"}
	pdf.RegisterImageOptionsReader("qr", opts, bytes.NewReader(png))
	pdf.ImageOptions("qr", 75, 120, 60, 60, false, opts, 0, "")

	if err := pdf.Output(w); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	return nil
}

func line(pdf *fpdf.Fpdf, label, value string) {
	pdf.SetFont("Helvetica", "B", 12)
	pdf.CellFormat(40, 8, label+":", "", 0, "L", false, 0, "")
	pdf.SetFont("Helvetica", "", 12)
	pdf.CellFormat(0, 8, value, "", 1, "L", false, 0, "")
}
