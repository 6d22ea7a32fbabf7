package services

import (
	"bytes"
	"context"
	"fmt"
	"strings"
	"time"

	"hotelapi/internal/domain"
	"hotelapi/internal/utils"

	"github.com/phpdave11/gofpdf"
)

// DocsService renders booking documents as PDF.
type DocsService struct {
	Bookings  BookingStore
	Hotels    HotelStore
	Users     UserStore
	RequestID string
	Loader    func(ctx context.Context, bookingID string) (bookingDocData, error)
}

type bookingDocData struct {
	BookingID    string
	OwnerID      string
	GuestName    string
	GuestEmail   string
	HotelName    string
	HotelAddress string
	HotelCity    string
	Room         string
	CheckIn      time.Time
	CheckOut     time.Time
	Guests       int
	TotalPrice   float64
	Status       string
	CreatedAt    time.Time
}

// GenerateInvoice renders the invoice of one booking. Only the owner or an admin may fetch it.
func (s DocsService) GenerateInvoice(ctx context.Context, actor domain.RequestContext, bookingID string) ([]byte, string, error) {
	data, err := s.loadBookingDocData(ctx, strings.TrimSpace(bookingID))
	if err != nil {
		return nil, "", err
	}
	if data.OwnerID != actor.UserID && !actor.IsAdmin() {
		return nil, "", domain.ForbiddenError{Msg: "You can only view your own bookings"}
	}
	utils.LogEvent(s.RequestID, "docs", "generate_invoice", "booking_id="+data.BookingID)
	return buildInvoicePDF(data)
}

func (s DocsService) loadBookingDocData(ctx context.Context, bookingID string) (bookingDocData, error) {
	if s.Loader != nil {
		return s.Loader(ctx, bookingID)
	}
	b, err := s.Bookings.GetByID(ctx, bookingID)
	if err != nil {
		return bookingDocData{}, storeErr(err)
	}
	out := bookingDocData{
		BookingID:  b.ID,
		OwnerID:    b.UserID,
		Room:       b.Room,
		CheckIn:    b.CheckInDate,
		CheckOut:   b.CheckOutDate,
		Guests:     b.Guests,
		TotalPrice: b.TotalPrice,
		Status:     string(b.Status),
		CreatedAt:  b.CreatedAt,
	}

	// the invoice still renders when the hotel or user record is gone
	if h, err := s.Hotels.GetByID(ctx, b.HotelID); err == nil {
		out.HotelName = h.Name
		out.HotelAddress = h.Address
		out.HotelCity = h.City
	} else if !domain.IsNotFound(err) {
		return bookingDocData{}, storeErr(err)
	}
	if u, err := s.Users.GetByID(ctx, b.UserID); err == nil {
		out.GuestName = u.Name
		out.GuestEmail = u.Email
	} else if !domain.IsNotFound(err) {
		return bookingDocData{}, storeErr(err)
	}
	return out, nil
}

func buildInvoicePDF(d bookingDocData) ([]byte, string, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetTitle("Invoice", false)
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 18)
	pdf.Cell(0, 10, "BOOKING INVOICE")
	pdf.Ln(12)

	invNo := "INV-" + safeFilenamePart(d.BookingID)
	pdf.SetFont("Helvetica", "", 12)
	pdf.Cell(0, 7, "Invoice No : "+invNo)
	pdf.Ln(7)
	pdf.Cell(0, 7, "Issued     : "+utils.FormatDateTime(time.Now()))
	pdf.Ln(10)

	pdf.SetFont("Helvetica", "B", 12)
	pdf.Cell(0, 7, "Billed to:")
	pdf.Ln(7)
	pdf.SetFont("Helvetica", "", 12)
	pdf.Cell(0, 7, fmt.Sprintf("Name  : %s", safe(d.GuestName, "-")))
	pdf.Ln(7)
	pdf.Cell(0, 7, fmt.Sprintf("Email : %s", safe(d.GuestEmail, "-")))
	pdf.Ln(10)

	nights := utils.StayNights(d.CheckIn, d.CheckOut)
	lines := []string{
		fmt.Sprintf("Hotel     : %s", safe(d.HotelName, "-")),
		fmt.Sprintf("Address   : %s", safe(strings.Trim(d.HotelAddress+", "+d.HotelCity, ", "), "-")),
		fmt.Sprintf("Room      : %s", safe(d.Room, "-")),
		fmt.Sprintf("Check-in  : %s", utils.FormatDate(d.CheckIn)),
		fmt.Sprintf("Check-out : %s", utils.FormatDate(d.CheckOut)),
		fmt.Sprintf("Nights    : %d", nights),
		fmt.Sprintf("Guests    : %d", d.Guests),
		fmt.Sprintf("Status    : %s", safe(d.Status, "-")),
	}
	pdf.SetFont("Helvetica", "B", 12)
	pdf.Cell(0, 7, "Stay:")
	pdf.Ln(8)
	pdf.SetFont("Helvetica", "", 11)
	for _, l := range lines {
		pdf.Cell(0, 6, l)
		pdf.Ln(6)
	}
	pdf.Ln(4)

	if nights != 0 {
		pdf.Cell(0, 6, "Rate per night: "+utils.FormatPrice(d.TotalPrice/float64(nights)))
		pdf.Ln(8)
	}
	pdf.SetFont("Helvetica", "B", 12)
	pdf.Cell(0, 8, "Total: "+utils.FormatPrice(d.TotalPrice))
	pdf.Ln(12)

	if d.Status == "cancelled" {
		pdf.SetFont("Helvetica", "I", 10)
		pdf.MultiCell(0, 6, "This booking has been cancelled.", "", "", false)
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, "", err
	}
	filename := fmt.Sprintf("INVOICE_%s.pdf", safeFilenamePart(d.BookingID))
	return buf.Bytes(), filename, nil
}

func safe(v, fallback string) string {
	v = strings.TrimSpace(v)
	if v == "" {
		return fallback
	}
	return v
}

func safeFilenamePart(s string) string {
	s = strings.TrimSpace(s)
	if s == "" {
		return "NA"
	}
	replacer := strings.NewReplacer(" ", "_", "/", "_", "\\", "_", ":", "_", "*", "_", "?", "_", "\"", "_", "<", "_", ">", "_", "|", "_")
	s = replacer.Replace(s)
	if len(s) > 40 {
		s = s[:40]
	}
	return s
}
