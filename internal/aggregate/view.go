package aggregate

import (
	bookingmodel "lalazar/internal/domains/booking/model"
	paymentmodel "lalazar/internal/domains/payment/model"
	"lalazar/shared/constant"
)

// BookingView is one row of the bookings table on the dashboard.
type BookingView struct {
	ID            string  `json:"id"`
	GuestName     string  `json:"guest_name"`
	GuestEmail    string  `json:"guest_email"`
	RoomNos       string  `json:"room_nos"`
	Categories    string  `json:"categories"`
	RoomCount     int     `json:"room_count"`
	CheckIn       string  `json:"check_in"`
	CheckOut      string  `json:"check_out"`
	Persons       int     `json:"persons"`
	Status        string  `json:"status"`
	PaymentStatus string  `json:"payment_status"`
	TotalPaid     float64 `json:"total_paid"`
}

// BuildBookingView denormalizes one booking against the prebuilt indexes.
func BuildBookingView(
	booking bookingmodel.Booking,
	roomIndex map[string]RoomInfo,
	guestIndex map[string]GuestInfo,
	paymentIndex map[string]PaymentSummary,
) BookingView {
	guest, ok := guestIndex[booking.GuestID]
	if !ok {
		guest = GuestInfo{Name: constant.PlaceholderGuestName, Email: constant.PlaceholderGuestEmail}
	}

	rooms := ResolveRooms(booking.RoomRefs, roomIndex)
	summary := paymentIndex[booking.ID]

	paymentStatus := constant.DefaultPaymentStatus
	if summary.HasLatest && summary.Latest.Status != "" {
		paymentStatus = Capitalize(summary.Latest.Status)
	}

	return BookingView{
		ID:            booking.ID,
		GuestName:     guest.Name,
		GuestEmail:    guest.Email,
		RoomNos:       RoomNumbers(rooms),
		Categories:    CategoryNames(rooms),
		RoomCount:     len(rooms),
		CheckIn:       booking.CheckIn.Format(constant.DisplayDateFormat, constant.PlaceholderDate),
		CheckOut:      booking.CheckOut.Format(constant.DisplayDateFormat, constant.PlaceholderDate),
		Persons:       booking.Persons,
		Status:        statusOrDefault(booking.Status, constant.DefaultBookingStatus),
		PaymentStatus: paymentStatus,
		TotalPaid:     summary.TotalPaid,
	}
}

// BuildBookingViews denormalizes a booking snapshot in input order.
func BuildBookingViews(
	bookings []bookingmodel.Booking,
	roomIndex map[string]RoomInfo,
	guestIndex map[string]GuestInfo,
	paymentIndex map[string]PaymentSummary,
) []BookingView {
	views := make([]BookingView, 0, len(bookings))

	for _, booking := range bookings {
		views = append(views, BuildBookingView(booking, roomIndex, guestIndex, paymentIndex))
	}

	return views
}

// BookingDetail is the expanded single-booking page: per-room rows instead of
// comma-joined columns, plus the latest payment fields.
type BookingDetail struct {
	ID             string     `json:"id"`
	GuestName      string     `json:"guest_name"`
	GuestEmail     string     `json:"guest_email"`
	Rooms          []RoomInfo `json:"rooms"`
	CheckIn        string     `json:"check_in"`
	CheckOut       string     `json:"check_out"`
	Persons        int        `json:"persons"`
	Status         string     `json:"status"`
	PaymentMethod  string     `json:"payment_method"`
	SecondaryEmail string     `json:"secondary_email"`
	PaymentStatus  string     `json:"payment_status"`
	PaymentType    string     `json:"payment_type"`
	PaymentDate    string     `json:"payment_date"`
	AmountPaid     string     `json:"amount_paid"`
	TotalPaid      float64    `json:"total_paid"`
	ReceiptPath    string     `json:"receipt_path"`
}

// BuildBookingDetail resolves one booking the way the detail page shows it.
func BuildBookingDetail(
	booking bookingmodel.Booking,
	roomIndex map[string]RoomInfo,
	guestIndex map[string]GuestInfo,
	payments []paymentmodel.Payment,
) BookingDetail {
	guest, ok := guestIndex[booking.GuestID]
	if !ok {
		guest = GuestInfo{Name: constant.PlaceholderGuestName, Email: constant.PlaceholderGuestEmail}
	}

	detail := BookingDetail{
		ID:             booking.ID,
		GuestName:      guest.Name,
		GuestEmail:     guest.Email,
		Rooms:          ResolveRooms(booking.RoomRefs, roomIndex),
		CheckIn:        booking.CheckIn.Format(constant.DisplayDateFormat, constant.PlaceholderDate),
		CheckOut:       booking.CheckOut.Format(constant.DisplayDateFormat, constant.PlaceholderDate),
		Persons:        booking.Persons,
		Status:         statusOrDefault(booking.Status, constant.DefaultBookingStatus),
		PaymentMethod:  booking.PaymentMethod,
		SecondaryEmail: booking.SecondaryEmail,
		PaymentStatus:  constant.DefaultPaymentStatus,
	}

	summary := BuildPaymentIndex(payments)[booking.ID]
	detail.TotalPaid = summary.TotalPaid

	if summary.HasLatest {
		latest := summary.Latest

		if latest.Status != "" {
			detail.PaymentStatus = Capitalize(latest.Status)
		}

		detail.PaymentType = latest.PaymentType
		detail.PaymentDate = latest.PaymentDate.Format(constant.DisplayDateFormat, constant.PlaceholderDate)
		detail.AmountPaid = latest.Amount
		detail.ReceiptPath = latest.ReceiptPath
	}

	return detail
}

// AdvancePaymentView is one row of the advance-payments table.
type AdvancePaymentView struct {
	ID        string `json:"id"`
	BookingID string `json:"booking_id"`
	GuestName string `json:"guest_name"`
	RoomNos   string `json:"room_nos"`
	DateRange string `json:"date_range"`
	Advance   string `json:"advance"`
	Receipt   string `json:"receipt"`
	Status    string `json:"status"`
}

// FormatDateRange renders "checkIn → checkOut" with each missing side shown
// as a placeholder.
func FormatDateRange(booking bookingmodel.Booking) string {
	checkIn := booking.CheckIn.Format(constant.RangeDateFormat, constant.PlaceholderDateSide)
	checkOut := booking.CheckOut.Format(constant.RangeDateFormat, constant.PlaceholderDateSide)

	return checkIn + " → " + checkOut
}

// BuildAdvancePaymentViews keeps only payments marked as advances and joins
// each against its booking, guest and rooms. A payment whose booking dangles
// still renders, with placeholders in the booking-derived columns.
func BuildAdvancePaymentViews(
	payments []paymentmodel.Payment,
	bookings []bookingmodel.Booking,
	roomIndex map[string]RoomInfo,
	guestIndex map[string]GuestInfo,
) []AdvancePaymentView {
	bookingByID := make(map[string]bookingmodel.Booking, len(bookings))
	for _, booking := range bookings {
		bookingByID[booking.ID] = booking
	}

	views := []AdvancePaymentView{}

	for _, payment := range payments {
		if !payment.IsAdvance() {
			continue
		}

		view := AdvancePaymentView{
			ID:        payment.ID,
			BookingID: payment.BookingID,
			GuestName: constant.PlaceholderGuestName,
			RoomNos:   constant.PlaceholderRoomNo,
			DateRange: constant.PlaceholderDateSide + " → " + constant.PlaceholderDateSide,
			Advance:   payment.Advance,
			Receipt:   payment.ReceiptPath,
			Status:    statusOrDefault(payment.Status, constant.DefaultPaymentStatus),
		}

		if booking, ok := bookingByID[payment.BookingID]; ok {
			if guest, ok := guestIndex[booking.GuestID]; ok {
				view.GuestName = guest.Name
			}

			view.RoomNos = RoomNumbers(ResolveRooms(booking.RoomRefs, roomIndex))
			view.DateRange = FormatDateRange(booking)
		}

		views = append(views, view)
	}

	return views
}
