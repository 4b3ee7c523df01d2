// Package aggregate joins the room, guest, booking and payment collections
// into the denormalized rows the admin dashboard renders. Lookup indexes are
// built once per pass from immutable snapshots; dangling references and
// malformed values degrade to placeholders, never to errors.
package aggregate

import (
	"regexp"
	"strconv"
	"strings"
	"unicode"

	categorymodel "lalazar/internal/domains/category/model"
	guestmodel "lalazar/internal/domains/guest/model"
	hotelmodel "lalazar/internal/domains/hotel/model"
	paymentmodel "lalazar/internal/domains/payment/model"
	roommodel "lalazar/internal/domains/room/model"
	"lalazar/shared/constant"
)

// RoomInfo is a room row flattened against its category and hotel lookups.
type RoomInfo struct {
	RoomNo       string `json:"room_no"`
	CategoryName string `json:"category_name"`
	HotelName    string `json:"hotel_name"`
}

// GuestInfo carries the display identity of a guest after the legacy
// name/email fallback chain is applied.
type GuestInfo struct {
	Name  string `json:"name"`
	Email string `json:"email"`
}

// PaymentSummary aggregates all payments of one booking. Latest follows the
// payment date, with ties and unparseable dates resolved to the row that
// appears last in input order. TotalPaid sums every row regardless of which
// one is latest.
type PaymentSummary struct {
	Latest    paymentmodel.Payment
	HasLatest bool
	TotalPaid float64
}

// BuildRoomIndex maps room id to RoomInfo. A room whose category or hotel
// reference dangles still gets an entry, with the placeholder filled in.
func BuildRoomIndex(rooms []roommodel.Room, categories []categorymodel.Category, hotels []hotelmodel.Hotel) map[string]RoomInfo {
	categoryNames := make(map[string]string, len(categories))
	for _, category := range categories {
		categoryNames[category.ID] = category.CategoryName
	}

	hotelNames := make(map[string]string, len(hotels))
	for _, hotel := range hotels {
		hotelNames[hotel.ID] = hotel.HotelName
	}

	index := make(map[string]RoomInfo, len(rooms))

	for _, room := range rooms {
		info := RoomInfo{
			RoomNo:       room.RoomNo,
			CategoryName: categoryNames[room.CategoryID],
			HotelName:    hotelNames[room.HotelID],
		}

		if info.RoomNo == "" {
			info.RoomNo = constant.PlaceholderRoomNo
		}

		if info.CategoryName == "" {
			info.CategoryName = constant.PlaceholderCategory
		}

		if info.HotelName == "" {
			info.HotelName = constant.PlaceholderHotel
		}

		index[room.ID] = info
	}

	return index
}

// BuildGuestIndex maps guest id to GuestInfo, preferring user_name over
// full_name and user_email over email.
func BuildGuestIndex(guests []guestmodel.Guest) map[string]GuestInfo {
	index := make(map[string]GuestInfo, len(guests))

	for _, guest := range guests {
		info := GuestInfo{
			Name:  guest.UserName,
			Email: guest.UserEmail,
		}

		if info.Name == "" {
			info.Name = guest.FullName
		}

		if info.Name == "" {
			info.Name = constant.PlaceholderGuestName
		}

		if info.Email == "" {
			info.Email = guest.Email
		}

		if info.Email == "" {
			info.Email = constant.PlaceholderGuestEmail
		}

		index[guest.ID] = info
	}

	return index
}

// BuildPaymentIndex maps booking id to the payment summary of that booking.
func BuildPaymentIndex(payments []paymentmodel.Payment) map[string]PaymentSummary {
	index := map[string]PaymentSummary{}

	for _, payment := range payments {
		summary := index[payment.BookingID]

		if !summary.HasLatest || !summary.Latest.PaymentDate.After(payment.PaymentDate) {
			summary.Latest = payment
			summary.HasLatest = true
		}

		summary.TotalPaid += SanitizeAmount(payment.Amount)
		index[payment.BookingID] = summary
	}

	return index
}

var nonAmountChars = regexp.MustCompile(`[^0-9.]`)

// SanitizeAmount strips everything but digits and dots from a loosely
// formatted amount and parses the remainder. Anything unparseable counts
// as zero.
func SanitizeAmount(amount string) float64 {
	cleaned := nonAmountChars.ReplaceAllString(amount, "")
	if cleaned == "" {
		return 0
	}

	value, err := strconv.ParseFloat(cleaned, 64)
	if err != nil {
		return 0
	}

	return value
}

// SumAmounts sanitizes and sums a list of amount strings.
func SumAmounts(amounts []string) float64 {
	var total float64
	for _, amount := range amounts {
		total += SanitizeAmount(amount)
	}

	return total
}

// Capitalize upper-cases the first rune and leaves the rest untouched.
func Capitalize(s string) string {
	if s == "" {
		return s
	}

	runes := []rune(s)
	runes[0] = unicode.ToUpper(runes[0])

	return string(runes)
}

// ResolveRooms maps booking room refs through the index in ref order,
// skipping refs that dangle.
func ResolveRooms(refs []string, roomIndex map[string]RoomInfo) []RoomInfo {
	resolved := make([]RoomInfo, 0, len(refs))

	for _, ref := range refs {
		if info, ok := roomIndex[ref]; ok {
			resolved = append(resolved, info)
		}
	}

	return resolved
}

func joinRoomField(rooms []RoomInfo, pick func(RoomInfo) string, placeholder string) string {
	if len(rooms) == 0 {
		return placeholder
	}

	parts := make([]string, len(rooms))
	for idx, room := range rooms {
		parts[idx] = pick(room)
	}

	return strings.Join(parts, ", ")
}

// RoomNumbers comma-joins room numbers in ref order.
func RoomNumbers(rooms []RoomInfo) string {
	return joinRoomField(rooms, func(r RoomInfo) string { return r.RoomNo }, constant.PlaceholderRoomNo)
}

// CategoryNames comma-joins category names in ref order.
func CategoryNames(rooms []RoomInfo) string {
	return joinRoomField(rooms, func(r RoomInfo) string { return r.CategoryName }, constant.PlaceholderCategory)
}

func statusOrDefault(status, fallback string) string {
	if status == "" {
		return fallback
	}

	return Capitalize(status)
}
