package service_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"

	"lalazar/config"
	"lalazar/infras/otel/mocks"
	bookingMocks "lalazar/internal/domains/booking/mocks"
	"lalazar/internal/domains/booking/model"
	"lalazar/internal/domains/booking/model/dto"
	"lalazar/internal/domains/booking/service"
	categoryMocks "lalazar/internal/domains/category/mocks"
	categoryModel "lalazar/internal/domains/category/model"
	guestMocks "lalazar/internal/domains/guest/mocks"
	guestModel "lalazar/internal/domains/guest/model"
	hotelMocks "lalazar/internal/domains/hotel/mocks"
	hotelModel "lalazar/internal/domains/hotel/model"
	paymentMocks "lalazar/internal/domains/payment/mocks"
	paymentModel "lalazar/internal/domains/payment/model"
	roomMocks "lalazar/internal/domains/room/mocks"
	roomModel "lalazar/internal/domains/room/model"
	eventMocks "lalazar/internal/events/mocks"
	cacheMocks "lalazar/shared/cache/mocks"
	"lalazar/shared/constant"
	gDto "lalazar/shared/dto"
	"lalazar/shared/failure"
	gModel "lalazar/shared/model"
)

type bookingMockSet struct {
	repo       *bookingMocks.MockBooking
	rooms      *roomMocks.MockRoom
	categories *categoryMocks.MockCategory
	hotels     *hotelMocks.MockHotel
	guests     *guestMocks.MockGuest
	payments   *paymentMocks.MockPayment
	publisher  *eventMocks.MockPublisher
	cache      *cacheMocks.MockRedisCache
}

func newBookingService(ctrl *gomock.Controller) (service.Booking, bookingMockSet) {
	set := bookingMockSet{
		repo:       bookingMocks.NewMockBooking(ctrl),
		rooms:      roomMocks.NewMockRoom(ctrl),
		categories: categoryMocks.NewMockCategory(ctrl),
		hotels:     hotelMocks.NewMockHotel(ctrl),
		guests:     guestMocks.NewMockGuest(ctrl),
		payments:   paymentMocks.NewMockPayment(ctrl),
		publisher:  eventMocks.NewMockPublisher(ctrl),
		cache:      cacheMocks.NewMockRedisCache(ctrl),
	}

	cfg := &config.Config{}
	cfg.Cache.TTL = 3600

	svc := service.New(
		set.repo,
		set.rooms,
		set.categories,
		set.hotels,
		set.guests,
		set.payments,
		set.publisher,
		cfg,
		set.cache,
		mocks.NewOtel(),
	)

	return svc, set
}

func flexAt(seconds int64) gModel.FlexTime {
	return gModel.NewFlexTime(time.Unix(seconds, 0).UTC())
}

func expectSnapshot(set bookingMockSet) {
	set.rooms.EXPECT().
		GetAll(gomock.Any(), gomock.Any(), gomock.Any()).
		Return([]roomModel.Room{
			{ID: "R1", RoomNo: "101", CategoryID: "C1", HotelID: "H1"},
			{ID: "R2", RoomNo: "202", CategoryID: "C1", HotelID: "H1"},
		}, nil)
	set.categories.EXPECT().
		GetAll(gomock.Any(), gomock.Any(), gomock.Any()).
		Return([]categoryModel.Category{{ID: "C1", CategoryName: "Deluxe"}}, nil)
	set.hotels.EXPECT().
		GetAll(gomock.Any(), gomock.Any(), gomock.Any()).
		Return([]hotelModel.Hotel{{ID: "H1", HotelName: "Lalazar Resort"}}, nil)
	set.guests.EXPECT().
		GetAll(gomock.Any(), gomock.Any(), gomock.Any()).
		Return([]guestModel.Guest{{ID: "G1", UserName: "ali", UserEmail: "ali@lalazar.pk"}}, nil)
	set.payments.EXPECT().
		GetAll(gomock.Any(), gomock.Any(), gomock.Any()).
		Return([]paymentModel.Payment{
			{ID: "P1", BookingID: "B1", Amount: "$100", PaymentDate: flexAt(100), Status: "verified"},
			{ID: "P2", BookingID: "B1", Amount: "50.5", PaymentDate: flexAt(300), Status: "pending"},
		}, nil)
}

func TestBookingService_GetViews(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, set := newBookingService(ctrl)

	set.cache.EXPECT().
		Get(gomock.Any(), gomock.Any(), gomock.Any()).
		Return(errors.New("cache miss"))
	set.cache.EXPECT().
		Save(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
		Return(nil).
		AnyTimes()

	expectSnapshot(set)

	set.repo.EXPECT().
		GetAll(gomock.Any(), gomock.Any(), gomock.Any()).
		Return([]model.Booking{
			{ID: "B1", GuestID: "G1", RoomRefs: gModel.RoomRefs{"R1", "R2"}, CheckIn: flexAt(1000), CheckOut: flexAt(2000), Persons: 2},
			{ID: "B2", GuestID: "G-missing", RoomRefs: gModel.RoomRefs{"R-missing"}, Status: "confirmed"},
		}, nil)

	res, err := svc.GetViews(context.Background(), gDto.QueryParams{}, gDto.ViewQuery{})

	time.Sleep(10 * time.Millisecond)

	assert.NoError(t, err)
	assert.Equal(t, 2, res.TotalData)

	first := res.Bookings[0]
	assert.Equal(t, "ali", first.GuestName)
	assert.Equal(t, "ali@lalazar.pk", first.GuestEmail)
	assert.Equal(t, "101, 202", first.RoomNos)
	assert.Equal(t, "Deluxe", first.Categories)
	assert.Equal(t, "New", first.Status)
	assert.Equal(t, "Pending", first.PaymentStatus)
	assert.InDelta(t, 150.5, first.TotalPaid, 1e-9)

	second := res.Bookings[1]
	assert.Equal(t, "Unknown User", second.GuestName)
	assert.Equal(t, "N/A", second.GuestEmail)
	assert.Equal(t, "Confirmed", second.Status)
}

func TestBookingService_GetViews_Filtered(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, set := newBookingService(ctrl)

	set.cache.EXPECT().
		Get(gomock.Any(), gomock.Any(), gomock.Any()).
		Return(errors.New("cache miss"))
	set.cache.EXPECT().
		Save(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
		Return(nil).
		AnyTimes()

	expectSnapshot(set)

	set.repo.EXPECT().
		GetAll(gomock.Any(), gomock.Any(), gomock.Any()).
		Return([]model.Booking{
			{ID: "B1", GuestID: "G1", RoomRefs: gModel.RoomRefs{"R1"}},
			{ID: "B2", GuestID: "G-missing"},
		}, nil)

	res, err := svc.GetViews(context.Background(), gDto.QueryParams{}, gDto.ViewQuery{Query: "ali"})

	time.Sleep(10 * time.Millisecond)

	assert.NoError(t, err)
	assert.Equal(t, 1, res.TotalData)
	assert.Equal(t, "B1", res.Bookings[0].ID)
}

func TestBookingService_GetViews_CacheHit(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, set := newBookingService(ctrl)

	set.cache.EXPECT().
		Get(gomock.Any(), gomock.Any(), gomock.Any()).
		Return(nil)

	_, err := svc.GetViews(context.Background(), gDto.QueryParams{}, gDto.ViewQuery{})

	assert.NoError(t, err)
}

func TestBookingService_GetViews_SnapshotError(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, set := newBookingService(ctrl)

	set.cache.EXPECT().
		Get(gomock.Any(), gomock.Any(), gomock.Any()).
		Return(errors.New("cache miss"))

	set.rooms.EXPECT().
		GetAll(gomock.Any(), gomock.Any(), gomock.Any()).
		Return(nil, errors.New("database error"))
	set.categories.EXPECT().
		GetAll(gomock.Any(), gomock.Any(), gomock.Any()).
		Return([]categoryModel.Category{}, nil).
		AnyTimes()
	set.hotels.EXPECT().
		GetAll(gomock.Any(), gomock.Any(), gomock.Any()).
		Return([]hotelModel.Hotel{}, nil).
		AnyTimes()
	set.guests.EXPECT().
		GetAll(gomock.Any(), gomock.Any(), gomock.Any()).
		Return([]guestModel.Guest{}, nil).
		AnyTimes()
	set.payments.EXPECT().
		GetAll(gomock.Any(), gomock.Any(), gomock.Any()).
		Return([]paymentModel.Payment{}, nil).
		AnyTimes()

	_, err := svc.GetViews(context.Background(), gDto.QueryParams{}, gDto.ViewQuery{})

	assert.Error(t, err)
}

func TestBookingService_GetDetail(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, set := newBookingService(ctrl)

	set.cache.EXPECT().
		Get(gomock.Any(), gomock.Any(), gomock.Any()).
		Return(errors.New("cache miss"))
	set.cache.EXPECT().
		Save(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
		Return(nil).
		AnyTimes()

	set.repo.EXPECT().
		Get(gomock.Any(), gomock.Any()).
		Return(model.Booking{
			ID:       "B1",
			GuestID:  "G1",
			RoomRefs: gModel.RoomRefs{"R1"},
			CheckIn:  flexAt(1000),
			CheckOut: flexAt(2000),
			Persons:  3,
		}, nil)

	expectSnapshot(set)

	res, err := svc.GetDetail(context.Background(), "B1")

	time.Sleep(10 * time.Millisecond)

	assert.NoError(t, err)
	assert.Equal(t, "B1", res.ID)
	assert.Equal(t, "ali", res.GuestName)
	assert.Equal(t, 3, res.Persons)
	assert.Equal(t, "Pending", res.PaymentStatus)
	assert.InDelta(t, 150.5, res.TotalPaid, 1e-9)
	assert.Len(t, res.Rooms, 1)
	assert.Equal(t, "101", res.Rooms[0].RoomNo)
}

func TestBookingService_GetDetail_NotFound(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, set := newBookingService(ctrl)

	set.cache.EXPECT().
		Get(gomock.Any(), gomock.Any(), gomock.Any()).
		Return(errors.New("cache miss"))

	set.repo.EXPECT().
		Get(gomock.Any(), gomock.Any()).
		Return(model.Booking{}, nil)

	_, err := svc.GetDetail(context.Background(), "missing")

	assert.Error(t, err)
	assert.Equal(t, 404, failure.GetCode(err))
}

func TestBookingService_UpdateStatus(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, set := newBookingService(ctrl)

	tests := []struct {
		name      string
		req       dto.UpdateBookingStatusRequest
		setupMock func()
		wantErr   bool
		wantCode  int
	}{
		{
			name: "successful update, lowercase input capitalized",
			req:  dto.UpdateBookingStatusRequest{Status: "confirmed"},
			setupMock: func() {
				set.repo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(model.Booking{ID: "B1", Status: "New"}, nil)
				set.repo.EXPECT().
					Update(gomock.Any(), gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ context.Context, fields map[string]any, _ gDto.FilterGroup) error {
						assert.Equal(t, "Confirmed", fields["status"])

						return nil
					})
				set.publisher.EXPECT().
					PublishStatusChange(gomock.Any(), gomock.Any()).
					Return(nil)
				set.cache.EXPECT().
					Delete(gomock.Any(), gomock.Any()).
					Return(nil).
					AnyTimes()
				set.cache.EXPECT().
					Clear(gomock.Any(), gomock.Any()).
					Return(nil).
					AnyTimes()
			},
			wantErr: false,
		},
		{
			name: "staff reject writes the canonical spelling",
			req:  dto.UpdateBookingStatusRequest{Status: "rejected"},
			setupMock: func() {
				set.repo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(model.Booking{ID: "B1", Status: "Pending"}, nil)
				set.repo.EXPECT().
					Update(gomock.Any(), gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ context.Context, fields map[string]any, _ gDto.FilterGroup) error {
						assert.Equal(t, "Rejected", fields["status"])

						return nil
					})
				set.publisher.EXPECT().
					PublishStatusChange(gomock.Any(), gomock.Any()).
					Return(nil)
				set.cache.EXPECT().
					Delete(gomock.Any(), gomock.Any()).
					Return(nil).
					AnyTimes()
				set.cache.EXPECT().
					Clear(gomock.Any(), gomock.Any()).
					Return(nil).
					AnyTimes()
			},
			wantErr: false,
		},
		{
			name: "guest checkout accepted with its space intact",
			req:  dto.UpdateBookingStatusRequest{Status: "checked out"},
			setupMock: func() {
				set.repo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(model.Booking{ID: "B1", Status: "Confirmed"}, nil)
				set.repo.EXPECT().
					Update(gomock.Any(), gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ context.Context, fields map[string]any, _ gDto.FilterGroup) error {
						assert.Equal(t, "Checked Out", fields["status"])

						return nil
					})
				set.publisher.EXPECT().
					PublishStatusChange(gomock.Any(), gomock.Any()).
					Return(nil)
				set.cache.EXPECT().
					Delete(gomock.Any(), gomock.Any()).
					Return(nil).
					AnyTimes()
				set.cache.EXPECT().
					Clear(gomock.Any(), gomock.Any()).
					Return(nil).
					AnyTimes()
			},
			wantErr: false,
		},
		{
			name:      "invalid status rejected",
			req:       dto.UpdateBookingStatusRequest{Status: "teleported"},
			setupMock: func() {},
			wantErr:   true,
			wantCode:  400,
		},
		{
			name: "booking not found",
			req:  dto.UpdateBookingStatusRequest{Status: "Confirmed"},
			setupMock: func() {
				set.repo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(model.Booking{}, nil)
			},
			wantErr:  true,
			wantCode: 404,
		},
		{
			name: "lost event does not fail the update",
			req:  dto.UpdateBookingStatusRequest{Status: "Cancelled"},
			setupMock: func() {
				set.repo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(model.Booking{ID: "B1", Status: "Confirmed"}, nil)
				set.repo.EXPECT().
					Update(gomock.Any(), gomock.Any(), gomock.Any()).
					Return(nil)
				set.publisher.EXPECT().
					PublishStatusChange(gomock.Any(), gomock.Any()).
					Return(errors.New("broker down"))
				set.cache.EXPECT().
					Delete(gomock.Any(), gomock.Any()).
					Return(nil).
					AnyTimes()
				set.cache.EXPECT().
					Clear(gomock.Any(), gomock.Any()).
					Return(nil).
					AnyTimes()
			},
			wantErr: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.setupMock()

			ctx := context.WithValue(context.Background(), constant.ContextKeyUserID, "admin-1")
			err := svc.UpdateStatus(ctx, "B1", tt.req)

			time.Sleep(10 * time.Millisecond)

			if tt.wantErr {
				assert.Error(t, err)
				if tt.wantCode != 0 {
					assert.Equal(t, tt.wantCode, failure.GetCode(err))
				}
			} else {
				assert.NoError(t, err)
			}
		})
	}
}
