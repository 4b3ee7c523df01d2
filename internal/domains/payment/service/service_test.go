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
	s3Mocks "lalazar/infras/s3/mocks"
	bookingMocks "lalazar/internal/domains/booking/mocks"
	bookingModel "lalazar/internal/domains/booking/model"
	categoryMocks "lalazar/internal/domains/category/mocks"
	categoryModel "lalazar/internal/domains/category/model"
	guestMocks "lalazar/internal/domains/guest/mocks"
	guestModel "lalazar/internal/domains/guest/model"
	hotelMocks "lalazar/internal/domains/hotel/mocks"
	hotelModel "lalazar/internal/domains/hotel/model"
	paymentMocks "lalazar/internal/domains/payment/mocks"
	"lalazar/internal/domains/payment/model"
	"lalazar/internal/domains/payment/model/dto"
	"lalazar/internal/domains/payment/service"
	roomMocks "lalazar/internal/domains/room/mocks"
	roomModel "lalazar/internal/domains/room/model"
	eventMocks "lalazar/internal/events/mocks"
	cacheMocks "lalazar/shared/cache/mocks"
	"lalazar/shared/constant"
	gDto "lalazar/shared/dto"
	"lalazar/shared/failure"
	gModel "lalazar/shared/model"
)

type paymentMockSet struct {
	repo       *paymentMocks.MockPayment
	bookings   *bookingMocks.MockBooking
	rooms      *roomMocks.MockRoom
	categories *categoryMocks.MockCategory
	hotels     *hotelMocks.MockHotel
	guests     *guestMocks.MockGuest
	publisher  *eventMocks.MockPublisher
	cache      *cacheMocks.MockRedisCache
	s3         *s3Mocks.MockS3
}

func newPaymentService(ctrl *gomock.Controller) (service.Payment, paymentMockSet) {
	set := paymentMockSet{
		repo:       paymentMocks.NewMockPayment(ctrl),
		bookings:   bookingMocks.NewMockBooking(ctrl),
		rooms:      roomMocks.NewMockRoom(ctrl),
		categories: categoryMocks.NewMockCategory(ctrl),
		hotels:     hotelMocks.NewMockHotel(ctrl),
		guests:     guestMocks.NewMockGuest(ctrl),
		publisher:  eventMocks.NewMockPublisher(ctrl),
		cache:      cacheMocks.NewMockRedisCache(ctrl),
		s3:         s3Mocks.NewMockS3(ctrl),
	}

	cfg := &config.Config{}
	cfg.Cache.TTL = 3600
	cfg.External.S3.BucketName = "lalazar"
	cfg.External.S3.ReceiptDir = "receipts"

	svc := service.New(
		set.repo,
		set.bookings,
		set.rooms,
		set.categories,
		set.hotels,
		set.guests,
		set.publisher,
		cfg,
		set.cache,
		mocks.NewOtel(),
		set.s3,
	)

	return svc, set
}

func flexAt(seconds int64) gModel.FlexTime {
	return gModel.NewFlexTime(time.Unix(seconds, 0).UTC())
}

func TestPaymentService_GetAdvanceViews(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, set := newPaymentService(ctrl)

	set.cache.EXPECT().
		Get(gomock.Any(), gomock.Any(), gomock.Any()).
		Return(errors.New("cache miss"))
	set.cache.EXPECT().
		Save(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
		Return(nil).
		AnyTimes()

	set.repo.EXPECT().
		GetAll(gomock.Any(), gomock.Any(), gomock.Any()).
		Return([]model.Payment{
			{ID: "P1", BookingID: "B1", Advance: "2000", Status: "pending"},
			{ID: "P2", BookingID: "B1", Advance: "0"},
			{ID: "P3", BookingID: "B-dangling", Advance: "500"},
		}, nil)
	set.bookings.EXPECT().
		GetAll(gomock.Any(), gomock.Any(), gomock.Any()).
		Return([]bookingModel.Booking{
			{ID: "B1", GuestID: "G1", RoomRefs: gModel.RoomRefs{"R1"}, CheckIn: flexAt(1000), CheckOut: flexAt(2000)},
		}, nil)
	set.rooms.EXPECT().
		GetAll(gomock.Any(), gomock.Any(), gomock.Any()).
		Return([]roomModel.Room{{ID: "R1", RoomNo: "101", CategoryID: "C1", HotelID: "H1"}}, nil)
	set.categories.EXPECT().
		GetAll(gomock.Any(), gomock.Any(), gomock.Any()).
		Return([]categoryModel.Category{{ID: "C1", CategoryName: "Deluxe"}}, nil)
	set.hotels.EXPECT().
		GetAll(gomock.Any(), gomock.Any(), gomock.Any()).
		Return([]hotelModel.Hotel{{ID: "H1", HotelName: "Lalazar Resort"}}, nil)
	set.guests.EXPECT().
		GetAll(gomock.Any(), gomock.Any(), gomock.Any()).
		Return([]guestModel.Guest{{ID: "G1", UserName: "ali", UserEmail: "ali@lalazar.pk"}}, nil)

	res, err := svc.GetAdvanceViews(context.Background(), gDto.QueryParams{}, gDto.ViewQuery{})

	time.Sleep(10 * time.Millisecond)

	assert.NoError(t, err)
	assert.Equal(t, 2, res.TotalData)

	first := res.Payments[0]
	assert.Equal(t, "P1", first.ID)
	assert.Equal(t, "ali", first.GuestName)
	assert.Equal(t, "101", first.RoomNos)
	assert.Equal(t, "Pending", first.Status)

	dangling := res.Payments[1]
	assert.Equal(t, "P3", dangling.ID)
	assert.Equal(t, "Unknown User", dangling.GuestName)
	assert.Equal(t, "N/A", dangling.RoomNos)
	assert.Equal(t, "N/A → N/A", dangling.DateRange)
}

func TestPaymentService_UpdateStatus(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, set := newPaymentService(ctrl)

	tests := []struct {
		name      string
		req       dto.UpdatePaymentStatusRequest
		setupMock func()
		wantErr   bool
		wantCode  int
	}{
		{
			name: "verify pending payment",
			req:  dto.UpdatePaymentStatusRequest{Status: "verified"},
			setupMock: func() {
				set.repo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(model.Payment{ID: "P1", BookingID: "B1", Status: model.StatusPending}, nil)
				set.repo.EXPECT().
					Update(gomock.Any(), gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ context.Context, fields map[string]any, _ gDto.FilterGroup) error {
						assert.Equal(t, "Verified", fields["status"])

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
			name:      "status outside staff decisions rejected",
			req:       dto.UpdatePaymentStatusRequest{Status: "failed"},
			setupMock: func() {},
			wantErr:   true,
			wantCode:  400,
		},
		{
			name: "verified payment cannot be reopened",
			req:  dto.UpdatePaymentStatusRequest{Status: "rejected"},
			setupMock: func() {
				set.repo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(model.Payment{ID: "P1", BookingID: "B1", Status: model.StatusVerified}, nil)
			},
			wantErr:  true,
			wantCode: 409,
		},
		{
			name: "payment not found",
			req:  dto.UpdatePaymentStatusRequest{Status: "Verified"},
			setupMock: func() {
				set.repo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(model.Payment{}, nil)
			},
			wantErr:  true,
			wantCode: 404,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.setupMock()

			ctx := context.WithValue(context.Background(), constant.ContextKeyUserID, "admin-1")
			err := svc.UpdateStatus(ctx, "P1", tt.req)

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

func TestPaymentService_DeleteReceipt(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, set := newPaymentService(ctrl)

	set.repo.EXPECT().
		Get(gomock.Any(), gomock.Any()).
		Return(model.Payment{ID: "P1", BookingID: "B1", ReceiptPath: "https://cdn.lalazar.pk/receipts/P1_slip.png"}, nil)
	set.s3.EXPECT().
		GetObjectNameFromURL("lalazar", "https://cdn.lalazar.pk/receipts/P1_slip.png").
		Return("P1_slip.png")
	set.s3.EXPECT().
		DeleteFile(gomock.Any(), "lalazar", "receipts", "P1_slip.png").
		Return(nil)
	set.repo.EXPECT().
		Update(gomock.Any(), gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, fields map[string]any, _ gDto.FilterGroup) error {
			assert.Equal(t, "", fields["receipt_path"])

			return nil
		})
	set.cache.EXPECT().
		Delete(gomock.Any(), gomock.Any()).
		Return(nil).
		AnyTimes()
	set.cache.EXPECT().
		Clear(gomock.Any(), gomock.Any()).
		Return(nil).
		AnyTimes()

	ctx := context.WithValue(context.Background(), constant.ContextKeyUserID, "admin-1")
	err := svc.DeleteReceipt(ctx, "P1")

	time.Sleep(10 * time.Millisecond)

	assert.NoError(t, err)
}

func TestPaymentService_DeleteReceipt_NoReceipt(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, set := newPaymentService(ctrl)

	set.repo.EXPECT().
		Get(gomock.Any(), gomock.Any()).
		Return(model.Payment{ID: "P1", BookingID: "B1"}, nil)

	ctx := context.WithValue(context.Background(), constant.ContextKeyUserID, "admin-1")
	err := svc.DeleteReceipt(ctx, "P1")

	assert.Error(t, err)
	assert.Equal(t, 404, failure.GetCode(err))
}
