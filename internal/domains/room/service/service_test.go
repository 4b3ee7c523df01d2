package service_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"

	"lalazar/config"
	"lalazar/infras/otel/mocks"
	categoryMocks "lalazar/internal/domains/category/mocks"
	categoryModel "lalazar/internal/domains/category/model"
	hotelMocks "lalazar/internal/domains/hotel/mocks"
	hotelModel "lalazar/internal/domains/hotel/model"
	roomMocks "lalazar/internal/domains/room/mocks"
	"lalazar/internal/domains/room/model"
	"lalazar/internal/domains/room/model/dto"
	"lalazar/internal/domains/room/service"
	cacheMocks "lalazar/shared/cache/mocks"
	"lalazar/shared/constant"
	gDto "lalazar/shared/dto"
	"lalazar/shared/failure"
)

type roomMockSet struct {
	repo       *roomMocks.MockRoom
	categories *categoryMocks.MockCategory
	hotels     *hotelMocks.MockHotel
	cache      *cacheMocks.MockRedisCache
}

func newRoomService(t *testing.T, ctrl *gomock.Controller) (service.Room, roomMockSet, string) {
	set := roomMockSet{
		repo:       roomMocks.NewMockRoom(ctrl),
		categories: categoryMocks.NewMockCategory(ctrl),
		hotels:     hotelMocks.NewMockHotel(ctrl),
		cache:      cacheMocks.NewMockRedisCache(ctrl),
	}

	fallbackPath := filepath.Join(t.TempDir(), "roomsdata.json")

	cfg := &config.Config{}
	cfg.Cache.TTL = 3600
	cfg.Rooms.FallbackFile = fallbackPath

	svc := service.New(set.repo, set.categories, set.hotels, cfg, set.cache, mocks.NewOtel())

	return svc, set, fallbackPath
}

func TestRoomService_GetAll(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, set, _ := newRoomService(t, ctrl)

	set.cache.EXPECT().
		Get(gomock.Any(), gomock.Any(), gomock.Any()).
		Return(errors.New("cache miss"))
	set.cache.EXPECT().
		Save(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
		Return(nil).
		AnyTimes()

	set.repo.EXPECT().
		GetAll(gomock.Any(), gomock.Any(), gomock.Any()).
		Return([]model.Room{
			{ID: "R1", RoomNo: "101", CategoryID: "C1", HotelID: "H1", Status: model.StatusAvailable},
		}, nil)
	set.repo.EXPECT().
		Count(gomock.Any(), gomock.Any()).
		Return(1, nil)
	set.categories.EXPECT().
		GetAll(gomock.Any(), gomock.Any(), gomock.Any()).
		Return([]categoryModel.Category{{ID: "C1", CategoryName: "Deluxe"}}, nil)
	set.hotels.EXPECT().
		GetAll(gomock.Any(), gomock.Any(), gomock.Any()).
		Return([]hotelModel.Hotel{{ID: "H1", HotelName: "Lalazar Resort"}}, nil)

	// background fallback refresh re-reads the room list
	set.repo.EXPECT().
		GetAll(gomock.Any(), gomock.Any(), gomock.Any()).
		Return([]model.Room{}, nil).
		AnyTimes()

	res, err := svc.GetAll(context.Background(), gDto.QueryParams{Limit: 10, Page: 1}, gDto.ViewQuery{})

	time.Sleep(10 * time.Millisecond)

	assert.NoError(t, err)
	assert.Equal(t, 1, res.TotalData)
	assert.Equal(t, "Deluxe", res.Rooms[0].CategoryName)
	assert.Equal(t, "Lalazar Resort", res.Rooms[0].HotelName)
}

func TestRoomService_GetAll_FallsBackWhenPrimaryFails(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, set, fallbackPath := newRoomService(t, ctrl)

	snapshot := `{"roomsData":[` +
		`{"id":"R1","room_no":"101","category_id":"C1","hotel_id":"H1","status":"Available"},` +
		`{"id":"R2","room_no":"202","category_id":"C2","hotel_id":"H1","status":"Booked"}]}`
	assert.NoError(t, os.WriteFile(fallbackPath, []byte(snapshot), 0o600))

	set.cache.EXPECT().
		Get(gomock.Any(), gomock.Any(), gomock.Any()).
		Return(errors.New("cache miss"))

	set.repo.EXPECT().
		GetAll(gomock.Any(), gomock.Any(), gomock.Any()).
		Return(nil, errors.New("connection refused"))

	res, err := svc.GetAll(context.Background(), gDto.QueryParams{}, gDto.ViewQuery{Status: "available"})

	assert.NoError(t, err)
	assert.Equal(t, 1, res.TotalData)
	assert.Equal(t, "R1", res.Rooms[0].ID)
}

func TestRoomService_Create_DuplicateRoomNo(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, set, _ := newRoomService(t, ctrl)

	set.repo.EXPECT().
		Exist(gomock.Any(), gomock.Any()).
		Return(true, nil)

	ctx := context.WithValue(context.Background(), constant.ContextKeyUserID, "admin-1")
	err := svc.Create(ctx, dto.CreateRoomRequest{RoomNo: "101", CategoryID: "C1", HotelID: "H1"})

	assert.Error(t, err)
	assert.Equal(t, 409, failure.GetCode(err))
}

func TestRoomService_Update_NotFound(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, set, _ := newRoomService(t, ctrl)

	set.repo.EXPECT().
		Exist(gomock.Any(), gomock.Any()).
		Return(false, nil)

	ctx := context.WithValue(context.Background(), constant.ContextKeyUserID, "admin-1")
	err := svc.Update(ctx, dto.UpdateRoomRequest{Status: model.StatusCleaning}, "missing")

	assert.Error(t, err)
	assert.Equal(t, 404, failure.GetCode(err))
}
