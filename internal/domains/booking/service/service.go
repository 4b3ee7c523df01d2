package service

import (
	"context"
	"fmt"

	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"

	"lalazar/config"
	"lalazar/infras/otel"
	"lalazar/internal/aggregate"
	"lalazar/internal/domains/booking/model"
	"lalazar/internal/domains/booking/model/dto"
	"lalazar/internal/domains/booking/repository"
	categoryModel "lalazar/internal/domains/category/model"
	categoryRepo "lalazar/internal/domains/category/repository"
	guestModel "lalazar/internal/domains/guest/model"
	guestRepo "lalazar/internal/domains/guest/repository"
	hotelModel "lalazar/internal/domains/hotel/model"
	hotelRepo "lalazar/internal/domains/hotel/repository"
	paymentModel "lalazar/internal/domains/payment/model"
	paymentRepo "lalazar/internal/domains/payment/repository"
	roomModel "lalazar/internal/domains/room/model"
	roomRepo "lalazar/internal/domains/room/repository"
	"lalazar/internal/events"
	"lalazar/shared"
	"lalazar/shared/cache"
	"lalazar/shared/constant"
	gDto "lalazar/shared/dto"
	"lalazar/shared/failure"
)

const (
	cacheBookingViews  = "booking:views"
	cacheBookingDetail = "booking:detail"
)

type Booking interface {
	GetViews(ctx context.Context, params gDto.QueryParams, query gDto.ViewQuery) (dto.GetBookingViewsResponse, error)
	GetDetail(ctx context.Context, id string) (dto.BookingDetailResponse, error)
	UpdateStatus(ctx context.Context, id string, req dto.UpdateBookingStatusRequest) error
}

type serviceImpl struct {
	repo         repository.Booking
	roomRepo     roomRepo.Room
	categoryRepo categoryRepo.Category
	hotelRepo    hotelRepo.Hotel
	guestRepo    guestRepo.Guest
	paymentRepo  paymentRepo.Payment
	publisher    events.Publisher
	cfg          *config.Config
	cache        cache.RedisCache
	otel         otel.Otel
}

func New(
	repo repository.Booking,
	roomRepo roomRepo.Room,
	categoryRepo categoryRepo.Category,
	hotelRepo hotelRepo.Hotel,
	guestRepo guestRepo.Guest,
	paymentRepo paymentRepo.Payment,
	publisher events.Publisher,
	cfg *config.Config,
	cache cache.RedisCache,
	otel otel.Otel,
) Booking {
	return &serviceImpl{
		repo:         repo,
		roomRepo:     roomRepo,
		categoryRepo: categoryRepo,
		hotelRepo:    hotelRepo,
		guestRepo:    guestRepo,
		paymentRepo:  paymentRepo,
		publisher:    publisher,
		cfg:          cfg,
		cache:        cache,
		otel:         otel,
	}
}

// snapshot is one consistent read of the lookup collections an aggregation
// pass joins against.
type snapshot struct {
	rooms      []roomModel.Room
	categories []categoryModel.Category
	hotels     []hotelModel.Hotel
	guests     []guestModel.Guest
	payments   []paymentModel.Payment
}

// paymentOrder keeps payment iteration stable so the latest-payment tie-break
// (last in input order) does not depend on store iteration order.
var paymentOrder = gDto.QueryParams{SortBy: constant.FieldCreatedAt, SortDir: gDto.SortDirAsc}

func (s *serviceImpl) fetchSnapshot(ctx context.Context) (snap snapshot, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".fetchSnapshot")
	defer scope.End()
	defer scope.TraceIfError(err)

	group, ctx := errgroup.WithContext(ctx)

	group.Go(func() (err error) {
		snap.rooms, err = s.roomRepo.GetAll(ctx, gDto.QueryParams{}, gDto.FilterGroup{})

		return err
	})
	group.Go(func() (err error) {
		snap.categories, err = s.categoryRepo.GetAll(ctx, gDto.QueryParams{}, gDto.FilterGroup{})

		return err
	})
	group.Go(func() (err error) {
		snap.hotels, err = s.hotelRepo.GetAll(ctx, gDto.QueryParams{}, gDto.FilterGroup{})

		return err
	})
	group.Go(func() (err error) {
		snap.guests, err = s.guestRepo.GetAll(ctx, gDto.QueryParams{}, gDto.FilterGroup{})

		return err
	})
	group.Go(func() (err error) {
		snap.payments, err = s.paymentRepo.GetAll(ctx, paymentOrder, gDto.FilterGroup{})

		return err
	})

	if err = group.Wait(); err != nil {
		log.Error().Err(err).Msg("failed to fetch aggregation snapshot")

		return snap, fmt.Errorf("failed to fetch aggregation snapshot: %w", err)
	}

	return snap, nil
}

func (s *serviceImpl) GetViews(ctx context.Context, params gDto.QueryParams, query gDto.ViewQuery) (res dto.GetBookingViewsResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".GetViews")
	defer scope.End()
	defer scope.TraceIfError(err)

	cacheKey := shared.BuildCacheKeyWithQuery(cacheBookingViews, params, query)

	err = s.cache.Get(ctx, cacheKey, &res)
	if err == nil {
		log.Info().Str("cacheKey", cacheKey).Msg("cache hit for booking views")

		return res, nil
	}

	snap, err := s.fetchSnapshot(ctx)
	if err != nil {
		return res, err
	}

	bookings, err := s.repo.GetAll(ctx, params, gDto.FilterGroup{})
	if err != nil {
		log.Error().Err(err).Msg("failed to get bookings")

		return res, fmt.Errorf("failed to get bookings: %w", err)
	}

	roomIndex := aggregate.BuildRoomIndex(snap.rooms, snap.categories, snap.hotels)
	guestIndex := aggregate.BuildGuestIndex(snap.guests)
	paymentIndex := aggregate.BuildPaymentIndex(snap.payments)

	views := aggregate.BuildBookingViews(bookings, roomIndex, guestIndex, paymentIndex)
	views = aggregate.FilterRows(views, query)

	res.FromViews(views)

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save booking views to cache")
		}
	}()

	return res, nil
}

func (s *serviceImpl) GetDetail(ctx context.Context, id string) (res dto.BookingDetailResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".GetDetail")
	defer scope.End()
	defer scope.TraceIfError(err)

	cacheKey := shared.BuildCacheKey(cacheBookingDetail, id)

	err = s.cache.Get(ctx, cacheKey, &res)
	if err == nil {
		log.Info().Str("cacheKey", cacheKey).Msg("cache hit for booking detail")

		return res, nil
	}

	booking, err := s.repo.Get(ctx, shared.FilterByID(id, model.FieldID, model.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to get booking")

		return res, fmt.Errorf("failed to get booking: %w", err)
	}

	if booking.ID == constant.Empty {
		return res, failure.NotFound("booking not found") // nolint:wrapcheck
	}

	snap, err := s.fetchSnapshot(ctx)
	if err != nil {
		return res, err
	}

	roomIndex := aggregate.BuildRoomIndex(snap.rooms, snap.categories, snap.hotels)
	guestIndex := aggregate.BuildGuestIndex(snap.guests)

	res.FromDetail(aggregate.BuildBookingDetail(booking, roomIndex, guestIndex, snap.payments))

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save booking detail to cache")
		}
	}()

	return res, nil
}

// UpdateStatus writes the new status only after validating it, and touches
// no cached state until the store confirms the write.
func (s *serviceImpl) UpdateStatus(ctx context.Context, id string, req dto.UpdateBookingStatusRequest) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".UpdateStatus")
	defer scope.End()
	defer scope.TraceIfError(err)

	status, ok := req.Allowed()
	if !ok {
		return failure.BadRequestFromString(fmt.Sprintf("invalid booking status: %s", req.Status)) // nolint:wrapcheck
	}

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)
	filter := shared.FilterByID(id, model.FieldID, model.TableName)

	booking, err := s.repo.Get(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to get booking")

		return fmt.Errorf("failed to get booking: %w", err)
	}

	if booking.ID == constant.Empty {
		return failure.NotFound("booking not found") // nolint:wrapcheck
	}

	updatedFields := shared.TransformFields(dto.UpdateBookingStatusRequest{Status: status}, user)
	if err = s.repo.Update(ctx, updatedFields, filter); err != nil {
		log.Error().Err(err).Msg("failed to update booking status")

		return fmt.Errorf("failed to update booking status: %w", err)
	}

	if err := s.publisher.PublishStatusChange(ctx, events.StatusChange{
		Entity:    model.EntityName,
		ID:        id,
		OldStatus: booking.Status,
		NewStatus: status,
		ChangedBy: user,
	}); err != nil {
		// The write is already confirmed; a lost event is not a failed update.
		log.Warn().Err(err).Str("booking_id", id).Msg("failed to publish booking status change")
	}

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Delete(c, shared.BuildCacheKey(cacheBookingDetail, id)); err != nil {
			log.Error().Err(err).Msg("failed to delete booking detail from cache")
		}

		shared.InvalidateCaches(c, s.cache, cacheBookingViews)
	}()

	return nil
}
