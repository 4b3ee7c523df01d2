package service

import (
	"context"
	"fmt"

	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"

	"lalazar/config"
	"lalazar/infras/otel"
	"lalazar/infras/s3"
	"lalazar/internal/aggregate"
	bookingModel "lalazar/internal/domains/booking/model"
	bookingRepo "lalazar/internal/domains/booking/repository"
	categoryModel "lalazar/internal/domains/category/model"
	categoryRepo "lalazar/internal/domains/category/repository"
	guestModel "lalazar/internal/domains/guest/model"
	guestRepo "lalazar/internal/domains/guest/repository"
	hotelModel "lalazar/internal/domains/hotel/model"
	hotelRepo "lalazar/internal/domains/hotel/repository"
	"lalazar/internal/domains/payment/model"
	"lalazar/internal/domains/payment/model/dto"
	"lalazar/internal/domains/payment/repository"
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
	cacheAdvancePayments = "payment:advance"

	// Payment writes change what the booking screens show, so their caches
	// go too.
	cacheBookingViews  = "booking:views"
	cacheBookingDetail = "booking:detail"
)

var paymentOrder = gDto.QueryParams{SortBy: constant.FieldCreatedAt, SortDir: gDto.SortDirAsc}

type Payment interface {
	GetAdvanceViews(ctx context.Context, params gDto.QueryParams, query gDto.ViewQuery) (dto.GetAdvancePaymentsResponse, error)
	UpdateStatus(ctx context.Context, id string, req dto.UpdatePaymentStatusRequest) error
	UploadReceipt(ctx context.Context, id string, req dto.UploadReceiptRequest) (dto.UploadReceiptResponse, error)
	DeleteReceipt(ctx context.Context, id string) error
}

type serviceImpl struct {
	repo         repository.Payment
	bookingRepo  bookingRepo.Booking
	roomRepo     roomRepo.Room
	categoryRepo categoryRepo.Category
	hotelRepo    hotelRepo.Hotel
	guestRepo    guestRepo.Guest
	publisher    events.Publisher
	cfg          *config.Config
	cache        cache.RedisCache
	otel         otel.Otel
	s3           s3.S3
}

func New(
	repo repository.Payment,
	bookingRepo bookingRepo.Booking,
	roomRepo roomRepo.Room,
	categoryRepo categoryRepo.Category,
	hotelRepo hotelRepo.Hotel,
	guestRepo guestRepo.Guest,
	publisher events.Publisher,
	cfg *config.Config,
	cache cache.RedisCache,
	otel otel.Otel,
	s3 s3.S3,
) Payment {
	return &serviceImpl{
		repo:         repo,
		bookingRepo:  bookingRepo,
		roomRepo:     roomRepo,
		categoryRepo: categoryRepo,
		hotelRepo:    hotelRepo,
		guestRepo:    guestRepo,
		publisher:    publisher,
		cfg:          cfg,
		cache:        cache,
		otel:         otel,
		s3:           s3,
	}
}

func (s *serviceImpl) GetAdvanceViews(ctx context.Context, params gDto.QueryParams, query gDto.ViewQuery) (res dto.GetAdvancePaymentsResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".GetAdvanceViews")
	defer scope.End()
	defer scope.TraceIfError(err)

	cacheKey := shared.BuildCacheKeyWithQuery(cacheAdvancePayments, params, query)

	err = s.cache.Get(ctx, cacheKey, &res)
	if err == nil {
		log.Info().Str("cacheKey", cacheKey).Msg("cache hit for advance payments")

		return res, nil
	}

	var (
		payments   []model.Payment
		bookings   []bookingModel.Booking
		rooms      []roomModel.Room
		categories []categoryModel.Category
		hotels     []hotelModel.Hotel
		guests     []guestModel.Guest
	)

	group, groupCtx := errgroup.WithContext(ctx)

	group.Go(func() (err error) {
		payments, err = s.repo.GetAll(groupCtx, paymentOrder, gDto.FilterGroup{})

		return err
	})
	group.Go(func() (err error) {
		bookings, err = s.bookingRepo.GetAll(groupCtx, gDto.QueryParams{}, gDto.FilterGroup{})

		return err
	})
	group.Go(func() (err error) {
		rooms, err = s.roomRepo.GetAll(groupCtx, gDto.QueryParams{}, gDto.FilterGroup{})

		return err
	})
	group.Go(func() (err error) {
		categories, err = s.categoryRepo.GetAll(groupCtx, gDto.QueryParams{}, gDto.FilterGroup{})

		return err
	})
	group.Go(func() (err error) {
		hotels, err = s.hotelRepo.GetAll(groupCtx, gDto.QueryParams{}, gDto.FilterGroup{})

		return err
	})
	group.Go(func() (err error) {
		guests, err = s.guestRepo.GetAll(groupCtx, gDto.QueryParams{}, gDto.FilterGroup{})

		return err
	})

	if err = group.Wait(); err != nil {
		log.Error().Err(err).Msg("failed to fetch advance payment lookups")

		return res, fmt.Errorf("failed to fetch advance payment lookups: %w", err)
	}

	roomIndex := aggregate.BuildRoomIndex(rooms, categories, hotels)
	guestIndex := aggregate.BuildGuestIndex(guests)

	views := aggregate.BuildAdvancePaymentViews(payments, bookings, roomIndex, guestIndex)
	views = aggregate.FilterRows(views, query)

	res.FromViews(views)

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save advance payments to cache")
		}
	}()

	return res, nil
}

func (s *serviceImpl) UpdateStatus(ctx context.Context, id string, req dto.UpdatePaymentStatusRequest) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".UpdateStatus")
	defer scope.End()
	defer scope.TraceIfError(err)

	status, ok := req.Allowed()
	if !ok {
		return failure.BadRequestFromString(fmt.Sprintf("invalid payment status: %s", req.Status)) // nolint:wrapcheck
	}

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)
	filter := shared.FilterByID(id, model.FieldID, model.TableName)

	payment, err := s.repo.Get(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to get payment")

		return fmt.Errorf("failed to get payment: %w", err)
	}

	if payment.ID == constant.Empty {
		return failure.NotFound("payment not found") // nolint:wrapcheck
	}

	// A verified payment is settled. Reopening it would desync totals already
	// shown to the guest.
	if payment.Status == model.StatusVerified && status != model.StatusVerified {
		return failure.Conflict("payment is already verified") // nolint:wrapcheck
	}

	updatedFields := shared.TransformFields(dto.UpdatePaymentStatusRequest{Status: status}, user)
	if err = s.repo.Update(ctx, updatedFields, filter); err != nil {
		log.Error().Err(err).Msg("failed to update payment status")

		return fmt.Errorf("failed to update payment status: %w", err)
	}

	if err := s.publisher.PublishStatusChange(ctx, events.StatusChange{
		Entity:    model.EntityName,
		ID:        id,
		OldStatus: payment.Status,
		NewStatus: status,
		ChangedBy: user,
	}); err != nil {
		log.Warn().Err(err).Str("payment_id", id).Msg("failed to publish payment status change")
	}

	s.invalidate(ctx, payment.BookingID)

	return nil
}

func (s *serviceImpl) UploadReceipt(ctx context.Context, id string, req dto.UploadReceiptRequest) (res dto.UploadReceiptResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".UploadReceipt")
	defer scope.End()
	defer scope.TraceIfError(err)

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)
	filter := shared.FilterByID(id, model.FieldID, model.TableName)

	payment, err := s.repo.Get(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to get payment")

		return res, fmt.Errorf("failed to get payment: %w", err)
	}

	if payment.ID == constant.Empty {
		return res, failure.NotFound("payment not found") // nolint:wrapcheck
	}

	bucketName := s.cfg.External.S3.BucketName
	directory := s.cfg.External.S3.ReceiptDir
	fileName := id + "_" + req.Receipt.Filename

	url, err := s.s3.UploadFile(ctx, bucketName, directory, req.ReceiptFile, req.Receipt, fileName)
	if err != nil {
		log.Error().Err(err).Msg("failed to upload receipt to S3")

		return res, fmt.Errorf("failed to upload receipt to S3: %w", err)
	}

	updatedFields := shared.TransformFields(struct {
		ReceiptPath string `db:"receipt_path"`
	}{ReceiptPath: url}, user)
	if err = s.repo.Update(ctx, updatedFields, filter); err != nil {
		log.Error().Err(err).Msg("failed to store receipt path")

		return res, fmt.Errorf("failed to store receipt path: %w", err)
	}

	res.FromURL(url)

	s.invalidate(ctx, payment.BookingID)

	return res, nil
}

func (s *serviceImpl) DeleteReceipt(ctx context.Context, id string) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".DeleteReceipt")
	defer scope.End()
	defer scope.TraceIfError(err)

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)
	filter := shared.FilterByID(id, model.FieldID, model.TableName)

	payment, err := s.repo.Get(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to get payment")

		return fmt.Errorf("failed to get payment: %w", err)
	}

	if payment.ID == constant.Empty {
		return failure.NotFound("payment not found") // nolint:wrapcheck
	}

	if payment.ReceiptPath == constant.Empty {
		return failure.NotFound("payment has no receipt") // nolint:wrapcheck
	}

	bucketName := s.cfg.External.S3.BucketName

	objectName := s.s3.GetObjectNameFromURL(bucketName, payment.ReceiptPath)
	if objectName == constant.Empty {
		log.Warn().Str("url", payment.ReceiptPath).Msg("failed to extract receipt object name from URL")
	} else if err := s.s3.DeleteFile(ctx, bucketName, s.cfg.External.S3.ReceiptDir, objectName); err != nil {
		log.Error().Err(err).Str("objectName", objectName).Msg("failed to delete receipt from S3")

		return fmt.Errorf("failed to delete receipt from S3: %w", err)
	}

	updatedFields := shared.TransformFields(struct {
		ReceiptPath string `db:"receipt_path"`
	}{}, user)
	updatedFields[model.FieldReceiptPath] = constant.Empty

	if err = s.repo.Update(ctx, updatedFields, filter); err != nil {
		log.Error().Err(err).Msg("failed to clear receipt path")

		return fmt.Errorf("failed to clear receipt path: %w", err)
	}

	s.invalidate(ctx, payment.BookingID)

	return nil
}

func (s *serviceImpl) invalidate(ctx context.Context, bookingID string) {
	go func() {
		c := context.WithoutCancel(ctx)

		if bookingID != constant.Empty {
			if err := s.cache.Delete(c, shared.BuildCacheKey(cacheBookingDetail, bookingID)); err != nil {
				log.Error().Err(err).Msg("failed to delete booking detail from cache")
			}
		}

		shared.InvalidateCaches(c, s.cache, cacheAdvancePayments, cacheBookingViews)
	}()
}
