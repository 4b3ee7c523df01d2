package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"

	"lalazar/config"
	"lalazar/infras/otel"
	categoryModel "lalazar/internal/domains/category/model"
	categoryRepo "lalazar/internal/domains/category/repository"
	hotelModel "lalazar/internal/domains/hotel/model"
	hotelRepo "lalazar/internal/domains/hotel/repository"
	"lalazar/internal/domains/room/model"
	"lalazar/internal/domains/room/model/dto"
	"lalazar/internal/domains/room/repository"
	"lalazar/shared"
	"lalazar/shared/cache"
	"lalazar/shared/constant"
	gDto "lalazar/shared/dto"
	"lalazar/shared/failure"
)

const (
	cacheGetRoom     = "room:get"
	cacheGetAllRooms = "room:gets"
	cacheCountRooms  = "room:count"
)

type Room interface {
	Create(ctx context.Context, req dto.CreateRoomRequest) error
	GetAll(ctx context.Context, params gDto.QueryParams, query gDto.ViewQuery) (dto.GetRoomsResponse, error)
	Get(ctx context.Context, id string) (dto.RoomResponse, error)
	Update(ctx context.Context, req dto.UpdateRoomRequest, id string) error
	Delete(ctx context.Context, id string) error
}

type serviceImpl struct {
	repo         repository.Room
	categoryRepo categoryRepo.Category
	hotelRepo    hotelRepo.Hotel
	cfg          *config.Config
	cache        cache.RedisCache
	otel         otel.Otel
	fallback     *fallbackStore
}

func New(
	repo repository.Room,
	categoryRepo categoryRepo.Category,
	hotelRepo hotelRepo.Hotel,
	cfg *config.Config,
	cache cache.RedisCache,
	otel otel.Otel,
) Room {
	return &serviceImpl{
		repo:         repo,
		categoryRepo: categoryRepo,
		hotelRepo:    hotelRepo,
		cfg:          cfg,
		cache:        cache,
		otel:         otel,
		fallback:     newFallbackStore(cfg.Rooms.FallbackFile),
	}
}

// buildFilter translates the dashboard query into a WHERE group: search term
// over room number and property type, exact matches on status and category.
func buildFilter(query gDto.ViewQuery) gDto.FilterGroup {
	group := gDto.FilterGroup{Operator: gDto.FilterGroupOperatorAnd}

	if query.Query != constant.Empty {
		group.Filters = append(group.Filters, gDto.NewSearchGroup(query.Query, model.FieldRoomNo, model.FieldPropertyType))
	}

	if query.Status != constant.Empty {
		group.Filters = append(group.Filters, gDto.Filter{
			Field:    model.FieldStatus,
			Value:    query.Status,
			Operator: gDto.FilterOperatorEq,
			Table:    model.TableName,
		})
	}

	if query.Category != constant.Empty {
		group.Filters = append(group.Filters, gDto.Filter{
			Field:    model.FieldCategoryID,
			Value:    query.Category,
			Operator: gDto.FilterOperatorEq,
			Table:    model.TableName,
		})
	}

	return group
}

func (s *serviceImpl) Create(ctx context.Context, req dto.CreateRoomRequest) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Create")
	defer scope.End()
	defer scope.TraceIfError(err)

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)

	duplicateFilter := gDto.FilterGroup{
		Operator: gDto.FilterGroupOperatorAnd,
		Filters: []any{
			gDto.Filter{Field: model.FieldRoomNo, Value: req.RoomNo, Operator: gDto.FilterOperatorEq, Table: model.TableName},
			gDto.Filter{Field: model.FieldHotelID, Value: req.HotelID, Operator: gDto.FilterOperatorEq, Table: model.TableName},
		},
	}

	exist, err := s.repo.Exist(ctx, duplicateFilter)
	if err != nil {
		log.Error().Err(err).Msg("failed to check room existence")

		return fmt.Errorf("failed to check room existence: %w", err)
	}

	if exist {
		return failure.Conflict(fmt.Sprintf("room %s already exists in this hotel", req.RoomNo)) // nolint:wrapcheck
	}

	if err = s.repo.Insert(ctx, req.ToModel(user)); err != nil {
		return err // nolint:wrapcheck
	}

	s.invalidate(ctx, constant.Empty)

	return nil
}

func (s *serviceImpl) GetAll(ctx context.Context, params gDto.QueryParams, query gDto.ViewQuery) (res dto.GetRoomsResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".GetAll")
	defer scope.End()
	defer scope.TraceIfError(err)

	cacheKey := shared.BuildCacheKeyWithQuery(cacheGetAllRooms, params, query)

	err = s.cache.Get(ctx, cacheKey, &res)
	if err == nil {
		log.Info().Str("cacheKey", cacheKey).Msg("cache hit for rooms")

		return res, nil
	}

	filter := buildFilter(query)

	rooms, err := s.repo.GetAll(ctx, params, filter)
	if err != nil {
		log.Warn().Err(err).Msg("primary room read failed, serving fallback file")

		return s.getAllFromFallback(query)
	}

	var (
		total      int
		categories []categoryModel.Category
		hotels     []hotelModel.Hotel
	)

	group, groupCtx := errgroup.WithContext(ctx)

	group.Go(func() (err error) {
		total, err = s.repo.Count(groupCtx, filter)

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

	if err = group.Wait(); err != nil {
		log.Error().Err(err).Msg("failed to fetch room lookups")

		return res, fmt.Errorf("failed to fetch room lookups: %w", err)
	}

	categoryNames := make(map[string]string, len(categories))
	for _, category := range categories {
		categoryNames[category.ID] = category.CategoryName
	}

	hotelNames := make(map[string]string, len(hotels))
	for _, hotel := range hotels {
		hotelNames[hotel.ID] = hotel.HotelName
	}

	res.FromModels(rooms, categoryNames, hotelNames, total, params.Limit)

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save rooms to cache")
		}

		s.refreshFallback(c)
	}()

	return res, nil
}

// getAllFromFallback serves the last snapshot written to the fallback file,
// applying the query in memory since there is no store to push it to.
func (s *serviceImpl) getAllFromFallback(query gDto.ViewQuery) (res dto.GetRoomsResponse, err error) {
	rooms, err := s.fallback.Load()
	if err != nil {
		log.Error().Err(err).Msg("failed to load room fallback file")

		return res, fmt.Errorf("failed to load room fallback file: %w", err)
	}

	matched := make([]model.Room, 0, len(rooms))

	term := strings.ToLower(query.Query)

	for _, room := range rooms {
		if term != constant.Empty &&
			!strings.Contains(strings.ToLower(room.RoomNo), term) &&
			!strings.Contains(strings.ToLower(room.PropertyType), term) {
			continue
		}

		if query.Status != constant.Empty && !strings.EqualFold(room.Status, query.Status) {
			continue
		}

		if query.Category != constant.Empty && room.CategoryID != query.Category {
			continue
		}

		matched = append(matched, room)
	}

	res.FromModels(matched, map[string]string{}, map[string]string{}, len(matched), 0)

	return res, nil
}

func (s *serviceImpl) Get(ctx context.Context, id string) (res dto.RoomResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Get")
	defer scope.End()
	defer scope.TraceIfError(err)

	cacheKey := shared.BuildCacheKey(cacheGetRoom, id)

	err = s.cache.Get(ctx, cacheKey, &res)
	if err == nil {
		log.Info().Str("cacheKey", cacheKey).Msg("cache hit for room")

		return res, nil
	}

	room, err := s.repo.Get(ctx, shared.FilterByID(id, model.FieldID, model.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to get room")

		return res, fmt.Errorf("failed to get room: %w", err)
	}

	if room.ID == constant.Empty {
		return res, failure.NotFound("room not found") // nolint:wrapcheck
	}

	var (
		category categoryModel.Category
		hotel    hotelModel.Hotel
	)

	group, groupCtx := errgroup.WithContext(ctx)

	group.Go(func() (err error) {
		category, err = s.categoryRepo.Get(groupCtx, shared.FilterByID(room.CategoryID, categoryModel.FieldID, categoryModel.TableName))

		return err
	})
	group.Go(func() (err error) {
		hotel, err = s.hotelRepo.Get(groupCtx, shared.FilterByID(room.HotelID, hotelModel.FieldID, hotelModel.TableName))

		return err
	})

	if err = group.Wait(); err != nil {
		log.Error().Err(err).Msg("failed to fetch room lookups")

		return res, fmt.Errorf("failed to fetch room lookups: %w", err)
	}

	res.FromModel(room, category.CategoryName, hotel.HotelName)

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save room to cache")
		}
	}()

	return res, nil
}

func (s *serviceImpl) Update(ctx context.Context, req dto.UpdateRoomRequest, id string) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Update")
	defer scope.End()
	defer scope.TraceIfError(err)

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)
	filter := shared.FilterByID(id, model.FieldID, model.TableName)

	exist, err := s.repo.Exist(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to check room existence")

		return fmt.Errorf("failed to check room existence: %w", err)
	}

	if !exist {
		return failure.NotFound("room not found") // nolint:wrapcheck
	}

	updatedFields := shared.TransformFields(req, user)
	if err = s.repo.Update(ctx, updatedFields, filter); err != nil {
		log.Error().Err(err).Msg("failed to update room")

		return fmt.Errorf("failed to update room: %w", err)
	}

	s.invalidate(ctx, id)

	return nil
}

func (s *serviceImpl) Delete(ctx context.Context, id string) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Delete")
	defer scope.End()
	defer scope.TraceIfError(err)

	filter := shared.FilterByID(id, model.FieldID, model.TableName)

	exist, err := s.repo.Exist(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to check room existence")

		return fmt.Errorf("failed to check room existence: %w", err)
	}

	if !exist {
		return failure.NotFound("room not found") // nolint:wrapcheck
	}

	if err = s.repo.Delete(ctx, filter); err != nil {
		log.Error().Err(err).Msg("failed to delete room")

		return fmt.Errorf("failed to delete room: %w", err)
	}

	s.invalidate(ctx, id)

	return nil
}

func (s *serviceImpl) invalidate(ctx context.Context, id string) {
	go func() {
		c := context.WithoutCancel(ctx)

		if id != constant.Empty {
			if err := s.cache.Delete(c, shared.BuildCacheKey(cacheGetRoom, id)); err != nil {
				log.Error().Err(err).Msg("failed to delete room cache")
			}
		}

		shared.InvalidateCaches(c, s.cache, cacheGetAllRooms, cacheCountRooms)

		s.refreshFallback(c)
	}()
}

// refreshFallback rewrites the fallback file from the primary store so it
// tracks the latest room list.
func (s *serviceImpl) refreshFallback(ctx context.Context) {
	rooms, err := s.repo.GetAll(ctx, gDto.QueryParams{}, gDto.FilterGroup{})
	if err != nil {
		log.Warn().Err(err).Msg("skipping room fallback refresh")

		return
	}

	if err := s.fallback.Save(rooms); err != nil {
		log.Error().Err(err).Msg("failed to refresh room fallback file")
	}
}
