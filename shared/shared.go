package shared

import (
	"context"
	"fmt"
	"math"
	"reflect"
	"strings"

	"github.com/rs/zerolog/log"

	"lalazar/shared/cache"
	"lalazar/shared/constant"
	"lalazar/shared/dto"
	"lalazar/shared/timezone"
)

func CalculateTotalPage(total, limit int) (res int) {
	if total == 0 || limit <= 0 {
		res = 1
	} else {
		res = int(math.Ceil(float64(total) / float64(limit)))
	}

	return res
}

// TransformFields converts the fields of a struct into a map of updated fields.
func TransformFields(data interface{}, username string) map[string]any {
	val := reflect.ValueOf(data)
	typ := reflect.TypeOf(data)

	updatedFields := make(map[string]any)

	for index := range val.NumField() {
		field := val.Field(index)
		if field.IsZero() {
			continue
		}

		fieldName := typ.Field(index).Tag.Get("db")
		if fieldName == "" {
			continue
		}

		updatedFields[fieldName] = field.Interface()
	}

	updatedFields[constant.FieldModifiedAt] = timezone.Now()
	updatedFields[constant.FieldModifiedBy] = username

	return updatedFields
}

func FilterByID(id, fieldID, table string) dto.FilterGroup {
	return dto.FilterGroup{
		Filters: []any{
			dto.Filter{
				Field:    fieldID,
				Value:    id,
				Operator: dto.FilterOperatorEq,
				Table:    table,
			},
		},
	}
}

// BuildCacheKey joins an entity name and key parts into a colon-separated
// cache key.
func BuildCacheKey(entity string, parts ...string) string {
	segments := append([]string{entity}, parts...)

	return strings.Join(segments, ":")
}

// BuildCacheKeyWithQuery derives a cache key from pagination params plus any
// extra segments (filters, view queries), so distinct pages and filters cache
// independently.
func BuildCacheKeyWithQuery(entity string, params dto.QueryParams, extras ...any) string {
	segments := []string{
		entity,
		fmt.Sprintf("page=%d", params.Page),
		fmt.Sprintf("limit=%d", params.Limit),
		fmt.Sprintf("sort=%s_%s", params.SortBy, params.SortDir),
	}

	for _, extra := range extras {
		segments = append(segments, fmt.Sprintf("%v", extra))
	}

	return strings.Join(segments, ":")
}

// InvalidateCaches clears every cache entry under the given prefixes. Callers
// run it after a confirmed write, usually on a detached context.
func InvalidateCaches(ctx context.Context, redisCache cache.RedisCache, prefixes ...string) {
	for _, prefix := range prefixes {
		if err := redisCache.Clear(ctx, prefix+constant.Asterix); err != nil {
			log.Error().Err(err).Str("prefix", prefix).Msg("failed to invalidate cache")
		}
	}
}
