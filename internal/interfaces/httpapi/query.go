package httpapi

import (
	"context"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/riskibarqy/nhl-fa-projections/internal/domain/player"
	"github.com/riskibarqy/nhl-fa-projections/internal/usecase"
)

type listPlayersQuery struct {
	Search    string `validate:"max=100"`
	Position  string `validate:"omitempty,oneof=C LW RW D G"`
	ValueTier string `validate:"omitempty,max=20"`
	Score     string `validate:"omitempty,oneof=excellent good fair below-average poor"`
	Sort      string `validate:"omitempty,oneof=name age projectedAav projectedTerm valueTier"`
	Dir       string `validate:"omitempty,oneof=asc desc"`
}

type playerStatsQuery struct {
	Order string `validate:"omitempty,oneof=oldest newest"`
}

type compareQuery struct {
	IDs []int64 `validate:"required,min=1,max=10,dive,gt=0"`
}

func (h *Handler) validateRequest(ctx context.Context, payload any) error {
	ctx, span := startSpan(ctx, "httpapi.Handler.validateRequest")
	defer span.End()

	if err := h.validator.StructCtx(ctx, payload); err != nil {
		return fmt.Errorf("%w: validation failed: %v", usecase.ErrInvalidInput, err)
	}

	return nil
}

func (h *Handler) parseListPlayersQuery(ctx context.Context, r *http.Request) (player.ListFilter, player.Sort, error) {
	values := r.URL.Query()
	q := listPlayersQuery{
		Search:    strings.TrimSpace(values.Get("search")),
		Position:  strings.ToUpper(strings.TrimSpace(values.Get("position"))),
		ValueTier: strings.TrimSpace(values.Get("valueTier")),
		Score:     strings.ToLower(strings.TrimSpace(values.Get("score"))),
		Sort:      strings.TrimSpace(values.Get("sort")),
		Dir:       strings.ToLower(strings.TrimSpace(values.Get("dir"))),
	}
	if err := h.validateRequest(ctx, q); err != nil {
		return player.ListFilter{}, player.Sort{}, err
	}

	filter := player.ListFilter{Search: q.Search, Position: player.Position(q.Position)}
	if q.ValueTier != "" && !strings.EqualFold(q.ValueTier, "all") {
		tier, err := player.ParseValueTier(q.ValueTier)
		if err != nil {
			return player.ListFilter{}, player.Sort{}, fmt.Errorf("%w: %v", usecase.ErrInvalidInput, err)
		}
		filter.ValueTier = tier
	}
	if q.Score != "" {
		band, err := player.ParseScoreBand(q.Score)
		if err != nil {
			return player.ListFilter{}, player.Sort{}, fmt.Errorf("%w: %v", usecase.ErrInvalidInput, err)
		}
		filter.ScoreBand = band
	}

	field, err := player.ParseSortField(q.Sort)
	if err != nil {
		return player.ListFilter{}, player.Sort{}, fmt.Errorf("%w: %v", usecase.ErrInvalidInput, err)
	}

	return filter, player.Sort{Field: field, Desc: q.Dir == "desc"}, nil
}

func (h *Handler) parsePlayerID(ctx context.Context, r *http.Request) (int64, error) {
	raw := strings.TrimSpace(r.PathValue("playerID"))
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: player id %q is not a number", usecase.ErrInvalidInput, raw)
	}
	if err := h.validator.VarCtx(ctx, id, "gt=0"); err != nil {
		return 0, fmt.Errorf("%w: player id must be positive", usecase.ErrInvalidInput)
	}
	return id, nil
}

func (h *Handler) parseCompareIDs(ctx context.Context, r *http.Request) ([]int64, error) {
	raw := strings.TrimSpace(r.URL.Query().Get("ids"))
	if raw == "" {
		return nil, fmt.Errorf("%w: ids is required", usecase.ErrInvalidInput)
	}

	q := compareQuery{}
	for _, part := range strings.Split(raw, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		id, err := strconv.ParseInt(part, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("%w: id %q is not a number", usecase.ErrInvalidInput, part)
		}
		q.IDs = append(q.IDs, id)
	}
	if err := h.validateRequest(ctx, q); err != nil {
		return nil, err
	}
	return q.IDs, nil
}
