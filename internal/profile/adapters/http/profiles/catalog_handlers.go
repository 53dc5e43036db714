package profiles

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v3"

	"devprofile/internal/profile/adapters/http/middleware"
	"devprofile/internal/profile/app"
)

// Параметры строки запроса каталога.
const (
	QuerySearch       = "q"
	QuerySkills       = "skills"
	QueryOpenToWork   = "openToWork"
	QueryVerification = "verification"
	QuerySort         = "sort"
	QueryOrder        = "order"
	QueryPage         = "page"
	QueryPageSize     = "pageSize"
)

type catalogFilters struct {
	search       string
	skills       []string
	openToWork   *bool
	verification string
}

// parseSkills принимает список через запятую. Пустые элементы отбрасываются.
func parseSkills(raw string) []string {
	var skills []string
	for _, part := range strings.Split(raw, ",") {
		if part = strings.TrimSpace(part); part != "" {
			skills = append(skills, part)
		}
	}
	return skills
}

func parseFilters(ctx fiber.Ctx) (catalogFilters, string, bool) {
	filters := catalogFilters{
		search:       ctx.Query(QuerySearch),
		skills:       parseSkills(ctx.Query(QuerySkills)),
		verification: ctx.Query(QueryVerification),
	}
	if raw := ctx.Query(QueryOpenToWork); raw != "" {
		open, err := strconv.ParseBool(raw)
		if err != nil {
			return filters, QueryOpenToWork, false
		}
		filters.openToWork = &open
	}
	return filters, "", true
}

func parseIntQuery(ctx fiber.Ctx, key string) (int, bool) {
	raw := ctx.Query(key)
	if raw == "" {
		return 0, true
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, false
	}
	return v, true
}

// SearchCatalog - постраничный поиск по каталогу.
func (h *Handler) SearchCatalog(ctx fiber.Ctx) error {
	filters, field, ok := parseFilters(ctx)
	if !ok {
		return badRequest(ctx, field, "must be true or false")
	}
	page, ok := parseIntQuery(ctx, QueryPage)
	if !ok {
		return badRequest(ctx, QueryPage, "must be an integer")
	}
	pageSize, ok := parseIntQuery(ctx, QueryPageSize)
	if !ok {
		return badRequest(ctx, QueryPageSize, "must be an integer")
	}

	q := app.CatalogSearchQuery{
		Search:       filters.search,
		Skills:       filters.skills,
		OpenToWork:   filters.openToWork,
		Verification: filters.verification,
		SortField:    ctx.Query(QuerySort),
		SortOrder:    ctx.Query(QueryOrder),
		Page:         page,
		PageSize:     pageSize,
	}
	return dispatch[app.PagedResult[app.ProfileCardDTO]](ctx, h.dispatcher, q, fiber.StatusOK)
}

// FilterCatalog фильтрует весь каталог без постраничной разбивки.
func (h *Handler) FilterCatalog(ctx fiber.Ctx) error {
	filters, field, ok := parseFilters(ctx)
	if !ok {
		return badRequest(ctx, field, "must be true or false")
	}
	q := app.CatalogQuery{
		Search:       filters.search,
		Skills:       filters.skills,
		OpenToWork:   filters.openToWork,
		Verification: filters.verification,
	}
	return dispatch[[]app.ProfileCardDTO](ctx, h.dispatcher, q, fiber.StatusOK)
}

// GetResume отдает PDF-резюме профиля.
func (h *Handler) GetResume(ctx fiber.Ctx) error {
	profileID := ctx.Params("id")
	result, err := app.Dispatch[app.GetResumeQuery, []byte](
		middleware.RequestContext(ctx), h.dispatcher, app.GetResumeQuery{ProfileID: profileID})
	if err != nil {
		return handleError(ctx, err)
	}
	if !result.IsSuccess() {
		return sendAppError(ctx, result.Err())
	}

	ctx.Set(fiber.HeaderContentType, app.PDFContentType)
	ctx.Set(fiber.HeaderContentDisposition, fmt.Sprintf("inline; filename=%q", "resume-"+profileID+".pdf"))
	return ctx.Status(fiber.StatusOK).Send(result.Value())
}
