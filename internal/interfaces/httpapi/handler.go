package httpapi

import (
	"context"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"strconv"
	"strings"
	"time"

	sonic "github.com/bytedance/sonic"
	"github.com/go-playground/validator/v10"

	"github.com/riskibarqy/footmate/internal/domain/paging"
	"github.com/riskibarqy/footmate/internal/domain/user"
	"github.com/riskibarqy/footmate/internal/platform/logging"
	"github.com/riskibarqy/footmate/internal/usecase"
)

const (
	maxMultipartMemory = 10 << 20
	multipartDataField = "data"
	dateLayout         = "2006-01-02"
)

// Services groups the use cases served over HTTP.
type Services struct {
	Accounts     *usecase.AccountService
	Members      *usecase.MemberService
	Locations    *usecase.LocationService
	Achievements *usecase.AchievementService
	Contracts    *usecase.EmploymentContractService
	Footplayers  *usecase.FootplayerService
	ReportCards  *usecase.ReportCardService
}

type Handler struct {
	accounts     *usecase.AccountService
	members      *usecase.MemberService
	locations    *usecase.LocationService
	achievements *usecase.AchievementService
	contracts    *usecase.EmploymentContractService
	footplayers  *usecase.FootplayerService
	reportCards  *usecase.ReportCardService
	logger       *logging.Logger
	validator    *validator.Validate
}

func NewHandler(services Services, logger *logging.Logger) *Handler {
	if logger == nil {
		logger = logging.Default()
	}

	return &Handler{
		accounts:     services.Accounts,
		members:      services.Members,
		locations:    services.Locations,
		achievements: services.Achievements,
		contracts:    services.Contracts,
		footplayers:  services.Footplayers,
		reportCards:  services.ReportCards,
		logger:       logger,
		validator:    newValidator(),
	}
}

func (h *Handler) Healthz(w http.ResponseWriter, r *http.Request) {
	ctx, span := handlerSpan(r, "Healthz")
	defer span.End()

	writeSuccess(ctx, w, http.StatusOK, map[string]string{"status": "ok"})
}

func (h *Handler) validateRequest(ctx context.Context, payload any) error {
	if err := h.validator.StructCtx(ctx, payload); err != nil {
		return fmt.Errorf("%w: %s", usecase.ErrValidationFailed, describeValidationError(err))
	}
	return nil
}

// decodeJSON reads a JSON body into dst and validates it.
func (h *Handler) decodeJSON(ctx context.Context, r *http.Request, dst any) error {
	if err := decodeJSONReader(r.Body, dst); err != nil {
		return err
	}
	return h.validateRequest(ctx, dst)
}

// decodeWithFile accepts either a JSON body or a multipart form whose "data"
// field holds the JSON payload and whose fileField holds an optional upload.
func (h *Handler) decodeWithFile(ctx context.Context, r *http.Request, dst any, fileField string) (*usecase.MediaUpload, error) {
	contentType := strings.ToLower(r.Header.Get("Content-Type"))
	if !strings.HasPrefix(contentType, "multipart/form-data") {
		return nil, h.decodeJSON(ctx, r, dst)
	}

	if err := r.ParseMultipartForm(maxMultipartMemory); err != nil {
		return nil, fmt.Errorf("%w: invalid multipart payload: %v", usecase.ErrBadRequest, err)
	}
	if err := decodeJSONReader(strings.NewReader(r.FormValue(multipartDataField)), dst); err != nil {
		return nil, err
	}
	if err := h.validateRequest(ctx, dst); err != nil {
		return nil, err
	}

	file, header, err := r.FormFile(fileField)
	if err != nil {
		if errors.Is(err, http.ErrMissingFile) {
			return nil, nil
		}
		return nil, fmt.Errorf("%w: invalid %s upload: %v", usecase.ErrBadRequest, fileField, err)
	}
	return mediaFromPart(file, header), nil
}

func decodeJSONReader(body io.Reader, dst any) error {
	decoder := sonic.ConfigDefault.NewDecoder(body)
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(dst); err != nil {
		return fmt.Errorf("%w: invalid JSON payload: %v", usecase.ErrBadRequest, err)
	}
	return nil
}

func mediaFromPart(file multipart.File, header *multipart.FileHeader) *usecase.MediaUpload {
	return &usecase.MediaUpload{
		Filename:    header.Filename,
		ContentType: header.Header.Get("Content-Type"),
		Size:        header.Size,
		Body:        file,
	}
}

func (h *Handler) principal(ctx context.Context, w http.ResponseWriter) (user.Principal, bool) {
	principal, ok := principalFromContext(ctx)
	if !ok {
		writeError(ctx, w, fmt.Errorf("%w: missing principal", usecase.ErrUnauthorized))
		return user.Principal{}, false
	}
	return principal, true
}

// fail logs and writes err. Client errors log at warn, the rest at error.
func (h *Handler) fail(ctx context.Context, w http.ResponseWriter, msg string, err error, fields ...any) {
	fields = append(fields, "error", err)
	if mapError(ctx, err).HTTPStatus >= http.StatusInternalServerError {
		h.logger.ErrorContext(ctx, msg, fields...)
	} else {
		h.logger.WarnContext(ctx, msg, fields...)
	}
	writeError(ctx, w, err)
}

// pagingFromQuery reads page_no, page_size (or limit), sort_by and sort_order.
func pagingFromQuery(r *http.Request) (paging.Params, error) {
	q := r.URL.Query()
	page, err := queryInt(q.Get("page_no"), "page_no")
	if err != nil {
		return paging.Params{}, err
	}
	limitRaw := q.Get("page_size")
	if strings.TrimSpace(limitRaw) == "" {
		limitRaw = q.Get("limit")
	}
	limit, err := queryInt(limitRaw, "page_size")
	if err != nil {
		return paging.Params{}, err
	}
	order, err := queryInt(q.Get("sort_order"), "sort_order")
	if err != nil {
		return paging.Params{}, err
	}
	if order != 0 && order != paging.SortAscending && order != paging.SortDescending {
		return paging.Params{}, fmt.Errorf("%w: sort_order must be 1 or -1", usecase.ErrValidationFailed)
	}
	return paging.Params{
		Page:      page,
		Limit:     limit,
		SortBy:    strings.TrimSpace(q.Get("sort_by")),
		SortOrder: order,
	}, nil
}

func queryInt(raw, name string) (int, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return 0, nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil || v < 0 {
		return 0, fmt.Errorf("%w: %s must be a non-negative integer", usecase.ErrValidationFailed, name)
	}
	return v, nil
}

func queryDate(raw, name string) (*time.Time, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, nil
	}
	t, err := parseDate(raw)
	if err != nil {
		return nil, fmt.Errorf("%w: %s must be a date (YYYY-MM-DD)", usecase.ErrValidationFailed, name)
	}
	return &t, nil
}

func parseDate(raw string) (time.Time, error) {
	if t, err := time.Parse(dateLayout, raw); err == nil {
		return t, nil
	}
	t, err := time.Parse(time.RFC3339, raw)
	if err != nil {
		return time.Time{}, err
	}
	return t.UTC(), nil
}

func queryCSV(raw string) []string {
	if strings.TrimSpace(raw) == "" {
		return nil
	}
	parts := strings.Split(raw, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if v := strings.TrimSpace(p); v != "" {
			out = append(out, v)
		}
	}
	return out
}

func formatDate(t *time.Time) string {
	if t == nil || t.IsZero() {
		return ""
	}
	return t.UTC().Format(dateLayout)
}
