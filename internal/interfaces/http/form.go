package http

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/wholesale-api/internal/application/dto"
	"github.com/jhoicas/wholesale-api/internal/application/usecase"
	"github.com/jhoicas/wholesale-api/internal/domain"
)

// imageField multipart field carrying uploads.
const imageField = "image"

// formFile reads an optional uploaded file. A missing field or a non-multipart body yields nil.
func formFile(c *fiber.Ctx, field string) (*dto.FileUpload, error) {
	form, err := c.MultipartForm()
	if err != nil || form == nil {
		return nil, nil
	}
	files := form.File[field]
	if len(files) == 0 {
		return nil, nil
	}
	fh := files[0]
	f, err := fh.Open()
	if err != nil {
		return nil, fmt.Errorf("%w: cannot read %s", domain.ErrInvalidInput, field)
	}
	defer f.Close()
	data, err := io.ReadAll(f)
	if err != nil {
		return nil, fmt.Errorf("%w: cannot read %s", domain.ErrInvalidInput, field)
	}
	return &dto.FileUpload{Filename: fh.Filename, ContentType: fh.Header.Get(fiber.HeaderContentType), Data: data}, nil
}

// formHas reports whether the form carried the field at all, even empty.
func formHas(c *fiber.Ctx, field string) bool {
	if form, err := c.MultipartForm(); err == nil && form != nil {
		_, ok := form.Value[field]
		return ok
	}
	return c.Request().PostArgs().Has(field)
}

func formValue(c *fiber.Ctx, field string) string {
	return strings.TrimSpace(c.FormValue(field))
}

// formDecimal parses an optional decimal; empty yields zero.
func formDecimal(c *fiber.Ctx, field string) (decimal.Decimal, error) {
	v := formValue(c, field)
	if v == "" {
		return decimal.Zero, nil
	}
	d, err := decimal.NewFromString(v)
	if err != nil {
		return decimal.Zero, fmt.Errorf("%w: %s must be a number", domain.ErrInvalidInput, field)
	}
	return d, nil
}

// holidayValues accepts a JSON array (`["01/01/2025"]`) or a comma separated list.
func holidayValues(raw string) []string {
	raw = strings.TrimSpace(raw)
	if strings.HasPrefix(raw, "[") {
		var list []string
		if err := json.Unmarshal([]byte(raw), &list); err == nil {
			return list
		}
	}
	return usecase.SplitHolidayList(raw)
}

// pathID returns the named route parameter. Anything that is not a UUID cannot exist, so it is ErrNotFound.
func pathID(c *fiber.Ctx, name string) (string, error) {
	id := strings.TrimSpace(c.Params(name))
	if _, err := uuid.Parse(id); err != nil {
		return "", fmt.Errorf("%w: %s %q", domain.ErrNotFound, name, id)
	}
	return id, nil
}

// requireID validates an ID taken from a body or form.
func requireID(id, name string) error {
	if strings.TrimSpace(id) == "" {
		return fmt.Errorf("%w: %s is required", domain.ErrInvalidInput, name)
	}
	if _, err := uuid.Parse(id); err != nil {
		return fmt.Errorf("%w: %s %q", domain.ErrNotFound, name, id)
	}
	return nil
}

// optionalID validates an ID that may be left blank.
func optionalID(id, name string) error {
	if strings.TrimSpace(id) == "" {
		return nil
	}
	return requireID(id, name)
}
