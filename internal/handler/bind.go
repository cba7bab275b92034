package handler

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"mime"
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/jointoit/events-api/internal/models"
	"github.com/jointoit/events-api/pkg/apperror"
	"github.com/jointoit/events-api/pkg/utils"
)

// request is a body type that can trim its own fields before validation.
type request interface {
	Normalize()
}

// bindAndValidate decodes a JSON object body into req, normalizes it and runs
// the validator. An empty body decodes as {}.
func bindAndValidate(c *fiber.Ctx, v *utils.Validator, req request) error {
	if err := bindJSON(c, req); err != nil {
		return err
	}
	req.Normalize()
	return v.Struct(req)
}

func bindJSON(c *fiber.Ctx, out interface{}) error {
	body := bytes.TrimSpace(c.Body())
	if len(body) == 0 {
		return nil
	}

	if ct := c.Get(fiber.HeaderContentType); ct != "" {
		mediaType, _, err := mime.ParseMediaType(ct)
		if err != nil || mediaType != fiber.MIMEApplicationJSON {
			return apperror.UnsupportedMediaType(ct)
		}
	}

	if body[0] != '{' {
		if !json.Valid(body) {
			return apperror.ParseError(errors.New("invalid JSON body"))
		}
		return apperror.Validation(apperror.FieldErrors{
			"non_field_errors": fmt.Sprintf("Invalid data. Expected a dictionary, but got %s.", jsonKind(body[0])),
		})
	}

	if err := c.App().Config().JSONDecoder(body, out); err != nil {
		var typeErr *json.UnmarshalTypeError
		if errors.As(err, &typeErr) && typeErr.Field != "" {
			return apperror.Validation(apperror.FieldErrors{typeErr.Field: "Not a valid string."})
		}
		return apperror.ParseError(err)
	}
	return nil
}

func jsonKind(first byte) string {
	switch first {
	case '[':
		return "array"
	case '"':
		return "string"
	case 't', 'f':
		return "boolean"
	case 'n':
		return "null"
	default:
		return "number"
	}
}

// parseID reads a numeric path parameter. Anything else is reported as a
// missing resource.
func parseID(c *fiber.Ctx, name, resource string) (uint, error) {
	id, err := strconv.ParseUint(c.Params(name), 10, 32)
	if err != nil || id == 0 {
		return 0, apperror.NotFound(resource)
	}
	return uint(id), nil
}

func parseBool(value string) (bool, bool) {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "true", "1":
		return true, true
	case "false", "0":
		return false, true
	}
	return false, false
}

// parseEventQuery reads the list filters. Empty parameters are ignored.
func parseEventQuery(c *fiber.Ctx) (models.EventQuery, error) {
	query := models.EventQuery{Search: c.Query("search")}
	fields := apperror.FieldErrors{}

	if raw := c.Query("start_date"); raw != "" {
		t, err := utils.ParseDateTimeOrDate(raw)
		if err != nil {
			fields["start_date"] = "Enter a valid date/time."
		} else {
			query.StartDate = &t
		}
	}
	if raw := c.Query("end_date"); raw != "" {
		t, err := utils.ParseDateTimeOrDate(raw)
		if err != nil {
			fields["end_date"] = "Enter a valid date/time."
		} else {
			query.EndDate = &t
		}
	}
	if raw := c.Query("organized_by_me"); raw != "" {
		b, ok := parseBool(raw)
		if !ok {
			fields["organized_by_me"] = "Must be a valid boolean."
		}
		query.OrganizedByMe = b
	}
	if raw := c.Query("participated_by_me"); raw != "" {
		b, ok := parseBool(raw)
		if !ok {
			fields["participated_by_me"] = "Must be a valid boolean."
		}
		query.ParticipatedByMe = b
	}

	if len(fields) > 0 {
		return query, apperror.Validation(fields)
	}
	return query, nil
}
