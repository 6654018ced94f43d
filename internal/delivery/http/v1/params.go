package v1

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"profiler-backend/internal/domain"
	"profiler-backend/pkg/apperror"
	"profiler-backend/pkg/validation"
)

// pathUUID reads a UUID path parameter, pushing a 400 when it is malformed.
func pathUUID(c *gin.Context, name string) (string, bool) {
	raw := c.Param(name)
	id, err := uuid.Parse(raw)
	if err != nil {
		c.Error(apperror.BadRequest("Validation failed (uuid is expected)"))
		return "", false
	}
	return id.String(), true
}

// bindJSON decodes and validates the request body into req.
func bindJSON(c *gin.Context, req interface{}) bool {
	if err := c.ShouldBindJSON(req); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) {
			c.Error(apperror.Validation(validation.FormatValidationErrors(verrs)))
			return false
		}
		c.Error(apperror.BadRequest("Invalid request body"))
		return false
	}
	return true
}

// queryPage reads skip and take. Bounds are applied by the usecase.
func queryPage(c *gin.Context) (domain.Page, error) {
	skip, err := queryInt(c, "skip")
	if err != nil {
		return domain.Page{}, err
	}
	take, err := queryInt(c, "take")
	if err != nil {
		return domain.Page{}, err
	}
	var page domain.Page
	if skip != nil {
		page.Skip = *skip
	}
	if take != nil {
		page.Take = *take
	}
	return page, nil
}

func queryInt(c *gin.Context, key string) (*int, error) {
	raw := strings.TrimSpace(c.Query(key))
	if raw == "" {
		return nil, nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return nil, apperror.BadRequest(fmt.Sprintf("Validation failed (%s must be an integer)", key))
	}
	return &v, nil
}

func queryDate(c *gin.Context, key string) (*domain.Date, error) {
	raw := strings.TrimSpace(c.Query(key))
	if raw == "" {
		return nil, nil
	}
	d, err := domain.ParseDate(raw)
	if err != nil {
		return nil, apperror.BadRequest(fmt.Sprintf("Validation failed (%s must be a date)", key))
	}
	return &d, nil
}

func queryUUID(c *gin.Context, key string) (string, error) {
	raw := strings.TrimSpace(c.Query(key))
	if raw == "" {
		return "", nil
	}
	id, err := uuid.Parse(raw)
	if err != nil {
		return "", apperror.BadRequest(fmt.Sprintf("Validation failed (%s must be a UUID)", key))
	}
	return id.String(), nil
}

// queryList accepts repeated keys and comma-separated values: ?skills=Go&skills=SQL,Rust.
func queryList(c *gin.Context, key string) []string {
	var out []string
	for _, raw := range c.QueryArray(key) {
		for _, part := range strings.Split(raw, ",") {
			if v := strings.TrimSpace(part); v != "" {
				out = append(out, v)
			}
		}
	}
	return out
}
