package sleeper

import (
	"errors"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/preston-bernstein/fantasy-data-service/internal/providers"
)

// Request shapes checked before any network call. String fields hold trimmed values.

type userRequest struct {
	UsernameOrID string `json:"usernameOrId" validate:"required"`
}

type userLeaguesRequest struct {
	UserID string `json:"userId" validate:"required"`
	Sport  string `json:"sport" validate:"required"`
	Season string `json:"season" validate:"required"`
}

type leagueRequest struct {
	LeagueID string `json:"leagueId" validate:"required"`
}

type matchupsRequest struct {
	LeagueID string `json:"leagueId" validate:"required"`
	Week     int    `json:"week" validate:"min=0"`
}

type playersRequest struct {
	Sport string `json:"sport" validate:"required"`
}

type trendingRequest struct {
	Sport         string `json:"sport" validate:"required"`
	Type          string `json:"type" validate:"oneof=add drop"`
	LookbackHours int    `json:"lookbackHours" validate:"min=0"`
	Limit         int    `json:"limit" validate:"min=1"`
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" || name == "" {
			return fld.Name
		}
		return name
	})
	return v
}

// checkRequest validates req and converts failures into an InvalidArgument error.
func checkRequest(op string, req any) error {
	err := validate.Struct(req)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return providers.InvalidArgument(op, map[string]string{"request": err.Error()})
	}
	fields := make(map[string]string, len(verrs))
	for _, fe := range verrs {
		fields[fe.Field()] = fieldMessage(fe)
	}
	return providers.InvalidArgument(op, fields)
}

func fieldMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "min":
		return "must be at least " + fe.Param()
	case "oneof":
		return "must be one of: " + strings.ReplaceAll(fe.Param(), " ", ", ")
	default:
		return "is invalid"
	}
}
