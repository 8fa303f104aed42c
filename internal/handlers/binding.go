package handlers

import (
	"errors"
	"net/http"
	"reflect"
	"strings"
	"sync"

	"taskmanager/internal/dto"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

var registerOnce sync.Once

// UseRequestFieldNames makes validation errors report the json or form name
// of a field instead of the Go struct field name.
func UseRequestFieldNames() {
	registerOnce.Do(func() {
		v, ok := binding.Validator.Engine().(*validator.Validate)
		if !ok {
			return
		}
		v.RegisterTagNameFunc(func(f reflect.StructField) string {
			for _, tag := range []string{"json", "form"} {
				name := strings.SplitN(f.Tag.Get(tag), ",", 2)[0]
				if name == "-" {
					return ""
				}
				if name != "" {
					return name
				}
			}
			return f.Name
		})
	})
}

func writeBindError(c *gin.Context, err error) {
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		fields := make(map[string]string, len(verrs))
		for _, fe := range verrs {
			fields[fe.Field()] = fe.Tag()
		}
		c.JSON(http.StatusUnprocessableEntity, dto.ErrorResponse{Error: "validation failed", Fields: fields})
		return
	}
	c.JSON(http.StatusUnprocessableEntity, dto.ErrorResponse{Error: err.Error()})
}
