// Package validation настраивает validator: ошибки ссылаются на имена полей из JSON,
// добавлено правило link для необязательных ссылок.
package validation

import (
	"net/url"
	"reflect"
	"strings"

	"github.com/go-playground/validator"
)

func New() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" || name == "" {
			return fld.Name
		}
		return name
	})
	// ошибка возможна только при пустом имени тега
	_ = v.RegisterValidation("link", isLink)
	return v
}

// isLink принимает пустую строку (ссылка сбрасывается) или абсолютный http(s) URL.
func isLink(fl validator.FieldLevel) bool {
	s := fl.Field().String()
	if s == "" {
		return true
	}
	u, err := url.ParseRequestURI(s)
	if err != nil {
		return false
	}
	return (u.Scheme == "http" || u.Scheme == "https") && u.Host != ""
}
