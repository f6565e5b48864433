package handlers

import (
	"strings"
	"sync"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

var registerOnce sync.Once

// RegisterValidators adds the phone and nationalid tags to gin's validator.
// Safe to call more than once.
func RegisterValidators() {
	registerOnce.Do(func() {
		v, ok := binding.Validator.Engine().(*validator.Validate)
		if !ok {
			return
		}
		// phone is e164 with the leading + optional
		_ = v.RegisterValidation("phone", func(fl validator.FieldLevel) bool {
			return v.Var("+"+strings.TrimPrefix(fl.Field().String(), "+"), "e164") == nil
		})
		v.RegisterAlias("nationalid", "len=12,number")
	})
}
