package handler

import (
	"errors"
	"regexp"
	"sync"

	"designer/internal/app/dto"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"github.com/sirupsen/logrus"
)

var (
	loginPattern = regexp.MustCompile(`^[A-Za-z0-9_]{3,255}$`)
	registerOnce sync.Once
)

// registerValidators добавляет тег `login` в валидатор gin
func registerValidators() {
	registerOnce.Do(func() {
		v, ok := binding.Validator.Engine().(*validator.Validate)
		if !ok {
			return
		}
		if err := v.RegisterValidation("login", validateLogin); err != nil {
			logrus.Error("register login validator: ", err)
		}
	})
}

func validateLogin(fl validator.FieldLevel) bool {
	return loginPattern.MatchString(fl.Field().String())
}

// bindMessage переводит ошибку привязки в сообщение для клиента:
// пропущенные поля важнее нарушения формата логина
func bindMessage(err error) string {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return dto.MessageIncompleteData
	}

	badLogin := false
	for _, fe := range verrs {
		switch fe.Tag() {
		case "required":
			return dto.MessageIncompleteData
		case "login":
			badLogin = true
		}
	}
	if badLogin {
		return dto.MessageBadLogin
	}
	return dto.MessageIncompleteData
}
