// Package validate configures the struct validator shared by config loading,
// kit catalogs and API requests.
package validate

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"

	"github.com/conorfennell/versekeep/internal/bible"
	"github.com/conorfennell/versekeep/internal/domain"
)

var (
	once     sync.Once
	instance *validator.Validate
)

// Validator returns the shared validator with the custom tags registered.
func Validator() *validator.Validate {
	once.Do(func() {
		instance = New()
	})
	return instance
}

// New builds a validator with the "bookid" tag and the CardSpec chapter check.
func New() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		for _, tag := range []string{"json", "koanf", "yaml"} {
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
	// Registration only fails for an empty tag name.
	_ = v.RegisterValidation("bookid", func(fl validator.FieldLevel) bool {
		return bible.IsBookID(fl.Field().String())
	})
	v.RegisterStructValidation(cardSpecChapter, domain.CardSpec{})
	return v
}

func cardSpecChapter(sl validator.StructLevel) {
	spec := sl.Current().Interface().(domain.CardSpec)
	if !bible.IsBookID(spec.BookID) {
		return
	}
	if err := bible.ValidateChapter(spec.BookID, spec.Chapter); err != nil {
		sl.ReportError(spec.Chapter, "chapter", "Chapter", "chapter", "")
	}
}

// Struct validates s and flattens the failures into one readable error.
func Struct(s any) error {
	err := Validator().Struct(s)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err
	}
	msgs := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		if fe.Param() != "" {
			msgs = append(msgs, fmt.Sprintf("%s: failed %s=%s", fe.Namespace(), fe.Tag(), fe.Param()))
		} else {
			msgs = append(msgs, fmt.Sprintf("%s: failed %s", fe.Namespace(), fe.Tag()))
		}
	}
	return fmt.Errorf("%w: %s", ErrInvalid, strings.Join(msgs, "; "))
}

// ErrInvalid wraps every validation failure returned by Struct.
var ErrInvalid = errors.New("validation failed")
