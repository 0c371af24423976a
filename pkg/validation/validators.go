package validation

import (
	"regexp"
	"unicode"

	"github.com/go-playground/validator/v10"
)

var (
	// letters, spaces and . ' -
	nameRegex = regexp.MustCompile(`^[\p{L} .'-]+$`)

	// optional +, then 7-15 digits
	phoneRegex = regexp.MustCompile(`^\+?[0-9]{7,15}$`)
)

// rules holds the custom tags used on profile and registration payloads.
var rules = map[string]validator.Func{
	"valid_name":  ValidName,
	"valid_phone": ValidPhone,
	"no_emoji":    NoEmoji,
}

// New returns a validator with the custom rules registered
func New() *validator.Validate {
	v := validator.New()
	RegisterValidators(v)
	return v
}

// RegisterValidators adds the custom rules to v. It is applied both to the
// usecase validator and to gin's binding engine.
func RegisterValidators(v *validator.Validate) {
	for tag, fn := range rules {
		_ = v.RegisterValidation(tag, fn)
	}
}

// ValidName accepts empty strings; pair with required when the field is mandatory.
func ValidName(fl validator.FieldLevel) bool {
	return optional(fl, nameRegex.MatchString)
}

func ValidPhone(fl validator.FieldLevel) bool {
	return optional(fl, phoneRegex.MatchString)
}

// NoEmoji rejects pictographs and symbol runes.
func NoEmoji(fl validator.FieldLevel) bool {
	return optional(fl, func(s string) bool {
		for _, r := range s {
			if r > 0x1F000 || unicode.In(r, unicode.So, unicode.Sk) {
				return false
			}
		}
		return true
	})
}

func optional(fl validator.FieldLevel, match func(string) bool) bool {
	val := fl.Field().String()
	if val == "" {
		return true
	}
	return match(val)
}
