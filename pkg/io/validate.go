package io

import (
	stderrors "errors"
	"fmt"
	"math"
	"reflect"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"

	"github.com/matzehuels/energydiagram/pkg/diagram"
	"github.com/matzehuels/energydiagram/pkg/errors"
	"github.com/matzehuels/energydiagram/pkg/render/color"
)

var validatorOnce = sync.OnceValue(newValidator)

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}
		return name
	})
	must := func(err error) {
		if err != nil {
			panic(err)
		}
	}
	must(v.RegisterValidation("finite", func(fl validator.FieldLevel) bool {
		f := fl.Field().Float()
		return !math.IsNaN(f) && !math.IsInf(f, 0)
	}))
	must(v.RegisterValidation("colorspec", func(fl validator.FieldLevel) bool {
		return color.Valid(fl.Field().String())
	}))
	must(v.RegisterValidation("linestyle", func(fl validator.FieldLevel) bool {
		_, err := diagram.ParseLineStyle(fl.Field().String())
		return err == nil
	}))
	return v
}

// fieldCodes picks the error code for a failing field by its JSON name.
var fieldCodes = map[string]errors.Code{
	"placement": errors.ErrCodeInvalidPlacement,
	"color":     errors.ErrCodeInvalidColor,
	"style":     errors.ErrCodeInvalidStyle,
	"position":  errors.ErrCodeInvalidPosition,
	"from":      errors.ErrCodeInvalidLink,
	"to":        errors.ErrCodeInvalidLink,
}

// Validate checks doc field by field and then its cross references: link
// endpoints and label level references must name existing levels, and each
// label needs an energy or a level. It returns nil or an *errors.Error.
func Validate(doc *Document) error {
	if doc == nil {
		return errors.New(errors.ErrCodeInvalidDocument, "document is nil")
	}
	if err := validatorOnce().Struct(doc); err != nil {
		return fromValidator(err)
	}

	for _, s := range []struct{ field, text string }{
		{"title", doc.Title}, {"xlabel", doc.XLabel}, {"ylabel", doc.YLabel},
	} {
		if err := errors.ValidateText(s.field, s.text); err != nil {
			return err
		}
	}

	n := len(doc.Levels)
	for i, lb := range doc.Labels {
		if err := errors.ValidateText(fmt.Sprintf("labels[%d].text", i), lb.Text); err != nil {
			return err
		}
		switch {
		case lb.Level != nil && *lb.Level >= n:
			return errors.New(errors.ErrCodeInvalidDocument,
				"labels[%d].level: no level %d (document has %d)", i, *lb.Level, n)
		case lb.Level == nil && lb.Energy == nil:
			return errors.New(errors.ErrCodeInvalidDocument,
				"labels[%d]: either level or energy is required", i)
		}
	}
	for i, lk := range doc.Links {
		if lk.From >= n || lk.To >= n {
			return errors.New(errors.ErrCodeInvalidLink,
				"links[%d]: %d-%d references a missing level (document has %d)", i, lk.From, lk.To, n)
		}
	}
	for i, s := range doc.Plot.XTickLabels {
		if err := errors.ValidateText(fmt.Sprintf("plot.xtick_labels[%d]", i), s); err != nil {
			return err
		}
	}
	return nil
}

func fromValidator(err error) error {
	var verrs validator.ValidationErrors
	if !stderrors.As(err, &verrs) || len(verrs) == 0 {
		return errors.Wrap(errors.ErrCodeInvalidDocument, err, "validate document")
	}
	fe := verrs[0]
	ns := strings.TrimPrefix(fe.Namespace(), "Document.")
	code, ok := fieldCodes[fe.Field()]
	if !ok {
		code = errors.ErrCodeInvalidDocument
	}
	rule := fe.Tag()
	if fe.Param() != "" {
		rule += "=" + fe.Param()
	}
	return errors.Wrap(code, err, "%s: value %v fails %s", ns, fe.Value(), rule)
}
