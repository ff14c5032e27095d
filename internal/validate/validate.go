package validate

import (
	"reflect"
	"regexp"
	"strings"

	"github.com/go-playground/validator/v10"

	"storekeeper/internal/domain"
	"storekeeper/internal/errs"
)

var (
	reID     = regexp.MustCompile(`^[A-Za-z0-9_-]{1,64}$`)
	reSource = regexp.MustCompile(`^(camera|gallery)$`)
)

var v = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		tag := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if tag == "" {
			return f.Name
		}
		return tag
	})
	return v
}

// ID validates a product identifier (generated uuids and seeded ids).
func ID(s string) (string, bool) {
	s = strings.TrimSpace(s)
	return s, s != "" && reID.MatchString(s)
}

// Source validates the photo source of an upload.
func Source(s string) (string, bool) {
	s = strings.ToLower(strings.TrimSpace(s))
	return s, reSource.MatchString(s)
}

// Create checks a new product the way the product form does. The returned
// input has its name trimmed.
func Create(in domain.CreateProductInput) (domain.CreateProductInput, error) {
	in.Name = strings.TrimSpace(in.Name)
	if err := v.Struct(in); err != nil {
		return in, fieldErrors(err)
	}
	return in, nil
}

// Update checks only the fields that are set. Only image_uri may be null.
func Update(in domain.UpdateProductInput) (domain.UpdateProductInput, error) {
	details := map[string]string{}
	if in.Name.IsNull() {
		details["name"] = message("name", "required")
	} else if name, ok := in.Name.Get(); ok {
		name = strings.TrimSpace(name)
		if err := v.Var(name, "required,min=2,max=100"); err != nil {
			details["name"] = message("name", tagOf(err))
		}
		in.Name = domain.Some(name)
	}
	if in.Quantity.IsNull() {
		details["quantity"] = message("quantity", "required")
	} else if q, ok := in.Quantity.Get(); ok {
		if err := v.Var(q, "gte=0"); err != nil {
			details["quantity"] = message("quantity", tagOf(err))
		}
	}
	if in.Price.IsNull() {
		details["price"] = message("price", "required")
	} else if p, ok := in.Price.Get(); ok {
		if err := v.Var(p, "gte=0"); err != nil {
			details["price"] = message("price", tagOf(err))
		}
	}
	if len(details) > 0 {
		return in, errs.New(errs.CodeValidation, "validation failed").WithDetails(details)
	}
	return in, nil
}

func fieldErrors(err error) error {
	verrs, ok := err.(validator.ValidationErrors)
	if !ok {
		return errs.Wrap(errs.CodeValidation, err, "validation failed")
	}
	details := map[string]string{}
	for _, fe := range verrs {
		details[fe.Field()] = message(fe.Field(), fe.Tag())
	}
	return errs.New(errs.CodeValidation, "validation failed").WithDetails(details)
}

func tagOf(err error) string {
	if verrs, ok := err.(validator.ValidationErrors); ok && len(verrs) > 0 {
		return verrs[0].Tag()
	}
	return ""
}

func message(field, tag string) string {
	switch field {
	case "name":
		switch tag {
		case "required":
			return "Product name is required"
		case "min":
			return "Name must be at least 2 characters"
		case "max":
			return "Name must be at most 100 characters"
		}
	case "quantity":
		return "Please enter a valid quantity"
	case "price":
		return "Please enter a valid price"
	}
	return "is invalid"
}
