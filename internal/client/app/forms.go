package app

import (
	"errors"
	"math"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/dmitrijs2005/sweetshop/internal/client/models"
)

var validate = validator.New(validator.WithRequiredStructEnabled())

type LoginForm struct {
	Username string `validate:"required"`
	Password string `validate:"required"`
}

func (f LoginForm) trimmed() LoginForm {
	return LoginForm{Username: strings.TrimSpace(f.Username), Password: strings.TrimSpace(f.Password)}
}

// Validate checks the trimmed form.
func (f LoginForm) Validate() error {
	if err := validate.Struct(f.trimmed()); err != nil {
		return &ValidationError{Field: firstField(err), Message: msgFillAllFields}
	}
	return nil
}

type RegisterForm struct {
	Username string `validate:"required"`
	Email    string `validate:"required,email"`
	Password string `validate:"required,min=6"`
}

func (f RegisterForm) trimmed() RegisterForm {
	return RegisterForm{
		Username: strings.TrimSpace(f.Username),
		Email:    strings.TrimSpace(f.Email),
		Password: strings.TrimSpace(f.Password),
	}
}

// Validate reports missing fields first, then a short password, then a
// malformed email.
func (f RegisterForm) Validate() error {
	err := validate.Struct(f.trimmed())
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return &ValidationError{Message: msgFillAllFields}
	}

	var short, email *ValidationError
	for _, fe := range verrs {
		switch fe.Tag() {
		case "required":
			return &ValidationError{Field: fe.Field(), Message: msgFillAllFields}
		case "min":
			short = &ValidationError{Field: fe.Field(), Message: msgPasswordTooShort}
		case "email":
			email = &ValidationError{Field: fe.Field(), Message: msgInvalidEmail}
		}
	}
	if short != nil {
		return short
	}
	if email != nil {
		return email
	}
	return &ValidationError{Field: verrs[0].Field(), Message: msgFillAllFields}
}

// ItemForm is the raw text of the add/edit item form.
type ItemForm struct {
	Name        string `validate:"required"`
	Description string
	Category    string `validate:"required"`
	Price       string `validate:"required"`
	Quantity    string `validate:"required,number"`
}

// FormFromSweet prefills an edit form.
func FormFromSweet(s models.Sweet) ItemForm {
	return ItemForm{
		Name:        s.Name,
		Description: s.Description,
		Category:    s.Category,
		Price:       strconv.FormatFloat(float64(s.Price), 'f', -1, 64),
		Quantity:    strconv.FormatInt(int64(s.Quantity), 10),
	}
}

// Input validates the form and converts it into a request body.
func (f ItemForm) Input() (models.SweetInput, error) {
	f = ItemForm{
		Name:        strings.TrimSpace(f.Name),
		Description: strings.TrimSpace(f.Description),
		Category:    strings.TrimSpace(f.Category),
		Price:       strings.TrimSpace(f.Price),
		Quantity:    strings.TrimSpace(f.Quantity),
	}
	if err := validate.Struct(f); err != nil {
		return models.SweetInput{}, &ValidationError{Field: firstField(err), Message: msgRequiredFields}
	}

	price, err := parsePrice(f.Price)
	if err != nil {
		return models.SweetInput{}, err
	}
	qty, err := strconv.Atoi(f.Quantity)
	if err != nil {
		return models.SweetInput{}, &ValidationError{Field: "Quantity", Message: msgRequiredFields}
	}

	return models.SweetInput{
		Name:        f.Name,
		Description: f.Description,
		Category:    f.Category,
		Price:       price,
		Quantity:    qty,
	}, nil
}

// parsePrice accepts any finite, non-negative decimal (".5", "1e2").
func parsePrice(s string) (float64, error) {
	price, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsInf(price, 0) || math.IsNaN(price) {
		return 0, &ValidationError{Field: "Price", Message: msgRequiredFields}
	}
	if err := validate.Var(price, "gte=0"); err != nil {
		return 0, &ValidationError{Field: "Price", Message: msgRequiredFields}
	}
	return price, nil
}

// ParseQuantity accepts a strictly positive integer.
func ParseQuantity(s string) (int, error) {
	s = strings.TrimSpace(s)
	if err := validate.Var(s, "required,number"); err != nil {
		return 0, &ValidationError{Field: "Quantity", Message: msgInvalidQuantity}
	}
	n, err := strconv.Atoi(s)
	if err != nil || n <= 0 {
		return 0, &ValidationError{Field: "Quantity", Message: msgInvalidQuantity}
	}
	return n, nil
}

// ParseDate accepts a YYYY-MM-DD date.
func ParseDate(field, s string) (string, error) {
	s = strings.TrimSpace(s)
	if err := validate.Var(s, "required,datetime=2006-01-02"); err != nil {
		return "", &ValidationError{Field: field, Message: msgInvalidDate}
	}
	return s, nil
}

func firstField(err error) string {
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) && len(verrs) > 0 {
		return verrs[0].Field()
	}
	return ""
}
