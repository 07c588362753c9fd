// Package validation registers the custom binding tags used by request DTOs.
package validation

import (
	"fmt"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"

	articlevo "redsys/internal/domain/article/valueobjects"
	ticketvo "redsys/internal/domain/ticket/valueobjects"
)

const (
	TagTicketState  = "ticket_state"
	TagArticleState = "article_state"
)

// Register installs the custom tags on gin's default validator.
func Register() error {
	v, ok := binding.Validator.Engine().(*validator.Validate)
	if !ok {
		return fmt.Errorf("unexpected binding validator engine %T", binding.Validator.Engine())
	}
	return RegisterOn(v)
}

func RegisterOn(v *validator.Validate) error {
	if err := v.RegisterValidation(TagTicketState, isTicketState); err != nil {
		return fmt.Errorf("failed to register %s validation: %w", TagTicketState, err)
	}
	if err := v.RegisterValidation(TagArticleState, isArticleState); err != nil {
		return fmt.Errorf("failed to register %s validation: %w", TagArticleState, err)
	}
	return nil
}

func isTicketState(fl validator.FieldLevel) bool {
	return ticketvo.TicketState(fl.Field().String()).IsValid()
}

func isArticleState(fl validator.FieldLevel) bool {
	return articlevo.ArticleState(fl.Field().String()).IsValid()
}
