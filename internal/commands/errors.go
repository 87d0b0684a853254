package commands

import (
	"context"
	"errors"

	"github.com/goliatone/go-cms-site/internal/cmsdata"
	"github.com/goliatone/go-cms-site/internal/pages"
	goerrors "github.com/goliatone/go-errors"
)

const (
	commandValidationCode   = "SITE_COMMAND_VALIDATION_FAILED"
	commandContextCanceled  = "SITE_COMMAND_CONTEXT_CANCELED"
	commandContextTimeout   = "SITE_COMMAND_CONTEXT_TIMEOUT"
	commandContextErrorCode = "SITE_COMMAND_CONTEXT_ERROR"
	commandExecuteFailed    = "SITE_COMMAND_EXECUTION_FAILED"
	pageNotFoundCode        = "SITE_PAGE_NOT_FOUND"
	pagePayloadInvalidCode  = "SITE_PAGE_PAYLOAD_INVALID"
)

func wrapValidationError(err error) error {
	if err == nil {
		return nil
	}
	if goerrors.IsWrapped(err) {
		return err
	}
	return goerrors.Wrap(err, goerrors.CategoryValidation, "command validation failed").
		WithTextCode(commandValidationCode)
}

func wrapContextError(err error) error {
	if err == nil {
		return nil
	}
	if goerrors.IsWrapped(err) {
		return err
	}
	switch {
	case errors.Is(err, context.Canceled):
		return goerrors.Wrap(err, goerrors.CategoryCommand, "command execution cancelled").
			WithTextCode(commandContextCanceled)
	case errors.Is(err, context.DeadlineExceeded):
		return goerrors.Wrap(err, goerrors.CategoryCommand, "command execution deadline exceeded").
			WithTextCode(commandContextTimeout)
	default:
		return goerrors.Wrap(err, goerrors.CategoryCommand, "command context error").
			WithTextCode(commandContextErrorCode)
	}
}

func wrapExecuteError(err error) error {
	if err == nil {
		return nil
	}
	if goerrors.IsWrapped(err) {
		return err
	}
	if errors.Is(err, cmsdata.ErrSchemaValidation) {
		return goerrors.Wrap(err, goerrors.CategoryValidation, "page payload failed validation").
			WithTextCode(pagePayloadInvalidCode)
	}
	var notFound *pages.PageNotFoundError
	if errors.As(err, &notFound) {
		return goerrors.Wrap(err, goerrors.CategoryCommand, "page not found").
			WithTextCode(pageNotFoundCode)
	}
	return goerrors.Wrap(err, goerrors.CategoryCommand, "command execution failed").
		WithTextCode(commandExecuteFailed)
}
