package service

import (
	"errors"

	"github.com/curatorapp/curator-server/internal/domain"
	domainerrors "github.com/curatorapp/curator-server/internal/errors"
	"github.com/curatorapp/curator-server/internal/store"
)

// translateStoreErr maps store sentinels onto domain errors. Other errors
// pass through unchanged.
func translateStoreErr(err error, notFoundMsg string) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, store.ErrNotFound):
		return domainerrors.NotFound(notFoundMsg).WithCause(err)
	case errors.Is(err, store.ErrAlreadyExists):
		return domainerrors.Conflict("resource already exists").WithCause(err)
	default:
		return err
	}
}

func checkKind(kind domain.Kind) error {
	if !kind.Valid() {
		return domainerrors.Validationf("unknown item kind %q", kind)
	}
	return nil
}

func requireActor(actorID string) error {
	if actorID == "" {
		return domainerrors.Unauthorized("authentication required")
	}
	return nil
}
