package controllers

import (
	"fmt"
	"strconv"

	"github.com/gin-gonic/gin"

	"sneaker-storefront/database"
	apperrors "sneaker-storefront/errors"
	"sneaker-storefront/middleware"
)

// sessionStore narrows store to the caller's session.
func sessionStore(c *gin.Context, store database.Store) database.Store {
	return database.Scoped(store, middleware.SessionID(c))
}

func intParam(c *gin.Context, name string) (int, error) {
	v, err := strconv.Atoi(c.Param(name))
	if err != nil || v <= 0 {
		return 0, apperrors.Wrap(apperrors.ErrBadRequest, fmt.Errorf("invalid %s %q", name, c.Param(name)))
	}
	return v, nil
}

func badRequest(c *gin.Context, err error) {
	apperrors.Respond(c, apperrors.Wrap(apperrors.ErrBadRequest, err))
}
