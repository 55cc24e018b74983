package echoapi

import (
	"github.com/labstack/echo/v4"

	"github.com/trezcool/selfcare/core"
)

const ctxProfileKey = "profile"

// profileMiddleware rejects blank `:profile` path params and stores the cleaned one in the context.
func profileMiddleware(next echo.HandlerFunc) echo.HandlerFunc {
	return func(ctx echo.Context) error {
		profile := core.CleanString(ctx.Param("profile"))
		if profile == "" {
			return errBlankProfile
		}
		ctx.Set(ctxProfileKey, profile)
		return next(ctx)
	}
}

func getContextProfile(ctx echo.Context) string {
	profile, _ := ctx.Get(ctxProfileKey).(string)
	return profile
}
