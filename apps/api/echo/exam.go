package echoapi

import (
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/trezcool/selfcare/core/exam"
)

type examApi struct {
	svc      exam.ServiceInterface
	validate *validator.Validate
}

func registerExamAPI(g *echo.Group, svc exam.ServiceInterface, validate *validator.Validate) {
	api := examApi{
		svc:      svc,
		validate: validate,
	}

	eg := g.Group("/profiles/:profile/exams", profileMiddleware)
	eg.GET("", api.query)
	eg.POST("", api.create)
	eg.GET("/archived", api.queryArchived)
	eg.GET("/history", api.history)
	eg.GET("/metrics", api.metrics)

	// detail endpoints
	eg.GET("/:id", api.retrieve)
	eg.PUT("/:id", api.update)
	eg.DELETE("/:id", api.destroy)
	eg.POST("/:id/archive", api.archive)
	eg.GET("/:id/stages", api.board)
	eg.PATCH("/:id/stages/:index", api.editStage)
}

// Handlers

func (api *examApi) query(ctx echo.Context) error {
	var ord Ordering
	ord.Bind(ctx)

	apps, err := api.svc.List(ctx.Request().Context(), getContextProfile(ctx), ord.Orderings...)
	if err != nil {
		return errors.Wrap(err, "querying exams")
	}
	return ctx.JSON(http.StatusOK, apps)
}

func (api *examApi) queryArchived(ctx echo.Context) error {
	var ord Ordering
	ord.Bind(ctx)

	apps, err := api.svc.Archived(ctx.Request().Context(), getContextProfile(ctx), ord.Orderings...)
	if err != nil {
		return errors.Wrap(err, "querying archived exams")
	}
	return ctx.JSON(http.StatusOK, apps)
}

func (api *examApi) history(ctx echo.Context) error {
	apps, err := api.svc.History(ctx.Request().Context(), getContextProfile(ctx))
	if err != nil {
		return errors.Wrap(err, "querying exam history")
	}
	return ctx.JSON(http.StatusOK, apps)
}

func (api *examApi) metrics(ctx echo.Context) error {
	metrics, err := api.svc.Metrics(ctx.Request().Context(), getContextProfile(ctx))
	if err != nil {
		return errors.Wrap(err, "computing metrics")
	}
	return ctx.JSON(http.StatusOK, metrics)
}

func (api *examApi) create(ctx echo.Context) error {
	var data exam.NewApplication
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to NewApplication")
	}
	if err := data.Validate(api.validate); err != nil {
		return err
	}

	app, err := api.svc.Add(ctx.Request().Context(), getContextProfile(ctx), data)
	if err != nil {
		return errors.Wrap(err, "creating exam")
	}
	return ctx.JSON(http.StatusCreated, app)
}

func (api *examApi) retrieve(ctx echo.Context) error {
	app, err := api.svc.Get(ctx.Request().Context(), getContextProfile(ctx), ctx.Param("id"))
	if err != nil {
		return errors.Wrap(err, "getting exam")
	}
	return ctx.JSON(http.StatusOK, app)
}

func (api *examApi) update(ctx echo.Context) error {
	var data exam.UpdateApplication
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to UpdateApplication")
	}
	if err := data.Validate(api.validate); err != nil {
		return err
	}

	app, err := api.svc.Update(ctx.Request().Context(), getContextProfile(ctx), ctx.Param("id"), data)
	if err != nil {
		return errors.Wrap(err, "updating exam")
	}
	return ctx.JSON(http.StatusOK, app)
}

func (api *examApi) destroy(ctx echo.Context) error {
	if err := api.svc.Delete(ctx.Request().Context(), getContextProfile(ctx), ctx.Param("id")); err != nil {
		return errors.Wrap(err, "deleting exam")
	}
	return ctx.NoContent(http.StatusNoContent)
}

func (api *examApi) archive(ctx echo.Context) error {
	if err := api.svc.Archive(ctx.Request().Context(), getContextProfile(ctx), ctx.Param("id")); err != nil {
		return errors.Wrap(err, "archiving exam")
	}
	return ctx.NoContent(http.StatusNoContent)
}

func (api *examApi) board(ctx echo.Context) error {
	board, err := api.svc.Board(ctx.Request().Context(), getContextProfile(ctx), ctx.Param("id"))
	if err != nil {
		return errors.Wrap(err, "getting stage board")
	}
	return ctx.JSON(http.StatusOK, board)
}

func (api *examApi) editStage(ctx echo.Context) error {
	idx, err := stageIndexParam(ctx)
	if err != nil {
		return err
	}

	var data exam.StageUpdate
	if err = ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to StageUpdate")
	}
	if err = data.Validate(api.validate); err != nil {
		return err
	}

	app, err := api.svc.EditStage(ctx.Request().Context(), getContextProfile(ctx), ctx.Param("id"), idx, data)
	if err != nil {
		return errors.Wrap(err, "editing stage")
	}
	return ctx.JSON(http.StatusOK, app)
}
