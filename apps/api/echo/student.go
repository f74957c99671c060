package echoapi

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/trezcool/meritum/core/merit"
	"github.com/trezcool/meritum/core/student"
)

type studentApi struct {
	svc      *student.Service
	meritSvc *merit.Service
}

func registerStudentAPI(g *echo.Group, jwt echo.MiddlewareFunc, deps ServerDeps) {
	api := studentApi{
		svc:      deps.StudentSvc,
		meritSvc: deps.MeritSvc,
	}

	sg := g.Group("/students", jwt)
	sg.GET("", api.query, adminMiddleware())
	sg.GET("/rankings", api.rankings)
	sg.GET("/me/dashboard", api.myDashboard)

	dg := sg.Group("/:matric", selfOrAdminMiddleware("matric"))
	dg.GET("", api.retrieve)
	dg.GET("/merits", api.queryMerits)
}

func (api *studentApi) query(ctx echo.Context) error {
	students, err := api.svc.QueryAll(ctx.Request().Context())
	if err != nil {
		return errors.Wrap(err, "querying students")
	}
	if students == nil {
		students = []student.Student{}
	}
	return ctx.JSON(http.StatusOK, students)
}

func (api *studentApi) rankings(ctx echo.Context) error {
	ranks, err := api.svc.Rankings(ctx.Request().Context())
	if err != nil {
		return errors.Wrap(err, "querying rankings")
	}
	if ranks == nil {
		ranks = []student.Rank{}
	}
	return ctx.JSON(http.StatusOK, ranks)
}

// myDashboard bundles the signed-in student's record, rank and merit
// breakdown in one call.
func (api *studentApi) myDashboard(ctx echo.Context) error {
	claims, err := getContextClaims(ctx)
	if err != nil {
		return errors.Wrap(err, "getting context claims")
	}
	if claims.MatricNumber == "" {
		return errHttpForbidden
	}

	std, err := api.svc.GetByMatric(ctx.Request().Context(), claims.MatricNumber)
	if err != nil {
		return err
	}
	rank, err := api.svc.RankOf(ctx.Request().Context(), claims.MatricNumber)
	if err != nil {
		return errors.Wrap(err, "ranking student")
	}
	breakdown, err := api.meritSvc.BreakdownFor(ctx.Request().Context(), claims.MatricNumber)
	if err != nil {
		return errors.Wrap(err, "building merit breakdown")
	}

	return ctx.JSON(http.StatusOK, DashboardResponse{
		Student:   std,
		Rank:      rank,
		Breakdown: breakdown,
	})
}

func (api *studentApi) retrieve(ctx echo.Context) error {
	std, err := api.svc.GetByMatric(ctx.Request().Context(), ctx.Param("matric"))
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, std)
}

func (api *studentApi) queryMerits(ctx echo.Context) error {
	std, err := api.svc.GetByMatric(ctx.Request().Context(), ctx.Param("matric"))
	if err != nil {
		return err
	}
	merits, err := api.meritSvc.QueryByStudent(ctx.Request().Context(), std.MatricNumber)
	if err != nil {
		return errors.Wrap(err, "querying merits")
	}
	if merits == nil {
		merits = []merit.Merit{}
	}
	return ctx.JSON(http.StatusOK, merits)
}

type DashboardResponse struct {
	Student   student.Student `json:"student"`
	Rank      student.Rank    `json:"rank"`
	Breakdown merit.Breakdown `json:"breakdown"`
}
