package console

import (
	"context"
	"net/http"

	"github.com/ashendes/jewelry-admin/internal/access"
	"github.com/ashendes/jewelry-admin/internal/models"
	"github.com/ashendes/jewelry-admin/internal/views"
	"github.com/gin-gonic/gin"
)

// page describes how one CRUD entity is rendered. detail is nil for
// entities without a detail page.
type page[T, R, D any] struct {
	screen views.Screen
	row    func(T, views.Pending) R
	detail func(T, views.Pending) D
	label  func(T) string
}

func registerResource[T, C, U, R, D any](r gin.IRouter, res *access.Resource[T, C, U], p page[T, R, D]) {
	listPath := views.ListPath(p.screen.Entity)
	row := func(t T) R { return p.row(t, res.Pending) }
	g := r.Group(listPath)

	g.GET("", func(c *gin.Context) {
		params := models.ParseListParams(c.Request.URL.Query(), res.Filters()...)
		result := res.List(c.Request.Context(), params)
		respond(c, statusFor(result.Err), views.BuildList(p.screen, params, result, row))
	})

	g.POST("/create", func(c *gin.Context) {
		var req C
		if err := c.ShouldBindJSON(&req); err != nil {
			invalid(c, err)
			return
		}
		created, err := res.Create(c.Request.Context(), req)
		if err != nil {
			fail(c, err)
			return
		}
		redirect(c, http.StatusCreated, row(*created), listPath)
	})

	g.GET("/edit/:id", func(c *gin.Context) {
		result := res.Detail(c.Request.Context(), c.Param("id"))
		form := views.BuildDetail(p.screen, "Chỉnh sửa "+p.screen.Noun, result, func(t T) T { return t }, nil)
		respond(c, statusFor(result.Err), form)
	})

	g.POST("/edit/:id", func(c *gin.Context) {
		var req U
		if err := c.ShouldBindJSON(&req); err != nil {
			invalid(c, err)
			return
		}
		updated, err := res.Update(c.Request.Context(), c.Param("id"), req)
		if err != nil {
			fail(c, err)
			return
		}
		redirect(c, http.StatusOK, row(*updated), listPath)
	})

	if p.detail != nil {
		g.GET("/detail/:id", func(c *gin.Context) {
			result := res.Detail(c.Request.Context(), c.Param("id"))
			detail := views.BuildDetail(p.screen, "Chi tiết "+p.screen.Noun, result, func(t T) D { return p.detail(t, res.Pending) }, nil)
			respond(c, statusFor(result.Err), detail)
		})
	}

	g.POST("/delete/:id", confirmDelete(p.screen, res.PeekDetail, p.label, res.Delete))
}

// confirmDelete answers with the confirmation dialog unless the request carries
// confirm=true, in which case it deletes and redirects to the list
func confirmDelete[T any](
	s views.Screen,
	peek func(string) access.DetailResult[T],
	label func(T) string,
	del func(context.Context, string) error,
) gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.Param("id")

		if c.Query("confirm") != "true" {
			name := id
			if cached := peek(id); cached.Entity != nil {
				name = label(*cached.Entity)
			}
			respond(c, http.StatusOK, gin.H{"dialog": views.DeleteDialog(s.Entity, s.Noun, id, name)})
			return
		}

		if err := del(c.Request.Context(), id); err != nil {
			fail(c, err)
			return
		}
		redirect(c, http.StatusOK, nil, views.ListPath(s.Entity))
	}
}
