package controller

import (
	"fmt"

	"feature-prioritizer/internal/dto"
	"feature-prioritizer/internal/pkg/serverutils"
	"feature-prioritizer/internal/service"

	"github.com/gofiber/fiber/v2"
)

type IFeatureController interface {
	RegisterRoutes(r fiber.Router)
	View(ctx *fiber.Ctx) error
	CreateRice(ctx *fiber.Ctx) error
	CreateMoscow(ctx *fiber.Ctx) error
	Delete(ctx *fiber.Ctx) error
	ClearAll(ctx *fiber.Ctx) error
	LoadSample(ctx *fiber.Ctx) error
	GetTemplates(ctx *fiber.Ctx) error
	ApplyTemplate(ctx *fiber.Ctx) error
	ImportCSV(ctx *fiber.Ctx) error
	ExportCSV(ctx *fiber.Ctx) error
	Compare(ctx *fiber.Ctx) error
	Analytics(ctx *fiber.Ctx) error
	ExportBackup(ctx *fiber.Ctx) error
	ImportBackup(ctx *fiber.Ctx) error
}

type featureController struct {
	service service.ISessionService
}

func NewFeatureController(service service.ISessionService) IFeatureController {
	return &featureController{service: service}
}

func (c *featureController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/features/v1")
	h.Get("", c.View)
	h.Delete("", c.ClearAll)
	h.Post("rice", c.CreateRice)
	h.Post("moscow", c.CreateMoscow)
	h.Post("sample/:framework", c.LoadSample)
	h.Get("templates", c.GetTemplates)
	h.Post("templates/:key", c.ApplyTemplate)
	h.Post("import", c.ImportCSV)
	h.Get("export", c.ExportCSV)
	h.Post("compare", c.Compare)
	h.Get("analytics", c.Analytics)
	h.Get("backup", c.ExportBackup)
	h.Post("backup", c.ImportBackup)
	h.Delete(":id", c.Delete)
}

func (c *featureController) View(ctx *fiber.Ctx) error {
	q, err := dto.ParseViewQuery(ctx.Query("framework"), ctx.Query("search"), ctx.Query("priority"))
	if err != nil {
		return err
	}

	view, err := c.service.View(ctx.UserContext(), q)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success get features", dto.NewViewResponse(view)))
}

func (c *featureController) CreateRice(ctx *fiber.Ctx) error {
	var req dto.CreateRiceFeatureRequest
	if err := ctx.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
	}

	f, err := c.service.AddRice(ctx.UserContext(), req.ToDraft())
	if err != nil {
		return err
	}

	return ctx.Status(fiber.StatusCreated).JSON(serverutils.SuccessResponse("Success create feature", dto.NewFeatureResponse(f)))
}

func (c *featureController) CreateMoscow(ctx *fiber.Ctx) error {
	var req dto.CreateMoscowFeatureRequest
	if err := ctx.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
	}

	f, err := c.service.AddMoscow(ctx.UserContext(), req.ToDraft())
	if err != nil {
		return err
	}

	return ctx.Status(fiber.StatusCreated).JSON(serverutils.SuccessResponse("Success create feature", dto.NewFeatureResponse(f)))
}

func (c *featureController) Delete(ctx *fiber.Ctx) error {
	if err := c.service.Delete(ctx.UserContext(), ctx.Params("id")); err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse[any]("Success delete feature", nil))
}

func (c *featureController) ClearAll(ctx *fiber.Ctx) error {
	c.service.ClearAll(ctx.UserContext())

	return ctx.JSON(serverutils.SuccessResponse[any]("Success clear features", nil))
}

func (c *featureController) LoadSample(ctx *fiber.Ctx) error {
	fw, err := dto.ParseFrameworkParam(ctx.Params("framework"))
	if err != nil {
		return err
	}

	n, err := c.service.LoadSampleData(ctx.UserContext(), fw)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success load sample data", dto.CountResponse{Count: n}))
}

func (c *featureController) GetTemplates(ctx *fiber.Ctx) error {
	templates := c.service.Templates()
	res := make([]dto.TemplateResponse, 0, len(templates))
	for _, t := range templates {
		res = append(res, dto.NewTemplateResponse(t))
	}

	return ctx.JSON(serverutils.SuccessResponse("Success get templates", res))
}

func (c *featureController) ApplyTemplate(ctx *fiber.Ctx) error {
	tpl, err := c.service.ApplyTemplate(ctx.UserContext(), ctx.Params("key"))
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success apply template", dto.NewTemplateResponse(tpl)))
}

// ImportCSV reads the raw CSV text from the request body.
func (c *featureController) ImportCSV(ctx *fiber.Ctx) error {
	fw, err := dto.ParseFrameworkParam(ctx.Query("framework"))
	if err != nil {
		return err
	}

	n, err := c.service.ImportCSV(ctx.UserContext(), string(ctx.Body()), fw)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success import features", dto.CountResponse{Count: n}))
}

func (c *featureController) ExportCSV(ctx *fiber.Ctx) error {
	q, err := dto.ParseViewQuery(ctx.Query("framework"), ctx.Query("search"), ctx.Query("priority"))
	if err != nil {
		return err
	}

	filename, content, err := c.service.ExportCSV(ctx.UserContext(), q)
	if err != nil {
		return err
	}

	ctx.Set(fiber.HeaderContentType, "text/csv; charset=utf-8")
	ctx.Set(fiber.HeaderContentDisposition, fmt.Sprintf(`attachment; filename="%s"`, filename))
	return ctx.SendString(content)
}

func (c *featureController) Compare(ctx *fiber.Ctx) error {
	var req dto.CompareFeaturesRequest
	if err := ctx.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
	}

	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	fw, err := dto.ParseFrameworkParam(req.Framework)
	if err != nil {
		return err
	}
	if req.Framework == "" {
		fw = ""
	}

	summary, err := c.service.Compare(ctx.UserContext(), req.Ids, fw)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success compare features", summary))
}

func (c *featureController) Analytics(ctx *fiber.Ctx) error {
	fw, err := dto.ParseFrameworkParam(ctx.Query("framework"))
	if err != nil {
		return err
	}

	a, err := c.service.Analytics(ctx.UserContext(), fw)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success get analytics", dto.NewAnalyticsResponse(a)))
}

// ExportBackup returns the stored JSON as a download.
func (c *featureController) ExportBackup(ctx *fiber.Ctx) error {
	backup := c.service.ExportBackup(ctx.UserContext())

	ctx.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSONCharsetUTF8)
	ctx.Set(fiber.HeaderContentDisposition, `attachment; filename="feature-prioritizer-backup.json"`)
	return ctx.SendString(backup)
}

func (c *featureController) ImportBackup(ctx *fiber.Ctx) error {
	n, err := c.service.ImportBackup(ctx.UserContext(), string(ctx.Body()))
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success restore backup", dto.CountResponse{Count: n}))
}
