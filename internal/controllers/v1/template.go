package v1

import (
	"net/http"

	"github.com/budgetradar/backend/internal/httputil"
	"github.com/budgetradar/backend/internal/models"
	"github.com/budgetradar/backend/internal/templates"
	"github.com/gin-gonic/gin"
)

type TemplateURI struct {
	TemplateID string `uri:"templateId" binding:"required"` // ID of the built-in template
}

type TemplateQueryFilter struct {
	Search   string `form:"search"`   // Search for this text in name and description
	Category string `form:"category"` // Only return templates of this category
}

type TemplateListResponse struct {
	Data       []templates.Template `json:"data"`                                           // List of templates, most popular first
	Categories []string             `json:"categories"`                                     // All gallery categories
	Error      *string              `json:"error" example:"there is no template for this ID"` // The error, if any occurred
}

type TemplateResponse struct {
	Data  *templates.Template `json:"data"`                                             // Data for the template
	Error *string             `json:"error" example:"there is no template for this ID"` // The error, if any occurred
}

// UseTemplateEditable represents the user configurable parameters when
// creating a dataset from a template.
type UseTemplateEditable struct {
	Name string `json:"name" example:"Spring Campaign" default:""` // Name of the new dataset, defaults to the template name
	Note string `json:"note" example:"" default:""`                // Notes about the new dataset
}

// RegisterTemplateRoutes registers the routes for the template gallery
// with the RouterGroup that is passed.
func RegisterTemplateRoutes(r *gin.RouterGroup) {
	{
		r.OPTIONS("", OptionsTemplateList)
		r.GET("", GetTemplates)
	}

	{
		r.OPTIONS("/:templateId", OptionsTemplateDetail)
		r.GET("/:templateId", GetTemplate)
		r.POST("/:templateId", UseTemplate)
	}
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			Templates
// @Success		204
// @Router			/v1/templates [options]
func OptionsTemplateList(c *gin.Context) {
	httputil.OptionsGet(c)
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			Templates
// @Success		204
// @Failure		404	{object}	httpError
// @Param			templateId	path	string	true	"ID of the template"
// @Router			/v1/templates/{templateId} [options]
func OptionsTemplateDetail(c *gin.Context) {
	var uri TemplateURI
	if err := c.ShouldBindUri(&uri); err != nil {
		c.JSON(http.StatusBadRequest, httpError{Error: err.Error()})
		return
	}

	if _, ok := templates.ByID(uri.TemplateID); !ok {
		c.JSON(http.StatusNotFound, httpError{Error: errTemplateNotFound.Error()})
		return
	}

	httputil.OptionsGetPost(c)
}

// @Summary		Get templates
// @Description	Returns the built-in budget templates, most popular first
// @Tags			Templates
// @Produce		json
// @Success		200	{object}	TemplateListResponse
// @Router			/v1/templates [get]
// @Param			search		query	string	false	"Search for this text in name and description"
// @Param			category	query	string	false	"Only return templates of this category"
func GetTemplates(c *gin.Context) {
	var filter TemplateQueryFilter
	_ = c.Bind(&filter)

	data := templates.All()
	if filter.Search != "" {
		data = templates.Search(filter.Search)
	}
	if filter.Category != "" {
		filtered := make([]templates.Template, 0, len(data))
		for _, template := range data {
			if template.Category == filter.Category {
				filtered = append(filtered, template)
			}
		}
		data = filtered
	}

	c.JSON(http.StatusOK, TemplateListResponse{
		Data:       data,
		Categories: templates.Categories(),
	})
}

// @Summary		Get template
// @Description	Returns a specific built-in budget template
// @Tags			Templates
// @Produce		json
// @Success		200	{object}	TemplateResponse
// @Failure		404	{object}	TemplateResponse
// @Param			templateId	path	string	true	"ID of the template"
// @Router			/v1/templates/{templateId} [get]
func GetTemplate(c *gin.Context) {
	var uri TemplateURI
	if err := c.ShouldBindUri(&uri); err != nil {
		s := err.Error()
		c.JSON(http.StatusBadRequest, TemplateResponse{
			Error: &s,
		})
		return
	}

	template, ok := templates.ByID(uri.TemplateID)
	if !ok {
		s := errTemplateNotFound.Error()
		c.JSON(http.StatusNotFound, TemplateResponse{
			Error: &s,
		})
		return
	}

	c.JSON(http.StatusOK, TemplateResponse{Data: &template})
}

// @Summary		Use template
// @Description	Creates a new dataset with the line items of the template. The dataset name defaults to the template name and can be overridden in the request body.
// @Tags			Templates
// @Accept			json
// @Produce		json
// @Success		201			{object}	DatasetResponse
// @Failure		400			{object}	DatasetResponse
// @Failure		404			{object}	DatasetResponse
// @Failure		500			{object}	DatasetResponse
// @Param			templateId	path		string				true	"ID of the template"
// @Param			dataset		body		UseTemplateEditable	false	"Dataset"
// @Router			/v1/templates/{templateId} [post]
func UseTemplate(c *gin.Context) {
	var uri TemplateURI
	if err := c.ShouldBindUri(&uri); err != nil {
		s := err.Error()
		c.JSON(http.StatusBadRequest, DatasetResponse{
			Error: &s,
		})
		return
	}

	template, ok := templates.ByID(uri.TemplateID)
	if !ok {
		s := errTemplateNotFound.Error()
		c.JSON(http.StatusNotFound, DatasetResponse{
			Error: &s,
		})
		return
	}

	// The body is optional
	var editable UseTemplateEditable
	if c.Request.ContentLength > 0 {
		if err := httputil.BindData(c, &editable); err != nil {
			s := err.Error()
			c.JSON(status(err), DatasetResponse{
				Error: &s,
			})
			return
		}
	}

	if editable.Name == "" {
		editable.Name = template.Name
	}

	dataset := models.Dataset{
		Name:       editable.Name,
		Note:       editable.Note,
		TemplateID: template.ID,
	}

	// Use a transaction so that we can roll back if errors happen
	tx := models.DB.Begin()

	if err := tx.Create(&dataset).Error; err != nil {
		tx.Rollback()
		s := err.Error()
		c.JSON(status(err), DatasetResponse{
			Error: &s,
		})
		return
	}

	for _, templateItem := range template.LineItems {
		item := models.LineItem{
			DatasetID:   dataset.ID,
			Description: templateItem.Description,
			Department:  templateItem.Department,
			Category:    templateItem.Category,
			Amount:      templateItem.Amount,
		}

		if err := tx.Create(&item).Error; err != nil {
			tx.Rollback()
			s := err.Error()
			c.JSON(status(err), DatasetResponse{
				Error: &s,
			})
			return
		}
	}

	tx.Commit()

	data, err := newDataset(c, models.DB, dataset)
	if err != nil {
		s := err.Error()
		c.JSON(status(err), DatasetResponse{
			Error: &s,
		})
		return
	}

	c.JSON(http.StatusCreated, DatasetResponse{Data: &data})
}
