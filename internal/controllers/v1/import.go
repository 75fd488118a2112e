package v1

import (
	"errors"
	"fmt"
	"mime/multipart"
	"net/http"
	"strings"

	"github.com/budgetradar/backend/internal/config"
	"github.com/budgetradar/backend/internal/httputil"
	"github.com/budgetradar/backend/internal/importer"
	"github.com/budgetradar/backend/internal/models"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/ryanuber/go-glob"
)

type ImportQuery struct {
	Name string `form:"name" binding:"required"` // Name for the new dataset
}

// sampleCSV is served on the sample endpoint so that users have a
// working file to start from.
const sampleCSV = `Description,Department,Category,Amount
Office Rent,Operations,Facilities,5000
Software Licenses,IT,Technology,2000
Marketing Campaign,Marketing,Advertising,8000
Employee Salaries,HR,Personnel,25000
Team Lunch,HR,Morale,500
Cloud Services,IT,Infrastructure,1200
Office Supplies,Operations,Supplies,300
Travel Expenses,Sales,Travel,3500
Training & Development,HR,Development,1800
Equipment Purchase,Operations,Assets,4200
`

// RegisterImportRoutes registers the routes for imports.
func RegisterImportRoutes(cfg config.Config, r *gin.RouterGroup) {
	{
		r.OPTIONS("", OptionsImport)
		r.GET("", GetImport)
		r.POST("", maxUploadSize(cfg), ImportCSV)

		r.OPTIONS("/preview", OptionsImportPreview)
		r.POST("/preview", maxUploadSize(cfg), ImportPreview)

		r.OPTIONS("/sample", OptionsImportSample)
		r.GET("/sample", GetImportSample)
	}
}

// maxUploadSize limits the request body so that oversized uploads fail
// early instead of being buffered completely.
func maxUploadSize(cfg config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, cfg.MaxUploadSize)
		c.Next()
	}
}

// getUploadedFile returns the form file and handles potential errors.
func getUploadedFile(c *gin.Context, suffix string) (multipart.File, string, error) {
	formFile, err := c.FormFile("file")
	if formFile == nil {
		return nil, "", errNoFilePost
	}

	if err != nil {
		return nil, "", err
	}

	if !strings.HasSuffix(formFile.Filename, suffix) {
		return nil, "", fmt.Errorf("%w: %s", errWrongFileSuffix, suffix)
	}

	f, err := formFile.Open()
	if err != nil {
		return nil, "", err
	}

	return f, formFile.Filename, nil
}

// match applies the first matching rule to a line item preview. Rules
// are passed in priority order, so the first match wins.
func match(preview *importer.LineItemPreview, rules []models.MatchRule) {
	for _, rule := range rules {
		if !glob.Glob(rule.Match, preview.LineItem.Description) {
			continue
		}

		if rule.Department != "" {
			preview.LineItem.Department = rule.Department
		}
		if rule.Category != "" {
			preview.LineItem.Category = rule.Category
		}
		preview.MatchRuleID = rule.ID

		return
	}
}

// duplicateLineItems finds already imported line items with the same
// import hash and sets their IDs on the preview.
func duplicateLineItems(preview *importer.LineItemPreview) {
	var duplicates []models.LineItem
	models.DB.
		Where(models.LineItem{
			ImportHash: preview.LineItem.ImportHash,
		}).
		Find(&duplicates)

	// When there are no resources, we want an empty list, not null
	// Therefore, we use make to create a slice with zero elements
	// which will be marshalled to an empty JSON array
	duplicateIDs := make([]uuid.UUID, 0)
	for _, duplicate := range duplicates {
		duplicateIDs = append(duplicateIDs, duplicate.ID)
	}
	preview.DuplicateLineItemIDs = duplicateIDs
}

// matchRules loads all match rules in priority order.
func matchRules() ([]models.MatchRule, error) {
	var rules []models.MatchRule
	err := models.DB.
		Order("priority asc").
		Find(&rules).Error

	return rules, err
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs.
// @Tags			Import
// @Success		204
// @Router			/v1/import [options]
func OptionsImport(c *gin.Context) {
	httputil.OptionsGetPost(c)
}

type ImportResponse struct {
	Links ImportLinks `json:"links"` // Links for the import endpoints
}

type ImportLinks struct {
	Preview string `json:"preview" example:"https://example.com/api/v1/import/preview"` // URL of the import preview endpoint
	Sample  string `json:"sample" example:"https://example.com/api/v1/import/sample"`   // URL of the sample CSV endpoint
}

// @Summary		Import API overview
// @Description	Returns general information about the import endpoints
// @Tags			Import
// @Success		200	{object}	ImportResponse
// @Router			/v1/import [get]
func GetImport(c *gin.Context) {
	c.JSON(http.StatusOK, ImportResponse{
		Links: ImportLinks{
			Preview: c.GetString(string(models.DBContextURL)) + "/v1/import/preview",
			Sample:  c.GetString(string(models.DBContextURL)) + "/v1/import/sample",
		},
	})
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			Import
// @Success		204
// @Router			/v1/import/preview [options]
func OptionsImportPreview(c *gin.Context) {
	httputil.OptionsPost(c)
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			Import
// @Success		204
// @Router			/v1/import/sample [options]
func OptionsImportSample(c *gin.Context) {
	httputil.OptionsGet(c)
}

// @Summary		Sample CSV
// @Description	Returns a small sample CSV file that the import endpoint accepts
// @Tags			Import
// @Produce		text/csv
// @Success		200
// @Router			/v1/import/sample [get]
func GetImportSample(c *gin.Context) {
	c.Header("Content-Disposition", "attachment; filename=sample_budget.csv")
	c.Data(http.StatusOK, "text/csv", []byte(sampleCSV))
}

// @Summary		Import preview
// @Description	Returns a preview of the line items to be imported after parsing a CSV file. Match rules are applied and duplicates of already imported line items are marked.
// @Tags			Import
// @Accept			multipart/form-data
// @Produce		json
// @Success		200		{object}	ImportPreviewList
// @Failure		400		{object}	ImportPreviewList
// @Failure		500		{object}	ImportPreviewList
// @Param			file	formData	file	true	"File to import"
// @Router			/v1/import/preview [post]
func ImportPreview(c *gin.Context) {
	f, _, err := getUploadedFile(c, ".csv")
	if err != nil {
		s := err.Error()
		c.JSON(status(err), ImportPreviewList{
			Error: &s,
		})
		return
	}

	previews, err := importer.Parse(f)
	if err != nil {
		// importer.Parse returns a usable error already, no wrapping necessary
		s := err.Error()
		c.JSON(http.StatusBadRequest, ImportPreviewList{
			Error: &s,
		})
		return
	}

	rules, err := matchRules()
	if err != nil {
		s := err.Error()
		c.JSON(status(err), ImportPreviewList{
			Error: &s,
		})
		return
	}

	for i, preview := range previews {
		if len(rules) > 0 {
			match(&preview, rules)
		}

		duplicateLineItems(&preview)

		previews[i] = preview
	}

	data := make([]LineItemPreview, 0, len(previews))
	for _, preview := range previews {
		data = append(data, newLineItemPreview(c, preview))
	}

	c.JSON(http.StatusOK, ImportPreviewList{Data: data})
}

// @Summary		Import CSV
// @Description	Creates a new dataset with all line items from the uploaded CSV file. Match rules are applied to fill in department and category.
// @Tags			Import
// @Accept			multipart/form-data
// @Produce		json
// @Success		201		{object}	DatasetResponse
// @Failure		400		{object}	DatasetResponse
// @Failure		500		{object}	DatasetResponse
// @Param			file	formData	file		true	"File to import"
// @Param			name	query		ImportQuery	false	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Router			/v1/import [post]
func ImportCSV(c *gin.Context) {
	var query ImportQuery
	if err := c.BindQuery(&query); err != nil {
		c.JSON(http.StatusBadRequest, httpError{Error: errDatasetNameNotSet.Error()})
		return
	}

	// Verify if the dataset does already exist. If yes, return an error
	// as we only allow imports to new datasets
	var existing models.Dataset
	err := models.DB.Where(&models.Dataset{
		Name: query.Name,
	}).First(&existing).Error

	if err == nil {
		c.JSON(http.StatusBadRequest, httpError{
			Error: errDatasetNameInUse.Error(),
		})
		return
	} else if !errors.Is(err, models.ErrResourceNotFound) {
		s := err.Error()
		c.JSON(status(err), DatasetResponse{
			Error: &s,
		})
		return
	}

	f, fileName, err := getUploadedFile(c, ".csv")
	if err != nil {
		s := err.Error()
		c.JSON(status(err), DatasetResponse{
			Error: &s,
		})
		return
	}

	previews, err := importer.Parse(f)
	if err != nil {
		c.JSON(http.StatusBadRequest, httpError{Error: err.Error()})
		return
	}

	rules, err := matchRules()
	if err != nil {
		s := err.Error()
		c.JSON(status(err), DatasetResponse{
			Error: &s,
		})
		return
	}

	dataset := models.Dataset{
		Name:           query.Name,
		SourceFilename: fileName,
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

	for _, preview := range previews {
		if len(rules) > 0 {
			match(&preview, rules)
		}

		item := preview.LineItem
		item.DatasetID = dataset.ID

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
